package refreshlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// RefreshKey is the lock key guarding catalog refresh runs.
const RefreshKey = "atlas:refresh"

// Guard serializes refresh invocations. TryLock returns ok=false when
// another refresh holds the lock; the caller is expected to skip its run.
type Guard interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisGuard is a best-effort cross-process lock. It does not guarantee
// mutual exclusion past the TTL; refreshes are last-write-wins by design.
type RedisGuard struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	if client == nil {
		return nil
	}
	return &RedisGuard{
		client: client,
		script: redis.NewScript(lockReleaseScript),
	}
}

func (g *RedisGuard) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if g == nil || g.client == nil {
		return "", false, errors.New("lock client not configured")
	}
	if key == "" {
		return "", false, errors.New("lock key is empty")
	}
	if ttl <= 0 {
		return "", false, errors.New("lock ttl must be positive")
	}

	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key, token string) error {
	if g == nil || g.client == nil {
		return nil
	}
	if key == "" || token == "" {
		return nil
	}
	return g.script.Run(ctx, g.client, []string{key}, token).Err()
}

// LocalGuard serializes refreshes within a single process.
type LocalGuard struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{tokens: make(map[string]string)}
}

func (g *LocalGuard) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("lock key is empty")
	}
	_ = ttl

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.tokens[key]; held {
		return "", false, nil
	}
	token := uuid.NewString()
	g.tokens[key] = token
	return token, true, nil
}

func (g *LocalGuard) Release(ctx context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.tokens[key] == token {
		delete(g.tokens, key)
	}
	return nil
}
