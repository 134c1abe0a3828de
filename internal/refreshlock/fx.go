package refreshlock

import (
	redis "github.com/redis/go-redis/v9"
	"github.com/slethware/atlas/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Provide picks the redis-backed guard when REDIS_ADDR is configured and the
// in-process guard otherwise.
func Provide(cfg config.Config, log *zap.Logger) Guard {
	if cfg.RedisAddr == "" {
		log.Info("refresh guard: in-process")
		return NewLocalGuard()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	log.Info("refresh guard: redis", zap.String("addr", cfg.RedisAddr))
	return NewRedisGuard(client)
}

var Module = fx.Module("refreshlock",
	fx.Provide(Provide),
)
