package summary

import (
	"context"
	"errors"
	"time"

	"github.com/slethware/atlas/internal/country/domain"
)

// ErrNotGenerated is returned by Image before the first successful Generate.
var ErrNotGenerated = errors.New("summary image not generated")

// Generator renders a catalog summary card and keeps the latest rendition
// for retrieval.
type Generator interface {
	Generate(ctx context.Context, top []domain.Country, total int64, lastRefreshedAt *time.Time) error
	Image() ([]byte, error)
}
