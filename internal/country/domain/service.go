package domain

import (
	"context"
	"errors"
	"time"
)

type ListCountriesRequest struct {
	Region   string
	Currency string
	Sort     string
}

type StatusResponse struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

// RefreshResult aggregates one reconciliation pass. Skipped counts records
// dropped by per-record failure isolation; it is informational only.
type RefreshResult struct {
	Inserted int
	Updated  int
	Skipped  int
}

type Service interface {
	List(ctx context.Context, req ListCountriesRequest) ([]Country, error)
	GetByName(ctx context.Context, name string) (Country, error)
	DeleteByName(ctx context.Context, name string) error
	Refresh(ctx context.Context) (RefreshResult, error)
	Status(ctx context.Context) (StatusResponse, error)
}

var (
	ErrNotFound    = errors.New("country_not_found")
	ErrInvalidName = errors.New("invalid_name")
)
