package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository is the keyed catalog store. Methods take the database handle so
// callers can pass a transaction.
type Repository interface {
	FindByNameIgnoreCase(ctx context.Context, db *gorm.DB, name string) (*Country, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Country, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	MaxLastRefreshedAt(ctx context.Context, db *gorm.DB) (*time.Time, error)
	TopByEstimatedGDP(ctx context.Context, db *gorm.DB, limit int) ([]Country, error)
	Save(ctx context.Context, db *gorm.DB, country *Country) error
	Delete(ctx context.Context, db *gorm.DB, country *Country) error
}
