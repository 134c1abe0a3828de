package repository

import (
	"context"
	"time"

	"github.com/slethware/atlas/internal/country/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByNameIgnoreCase(ctx context.Context, db *gorm.DB, name string) (*domain.Country, error) {
	var country domain.Country
	err := db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Limit(1).
		Find(&country).Error
	if err != nil {
		return nil, err
	}
	if country.ID == 0 {
		return nil, nil
	}
	return &country, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Country, error) {
	var countries []domain.Country
	stmt := db.WithContext(ctx).Model(&domain.Country{})
	if filter.Region != "" {
		stmt = stmt.Where("LOWER(region) = LOWER(?)", filter.Region)
	}
	if filter.CurrencyCode != "" {
		stmt = stmt.Where("LOWER(currency_code) = LOWER(?)", filter.CurrencyCode)
	}

	// "estimated_gdp IS NULL" sorts records without a metric last in both
	// GDP modes; the trailing id keeps equal keys in insertion order.
	switch filter.Sort {
	case domain.SortGDPDesc:
		stmt = stmt.Order("estimated_gdp IS NULL, estimated_gdp DESC, id ASC")
	case domain.SortGDPAsc:
		stmt = stmt.Order("estimated_gdp IS NULL, estimated_gdp ASC, id ASC")
	case domain.SortNameAsc:
		stmt = stmt.Order("name ASC, id ASC")
	case domain.SortNameDesc:
		stmt = stmt.Order("name DESC, id ASC")
	default:
		stmt = stmt.Order("id ASC")
	}

	if err := stmt.Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Country{}).Count(&count).Error
	return count, err
}

func (r *repo) MaxLastRefreshedAt(ctx context.Context, db *gorm.DB) (*time.Time, error) {
	var country domain.Country
	err := db.WithContext(ctx).
		Order("last_refreshed_at DESC").
		Limit(1).
		Find(&country).Error
	if err != nil {
		return nil, err
	}
	if country.ID == 0 {
		return nil, nil
	}
	ts := country.LastRefreshedAt
	return &ts, nil
}

func (r *repo) TopByEstimatedGDP(ctx context.Context, db *gorm.DB, limit int) ([]domain.Country, error) {
	var countries []domain.Country
	err := db.WithContext(ctx).
		Model(&domain.Country{}).
		Order("estimated_gdp IS NULL, estimated_gdp DESC, id ASC").
		Limit(limit).
		Find(&countries).Error
	if err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, country *domain.Country) error {
	return db.WithContext(ctx).Save(country).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, country *domain.Country) error {
	return db.WithContext(ctx).Delete(country).Error
}
