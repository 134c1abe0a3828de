package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Country is the persisted catalog record. Name is unique across the catalog
// and matched case-insensitively everywhere.
type Country struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"not null;uniqueIndex" json:"name"`
	Capital         string       `json:"capital"`
	Region          string       `json:"region"`
	Population      int64        `gorm:"not null" json:"population"`
	CurrencyCode    *string      `gorm:"column:currency_code" json:"currency_code"`
	ExchangeRate    *float64     `gorm:"column:exchange_rate" json:"exchange_rate"`
	EstimatedGDP    *float64     `gorm:"column:estimated_gdp" json:"estimated_gdp"`
	FlagURL         *string      `gorm:"column:flag_url;size:500" json:"flag_url"`
	LastRefreshedAt time.Time    `gorm:"column:last_refreshed_at;not null" json:"last_refreshed_at"`
	CreatedAt       time.Time    `gorm:"not null" json:"created_at"`
}

func (Country) TableName() string {
	return "countries"
}

// SortMode enumerates the supported catalog orderings. Unknown or absent
// values fall through to SortDefault (id ascending, i.e. insertion order).
type SortMode string

const (
	SortDefault  SortMode = ""
	SortGDPDesc  SortMode = "gdp_desc"
	SortGDPAsc   SortMode = "gdp_asc"
	SortNameAsc  SortMode = "name_asc"
	SortNameDesc SortMode = "name_desc"
)

func ParseSortMode(raw string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(raw))) {
	case SortGDPDesc:
		return SortGDPDesc
	case SortGDPAsc:
		return SortGDPAsc
	case SortNameAsc:
		return SortNameAsc
	case SortNameDesc:
		return SortNameDesc
	default:
		return SortDefault
	}
}

// ListFilter narrows the catalog by region and currency code. Empty values
// never exclude records.
type ListFilter struct {
	Region       string
	CurrencyCode string
	Sort         SortMode
}
