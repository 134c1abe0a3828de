package enrich

import (
	"errors"
	"strings"
	"time"

	"github.com/slethware/atlas/internal/country/domain"
	"github.com/slethware/atlas/internal/source"
)

// ErrInvalidSample marks a raw record that cannot become a catalog record.
// The reconciler skips such records without aborting the batch.
var ErrInvalidSample = errors.New("invalid country sample")

// Normalize turns one raw country sample plus the rate table into a catalog
// record. Pure: no I/O, no clock reads. ID and CreatedAt are left for the
// reconciler to assign on insert.
func Normalize(sample source.RawCountry, rates source.RateTable, now time.Time, draw Multiplier) (domain.Country, error) {
	name := strings.TrimSpace(sample.Name)
	if name == "" {
		return domain.Country{}, ErrInvalidSample
	}

	var population int64
	if sample.Population != nil && *sample.Population > 0 {
		population = *sample.Population
	}

	code := SelectCurrency(sample.Currencies)

	var rate *float64
	if code != nil {
		if r, ok := rates[*code]; ok {
			rate = &r
		}
	}

	var flag *string
	if f := strings.TrimSpace(sample.Flag); f != "" {
		flag = &f
	}

	return domain.Country{
		Name:            name,
		Capital:         sample.Capital,
		Region:          sample.Region,
		Population:      population,
		CurrencyCode:    code,
		ExchangeRate:    rate,
		EstimatedGDP:    Estimate(population, rate, draw),
		FlagURL:         flag,
		LastRefreshedAt: now,
	}, nil
}
