package enrich

import (
	"strings"

	"github.com/slethware/atlas/internal/source"
)

// SelectCurrency picks the representative currency code from the candidates
// as ordered by the upstream source: the first listed code wins. Returns nil
// when the country has no currencies.
func SelectCurrency(currencies []source.Currency) *string {
	if len(currencies) == 0 {
		return nil
	}
	code := strings.TrimSpace(currencies[0].Code)
	if code == "" {
		return nil
	}
	return &code
}
