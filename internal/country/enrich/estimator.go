package enrich

import "math/rand"

// Multiplier draws the random factor the GDP estimate is scaled by.
// Injectable so tests can pin it to a fixed value.
type Multiplier func() float64

// UniformMultiplier draws uniformly from [1000, 2000).
func UniformMultiplier() float64 {
	return 1000 + rand.Float64()*1000
}

// Estimate computes the derived GDP metric. A nil rate means no metric can be
// computed; a zero population forces the metric to zero; a zero rate yields
// no metric (the division is undefined). Otherwise:
//
//	population * draw() / rate
//
// Two calls for the same inputs yield different values because of the random
// draw. That is intentional.
func Estimate(population int64, rate *float64, draw Multiplier) *float64 {
	if rate == nil {
		return nil
	}
	if population == 0 {
		zero := 0.0
		return &zero
	}
	if *rate == 0 {
		return nil
	}
	gdp := float64(population) * draw() / *rate
	return &gdp
}
