package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedDraw(v float64) Multiplier {
	return func() float64 { return v }
}

func TestEstimate_NilRate(t *testing.T) {
	assert.Nil(t, Estimate(1_000_000, nil, fixedDraw(1500)))
	assert.Nil(t, Estimate(0, nil, fixedDraw(1500)))
}

func TestEstimate_ZeroPopulation(t *testing.T) {
	rate := 2.5
	got := Estimate(0, &rate, fixedDraw(1500))

	require.NotNil(t, got)
	assert.Equal(t, 0.0, *got)
}

func TestEstimate_ZeroRate(t *testing.T) {
	rate := 0.0
	assert.Nil(t, Estimate(1000, &rate, fixedDraw(1500)))
}

func TestEstimate_FixedDraw(t *testing.T) {
	rate := 2.0
	got := Estimate(1000, &rate, fixedDraw(1500))

	require.NotNil(t, got)
	assert.InDelta(t, 750_000, *got, 1e-9)
}

func TestEstimate_UniformDrawStaysInRange(t *testing.T) {
	population := int64(1000)
	rate := 2.0
	lower := 1000 * float64(population) / rate
	upper := 2000 * float64(population) / rate

	for i := 0; i < 1000; i++ {
		got := Estimate(population, &rate, UniformMultiplier)
		require.NotNil(t, got)
		assert.GreaterOrEqual(t, *got, lower)
		assert.Less(t, *got, upper)
	}
}

func TestUniformMultiplier_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		m := UniformMultiplier()
		assert.GreaterOrEqual(t, m, 1000.0)
		assert.Less(t, m, 2000.0)
	}
}
