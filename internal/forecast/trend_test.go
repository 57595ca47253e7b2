package forecast

import (
	"testing"

	"github.com/resale-ops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTrendPerfectLine(t *testing.T) {
	// y = 3x + 7
	series := make([]float64, 20)
	for i := range series {
		series[i] = 3*float64(i) + 7
	}

	model := CalculateTrend(series)
	assert.InDelta(t, 3.0, model.Slope, 1e-9)
	assert.InDelta(t, 7.0, model.Intercept, 1e-9)
	assert.Equal(t, domain.TrendUp, model.Direction)
}

func TestCalculateTrendConstantSeries(t *testing.T) {
	series := []float64{250, 250, 250, 250, 250, 250, 250}

	model := CalculateTrend(series)
	assert.Equal(t, 0.0, model.Slope)
	assert.Equal(t, domain.TrendStable, model.Direction)
}

func TestCalculateTrendDecline(t *testing.T) {
	series := make([]float64, 10)
	for i := range series {
		series[i] = 1000 - 100*float64(i)
	}

	model := CalculateTrend(series)
	assert.InDelta(t, -100.0, model.Slope, 1e-9)
	assert.Equal(t, domain.TrendDown, model.Direction)
}

func TestCalculateTrendDirectionBandScalesWithMagnitude(t *testing.T) {
	// Same absolute slope, very different magnitudes: noise on a
	// high-revenue series is stable, the same drift on a small series is a
	// real trend.
	high := []float64{10000, 10003, 10006, 10009, 10012, 10015}
	low := []float64{10, 13, 16, 19, 22, 25}

	assert.Equal(t, domain.TrendStable, CalculateTrend(high).Direction)
	assert.Equal(t, domain.TrendUp, CalculateTrend(low).Direction)
}

func TestCalculateTrendDegenerateSeries(t *testing.T) {
	empty := CalculateTrend(nil)
	assert.Equal(t, 0.0, empty.Slope)
	assert.Equal(t, 0.0, empty.Intercept)
	assert.Equal(t, domain.TrendStable, empty.Direction)

	single := CalculateTrend([]float64{88})
	assert.Equal(t, 0.0, single.Slope)
	assert.Equal(t, 88.0, single.Intercept)
	assert.Equal(t, domain.TrendStable, single.Direction)
}
