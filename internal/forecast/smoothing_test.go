package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverageFullLengthOutput(t *testing.T) {
	series := []float64{10, 20, 30, 40, 50, 60}
	out := MovingAverage(series, 3)

	require.Len(t, out, len(series))
	// head uses a shrinking window
	assert.Equal(t, 10.0, out[0])
	assert.Equal(t, 15.0, out[1])
	// index window-1 is the exact mean of the first window elements
	assert.Equal(t, 20.0, out[2])
	assert.Equal(t, 50.0, out[5])
}

func TestMovingAverageShortSeriesUnchanged(t *testing.T) {
	series := []float64{5, 6}
	out := MovingAverage(series, 7)
	assert.Equal(t, series, out)
}

func TestMovingAverageEmpty(t *testing.T) {
	assert.Empty(t, MovingAverage(nil, 3))
}

func TestMovingAverageFlatFortnight(t *testing.T) {
	series := make([]float64, 14)
	for i := range series {
		series[i] = 100
	}

	out := MovingAverage(series, 7)
	require.Len(t, out, 14)
	assert.Equal(t, 100.0, out[len(out)-1])
}

func TestExponentialSmoothingFirstValue(t *testing.T) {
	series := []float64{42, 10, 90, 3}
	out := ExponentialSmoothing(series, DefaultAlpha)

	require.Len(t, out, len(series))
	assert.Equal(t, 42.0, out[0])
}

func TestExponentialSmoothingStaysWithinRunningBounds(t *testing.T) {
	series := []float64{10, 50, 20, 80, 5, 60}
	out := ExponentialSmoothing(series, DefaultAlpha)

	lo, hi := series[0], series[0]
	for i, v := range series {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		assert.GreaterOrEqual(t, out[i], lo)
		assert.LessOrEqual(t, out[i], hi)
	}
}

func TestExponentialSmoothingEmpty(t *testing.T) {
	assert.Empty(t, ExponentialSmoothing(nil, DefaultAlpha))
}
