package forecast

// DefaultAlpha is the smoothing constant used when a caller has no opinion.
const DefaultAlpha = 0.3

// MovingAverage returns a full-length trailing moving average of series.
// For the first window-1 indexes the effective window shrinks to the data
// available so far, so output[i] always averages series[max(0,i-window+1)..i].
// A series shorter than the window is returned unchanged.
func MovingAverage(series []float64, window int) []float64 {
	if window <= 0 || len(series) < window {
		return series
	}

	out := make([]float64, len(series))
	for i := range series {
		start := i - window + 1
		if start < 0 {
			start = 0
		}

		sum := 0.0
		for _, v := range series[start : i+1] {
			sum += v
		}
		out[i] = sum / float64(i-start+1)
	}

	return out
}

// ExponentialSmoothing applies single exponential smoothing:
// s[0]=series[0], s[i]=alpha*series[i]+(1-alpha)*s[i-1].
// alpha must be in (0,1]; that is a caller contract, not a runtime check.
func ExponentialSmoothing(series []float64, alpha float64) []float64 {
	if len(series) == 0 {
		return nil
	}

	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = alpha*series[i] + (1-alpha)*out[i-1]
	}

	return out
}
