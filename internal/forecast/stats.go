package forecast

import "math"

func mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// stdDev is the population standard deviation.
func stdDev(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}

	m := mean(series)
	var sq float64
	for _, v := range series {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(series)))
}
