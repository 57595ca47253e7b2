package forecast

import (
	"github.com/resale-ops/backend-go/internal/domain"
)

// directionBand scales the "flat" slope band with the series mean, so a
// high-revenue store does not register noise as a trend while a low-revenue
// one stays sensitive.
const directionBand = 0.02

// CalculateTrend fits value against index 0..n-1 by ordinary least squares.
// A series with fewer than two points yields a zero slope, the single value
// (or zero) as intercept, and a stable direction.
func CalculateTrend(series []float64) domain.TrendModel {
	n := len(series)
	if n < 2 {
		model := domain.TrendModel{Direction: domain.TrendStable}
		if n == 1 {
			model.Intercept = series[0]
		}
		return model
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	nf := float64(n)
	slope := (nf*sumXY - sumX*sumY) / (nf*sumX2 - sumX*sumX)
	intercept := (sumY - slope*sumX) / nf

	return domain.TrendModel{
		Slope:     slope,
		Intercept: intercept,
		Direction: classifyDirection(slope, sumY/nf),
	}
}

func classifyDirection(slope, seriesMean float64) string {
	threshold := directionBand * seriesMean
	switch {
	case slope > threshold:
		return domain.TrendUp
	case slope < -threshold:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}
