package forecast

import (
	"math"
	"sort"

	"github.com/resale-ops/backend-go/internal/domain"
)

const (
	categoryGrowthBand = 5.0
	productGrowthBand  = 10.0

	// restockUnitFloor is the predicted unit count above which a
	// non-declining product gets a restock flag.
	restockUnitFloor = 5.0
)

// ForecastCategories extrapolates category revenue from the growth between
// the first and second half of the historical window. Results are ordered by
// current-period revenue, highest first.
func ForecastCategories(sales []domain.CategorySale, windowDays, horizonDays int) []domain.CategoryForecast {
	out := make([]domain.CategoryForecast, 0, len(sales))
	for _, s := range sales {
		growth := GrowthRate(s.FirstHalfRevenue, s.SecondHalfRevenue)
		out = append(out, domain.CategoryForecast{
			Category:         s.Category,
			CurrentRevenue:   s.SecondHalfRevenue,
			PredictedRevenue: math.Round(projectForward(s.SecondHalfRevenue, windowDays, horizonDays, growth)),
			GrowthRate:       growth,
			Trend:            classifyGrowth(growth, categoryGrowthBand),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrentRevenue > out[j].CurrentRevenue
	})

	return out
}

// ForecastProducts extrapolates per-product unit demand the same way, using
// the wider product growth band. Results are ordered by current-period unit
// sales, highest first, truncated to limit when limit > 0.
func ForecastProducts(sales []domain.ProductSale, windowDays, horizonDays, limit int) []domain.ProductForecast {
	out := make([]domain.ProductForecast, 0, len(sales))
	for _, s := range sales {
		growth := GrowthRate(float64(s.FirstHalfUnits), float64(s.SecondHalfUnits))
		predicted := projectForward(float64(s.SecondHalfUnits), windowDays, horizonDays, growth)
		trend := classifyGrowth(growth, productGrowthBand)

		needsRestock := trend != domain.TrendDown && predicted > restockUnitFloor
		recommended := 0
		if needsRestock {
			recommended = int(math.Round(predicted))
		}

		out = append(out, domain.ProductForecast{
			ProductID:           s.ProductID,
			SKU:                 s.SKU,
			Name:                s.Name,
			CurrentUnits:        s.SecondHalfUnits,
			PredictedUnits:      math.Round(predicted),
			GrowthRate:          growth,
			Trend:               trend,
			NeedsRestock:        needsRestock,
			RecommendedQuantity: recommended,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrentUnits > out[j].CurrentUnits
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// GrowthRate is the half-over-half growth in percent. A segment with no
// first-half activity but second-half sales reads as 100% growth: new and
// currently active, without dividing by zero.
func GrowthRate(firstHalf, secondHalf float64) float64 {
	if firstHalf > 0 {
		return (secondHalf - firstHalf) / firstHalf * 100
	}
	if secondHalf > 0 {
		return 100
	}
	return 0
}

// projectForward scales the second-half daily average across the forecast
// horizon, adjusted by the observed growth rate.
func projectForward(secondHalfTotal float64, windowDays, horizonDays int, growthRate float64) float64 {
	halfDays := float64(windowDays) / 2
	if halfDays < 1 {
		halfDays = 1
	}
	dailyAverage := secondHalfTotal / halfDays
	return dailyAverage * float64(horizonDays) * (1 + growthRate/100)
}

func classifyGrowth(growthRate, band float64) string {
	switch {
	case growthRate > band:
		return domain.TrendUp
	case growthRate < -band:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}
