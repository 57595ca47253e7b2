package forecast

import (
	"math"
	"time"

	"github.com/resale-ops/backend-go/internal/domain"
)

const (
	// MinHistoryDays is the shortest historical series the generator will
	// forecast from.
	MinHistoryDays = 7

	baselineWindow = 7
	maxConfidence  = 0.95
	minConfidence  = 0.5
)

// ForecastDailySales projects days future days from the historical series and
// its seasonality profile. The baseline is the last value of a 7-day moving
// average; the trend slope is extrapolated over the absolute index into the
// combined history+future series; the seasonal factor multiplies weekday and
// month factors (the week-of-month factor is exposed in the profile but never
// applied to point forecasts).
//
// History shorter than MinHistoryDays yields an empty result; the caller is
// expected to log that as an insufficient-data warning, not an error.
// Monetary outputs are rounded to whole currency units only here at the
// boundary, never inside the per-day math.
func ForecastDailySales(history []domain.DailyRecord, profile domain.SeasonalityProfile, days int) []domain.ForecastPoint {
	if len(history) < MinHistoryDays || days <= 0 {
		return nil
	}

	revenue := make([]float64, len(history))
	orders := make([]float64, len(history))
	for i, r := range history {
		revenue[i] = r.Revenue
		orders[i] = float64(r.Orders)
	}

	revenueTrend := CalculateTrend(revenue)
	ordersTrend := CalculateTrend(orders)

	revenueMA := MovingAverage(revenue, baselineWindow)
	ordersMA := MovingAverage(orders, baselineWindow)
	revenueBaseline := revenueMA[len(revenueMA)-1]
	ordersBaseline := ordersMA[len(ordersMA)-1]

	sigma := stdDev(revenue)
	n := len(history)
	lastDate := history[n-1].Date

	points := make([]domain.ForecastPoint, 0, days)
	for i := 1; i <= days; i++ {
		date := lastDate.AddDate(0, 0, i)
		factor := profile.DayOfWeek[int(date.Weekday())] * profile.MonthOfYear[int(date.Month())]

		// Trend extrapolates over the absolute index into the full series,
		// not the forecast offset alone.
		predictedRevenue := math.Max(0, (revenueBaseline+revenueTrend.Slope*float64(n+i))*factor)
		predictedOrders := math.Max(0, math.Round((ordersBaseline+ordersTrend.Slope*float64(n+i))*factor))

		margin := sigma * (1 + 0.05*float64(i))

		points = append(points, domain.ForecastPoint{
			Date:             date,
			PredictedRevenue: math.Round(predictedRevenue),
			PredictedOrders:  int(predictedOrders),
			Confidence:       confidenceAt(i),
			LowerBound:       math.Round(math.Max(0, predictedRevenue-margin)),
			UpperBound:       math.Round(predictedRevenue + margin),
		})
	}

	return points
}

// confidenceAt decays linearly with distance into the future, floored at 0.5.
func confidenceAt(offset int) float64 {
	return math.Max(minConfidence, maxConfidence-0.01*float64(offset))
}

// ForecastWindow reports the first and last projected dates, or zero times
// for an empty forecast.
func ForecastWindow(points []domain.ForecastPoint) (start, end time.Time) {
	if len(points) == 0 {
		return time.Time{}, time.Time{}
	}
	return points[0].Date, points[len(points)-1].Date
}
