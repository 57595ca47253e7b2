package forecast

import (
	"math"

	"github.com/resale-ops/backend-go/internal/domain"
)

// minTrainDays is the smallest training prefix a backtest will run against.
const minTrainDays = 30

// EvaluateAccuracy backtests the daily forecast: the trailing testDays of the
// series are held out as ground truth, seasonality is re-derived from the
// remaining prefix, and the generator is re-run for a horizon of testDays.
//
// MAPE averages absolute percentage error over held-out days with positive
// actual revenue only; RMSE averages squared error over every held-out day.
// History shorter than testDays+30 yields an all-zero report: an
// insufficient-data result, not an error.
func EvaluateAccuracy(history []domain.DailyRecord, testDays int) domain.AccuracyReport {
	report := domain.AccuracyReport{TestDays: testDays}
	if testDays <= 0 || len(history) < testDays+minTrainDays {
		return report
	}

	train := history[:len(history)-testDays]
	heldOut := history[len(history)-testDays:]

	profile := DetectSeasonality(train)
	points := ForecastDailySales(train, profile, testDays)
	if len(points) != len(heldOut) {
		return report
	}

	var pctErrSum, sqErrSum float64
	positiveDays := 0
	for i, actual := range heldOut {
		diff := points[i].PredictedRevenue - actual.Revenue
		sqErrSum += diff * diff
		if actual.Revenue > 0 {
			pctErrSum += math.Abs(diff) / actual.Revenue
			positiveDays++
		}
	}

	if positiveDays > 0 {
		report.MAPE = pctErrSum / float64(positiveDays) * 100
	}
	report.RMSE = math.Sqrt(sqErrSum / float64(testDays))
	report.Accuracy = math.Max(0, 100-report.MAPE)

	return report
}
