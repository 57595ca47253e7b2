package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAccuracySelfConsistentOnFlatSeries(t *testing.T) {
	// zero noise, zero trend: the generator should reproduce the held-out
	// window exactly
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	history := flatSeries(start, 90, 100)

	report := EvaluateAccuracy(history, 30)
	assert.Equal(t, 30, report.TestDays)
	assert.InDelta(t, 0.0, report.MAPE, 1e-9)
	assert.InDelta(t, 0.0, report.RMSE, 1e-9)
	assert.InDelta(t, 100.0, report.Accuracy, 1e-9)
}

func TestEvaluateAccuracyInsufficientHistory(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// needs testDays+30 days; 45 < 60
	history := flatSeries(start, 45, 100)

	report := EvaluateAccuracy(history, 30)
	assert.Equal(t, 0.0, report.MAPE)
	assert.Equal(t, 0.0, report.RMSE)
	assert.Equal(t, 0.0, report.Accuracy)
}

func TestEvaluateAccuracyZeroActualDaysCountTowardRMSEOnly(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	history := flatSeries(start, 90, 100)
	// one held-out day with zero actual revenue: excluded from MAPE,
	// included in RMSE
	history[80].Revenue = 0

	report := EvaluateAccuracy(history, 30)
	assert.Greater(t, report.RMSE, 0.0)
	assert.InDelta(t, 0.0, report.MAPE, 1e-9)
	assert.InDelta(t, 100.0, report.Accuracy, 1e-9)
}
