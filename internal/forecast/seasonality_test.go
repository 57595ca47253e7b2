package forecast

import (
	"testing"
	"time"

	"github.com/resale-ops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSeries(start time.Time, days int, revenue float64) []domain.DailyRecord {
	records := make([]domain.DailyRecord, days)
	for i := range records {
		records[i] = domain.DailyRecord{
			Date:    start.AddDate(0, 0, i),
			Revenue: revenue,
			Orders:  int(revenue / 10),
			Items:   int(revenue / 5),
		}
	}
	return records
}

func TestDetectSeasonalityFlatSeriesIsNeutral(t *testing.T) {
	// 28 flat days cover every weekday and all four week-of-month buckets.
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	profile := DetectSeasonality(flatSeries(start, 28, 100))

	for d := 0; d < 7; d++ {
		assert.Equal(t, 1.0, profile.DayOfWeek[d], "weekday %d", d)
	}
	for w := 1; w <= 4; w++ {
		assert.Equal(t, 1.0, profile.WeekOfMonth[w], "week %d", w)
	}
	assert.Equal(t, 1.0, profile.MonthOfYear[3])
}

func TestDetectSeasonalityEmptyAndZeroRevenue(t *testing.T) {
	for _, records := range [][]domain.DailyRecord{
		nil,
		flatSeries(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 14, 0),
	} {
		profile := DetectSeasonality(records)
		for d := 0; d < 7; d++ {
			assert.Equal(t, 1.0, profile.DayOfWeek[d])
		}
		for w := 1; w <= 4; w++ {
			assert.Equal(t, 1.0, profile.WeekOfMonth[w])
		}
		for m := 1; m <= 12; m++ {
			assert.Equal(t, 1.0, profile.MonthOfYear[m])
		}
	}
}

func TestDetectSeasonalityWeightsBusyWeekdays(t *testing.T) {
	// Two weeks where Saturdays sell double.
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) // a Sunday
	records := flatSeries(start, 14, 100)
	for i := range records {
		if records[i].Date.Weekday() == time.Saturday {
			records[i].Revenue = 200
		}
	}

	profile := DetectSeasonality(records)
	require.Greater(t, profile.DayOfWeek[int(time.Saturday)], 1.0)
	assert.Less(t, profile.DayOfWeek[int(time.Monday)], 1.0)
}

func TestDetectSeasonalityDropsMonthTail(t *testing.T) {
	// Records only on days 29-31 carry no week-of-month bucket, so the week
	// table stays neutral even though the weekday table does not.
	records := []domain.DailyRecord{
		{Date: time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC), Revenue: 50},
		{Date: time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), Revenue: 150},
		{Date: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), Revenue: 100},
	}

	profile := DetectSeasonality(records)
	for w := 1; w <= 4; w++ {
		assert.Equal(t, 1.0, profile.WeekOfMonth[w], "week %d", w)
	}
	assert.NotEqual(t, 1.0, profile.DayOfWeek[int(time.Thursday)])
}
