package forecast

import (
	"github.com/resale-ops/backend-go/internal/domain"
)

// DetectSeasonality decomposes a daily series into three independent
// multiplicative factor tables: weekday (0-6), week of month (1-4) and month
// (1-12). A factor is the bucket's mean revenue divided by the overall mean,
// so a flat series yields 1.0 everywhere. Buckets with no observations stay
// neutral at 1.0.
//
// Week of month is ceil(dayOfMonth/7); days 29-31 fall outside the four
// buckets and are dropped from the week-of-month aggregation. Callers should
// expect unreliable factors from series shorter than one full cycle of the
// corresponding bucket type (7 days, 4 weeks, 12 months).
func DetectSeasonality(records []domain.DailyRecord) domain.SeasonalityProfile {
	profile := neutralProfile()
	if len(records) == 0 {
		return profile
	}

	var overall float64
	for _, r := range records {
		overall += r.Revenue
	}
	overall /= float64(len(records))
	if overall == 0 {
		return profile
	}

	dowSum := make(map[int]float64)
	dowCount := make(map[int]int)
	womSum := make(map[int]float64)
	womCount := make(map[int]int)
	moySum := make(map[int]float64)
	moyCount := make(map[int]int)

	for _, r := range records {
		dow := int(r.Date.Weekday())
		dowSum[dow] += r.Revenue
		dowCount[dow]++

		wom := (r.Date.Day()-1)/7 + 1
		if wom <= 4 {
			womSum[wom] += r.Revenue
			womCount[wom]++
		}

		moy := int(r.Date.Month())
		moySum[moy] += r.Revenue
		moyCount[moy]++
	}

	for bucket, count := range dowCount {
		profile.DayOfWeek[bucket] = dowSum[bucket] / float64(count) / overall
	}
	for bucket, count := range womCount {
		profile.WeekOfMonth[bucket] = womSum[bucket] / float64(count) / overall
	}
	for bucket, count := range moyCount {
		profile.MonthOfYear[bucket] = moySum[bucket] / float64(count) / overall
	}

	return profile
}

func neutralProfile() domain.SeasonalityProfile {
	profile := domain.SeasonalityProfile{
		DayOfWeek:   make(map[int]float64, 7),
		WeekOfMonth: make(map[int]float64, 4),
		MonthOfYear: make(map[int]float64, 12),
	}
	for d := 0; d < 7; d++ {
		profile.DayOfWeek[d] = 1.0
	}
	for w := 1; w <= 4; w++ {
		profile.WeekOfMonth[w] = 1.0
	}
	for m := 1; m <= 12; m++ {
		profile.MonthOfYear[m] = 1.0
	}
	return profile
}
