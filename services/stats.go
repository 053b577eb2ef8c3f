package services

import (
	"math"
	"time"

	"feedback-hero/models"
	"feedback-hero/utils"
)

// The aggregation engine. Every function here is a pure computation over a
// slice of feedback records fetched by the caller; nothing is mutated and no
// input ordering is assumed.

// DailyStat is one calendar day in the dashboard chart.
type DailyStat struct {
	Date      string  `json:"date"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

// PeriodStats summarizes one time window of overall ratings.
type PeriodStats struct {
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
	Happy     int     `json:"happy"`
	Neutral   int     `json:"neutral"`
	Sad       int     `json:"sad"`
}

// FieldSelector extracts one rating field from a record, nil when the
// customer skipped it.
type FieldSelector func(models.Feedback) *int

// OverallValue selects the always-present overall rating.
func OverallValue(f models.Feedback) *int {
	v := f.OverallRating
	return &v
}

// CategoryFields maps report category names to their rating fields.
var CategoryFields = map[string]FieldSelector{
	"food":        func(f models.Feedback) *int { return f.FoodRating },
	"service":     func(f models.Feedback) *int { return f.ServiceRating },
	"staff":       func(f models.Feedback) *int { return f.StaffRating },
	"cleanliness": func(f models.Feedback) *int { return f.CleanlinessRating },
	"value":       func(f models.Feedback) *int { return f.ValueRating },
}

// AverageOf returns the mean of the non-nil values of one field, rounded to
// two decimal places. An empty value set yields 0.
func AverageOf(records []models.Feedback, field FieldSelector) float64 {
	sum, count := 0, 0
	for _, f := range records {
		if v := field(f); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return round2(float64(sum) / float64(count))
}

// DailyBreakdown buckets records into the trailing `days` calendar days
// ending at (and including) the anchor day, ordered oldest to newest.
func DailyBreakdown(records []models.Feedback, days int, anchor time.Time) []DailyStat {
	anchorDay := utils.BeginningOfDay(anchor)

	type bucket struct {
		count int
		sum   int
		rated int
	}
	buckets := make(map[string]*bucket)
	for _, f := range records {
		key := utils.BeginningOfDay(f.Timestamp.In(anchor.Location())).Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.count++
		b.sum += f.OverallRating
		b.rated++
	}

	chart := make([]DailyStat, 0, days)
	for i := 0; i < days; i++ {
		day := anchorDay.AddDate(0, 0, -(days - 1 - i))
		stat := DailyStat{Date: day.Format("Mon 01/02")}
		if b, ok := buckets[day.Format("2006-01-02")]; ok {
			stat.Count = b.count
			if b.rated > 0 {
				stat.AvgRating = round2(float64(b.sum) / float64(b.rated))
			}
		}
		chart = append(chart, stat)
	}
	return chart
}

// CategoryBreakdown computes the per-category average of the five detail
// rating fields over the given record set.
func CategoryBreakdown(records []models.Feedback) map[string]float64 {
	result := make(map[string]float64, len(CategoryFields))
	for name, field := range CategoryFields {
		result[name] = AverageOf(records, field)
	}
	return result
}

// NPSScore computes the Net Promoter Score over the non-nil nps values:
// promoters (>=9) minus detractors (<=6) over all responses, times 100,
// rounded to one decimal place. No responses yields 0.
func NPSScore(records []models.Feedback) float64 {
	promoters, detractors, total := 0, 0, 0
	for _, f := range records {
		if f.NPSScore == nil {
			continue
		}
		total++
		switch {
		case *f.NPSScore >= 9:
			promoters++
		case *f.NPSScore <= 6:
			detractors++
		}
	}
	if total == 0 {
		return 0
	}
	return round1(float64(promoters-detractors) / float64(total) * 100)
}

// PeriodSummary counts records and splits them into the three overall-rating
// buckets.
func PeriodSummary(records []models.Feedback) PeriodStats {
	stats := PeriodStats{Count: len(records)}
	if stats.Count == 0 {
		return stats
	}
	sum := 0
	for _, f := range records {
		sum += f.OverallRating
		switch f.OverallRating {
		case 3:
			stats.Happy++
		case 2:
			stats.Neutral++
		case 1:
			stats.Sad++
		}
	}
	stats.AvgRating = round2(float64(sum) / float64(stats.Count))
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
