package metrics

import (
	"math"

	"github.com/igotm1lk/slackbot/internal/models"
)

// AggregateRecords averages every numeric field across the given records.
// The final URL is copied from the first record. The input must be non-empty;
// callers short-circuit zero-success runs before getting here.
func AggregateRecords(records []models.Record) models.Aggregate {
	if len(records) == 0 {
		panic("metrics: AggregateRecords called with no records")
	}

	n := float64(len(records))
	var perf, access, best, seo float64
	agg := models.Aggregate{Samples: len(records)}
	agg.FinalURL = records[0].FinalURL

	for _, r := range records {
		perf += float64(r.PerformanceScore)
		access += float64(r.AccessibilityScore)
		best += float64(r.BestPracticesScore)
		seo += float64(r.SEOScore)
		agg.FirstContentfulPaintMS += r.FirstContentfulPaintMS
		agg.LargestContentfulPaintMS += r.LargestContentfulPaintMS
		agg.SpeedIndexMS += r.SpeedIndexMS
		agg.TimeToInteractiveMS += r.TimeToInteractiveMS
		agg.TotalBlockingTimeMS += r.TotalBlockingTimeMS
		agg.CumulativeLayoutShift += r.CumulativeLayoutShift
	}

	agg.PerformanceScore = int(math.Round(perf / n))
	agg.AccessibilityScore = int(math.Round(access / n))
	agg.BestPracticesScore = int(math.Round(best / n))
	agg.SEOScore = int(math.Round(seo / n))
	agg.FirstContentfulPaintMS /= n
	agg.LargestContentfulPaintMS /= n
	agg.SpeedIndexMS /= n
	agg.TimeToInteractiveMS /= n
	agg.TotalBlockingTimeMS /= n
	agg.CumulativeLayoutShift /= n

	return agg
}
