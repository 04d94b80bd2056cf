package metrics

import (
	"errors"
	"math"

	"github.com/igotm1lk/slackbot/internal/models"
)

// ErrMissingLighthouseResult is returned when the report document has no
// lighthouse result section at all.
var ErrMissingLighthouseResult = errors.New("report has no lighthouse result")

// Extract projects a raw report into a flat Record. Missing categories and
// audits default to zero rather than failing: the Pagespeed API routinely
// returns partial documents and a lopsided record is more useful to the user
// than an aborted run. Extraction fails only when the lighthouse result
// section is absent entirely.
func Extract(doc *models.PagespeedResponse) (models.Record, error) {
	if doc == nil || doc.LighthouseResult == nil {
		return models.Record{}, ErrMissingLighthouseResult
	}

	lhr := doc.LighthouseResult
	rec := models.Record{FinalURL: lhr.FinalURL}

	if lhr.Categories != nil {
		rec.PerformanceScore = scoreOf(lhr.Categories.Performance)
		rec.AccessibilityScore = scoreOf(lhr.Categories.Accessibility)
		rec.BestPracticesScore = scoreOf(lhr.Categories.BestPractices)
		rec.SEOScore = scoreOf(lhr.Categories.SEO)
	}

	if lhr.Audits != nil {
		rec.FirstContentfulPaintMS = valueOf(lhr.Audits.FirstContentfulPaint)
		rec.LargestContentfulPaintMS = valueOf(lhr.Audits.LargestContentfulPaint)
		rec.SpeedIndexMS = valueOf(lhr.Audits.SpeedIndex)
		rec.TimeToInteractiveMS = valueOf(lhr.Audits.Interactive)
		rec.TotalBlockingTimeMS = valueOf(lhr.Audits.TotalBlockingTime)
		rec.CumulativeLayoutShift = valueOf(lhr.Audits.CumulativeLayoutShift)
	}

	return rec, nil
}

// Screenshot returns the final-screenshot data URL, or "" when absent.
func Screenshot(doc *models.PagespeedResponse) string {
	if doc == nil || doc.LighthouseResult == nil || doc.LighthouseResult.Audits == nil {
		return ""
	}
	shot := doc.LighthouseResult.Audits.FinalScreenshot
	if shot == nil || shot.Details == nil {
		return ""
	}
	return shot.Details.Data
}

func scoreOf(c *models.Category) int {
	if c == nil {
		return 0
	}
	return int(math.Round(c.Score * 100))
}

func valueOf(a *models.Audit) float64 {
	if a == nil {
		return 0
	}
	return a.NumericValue
}
