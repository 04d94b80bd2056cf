package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igotm1lk/slackbot/internal/models"
)

func fullDocument() *models.PagespeedResponse {
	return &models.PagespeedResponse{
		LighthouseResult: &models.LighthouseResult{
			FinalURL: "https://example.com/",
			Categories: &models.Categories{
				Performance:   &models.Category{Score: 0.93},
				Accessibility: &models.Category{Score: 0.875},
				BestPractices: &models.Category{Score: 1},
				SEO:           &models.Category{Score: 0.494},
			},
			Audits: &models.Audits{
				FirstContentfulPaint:   &models.Audit{NumericValue: 1234.5},
				LargestContentfulPaint: &models.Audit{NumericValue: 2500},
				SpeedIndex:             &models.Audit{NumericValue: 3100.2},
				Interactive:            &models.Audit{NumericValue: 4200},
				TotalBlockingTime:      &models.Audit{NumericValue: 150.4},
				CumulativeLayoutShift:  &models.Audit{NumericValue: 0.0123},
			},
		},
	}
}

func TestExtract(t *testing.T) {
	t.Run("ProjectsFullDocument", func(t *testing.T) {
		rec, err := Extract(fullDocument())
		require.NoError(t, err)

		assert.Equal(t, 93, rec.PerformanceScore)
		assert.Equal(t, 88, rec.AccessibilityScore, "0.875 rounds up")
		assert.Equal(t, 100, rec.BestPracticesScore)
		assert.Equal(t, 49, rec.SEOScore, "0.494 rounds down")
		assert.Equal(t, 1234.5, rec.FirstContentfulPaintMS)
		assert.Equal(t, 2500.0, rec.LargestContentfulPaintMS)
		assert.Equal(t, 3100.2, rec.SpeedIndexMS)
		assert.Equal(t, 4200.0, rec.TimeToInteractiveMS)
		assert.Equal(t, 150.4, rec.TotalBlockingTimeMS)
		assert.Equal(t, 0.0123, rec.CumulativeLayoutShift)
		assert.Equal(t, "https://example.com/", rec.FinalURL)
	})

	t.Run("ScoreStaysInRange", func(t *testing.T) {
		for _, s := range []float64{0, 0.004, 0.005, 0.5, 0.994, 0.995, 1} {
			doc := fullDocument()
			doc.LighthouseResult.Categories.Performance.Score = s
			rec, err := Extract(doc)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, rec.PerformanceScore, 0)
			assert.LessOrEqual(t, rec.PerformanceScore, 100)
		}
	})

	t.Run("MissingCategoryDefaultsToZero", func(t *testing.T) {
		doc := fullDocument()
		doc.LighthouseResult.Categories.Accessibility = nil
		rec, err := Extract(doc)
		require.NoError(t, err)
		assert.Equal(t, 0, rec.AccessibilityScore)
		assert.Equal(t, 93, rec.PerformanceScore, "siblings are unaffected")
	})

	t.Run("MissingAuditDefaultsToZero", func(t *testing.T) {
		doc := fullDocument()
		doc.LighthouseResult.Audits.TotalBlockingTime = nil
		rec, err := Extract(doc)
		require.NoError(t, err)
		assert.Zero(t, rec.TotalBlockingTimeMS)
		assert.Equal(t, 1234.5, rec.FirstContentfulPaintMS)
	})

	t.Run("MissingCategoriesAndAuditsSections", func(t *testing.T) {
		doc := &models.PagespeedResponse{
			LighthouseResult: &models.LighthouseResult{FinalURL: "https://example.com/"},
		}
		rec, err := Extract(doc)
		require.NoError(t, err)
		assert.Equal(t, models.Record{FinalURL: "https://example.com/"}, rec)
	})

	t.Run("MissingLighthouseResultFails", func(t *testing.T) {
		_, err := Extract(&models.PagespeedResponse{})
		assert.ErrorIs(t, err, ErrMissingLighthouseResult)

		_, err = Extract(nil)
		assert.ErrorIs(t, err, ErrMissingLighthouseResult)
	})
}

func TestScreenshot(t *testing.T) {
	t.Run("ReturnsDataURL", func(t *testing.T) {
		doc := fullDocument()
		doc.LighthouseResult.Audits.FinalScreenshot = &models.Audit{
			Details: &models.AuditDetails{Data: "data:image/jpeg;base64,abcd"},
		}
		assert.Equal(t, "data:image/jpeg;base64,abcd", Screenshot(doc))
	})

	t.Run("EmptyWhenAbsent", func(t *testing.T) {
		assert.Empty(t, Screenshot(fullDocument()))
		assert.Empty(t, Screenshot(&models.PagespeedResponse{}))
		assert.Empty(t, Screenshot(nil))
	})
}
