package runner

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/igotm1lk/slackbot/internal/metrics"
	"github.com/igotm1lk/slackbot/internal/models"
	"github.com/igotm1lk/slackbot/internal/report"
)

// ReportFetcher runs one Pagespeed analysis.
type ReportFetcher interface {
	FetchReport(ctx context.Context, url string, strategy models.Strategy) (*models.PagespeedResponse, error)
}

// MessagePoster delivers output to the invoking channel.
type MessagePoster interface {
	PostReport(ctx context.Context, channelID string, msg report.Message) error
	PostText(ctx context.Context, channelID, text string) error
}

// ScreenshotStore uploads a screenshot and returns its public URL.
type ScreenshotStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Runner drives one /psi invocation: the requested number of sequential
// Pagespeed runs, per-run failure isolation, aggregation, delivery.
type Runner struct {
	Fetcher     ReportFetcher
	Poster      MessagePoster
	Screenshots ScreenshotStore // optional
	Log         *slog.Logger
}

// Execute performs all runs of the request and posts the resulting messages.
// A failed run is reported and skipped; it never aborts the remaining runs.
func (r *Runner) Execute(ctx context.Context, req models.RunRequest, channelID string) {
	start := time.Now()
	r.Log.Info("starting runs", "url", req.URL, "count", req.Count, "strategy", req.Strategy)

	var records []models.Record
	var screenshot string

	for i := 1; i <= req.Count; i++ {
		doc, err := r.Fetcher.FetchReport(ctx, req.URL, req.Strategy)
		if err != nil {
			r.reportRunFailure(ctx, channelID, i, req.Count, err)
			continue
		}

		rec, err := metrics.Extract(doc)
		if err != nil {
			r.reportRunFailure(ctx, channelID, i, req.Count, err)
			continue
		}

		records = append(records, rec)
		if screenshot == "" {
			screenshot = metrics.Screenshot(doc)
		}

		// Multi-run invocations get a progress report per successful run,
		// ahead of the final aggregate.
		if req.Count > 1 {
			msg := report.Single(rec, req.Strategy, i, req.Count)
			if err := r.Poster.PostReport(ctx, channelID, msg); err != nil {
				r.Log.Error("posting progress report failed", "ordinal", i, "err", err)
			}
		}
	}

	if len(records) == 0 {
		r.Log.Warn("all runs failed", "url", req.URL, "count", req.Count)
		text := fmt.Sprintf(
			"All %d test(s) against %s failed. Likely causes: an invalid PageSpeed API key, an unreachable URL, or rate limiting.",
			req.Count, req.URL)
		if err := r.Poster.PostText(ctx, channelID, text); err != nil {
			r.Log.Error("posting failure summary failed", "err", err)
		}
		return
	}

	var msg report.Message
	if len(records) == 1 {
		msg = report.Single(records[0], req.Strategy, 0, 1)
	} else {
		msg = report.Average(metrics.AggregateRecords(records), req.Strategy)
	}

	if url := r.uploadScreenshot(ctx, screenshot); url != "" {
		msg = msg.WithScreenshot(url)
	}

	if err := r.Poster.PostReport(ctx, channelID, msg); err != nil {
		r.Log.Error("posting final report failed", "err", err)
		return
	}
	r.Log.Info("runs complete", "url", req.URL, "succeeded", len(records), "requested", req.Count, "took", time.Since(start))
}

func (r *Runner) reportRunFailure(ctx context.Context, channelID string, ordinal, total int, cause error) {
	r.Log.Error("run failed", "ordinal", ordinal, "total", total, "err", cause)
	text := fmt.Sprintf("Test %d of %d failed: %v", ordinal, total, cause)
	if err := r.Poster.PostText(ctx, channelID, text); err != nil {
		r.Log.Error("posting run failure failed", "err", err)
	}
}

// uploadScreenshot decodes the final-screenshot data URL and pushes it to the
// store. Returns "" when the store is unconfigured, the audit was absent, or
// the upload failed; the report then goes out without an image.
func (r *Runner) uploadScreenshot(ctx context.Context, dataURL string) string {
	if r.Screenshots == nil || dataURL == "" {
		return ""
	}

	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return ""
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		r.Log.Error("decoding screenshot failed", "err", err)
		return ""
	}

	ext := "jpg"
	if strings.Contains(contentType, "png") {
		ext = "png"
	}
	key := fmt.Sprintf("screenshots/%s.%s", uuid.NewString(), ext)

	url, err := r.Screenshots.Upload(ctx, key, contentType, data)
	if err != nil {
		r.Log.Error("uploading screenshot failed", "key", key, "err", err)
		return ""
	}
	return url
}
