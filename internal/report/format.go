package report

import (
	"fmt"
	"math"

	"github.com/slack-go/slack"

	"github.com/igotm1lk/slackbot/internal/models"
)

// Message is a rendered report ready for chat.postMessage.
type Message struct {
	Fallback string
	Blocks   []slack.Block
}

// Single renders one run's record. When total > 1 the title carries the run's
// ordinal so intermediate reports of a multi-run invocation stay attributable.
func Single(rec models.Record, strategy models.Strategy, ordinal, total int) Message {
	title := fmt.Sprintf("PageSpeed Insights — %s", strategy)
	if total > 1 {
		title = fmt.Sprintf("PageSpeed Insights — %s, test %d of %d", strategy, ordinal, total)
	}
	footer := fmt.Sprintf("Resolved URL: %s", rec.FinalURL)

	return Message{
		Fallback: fmt.Sprintf("%s: performance %d for %s", title, rec.PerformanceScore, rec.FinalURL),
		Blocks:   buildBlocks(title, rec, footer),
	}
}

// Average renders the aggregate of a multi-run invocation.
func Average(agg models.Aggregate, strategy models.Strategy) Message {
	title := fmt.Sprintf("PageSpeed Insights — %s, average of %d tests", strategy, agg.Samples)
	footer := fmt.Sprintf("Resolved URL: %s • averaged over %d successful runs", agg.FinalURL, agg.Samples)

	return Message{
		Fallback: fmt.Sprintf("%s: performance %d for %s", title, agg.PerformanceScore, agg.FinalURL),
		Blocks:   buildBlocks(title, agg.Record, footer),
	}
}

// WithScreenshot returns a copy of the message with an image block inserted
// ahead of the trailing context footer.
func (m Message) WithScreenshot(url string) Message {
	if len(m.Blocks) == 0 {
		return m
	}
	image := slack.NewImageBlock(url, "page screenshot", "", nil)
	blocks := make([]slack.Block, 0, len(m.Blocks)+1)
	blocks = append(blocks, m.Blocks[:len(m.Blocks)-1]...)
	blocks = append(blocks, image, m.Blocks[len(m.Blocks)-1])
	m.Blocks = blocks
	return m
}

func buildBlocks(title string, rec models.Record, footer string) []slack.Block {
	scores := []*slack.TextBlockObject{
		scoreField("Performance", rec.PerformanceScore),
		scoreField("Accessibility", rec.AccessibilityScore),
		scoreField("Best Practices", rec.BestPracticesScore),
		scoreField("SEO", rec.SEOScore),
	}

	// Unit conversion happens here and nowhere else: paint/speed/interactive
	// metrics in seconds, blocking time in whole milliseconds, layout shift
	// as a bare three-decimal value.
	timings := []*slack.TextBlockObject{
		mrkdwnField("First Contentful Paint", seconds(rec.FirstContentfulPaintMS)),
		mrkdwnField("Largest Contentful Paint", seconds(rec.LargestContentfulPaintMS)),
		mrkdwnField("Speed Index", seconds(rec.SpeedIndexMS)),
		mrkdwnField("Time to Interactive", seconds(rec.TimeToInteractiveMS)),
		mrkdwnField("Total Blocking Time", fmt.Sprintf("%d ms", int(math.Round(rec.TotalBlockingTimeMS)))),
		mrkdwnField("Cumulative Layout Shift", fmt.Sprintf("%.3f", rec.CumulativeLayoutShift)),
	}

	return []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, title, true, false)),
		slack.NewSectionBlock(nil, scores, nil),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(nil, timings, nil),
		slack.NewContextBlock("", slack.NewTextBlockObject(slack.MarkdownType, footer, false, false)),
	}
}

func scoreField(label string, score int) *slack.TextBlockObject {
	return mrkdwnField(label, fmt.Sprintf("%s %d", tierEmoji(score), score))
}

func mrkdwnField(label, value string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s*\n%s", label, value), false, false)
}

func seconds(ms float64) string {
	return fmt.Sprintf("%.2f s", ms/1000)
}

// tierEmoji maps a 0-100 score onto the Lighthouse tiers: 90 and up is good,
// 50-89 needs improvement, below 50 is poor.
func tierEmoji(score int) string {
	switch {
	case score >= 90:
		return "🟢"
	case score >= 50:
		return "🟠"
	default:
		return "🔴"
	}
}
