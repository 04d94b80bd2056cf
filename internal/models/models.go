package models

// Strategy selects the simulated device profile for a Pagespeed run.
type Strategy string

const (
	StrategyMobile  Strategy = "mobile"
	StrategyDesktop Strategy = "desktop"
)

// RunRequest is one parsed /psi invocation.
type RunRequest struct {
	URL      string
	Count    int
	Strategy Strategy
}

// Record is the flat projection of a single Lighthouse run.
type Record struct {
	PerformanceScore   int
	AccessibilityScore int
	BestPracticesScore int
	SEOScore           int

	FirstContentfulPaintMS   float64
	LargestContentfulPaintMS float64
	SpeedIndexMS             float64
	TimeToInteractiveMS      float64
	TotalBlockingTimeMS      float64
	CumulativeLayoutShift    float64

	FinalURL string
}

// Aggregate is the arithmetic mean of one or more Records.
// FinalURL is taken from the first contributing record.
type Aggregate struct {
	Record
	Samples int
}

// Pagespeed Insights v5 API Data Models

type PagespeedResponse struct {
	Error            *APIErrorBody     `json:"error"`
	LighthouseResult *LighthouseResult `json:"lighthouseResult"`
}

type APIErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type LighthouseResult struct {
	FinalURL   string      `json:"finalUrl"`
	Categories *Categories `json:"categories"`
	Audits     *Audits     `json:"audits"`
}

type Categories struct {
	Performance   *Category `json:"performance"`
	Accessibility *Category `json:"accessibility"`
	BestPractices *Category `json:"best-practices"`
	SEO           *Category `json:"seo"`
}

type Category struct {
	Score float64 `json:"score"`
}

type Audits struct {
	FirstContentfulPaint   *Audit `json:"first-contentful-paint"`
	LargestContentfulPaint *Audit `json:"largest-contentful-paint"`
	SpeedIndex             *Audit `json:"speed-index"`
	Interactive            *Audit `json:"interactive"`
	TotalBlockingTime      *Audit `json:"total-blocking-time"`
	CumulativeLayoutShift  *Audit `json:"cumulative-layout-shift"`
	FinalScreenshot        *Audit `json:"final-screenshot"`
}

type Audit struct {
	NumericValue float64       `json:"numericValue"`
	Details      *AuditDetails `json:"details"`
}

type AuditDetails struct {
	// Data holds the rendered screenshot as a data: URL.
	Data string `json:"data"`
}
