package psi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/igotm1lk/slackbot/internal/models"
)

const defaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// APIError is a failed Pagespeed call: either the transport failed, the
// service answered with an error payload, or the response carried no
// Lighthouse result.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("pagespeed: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("pagespeed: %s", e.Message)
}

// Client issues Pagespeed Insights runs. One HTTP GET per call, no retries;
// classifying and isolating failures is the caller's job.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			// A single Lighthouse run regularly takes over a minute.
			Timeout: 2 * time.Minute,
		},
	}
}

// FetchReport runs one analysis and returns the raw report document. The
// returned response always has a non-nil LighthouseResult.
func (c *Client) FetchReport(ctx context.Context, pageURL string, strategy models.Strategy) (*models.PagespeedResponse, error) {
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("key", c.apiKey)
	q.Set("strategy", string(strategy))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("reading response: %v", err)}
	}

	var doc models.PagespeedResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "invalid JSON in response"}
	}

	// Surface the server-provided message when there is one, for HTTP errors
	// as well as error payloads delivered with a 200.
	if doc.Error != nil && doc.Error.Message != "" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: doc.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if doc.LighthouseResult == nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "response carries no lighthouse result"}
	}

	return &doc, nil
}
