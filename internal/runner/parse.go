package runner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/igotm1lk/slackbot/internal/models"
)

const (
	defaultCount = 1
	maxCount     = 10
)

// ValidationError is a user-facing rejection of the command text. No remote
// call is made once one is raised.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ParseCommand turns the free-text argument of /psi into a RunRequest.
//
// The grammar is positional and two-shaped: `<url> [count] [strategy]` or
// `<url> [strategy]`. The second token is tried as a number first; only if
// that fails is it tried as a strategy. Unrecognized strategy tokens fall
// back to mobile silently, while a missing scheme or an out-of-range count
// is rejected. Existing users depend on exactly this behavior.
func ParseCommand(text string) (models.RunRequest, error) {
	req := models.RunRequest{Count: defaultCount, Strategy: models.StrategyMobile}

	parts := strings.Fields(text)
	if len(parts) == 0 {
		return req, &ValidationError{Message: "Usage: `/psi <url> [count] [strategy]` — e.g. `/psi https://example.com 3 desktop`"}
	}

	req.URL = parts[0]
	if len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			req.Count = n
			if len(parts) >= 3 {
				if s, ok := parseStrategy(parts[2]); ok {
					req.Strategy = s
				}
			}
		} else if s, ok := parseStrategy(parts[1]); ok {
			req.Strategy = s
		}
	}

	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		return req, &ValidationError{Message: fmt.Sprintf("`%s` is not a valid URL: it must start with `http://` or `https://`", req.URL)}
	}
	if req.Count < 1 || req.Count > maxCount {
		return req, &ValidationError{Message: fmt.Sprintf("Test count must be between 1 and %d, got %d", maxCount, req.Count)}
	}

	return req, nil
}

func parseStrategy(token string) (models.Strategy, bool) {
	switch strings.ToLower(token) {
	case string(models.StrategyMobile):
		return models.StrategyMobile, true
	case string(models.StrategyDesktop):
		return models.StrategyDesktop, true
	}
	return "", false
}
