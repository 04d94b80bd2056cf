package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igotm1lk/slackbot/internal/models"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.RunRequest
	}{
		{
			name: "URLOnly",
			text: "https://a.com",
			want: models.RunRequest{URL: "https://a.com", Count: 1, Strategy: models.StrategyMobile},
		},
		{
			name: "URLAndCount",
			text: "https://a.com 3",
			want: models.RunRequest{URL: "https://a.com", Count: 3, Strategy: models.StrategyMobile},
		},
		{
			name: "URLAndStrategy",
			text: "https://a.com desktop",
			want: models.RunRequest{URL: "https://a.com", Count: 1, Strategy: models.StrategyDesktop},
		},
		{
			name: "URLCountAndStrategy",
			text: "https://a.com 5 desktop",
			want: models.RunRequest{URL: "https://a.com", Count: 5, Strategy: models.StrategyDesktop},
		},
		{
			name: "StrategyIsCaseInsensitive",
			text: "https://a.com DESKTOP",
			want: models.RunRequest{URL: "https://a.com", Count: 1, Strategy: models.StrategyDesktop},
		},
		{
			name: "UnknownStrategyFallsBackToMobile",
			text: "https://a.com 2 tablet",
			want: models.RunRequest{URL: "https://a.com", Count: 2, Strategy: models.StrategyMobile},
		},
		{
			name: "UnknownSecondTokenLeavesDefaults",
			text: "https://a.com fast",
			want: models.RunRequest{URL: "https://a.com", Count: 1, Strategy: models.StrategyMobile},
		},
		{
			name: "HTTPSchemeAccepted",
			text: "http://a.com",
			want: models.RunRequest{URL: "http://a.com", Count: 1, Strategy: models.StrategyMobile},
		},
		{
			name: "ExtraWhitespaceIgnored",
			text: "  https://a.com   4   desktop  ",
			want: models.RunRequest{URL: "https://a.com", Count: 4, Strategy: models.StrategyDesktop},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Validation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "EmptyText", text: ""},
		{name: "UnsupportedScheme", text: "ftp://a.com"},
		{name: "NoScheme", text: "a.com"},
		{name: "CountTooHigh", text: "https://a.com 11"},
		{name: "CountTooLow", text: "https://a.com 0"},
		{name: "NegativeCount", text: "https://a.com -3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommand(tt.text)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.NotEmpty(t, vErr.Message)
		})
	}
}
