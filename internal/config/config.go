package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the bot reads from the environment. It is built once
// in main and passed by reference; nothing else touches os.Getenv.
type Config struct {
	Port string

	SlackBotToken      string
	SlackSigningSecret string

	// PagespeedAPIKey may be empty at startup; its absence is surfaced to the
	// user on the first command instead of preventing the process from serving.
	PagespeedAPIKey string

	SentryDSN    string
	OTLPEndpoint string

	S3ServiceURL string
	S3AccessKey  string
	S3SecretKey  string
	S3BucketName string
	S3PublicURL  string

	ScreenshotTTL time.Duration
}

// Load reads the configuration from the environment. Only the Slack
// credentials are required to start.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               os.Getenv("PORT"),
		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackSigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		PagespeedAPIKey:    os.Getenv("PAGESPEED_API_KEY"),
		SentryDSN:          os.Getenv("SENTRY_DSN"),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		S3ServiceURL:       os.Getenv("S3_SERVICE_URL"),
		S3AccessKey:        os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:        os.Getenv("S3_SECRET_KEY"),
		S3BucketName:       os.Getenv("S3_BUCKET_NAME"),
		S3PublicURL:        os.Getenv("S3_PUBLIC_URL"),
		ScreenshotTTL:      24 * time.Hour,
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.S3BucketName == "" {
		cfg.S3BucketName = "psi-screenshots"
	}
	if v := os.Getenv("SCREENSHOT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCREENSHOT_TTL %q: %w", v, err)
		}
		cfg.ScreenshotTTL = ttl
	}

	if cfg.SlackBotToken == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if cfg.SlackSigningSecret == "" {
		return nil, fmt.Errorf("SLACK_SIGNING_SECRET is required")
	}

	return cfg, nil
}

// StorageEnabled reports whether screenshot storage is configured.
func (c *Config) StorageEnabled() bool {
	return c.S3ServiceURL != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
