package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort             = "8080"
	defaultWebhookTolerance = "5m"
	defaultStripeAPIBase    = "https://api.stripe.com"
)

// Config carries every environment option the process recognizes.
// Values are opaque strings to the components that consume them.
type Config struct {
	Port                string
	DatabaseURL         string
	StripeSecretKey     string
	StripeWebhookSecret string
	StripeAPIBase       string
	ClientBaseURL       string
	WebhookTolerance    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", defaultPort),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		StripeSecretKey:     strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		StripeWebhookSecret: strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET")),
		StripeAPIBase:       getEnv("STRIPE_API_BASE", defaultStripeAPIBase),
		ClientBaseURL:       strings.TrimSpace(os.Getenv("CLIENT_URL")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	var err error
	cfg.WebhookTolerance, err = parseDurationEnv("WEBHOOK_TOLERANCE", defaultWebhookTolerance)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return d, nil
}
