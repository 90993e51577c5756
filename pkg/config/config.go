package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// ErrUnsupportedCurrency is returned for a currency the pricing feeds do not publish.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// DefaultFeedBaseURL is the root all catalog feed paths are resolved against.
const DefaultFeedBaseURL = "http://a0.awsstatic.com/pricing/1/"

// Config holds the runtime configuration for pricefeeds.
type Config struct {
	ServiceName string
	Env         string
	LogLevel    string

	FeedBaseURL     string
	FeedTimeout     time.Duration
	FeedRetryMax    int
	FeedConcurrency int
	FeedRateRPS     float64
	FeedRateBurst   int
	Currency        string
	Services        []string

	MetricsTextfile string

	NATSURL     string
	NATSSubject string

	// RefreshInterval schedules background snapshots in serve mode; zero disables them.
	RefreshInterval time.Duration
	RefreshMode     string

	Port             int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// Load loads configuration from environment variables and optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName:      GetEnv("SERVICE_NAME", "pricefeeds"),
		Env:              GetEnv("ENV", "dev"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		FeedBaseURL:      GetEnv("FEED_BASE_URL", DefaultFeedBaseURL),
		FeedTimeout:      GetEnvDuration("FEED_TIMEOUT", 30*time.Second),
		FeedRetryMax:     GetEnvInt("FEED_RETRY_MAX", 0),
		FeedConcurrency:  GetEnvInt("FEED_CONCURRENCY", 4),
		FeedRateRPS:      GetEnvFloat("FEED_RATE_RPS", 10),
		FeedRateBurst:    GetEnvInt("FEED_RATE_BURST", 20),
		Currency:         GetEnv("CURRENCY", "USD"),
		Services:         GetEnvList("SERVICES", []string{"ec2", "elasticache", "rds", "redshift"}),
		MetricsTextfile:  GetEnv("METRICS_TEXTFILE", ""),
		NATSURL:          GetEnv("NATS_URL", ""),
		NATSSubject:      GetEnv("NATS_SUBJECT", "evt.pricing.snapshot.v1"),
		RefreshInterval:  GetEnvDuration("REFRESH_INTERVAL", 0),
		RefreshMode:      GetEnv("REFRESH_MODE", "both"),
		Port:             GetEnvInt("HTTP_PORT", 9040),
		HTTPReadTimeout:  GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: GetEnvDuration("HTTP_WRITE_TIMEOUT", 2*time.Minute),
		HTTPIdleTimeout:  GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}
}

// Validate rejects settings that would silently produce empty prices.
func (c *Config) Validate() error {
	if c.Currency != model.DefaultCurrency {
		return fmt.Errorf("%w %q: feeds only publish %s", ErrUnsupportedCurrency, c.Currency, model.DefaultCurrency)
	}
	return nil
}
