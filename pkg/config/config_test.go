package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ─── Env helpers ───────────────────────────────────────────────────────

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("PF_INT", "7")
	t.Setenv("PF_BAD_INT", "seven")
	t.Setenv("PF_FLOAT", "2.5")
	t.Setenv("PF_BOOL", "true")
	t.Setenv("PF_DUR", "90s")
	t.Setenv("PF_LIST", " ec2, ,rds ")

	assert.Equal(t, 7, GetEnvInt("PF_INT", 1))
	assert.Equal(t, 1, GetEnvInt("PF_BAD_INT", 1))
	assert.Equal(t, 2.5, GetEnvFloat("PF_FLOAT", 0))
	assert.True(t, GetEnvBool("PF_BOOL", false))
	assert.Equal(t, 90*time.Second, GetEnvDuration("PF_DUR", time.Second))
	assert.Equal(t, []string{"ec2", "rds"}, GetEnvList("PF_LIST", nil))
	assert.Equal(t, "fallback", GetEnv("PF_UNSET", "fallback"))
}

// ─── Load ──────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVICE_NAME", "ENV", "LOG_LEVEL", "FEED_BASE_URL", "FEED_TIMEOUT",
		"FEED_RETRY_MAX", "FEED_CONCURRENCY", "FEED_RATE_RPS", "FEED_RATE_BURST",
		"CURRENCY", "SERVICES", "METRICS_TEXTFILE", "NATS_URL", "NATS_SUBJECT", "HTTP_PORT",
		"REFRESH_INTERVAL", "REFRESH_MODE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "pricefeeds", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, DefaultFeedBaseURL, cfg.FeedBaseURL)
	assert.Equal(t, 30*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 0, cfg.FeedRetryMax)
	assert.Equal(t, 4, cfg.FeedConcurrency)
	assert.Equal(t, 10.0, cfg.FeedRateRPS)
	assert.Equal(t, 20, cfg.FeedRateBurst)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, []string{"ec2", "elasticache", "rds", "redshift"}, cfg.Services)
	assert.Empty(t, cfg.NATSURL)
	assert.Equal(t, "evt.pricing.snapshot.v1", cfg.NATSSubject)
	assert.Equal(t, 9040, cfg.Port)
	assert.Zero(t, cfg.RefreshInterval)
	assert.Equal(t, "both", cfg.RefreshMode)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FEED_BASE_URL", "http://localhost:8080/pricing/")
	t.Setenv("FEED_CONCURRENCY", "1")
	t.Setenv("SERVICES", "rds")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("REFRESH_INTERVAL", "15m")

	cfg := Load()

	assert.Equal(t, "http://localhost:8080/pricing/", cfg.FeedBaseURL)
	assert.Equal(t, 1, cfg.FeedConcurrency)
	assert.Equal(t, []string{"rds"}, cfg.Services)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
}

// ─── Validate ──────────────────────────────────────────────────────────

func TestValidate_Currency(t *testing.T) {
	t.Setenv("CURRENCY", "")
	assert.NoError(t, Load().Validate())

	t.Setenv("CURRENCY", "EUR")
	assert.ErrorIs(t, Load().Validate(), ErrUnsupportedCurrency)
}
