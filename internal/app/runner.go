package app

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/aggregate"
	"github.com/Checker-Finance/pricefeeds/internal/feed"
	"github.com/Checker-Finance/pricefeeds/internal/httpclient"
	"github.com/Checker-Finance/pricefeeds/internal/normalize"
	"github.com/Checker-Finance/pricefeeds/internal/rate"
	"github.com/Checker-Finance/pricefeeds/pkg/config"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// Notifier announces a finished snapshot.
type Notifier interface {
	PublishSnapshot(snap *model.Snapshot) error
}

// Runner builds one fresh snapshot per call.
type Runner struct {
	agg      *aggregate.Aggregator
	notifier Notifier
	logger   *zap.Logger
}

func NewRunner(agg *aggregate.Aggregator, notifier Notifier, logger *zap.Logger) *Runner {
	return &Runner{agg: agg, notifier: notifier, logger: logger}
}

// Run tags the invocation with a run id, aggregates, and publishes a summary.
// A publish failure is logged and does not fail the run.
func (r *Runner) Run(ctx context.Context, mode model.Mode, services []model.Service) (*model.Snapshot, error) {
	runID := uuid.NewString()
	r.logger.Info("run.started",
		zap.String("run_id", runID),
		zap.String("mode", string(mode)),
		zap.Int("services", len(services)))

	snap, err := r.agg.Build(ctx, runID, mode, services)
	if err != nil {
		return nil, err
	}

	if r.notifier != nil {
		if err := r.notifier.PublishSnapshot(snap); err != nil {
			r.logger.Warn("run.notify_failed", zap.String("run_id", runID), zap.Error(err))
		}
	}
	return snap, nil
}

// NewFetcher wires the rate-limited HTTP feed client from cfg.
func NewFetcher(cfg *config.Config, logger *zap.Logger) (*feed.Client, error) {
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: cfg.FeedRateRPS,
		Burst:             cfg.FeedRateBurst,
	})
	exec := httpclient.New(logger, rateMgr, &http.Client{Timeout: cfg.FeedTimeout}, cfg.FeedRetryMax, "feed")
	return feed.NewClient(cfg.FeedBaseURL, exec, logger)
}

// NewAggregator wires every service normalizer over fetcher.
func NewAggregator(cfg *config.Config, fetcher feed.Fetcher, logger *zap.Logger) *aggregate.Aggregator {
	normalizers := normalize.All(normalize.Options{
		Fetcher:     fetcher,
		Logger:      logger,
		Currency:    cfg.Currency,
		Concurrency: cfg.FeedConcurrency,
	})
	return aggregate.New(normalizers, logger)
}
