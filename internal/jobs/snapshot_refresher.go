package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// SnapshotRunner builds and announces one pricing snapshot.
type SnapshotRunner interface {
	Run(ctx context.Context, mode model.Mode, services []model.Service) (*model.Snapshot, error)
}

// SnapshotRefresher periodically rebuilds a snapshot so downstream consumers
// receive a fresh snapshot event without polling the HTTP API.
type SnapshotRefresher struct {
	logger   *zap.Logger
	runner   SnapshotRunner
	mode     model.Mode
	services []model.Service
	interval time.Duration
	after    func(*model.Snapshot)

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSnapshotRefresher constructs a background job. after, when non-nil, runs
// after every successful refresh.
func NewSnapshotRefresher(
	logger *zap.Logger,
	runner SnapshotRunner,
	mode model.Mode,
	services []model.Service,
	interval time.Duration,
	after func(*model.Snapshot),
) *SnapshotRefresher {
	return &SnapshotRefresher{
		logger:   logger,
		runner:   runner,
		mode:     mode,
		services: services,
		interval: interval,
		after:    after,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the refresh loop until Stop or ctx cancellation.
func (r *SnapshotRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("snapshot_refresher.started",
		zap.Duration("interval", r.interval),
		zap.String("mode", string(r.mode)))

	for {
		select {
		case <-ticker.C:
			r.runOnce(ctx)
		case <-r.stopCh:
			r.logger.Info("snapshot_refresher.stopped (manual stop)")
			return
		case <-ctx.Done():
			r.logger.Info("snapshot_refresher.stopped (context canceled)")
			return
		}
	}
}

// Stop halts the refresher. Safe to call more than once.
func (r *SnapshotRefresher) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

func (r *SnapshotRefresher) runOnce(ctx context.Context) {
	start := time.Now()
	r.logger.Info("snapshot_refresher.running")

	snap, err := r.runner.Run(ctx, r.mode, r.services)
	if err != nil {
		r.logger.Error("snapshot_refresher.refresh_failed", zap.Error(err))
		return
	}
	if r.after != nil {
		r.after(snap)
	}

	r.logger.Info("snapshot_refresher.success",
		zap.String("run_id", snap.RunID),
		zap.Int("offerings", snap.Offerings()),
		zap.Duration("duration", time.Since(start)))
}
