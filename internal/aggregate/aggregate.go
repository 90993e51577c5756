package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Checker-Finance/pricefeeds/internal/normalize"
	"github.com/Checker-Finance/pricefeeds/pkg/logger"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// Aggregator drives the per-service normalizers and assembles a Snapshot.
type Aggregator struct {
	normalizers map[model.Service]normalize.Normalizer
	logger      *zap.Logger
}

// New returns an Aggregator over the given normalizers.
func New(normalizers map[model.Service]normalize.Normalizer, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{normalizers: normalizers, logger: logger}
}

// Build runs every selected service for mode and returns the combined snapshot.
// An empty selection means every service. Any normalizer failure aborts the run.
func (a *Aggregator) Build(ctx context.Context, runID string, mode model.Mode, services []model.Service) (*model.Snapshot, error) {
	if len(services) == 0 {
		services = model.Services
	}
	for _, svc := range services {
		if _, ok := a.normalizers[svc]; !ok {
			return nil, fmt.Errorf("no normalizer for service %q", svc)
		}
	}

	ctx = logger.WithRunID(ctx, runID)
	start := time.Now()
	snap := model.NewSnapshot(runID, mode, services)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, svc := range services {
		svc := svc
		n := a.normalizers[svc]
		if mode != model.ModeReserved {
			g.Go(func() error {
				doc, err := n.OnDemand(gctx)
				if err != nil {
					return fmt.Errorf("%s ondemand: %w", svc, err)
				}
				mu.Lock()
				snap.OnDemand[svc] = doc
				mu.Unlock()
				return nil
			})
		}
		if mode != model.ModeOnDemand {
			g.Go(func() error {
				doc, err := n.Reserved(gctx)
				if err != nil {
					return fmt.Errorf("%s reserved: %w", svc, err)
				}
				mu.Lock()
				snap.Reserved[svc] = doc
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		a.logger.Error("aggregate.failed",
			zap.String("run_id", runID),
			zap.String("mode", string(mode)),
			zap.Error(err))
		return nil, err
	}

	a.logger.Info("aggregate.completed",
		zap.String("run_id", runID),
		zap.String("mode", string(mode)),
		zap.Int("services", len(services)),
		zap.Int("regions", snap.Regions()),
		zap.Int("offerings", snap.Offerings()),
		zap.Duration("elapsed", time.Since(start)))
	return snap, nil
}

// ParseServices converts names to services, rejecting unknown ones. Empty input selects all.
func ParseServices(names []string) ([]model.Service, error) {
	if len(names) == 0 {
		return model.Services, nil
	}
	seen := make(map[model.Service]bool, len(names))
	var out []model.Service
	for _, n := range names {
		svc, ok := model.AsService(n)
		if !ok {
			return nil, fmt.Errorf("unknown service %q", n)
		}
		if !seen[svc] {
			seen[svc] = true
			out = append(out, svc)
		}
	}
	return out, nil
}
