package normalize

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Checker-Finance/pricefeeds/internal/feed"
	"github.com/Checker-Finance/pricefeeds/internal/metrics"
	"github.com/Checker-Finance/pricefeeds/pkg/logger"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// loader fetches and repairs a feed list in parallel. Results keep catalog order
// so folding stays deterministic; the first failure cancels the rest.
type loader struct {
	fetcher     feed.Fetcher
	concurrency int
	logger      *zap.Logger
}

func newLoader(f feed.Fetcher, concurrency int, logger *zap.Logger) *loader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &loader{fetcher: f, concurrency: concurrency, logger: logger}
}

func (l *loader) loadAll(ctx context.Context, svc model.Service, mode model.Mode, feeds []Feed) ([]*feed.Document, error) {
	docs := make([]*feed.Document, len(feeds))
	log := logger.For(ctx, l.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, f := range feeds {
		i, f := i, f
		g.Go(func() error {
			start := time.Now()
			doc, err := feed.Load(gctx, l.fetcher, f.Path)
			metrics.ObserveDuration(metrics.FeedFetchDuration, start, string(svc), string(mode))
			if err != nil {
				metrics.IncFeedFetch(string(svc), string(mode), "error")
				log.Error("normalize.feed_failed",
					zap.String("mode", string(mode)),
					zap.String("generation", string(f.Generation)),
					zap.String("path", f.Path),
					zap.Error(err))
				return err
			}
			metrics.IncFeedFetch(string(svc), string(mode), "ok")
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
