package normalize

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/feed"
	"github.com/Checker-Finance/pricefeeds/internal/metrics"
	"github.com/Checker-Finance/pricefeeds/pkg/logger"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

var (
	ErrUnknownMultiAZ        = errors.New("unknown multi-az family")
	ErrUnknownPurchaseOption = errors.New("unknown purchase option")
)

// Normalizer builds the canonical documents for one service.
type Normalizer interface {
	Service() model.Service
	OnDemand(ctx context.Context) (*model.OnDemandDocument, error)
	Reserved(ctx context.Context) (*model.ReservedDocument, error)
}

// Options configure every catalog normalizer.
type Options struct {
	Fetcher     feed.Fetcher
	Logger      *zap.Logger
	Currency    string
	Concurrency int
}

// CatalogNormalizer folds a fixed, ordered list of feeds into documents.
type CatalogNormalizer struct {
	service  model.Service
	onDemand []Feed
	reserved []Feed
	currency string
	loader   *loader
	logger   *zap.Logger
}

func newCatalogNormalizer(svc model.Service, cat Catalog, opts Options) *CatalogNormalizer {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Currency == "" {
		opts.Currency = model.DefaultCurrency
	}
	logger := opts.Logger.With(zap.String("service", string(svc)))
	return &CatalogNormalizer{
		service:  svc,
		onDemand: cat.OnDemand,
		reserved: cat.Reserved,
		currency: opts.Currency,
		loader:   newLoader(opts.Fetcher, opts.Concurrency, logger),
		logger:   logger,
	}
}

func (n *CatalogNormalizer) Service() model.Service { return n.service }

// Feeds returns the catalog for mode.
func (n *CatalogNormalizer) Feeds(mode model.Mode) []Feed {
	if mode == model.ModeReserved {
		return n.reserved
	}
	return n.onDemand
}

// OnDemand loads every on-demand feed and appends one region entry per feed region.
func (n *CatalogNormalizer) OnDemand(ctx context.Context) (*model.OnDemandDocument, error) {
	feeds := n.Feeds(model.ModeOnDemand)
	docs, err := n.loader.loadAll(ctx, n.service, model.ModeOnDemand, feeds)
	if err != nil {
		return nil, err
	}

	log := logger.For(ctx, n.logger)
	b := newOnDemandBuilder(n.currency)
	for i, f := range feeds {
		if err := foldOnDemand(b, f, docs[i], n.currency); err != nil {
			return nil, fmt.Errorf("%s %s: %w", n.service, f.Path, err)
		}
		logFolded(log, model.ModeOnDemand, f, docs[i])
	}

	doc := b.doc
	metrics.SetOfferings(string(n.service), string(model.ModeOnDemand), doc.Offerings())
	log.Info("normalize.completed",
		zap.String("mode", string(model.ModeOnDemand)),
		zap.Int("feeds", len(feeds)),
		zap.Int("regions", len(doc.Regions)),
		zap.Int("offerings", doc.Offerings()))
	return doc, nil
}

// Reserved loads every reserved feed and merges offerings into one entry per region.
func (n *CatalogNormalizer) Reserved(ctx context.Context) (*model.ReservedDocument, error) {
	feeds := n.Feeds(model.ModeReserved)
	docs, err := n.loader.loadAll(ctx, n.service, model.ModeReserved, feeds)
	if err != nil {
		return nil, err
	}

	log := logger.For(ctx, n.logger)
	b := newReservedBuilder(n.currency)
	for i, f := range feeds {
		if err := foldReserved(b, f, docs[i], n.currency); err != nil {
			return nil, fmt.Errorf("%s %s: %w", n.service, f.Path, err)
		}
		logFolded(log, model.ModeReserved, f, docs[i])
	}

	doc := b.doc
	metrics.SetOfferings(string(n.service), string(model.ModeReserved), doc.Offerings())
	log.Info("normalize.completed",
		zap.String("mode", string(model.ModeReserved)),
		zap.Int("feeds", len(feeds)),
		zap.Int("regions", len(doc.Regions)),
		zap.Int("offerings", doc.Offerings()))
	return doc, nil
}

func logFolded(log *zap.Logger, mode model.Mode, f Feed, doc *feed.Document) {
	log.Debug("normalize.feed_folded",
		zap.String("mode", string(mode)),
		zap.String("generation", string(f.Generation)),
		zap.String("path", f.Path),
		zap.Int("regions", len(doc.Regions())))
}

// New returns the normalizer for svc.
func New(svc model.Service, opts Options) (Normalizer, error) {
	switch svc {
	case model.ServiceEC2:
		return NewEC2(opts), nil
	case model.ServiceElastiCache:
		return NewElastiCache(opts), nil
	case model.ServiceRDS:
		return NewRDS(opts), nil
	case model.ServiceRedshift:
		return NewRedshift(opts), nil
	default:
		return nil, fmt.Errorf("unsupported service %q", svc)
	}
}

// All returns one normalizer per supported service, in output order.
func All(opts Options) map[model.Service]Normalizer {
	out := make(map[model.Service]Normalizer, len(model.Services))
	for _, svc := range model.Services {
		n, _ := New(svc, opts)
		out[svc] = n
	}
	return out
}
