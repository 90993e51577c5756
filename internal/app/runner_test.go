package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/feed/feedtest"
	"github.com/Checker-Finance/pricefeeds/pkg/config"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

type recordingNotifier struct {
	snaps []*model.Snapshot
	err   error
}

func (n *recordingNotifier) PublishSnapshot(s *model.Snapshot) error {
	n.snaps = append(n.snaps, s)
	return n.err
}

func testConfig() *config.Config {
	return &config.Config{Currency: "USD", FeedConcurrency: 2, FeedRateRPS: 100, FeedRateBurst: 10}
}

func TestRunner_RunPublishes(t *testing.T) {
	n := &recordingNotifier{}
	r := NewRunner(NewAggregator(testConfig(), feedtest.New(), zap.NewNop()), n, zap.NewNop())

	snap, err := r.Run(context.Background(), model.ModeReserved, []model.Service{model.ServiceEC2})
	require.NoError(t, err)

	_, err = uuid.Parse(snap.RunID)
	assert.NoError(t, err)
	require.Len(t, n.snaps, 1)
	assert.Same(t, snap, n.snaps[0])
}

func TestRunner_NotifyFailureNotFatal(t *testing.T) {
	n := &recordingNotifier{err: errors.New("nats down")}
	r := NewRunner(NewAggregator(testConfig(), feedtest.New(), zap.NewNop()), n, zap.NewNop())

	_, err := r.Run(context.Background(), model.ModeOnDemand, []model.Service{model.ServiceRedshift})
	assert.NoError(t, err)
}

func TestRunner_AggregateFailure(t *testing.T) {
	boom := errors.New("boom")
	f := feedtest.New().Fail("redshift/pricing-on-demand-redshift-instances.min.js", boom)
	n := &recordingNotifier{}
	r := NewRunner(NewAggregator(testConfig(), f, zap.NewNop()), n, zap.NewNop())

	_, err := r.Run(context.Background(), model.ModeOnDemand, []model.Service{model.ServiceRedshift})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, n.snaps)
}

func TestNewFetcher_ServesFromBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pricing/1/redshift/pricing-on-demand-redshift-instances.min.js" {
			_, _ = w.Write([]byte(`callback({config:{regions:[{region:"us-east",instanceTypes:[{tiers:[{size:"dc1.large",valueColumns:[{name:"perhr",prices:{USD:"0.25"}}]}]}]}]}})`))
			return
		}
		_, _ = w.Write([]byte(`callback({})`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.FeedBaseURL = srv.URL + "/pricing/1/"
	fetcher, err := NewFetcher(cfg, zap.NewNop())
	require.NoError(t, err)

	snap, err := NewRunner(NewAggregator(cfg, fetcher, zap.NewNop()), nil, zap.NewNop()).
		Run(context.Background(), model.ModeOnDemand, []model.Service{model.ServiceRedshift})
	require.NoError(t, err)

	doc := snap.OnDemand[model.ServiceRedshift]
	require.Len(t, doc.Regions, 1)
	assert.Equal(t, "us-east-1", doc.Regions[0].Region)
	assert.Equal(t, 0.25, *doc.Regions[0].InstanceTypes[0].Price)
}
