package notify

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/metrics"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

type fakeConn struct {
	msgs []*nats.Msg
	err  error
}

func (f *fakeConn) PublishMsg(m *nats.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, m)
	return nil
}

func snapshot() *model.Snapshot {
	s := model.NewSnapshot("run-42", model.ModeOnDemand, []model.Service{model.ServiceRedshift})
	doc := model.NewOnDemandDocument(model.DefaultCurrency)
	doc.Regions = []model.OnDemandRegion{{Region: "us-east-1", InstanceTypes: []model.OnDemandOffering{{Type: "dc1.large"}}}}
	s.OnDemand[model.ServiceRedshift] = doc
	return s
}

func TestPublishSnapshot(t *testing.T) {
	conn := &fakeConn{}
	p := New(conn, "evt.pricing.snapshot.v1", "pricefeeds", zap.NewNop())

	require.NoError(t, p.PublishSnapshot(snapshot()))
	require.Len(t, conn.msgs, 1)

	msg := conn.msgs[0]
	assert.Equal(t, "evt.pricing.snapshot.v1", msg.Subject)
	assert.Equal(t, "run-42", msg.Header.Get("correlation_id"))
	assert.Equal(t, EventType, msg.Header.Get("event_type"))

	var ev model.SnapshotEvent
	require.NoError(t, json.Unmarshal(msg.Data, &ev))
	assert.Equal(t, model.ModeOnDemand, ev.Mode)
	assert.Equal(t, 1, ev.Regions)
	assert.Equal(t, 1, ev.Offerings)
}

func TestPublishSnapshot_Error(t *testing.T) {
	subject := "evt.pricing.test"
	before := testutil.ToFloat64(metrics.NATSPublishErrors.WithLabelValues(subject))

	p := New(&fakeConn{err: errors.New("nats: connection closed")}, subject, "pricefeeds", zap.NewNop())
	assert.Error(t, p.PublishSnapshot(snapshot()))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.NATSPublishErrors.WithLabelValues(subject)))
}
