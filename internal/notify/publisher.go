package notify

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/metrics"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// EventType tags snapshot notifications.
const EventType = "pricing.snapshot.v1"

// MsgPublisher is the subset of *nats.Conn used to publish.
type MsgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// Publisher announces completed snapshots on a NATS subject.
type Publisher struct {
	conn    MsgPublisher
	subject string
	service string
	logger  *zap.Logger
}

func New(conn MsgPublisher, subject, service string, logger *zap.Logger) *Publisher {
	return &Publisher{conn: conn, subject: subject, service: service, logger: logger}
}

// Connect dials url and returns a Publisher plus the connection for closing.
func Connect(url, subject, service string, logger *zap.Logger) (*Publisher, *nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name(service))
	if err != nil {
		return nil, nil, fmt.Errorf("connect nats: %w", err)
	}
	return New(nc, subject, service, logger), nc, nil
}

// PublishSnapshot publishes a summary of snap. Errors are returned for the caller to log.
func (p *Publisher) PublishSnapshot(snap *model.Snapshot) error {
	ev := model.NewSnapshotEvent(snap)
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal snapshot event: %w", err)
	}

	msg := &nats.Msg{
		Subject: p.subject,
		Data:    data,
		Header: nats.Header{
			"event_type":     []string{EventType},
			"correlation_id": []string{snap.RunID},
			"service":        []string{p.service},
			"content_type":   []string{"application/json"},
		},
	}

	if err := p.conn.PublishMsg(msg); err != nil {
		metrics.IncNATSPublishError(p.subject)
		p.logger.Error("notify.publish_failed",
			zap.String("subject", p.subject),
			zap.String("run_id", snap.RunID),
			zap.Error(err))
		return err
	}

	p.logger.Info("notify.published",
		zap.String("subject", p.subject),
		zap.String("run_id", snap.RunID),
		zap.Int("offerings", ev.Offerings))
	return nil
}
