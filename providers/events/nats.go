package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"jeewifi-backend/logger"
)

// NatsPublisher pushes engine lifecycle events onto NATS subjects so the
// dashboard can subscribe instead of polling.
type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NatsPublisher{nc: nc}, nil
}

func (p *NatsPublisher) Publish(subject string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.WithError(err).Warnf("Failed to marshal event for %s", subject)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		logger.Logger.WithError(err).Warnf("Failed to publish event to %s", subject)
	}
}

func (p *NatsPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
	}
}
