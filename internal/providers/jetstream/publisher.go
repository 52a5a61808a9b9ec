package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/lampworks/moth-bridge/internal/adapter"
	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/messaging"
	"github.com/lampworks/moth-bridge/internal/metrics"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	prefix string
	json   adapter.JSON
}

// NewPublisher creates a new NATS JetStream snapshot publisher.
// An empty URL yields a no-op publisher.
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	if cfg.URL == "" {
		logger.Info("NATS URL not configured, ownership snapshots will not be published")
		return messaging.NewNoopPublisher(), nil
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &publisher{
		nc:     nc,
		js:     js,
		prefix: cfg.SubjectPrefix,
		json:   jsonAdapter,
	}, nil
}

// PublishSnapshot publishes an ownership snapshot to NATS JetStream
func (p *publisher) PublishSnapshot(ctx context.Context, snapshot *domain.OwnershipSnapshot) error {
	logger.DebugCtx(ctx, "Publishing ownership snapshot",
		zap.String("scan_id", snapshot.ScanID),
		zap.String("owner", snapshot.Owner),
		zap.Int("tokens", len(snapshot.TokenIDs)))

	data, err := p.json.Marshal(snapshot)
	if err != nil {
		metrics.SnapshotsPublished.WithLabelValues(metrics.OutcomeError).Inc()
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	subject := messaging.Subject(p.prefix, snapshot.Chain)
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		metrics.SnapshotsPublished.WithLabelValues(metrics.OutcomeError).Inc()
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	metrics.SnapshotsPublished.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
