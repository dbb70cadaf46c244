// Package events publishes audit records to NATS JetStream.
//
// The audit stream is optional: a nil *Publisher is a no-op, so the
// service runs unchanged without a broker. Conversation threads
// themselves are never written here; only exchange and batch
// metadata is.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/snowcore/sourcing-assistant/internal/model"
	"github.com/snowcore/sourcing-assistant/pkg/logger"
)

const (
	// StreamName is the name of the audit stream.
	StreamName = "SOURCING_AUDIT"

	// SubjectPrefix is the prefix for all audit subjects.
	SubjectPrefix = "audit"
)

// Config holds NATS connection configuration.
type Config struct {
	URL   string
	Token string
}

// Publisher publishes audit events to JetStream.
type Publisher struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	logger *logger.Logger
}

// Connect establishes a NATS connection and ensures the audit stream
// exists.
func Connect(ctx context.Context, cfg Config, log *logger.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}

	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p := &Publisher{conn: nc, js: js, logger: log}
	if err := p.ensureStream(ctx); err != nil {
		nc.Close()
		return nil, err
	}

	return p, nil
}

func (p *Publisher) ensureStream(ctx context.Context) error {
	if _, err := p.js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := p.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Description: "Assistant exchange and query batch audit records",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}

// IsConnected reports whether the publisher has a live connection.
func (p *Publisher) IsConnected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// PublishExchange publishes one assistant exchange audit record.
// Publish failures are logged, not surfaced; auditing never breaks an
// interaction.
func (p *Publisher) PublishExchange(ctx context.Context, record model.ExchangeAudit) {
	subject := fmt.Sprintf("%s.%s.%s", SubjectPrefix, model.AuditEventExchange, record.Persona)
	p.publish(ctx, subject, record)
}

// PublishBatch publishes one batch execution audit record.
func (p *Publisher) PublishBatch(ctx context.Context, record model.BatchAudit) {
	subject := fmt.Sprintf("%s.%s.%s", SubjectPrefix, model.AuditEventBatch, record.Page)
	p.publish(ctx, subject, record)
}

func (p *Publisher) publish(ctx context.Context, subject string, record any) {
	if p == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		p.logger.Error("failed to marshal audit record", zap.Error(err), zap.String("subject", subject))
		return
	}

	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		p.logger.Warn("failed to publish audit record", zap.Error(err), zap.String("subject", subject))
	}
}
