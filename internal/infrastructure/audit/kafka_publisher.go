// Package audit implements the AuditService interface using Kafka.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mspsec/riskboard/internal/config"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/pkg/logger"
)

// KafkaPublisher writes audit events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

// NewKafkaPublisher creates a Kafka-backed audit publisher.
func NewKafkaPublisher(cfg *config.KafkaConfig, log logger.Logger) (service.AuditService, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 100 * time.Millisecond,
	}
	return &KafkaPublisher{
		writer: writer,
		logger: log.WithComponent("audit"),
	}, nil
}

// LogEvent sends an audit event to the topic. Events are keyed by tenant so a
// tenant's history stays ordered within a partition.
func (p *KafkaPublisher) LogEvent(ctx context.Context, event *models.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(ctx, "failed to marshal audit event", err)
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.TenantID),
		Value: payload,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to write audit event", err,
			logger.String("event_type", event.EventType))
	}
	return err
}

// Close closes the underlying Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
