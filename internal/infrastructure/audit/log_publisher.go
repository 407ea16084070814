package audit

import (
	"context"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/pkg/logger"
)

// LogPublisher writes audit events to the structured log. Used when Kafka is
// disabled, typically in development.
type LogPublisher struct {
	logger logger.Logger
}

// NewLogPublisher creates a log-backed audit publisher.
func NewLogPublisher(log logger.Logger) service.AuditService {
	return &LogPublisher{logger: log.WithComponent("audit")}
}

// LogEvent records the event at info level.
func (p *LogPublisher) LogEvent(ctx context.Context, event *models.AuditEvent) error {
	p.logger.Info(ctx, "audit event",
		logger.String("event_id", event.EventID),
		logger.String("event_type", event.EventType),
		logger.String("tenant_id", event.TenantID),
		logger.String("actor_id", event.ActorID),
		logger.String("message", event.Message),
	)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error { return nil }
