package service

import (
	"context"

	"github.com/mspsec/riskboard/internal/domain/models"
)

// AuditService records staff mutations for later review. Implementations must
// not fail the originating request when the audit sink is degraded.
type AuditService interface {
	LogEvent(ctx context.Context, event *models.AuditEvent) error
	Close() error
}
