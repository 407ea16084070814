package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Audit event types for admin and analyst mutations.
const (
	AuditTenantCreated      = "tenant.created"
	AuditTenantUpdated      = "tenant.updated"
	AuditTenantDeleted      = "tenant.deleted"
	AuditReportCreated      = "report.created"
	AuditReportSubmitted    = "report.submitted"
	AuditReportApproved     = "report.approved"
	AuditReportSent         = "report.sent"
	AuditInviteCreated      = "invite.created"
	AuditInviteAccepted     = "invite.accepted"
	AuditIntegrationCreated = "integration.created"
	AuditIntegrationDeleted = "integration.deleted"
)

// AuditEvent records one staff mutation against a tenant or its resources.
type AuditEvent struct {
	EventID   string          `json:"event_id"`
	TenantID  string          `json:"tenant_id,omitempty"`
	ActorID   string          `json:"actor_id"`
	EventType string          `json:"event_type"`
	Message   string          `json:"message"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewAuditEvent creates an audit event stamped with the current time.
func NewAuditEvent(tenantID, actorID, eventType, message string) *AuditEvent {
	return &AuditEvent{
		EventID:   uuid.NewString(),
		TenantID:  tenantID,
		ActorID:   actorID,
		EventType: eventType,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}
