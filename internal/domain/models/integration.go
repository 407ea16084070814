package models

import (
	"time"

	"github.com/google/uuid"
)

// IntegrationTypeM365 is currently the only supported integration type.
const IntegrationTypeM365 = "m365"

// Integration connects a tenant to its upstream data source. The client
// secret is never stored here; SecretRef points at the Vault path holding it.
type Integration struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Type        string    `json:"type"`
	DirectoryID string    `json:"directory_id"`
	ClientID    string    `json:"client_id"`
	SecretRef   string    `json:"secret_ref"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewIntegration creates an enabled M365 integration for a tenant. The
// secret reference is derived from the integration id.
func NewIntegration(tenantID, directoryID, clientID string) *Integration {
	now := time.Now().UTC()
	id := uuid.NewString()
	return &Integration{
		ID:          id,
		TenantID:    tenantID,
		Type:        IntegrationTypeM365,
		DirectoryID: directoryID,
		ClientID:    clientID,
		SecretRef:   "integrations/" + id,
		Enabled:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
