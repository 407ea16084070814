package dto

import "time"

// CreateIntegrationRequest is the body of POST /tenants/:id/integrations. The
// client secret is written to the secret store and never persisted elsewhere.
type CreateIntegrationRequest struct {
	DirectoryID  string `json:"directory_id" validate:"required,uuid"`
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
}

// IntegrationResponse is an integration rendered for the API. The secret
// itself is never returned, only the reference.
type IntegrationResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Type        string    `json:"type"`
	DirectoryID string    `json:"directory_id"`
	ClientID    string    `json:"client_id"`
	SecretRef   string    `json:"secret_ref"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
}

// IntegrationTestResponse is the result of POST /integrations/:id/test.
type IntegrationTestResponse struct {
	Reachable bool   `json:"reachable"`
	Message   string `json:"message,omitempty"`
}
