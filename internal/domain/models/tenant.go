// Package models defines the domain models for the Riskboard service.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mspsec/riskboard/pkg/constants"
)

// Tenant represents a managed client organization. Each tenant maps 1:1 to a
// Microsoft 365 directory monitored on the client's behalf.
type Tenant struct {
	// ID is the unique identifier for the tenant.
	ID string `json:"id"`

	// Name is the display name of the client organization.
	Name string `json:"name"`

	// Industry is the client's industry sector, used for report context.
	Industry string `json:"industry"`

	// Status indicates the current lifecycle status of the tenant.
	Status constants.TenantStatus `json:"status"`

	// CreatedAt is the timestamp when the tenant was onboarded.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last change to the tenant record.
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt is the soft-delete timestamp. A non-nil value means the
	// tenant is no longer monitored.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewTenant creates a new active Tenant.
func NewTenant(name, industry string) *Tenant {
	now := time.Now().UTC()
	return &Tenant{
		ID:        uuid.NewString(),
		Name:      name,
		Industry:  industry,
		Status:    constants.TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive checks if the tenant is active and not soft-deleted.
func (t *Tenant) IsActive() bool {
	return t.Status == constants.TenantStatusActive && t.DeletedAt == nil
}

// IsSuspended checks if monitoring for the tenant is paused.
func (t *Tenant) IsSuspended() bool {
	return t.Status == constants.TenantStatusSuspended
}

// Suspend pauses monitoring and reporting for the tenant.
func (t *Tenant) Suspend() {
	t.Status = constants.TenantStatusSuspended
	t.UpdatedAt = time.Now().UTC()
}

// Activate resumes monitoring for a previously suspended tenant.
func (t *Tenant) Activate() {
	t.Status = constants.TenantStatusActive
	t.UpdatedAt = time.Now().UTC()
}

// SoftDelete marks the tenant as deleted without destroying its history.
func (t *Tenant) SoftDelete() {
	now := time.Now().UTC()
	t.DeletedAt = &now
	t.Status = constants.TenantStatusDeleted
	t.UpdatedAt = now
}
