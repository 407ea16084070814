// Package repository defines the storage interfaces for the Riskboard domain.
// Implementations live under internal/infrastructure/persistence.
package repository

import (
	"context"
	"time"

	"github.com/mspsec/riskboard/internal/domain/models"
)

// TenantRepository stores managed client organizations.
type TenantRepository interface {
	// Save persists a new tenant.
	Save(ctx context.Context, tenant *models.Tenant) error

	// FindByID retrieves a tenant by id, including soft-deleted ones.
	FindByID(ctx context.Context, id string) (*models.Tenant, error)

	// FindAll retrieves non-deleted tenants with pagination.
	FindAll(ctx context.Context, limit, offset int) ([]*models.Tenant, int64, error)

	// Update persists changes to an existing tenant.
	Update(ctx context.Context, tenant *models.Tenant) error
}

// ReportRepository stores per-period risk reports.
type ReportRepository interface {
	Save(ctx context.Context, report *models.Report) error
	FindByID(ctx context.Context, id string) (*models.Report, error)

	// FindByTenant lists a tenant's reports, newest period first.
	FindByTenant(ctx context.Context, tenantID string) ([]*models.Report, error)

	// FindByPeriod retrieves the report for one tenant and period, or nil
	// when none exists.
	FindByPeriod(ctx context.Context, tenantID string, period models.Period) (*models.Report, error)

	Update(ctx context.Context, report *models.Report) error
}

// SnapshotRepository stores append-only posture snapshots.
type SnapshotRepository interface {
	// Append persists a new snapshot. Snapshots are never updated.
	Append(ctx context.Context, snapshot *models.SecurityMetricSnapshot) error

	// Latest retrieves the most recent snapshot for a tenant, or nil when
	// the tenant has none yet.
	Latest(ctx context.Context, tenantID string) (*models.SecurityMetricSnapshot, error)

	// Range retrieves snapshots collected within [from, to), oldest first.
	Range(ctx context.Context, tenantID string, from, to time.Time) ([]*models.SecurityMetricSnapshot, error)
}

// UserRepository stores staff users.
type UserRepository interface {
	Save(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// InviteRepository stores pending staff invitations.
type InviteRepository interface {
	Save(ctx context.Context, invite *models.Invite) error
	FindByToken(ctx context.Context, token string) (*models.Invite, error)
	FindAll(ctx context.Context) ([]*models.Invite, error)
	Update(ctx context.Context, invite *models.Invite) error
	Delete(ctx context.Context, id string) error
}

// IntegrationRepository stores tenant data-source connections.
type IntegrationRepository interface {
	Save(ctx context.Context, integration *models.Integration) error
	FindByID(ctx context.Context, id string) (*models.Integration, error)
	FindByTenant(ctx context.Context, tenantID string) ([]*models.Integration, error)
	Delete(ctx context.Context, id string) error
}
