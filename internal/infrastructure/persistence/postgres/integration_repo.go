package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// integrationDBM is the database model for the integrations table.
type integrationDBM struct {
	ID          string `gorm:"primaryKey"`
	TenantID    string `gorm:"index"`
	Type        string
	DirectoryID string
	ClientID    string
	SecretRef   string
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (integrationDBM) TableName() string {
	return "integrations"
}

func (dbm *integrationDBM) toDomain() *models.Integration {
	return &models.Integration{
		ID:          dbm.ID,
		TenantID:    dbm.TenantID,
		Type:        dbm.Type,
		DirectoryID: dbm.DirectoryID,
		ClientID:    dbm.ClientID,
		SecretRef:   dbm.SecretRef,
		Enabled:     dbm.Enabled,
		CreatedAt:   dbm.CreatedAt,
		UpdatedAt:   dbm.UpdatedAt,
	}
}

// IntegrationRepoImpl implements IntegrationRepository using Postgres.
type IntegrationRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewIntegrationRepository creates a Postgres-backed integration repository.
func NewIntegrationRepository(db *gorm.DB, log logger.Logger) repository.IntegrationRepository {
	return &IntegrationRepoImpl{db: db, log: log}
}

// Save creates a new integration record.
func (r *IntegrationRepoImpl) Save(ctx context.Context, integration *models.Integration) error {
	dbm := &integrationDBM{
		ID:          integration.ID,
		TenantID:    integration.TenantID,
		Type:        integration.Type,
		DirectoryID: integration.DirectoryID,
		ClientID:    integration.ClientID,
		SecretRef:   integration.SecretRef,
		Enabled:     integration.Enabled,
		CreatedAt:   integration.CreatedAt,
		UpdatedAt:   integration.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(dbm).Error; err != nil {
		return errors.ErrDatabase(err)
	}
	return nil
}

// FindByID retrieves an integration by id.
func (r *IntegrationRepoImpl) FindByID(ctx context.Context, id string) (*models.Integration, error) {
	var dbm integrationDBM
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound("integration", id)
		}
		return nil, errors.ErrDatabase(err)
	}
	return dbm.toDomain(), nil
}

// FindByTenant lists a tenant's integrations.
func (r *IntegrationRepoImpl) FindByTenant(ctx context.Context, tenantID string) ([]*models.Integration, error) {
	var dbms []integrationDBM
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at").
		Find(&dbms).Error
	if err != nil {
		return nil, errors.ErrDatabase(err)
	}
	integrations := make([]*models.Integration, 0, len(dbms))
	for i := range dbms {
		integrations = append(integrations, dbms[i].toDomain())
	}
	return integrations, nil
}

// Delete removes an integration.
func (r *IntegrationRepoImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&integrationDBM{})
	if result.Error != nil {
		return errors.ErrDatabase(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound("integration", id)
	}
	r.log.Info(ctx, "integration deleted", logger.String("integration_id", id))
	return nil
}
