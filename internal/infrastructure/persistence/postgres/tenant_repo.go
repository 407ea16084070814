package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// tenantDBM is the database model for the tenants table.
type tenantDBM struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	Industry  string
	Status    string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (tenantDBM) TableName() string {
	return "tenants"
}

func (dbm *tenantDBM) toDomain() *models.Tenant {
	return &models.Tenant{
		ID:        dbm.ID,
		Name:      dbm.Name,
		Industry:  dbm.Industry,
		Status:    constants.TenantStatus(dbm.Status),
		CreatedAt: dbm.CreatedAt,
		UpdatedAt: dbm.UpdatedAt,
		DeletedAt: dbm.DeletedAt,
	}
}

func tenantFromDomain(t *models.Tenant) *tenantDBM {
	return &tenantDBM{
		ID:        t.ID,
		Name:      t.Name,
		Industry:  t.Industry,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		DeletedAt: t.DeletedAt,
	}
}

// TenantRepoImpl implements TenantRepository using Postgres.
type TenantRepoImpl struct {
	db  *gorm.DB
	log logger.Logger
}

// NewTenantRepository creates a Postgres-backed tenant repository.
func NewTenantRepository(db *gorm.DB, log logger.Logger) repository.TenantRepository {
	return &TenantRepoImpl{db: db, log: log}
}

// Save creates a new tenant record.
func (r *TenantRepoImpl) Save(ctx context.Context, tenant *models.Tenant) error {
	if err := r.db.WithContext(ctx).Create(tenantFromDomain(tenant)).Error; err != nil {
		r.log.Error(ctx, "failed to create tenant", err,
			logger.String("tenant_name", tenant.Name))
		return errors.ErrDatabase(err)
	}
	r.log.Info(ctx, "tenant created",
		logger.String("tenant_id", tenant.ID),
		logger.String("tenant_name", tenant.Name))
	return nil
}

// FindByID retrieves a tenant by id, including soft-deleted ones.
func (r *TenantRepoImpl) FindByID(ctx context.Context, id string) (*models.Tenant, error) {
	var dbm tenantDBM
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound("tenant", id)
		}
		return nil, errors.ErrDatabase(err)
	}
	return dbm.toDomain(), nil
}

// FindAll retrieves non-deleted tenants ordered by name, with pagination.
func (r *TenantRepoImpl) FindAll(ctx context.Context, limit, offset int) ([]*models.Tenant, int64, error) {
	query := r.db.WithContext(ctx).Model(&tenantDBM{}).Where("deleted_at IS NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.ErrDatabase(err)
	}

	var dbms []tenantDBM
	if err := query.Order("name").Limit(limit).Offset(offset).Find(&dbms).Error; err != nil {
		return nil, 0, errors.ErrDatabase(err)
	}

	tenants := make([]*models.Tenant, 0, len(dbms))
	for i := range dbms {
		tenants = append(tenants, dbms[i].toDomain())
	}
	return tenants, total, nil
}

// Update persists changes to an existing tenant.
func (r *TenantRepoImpl) Update(ctx context.Context, tenant *models.Tenant) error {
	result := r.db.WithContext(ctx).
		Model(&tenantDBM{}).
		Where("id = ?", tenant.ID).
		Select("Name", "Industry", "Status", "UpdatedAt", "DeletedAt").
		Updates(tenantFromDomain(tenant))
	if result.Error != nil {
		r.log.Error(ctx, "failed to update tenant", result.Error,
			logger.String("tenant_id", tenant.ID))
		return errors.ErrDatabase(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound("tenant", tenant.ID)
	}
	return nil
}
