package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	domainservice "github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
	"github.com/mspsec/riskboard/pkg/utils"
)

// TenantAppService covers the tenant management use cases.
type TenantAppService interface {
	CreateTenant(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error)
	GetTenant(ctx context.Context, tenantID string) (*dto.TenantResponse, error)
	ListTenants(ctx context.Context, req *dto.ListTenantsRequest) (*dto.ListTenantsResponse, error)
	UpdateTenant(ctx context.Context, tenantID string, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error)
	DeleteTenant(ctx context.Context, tenantID string) error
}

type tenantAppServiceImpl struct {
	tenantRepo  repository.TenantRepository
	metricCache MetricService
	audit       domainservice.AuditService
	localCache  *cache.Cache
	logger      logger.Logger
}

// NewTenantAppService creates the tenant application service.
func NewTenantAppService(
	tenantRepo repository.TenantRepository,
	metricCache MetricService,
	audit domainservice.AuditService,
	log logger.Logger,
) TenantAppService {
	return &tenantAppServiceImpl{
		tenantRepo:  tenantRepo,
		metricCache: metricCache,
		audit:       audit,
		localCache:  cache.New(constants.TenantConfigCacheTTL, 10*time.Minute),
		logger:      log.WithComponent("tenant_service"),
	}
}

func (s *tenantAppServiceImpl) CreateTenant(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	tenant := models.NewTenant(req.Name, req.Industry)
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error(ctx, "failed to create tenant", err, logger.String("name", req.Name))
		return nil, err
	}

	s.logger.Info(ctx, "tenant created",
		logger.String("tenant_id", tenant.ID), logger.String("name", tenant.Name))
	s.logAudit(ctx, tenant.ID, models.AuditTenantCreated, "tenant "+tenant.Name+" created")

	return tenantToDTO(tenant), nil
}

func (s *tenantAppServiceImpl) GetTenant(ctx context.Context, tenantID string) (*dto.TenantResponse, error) {
	if cached, found := s.localCache.Get(tenantID); found {
		return tenantToDTO(cached.(*models.Tenant)), nil
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	s.localCache.Set(tenantID, tenant, cache.DefaultExpiration)
	return tenantToDTO(tenant), nil
}

func (s *tenantAppServiceImpl) ListTenants(ctx context.Context, req *dto.ListTenantsRequest) (*dto.ListTenantsResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	tenants, total, err := s.tenantRepo.FindAll(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error(ctx, "failed to list tenants", err)
		return nil, err
	}

	out := make([]dto.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, *tenantToDTO(t))
	}
	return &dto.ListTenantsResponse{
		Tenants:    out,
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}

func (s *tenantAppServiceImpl) UpdateTenant(ctx context.Context, tenantID string, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.DeletedAt != nil {
		return nil, errors.ErrConflict("tenant has been deleted")
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Industry != nil {
		tenant.Industry = *req.Industry
	}
	if req.Status != nil {
		switch constants.TenantStatus(*req.Status) {
		case constants.TenantStatusActive:
			tenant.Activate()
		case constants.TenantStatusSuspended:
			tenant.Suspend()
		}
	}
	tenant.UpdatedAt = time.Now().UTC()

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		s.logger.Error(ctx, "failed to update tenant", err, logger.String("tenant_id", tenantID))
		return nil, err
	}

	s.invalidate(ctx, tenantID)
	s.logAudit(ctx, tenantID, models.AuditTenantUpdated, "tenant updated")
	return tenantToDTO(tenant), nil
}

func (s *tenantAppServiceImpl) DeleteTenant(ctx context.Context, tenantID string) error {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant.DeletedAt != nil {
		return errors.ErrConflict("tenant has already been deleted")
	}

	tenant.SoftDelete()
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		s.logger.Error(ctx, "failed to delete tenant", err, logger.String("tenant_id", tenantID))
		return err
	}

	s.invalidate(ctx, tenantID)
	s.logger.Info(ctx, "tenant deleted", logger.String("tenant_id", tenantID))
	s.logAudit(ctx, tenantID, models.AuditTenantDeleted, "tenant deleted")
	return nil
}

// invalidate drops both the local tenant cache entry and the tenant's metric
// cache, so mutations are visible on the next read.
func (s *tenantAppServiceImpl) invalidate(ctx context.Context, tenantID string) {
	s.localCache.Delete(tenantID)
	if s.metricCache != nil {
		if err := s.metricCache.Invalidate(ctx, tenantID); err != nil {
			s.logger.Warn(ctx, "failed to invalidate metric cache",
				logger.Error(err), logger.String("tenant_id", tenantID))
		}
	}
}

func (s *tenantAppServiceImpl) logAudit(ctx context.Context, tenantID, eventType, message string) {
	if s.audit == nil {
		return
	}
	actor := actorFromContext(ctx)
	if err := s.audit.LogEvent(ctx, models.NewAuditEvent(tenantID, actor, eventType, message)); err != nil {
		s.logger.Warn(ctx, "failed to publish audit event", logger.Error(err),
			logger.String("event_type", eventType))
	}
}

// actorFromContext returns the authenticated user id, or "system" for
// unauthenticated paths like the collector.
func actorFromContext(ctx context.Context) string {
	if v := ctx.Value(constants.ContextKeyUserID); v != nil {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return "system"
}

func tenantToDTO(t *models.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Industry:  t.Industry,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
