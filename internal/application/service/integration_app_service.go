package service

import (
	"context"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	domainservice "github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/internal/infrastructure/secrets"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/logger"
	"github.com/mspsec/riskboard/pkg/utils"
)

// IntegrationAppService manages per-tenant upstream integrations. Client
// secrets go to the secret store; Postgres holds only the reference.
type IntegrationAppService interface {
	CreateIntegration(ctx context.Context, tenantID string, req *dto.CreateIntegrationRequest) (*dto.IntegrationResponse, error)
	ListIntegrations(ctx context.Context, tenantID string) ([]dto.IntegrationResponse, error)
	DeleteIntegration(ctx context.Context, integrationID string) error
	TestIntegration(ctx context.Context, integrationID string) (*dto.IntegrationTestResponse, error)
}

type integrationAppServiceImpl struct {
	integrationRepo repository.IntegrationRepository
	tenantRepo      repository.TenantRepository
	secretStore     secrets.Store
	metricSvc       MetricService
	fetcher         RawFetcher
	audit           domainservice.AuditService
	logger          logger.Logger
}

// NewIntegrationAppService creates the integration application service.
func NewIntegrationAppService(
	integrationRepo repository.IntegrationRepository,
	tenantRepo repository.TenantRepository,
	secretStore secrets.Store,
	metricSvc MetricService,
	fetcher RawFetcher,
	audit domainservice.AuditService,
	log logger.Logger,
) IntegrationAppService {
	return &integrationAppServiceImpl{
		integrationRepo: integrationRepo,
		tenantRepo:      tenantRepo,
		secretStore:     secretStore,
		metricSvc:       metricSvc,
		fetcher:         fetcher,
		audit:           audit,
		logger:          log.WithComponent("integration_service"),
	}
}

func (s *integrationAppServiceImpl) CreateIntegration(ctx context.Context, tenantID string, req *dto.CreateIntegrationRequest) (*dto.IntegrationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	integration := models.NewIntegration(tenantID, req.DirectoryID, req.ClientID)

	if err := s.secretStore.Put(ctx, integration.SecretRef, map[string]string{
		"client_secret": req.ClientSecret,
	}); err != nil {
		return nil, err
	}

	if err := s.integrationRepo.Save(ctx, integration); err != nil {
		// roll the secret back so no orphaned credential stays behind
		if delErr := s.secretStore.Delete(ctx, integration.SecretRef); delErr != nil {
			s.logger.Error(ctx, "failed to clean up secret after save failure", delErr,
				logger.String("secret_ref", integration.SecretRef))
		}
		return nil, err
	}

	// metrics fetched under the old integration are no longer valid
	if err := s.metricSvc.Invalidate(ctx, tenantID); err != nil {
		s.logger.Warn(ctx, "failed to invalidate metric cache",
			logger.Error(err), logger.String("tenant_id", tenantID))
	}

	s.logger.Info(ctx, "integration created",
		logger.String("integration_id", integration.ID),
		logger.String("tenant_id", tenantID))
	s.logAudit(ctx, tenantID, models.AuditIntegrationCreated, "integration created")

	return integrationToDTO(integration), nil
}

func (s *integrationAppServiceImpl) ListIntegrations(ctx context.Context, tenantID string) ([]dto.IntegrationResponse, error) {
	integrations, err := s.integrationRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IntegrationResponse, 0, len(integrations))
	for _, i := range integrations {
		out = append(out, *integrationToDTO(i))
	}
	return out, nil
}

func (s *integrationAppServiceImpl) DeleteIntegration(ctx context.Context, integrationID string) error {
	integration, err := s.integrationRepo.FindByID(ctx, integrationID)
	if err != nil {
		return err
	}

	if err := s.integrationRepo.Delete(ctx, integrationID); err != nil {
		return err
	}
	if err := s.secretStore.Delete(ctx, integration.SecretRef); err != nil {
		s.logger.Warn(ctx, "failed to delete integration secret",
			logger.Error(err), logger.String("secret_ref", integration.SecretRef))
	}
	if err := s.metricSvc.Invalidate(ctx, integration.TenantID); err != nil {
		s.logger.Warn(ctx, "failed to invalidate metric cache",
			logger.Error(err), logger.String("tenant_id", integration.TenantID))
	}

	s.logger.Info(ctx, "integration deleted",
		logger.String("integration_id", integrationID),
		logger.String("tenant_id", integration.TenantID))
	s.logAudit(ctx, integration.TenantID, models.AuditIntegrationDeleted, "integration deleted")
	return nil
}

// TestIntegration probes the metrics backend for the integration's tenant. A
// fetch failure is a test outcome, not an error.
func (s *integrationAppServiceImpl) TestIntegration(ctx context.Context, integrationID string) (*dto.IntegrationTestResponse, error) {
	integration, err := s.integrationRepo.FindByID(ctx, integrationID)
	if err != nil {
		return nil, err
	}

	if _, err := s.fetcher.FetchRaw(ctx, integration.TenantID, constants.MetricSecureScores); err != nil {
		return &dto.IntegrationTestResponse{
			Reachable: false,
			Message:   "metrics backend did not respond for this tenant",
		}, nil
	}
	return &dto.IntegrationTestResponse{Reachable: true}, nil
}

func (s *integrationAppServiceImpl) logAudit(ctx context.Context, tenantID, eventType, message string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogEvent(ctx, models.NewAuditEvent(tenantID, actorFromContext(ctx), eventType, message)); err != nil {
		s.logger.Warn(ctx, "failed to publish audit event", logger.Error(err),
			logger.String("event_type", eventType))
	}
}

func integrationToDTO(i *models.Integration) *dto.IntegrationResponse {
	return &dto.IntegrationResponse{
		ID:          i.ID,
		TenantID:    i.TenantID,
		Type:        i.Type,
		DirectoryID: i.DirectoryID,
		ClientID:    i.ClientID,
		SecretRef:   i.SecretRef,
		Enabled:     i.Enabled,
		CreatedAt:   i.CreatedAt,
	}
}
