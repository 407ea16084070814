package service

import (
	"context"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	domainservice "github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/internal/infrastructure/monitoring"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
	"github.com/mspsec/riskboard/pkg/utils"
)

// ReportAppService covers the report lifecycle use cases.
type ReportAppService interface {
	CreateReport(ctx context.Context, tenantID string, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetReport(ctx context.Context, reportID string) (*dto.ReportResponse, error)
	ListReports(ctx context.Context, tenantID string) ([]dto.ReportResponse, error)
	ListPeriods(ctx context.Context, tenantID string) ([]dto.ReportPeriodResponse, error)
	UpdateReport(ctx context.Context, reportID string, req *dto.UpdateReportRequest) (*dto.ReportResponse, error)
	SubmitReport(ctx context.Context, reportID string) (*dto.ReportResponse, error)
	ApproveReport(ctx context.Context, reportID string) (*dto.ReportResponse, error)
	SendReport(ctx context.Context, reportID string, req *dto.SendReportRequest) (*dto.ReportResponse, error)
	RecomputeScores(ctx context.Context, reportID string) (*dto.ReportResponse, error)
}

type reportAppServiceImpl struct {
	reportRepo   repository.ReportRepository
	snapshotRepo repository.SnapshotRepository
	tenantRepo   repository.TenantRepository
	audit        domainservice.AuditService
	metrics      *monitoring.Metrics
	logger       logger.Logger
}

// NewReportAppService creates the report application service.
func NewReportAppService(
	reportRepo repository.ReportRepository,
	snapshotRepo repository.SnapshotRepository,
	tenantRepo repository.TenantRepository,
	audit domainservice.AuditService,
	metrics *monitoring.Metrics,
	log logger.Logger,
) ReportAppService {
	return &reportAppServiceImpl{
		reportRepo:   reportRepo,
		snapshotRepo: snapshotRepo,
		tenantRepo:   tenantRepo,
		audit:        audit,
		metrics:      metrics,
		logger:       log.WithComponent("report_service"),
	}
}

func (s *reportAppServiceImpl) CreateReport(ctx context.Context, tenantID string, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	period := models.Period{Year: req.Year, Quarter: req.Quarter, Month: req.Month}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.IsSuspended() {
		return nil, errors.ErrConflict("tenant is suspended")
	}
	if !tenant.IsActive() {
		return nil, errors.ErrConflict("tenant is not active")
	}

	existing, err := s.reportRepo.FindByPeriod(ctx, tenantID, period)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrConflict("a report already exists for period " + period.String())
	}

	// seed scores from the latest snapshot; a tenant with no history yet
	// starts from zeroes
	var scores models.RiskScores
	snapshot, err := s.snapshotRepo.Latest(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		scores = snapshot.Scores
	}

	report := models.NewReport(tenantID, period, scores, actorFromContext(ctx))
	if err := s.reportRepo.Save(ctx, report); err != nil {
		s.logger.Error(ctx, "failed to create report", err,
			logger.String("tenant_id", tenantID), logger.String("period", period.String()))
		return nil, err
	}

	s.logger.Info(ctx, "report created",
		logger.String("report_id", report.ID),
		logger.String("tenant_id", tenantID),
		logger.String("period", period.String()))
	s.logAudit(ctx, tenantID, models.AuditReportCreated, "report created for "+period.String())

	return reportToDTO(report), nil
}

func (s *reportAppServiceImpl) GetReport(ctx context.Context, reportID string) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return reportToDTO(report), nil
}

func (s *reportAppServiceImpl) ListReports(ctx context.Context, tenantID string) ([]dto.ReportResponse, error) {
	reports, err := s.reportRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, *reportToDTO(r))
	}
	return out, nil
}

func (s *reportAppServiceImpl) ListPeriods(ctx context.Context, tenantID string) ([]dto.ReportPeriodResponse, error) {
	reports, err := s.reportRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportPeriodResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, dto.ReportPeriodResponse{
			Period:   r.Period.String(),
			ReportID: r.ID,
			Status:   string(r.Status),
		})
	}
	return out, nil
}

func (s *reportAppServiceImpl) UpdateReport(ctx context.Context, reportID string, req *dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if req.Scores != nil {
		if err := report.UpdateScores(models.RiskScores{
			Overall:  req.Scores.Overall,
			Identity: req.Scores.Identity,
			Training: req.Scores.Training,
			Device:   req.Scores.Device,
			Cloud:    req.Scores.Cloud,
			Threat:   req.Scores.Threat,
		}); err != nil {
			return nil, err
		}
	}
	if req.Comment != nil {
		if err := report.AddComment(actorFromContext(ctx), req.Comment.Body); err != nil {
			return nil, err
		}
	}

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return reportToDTO(report), nil
}

func (s *reportAppServiceImpl) SubmitReport(ctx context.Context, reportID string) (*dto.ReportResponse, error) {
	return s.transition(ctx, reportID, models.AuditReportSubmitted, func(r *models.Report) error {
		return r.Submit()
	})
}

func (s *reportAppServiceImpl) ApproveReport(ctx context.Context, reportID string) (*dto.ReportResponse, error) {
	return s.transition(ctx, reportID, models.AuditReportApproved, func(r *models.Report) error {
		return r.Approve()
	})
}

func (s *reportAppServiceImpl) SendReport(ctx context.Context, reportID string, req *dto.SendReportRequest) (*dto.ReportResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.transition(ctx, reportID, models.AuditReportSent, func(r *models.Report) error {
		return r.Send(req.Recipients)
	})
}

// RecomputeScores replaces a mutable report's scores with the tenant's latest
// snapshot, re-deriving the report from current posture data.
func (s *reportAppServiceImpl) RecomputeScores(ctx context.Context, reportID string) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshotRepo.Latest(ctx, report.TenantID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, errors.ErrConflict("tenant has no metric snapshots to recompute from")
	}

	if err := report.UpdateScores(snapshot.Scores); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "report scores recomputed",
		logger.String("report_id", reportID),
		logger.String("snapshot_id", snapshot.ID))
	return reportToDTO(report), nil
}

func (s *reportAppServiceImpl) transition(ctx context.Context, reportID, auditType string, apply func(*models.Report) error) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if err := apply(report); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	s.metrics.RecordReportTransition(string(report.Status))
	s.logger.Info(ctx, "report transitioned",
		logger.String("report_id", reportID),
		logger.String("status", string(report.Status)))
	s.logAudit(ctx, report.TenantID, auditType, "report "+report.Period.String()+" now "+string(report.Status))

	return reportToDTO(report), nil
}

func (s *reportAppServiceImpl) logAudit(ctx context.Context, tenantID, eventType, message string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogEvent(ctx, models.NewAuditEvent(tenantID, actorFromContext(ctx), eventType, message)); err != nil {
		s.logger.Warn(ctx, "failed to publish audit event", logger.Error(err),
			logger.String("event_type", eventType))
	}
}

func reportToDTO(r *models.Report) *dto.ReportResponse {
	comments := make([]dto.CommentResponse, 0, len(r.Comments))
	for _, c := range r.Comments {
		comments = append(comments, dto.CommentResponse{
			ID:        c.ID,
			Author:    c.Author,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		})
	}
	return &dto.ReportResponse{
		ID:       r.ID,
		TenantID: r.TenantID,
		Period:   r.Period.String(),
		Year:     r.Period.Year,
		Quarter:  r.Period.Quarter,
		Month:    r.Period.Month,
		Status:   string(r.Status),
		Scores: dto.RiskScoresDTO{
			Overall:  r.Scores.Overall,
			Identity: r.Scores.Identity,
			Training: r.Scores.Training,
			Device:   r.Scores.Device,
			Cloud:    r.Scores.Cloud,
			Threat:   r.Scores.Threat,
		},
		Comments:   comments,
		Recipients: r.Recipients,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		SentAt:     r.SentAt,
	}
}
