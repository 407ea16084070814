package service

import (
	"context"
	"strings"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/domain/classify"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	domainservice "github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/logger"
)

// DashboardAppService builds the per-tenant dashboard composite and the
// individual widget payloads behind it.
type DashboardAppService interface {
	RiskStats(ctx context.Context, tenantID string) (*dto.RiskStatsResponse, error)
	Dashboard(ctx context.Context, tenantID string) (*dto.DashboardResponse, error)

	SecureScores(ctx context.Context, tenantID string) ([]dto.SecureScorePointDTO, error)
	M365Admins(ctx context.Context, tenantID string) ([]dto.AdminUserDTO, error)
	TrustedLocations(ctx context.Context, tenantID string) ([]dto.PolicyDTO, error)
	SignInPolicies(ctx context.Context, tenantID string) ([]dto.PolicyDTO, error)
	PhishResistantMFA(ctx context.Context, tenantID string) ([]dto.MFAUserDTO, error)
	UnencryptedDevices(ctx context.Context, tenantID string) ([]dto.DeviceDTO, error)
	CompliancePolicies(ctx context.Context, tenantID string) ([]dto.CompliancePolicyDTO, error)
}

type dashboardAppServiceImpl struct {
	metricSvc    MetricService
	snapshotRepo repository.SnapshotRepository
	logger       logger.Logger
}

// NewDashboardAppService creates the dashboard application service.
func NewDashboardAppService(metricSvc MetricService, snapshotRepo repository.SnapshotRepository, log logger.Logger) DashboardAppService {
	return &dashboardAppServiceImpl{
		metricSvc:    metricSvc,
		snapshotRepo: snapshotRepo,
		logger:       log.WithComponent("dashboard_service"),
	}
}

func (s *dashboardAppServiceImpl) RiskStats(ctx context.Context, tenantID string) (*dto.RiskStatsResponse, error) {
	snapshot, err := s.snapshotRepo.Latest(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var scores models.RiskScores
	if snapshot != nil {
		scores = snapshot.Scores
	}
	summary := domainservice.Aggregate(scores)

	categories := make([]dto.CategoryRatingDTO, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		categories = append(categories, dto.CategoryRatingDTO{
			Category: string(c.Category),
			Score:    c.Score,
			Rating:   ratingToDTO(c.Rating),
		})
	}

	return &dto.RiskStatsResponse{
		OverallScore: summary.OverallScore,
		Overall:      ratingToDTO(summary.OverallLevel),
		Categories:   categories,
	}, nil
}

// Dashboard assembles the composite page. Each section loads independently; a
// failed widget becomes a section-level error, never a page failure.
func (s *dashboardAppServiceImpl) Dashboard(ctx context.Context, tenantID string) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{TenantID: tenantID}

	stats, err := s.RiskStats(ctx, tenantID)
	if err != nil {
		s.logger.Warn(ctx, "risk stats unavailable for dashboard",
			logger.Error(err), logger.String("tenant_id", tenantID))
		resp.Sections = append(resp.Sections, dto.DashboardSection{Name: "risk_stats", Error: clientMessage(err)})
	} else {
		resp.RiskStats = stats
	}

	sections := []struct {
		name string
		load func(context.Context, string) (interface{}, error)
	}{
		{"secure_scores", wrap(s.SecureScores)},
		{"m365_admins", wrap(s.M365Admins)},
		{"trusted_locations", wrap(s.TrustedLocations)},
		{"sign_in_policies", wrap(s.SignInPolicies)},
		{"phish_resistant_mfa", wrap(s.PhishResistantMFA)},
		{"no_encryption", wrap(s.UnencryptedDevices)},
		{"compliance_policies", wrap(s.CompliancePolicies)},
	}

	for _, sec := range sections {
		data, err := sec.load(ctx, tenantID)
		if err != nil {
			s.logger.Warn(ctx, "dashboard section failed",
				logger.Error(err),
				logger.String("tenant_id", tenantID),
				logger.String("section", sec.name))
			resp.Sections = append(resp.Sections, dto.DashboardSection{Name: sec.name, Error: clientMessage(err)})
			continue
		}
		resp.Sections = append(resp.Sections, dto.DashboardSection{Name: sec.name, Data: data})
	}

	return resp, nil
}

func wrap[T any](f func(context.Context, string) ([]T, error)) func(context.Context, string) (interface{}, error) {
	return func(ctx context.Context, tenantID string) (interface{}, error) {
		return f(ctx, tenantID)
	}
}

// clientMessage is the uniform message shown for any upstream failure class.
func clientMessage(error) string {
	return "data temporarily unavailable"
}

func (s *dashboardAppServiceImpl) SecureScores(ctx context.Context, tenantID string) ([]dto.SecureScorePointDTO, error) {
	entries, err := FetchTyped[models.SecureScoreEntry](ctx, s.metricSvc, tenantID, constants.MetricSecureScores)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SecureScorePointDTO, 0, len(entries))
	for _, e := range entries {
		pct := e.Percent()
		out = append(out, dto.SecureScorePointDTO{
			Date:    e.CreatedAt,
			Percent: pct,
			Rating:  ratingToDTO(classify.Score(pct)),
		})
	}
	return out, nil
}

func (s *dashboardAppServiceImpl) M365Admins(ctx context.Context, tenantID string) ([]dto.AdminUserDTO, error) {
	members, err := FetchTyped[models.DirectoryRoleMember](ctx, s.metricSvc, tenantID, constants.MetricDirectoryRoles)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdminUserDTO, 0, len(members))
	for _, m := range members {
		out = append(out, dto.AdminUserDTO{
			DisplayName:       m.DisplayName,
			UserPrincipalName: m.UserPrincipalName,
			RoleName:          m.RoleName,
			MFARegistered:     ratingToDTO(classify.Flag(m.MFARegistered)),
		})
	}
	return out, nil
}

func (s *dashboardAppServiceImpl) TrustedLocations(ctx context.Context, tenantID string) ([]dto.PolicyDTO, error) {
	return s.policies(ctx, tenantID, constants.MetricTrustedLocations)
}

func (s *dashboardAppServiceImpl) SignInPolicies(ctx context.Context, tenantID string) ([]dto.PolicyDTO, error) {
	return s.policies(ctx, tenantID, constants.MetricSignInPolicies)
}

func (s *dashboardAppServiceImpl) policies(ctx context.Context, tenantID string, metricType constants.MetricType) ([]dto.PolicyDTO, error) {
	policies, err := FetchTyped[models.ConditionalAccessPolicy](ctx, s.metricSvc, tenantID, metricType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PolicyDTO, 0, len(policies))
	for _, p := range policies {
		enabled := strings.EqualFold(p.State, "enabled")
		out = append(out, dto.PolicyDTO{
			DisplayName: p.DisplayName,
			State:       p.State,
			Enabled:     ratingToDTO(classify.Flag(enabled)),
		})
	}
	return out, nil
}

func (s *dashboardAppServiceImpl) PhishResistantMFA(ctx context.Context, tenantID string) ([]dto.MFAUserDTO, error) {
	reports, err := FetchTyped[models.MFAMethodReport](ctx, s.metricSvc, tenantID, constants.MetricMFAMethods)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MFAUserDTO, 0, len(reports))
	for _, r := range reports {
		out = append(out, dto.MFAUserDTO{
			UserPrincipalName: r.UserPrincipalName,
			Methods:           r.Methods,
			PhishResistant:    ratingToDTO(classify.Flag(r.PhishResistant)),
		})
	}
	return out, nil
}

// UnencryptedDevices lists devices without disk encryption. Unknown compliance
// state renders as warning here, matching the device widget's styling.
func (s *dashboardAppServiceImpl) UnencryptedDevices(ctx context.Context, tenantID string) ([]dto.DeviceDTO, error) {
	devices, err := FetchTyped[models.ManagedDevice](ctx, s.metricSvc, tenantID, constants.MetricManagedDevices)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeviceDTO, 0)
	for _, d := range devices {
		if d.IsEncrypted {
			continue
		}
		compliance := classify.Compliance(d.ComplianceState)
		if compliance.Severity == classify.SeverityUnknown {
			compliance.Severity = classify.SeverityWarning
		}
		out = append(out, dto.DeviceDTO{
			DeviceName:      d.DeviceName,
			OperatingSystem: d.OperatingSystem,
			Compliance:      ratingToDTO(compliance),
			Encrypted:       ratingToDTO(classify.Flag(false)),
		})
	}
	return out, nil
}

func (s *dashboardAppServiceImpl) CompliancePolicies(ctx context.Context, tenantID string) ([]dto.CompliancePolicyDTO, error) {
	policies, err := FetchTyped[models.CompliancePolicy](ctx, s.metricSvc, tenantID, constants.MetricCompliancePolicies)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompliancePolicyDTO, 0, len(policies))
	for _, p := range policies {
		total := p.CompliantCount + p.NoncompliantCount + p.UnknownCount
		var pct float64
		if total > 0 {
			pct = float64(p.CompliantCount) / float64(total) * 100
		}
		out = append(out, dto.CompliancePolicyDTO{
			DisplayName:       p.DisplayName,
			Platform:          p.Platform,
			CompliantCount:    p.CompliantCount,
			NoncompliantCount: p.NoncompliantCount,
			UnknownCount:      p.UnknownCount,
			Overall:           ratingToDTO(classify.Score(pct)),
		})
	}
	return out, nil
}

func ratingToDTO(r classify.Rating) dto.RatingDTO {
	return dto.RatingDTO{
		Label:    r.Label,
		Severity: string(r.Severity),
		Color:    r.Severity.Color(),
	}
}
