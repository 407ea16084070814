package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mspsec/riskboard/internal/application/service"
)

// DashboardHandler exposes the risk dashboard and its widget endpoints.
type DashboardHandler struct {
	svc service.DashboardAppService
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(svc service.DashboardAppService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// RiskStats handles GET /tenants/:id/risk-stats.
func (h *DashboardHandler) RiskStats(c *gin.Context) {
	h.respond(c, func() (interface{}, error) {
		return h.svc.RiskStats(c.Request.Context(), c.Param("id"))
	})
}

// Dashboard handles GET /tenants/:id/dashboard.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	h.respond(c, func() (interface{}, error) {
		return h.svc.Dashboard(c.Request.Context(), c.Param("id"))
	})
}

// SecureScores handles GET /tenants/:id/widgets/secure-scores.
func (h *DashboardHandler) SecureScores(c *gin.Context) {
	h.respond(c, func() (interface{}, error) {
		return h.svc.SecureScores(c.Request.Context(), c.Param("id"))
	})
}

// M365Admins handles GET /tenants/:id/widgets/m365-admins.
func (h *DashboardHandler) M365Admins(c *gin.Context) {
	h.respond(c, func() (interface{}, error) {
		return h.svc.M365Admins(c.Request.Context(), c.Param("id"))
	})
}

// TrustedLocations handles GET /tenants/:id/widgets/trusted-locations.
func (h *DashboardHandler) TrustedLocations(c *gin.Context) {
	h.respond(c, func() (interface{}, error) {
		return h.svc.TrustedLocations(c.Request.Context(), c.Param("id"))
	})
}

// SignInPolicies handles GET /tenants/:id/widgets/sign-in-policies.
func (h *DashboardHandler) SignInPolicies(c *gin.Context) {
	h.respond(c, func() (interface{}, error) {
		return h.svc.SignInPolicies(c.Request.Context(), c.Param("id"))
	})
}

// PhishResistantMFA handles GET /tenants/:id/widgets/phish-resistant-mfa.
func (h *DashboardHandler) PhishResistantMFA(c *gin.Context) {
	h.respond(c, func() (interface{}, error) {
		return h.svc.PhishResistantMFA(c.Request.Context(), c.Param("id"))
	})
}

// UnencryptedDevices handles GET /tenants/:id/widgets/no-encryption.
func (h *DashboardHandler) UnencryptedDevices(c *gin.Context) {
	h.respond(c, func() (interface{}, error) {
		return h.svc.UnencryptedDevices(c.Request.Context(), c.Param("id"))
	})
}

// CompliancePolicies handles GET /tenants/:id/widgets/compliance-policies.
func (h *DashboardHandler) CompliancePolicies(c *gin.Context) {
	h.respond(c, func() (interface{}, error) {
		return h.svc.CompliancePolicies(c.Request.Context(), c.Param("id"))
	})
}

func (h *DashboardHandler) respond(c *gin.Context, load func() (interface{}, error)) {
	resp, err := load()
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}
