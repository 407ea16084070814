package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/application/service"
)

// IntegrationHandler exposes tenant integration endpoints. Client secrets
// are accepted on create and never echoed back.
type IntegrationHandler struct {
	svc service.IntegrationAppService
}

// NewIntegrationHandler creates the integration handler.
func NewIntegrationHandler(svc service.IntegrationAppService) *IntegrationHandler {
	return &IntegrationHandler{svc: svc}
}

// Create handles POST /tenants/:id/integrations.
func (h *IntegrationHandler) Create(c *gin.Context) {
	var req dto.CreateIntegrationRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.CreateIntegration(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusCreated, resp)
}

// ListForTenant handles GET /tenants/:id/integrations.
func (h *IntegrationHandler) ListForTenant(c *gin.Context) {
	resp, err := h.svc.ListIntegrations(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Delete handles DELETE /integrations/:id.
func (h *IntegrationHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteIntegration(c.Request.Context(), c.Param("id")); err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, gin.H{"deleted": true})
}

// Test handles POST /integrations/:id/test.
func (h *IntegrationHandler) Test(c *gin.Context) {
	resp, err := h.svc.TestIntegration(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}
