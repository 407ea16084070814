package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/application/service"
)

// TenantHandler exposes tenant management endpoints.
type TenantHandler struct {
	svc service.TenantAppService
}

// NewTenantHandler creates the tenant handler.
func NewTenantHandler(svc service.TenantAppService) *TenantHandler {
	return &TenantHandler{svc: svc}
}

// Create handles POST /tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	var req dto.CreateTenantRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.CreateTenant(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusCreated, resp)
}

// Get handles GET /tenants/:id.
func (h *TenantHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// List handles GET /tenants.
func (h *TenantHandler) List(c *gin.Context) {
	var req dto.ListTenantsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendError(c, err)
		return
	}
	resp, err := h.svc.ListTenants(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Update handles PUT /tenants/:id.
func (h *TenantHandler) Update(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.UpdateTenant(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Delete handles DELETE /tenants/:id.
func (h *TenantHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteTenant(c.Request.Context(), c.Param("id")); err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, gin.H{"deleted": true})
}
