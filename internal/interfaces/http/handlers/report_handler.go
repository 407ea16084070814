package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/application/service"
)

// ReportHandler exposes the report lifecycle endpoints.
type ReportHandler struct {
	svc service.ReportAppService
}

// NewReportHandler creates the report handler.
func NewReportHandler(svc service.ReportAppService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Create handles POST /tenants/:id/reports.
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.CreateReport(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusCreated, resp)
}

// ListForTenant handles GET /tenants/:id/reports.
func (h *ReportHandler) ListForTenant(c *gin.Context) {
	resp, err := h.svc.ListReports(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Periods handles GET /tenants/:id/report-periods.
func (h *ReportHandler) Periods(c *gin.Context) {
	resp, err := h.svc.ListPeriods(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Get handles GET /reports/:id.
func (h *ReportHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Update handles PUT /reports/:id.
func (h *ReportHandler) Update(c *gin.Context) {
	var req dto.UpdateReportRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.UpdateReport(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Submit handles POST /reports/:id/submit.
func (h *ReportHandler) Submit(c *gin.Context) {
	resp, err := h.svc.SubmitReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Approve handles POST /reports/:id/approve.
func (h *ReportHandler) Approve(c *gin.Context) {
	resp, err := h.svc.ApproveReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Send handles POST /reports/:id/send.
func (h *ReportHandler) Send(c *gin.Context) {
	var req dto.SendReportRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.SendReport(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Recompute handles POST /reports/:id/recompute.
func (h *ReportHandler) Recompute(c *gin.Context) {
	resp, err := h.svc.RecomputeScores(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}
