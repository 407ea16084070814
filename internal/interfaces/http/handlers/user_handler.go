package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/application/service"
)

// UserHandler exposes user and invite management endpoints.
type UserHandler struct {
	svc service.UserAppService
}

// NewUserHandler creates the user handler.
func NewUserHandler(svc service.UserAppService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusCreated, resp)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	resp, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.UpdateUser(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, gin.H{"deleted": true})
}

// CreateInvite handles POST /invites. The invite token is only returned here.
func (h *UserHandler) CreateInvite(c *gin.Context) {
	var req dto.CreateInviteRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.CreateInvite(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusCreated, resp)
}

// ListInvites handles GET /invites.
func (h *UserHandler) ListInvites(c *gin.Context) {
	resp, err := h.svc.ListInvites(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}

// RevokeInvite handles DELETE /invites/:id.
func (h *UserHandler) RevokeInvite(c *gin.Context) {
	if err := h.svc.RevokeInvite(c.Request.Context(), c.Param("id")); err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, gin.H{"revoked": true})
}

// AcceptInvite handles POST /invites/accept. It is reachable without a session.
func (h *UserHandler) AcceptInvite(c *gin.Context) {
	var req dto.AcceptInviteRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.AcceptInvite(c.Request.Context(), &req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendResult(c, http.StatusOK, resp)
}
