package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mspsec/riskboard/internal/config"
)

// AuthHandler redirects staff to the SSO backend. Session tokens are minted
// there; this service only validates them.
type AuthHandler struct {
	cfg *config.AuthConfig
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Login handles GET /api/login with a redirect to the SSO login page.
func (h *AuthHandler) Login(c *gin.Context) {
	c.Redirect(http.StatusFound, h.cfg.SSOLoginURL)
}
