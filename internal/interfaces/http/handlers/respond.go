// Package handlers contains the gin HTTP handlers for the API surface.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/interfaces/http/middleware"
	"github.com/mspsec/riskboard/pkg/errors"
)

func sendResult(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.SuccessResponse(data, middleware.RequestIDFrom(c)))
}

func sendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if appErr, ok := errors.As(err); ok {
		status = appErr.HTTPStatus
	}
	c.JSON(status, dto.ErrorResponse(err, middleware.RequestIDFrom(c)))
}

// bindJSON decodes the request body, reporting malformed JSON as a 400.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		sendError(c, errors.ErrInvalidRequest("malformed request body"))
		return false
	}
	return true
}
