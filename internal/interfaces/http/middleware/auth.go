package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
)

// sessionClaims is the shape of session tokens minted by the SSO backend.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the HS256 session token and puts the user identity on the
// request context. Token minting is the SSO backend's job; this middleware
// only checks signature and expiry.
func Auth(sessionSecret string) gin.HandlerFunc {
	secret := []byte(sessionSecret)
	return func(c *gin.Context) {
		tokenString := extractBearer(c.GetHeader("Authorization"))
		if tokenString == "" {
			abort(c, errors.ErrUnauthorized("missing bearer token"))
			return
		}

		claims := &sessionClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.ErrUnauthorized("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abort(c, errors.ErrUnauthorized("invalid or expired session token"))
			return
		}

		c.Set(constants.ContextKeyUserID, claims.Subject)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyUserID, claims.Subject)
		ctx = context.WithValue(ctx, constants.ContextKeyUserRole, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole allows the request only for the listed roles. Must run after
// Auth.
func RequireRole(roles ...constants.UserRole) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(c *gin.Context) {
		if !allowed[c.GetString(constants.ContextKeyUserRole)] {
			abort(c, errors.ErrForbidden("insufficient role"))
			return
		}
		c.Next()
	}
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

func abort(c *gin.Context, err *errors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, dto.ErrorResponse(err, RequestIDFrom(c)))
}
