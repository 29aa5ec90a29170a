package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/messagely/messagely/internal/api/dto"
	"github.com/messagely/messagely/internal/core/service"
)

const (
	AuthHeaderKey       = "Authorization"
	PrincipalContextKey = "principal"
)

// AuthMiddleware creates a JWT authentication middleware. On success the
// verified principal (username) is stored in the request context before
// any route handler runs.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get authorization header
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Missing authorization header",
				Code:    http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		// Check if it's a Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid authorization header format. Expected 'Bearer <token>'",
				Code:    http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		token := parts[1]

		// Validate token
		principal, err := authService.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid token",
				Code:    http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		// Store principal in context
		c.Set(PrincipalContextKey, principal)

		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from context
func GetPrincipal(c *gin.Context) (string, bool) {
	value, exists := c.Get(PrincipalContextKey)
	if !exists {
		return "", false
	}

	principal, ok := value.(string)
	return principal, ok
}
