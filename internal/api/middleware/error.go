package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/messagely/messagely/internal/api/dto"
)

// ErrorHandlerMiddleware converts handler panics into a JSON error
// response. Expected failures never reach here; handlers map those to
// domain error responses themselves.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error:   "Internal Server Error",
					Message: "An unexpected error occurred",
					Code:    http.StatusInternalServerError,
				})
				c.Abort()
			}
		}()

		c.Next()
	}
}
