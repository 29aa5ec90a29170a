package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/messagely/messagely/internal/api/dto"
	"github.com/messagely/messagely/internal/core/domain"
)

// respondError maps a service error to an HTTP response. Domain errors
// carry their own status; anything else is an internal server error with
// the underlying message withheld from the client.
func respondError(c *gin.Context, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		c.JSON(de.Status, dto.ErrorResponse{
			Error:   http.StatusText(de.Status),
			Message: de.Message,
			Code:    de.Status,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal Server Error",
		Message: "An unexpected error occurred",
		Code:    http.StatusInternalServerError,
	})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Bad Request",
		Message: err.Error(),
		Code:    http.StatusBadRequest,
	})
}
