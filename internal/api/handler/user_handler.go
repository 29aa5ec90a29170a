package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/messagely/messagely/internal/api/dto"
	"github.com/messagely/messagely/internal/api/middleware"
	"github.com/messagely/messagely/internal/core/domain"
	"github.com/messagely/messagely/internal/core/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if profiles == nil {
		profiles = []domain.Profile{}
	}
	c.JSON(http.StatusOK, dto.UserListResponse{Users: profiles})
}

// Get handles GET /users/:username
func (h *UserHandler) Get(c *gin.Context) {
	username := c.Param("username")

	user, err := h.userService.Get(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserEnvelope{
		User: dto.UserResponse{
			Username:    user.Username,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Phone:       user.Phone,
			JoinAt:      user.JoinAt,
			LastLoginAt: user.LastLoginAt,
		},
	})
}

// MessagesFrom handles GET /users/:username/from
func (h *UserHandler) MessagesFrom(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, domain.NewUnauthorized())
		return
	}

	messages, err := h.userService.MessagesFrom(c.Request.Context(), principal, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCorrespondenceResponse(messages, false))
}

// MessagesTo handles GET /users/:username/to
func (h *UserHandler) MessagesTo(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, domain.NewUnauthorized())
		return
	}

	messages, err := h.userService.MessagesTo(c.Request.Context(), principal, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCorrespondenceResponse(messages, true))
}

// toCorrespondenceResponse renders an inbox (counterpart is the sender)
// or outbox (counterpart is the recipient) listing.
func toCorrespondenceResponse(messages []domain.MessageWithCounterpart, inbox bool) dto.CorrespondenceResponse {
	out := make([]dto.CorrespondenceMessage, len(messages))
	for i, m := range messages {
		counterpart := m.Counterpart
		entry := dto.CorrespondenceMessage{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
		}
		if inbox {
			entry.FromUser = &counterpart
		} else {
			entry.ToUser = &counterpart
		}
		out[i] = entry
	}
	return dto.CorrespondenceResponse{Messages: out}
}
