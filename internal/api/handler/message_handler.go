package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/messagely/messagely/internal/api/dto"
	"github.com/messagely/messagely/internal/api/middleware"
	"github.com/messagely/messagely/internal/core/domain"
	"github.com/messagely/messagely/internal/core/service"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// Send handles POST /messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, domain.NewUnauthorized())
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), principal, req.ToUsername, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageCreatedEnvelope{
		Message: dto.MessageResponse{
			ID:           message.ID,
			FromUsername: message.FromUsername,
			ToUsername:   message.ToUsername,
			Body:         message.Body,
			SentAt:       message.SentAt,
		},
	})
}

// Get handles GET /messages/:id
func (h *MessageHandler) Get(c *gin.Context) {
	id, err := messageID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, domain.NewUnauthorized())
		return
	}

	message, err := h.messageService.Get(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageDetailEnvelope{
		Message: dto.MessageDetailResponse{
			ID:       message.ID,
			Body:     message.Body,
			SentAt:   message.SentAt,
			ReadAt:   message.ReadAt,
			FromUser: message.FromUser,
			ToUser:   message.ToUser,
		},
	})
}

// MarkRead handles POST /messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, err := messageID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, domain.NewUnauthorized())
		return
	}

	message, err := h.messageService.MarkRead(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageReadEnvelope{
		Message: dto.MessageReadResponse{
			ID:     message.ID,
			ReadAt: message.ReadAt,
		},
	})
}

// messageID parses the :id route parameter. A non-numeric id can never
// match a stored message, so it reports not-found.
func messageID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.NewNotFound("no message: %s", c.Param("id"))
	}
	return id, nil
}
