package dto

import (
	"time"

	"github.com/messagely/messagely/internal/core/domain"
)

// SendMessageRequest represents the message creation request. The body is
// deliberately unconstrained; the sender is always the authenticated
// principal.
type SendMessageRequest struct {
	ToUsername string `json:"to_username" binding:"required"`
	Body       string `json:"body"`
}

// MessageResponse represents a newly sent message
type MessageResponse struct {
	ID           int64     `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

// MessageDetailResponse represents a message with both party profiles
type MessageDetailResponse struct {
	ID       int64          `json:"id"`
	Body     string         `json:"body"`
	SentAt   time.Time      `json:"sent_at"`
	ReadAt   *time.Time     `json:"read_at"`
	FromUser domain.Profile `json:"from_user"`
	ToUser   domain.Profile `json:"to_user"`
}

// MessageReadResponse represents the result of marking a message read
type MessageReadResponse struct {
	ID     int64      `json:"id"`
	ReadAt *time.Time `json:"read_at"`
}

// MessageCreatedEnvelope wraps a newly sent message
type MessageCreatedEnvelope struct {
	Message MessageResponse `json:"message"`
}

// MessageDetailEnvelope wraps a message detail
type MessageDetailEnvelope struct {
	Message MessageDetailResponse `json:"message"`
}

// MessageReadEnvelope wraps a mark-read result
type MessageReadEnvelope struct {
	Message MessageReadResponse `json:"message"`
}
