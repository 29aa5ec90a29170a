package dto

import (
	"time"

	"github.com/messagely/messagely/internal/core/domain"
)

// UserResponse represents a full user profile
type UserResponse struct {
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone"`
	JoinAt      time.Time  `json:"join_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// UserEnvelope wraps a single user
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// UserListResponse represents the public profiles of all users
type UserListResponse struct {
	Users []domain.Profile `json:"users"`
}

// CorrespondenceMessage is one entry of a user's inbox or outbox. Exactly
// one of FromUser/ToUser is set: the sender for inbox listings, the
// recipient for outbox listings.
type CorrespondenceMessage struct {
	ID       int64           `json:"id"`
	Body     string          `json:"body"`
	SentAt   time.Time       `json:"sent_at"`
	ReadAt   *time.Time      `json:"read_at"`
	FromUser *domain.Profile `json:"from_user,omitempty"`
	ToUser   *domain.Profile `json:"to_user,omitempty"`
}

// CorrespondenceResponse wraps an inbox or outbox listing
type CorrespondenceResponse struct {
	Messages []CorrespondenceMessage `json:"messages"`
}
