package repository

import (
	"context"

	"github.com/messagely/messagely/internal/core/domain"
)

type MessageRepository interface {
	// Create inserts the message and fills in its generated ID.
	Create(ctx context.Context, message *domain.Message) error
	FindByID(ctx context.Context, id int64) (*domain.MessageDetail, error)
	// MarkRead sets read_at exactly once; a message that was already read
	// keeps its original timestamp. Returns the resulting message row.
	MarkRead(ctx context.Context, id int64) (*domain.Message, error)
	// ListFrom returns messages sent by username, ascending by sent_at,
	// each joined with the recipient's public profile.
	ListFrom(ctx context.Context, username string) ([]domain.MessageWithCounterpart, error)
	// ListTo returns messages addressed to username, ascending by sent_at,
	// each joined with the sender's public profile.
	ListTo(ctx context.Context, username string) ([]domain.MessageWithCounterpart, error)
}
