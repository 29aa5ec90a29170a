package service

import (
	"context"

	"github.com/messagely/messagely/internal/core/domain"
	"github.com/messagely/messagely/internal/core/policy"
	"github.com/messagely/messagely/internal/core/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// Send creates a message from the authenticated principal. The sender is
// always the principal, never client-supplied input.
func (s *MessageService) Send(ctx context.Context, principal, toUsername, body string) (*domain.Message, error) {
	message := domain.NewMessage(principal, toUsername, body)
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Get returns the message with both party profiles. Only the sender or
// the recipient may view it.
func (s *MessageService) Get(ctx context.Context, principal string, id int64) (*domain.MessageDetail, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewMessage(principal, message); err != nil {
		return nil, err
	}
	return message, nil
}

// MarkRead stamps read_at on the message. Authorization runs against the
// fetched message before the store mutates anything; only the recipient
// may mark it read.
func (s *MessageService) MarkRead(ctx context.Context, principal string, id int64) (*domain.Message, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanMarkRead(principal, message); err != nil {
		return nil, err
	}
	return s.messageRepo.MarkRead(ctx, id)
}
