package service

import (
	"context"

	"github.com/messagely/messagely/internal/core/domain"
	"github.com/messagely/messagely/internal/core/policy"
	"github.com/messagely/messagely/internal/core/repository"
)

type UserService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

func NewUserService(userRepo repository.UserRepository, messageRepo repository.MessageRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

// List returns the public profiles of all users, ascending by username.
func (s *UserService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.userRepo.List(ctx)
}

// Get returns a user's full profile. The password hash never leaves the
// service layer.
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// MessagesFrom lists the user's sent messages, each with the recipient's
// public profile. Only the user themself may view their outbox.
func (s *UserService) MessagesFrom(ctx context.Context, principal, username string) ([]domain.MessageWithCounterpart, error) {
	if err := policy.CanViewCorrespondence(principal, username); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.messageRepo.ListFrom(ctx, username)
}

// MessagesTo lists the user's received messages, each with the sender's
// public profile. Only the user themself may view their inbox.
func (s *UserService) MessagesTo(ctx context.Context, principal, username string) ([]domain.MessageWithCounterpart, error) {
	if err := policy.CanViewCorrespondence(principal, username); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		return nil, err
	}
	return s.messageRepo.ListTo(ctx, username)
}
