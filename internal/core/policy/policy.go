// Package policy provides the authorization predicates gating message
// access. Predicates are stateless: they evaluate an authenticated
// principal against an already-fetched message and either allow the
// operation or return an unauthorized domain error.
package policy

import (
	"github.com/messagely/messagely/internal/core/domain"
)

// CanViewMessage allows either party of the message to read it.
func CanViewMessage(principal string, message *domain.MessageDetail) error {
	if principal == message.FromUser.Username || principal == message.ToUser.Username {
		return nil
	}
	return domain.NewUnauthorized()
}

// CanMarkRead allows only the recipient to mark the message read. The
// sender can see the message but never owns its read receipt.
func CanMarkRead(principal string, message *domain.MessageDetail) error {
	if principal == message.ToUser.Username {
		return nil
	}
	return domain.NewUnauthorized()
}

// CanViewCorrespondence allows a user to list only their own inbox and
// outbox.
func CanViewCorrespondence(principal, username string) error {
	if principal == username {
		return nil
	}
	return domain.NewUnauthorized()
}
