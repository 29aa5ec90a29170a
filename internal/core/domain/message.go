package domain

import "time"

type Message struct {
	ID           int64      `db:"id"`
	FromUsername string     `db:"from_username"`
	ToUsername   string     `db:"to_username"`
	Body         string     `db:"body"`
	SentAt       time.Time  `db:"sent_at"`
	ReadAt       *time.Time `db:"read_at"` // set once, null until the recipient marks it read
}

func NewMessage(fromUsername, toUsername, body string) *Message {
	return &Message{
		FromUsername: fromUsername,
		ToUsername:   toUsername,
		Body:         body,
		SentAt:       time.Now(),
	}
}

// MessageDetail is a message joined with the public profiles of both parties.
type MessageDetail struct {
	ID       int64
	Body     string
	SentAt   time.Time
	ReadAt   *time.Time
	FromUser Profile
	ToUser   Profile
}

// MessageWithCounterpart is one side of a user's correspondence: the message
// plus the public profile of the other party (the recipient for an outbox
// listing, the sender for an inbox listing).
type MessageWithCounterpart struct {
	ID          int64
	Body        string
	SentAt      time.Time
	ReadAt      *time.Time
	Counterpart Profile
}
