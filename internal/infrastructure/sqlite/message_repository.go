package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/messagely/messagely/internal/core/domain"
	"github.com/messagely/messagely/internal/core/repository"
	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type messageRepository struct {
	db *DB
}

func NewMessageRepository(db *DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (from_username, to_username, body, sent_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		message.FromUsername,
		message.ToUsername,
		message.Body,
		message.SentAt,
	)
	if isForeignKeyConflict(err) {
		// from_username is the authenticated principal, so an FK failure
		// means the recipient does not exist.
		return domain.NewNotFound("no user: %s", message.ToUsername)
	}
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get message id: %w", err)
	}
	message.ID = id
	return nil
}

func (r *messageRepository) FindByID(ctx context.Context, id int64) (*domain.MessageDetail, error) {
	query := `
		SELECT m.id,
		       m.body,
		       m.sent_at,
		       m.read_at,
		       f.username AS "from_user.username",
		       f.first_name AS "from_user.first_name",
		       f.last_name AS "from_user.last_name",
		       f.phone AS "from_user.phone",
		       t.username AS "to_user.username",
		       t.first_name AS "to_user.first_name",
		       t.last_name AS "to_user.last_name",
		       t.phone AS "to_user.phone"
		FROM messages m
		JOIN users f ON m.from_username = f.username
		JOIN users t ON m.to_username = t.username
		WHERE m.id = ?
	`
	var row struct {
		ID       int64          `db:"id"`
		Body     string         `db:"body"`
		SentAt   time.Time      `db:"sent_at"`
		ReadAt   *time.Time     `db:"read_at"`
		FromUser domain.Profile `db:"from_user"`
		ToUser   domain.Profile `db:"to_user"`
	}
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("no message: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	return &domain.MessageDetail{
		ID:       row.ID,
		Body:     row.Body,
		SentAt:   row.SentAt,
		ReadAt:   row.ReadAt,
		FromUser: row.FromUser,
		ToUser:   row.ToUser,
	}, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id int64) (*domain.Message, error) {
	// The read_at IS NULL guard makes the transition one-way: a second
	// call leaves the original read timestamp untouched.
	query := `UPDATE messages SET read_at = ? WHERE id = ? AND read_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return nil, fmt.Errorf("failed to mark message read: %w", err)
	}

	var message domain.Message
	err := r.db.GetContext(ctx, &message, `
		SELECT id, from_username, to_username, body, sent_at, read_at
		FROM messages
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("no message: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return &message, nil
}

func (r *messageRepository) ListFrom(ctx context.Context, username string) ([]domain.MessageWithCounterpart, error) {
	query := `
		SELECT m.id,
		       m.body,
		       m.sent_at,
		       m.read_at,
		       u.username AS "counterpart.username",
		       u.first_name AS "counterpart.first_name",
		       u.last_name AS "counterpart.last_name",
		       u.phone AS "counterpart.phone"
		FROM messages m
		JOIN users u ON m.to_username = u.username
		WHERE m.from_username = ?
		ORDER BY m.sent_at
	`
	return r.listCorrespondence(ctx, query, username)
}

func (r *messageRepository) ListTo(ctx context.Context, username string) ([]domain.MessageWithCounterpart, error) {
	query := `
		SELECT m.id,
		       m.body,
		       m.sent_at,
		       m.read_at,
		       u.username AS "counterpart.username",
		       u.first_name AS "counterpart.first_name",
		       u.last_name AS "counterpart.last_name",
		       u.phone AS "counterpart.phone"
		FROM messages m
		JOIN users u ON m.from_username = u.username
		WHERE m.to_username = ?
		ORDER BY m.sent_at
	`
	return r.listCorrespondence(ctx, query, username)
}

func (r *messageRepository) listCorrespondence(ctx context.Context, query, username string) ([]domain.MessageWithCounterpart, error) {
	var rows []struct {
		ID          int64          `db:"id"`
		Body        string         `db:"body"`
		SentAt      time.Time      `db:"sent_at"`
		ReadAt      *time.Time     `db:"read_at"`
		Counterpart domain.Profile `db:"counterpart"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, username); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]domain.MessageWithCounterpart, len(rows))
	for i, row := range rows {
		messages[i] = domain.MessageWithCounterpart{
			ID:          row.ID,
			Body:        row.Body,
			SentAt:      row.SentAt,
			ReadAt:      row.ReadAt,
			Counterpart: row.Counterpart,
		}
	}
	return messages, nil
}

// isForeignKeyConflict reports whether err is a sqlite foreign-key
// constraint violation.
func isForeignKeyConflict(err error) bool {
	var serr *sqlite3.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
}
