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

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password, first_name, last_name, phone, join_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Password,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.JoinAt,
	)
	if isPrimaryKeyConflict(err) {
		// The insert itself is the uniqueness check; no pre-select means
		// no check-then-insert race window.
		return domain.NewDuplicateUsername(user.Username)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT username, password, first_name, last_name, phone, join_at, last_login_at
		FROM users
		WHERE username = ?
	`
	var user domain.User
	err := r.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("no user: %s", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateLoginTimestamp(ctx context.Context, username string) error {
	query := `UPDATE users SET last_login_at = ? WHERE username = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now(), username)
	if err != nil {
		return fmt.Errorf("failed to update login timestamp: %w", err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.Profile, error) {
	query := `
		SELECT username, first_name, last_name, phone
		FROM users
		ORDER BY username
	`
	var profiles []domain.Profile
	err := r.db.SelectContext(ctx, &profiles, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return profiles, nil
}

// isPrimaryKeyConflict reports whether err is a sqlite primary-key
// constraint violation.
func isPrimaryKeyConflict(err error) bool {
	var serr *sqlite3.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY
}
