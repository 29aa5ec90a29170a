package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	phone TEXT NOT NULL,
	join_at DATETIME NOT NULL,
	last_login_at DATETIME
);

CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	from_username TEXT NOT NULL,
	to_username TEXT NOT NULL,
	body TEXT NOT NULL,
	sent_at DATETIME NOT NULL,
	read_at DATETIME,
	FOREIGN KEY (from_username) REFERENCES users(username),
	FOREIGN KEY (to_username) REFERENCES users(username)
);

CREATE INDEX IF NOT EXISTS idx_messages_from_username ON messages(from_username, sent_at);
CREATE INDEX IF NOT EXISTS idx_messages_to_username ON messages(to_username, sent_at);
`

type DB struct {
	*sqlx.DB
}

func New(dbPath string) (*DB, error) {
	// Pragmas ride on the DSN so that every connection the pool opens
	// gets them. Executing them with db.Exec would configure only a
	// single pooled connection, leaving foreign keys off everywhere
	// else: WAL mode for concurrent reads/writes, a busy timeout for
	// concurrent access, and foreign key enforcement.
	dsn := "file:" + dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)"

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every in-memory connection is its own empty database, so the
	// pool must not grow past the one that holds the schema.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Create tables
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
