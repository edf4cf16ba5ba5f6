// Package sqlite persists users and user action logs in an embedded
// SQLite database. The driver is pure Go (modernc.org/sqlite) so the
// binary stays CGO-free.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"shelterpulse/internal/errors"
	"shelterpulse/pkg/contracts/domain"
)

// Store wraps the SQLite connection for the users and action_logs tables.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (or creates) the database at the given path and ensures
// the schema exists. The parent directory is created if missing.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time; serialise through a single
	// connection instead of surfacing SQLITE_BUSY to callers.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, dbPath: path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS action_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts DATETIME NOT NULL,
		username TEXT NOT NULL,
		action TEXT NOT NULL,
		details TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_action_logs_ts ON action_logs(ts);
	CREATE INDEX IF NOT EXISTS idx_action_logs_username ON action_logs(username);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateUser inserts a new user. Returns errors.ErrUserExists when the
// username is already taken.
func (s *Store) CreateUser(ctx context.Context, user domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		user.Username, user.PasswordHash, user.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		var exists bool
		checkErr := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, user.Username,
		).Scan(&exists)
		if checkErr == nil && exists {
			return errors.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser fetches a user by username. Returns errors.ErrBadCredentials
// when the user does not exist, so callers cannot distinguish an unknown
// user from a wrong password.
func (s *Store) GetUser(ctx context.Context, username string) (domain.User, error) {
	var (
		user      domain.User
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT username, password_hash, created_at FROM users WHERE username = ?`,
		username,
	).Scan(&user.Username, &user.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return domain.User{}, errors.ErrBadCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
		user.CreatedAt = t
	}
	return user, nil
}

// CountUsers returns the number of registered users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// AppendAction records one user action. The assigned log ID is written
// back into the action.
func (s *Store) AppendAction(ctx context.Context, action *domain.UserAction) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO action_logs (ts, username, action, details) VALUES (?, ?, ?, ?)`,
		action.Time.UTC().Format(time.RFC3339), action.Username, action.Action, action.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to append action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read action id: %w", err)
	}
	action.ID = id
	return nil
}

// RecentActions returns the most recent actions, newest first, capped at
// limit.
func (s *Store) RecentActions(ctx context.Context, limit int) ([]domain.UserAction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, username, action, details FROM action_logs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer rows.Close()

	actions := make([]domain.UserAction, 0, limit)
	for rows.Next() {
		var (
			action domain.UserAction
			ts     string
		)
		if err := rows.Scan(&action.ID, &ts, &action.Username, &action.Action, &action.Details); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			action.Time = t
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read actions: %w", err)
	}
	return actions, nil
}

// CountActions returns the total number of logged actions.
func (s *Store) CountActions(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM action_logs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return count, nil
}
