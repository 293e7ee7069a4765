package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// ErrUnavailable indicates a call failed with transient lock contention on
// every retry attempt. Callers treat the higher-level operation as failed
// (false/absent) rather than crashing.
var ErrUnavailable = errors.New("store unavailable")

const (
	// retryAttempts bounds how many times a transient failure is retried.
	retryAttempts = 3

	// defaultRetryDelay is the fixed wait between retry attempts. Together
	// with retryAttempts it caps worst-case call latency at about 3 seconds.
	defaultRetryDelay = time.Second
)

// Store provides durable storage for per-user session state, preferences,
// pending events, last-analysis snapshots, and favorites.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db         *sql.DB
	retryDelay time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithRetryDelay overrides the fixed inter-attempt retry delay.
// Tests use a short delay to avoid multi-second sleeps.
func WithRetryDelay(d time.Duration) Option {
	return func(s *Store) {
		s.retryDelay = d
	}
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Store{db: db, retryDelay: defaultRetryDelay}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// withConn runs fn against a connection acquired fresh for this call.
// The connection is released on every exit path, including the retry
// loop's failure branch.
//
// Transient errors (SQLITE_BUSY, SQLITE_LOCKED) are retried up to
// retryAttempts with a fixed delay; exhaustion returns an error wrapping
// ErrUnavailable. Any other error propagates immediately.
func (s *Store) withConn(ctx context.Context, op string, fn func(*sql.Conn) error) error {
	var lastErr error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err := func() error {
			conn, err := s.db.Conn(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()
			return fn(conn)
		}()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return fmt.Errorf("%s: %w", op, err)
		}
		lastErr = err
		if attempt < retryAttempts {
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return fmt.Errorf("%s: %w", op, ctx.Err())
			}
		}
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, lastErr)
}

// isTransient reports whether err is lock contention expected to clear on
// retry, as opposed to a structural error (schema, constraint violation).
func isTransient(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
