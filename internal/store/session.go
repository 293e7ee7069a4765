package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stylemate/stylemate/internal/style"
)

// SetSessionActive upserts the session_state record for a user.
// Repeated calls with the same value are idempotent up to updated_at.
func (s *Store) SetSessionActive(ctx context.Context, userID int64, active bool) error {
	return s.withConn(ctx, "set session state", func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO session_state (user_id, is_active, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(user_id) DO UPDATE SET
				is_active = excluded.is_active,
				updated_at = CURRENT_TIMESTAMP
		`, userID, active)
		return err
	})
}

// SessionActive returns whether the user has an active session.
// A user with no session_state record is inactive.
func (s *Store) SessionActive(ctx context.Context, userID int64) (bool, error) {
	var active bool
	err := s.withConn(ctx, "get session state", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			`SELECT is_active FROM session_state WHERE user_id = ?`, userID,
		).Scan(&active)
		if errors.Is(err, sql.ErrNoRows) {
			active = false
			return nil
		}
		return err
	})
	if err != nil {
		return false, err
	}
	return active, nil
}

// SetMode upserts the mode preference for a user.
// style.ModeNone (empty string) clears the preference.
func (s *Store) SetMode(ctx context.Context, userID int64, mode style.Mode) error {
	return s.withConn(ctx, "set mode", func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO user_preferences (user_id, mode, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(user_id) DO UPDATE SET
				mode = excluded.mode,
				updated_at = CURRENT_TIMESTAMP
		`, userID, string(mode))
		return err
	})
}

// Mode returns the user's mode preference.
// Absent record or cleared preference both read as style.ModeNone.
func (s *Store) Mode(ctx context.Context, userID int64) (style.Mode, error) {
	var mode string
	err := s.withConn(ctx, "get mode", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			`SELECT mode FROM user_preferences WHERE user_id = ?`, userID,
		).Scan(&mode)
		if errors.Is(err, sql.ErrNoRows) {
			mode = ""
			return nil
		}
		return err
	})
	if err != nil {
		return style.ModeNone, err
	}
	return style.Mode(mode), nil
}

// SetEvent upserts the pending-event text for a user.
// An empty string reads back as "not set".
func (s *Store) SetEvent(ctx context.Context, userID int64, event string) error {
	return s.withConn(ctx, "set event", func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO user_events (user_id, event, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(user_id) DO UPDATE SET
				event = excluded.event,
				updated_at = CURRENT_TIMESTAMP
		`, userID, event)
		return err
	})
}

// Event returns the user's pending-event text, "" if absent.
func (s *Store) Event(ctx context.Context, userID int64) (string, error) {
	var event string
	err := s.withConn(ctx, "get event", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			`SELECT event FROM user_events WHERE user_id = ?`, userID,
		).Scan(&event)
		if errors.Is(err, sql.ErrNoRows) {
			event = ""
			return nil
		}
		return err
	})
	if err != nil {
		return "", err
	}
	return event, nil
}
