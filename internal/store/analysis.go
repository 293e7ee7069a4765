package store

import (
	"context"
	"database/sql"
	"errors"
)

// SaveAnalysis upserts the last-analysis snapshot for a user.
// Every new analysis overwrites the previous one.
func (s *Store) SaveAnalysis(ctx context.Context, userID int64, analysis string) error {
	return s.withConn(ctx, "save analysis", func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO last_analysis (user_id, analysis, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(user_id) DO UPDATE SET
				analysis = excluded.analysis,
				updated_at = CURRENT_TIMESTAMP
		`, userID, analysis)
		return err
	})
}

// LastAnalysis returns the user's most recent analysis text, "" if none
// has been stored.
func (s *Store) LastAnalysis(ctx context.Context, userID int64) (string, error) {
	var analysis string
	err := s.withConn(ctx, "get analysis", func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx,
			`SELECT analysis FROM last_analysis WHERE user_id = ?`, userID,
		).Scan(&analysis)
		if errors.Is(err, sql.ErrNoRows) {
			analysis = ""
			return nil
		}
		return err
	})
	if err != nil {
		return "", err
	}
	return analysis, nil
}
