package store

import (
	"context"
	"database/sql"

	"github.com/stylemate/stylemate/internal/style"
)

// AddFavorite appends an immutable favorite record and returns its
// generated id. Favorites are never edited after creation.
func (s *Store) AddFavorite(ctx context.Context, userID int64, analysis string, mode style.Mode) (int64, error) {
	var id int64
	err := s.withConn(ctx, "add favorite", func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, `
			INSERT INTO favorites (user_id, analysis, mode)
			VALUES (?, ?, ?)
		`, userID, analysis, string(mode))
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListFavorites returns the user's favorites newest first. Creation-time
// ties are broken by descending id so the most recently inserted row wins,
// keeping the ordering deterministic.
//
// Returns an empty slice (not nil) if the user has no favorites.
func (s *Store) ListFavorites(ctx context.Context, userID int64) ([]style.Favorite, error) {
	var favorites []style.Favorite
	err := s.withConn(ctx, "list favorites", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT id, user_id, analysis, mode, created_at
			FROM favorites
			WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		favorites = favorites[:0]
		for rows.Next() {
			var f style.Favorite
			var mode string
			if err := rows.Scan(&f.ID, &f.UserID, &f.Analysis, &mode, &f.CreatedAt); err != nil {
				return err
			}
			f.Mode = style.Mode(mode)
			favorites = append(favorites, f)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []style.Favorite{}
	}
	return favorites, nil
}

// DeleteFavorite removes a favorite only if it exists AND belongs to
// userID. A cross-user attempt returns false without revealing whether the
// id exists for another user.
func (s *Store) DeleteFavorite(ctx context.Context, id, userID int64) (bool, error) {
	var deleted bool
	err := s.withConn(ctx, "delete favorite", func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, `
			DELETE FROM favorites
			WHERE id = ? AND user_id = ?
		`, id, userID)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// DeleteAllFavorites removes every favorite owned by userID and returns
// how many were removed (0 if none).
func (s *Store) DeleteAllFavorites(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.withConn(ctx, "delete all favorites", func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx,
			`DELETE FROM favorites WHERE user_id = ?`, userID)
		if err != nil {
			return err
		}
		count, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
