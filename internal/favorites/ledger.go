// Package favorites provides the user-scoped ledger of saved analyses.
package favorites

import (
	"context"
	"log/slog"

	"github.com/stylemate/stylemate/internal/store"
	"github.com/stylemate/stylemate/internal/style"
)

// Ledger is an append-only, user-scoped collection of saved analyses over
// the durable store. Entries are immutable once created; they can only be
// deleted, singly or in bulk.
//
// Soft-failure contract: operations report success indicators rather than
// raising errors for expected conditions. Store unavailability logs and
// reads as a failed save / empty list / zero deletions.
type Ledger struct {
	store *store.Store
	log   *slog.Logger
}

// NewLedger creates a Ledger over the given store.
func NewLedger(st *store.Store, log *slog.Logger) *Ledger {
	return &Ledger{store: st, log: log}
}

// Add appends a new favorite. Returns false only if the store is
// unavailable.
func (l *Ledger) Add(ctx context.Context, userID int64, analysis string, mode style.Mode) bool {
	if mode == style.ModeNone {
		mode = style.ModeGeneral
	}
	if _, err := l.store.AddFavorite(ctx, userID, analysis, mode); err != nil {
		l.log.Error("add favorite failed", "user_id", userID, "error", err)
		return false
	}
	return true
}

// List returns the user's favorites newest first, with creation-time ties
// broken by most-recently-inserted first. Returns an empty slice on store
// failure.
func (l *Ledger) List(ctx context.Context, userID int64) []style.Favorite {
	favorites, err := l.store.ListFavorites(ctx, userID)
	if err != nil {
		l.log.Error("list favorites failed", "user_id", userID, "error", err)
		return []style.Favorite{}
	}
	return favorites
}

// DeleteOne removes the favorite with the given id if and only if it
// belongs to userID. A cross-user or absent id reads as false; the error
// channel never reveals whether the id exists for another user.
func (l *Ledger) DeleteOne(ctx context.Context, id, userID int64) bool {
	deleted, err := l.store.DeleteFavorite(ctx, id, userID)
	if err != nil {
		l.log.Error("delete favorite failed", "user_id", userID, "favorite_id", id, "error", err)
		return false
	}
	return deleted
}

// DeleteAll removes every favorite owned by userID and returns how many
// were removed (0 if none, or on store failure).
func (l *Ledger) DeleteAll(ctx context.Context, userID int64) int64 {
	count, err := l.store.DeleteAllFavorites(ctx, userID)
	if err != nil {
		l.log.Error("delete all favorites failed", "user_id", userID, "error", err)
		return 0
	}
	return count
}
