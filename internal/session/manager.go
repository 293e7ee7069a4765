package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stylemate/stylemate/internal/store"
	"github.com/stylemate/stylemate/internal/style"
)

// Snapshot is a point-in-time view of one user's session for handlers that
// need more than a single guard check.
type Snapshot struct {
	Active bool
	Mode   style.Mode
	Event  string
}

// Manager owns the session state transitions. It persists through the
// durable store and evicts the analysis cache on session end.
//
// Constructed once at process start and passed by reference to every
// handler; it carries no per-request state of its own.
type Manager struct {
	store *store.Store
	cache *AnalysisCache
}

// NewManager creates a Manager over the given store and cache.
func NewManager(st *store.Store, cache *AnalysisCache) *Manager {
	return &Manager{store: st, cache: cache}
}

// Cache exposes the analysis cache the manager evicts on End.
func (m *Manager) Cache() *AnalysisCache {
	return m.cache
}

// Activate starts (or restarts) a session from any state.
// Reactivation is non-destructive: a previously selected mode and event
// are preserved until the session is explicitly ended.
func (m *Manager) Activate(ctx context.Context, userID int64) error {
	return m.store.SetSessionActive(ctx, userID, true)
}

// SelectMode sets the user's advice profile. Requires an active session;
// the active flag is re-checked here even if the caller already checked,
// since check and mutation are not one atomic unit.
//
// Selecting special_event leaves the user awaiting event text; any other
// mode makes the session ready for analysis.
func (m *Manager) SelectMode(ctx context.Context, userID int64, mode style.Mode) error {
	if !mode.Selectable() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	active, err := m.store.SessionActive(ctx, userID)
	if err != nil {
		return err
	}
	if !active {
		return ErrNotActive
	}

	return m.store.SetMode(ctx, userID, mode)
}

// SetEvent supplies the event text for special_event mode.
// Empty or whitespace-only text fails with ErrEmptyEvent and leaves the
// stored event unchanged.
func (m *Manager) SetEvent(ctx context.Context, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyEvent
	}

	active, err := m.store.SessionActive(ctx, userID)
	if err != nil {
		return err
	}
	if !active {
		return ErrNotActive
	}

	mode, err := m.store.Mode(ctx, userID)
	if err != nil {
		return err
	}
	if mode != style.ModeSpecialEvent {
		return ErrNotEventMode
	}

	return m.store.SetEvent(ctx, userID, text)
}

// CanAnalyze reports whether a photo may be analyzed for this user:
// session active, a mode chosen, and (for special_event) event text set.
// Evaluate immediately before every analysis request.
func (m *Manager) CanAnalyze(ctx context.Context, userID int64) (bool, error) {
	snap, err := m.State(ctx, userID)
	if err != nil {
		return false, err
	}
	if !snap.Active || snap.Mode == style.ModeNone {
		return false, nil
	}
	if snap.Mode == style.ModeSpecialEvent && snap.Event == "" {
		return false, nil
	}
	return true, nil
}

// State returns the user's current session snapshot.
func (m *Manager) State(ctx context.Context, userID int64) (Snapshot, error) {
	active, err := m.store.SessionActive(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	mode, err := m.store.Mode(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	event, err := m.store.Event(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Active: active, Mode: mode, Event: event}, nil
}

// End deactivates the session, clears the mode preference and pending
// event, and evicts the user's cache entry. Historical favorites are left
// untouched.
//
// The reset is best-effort, not transactional: each write is attempted
// regardless of earlier failures, failures are joined into the returned
// error, and nothing is rolled back. A non-nil error means the session
// ended only partially.
func (m *Manager) End(ctx context.Context, userID int64) error {
	var errs []error

	if err := m.store.SetSessionActive(ctx, userID, false); err != nil {
		errs = append(errs, fmt.Errorf("deactivate: %w", err))
	}
	if err := m.store.SetMode(ctx, userID, style.ModeNone); err != nil {
		errs = append(errs, fmt.Errorf("clear mode: %w", err))
	}
	if err := m.store.SetEvent(ctx, userID, ""); err != nil {
		errs = append(errs, fmt.Errorf("clear event: %w", err))
	}

	// Always evict so a stale analysis cannot be read after session end.
	m.cache.Evict(userID)

	return errors.Join(errs...)
}
