package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylemate/stylemate/internal/store"
	"github.com/stylemate/stylemate/internal/style"
)

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()
	st, err := store.Open(
		filepath.Join(t.TempDir(), "test.db"),
		store.WithRetryDelay(time.Millisecond),
	)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewManager(st, NewAnalysisCache(st)), st
}

func TestActivate_NotAnalyzableWithoutMode(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Activate(ctx, 42))

	ok, err := m.CanAnalyze(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok, "activation alone must not permit analysis")

	require.NoError(t, m.SelectMode(ctx, 42, style.ModeProfessional))

	ok, err = m.CanAnalyze(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSelectMode_RequiresActiveSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	err := m.SelectMode(ctx, 1, style.ModeFashion)
	assert.ErrorIs(t, err, ErrNotActive)

	// Explicitly ended sessions are rejected the same way
	require.NoError(t, m.Activate(ctx, 1))
	require.NoError(t, m.End(ctx, 1))
	err = m.SelectMode(ctx, 1, style.ModeFashion)
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestSelectMode_RejectsUnknownMode(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Activate(ctx, 1))
	err := m.SelectMode(ctx, 1, style.Mode("astronaut"))
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestSpecialEvent_BlocksAnalysisUntilEventSet(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Activate(ctx, 7))
	require.NoError(t, m.SelectMode(ctx, 7, style.ModeSpecialEvent))

	ok, err := m.CanAnalyze(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok, "special_event without event text must block analysis")

	require.NoError(t, m.SetEvent(ctx, 7, "  wedding  "))

	ok, err = m.CanAnalyze(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	snap, err := m.State(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "wedding", snap.Event, "event text is stored trimmed")
}

func TestSetEvent_EmptyTextRejected(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Activate(ctx, 7))
	require.NoError(t, m.SelectMode(ctx, 7, style.ModeSpecialEvent))
	require.NoError(t, m.SetEvent(ctx, 7, "graduation"))

	for _, text := range []string{"", "   ", "\n\t"} {
		err := m.SetEvent(ctx, 7, text)
		assert.ErrorIs(t, err, ErrEmptyEvent)
	}

	// Rejected input leaves the stored event unchanged
	snap, err := m.State(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "graduation", snap.Event)
}

func TestSetEvent_WrongMode(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Activate(ctx, 7))
	require.NoError(t, m.SelectMode(ctx, 7, style.ModeStudent))

	err := m.SetEvent(ctx, 7, "wedding")
	assert.ErrorIs(t, err, ErrNotEventMode)
}

func TestSetEvent_RequiresActiveSession(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.SetEvent(context.Background(), 7, "wedding")
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestActivate_PreservesPriorSelections(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Activate(ctx, 3))
	require.NoError(t, m.SelectMode(ctx, 3, style.ModeSpecialEvent))
	require.NoError(t, m.SetEvent(ctx, 3, "engagement"))

	// Reactivation flips the active flag but keeps mode and event
	require.NoError(t, m.Activate(ctx, 3))

	snap, err := m.State(ctx, 3)
	require.NoError(t, err)
	assert.True(t, snap.Active)
	assert.Equal(t, style.ModeSpecialEvent, snap.Mode)
	assert.Equal(t, "engagement", snap.Event)
}

func TestEnd_ResetsSessionAndEvictsCache(t *testing.T) {
	m, st := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Activate(ctx, 9))
	require.NoError(t, m.SelectMode(ctx, 9, style.ModeSpecialEvent))
	require.NoError(t, m.SetEvent(ctx, 9, "interview"))
	require.NoError(t, m.Cache().Put(ctx, 9, "great look"))

	require.NoError(t, m.End(ctx, 9))

	snap, err := m.State(ctx, 9)
	require.NoError(t, err)
	assert.False(t, snap.Active)
	assert.Equal(t, style.ModeNone, snap.Mode)
	assert.Empty(t, snap.Event)

	// Eviction removed the memory entry; the store record survives
	text, err := st.LastAnalysis(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "great look", text)

	ok, err := m.CanAnalyze(ctx, 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActivate_StoreFailureLeavesStateUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(path, store.WithRetryDelay(time.Millisecond))
	require.NoError(t, err)
	m := NewManager(st, NewAnalysisCache(st))

	// Simulate an unavailable store
	require.NoError(t, st.Close())
	err = m.Activate(context.Background(), 11)
	require.Error(t, err)

	// The user's prior state (never activated) is unchanged
	st2, err := store.Open(path, store.WithRetryDelay(time.Millisecond))
	require.NoError(t, err)
	defer st2.Close()

	active, err := st2.SessionActive(context.Background(), 11)
	require.NoError(t, err)
	assert.False(t, active)
}
