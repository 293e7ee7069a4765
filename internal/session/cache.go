package session

import (
	"context"
	"sync"
)

// analysisStore is the slice of the durable store the cache needs.
// Satisfied by *store.Store; tests substitute a counting fake.
type analysisStore interface {
	SaveAnalysis(ctx context.Context, userID int64, analysis string) error
	LastAnalysis(ctx context.Context, userID int64) (string, error)
}

// AnalysisCache maps each user to their most recent analysis text,
// read-through and write-through against the durable store.
//
// The memory map is the hot path for "show last analysis" and "quick save";
// the store keeps the snapshot across process restarts. Eviction removes
// only the memory entry - the store record survives, so a fresh cache
// instance can warm itself with one store read per user.
//
// Thread-safety: a single mutex guards the map. Store I/O happens outside
// the lock; cache and store are always touched in that order, never the
// reverse, so there is no nested lock acquisition.
type AnalysisCache struct {
	mu     sync.Mutex
	store  analysisStore
	byUser map[int64]string
}

// NewAnalysisCache creates an empty cache backed by the given store.
func NewAnalysisCache(store analysisStore) *AnalysisCache {
	return &AnalysisCache{
		store:  store,
		byUser: make(map[int64]string),
	}
}

// Put records the analysis in memory first, then persists it.
// The memory write is visible to subsequent Gets even if the store write
// fails; the store error is still returned so the caller can report it.
func (c *AnalysisCache) Put(ctx context.Context, userID int64, analysis string) error {
	c.mu.Lock()
	c.byUser[userID] = analysis
	c.mu.Unlock()

	return c.store.SaveAnalysis(ctx, userID, analysis)
}

// Get returns the user's most recent analysis, "" if none exists.
// A memory miss falls back to the store and populates memory on a hit.
func (c *AnalysisCache) Get(ctx context.Context, userID int64) (string, error) {
	c.mu.Lock()
	analysis, ok := c.byUser[userID]
	c.mu.Unlock()
	if ok {
		return analysis, nil
	}

	analysis, err := c.store.LastAnalysis(ctx, userID)
	if err != nil {
		return "", err
	}
	if analysis != "" {
		c.mu.Lock()
		c.byUser[userID] = analysis
		c.mu.Unlock()
	}
	return analysis, nil
}

// Evict removes the user's memory entry without touching the store record.
// Models "forget for this session" without destroying history.
func (c *AnalysisCache) Evict(userID int64) {
	c.mu.Lock()
	delete(c.byUser, userID)
	c.mu.Unlock()
}
