// Package store provides SQLite-backed durable storage for per-user
// conversation state.
//
// Record kinds, all keyed by user id:
//   - Session state: active/inactive flag
//   - Mode preference: the selected advice profile
//   - Pending event: free-text event description for special_event mode
//   - Last analysis: most recent analysis result snapshot
//   - Favorites: append-only saved analyses (auto-incrementing id)
//
// # Write Semantics
//
// All keyed writes are upserts: ON CONFLICT(user_id) DO UPDATE with
// updated_at = CURRENT_TIMESTAMP. Repeating a write with identical values
// leaves the record unchanged except for the timestamp.
//
// # Failure Handling
//
// Every call acquires a connection-scoped resource (sql.Conn) that is
// released on every exit path. Transient lock contention (SQLITE_BUSY,
// SQLITE_LOCKED) is retried up to 3 attempts with a fixed inter-attempt
// delay; after exhaustion the call fails with an error wrapping
// ErrUnavailable. Non-transient errors propagate immediately without retry.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
