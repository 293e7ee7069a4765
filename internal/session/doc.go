// Package session implements the per-user conversation state machine and
// the in-process last-analysis cache.
//
// # States
//
// A user moves through three main states, with one side-state:
//
//	NoSession → SessionActiveNoMode → SessionActiveWithMode
//	                     └── AwaitingEventText ──┘  (special_event only)
//
// Activation is non-destructive: reactivating preserves a previously
// selected mode and event until the session is explicitly ended.
//
// # Guards
//
// Every mutating operation re-checks the active flag against the store
// even when the caller believes it already did - the check and the
// mutation are not one atomic unit.
//
// Ending a session is best-effort, not transactional: each field reset is
// attempted independently, failures are joined into the returned error,
// and already-succeeded resets are not rolled back.
package session
