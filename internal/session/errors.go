package session

import "errors"

var (
	// ErrNotActive is returned by mutating operations when the user has no
	// active session. The caller should prompt the user to restart.
	ErrNotActive = errors.New("session not active")

	// ErrEmptyEvent is returned by SetEvent when the supplied text is empty
	// after trimming. The stored event is left unchanged; the caller should
	// re-prompt.
	ErrEmptyEvent = errors.New("event text is empty")

	// ErrNotEventMode is returned by SetEvent when the user's current mode
	// is not special_event.
	ErrNotEventMode = errors.New("current mode does not take an event")

	// ErrInvalidMode is returned by SelectMode for a mode outside the
	// selectable set.
	ErrInvalidMode = errors.New("invalid mode")
)
