package entity

import "errors"

var (
	ErrNoteNotFound       = errors.New("note not found")
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnsavedNote is returned for operations that need a persisted note.
	ErrUnsavedNote     = errors.New("note is not saved yet")
	ErrSessionClosed   = errors.New("session is closed")
	ErrSessionState    = errors.New("operation not allowed in current session state")
	ErrSessionNotFound = errors.New("session not found")
)
