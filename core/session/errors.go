package session

import "errors"

var (
	// ErrNotFound is returned by stores when no session is persisted.
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned when a session has passed its expiry.
	ErrExpired = errors.New("session has expired")
	// ErrInvalid is returned when a stored session fails structural validation.
	ErrInvalid = errors.New("session data is invalid")
	// ErrNoActiveSession is returned by UpdateUser when nothing valid is active.
	ErrNoActiveSession = errors.New("no active session")
	// ErrInvalidUser is returned when creating a session for a malformed user.
	ErrInvalidUser = errors.New("invalid session user")
	// ErrTokenGeneration is returned when secure token generation fails.
	ErrTokenGeneration = errors.New("failed to generate session token")
	// ErrSaveSession is returned when persisting a session fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrClearSession is returned when removing persisted state fails.
	ErrClearSession = errors.New("failed to clear session")
)
