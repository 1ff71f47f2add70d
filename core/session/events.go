package session

import "github.com/google/uuid"

// SessionCreated is published after a session (guest or authenticated) is
// minted and installed as the current session.
type SessionCreated struct {
	Session Session
}

// SessionCleared is published after an explicit Clear.
type SessionCleared struct {
	SessionID uuid.UUID
}
