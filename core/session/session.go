package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current persisted session schema. Stores use it to
// recognize blobs written by the retired legacy implementations.
const SchemaVersion = 2

// Session is a single actor's session record.
type Session struct {
	// ID is the stable unique session identifier.
	ID uuid.UUID

	// Token is an opaque session token (32 bytes base64url). It is never
	// verified against a server; holding it grants nothing by itself.
	Token string

	// User is the current actor, guest or authenticated.
	User User

	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActivity time.Time

	// Version is the schema version the session was decoded from.
	Version int

	// isModified tracks if the session needs saving.
	isModified bool
}

// New creates an authenticated session for the given user.
// An empty token is replaced with a freshly generated one.
func New(user User, token string, ttl time.Duration) (Session, error) {
	if user.ID == uuid.Nil {
		return Session{}, errors.Join(ErrInvalidUser, errors.New("missing user ID"))
	}
	if user.Role == "" {
		user.Role = RoleCustomer
	}

	if token == "" {
		generated, err := generateToken()
		if err != nil {
			return Session{}, errors.Join(ErrTokenGeneration, err)
		}
		token = generated
	}

	now := time.Now()
	return Session{
		ID:           uuid.New(),
		Token:        token,
		User:         user,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		LastActivity: now,
		Version:      SchemaVersion,
		isModified:   true,
	}, nil
}

// NewGuest creates an unauthenticated session with the restricted guest
// permission set.
func NewGuest(ttl time.Duration) (Session, error) {
	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session{
		ID:    uuid.New(),
		Token: token,
		User: User{
			Role:        RoleGuest,
			Permissions: GuestPermissions(),
			IsGuest:     true,
		},
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		LastActivity: now,
		Version:      SchemaVersion,
		isModified:   true,
	}, nil
}

// IsExpired reports whether the session has passed its expiry.
// A zero ExpiresAt counts as expired: the legacy implementations disagreed
// on whether a missing expiry meant "never expires", and the consolidated
// policy fails safe.
func (s Session) IsExpired() bool {
	if s.ExpiresAt.IsZero() {
		return true
	}
	return !time.Now().Before(s.ExpiresAt)
}

// IsGuest reports whether the session belongs to an unauthenticated actor.
func (s Session) IsGuest() bool {
	return s.User.IsGuest || s.User.Role == RoleGuest
}

// IsModified reports whether the session has unsaved changes.
func (s Session) IsModified() bool {
	return s.isModified
}

// Validate performs the structural check applied to stored sessions before
// they are trusted: required identifiers present and timestamps usable.
// Expiry is checked separately via IsExpired. The token is not verified
// server-side because there is no server.
func (s Session) Validate() error {
	switch {
	case s.ID == uuid.Nil:
		return errors.Join(ErrInvalid, errors.New("missing session ID"))
	case s.User.Role == "":
		return errors.Join(ErrInvalid, errors.New("missing user role"))
	case s.CreatedAt.IsZero():
		return errors.Join(ErrInvalid, errors.New("missing creation time"))
	case s.ExpiresAt.IsZero():
		return errors.Join(ErrInvalid, errors.New("missing expiry time"))
	}
	return nil
}

// Touch refreshes LastActivity if the touch interval has elapsed,
// limiting persistence writes on read-heavy paths.
func (s *Session) Touch(touchInterval time.Duration) {
	if time.Since(s.LastActivity) >= touchInterval {
		s.LastActivity = time.Now()
		s.isModified = true
	}
}

// ApplyUserUpdate merges a partial update into the session user.
// Only non-nil fields change; ID and Role are preserved.
func (s *Session) ApplyUserUpdate(upd UserUpdate) {
	if upd.Username != nil {
		s.User.Username = *upd.Username
	}
	if upd.Email != nil {
		s.User.Email = *upd.Email
	}
	if upd.Permissions != nil {
		s.User.Permissions = append([]string(nil), (*upd.Permissions)...)
	}
	s.LastActivity = time.Now()
	s.isModified = true
}

// markSaved resets the dirty flag after a successful persist.
func (s *Session) markSaved() {
	s.isModified = false
}

// generateToken creates a cryptographically secure random token using
// 32 bytes encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
