// Package session is the single source of truth for "who is the current
// actor". It consolidates session creation, expiry, guest fallback, and
// persistence behind one Manager with pluggable storage.
//
// # Core Components
//
//   - Session: the session record (identity, token, timestamps)
//   - User: the actor bound to a session, guest or authenticated
//   - Manager: coordinates lifecycle operations and guest fallback
//   - Store: persistence interface (file, Redis, Postgres, in-memory)
//
// # Basic Usage
//
//	import "github.com/freshmart/platform/core/session"
//
//	store := sessionstore.NewFileStore("freshmart_session.json")
//	manager := session.NewManager(store,
//		session.WithTTL(24*time.Hour),
//		session.WithEventBus(bus),
//	)
//
//	// Always returns a usable session: a fresh guest session is minted
//	// and persisted whenever the stored one is missing, malformed, or
//	// expired.
//	sess, err := manager.Current(ctx)
//
//	// Upgrade to an authenticated session after login.
//	sess, err = manager.Create(ctx, session.User{
//		ID:       userID,
//		Username: "alice",
//		Role:     session.RoleCustomer,
//	}, token)
//
//	// Logout.
//	err = manager.Clear(ctx)
//
// # Guest Fallback and Failure Semantics
//
// Storage failures are logged and never surfaced from Current: the manager
// degrades to an in-memory guest session so callers are never left without
// a session object. The token is opaque and never verified against a
// server; sessions here are presentation state, not an access-control
// boundary.
//
// # Expiry Policy
//
// A session with a missing, zero, or unparseable expiry is always treated
// as expired. Legacy persisted blobs encode timestamps either as RFC3339
// strings or as epoch milliseconds; both decode transparently, and
// serialization always writes the canonical form.
//
// # Events
//
// When constructed with an event bus, the manager publishes SessionCreated
// after a session (guest or authenticated) is minted and SessionCleared
// after an explicit logout.
//
// # Thread Safety
//
// Manager methods are safe for concurrent use. Concurrent Current calls on
// an empty store mint exactly one guest session.
package session
