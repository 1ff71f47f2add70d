package session

import (
	"log/slog"
	"time"

	"github.com/freshmart/platform/core/event"
)

// Config holds session manager configuration.
type Config struct {
	// TTL is the lifetime of authenticated sessions.
	TTL time.Duration
	// GuestTTL is the lifetime of guest sessions. Must not exceed TTL.
	GuestTTL time.Duration
	// TouchInterval throttles LastActivity updates (0 disables touching).
	TouchInterval time.Duration
}

func defaultConfig() Config {
	return Config{
		TTL:           24 * time.Hour,
		GuestTTL:      24 * time.Hour,
		TouchInterval: 5 * time.Minute,
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithTTL sets the authenticated session time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.cfg.TTL = ttl
	}
}

// WithGuestTTL sets the guest session time-to-live. Guest sessions never
// outlive authenticated ones; larger values are clamped to the TTL.
func WithGuestTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.cfg.GuestTTL = ttl
	}
}

// WithTouchInterval sets the minimum time between activity updates.
// Prevents a persistence write on every read. Set to 0 to disable.
func WithTouchInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.cfg.TouchInterval = interval
	}
}

// WithEventBus wires lifecycle notifications (SessionCreated,
// SessionCleared) to the given bus.
func WithEventBus(bus *event.Bus) Option {
	return func(m *Manager) {
		m.bus = bus
	}
}

// WithLogger sets the logger used for swallowed storage failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}
