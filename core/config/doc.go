// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/freshmart/platform/core/config"
//
//	type SessionConfig struct {
//		TTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
//		GuestTTL time.Duration `env:"SESSION_GUEST_TTL" envDefault:"24h"`
//		FilePath string        `env:"SESSION_FILE" envDefault:"freshmart_session.json"`
//	}
//
//	func main() {
//		var cfg SessionConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime.
// Different struct types are cached independently, so service-specific
// configs never collide.
package config
