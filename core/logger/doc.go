// Package logger provides structured logging utilities built on Go's standard
// slog package, used across the FreshMart platform for session, catalog, and
// order instrumentation.
//
// # Basic Usage
//
// Create a logger with the factory function:
//
//	import "github.com/freshmart/platform/core/logger"
//
//	log := logger.New(
//		logger.WithJSONFormat(),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAppName("freshmart"),
//	)
//
//	log.Info("session created",
//		logger.Component("session"),
//		logger.SessionID(sess.ID),
//	)
//
// # Attribute Helpers
//
// Attribute helpers use the empty-Attr pattern for nil safety, so calls like
// log.Error("save failed", logger.Error(err)) never need explicit nil checks.
// Empty attributes are silently dropped by slog handlers.
package logger
