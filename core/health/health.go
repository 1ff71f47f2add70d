// Package health aggregates dependency probes into liveness and readiness
// checks.
//
// Integrations expose probes as plain functions (pg.Healthcheck,
// redis.Healthcheck, mongo.Healthcheck); this package combines them so an
// operator-facing surface can ask one question:
//
//	ready := health.Readiness(log,
//		health.Named("postgres", pg.Healthcheck(pool)),
//		health.Named("redis", redis.Healthcheck(client)),
//	)
//	if err := ready(ctx); err != nil {
//		// report unavailable
//	}
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/freshmart/platform/core/logger"
)

// Check probes one dependency.
type Check func(context.Context) error

// Named wraps a check so failures identify the dependency.
func Named(name string, check Check) Check {
	return func(ctx context.Context) error {
		if err := check(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
}

// Liveness always succeeds: the process answering is the signal.
func Liveness(context.Context) error {
	return nil
}

// Readiness combines checks into one probe that runs them all and joins
// their failures. Each failure is logged; a nil logger disables logging.
func Readiness(log *slog.Logger, checks ...Check) Check {
	return func(ctx context.Context) error {
		var errs []error
		for _, check := range checks {
			if err := check(ctx); err != nil {
				if log != nil {
					log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				}
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
