// Package event provides a minimal in-process event bus for lifecycle
// notifications such as session creation, session teardown, and order
// status changes.
//
// Events are dispatched synchronously in the publisher's goroutine. Handler
// panics are recovered and converted to errors, and all handler errors are
// aggregated with errors.Join so one misbehaving listener never prevents the
// others from running.
//
// Basic usage:
//
//	import "github.com/freshmart/platform/core/event"
//
//	type SessionCreated struct {
//		SessionID uuid.UUID
//	}
//
//	bus := event.NewBus()
//	bus.Subscribe(event.NewHandlerFunc(func(ctx context.Context, evt SessionCreated) error {
//		return audit.Record(ctx, evt.SessionID)
//	}))
//
//	// Event name is derived from the payload type: "SessionCreated".
//	err := bus.Publish(ctx, SessionCreated{SessionID: id})
package event
