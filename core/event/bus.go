package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Bus routes published events to subscribed handlers synchronously.
// Subscribe and Publish are safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for its event name.
// Multiple handlers may subscribe to the same event; they run in
// registration order.
func (b *Bus) Subscribe(handlers ...Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, h := range handlers {
		b.handlers[h.EventName()] = append(b.handlers[h.EventName()], h)
	}
}

// Publish dispatches the payload to every handler subscribed to its type
// name, in the caller's goroutine. Handler errors and recovered panics are
// aggregated via errors.Join; a nil result means every handler succeeded.
// Publishing an event nobody listens to is not an error.
func (b *Bus) Publish(ctx context.Context, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	evt := NewEvent(payload)

	b.mu.RLock()
	handlers := b.handlers[evt.Name]
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := safeHandle(ctx, h, evt.Payload); err != nil {
			errs = append(errs, fmt.Errorf("handler for %q failed: %w", evt.Name, err))
		}
	}
	return errors.Join(errs...)
}

// safeHandle invokes a handler and converts panics into errors so one
// bad listener cannot take down the publisher.
func safeHandle(ctx context.Context, h Handler, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return h.Handle(ctx, payload)
}
