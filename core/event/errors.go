package event

import "errors"

var (
	// ErrPayloadType is returned when a published payload does not match
	// the handler's expected type.
	ErrPayloadType = errors.New("unexpected event payload type")
	// ErrHandlerPanic wraps a panic recovered from an event handler.
	ErrHandlerPanic = errors.New("event handler panicked")
)
