package event

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope wrapped around every published payload.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates an Event with a generated ID and timestamp.
// The name is derived from the payload type, e.g. SessionCreated{} -> "SessionCreated".
func NewEvent(payload any) Event {
	return Event{
		ID:        uuid.New().String(),
		Name:      eventName(payload),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

// eventName extracts the bare type name of a payload, unwrapping pointers.
// Payload types must therefore be uniquely named across the application.
func eventName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
