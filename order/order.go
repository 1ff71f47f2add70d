package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errors.New("order: not found")
	ErrInvalidTransition = errors.New("order: invalid status transition")
)

// Status is an order's position in the fulfillment pipeline.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPacked    Status = "packed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions maps each status to its allowed successors.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPacked, StatusCancelled},
	StatusPacked:    {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether moving to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions exist.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Order is a placed, paid-for cart snapshot.
type Order struct {
	ID         uuid.UUID  `json:"id"`
	Number     string     `json:"number"`
	SessionID  uuid.UUID  `json:"sessionId"`
	UserID     uuid.UUID  `json:"userId"`
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"totalCents"`
	Status     Status     `json:"status"`
	PaymentRef string     `json:"paymentRef"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// FormatNumber renders a sequence value as a customer-facing order
// number, e.g. 42 -> "FM-000042".
func FormatNumber(seq uint64) string {
	return fmt.Sprintf("FM-%06d", seq)
}
