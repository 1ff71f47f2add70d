package order

import "github.com/google/uuid"

// OrderPlaced is published after checkout succeeds.
type OrderPlaced struct {
	Order Order
}

// OrderStatusChanged is published after every accepted status transition.
type OrderStatusChanged struct {
	OrderID uuid.UUID
	Number  string
	From    Status
	To      Status
}
