// Package order handles carts, checkout, and order tracking.
//
// Carts are keyed by session ID and snapshot product names and prices at
// the moment items are added. Checkout reserves stock through the catalog
// service, authorizes payment through a pluggable processor, assigns a
// sequential order number, and publishes OrderPlaced. Receipt QR codes
// encoding the tracking URL are rendered asynchronously so the customer's
// confirmation never waits on image generation.
//
// Order status follows a fixed machine:
//
//	pending -> confirmed -> packed -> shipped -> delivered
//
// Cancellation is allowed at any point before shipment. Invalid
// transitions are rejected with ErrInvalidTransition, and every accepted
// transition publishes OrderStatusChanged.
package order
