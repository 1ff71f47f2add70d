package catalog

import "github.com/google/uuid"

// ProductCreated is published after a product is stored.
type ProductCreated struct {
	Product Product
}

// ProductPriceChanged is published after a margin-validated price update
// or discount is applied.
type ProductPriceChanged struct {
	ProductID uuid.UUID
	OldPrice  int64
	NewPrice  int64
}

// ProductImageAttached is published after an image passes quality checks
// and lands in blob storage.
type ProductImageAttached struct {
	ProductID uuid.UUID
	ImageKey  string
}
