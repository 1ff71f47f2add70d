package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductStore persists products. Implementations return
// ErrProductNotFound for missing items and ErrDuplicateSKU when a create
// collides on SKU.
type ProductStore interface {
	List(ctx context.Context, filter Filter) ([]Product, error)
	Get(ctx context.Context, id uuid.UUID) (Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	Create(ctx context.Context, product Product) error
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VendorStore persists vendors.
type VendorStore interface {
	List(ctx context.Context) ([]Vendor, error)
	Get(ctx context.Context, id uuid.UUID) (Vendor, error)
	Create(ctx context.Context, vendor Vendor) error
}
