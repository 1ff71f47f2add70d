package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("catalog: product not found")
	ErrVendorNotFound    = errors.New("catalog: vendor not found")
	ErrDuplicateSKU      = errors.New("catalog: duplicate SKU")
	ErrInvalidProduct    = errors.New("catalog: invalid product")
	ErrInvalidVendor     = errors.New("catalog: invalid vendor")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
)

// Product is a single sellable item. Money is integer cents.
type Product struct {
	ID          uuid.UUID `json:"id"`
	SKU         string    `json:"sku"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	VendorID    uuid.UUID `json:"vendorId"`
	CostCents   int64     `json:"costCents"`
	PriceCents  int64     `json:"priceCents"`
	Stock       int       `json:"stock"`
	ImageKeys   []string  `json:"imageKeys,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks the fields every stored product must carry.
func (p Product) Validate() error {
	switch {
	case p.ID == uuid.Nil:
		return errors.Join(ErrInvalidProduct, errors.New("missing id"))
	case p.SKU == "":
		return errors.Join(ErrInvalidProduct, errors.New("missing sku"))
	case p.Name == "":
		return errors.Join(ErrInvalidProduct, errors.New("missing name"))
	case p.PriceCents < 0:
		return errors.Join(ErrInvalidProduct, errors.New("negative price"))
	case p.CostCents < 0:
		return errors.Join(ErrInvalidProduct, errors.New("negative cost"))
	case p.Stock < 0:
		return errors.Join(ErrInvalidProduct, errors.New("negative stock"))
	}
	return nil
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Vendor is a supplier whose products appear in the catalog.
type Vendor struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Rating    float64   `json:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the fields every stored vendor must carry.
func (v Vendor) Validate() error {
	switch {
	case v.ID == uuid.Nil:
		return errors.Join(ErrInvalidVendor, errors.New("missing id"))
	case v.Name == "":
		return errors.Join(ErrInvalidVendor, errors.New("missing name"))
	}
	return nil
}

// Filter narrows product listings. Zero values mean "no constraint".
type Filter struct {
	Category string
	Query    string // case-insensitive substring over name and description
	VendorID uuid.UUID
	MinPrice int64 // cents, inclusive
	MaxPrice int64 // cents, inclusive; zero disables the upper bound
	InStock  bool
}
