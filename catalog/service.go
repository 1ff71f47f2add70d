package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/freshmart/platform/core/event"
	"github.com/freshmart/platform/core/logger"
	"github.com/freshmart/platform/core/storage"
	"github.com/freshmart/platform/pkg/imagecheck"
	"github.com/freshmart/platform/pkg/slug"
)

var (
	ErrNoImageStorage = errors.New("catalog: image storage not configured")
	ErrImageRejected  = errors.New("catalog: image rejected by quality checks")
)

const maxSlugLength = 64

// Service applies the storefront's business rules over product and vendor
// stores: margin-gated pricing, stock accounting, and quality-checked
// image attachment.
type Service struct {
	products ProductStore
	vendors  VendorStore
	images   storage.Storage
	bus      *event.Bus
	log      *slog.Logger
	rules    PricingRules
	imageTh  imagecheck.Thresholds
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithImageStorage enables image attachment backed by the given blob
// storage.
func WithImageStorage(images storage.Storage) ServiceOption {
	return func(s *Service) { s.images = images }
}

// WithEventBus publishes catalog events to bus.
func WithEventBus(bus *event.Bus) ServiceOption {
	return func(s *Service) { s.bus = bus }
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// WithPricingRules overrides the default pricing limits.
func WithPricingRules(rules PricingRules) ServiceOption {
	return func(s *Service) { s.rules = rules }
}

// WithImageThresholds overrides the default image quality limits.
func WithImageThresholds(th imagecheck.Thresholds) ServiceOption {
	return func(s *Service) { s.imageTh = th }
}

// NewService creates a catalog service over the given stores.
func NewService(products ProductStore, vendors VendorStore, opts ...ServiceOption) *Service {
	s := &Service{
		products: products,
		vendors:  vendors,
		log:      slog.Default(),
		rules:    DefaultPricingRules(),
		imageTh:  imagecheck.DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Browse lists products matching the filter.
func (s *Service) Browse(ctx context.Context, filter Filter) ([]Product, error) {
	return s.products.List(ctx, filter)
}

// GetProduct fetches a product by ID.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	return s.products.Get(ctx, id)
}

// GetProductBySlug fetches a product by its URL slug.
func (s *Service) GetProductBySlug(ctx context.Context, productSlug string) (Product, error) {
	return s.products.GetBySlug(ctx, productSlug)
}

// CreateProductInput carries the caller-supplied fields for a new product.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Category    string
	VendorID    uuid.UUID
	CostCents   int64
	PriceCents  int64
	Stock       int
}

// CreateProduct validates input against pricing rules, derives a URL slug
// from the name, and stores the product.
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (Product, error) {
	if _, err := s.vendors.Get(ctx, input.VendorID); err != nil {
		return Product{}, err
	}
	if err := s.rules.ValidatePrice(input.CostCents, input.PriceCents); err != nil {
		return Product{}, err
	}

	now := time.Now().UTC()
	product := Product{
		ID:          uuid.New(),
		SKU:         input.SKU,
		Slug:        slug.Make(input.Name, slug.MaxLength(maxSlugLength)),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		VendorID:    input.VendorID,
		CostCents:   input.CostCents,
		PriceCents:  input.PriceCents,
		Stock:       input.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return Product{}, err
	}

	s.publish(ctx, ProductCreated{Product: product})
	s.log.InfoContext(ctx, "product created",
		logger.ProductID(product.ID),
		slog.String("sku", product.SKU))
	return product, nil
}

// UpdatePrice changes a product's price after margin validation.
func (s *Service) UpdatePrice(ctx context.Context, id uuid.UUID, priceCents int64) (Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if err := s.rules.ValidatePrice(product.CostCents, priceCents); err != nil {
		return Product{}, err
	}

	oldPrice := product.PriceCents
	product.PriceCents = priceCents
	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, product); err != nil {
		return Product{}, err
	}

	s.publish(ctx, ProductPriceChanged{ProductID: id, OldPrice: oldPrice, NewPrice: priceCents})
	return product, nil
}

// ApplyDiscount reduces a product's price by a percentage. The discount
// must respect both the discount cap and the minimum margin.
func (s *Service) ApplyDiscount(ctx context.Context, id uuid.UUID, percent float64) (Product, error) {
	if err := s.rules.ValidateDiscount(percent); err != nil {
		return Product{}, err
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}

	discounted, err := ApplyPercentageDiscount(product.PriceCents, percent)
	if err != nil {
		return Product{}, err
	}
	return s.UpdatePrice(ctx, id, discounted)
}

// AdjustStock changes inventory by delta, which may be negative. The
// result must not go below zero.
func (s *Service) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if product.Stock+delta < 0 {
		return Product{}, fmt.Errorf("%w: have %d, requested %d", ErrInsufficientStock, product.Stock, -delta)
	}

	product.Stock += delta
	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, product); err != nil {
		return Product{}, err
	}
	return product, nil
}

// AttachImage quality-checks an uploaded photo, stores it under a
// content-addressed key, and records the key on the product. Returns the
// storage key.
func (s *Service) AttachImage(ctx context.Context, id uuid.UUID, data []byte) (string, error) {
	if s.images == nil {
		return "", ErrNoImageStorage
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return "", err
	}

	report, err := imagecheck.Analyze(data, s.imageTh)
	if err != nil {
		return "", err
	}
	if !report.OK() {
		return "", fmt.Errorf("%w: blurry=%t watermark=%t (sharpness %.0f, confidence %.0f)",
			ErrImageRejected, report.Blurry, report.WatermarkSuspected,
			report.Sharpness, report.WatermarkConfidence)
	}

	contentType := http.DetectContentType(data)
	sum := blake2b.Sum256(data)
	key := fmt.Sprintf("products/%s/%x%s", product.ID, sum[:8], extensionFor(contentType))

	if _, err := s.images.Put(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("catalog: store image: %w", err)
	}

	if !slices.Contains(product.ImageKeys, key) {
		product.ImageKeys = append(product.ImageKeys, key)
		product.UpdatedAt = time.Now().UTC()
		if err := s.products.Update(ctx, product); err != nil {
			return "", err
		}
	}

	s.publish(ctx, ProductImageAttached{ProductID: id, ImageKey: key})
	s.log.InfoContext(ctx, "product image attached",
		logger.ProductID(id),
		logger.StorageKey(key))
	return key, nil
}

// DeleteProduct removes a product and best-effort deletes its stored
// images.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if s.images != nil {
		for _, key := range product.ImageKeys {
			if err := s.images.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
				s.log.WarnContext(ctx, "failed to delete product image",
					logger.ProductID(id),
					logger.StorageKey(key),
					logger.Error(err))
			}
		}
	}
	return nil
}

// ListVendors returns all vendors.
func (s *Service) ListVendors(ctx context.Context) ([]Vendor, error) {
	return s.vendors.List(ctx)
}

// GetVendor fetches a vendor by ID.
func (s *Service) GetVendor(ctx context.Context, id uuid.UUID) (Vendor, error) {
	return s.vendors.Get(ctx, id)
}

// CreateVendor stores a new vendor with a slug derived from its name.
func (s *Service) CreateVendor(ctx context.Context, name, email string) (Vendor, error) {
	vendor := Vendor{
		ID:        uuid.New(),
		Slug:      slug.Make(name, slug.MaxLength(maxSlugLength)),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return Vendor{}, err
	}
	return vendor, nil
}

func (s *Service) publish(ctx context.Context, payload any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, payload); err != nil {
		s.log.WarnContext(ctx, "failed to publish catalog event", logger.Error(err))
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
