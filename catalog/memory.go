package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryOption configures the in-memory stores.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	latency time.Duration
}

// WithLatency makes every store call sleep for d before answering,
// imitating a remote API in demo environments. The delay respects context
// cancellation.
func WithLatency(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.latency = d }
}

func (c memoryConfig) delay(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.latency):
		return nil
	}
}

// MemoryProductStore is a ProductStore over a mutex-guarded map, suitable
// for demos and tests.
type MemoryProductStore struct {
	cfg memoryConfig

	mu       sync.RWMutex
	products map[uuid.UUID]Product
}

// NewMemoryProductStore creates an empty in-memory product store.
func NewMemoryProductStore(opts ...MemoryOption) *MemoryProductStore {
	var cfg memoryConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MemoryProductStore{
		cfg:      cfg,
		products: make(map[uuid.UUID]Product),
	}
}

// Seed loads products, replacing any existing entries with the same ID.
func (s *MemoryProductStore) Seed(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.ID] = p
	}
}

// List implements ProductStore. Results are ordered by name for stable
// pagination.
func (s *MemoryProductStore) List(ctx context.Context, filter Filter) ([]Product, error) {
	if err := s.cfg.delay(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Product
	for _, p := range s.products {
		if matches(p, filter) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func matches(p Product, f Filter) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.VendorID != uuid.Nil && p.VendorID != f.VendorID {
		return false
	}
	if f.MinPrice > 0 && p.PriceCents < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.PriceCents > f.MaxPrice {
		return false
	}
	if f.InStock && !p.InStock() {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

// Get implements ProductStore.
func (s *MemoryProductStore) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	if err := s.cfg.delay(ctx); err != nil {
		return Product{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

// GetBySlug implements ProductStore.
func (s *MemoryProductStore) GetBySlug(ctx context.Context, slug string) (Product, error) {
	if err := s.cfg.delay(ctx); err != nil {
		return Product{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Create implements ProductStore.
func (s *MemoryProductStore) Create(ctx context.Context, product Product) error {
	if err := s.cfg.delay(ctx); err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.SKU == product.SKU && existing.ID != product.ID {
			return ErrDuplicateSKU
		}
	}
	s.products[product.ID] = product
	return nil
}

// Update implements ProductStore.
func (s *MemoryProductStore) Update(ctx context.Context, product Product) error {
	if err := s.cfg.delay(ctx); err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return ErrProductNotFound
	}
	s.products[product.ID] = product
	return nil
}

// Delete implements ProductStore.
func (s *MemoryProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cfg.delay(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

// MemoryVendorStore is a VendorStore over a mutex-guarded map.
type MemoryVendorStore struct {
	cfg memoryConfig

	mu      sync.RWMutex
	vendors map[uuid.UUID]Vendor
}

// NewMemoryVendorStore creates an empty in-memory vendor store.
func NewMemoryVendorStore(opts ...MemoryOption) *MemoryVendorStore {
	var cfg memoryConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MemoryVendorStore{
		cfg:     cfg,
		vendors: make(map[uuid.UUID]Vendor),
	}
}

// Seed loads vendors, replacing existing entries with the same ID.
func (s *MemoryVendorStore) Seed(vendors []Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vendors {
		s.vendors[v.ID] = v
	}
}

// List implements VendorStore, ordered by name.
func (s *MemoryVendorStore) List(ctx context.Context) ([]Vendor, error) {
	if err := s.cfg.delay(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get implements VendorStore.
func (s *MemoryVendorStore) Get(ctx context.Context, id uuid.UUID) (Vendor, error) {
	if err := s.cfg.delay(ctx); err != nil {
		return Vendor{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vendors[id]
	if !ok {
		return Vendor{}, ErrVendorNotFound
	}
	return v, nil
}

// Create implements VendorStore.
func (s *MemoryVendorStore) Create(ctx context.Context, vendor Vendor) error {
	if err := s.cfg.delay(ctx); err != nil {
		return err
	}
	if err := vendor.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.vendors[vendor.ID] = vendor
	return nil
}
