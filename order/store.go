package order

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Store persists orders. Implementations return ErrOrderNotFound for
// missing orders and hand out strictly increasing sequence values from
// NextNumber.
type Store interface {
	Create(ctx context.Context, order Order) error
	Get(ctx context.Context, id uuid.UUID) (Order, error)
	GetByNumber(ctx context.Context, number string) (Order, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Order, error)
	Update(ctx context.Context, order Order) error
	NextNumber(ctx context.Context) (uint64, error)
}

// MemoryStore is a Store over mutex-guarded maps, suitable for demos and
// tests.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]Order
	seq    uint64
}

// NewMemoryStore creates an empty in-memory order store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[uuid.UUID]Order)}
}

// Create implements Store.
func (s *MemoryStore) Create(ctx context.Context, order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return order, nil
}

// GetByNumber implements Store.
func (s *MemoryStore) GetByNumber(ctx context.Context, number string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.Number == number {
			return order, nil
		}
	}
	return Order{}, ErrOrderNotFound
}

// ListBySession implements Store, newest first.
func (s *MemoryStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Order
	for _, order := range s.orders {
		if order.SessionID == sessionID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update implements Store.
func (s *MemoryStore) Update(ctx context.Context, order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; !ok {
		return ErrOrderNotFound
	}
	s.orders[order.ID] = order
	return nil
}

// NextNumber implements Store.
func (s *MemoryStore) NextNumber(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq, nil
}
