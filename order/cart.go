package order

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errors.New("order: cart is empty")
	ErrItemNotInCart   = errors.New("order: item not in cart")
	ErrInvalidQuantity = errors.New("order: invalid quantity")
)

// CartItem is a product snapshot inside a cart. Name and price are copied
// when the item is added so later catalog edits do not silently change a
// cart the customer already reviewed.
type CartItem struct {
	ProductID      uuid.UUID `json:"productId"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
}

// SubtotalCents returns the line total.
func (i CartItem) SubtotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// Cart is the per-session shopping cart.
type Cart struct {
	SessionID uuid.UUID  `json:"sessionId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TotalCents sums all line totals.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.SubtotalCents()
	}
	return total
}

// TotalItems counts units across all lines.
func (c Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart holds no items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// carts holds live carts keyed by session ID. Carts are ephemeral by
// design: they live as long as the process, like the session they belong
// to outlives them in persistent storage.
type carts struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Cart
}

func newCarts() *carts {
	return &carts{items: make(map[uuid.UUID]Cart)}
}

func (c *carts) get(sessionID uuid.UUID) Cart {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cart, ok := c.items[sessionID]
	if !ok {
		return Cart{SessionID: sessionID}
	}
	cart.Items = append([]CartItem(nil), cart.Items...)
	return cart
}

// upsertItem adds quantity to an existing line or appends a new one.
func (c *carts) upsertItem(sessionID uuid.UUID, item CartItem) Cart {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart, ok := c.items[sessionID]
	if !ok {
		cart = Cart{SessionID: sessionID}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			cart.Items[i].UnitPriceCents = item.UnitPriceCents
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, item)
	}

	cart.UpdatedAt = time.Now().UTC()
	c.items[sessionID] = cart
	return c.copyOf(cart)
}

// setQuantity replaces a line's quantity; zero removes the line.
func (c *carts) setQuantity(sessionID, productID uuid.UUID, quantity int) (Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart, ok := c.items[sessionID]
	if !ok {
		return Cart{}, ErrItemNotInCart
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID != productID {
			continue
		}
		if quantity == 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}
		cart.UpdatedAt = time.Now().UTC()
		c.items[sessionID] = cart
		return c.copyOf(cart), nil
	}
	return Cart{}, ErrItemNotInCart
}

func (c *carts) clear(sessionID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, sessionID)
}

// copyOf must be called with the lock held.
func (c *carts) copyOf(cart Cart) Cart {
	cart.Items = append([]CartItem(nil), cart.Items...)
	return cart
}
