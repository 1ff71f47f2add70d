package order_test

import (
	"bytes"
	"context"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/platform/catalog"
	"github.com/freshmart/platform/core/event"
	"github.com/freshmart/platform/core/storage"
	"github.com/freshmart/platform/order"
)

type env struct {
	orders  *order.Service
	catalog *catalog.Service
	store   *order.MemoryStore
}

func newEnv(t *testing.T, opts ...order.ServiceOption) *env {
	t.Helper()

	vendors, products, err := catalog.Fixtures()
	require.NoError(t, err)

	productStore := catalog.NewMemoryProductStore()
	productStore.Seed(products)
	vendorStore := catalog.NewMemoryVendorStore()
	vendorStore.Seed(vendors)

	catalogSvc := catalog.NewService(productStore, vendorStore)
	store := order.NewMemoryStore()
	return &env{
		orders:  order.NewService(store, catalogSvc, opts...),
		catalog: catalogSvc,
		store:   store,
	}
}

func (e *env) productBySlug(t *testing.T, slug string) catalog.Product {
	t.Helper()

	p, err := e.catalog.GetProductBySlug(context.Background(), slug)
	require.NoError(t, err)
	return p
}

// declineAll refuses every authorization.
type declineAll struct{}

func (declineAll) Authorize(context.Context, uuid.UUID, int64, string) (string, error) {
	return "", order.ErrPaymentDeclined
}

func TestService_Cart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("add snapshots name and price", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		sessionID := uuid.New()
		apples := e.productBySlug(t, "organic-gala-apples-1kg")

		cart, err := e.orders.AddToCart(ctx, sessionID, apples.ID, 2)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, apples.Name, cart.Items[0].Name)
		assert.Equal(t, apples.PriceCents, cart.Items[0].UnitPriceCents)
		assert.Equal(t, int64(798), cart.TotalCents())
	})

	t.Run("adding same product merges lines", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		sessionID := uuid.New()
		milk := e.productBySlug(t, "whole-milk-2l")

		_, err := e.orders.AddToCart(ctx, sessionID, milk.ID, 1)
		require.NoError(t, err)
		cart, err := e.orders.AddToCart(ctx, sessionID, milk.ID, 2)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Quantity)
	})

	t.Run("cannot add beyond stock", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		sessionID := uuid.New()
		sourdough := e.productBySlug(t, "sourdough-loaf") // stock 25

		_, err := e.orders.AddToCart(ctx, sessionID, sourdough.ID, 26)
		assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

		_, err = e.orders.AddToCart(ctx, sessionID, sourdough.ID, 20)
		require.NoError(t, err)
		_, err = e.orders.AddToCart(ctx, sessionID, sourdough.ID, 6)
		assert.ErrorIs(t, err, catalog.ErrInsufficientStock)
	})

	t.Run("out of stock product rejected", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		croissants := e.productBySlug(t, "butter-croissants-4pk") // stock 0

		_, err := e.orders.AddToCart(ctx, uuid.New(), croissants.ID, 1)
		assert.ErrorIs(t, err, catalog.ErrInsufficientStock)
	})

	t.Run("update and remove lines", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		sessionID := uuid.New()
		apples := e.productBySlug(t, "organic-gala-apples-1kg")
		milk := e.productBySlug(t, "whole-milk-2l")

		_, err := e.orders.AddToCart(ctx, sessionID, apples.ID, 2)
		require.NoError(t, err)
		_, err = e.orders.AddToCart(ctx, sessionID, milk.ID, 1)
		require.NoError(t, err)

		cart, err := e.orders.UpdateCartItem(ctx, sessionID, apples.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 6, cart.TotalItems())

		cart, err = e.orders.RemoveFromCart(ctx, sessionID, milk.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, apples.ID, cart.Items[0].ProductID)

		_, err = e.orders.UpdateCartItem(ctx, sessionID, milk.ID, 1)
		assert.ErrorIs(t, err, order.ErrItemNotInCart)
	})

	t.Run("invalid quantities", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		apples := e.productBySlug(t, "organic-gala-apples-1kg")

		_, err := e.orders.AddToCart(ctx, uuid.New(), apples.ID, 0)
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
		_, err = e.orders.UpdateCartItem(ctx, uuid.New(), apples.ID, -1)
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	})

	t.Run("clear empties the cart", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		sessionID := uuid.New()
		apples := e.productBySlug(t, "organic-gala-apples-1kg")

		_, err := e.orders.AddToCart(ctx, sessionID, apples.ID, 1)
		require.NoError(t, err)

		e.orders.ClearCart(ctx, sessionID)
		assert.True(t, e.orders.GetCart(ctx, sessionID).IsEmpty())
	})
}

func TestService_Checkout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		bus := event.NewBus()
		var mu sync.Mutex
		var placed []order.OrderPlaced
		bus.Subscribe(event.NewHandlerFunc(func(ctx context.Context, e order.OrderPlaced) error {
			mu.Lock()
			defer mu.Unlock()
			placed = append(placed, e)
			return nil
		}))

		e := newEnv(t, order.WithEventBus(bus))
		sessionID, userID := uuid.New(), uuid.New()
		apples := e.productBySlug(t, "organic-gala-apples-1kg")
		milk := e.productBySlug(t, "whole-milk-2l")

		_, err := e.orders.AddToCart(ctx, sessionID, apples.ID, 3)
		require.NoError(t, err)
		_, err = e.orders.AddToCart(ctx, sessionID, milk.ID, 2)
		require.NoError(t, err)

		ord, err := e.orders.Checkout(ctx, sessionID, userID, "card")
		require.NoError(t, err)

		assert.Equal(t, "FM-000001", ord.Number)
		assert.Equal(t, order.StatusPending, ord.Status)
		assert.Equal(t, int64(3*399+2*259), ord.TotalCents)
		assert.NotEmpty(t, ord.PaymentRef)
		assert.Equal(t, userID, ord.UserID)

		// cart is gone, stock is reserved
		assert.True(t, e.orders.GetCart(ctx, sessionID).IsEmpty())
		applesNow := e.productBySlug(t, "organic-gala-apples-1kg")
		assert.Equal(t, apples.Stock-3, applesNow.Stock)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, placed, 1)
		assert.Equal(t, ord.ID, placed[0].Order.ID)
	})

	t.Run("numbers are sequential", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		apples := e.productBySlug(t, "organic-gala-apples-1kg")

		for i := 1; i <= 3; i++ {
			sessionID := uuid.New()
			_, err := e.orders.AddToCart(ctx, sessionID, apples.ID, 1)
			require.NoError(t, err)
			ord, err := e.orders.Checkout(ctx, sessionID, uuid.New(), "card")
			require.NoError(t, err)
			assert.Equal(t, order.FormatNumber(uint64(i)), ord.Number)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		_, err := e.orders.Checkout(ctx, uuid.New(), uuid.New(), "card")
		assert.ErrorIs(t, err, order.ErrEmptyCart)
	})

	t.Run("declined payment restores stock and keeps cart", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t, order.WithPaymentProcessor(declineAll{}))
		sessionID := uuid.New()
		apples := e.productBySlug(t, "organic-gala-apples-1kg")

		_, err := e.orders.AddToCart(ctx, sessionID, apples.ID, 4)
		require.NoError(t, err)

		_, err = e.orders.Checkout(ctx, sessionID, uuid.New(), "card")
		assert.ErrorIs(t, err, order.ErrPaymentDeclined)

		applesNow := e.productBySlug(t, "organic-gala-apples-1kg")
		assert.Equal(t, apples.Stock, applesNow.Stock)
		assert.False(t, e.orders.GetCart(ctx, sessionID).IsEmpty())
	})

	t.Run("stock race mid-checkout restores reserved units", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		sessionID := uuid.New()
		apples := e.productBySlug(t, "organic-gala-apples-1kg")
		cheddar := e.productBySlug(t, "aged-cheddar-400g") // stock 40

		_, err := e.orders.AddToCart(ctx, sessionID, apples.ID, 2)
		require.NoError(t, err)
		_, err = e.orders.AddToCart(ctx, sessionID, cheddar.ID, 40)
		require.NoError(t, err)

		// someone else buys cheddar between add-to-cart and checkout
		_, err = e.catalog.AdjustStock(ctx, cheddar.ID, -5)
		require.NoError(t, err)

		_, err = e.orders.Checkout(ctx, sessionID, uuid.New(), "card")
		assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

		applesNow := e.productBySlug(t, "organic-gala-apples-1kg")
		assert.Equal(t, apples.Stock, applesNow.Stock)
	})
}

func checkoutOne(t *testing.T, e *env) order.Order {
	t.Helper()

	ctx := context.Background()
	sessionID := uuid.New()
	apples := e.productBySlug(t, "organic-gala-apples-1kg")

	_, err := e.orders.AddToCart(ctx, sessionID, apples.ID, 2)
	require.NoError(t, err)
	ord, err := e.orders.Checkout(ctx, sessionID, uuid.New(), "card")
	require.NoError(t, err)
	return ord
}

func TestService_StatusTransitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("full fulfillment path publishes each change", func(t *testing.T) {
		t.Parallel()

		bus := event.NewBus()
		var mu sync.Mutex
		var changes []order.OrderStatusChanged
		bus.Subscribe(event.NewHandlerFunc(func(ctx context.Context, e order.OrderStatusChanged) error {
			mu.Lock()
			defer mu.Unlock()
			changes = append(changes, e)
			return nil
		}))

		e := newEnv(t, order.WithEventBus(bus))
		ord := checkoutOne(t, e)

		for _, next := range []order.Status{
			order.StatusConfirmed, order.StatusPacked, order.StatusShipped, order.StatusDelivered,
		} {
			updated, err := e.orders.UpdateStatus(ctx, ord.ID, next)
			require.NoError(t, err)
			assert.Equal(t, next, updated.Status)
		}

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, changes, 4)
		assert.Equal(t, order.StatusPending, changes[0].From)
		assert.Equal(t, order.StatusDelivered, changes[3].To)
	})

	t.Run("skipping states rejected", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		ord := checkoutOne(t, e)

		_, err := e.orders.UpdateStatus(ctx, ord.ID, order.StatusShipped)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("cancel before shipment restocks", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		before := e.productBySlug(t, "organic-gala-apples-1kg").Stock
		ord := checkoutOne(t, e)

		_, err := e.orders.UpdateStatus(ctx, ord.ID, order.StatusConfirmed)
		require.NoError(t, err)

		cancelled, err := e.orders.Cancel(ctx, ord.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, cancelled.Status)
		assert.Equal(t, before, e.productBySlug(t, "organic-gala-apples-1kg").Stock)
	})

	t.Run("cancel after shipment rejected", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		ord := checkoutOne(t, e)

		for _, next := range []order.Status{order.StatusConfirmed, order.StatusPacked, order.StatusShipped} {
			_, err := e.orders.UpdateStatus(ctx, ord.ID, next)
			require.NoError(t, err)
		}

		_, err := e.orders.Cancel(ctx, ord.ID)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("unknown order", func(t *testing.T) {
		t.Parallel()

		e := newEnv(t)
		_, err := e.orders.UpdateStatus(ctx, uuid.New(), order.StatusConfirmed)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestService_Tracking(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := newEnv(t)
	ord := checkoutOne(t, e)

	t.Run("track by number", func(t *testing.T) {
		got, err := e.orders.Track(ctx, ord.Number)
		require.NoError(t, err)
		assert.Equal(t, ord.ID, got.ID)

		_, err = e.orders.Track(ctx, "FM-999999")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("list by session", func(t *testing.T) {
		orders, err := e.orders.ListOrders(ctx, ord.SessionID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, ord.Number, orders[0].Number)
	})

	t.Run("receipt QR decodes as PNG", func(t *testing.T) {
		data, err := e.orders.ReceiptQR(ctx, ord.ID)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
	})
}

func TestService_AsyncReceipts(t *testing.T) {
	t.Parallel()

	receipts := storage.NewMemoryStorage("")
	e := newEnv(t,
		order.WithReceiptStorage(receipts),
		order.WithTrackingBaseURL("https://shop.example/track"))

	ord := checkoutOne(t, e)

	assert.Eventually(t, func() bool {
		return receipts.Exists(context.Background(), order.ReceiptKey(ord.Number))
	}, 2*time.Second, 10*time.Millisecond)

	data, err := receipts.Get(context.Background(), order.ReceiptKey(ord.Number))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}
