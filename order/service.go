package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/freshmart/platform/catalog"
	"github.com/freshmart/platform/core/event"
	"github.com/freshmart/platform/core/logger"
	"github.com/freshmart/platform/core/storage"
	"github.com/freshmart/platform/pkg/async"
	"github.com/freshmart/platform/pkg/qrcode"
)

const (
	defaultTrackingBase = "https://freshmart.example/orders"
	receiptQRSize       = 256
)

// Service runs the cart and checkout flows on top of the catalog and an
// order store.
type Service struct {
	carts    *carts
	orders   Store
	catalog  *catalog.Service
	payments PaymentProcessor
	bus      *event.Bus
	log      *slog.Logger

	trackingBase string
	receipts     storage.Storage
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPaymentProcessor replaces the default approve-all processor.
func WithPaymentProcessor(p PaymentProcessor) ServiceOption {
	return func(s *Service) { s.payments = p }
}

// WithEventBus publishes order events to bus.
func WithEventBus(bus *event.Bus) ServiceOption {
	return func(s *Service) { s.bus = bus }
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// WithTrackingBaseURL sets the base URL encoded into receipt QR codes.
func WithTrackingBaseURL(base string) ServiceOption {
	return func(s *Service) { s.trackingBase = base }
}

// WithReceiptStorage enables asynchronous receipt QR rendering into the
// given blob storage after checkout.
func WithReceiptStorage(receipts storage.Storage) ServiceOption {
	return func(s *Service) { s.receipts = receipts }
}

// NewService creates an order service.
func NewService(orders Store, catalogSvc *catalog.Service, opts ...ServiceOption) *Service {
	s := &Service{
		carts:        newCarts(),
		orders:       orders,
		catalog:      catalogSvc,
		payments:     ApproveAllProcessor{},
		log:          slog.Default(),
		trackingBase: defaultTrackingBase,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCart returns the session's cart, which may be empty.
func (s *Service) GetCart(_ context.Context, sessionID uuid.UUID) Cart {
	return s.carts.get(sessionID)
}

// AddToCart snapshots the product into the session's cart. Quantity must
// be positive and available in stock.
func (s *Service) AddToCart(ctx context.Context, sessionID, productID uuid.UUID, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return Cart{}, err
	}

	inCart := 0
	for _, item := range s.carts.get(sessionID).Items {
		if item.ProductID == productID {
			inCart = item.Quantity
		}
	}
	if product.Stock < inCart+quantity {
		return Cart{}, fmt.Errorf("%w: %d available", catalog.ErrInsufficientStock, product.Stock)
	}

	return s.carts.upsertItem(sessionID, CartItem{
		ProductID:      productID,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		Quantity:       quantity,
	}), nil
}

// UpdateCartItem sets a line's quantity; zero removes the line.
func (s *Service) UpdateCartItem(ctx context.Context, sessionID, productID uuid.UUID, quantity int) (Cart, error) {
	if quantity < 0 {
		return Cart{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if quantity > 0 {
		product, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return Cart{}, err
		}
		if product.Stock < quantity {
			return Cart{}, fmt.Errorf("%w: %d available", catalog.ErrInsufficientStock, product.Stock)
		}
	}
	return s.carts.setQuantity(sessionID, productID, quantity)
}

// RemoveFromCart drops a line entirely.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID, productID uuid.UUID) (Cart, error) {
	return s.carts.setQuantity(sessionID, productID, 0)
}

// ClearCart drops the session's cart.
func (s *Service) ClearCart(_ context.Context, sessionID uuid.UUID) {
	s.carts.clear(sessionID)
}

// Checkout turns the session's cart into a paid order: stock is reserved,
// payment authorized, a sequential number assigned, and OrderPlaced
// published. On failure every reserved unit is returned to stock and the
// cart stays intact.
func (s *Service) Checkout(ctx context.Context, sessionID, userID uuid.UUID, paymentMethod string) (Order, error) {
	cart := s.carts.get(sessionID)
	if cart.IsEmpty() {
		return Order{}, ErrEmptyCart
	}

	var reserved []CartItem
	restock := func() {
		for _, item := range reserved {
			if _, err := s.catalog.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				s.log.ErrorContext(ctx, "failed to restock after aborted checkout",
					logger.ProductID(item.ProductID),
					logger.Error(err))
			}
		}
	}

	for _, item := range cart.Items {
		if _, err := s.catalog.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			restock()
			return Order{}, err
		}
		reserved = append(reserved, item)
	}

	seq, err := s.orders.NextNumber(ctx)
	if err != nil {
		restock()
		return Order{}, fmt.Errorf("order: assign number: %w", err)
	}

	now := time.Now().UTC()
	ord := Order{
		ID:         uuid.New(),
		Number:     FormatNumber(seq),
		SessionID:  sessionID,
		UserID:     userID,
		Items:      cart.Items,
		TotalCents: cart.TotalCents(),
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ref, err := s.payments.Authorize(ctx, ord.ID, ord.TotalCents, paymentMethod)
	if err != nil {
		restock()
		return Order{}, err
	}
	ord.PaymentRef = ref

	if err := s.orders.Create(ctx, ord); err != nil {
		restock()
		return Order{}, fmt.Errorf("order: store order: %w", err)
	}

	s.carts.clear(sessionID)
	s.publish(ctx, OrderPlaced{Order: ord})
	s.log.InfoContext(ctx, "order placed",
		logger.OrderID(ord.ID),
		logger.OrderNumber(ord.Number),
		logger.SessionID(sessionID),
		slog.Int64("total_cents", ord.TotalCents))

	if s.receipts != nil {
		async.Exec(context.WithoutCancel(ctx), ord, s.renderReceipt)
	}
	return ord, nil
}

// renderReceipt generates the tracking QR code and stores it under the
// order number.
func (s *Service) renderReceipt(ctx context.Context, ord Order) error {
	png, err := qrcode.Generate(s.TrackingURL(ord.Number), receiptQRSize)
	if err == nil {
		_, err = s.receipts.Put(ctx, ReceiptKey(ord.Number), png, "image/png")
	}
	if err != nil {
		s.log.ErrorContext(ctx, "failed to render receipt",
			logger.OrderNumber(ord.Number),
			logger.Error(err))
		return err
	}
	return nil
}

// ReceiptKey returns the blob key a receipt QR is stored under.
func ReceiptKey(number string) string {
	return fmt.Sprintf("receipts/%s.png", number)
}

// TrackingURL returns the customer-facing tracking link for an order
// number.
func (s *Service) TrackingURL(number string) string {
	return fmt.Sprintf("%s/%s", s.trackingBase, number)
}

// ReceiptQR renders the tracking QR code for an order on demand.
func (s *Service) ReceiptQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	ord, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return qrcode.Generate(s.TrackingURL(ord.Number), receiptQRSize)
}

// GetOrder fetches an order by ID.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return s.orders.Get(ctx, id)
}

// Track fetches an order by its customer-facing number.
func (s *Service) Track(ctx context.Context, number string) (Order, error) {
	return s.orders.GetByNumber(ctx, number)
}

// ListOrders returns the session's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, sessionID uuid.UUID) ([]Order, error) {
	return s.orders.ListBySession(ctx, sessionID)
}

// UpdateStatus advances an order through the fulfillment machine.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next Status) (Order, error) {
	ord, err := s.orders.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !ord.Status.CanTransitionTo(next) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ord.Status, next)
	}

	from := ord.Status
	ord.Status = next
	ord.UpdatedAt = time.Now().UTC()
	if err := s.orders.Update(ctx, ord); err != nil {
		return Order{}, err
	}

	s.publish(ctx, OrderStatusChanged{OrderID: ord.ID, Number: ord.Number, From: from, To: next})
	return ord, nil
}

// Cancel aborts an order before shipment and returns its units to stock.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (Order, error) {
	ord, err := s.UpdateStatus(ctx, id, StatusCancelled)
	if err != nil {
		return Order{}, err
	}

	for _, item := range ord.Items {
		if _, err := s.catalog.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil &&
			!errors.Is(err, catalog.ErrProductNotFound) {
			s.log.WarnContext(ctx, "failed to restock cancelled order item",
				logger.OrderID(ord.ID),
				logger.ProductID(item.ProductID),
				logger.Error(err))
		}
	}
	return ord, nil
}

func (s *Service) publish(ctx context.Context, payload any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, payload); err != nil {
		s.log.WarnContext(ctx, "failed to publish order event", logger.Error(err))
	}
}
