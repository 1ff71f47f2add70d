package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrPaymentDeclined is returned by processors that refuse an
// authorization.
var ErrPaymentDeclined = errors.New("order: payment declined")

// PaymentProcessor authorizes a charge for an order. The method string is
// opaque to this package; real processors interpret it, the mock ignores
// it.
type PaymentProcessor interface {
	Authorize(ctx context.Context, orderID uuid.UUID, amountCents int64, method string) (ref string, err error)
}

// ApproveAllProcessor authorizes every charge with a generated reference.
// It is the default processor for demo environments; nothing is ever
// actually charged.
type ApproveAllProcessor struct{}

// Authorize implements PaymentProcessor.
func (ApproveAllProcessor) Authorize(_ context.Context, orderID uuid.UUID, _ int64, _ string) (string, error) {
	return fmt.Sprintf("PAY-%s-%s", orderID.String()[:8], uuid.NewString()[:8]), nil
}
