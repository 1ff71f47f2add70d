package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freshmart/platform/order"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from order.Status
		to   order.Status
		ok   bool
	}{
		{order.StatusPending, order.StatusConfirmed, true},
		{order.StatusPending, order.StatusCancelled, true},
		{order.StatusPending, order.StatusShipped, false},
		{order.StatusPending, order.StatusDelivered, false},
		{order.StatusConfirmed, order.StatusPacked, true},
		{order.StatusConfirmed, order.StatusCancelled, true},
		{order.StatusConfirmed, order.StatusDelivered, false},
		{order.StatusPacked, order.StatusShipped, true},
		{order.StatusPacked, order.StatusCancelled, true},
		{order.StatusShipped, order.StatusDelivered, true},
		{order.StatusShipped, order.StatusCancelled, false},
		{order.StatusDelivered, order.StatusPending, false},
		{order.StatusCancelled, order.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	t.Parallel()

	assert.True(t, order.StatusDelivered.Terminal())
	assert.True(t, order.StatusCancelled.Terminal())
	assert.False(t, order.StatusPending.Terminal())
	assert.False(t, order.StatusShipped.Terminal())
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "FM-000001", order.FormatNumber(1))
	assert.Equal(t, "FM-000042", order.FormatNumber(42))
	assert.Equal(t, "FM-1000000", order.FormatNumber(1_000_000))
}

func TestCart_Totals(t *testing.T) {
	t.Parallel()

	cart := order.Cart{
		Items: []order.CartItem{
			{Name: "Apples", UnitPriceCents: 399, Quantity: 2},
			{Name: "Milk", UnitPriceCents: 259, Quantity: 1},
		},
	}
	assert.Equal(t, int64(1057), cart.TotalCents())
	assert.Equal(t, 3, cart.TotalItems())
	assert.False(t, cart.IsEmpty())
	assert.True(t, order.Cart{}.IsEmpty())
}
