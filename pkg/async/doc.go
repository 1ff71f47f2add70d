// Package async runs fire-and-forget work with awaitable error results.
//
// The storefront uses it for post-checkout side effects that must not
// block the customer's confirmation, such as rendering the receipt QR
// code and publishing notifications. Each Exec call returns a future the
// caller can await, poll, or abandon.
//
//	future := async.Exec(ctx, order, func(ctx context.Context, o order.Order) error {
//		return receipts.Render(ctx, o)
//	})
//
//	// later, optionally:
//	if err := future.AwaitWithTimeout(5 * time.Second); err != nil {
//		if errors.Is(err, async.ErrTimeout) {
//			// still running; receipt will land eventually
//		}
//	}
//
// WaitAll gathers several futures, WaitAny returns as soon as one
// completes.
package async
