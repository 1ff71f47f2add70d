package async

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTimeout   = errors.New("async: await timed out")
	ErrNoFutures = errors.New("async: no futures to wait on")
)

// Future is the handle to a running asynchronous function. Its result is
// a single error, available once the function returns.
type Future struct {
	err  error
	done chan struct{}
}

// Await blocks until the function completes and returns its error.
func (f *Future) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout blocks until completion or the timeout, whichever comes
// first. On timeout it returns ErrTimeout; the function keeps running.
func (f *Future) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-f.done:
		return f.err
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// IsComplete reports whether the function has finished, without blocking.
func (f *Future) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn in a goroutine with the given parameter and returns a
// Future for its error. A context cancelled before fn starts short-circuits
// to ctx.Err without invoking fn.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.err = fn(ctx, param)
	}()

	return f
}

// WaitAll awaits every future in order and returns the first error
// encountered, or nil when all succeed.
func WaitAll(futures ...*Future) error {
	for _, future := range futures {
		if err := future.Await(); err != nil {
			return err
		}
	}
	return nil
}

// WaitAny blocks until one future completes and returns its index and
// error. With no futures it returns -1 and ErrNoFutures.
func WaitAny(futures ...*Future) (int, error) {
	if len(futures) == 0 {
		return -1, ErrNoFutures
	}

	type result struct {
		index int
		err   error
	}
	done := make(chan result, 1)

	for i, future := range futures {
		go func(index int, f *Future) {
			err := f.Await()
			select {
			case done <- result{index, err}:
			default:
			}
		}(i, future)
	}

	res := <-done
	return res.index, res.err
}
