package fieldschema

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable matches failures caused by an unreachable store or
// classifier, via errors.Is.
var ErrUnavailable = errors.New("external check unavailable")

const (
	msgLookupUnavailable     = "Lookup unavailable."
	msgClassifierUnavailable = "Language identification unavailable."
)

type unavailableError struct {
	code  Code
	msg   string
	cause error
}

func (e *unavailableError) Error() string {
	return e.msg
}

func (e *unavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.cause}
}

func lookupUnavailable(cause error) error {
	return &unavailableError{code: CodeResourceUnavailable, msg: msgLookupUnavailable, cause: cause}
}

func classifierUnavailable(cause error) error {
	return &unavailableError{code: CodeClassifierUnavailable, msg: msgClassifierUnavailable, cause: cause}
}

// guarded runs fn under the evaluation's per-call timeout. A call that does
// not return before the deadline or cancellation is abandoned; its result is
// discarded when it eventually arrives. Panics become errors.
func guarded[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- result{err: fmt.Errorf("panic: %v", p)}
			}
		}()
		v, err := fn(ctx)
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

