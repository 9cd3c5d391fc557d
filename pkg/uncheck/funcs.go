package uncheck

import (
	"cmp"
	"context"
)

// Checked adapters. Each declares its failure as a trailing error and takes
// the context first, like every step in this module.

type Runnable func(ctx context.Context) error

type Supplier[T any] func(ctx context.Context) (T, error)

type Function[T, R any] func(ctx context.Context, t T) (R, error)

type BiFunction[T, U, R any] func(ctx context.Context, t T, u U) (R, error)

type BinaryOperator[T any] func(ctx context.Context, a, b T) (T, error)

type Consumer[T any] func(ctx context.Context, t T) error

type BiConsumer[T, U any] func(ctx context.Context, t T, u U) error

type Predicate[T any] func(ctx context.Context, t T) (bool, error)

type Comparator[T any] func(ctx context.Context, a, b T) (int, error)

// AndThen runs r, then after. The first failure stops the sequence and is
// returned unchanged.
func (r Runnable) AndThen(after Runnable) Runnable {
	return func(ctx context.Context) error {
		if err := r(ctx); err != nil {
			return err
		}
		return after(ctx)
	}
}

// AndThen feeds t to c, then to after, stopping at the first failure.
func (c Consumer[T]) AndThen(after Consumer[T]) Consumer[T] {
	return func(ctx context.Context, t T) error {
		if err := c(ctx, t); err != nil {
			return err
		}
		return after(ctx, t)
	}
}

func (c BiConsumer[T, U]) AndThen(after BiConsumer[T, U]) BiConsumer[T, U] {
	return func(ctx context.Context, t T, u U) error {
		if err := c(ctx, t, u); err != nil {
			return err
		}
		return after(ctx, t, u)
	}
}

// Identity returns a function that returns its argument.
func Identity[T any]() Function[T, T] {
	return func(_ context.Context, t T) (T, error) { return t, nil }
}

// Compose returns a function applying f, then g to the result.
func Compose[T, U, R any](f Function[T, U], g Function[U, R]) Function[T, R] {
	return func(ctx context.Context, t T) (R, error) {
		u, err := f(ctx, t)
		if err != nil {
			var zero R
			return zero, err
		}
		return g(ctx, u)
	}
}

// ThenApply returns a bi-function applying f, then after to the result.
func ThenApply[T, U, R, V any](f BiFunction[T, U, R], after Function[R, V]) BiFunction[T, U, V] {
	return func(ctx context.Context, t T, u U) (V, error) {
		r, err := f(ctx, t, u)
		if err != nil {
			var zero V
			return zero, err
		}
		return after(ctx, r)
	}
}

// And short-circuits: other is not evaluated when p is false or fails.
func (p Predicate[T]) And(other Predicate[T]) Predicate[T] {
	return func(ctx context.Context, t T) (bool, error) {
		ok, err := p(ctx, t)
		if err != nil || !ok {
			return false, err
		}
		return other(ctx, t)
	}
}

// Or short-circuits: other is not evaluated when p is true or fails.
func (p Predicate[T]) Or(other Predicate[T]) Predicate[T] {
	return func(ctx context.Context, t T) (bool, error) {
		ok, err := p(ctx, t)
		if err != nil || ok {
			return ok, err
		}
		return other(ctx, t)
	}
}

func (p Predicate[T]) Negate() Predicate[T] {
	return func(ctx context.Context, t T) (bool, error) {
		ok, err := p(ctx, t)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}

func (c Comparator[T]) Reversed() Comparator[T] {
	return func(ctx context.Context, a, b T) (int, error) {
		return c(ctx, b, a)
	}
}

// ThenComparing consults other only when c reports equality.
func (c Comparator[T]) ThenComparing(other Comparator[T]) Comparator[T] {
	return func(ctx context.Context, a, b T) (int, error) {
		res, err := c(ctx, a, b)
		if err != nil || res != 0 {
			return res, err
		}
		return other(ctx, a, b)
	}
}

// Comparing orders values by the key extracted from each.
func Comparing[T, K any](key Function[T, K], keyCmp Comparator[K]) Comparator[T] {
	return func(ctx context.Context, a, b T) (int, error) {
		ka, err := key(ctx, a)
		if err != nil {
			return 0, err
		}
		kb, err := key(ctx, b)
		if err != nil {
			return 0, err
		}
		return keyCmp(ctx, ka, kb)
	}
}

// ComparingOrdered orders values by a naturally ordered key.
func ComparingOrdered[T any, K cmp.Ordered](key Function[T, K]) Comparator[T] {
	return Comparing(key, func(_ context.Context, a, b K) (int, error) {
		return cmp.Compare(a, b), nil
	})
}

// MinBy returns the lesser of two values; b on ties.
func MinBy[T any](c Comparator[T]) BinaryOperator[T] {
	return func(ctx context.Context, a, b T) (T, error) {
		res, err := c(ctx, a, b)
		if err != nil {
			var zero T
			return zero, err
		}
		if res < 0 {
			return a, nil
		}
		return b, nil
	}
}

// MaxBy returns the greater of two values; b on ties.
func MaxBy[T any](c Comparator[T]) BinaryOperator[T] {
	return func(ctx context.Context, a, b T) (T, error) {
		res, err := c(ctx, a, b)
		if err != nil {
			var zero T
			return zero, err
		}
		if res > 0 {
			return a, nil
		}
		return b, nil
	}
}
