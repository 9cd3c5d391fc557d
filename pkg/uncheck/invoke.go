package uncheck

import (
	"context"
	"iter"
)

// Run executes fn, raising its failure through Rethrow.
func Run(ctx context.Context, fn Runnable) {
	Rethrow(ctx, fn(ctx))
}

func Get[T any](ctx context.Context, fn Supplier[T]) T {
	v, err := fn(ctx)
	Rethrow(ctx, err)
	return v
}

// Call executes a context-free callable such as a closure over a stdlib call:
//
//	f := uncheck.Call(ctx, func() (*os.File, error) { return os.Open(name) })
func Call[T any](ctx context.Context, fn func() (T, error)) T {
	v, err := fn()
	Rethrow(ctx, err)
	return v
}

func Apply[T, R any](ctx context.Context, fn Function[T, R], t T) R {
	r, err := fn(ctx, t)
	Rethrow(ctx, err)
	return r
}

func ApplyBi[T, U, R any](ctx context.Context, fn BiFunction[T, U, R], t T, u U) R {
	r, err := fn(ctx, t, u)
	Rethrow(ctx, err)
	return r
}

func Operate[T any](ctx context.Context, op BinaryOperator[T], a, b T) T {
	r, err := op(ctx, a, b)
	Rethrow(ctx, err)
	return r
}

func Accept[T any](ctx context.Context, fn Consumer[T], t T) {
	Rethrow(ctx, fn(ctx, t))
}

func AcceptBi[T, U any](ctx context.Context, fn BiConsumer[T, U], t T, u U) {
	Rethrow(ctx, fn(ctx, t, u))
}

func Test[T any](ctx context.Context, fn Predicate[T], t T) bool {
	ok, err := fn(ctx, t)
	Rethrow(ctx, err)
	return ok
}

func Compare[T any](ctx context.Context, fn Comparator[T], a, b T) int {
	res, err := fn(ctx, a, b)
	Rethrow(ctx, err)
	return res
}

// ForEach feeds every element of seq to fn, raising the first failure.
func ForEach[T any](ctx context.Context, seq iter.Seq[T], fn Consumer[T]) {
	for v := range seq {
		Accept(ctx, fn, v)
	}
}

// ForEachEntry feeds every entry of m to fn, raising the first failure.
func ForEachEntry[K comparable, V any](ctx context.Context, m map[K]V, fn BiConsumer[K, V]) {
	for k, v := range m {
		AcceptBi(ctx, fn, k, v)
	}
}

// The Uncheck* converters bind ctx and return the stdlib-shaped equivalent of
// a checked adapter, for use with packages such as slices, sort and iter.

func UncheckRunnable(ctx context.Context, fn Runnable) func() {
	return func() { Run(ctx, fn) }
}

func UncheckSupplier[T any](ctx context.Context, fn Supplier[T]) func() T {
	return func() T { return Get(ctx, fn) }
}

func UncheckFunction[T, R any](ctx context.Context, fn Function[T, R]) func(T) R {
	return func(t T) R { return Apply(ctx, fn, t) }
}

func UncheckBiFunction[T, U, R any](ctx context.Context, fn BiFunction[T, U, R]) func(T, U) R {
	return func(t T, u U) R { return ApplyBi(ctx, fn, t, u) }
}

func UncheckBinaryOperator[T any](ctx context.Context, op BinaryOperator[T]) func(T, T) T {
	return func(a, b T) T { return Operate(ctx, op, a, b) }
}

func UncheckConsumer[T any](ctx context.Context, fn Consumer[T]) func(T) {
	return func(t T) { Accept(ctx, fn, t) }
}

func UncheckBiConsumer[T, U any](ctx context.Context, fn BiConsumer[T, U]) func(T, U) {
	return func(t T, u U) { AcceptBi(ctx, fn, t, u) }
}

func UncheckPredicate[T any](ctx context.Context, fn Predicate[T]) func(T) bool {
	return func(t T) bool { return Test(ctx, fn, t) }
}

// UncheckComparator suits slices.SortFunc and friends.
func UncheckComparator[T any](ctx context.Context, fn Comparator[T]) func(a, b T) int {
	return func(a, b T) int { return Compare(ctx, fn, a, b) }
}

// Try runs fn and captures its outcome. Failures, returned or raised, are
// normalized by Uncheck; fatal failures still propagate as panics.
func Try[T any](ctx context.Context, fn Supplier[T]) Result[T] {
	var (
		v   T
		err error
	)
	if raised := Catch(func() { v, err = fn(ctx) }); raised != nil {
		err = raised
	}

	if err != nil {
		return Fail[T](Uncheck(ctx, err))
	}
	return Success(v)
}
