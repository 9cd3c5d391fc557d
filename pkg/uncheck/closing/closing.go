// Package closing runs checked operations against io.Closer resources and
// always releases the resource before returning.
//
// Rules shared by every entry point:
//   - a nil resource (including a typed nil pointer) skips both the operation and Close
//   - Close runs exactly once, after the operation, whatever its outcome
//   - an operation failure wins; a Close failure is attached to it as a suppressed record
//   - a Close failure alone is normalized and reported on its own
//   - a fatal operation failure is raised unchanged, with the Close failure attached
//
// The plain family (Apply, Accept, ...) raises failures through uncheck.Rethrow.
// The Try family reports them as values instead.
package closing

import (
	"context"
	"io"

	"github.com/ib-77/unexceptional/pkg/uncheck"
)

// Apply runs fn against c, closes c and returns fn's result. ok is false when
// c is nil and nothing ran.
func Apply[C io.Closer, R any](ctx context.Context, c C, fn uncheck.Function[C, R]) (r R, ok bool) {
	ok, err := run(ctx, c, func(c C) (err error) {
		r, err = fn(ctx, c)
		return err
	})
	uncheck.Rethrow(ctx, err)
	return r, ok
}

// ApplyBi is Apply with an extra argument passed through to fn.
func ApplyBi[C io.Closer, U, R any](ctx context.Context, c C, u U, fn uncheck.BiFunction[C, U, R]) (r R, ok bool) {
	ok, err := run(ctx, c, func(c C) (err error) {
		r, err = fn(ctx, c, u)
		return err
	})
	uncheck.Rethrow(ctx, err)
	return r, ok
}

// CreateApply builds the resource with create(a) first. A create failure is
// raised at once; there is nothing to close yet.
func CreateApply[A any, C io.Closer, R any](ctx context.Context, create uncheck.Function[A, C], a A, fn uncheck.Function[C, R]) (R, bool) {
	return Apply(ctx, uncheck.Apply(ctx, create, a), fn)
}

func Accept[C io.Closer](ctx context.Context, c C, fn uncheck.Consumer[C]) {
	_, err := run(ctx, c, func(c C) error { return fn(ctx, c) })
	uncheck.Rethrow(ctx, err)
}

func AcceptBi[C io.Closer, U any](ctx context.Context, c C, u U, fn uncheck.BiConsumer[C, U]) {
	_, err := run(ctx, c, func(c C) error { return fn(ctx, c, u) })
	uncheck.Rethrow(ctx, err)
}

func CreateAccept[A any, C io.Closer](ctx context.Context, create uncheck.Function[A, C], a A, fn uncheck.Consumer[C]) {
	Accept(ctx, uncheck.Apply(ctx, create, a), fn)
}

func CreateAcceptBi[A any, C io.Closer, U any](ctx context.Context, create uncheck.Function[A, C], a A, u U, fn uncheck.BiConsumer[C, U]) {
	AcceptBi(ctx, uncheck.Apply(ctx, create, a), u, fn)
}

// TryApply is Apply reporting its outcome as a Result: empty when c is nil,
// failed with the normalized failure otherwise. Fatal failures still panic.
func TryApply[C io.Closer, R any](ctx context.Context, c C, fn uncheck.Function[C, R]) uncheck.Result[R] {
	var r R
	ok, err := run(ctx, c, func(c C) (err error) {
		r, err = fn(ctx, c)
		return err
	})
	return result(r, ok, err)
}

func TryApplyBi[C io.Closer, U, R any](ctx context.Context, c C, u U, fn uncheck.BiFunction[C, U, R]) uncheck.Result[R] {
	var r R
	ok, err := run(ctx, c, func(c C) (err error) {
		r, err = fn(ctx, c, u)
		return err
	})
	return result(r, ok, err)
}

// TryAccept is Accept returning the normalized failure instead of raising it.
func TryAccept[C io.Closer](ctx context.Context, c C, fn uncheck.Consumer[C]) error {
	_, err := run(ctx, c, func(c C) error { return fn(ctx, c) })
	return err
}

func TryAcceptBi[C io.Closer, U any](ctx context.Context, c C, u U, fn uncheck.BiConsumer[C, U]) error {
	_, err := run(ctx, c, func(c C) error { return fn(ctx, c, u) })
	return err
}

func result[R any](r R, ok bool, err error) uncheck.Result[R] {
	switch {
	case err != nil:
		return uncheck.Fail[R](err)
	case !ok:
		return uncheck.Empty[R]()
	}
	return uncheck.Success(r)
}

// run is the primitive behind every entry point. It reports whether c was
// present and returns the normalized failure, if any.
func run[C io.Closer](ctx context.Context, c C, op func(C) error) (bool, error) {
	if uncheck.IsNil(c) {
		return false, nil
	}

	var opErr error
	if raised := uncheck.Catch(func() { opErr = op(c) }); raised != nil {
		opErr = raised
	}

	var closeErr error
	if raised := uncheck.Catch(func() { closeErr = c.Close() }); raised != nil {
		closeErr = raised
	}

	if opErr == nil {
		return true, uncheck.Uncheck(ctx, closeErr)
	}

	uncheck.InterruptIf(ctx, closeErr)
	if uncheck.IsFatal(opErr) {
		panic(uncheck.Suppress(opErr, closeErr))
	}
	return true, uncheck.Suppress(uncheck.Uncheck(ctx, opErr), closeErr)
}
