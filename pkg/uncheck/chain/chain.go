package chain

import (
	"context"

	"github.com/ib-77/unexceptional/pkg/uncheck"
)

type Chain[T any] struct {
	ctx context.Context
	res uncheck.Result[T]
}

func Start[T any](ctx context.Context, r uncheck.Result[T]) Chain[T] {
	return Chain[T]{ctx: ctx, res: r}
}

func FromValue[T any](ctx context.Context, v T) Chain[T] {
	return Start(ctx, uncheck.Success(v))
}

// From starts a chain with the outcome of fn.
func From[T any](ctx context.Context, fn uncheck.Supplier[T]) Chain[T] {
	if err := ctx.Err(); err != nil {
		return Start(ctx, uncheck.Fail[T](uncheck.NewInterrupt(ctx, err)))
	}
	return Start(ctx, uncheck.Try(ctx, fn))
}

func (c Chain[T]) Result() uncheck.Result[T] {
	return c.res
}

// Then applies a checked step to the value.
func (c Chain[T]) Then(fn uncheck.Function[T, T]) Chain[T] {
	return Switch(c, fn)
}

// Map applies a transformation that cannot fail. A panic in fn still fails
// the chain.
func (c Chain[T]) Map(fn func(ctx context.Context, t T) T) Chain[T] {
	return Switch(c, func(ctx context.Context, t T) (T, error) {
		return fn(ctx, t), nil
	})
}

// Tee runs fn for its side effect. The value passes through unchanged unless
// fn fails.
func (c Chain[T]) Tee(fn uncheck.Consumer[T]) Chain[T] {
	return Switch(c, func(ctx context.Context, t T) (T, error) {
		return t, fn(ctx, t)
	})
}

// Validate fails the chain with errMsg when valid reports false.
func (c Chain[T]) Validate(valid uncheck.Predicate[T], errMsg string) Chain[T] {
	return Switch(c, func(ctx context.Context, t T) (T, error) {
		ok, err := valid(ctx, t)
		if err != nil {
			return t, err
		}
		if !ok {
			return t, uncheck.New(errMsg)
		}
		return t, nil
	})
}

// Or returns the first successful chain among c and alternative. When neither
// succeeded a cancelled chain is preferred over a failed one, then c.
func (c Chain[T]) Or(alternative Chain[T]) Chain[T] {
	return c.or(alternative)
}

func (c Chain[T]) or(chains ...Chain[T]) Chain[T] {
	candidates := make([]Chain[T], 0, len(chains)+1)
	candidates = append(candidates, c)
	candidates = append(candidates, chains...)

	var cancelled, failed *Chain[T]
	for i := range candidates {
		ch := &candidates[i]
		switch {
		case ch.res.IsSuccess():
			return *ch
		case ch.res.IsCancel():
			if cancelled == nil {
				cancelled = ch
			}
		case ch.res.IsFailure():
			if failed == nil {
				failed = ch
			}
		}
	}

	if cancelled != nil {
		return *cancelled
	}
	if failed != nil {
		return *failed
	}
	return c
}

// And returns the first chain that did not succeed, or required when both did.
func (c Chain[T]) And(required Chain[T]) Chain[T] {
	if !c.res.IsSuccess() {
		return c
	}
	return required
}

// Must returns the value or raises the failure through uncheck.Rethrow.
func (c Chain[T]) Must() T {
	return c.res.Must(c.ctx)
}

// Switch applies a checked step that changes the value type.
func Switch[T, U any](c Chain[T], fn uncheck.Function[T, U]) Chain[U] {
	if !c.res.IsSuccess() {
		return Chain[U]{ctx: c.ctx, res: carry[T, U](c.res)}
	}
	if err := c.ctx.Err(); err != nil {
		return Chain[U]{ctx: c.ctx, res: uncheck.Fail[U](uncheck.NewInterrupt(c.ctx, err))}
	}

	v := c.res.Result()
	return Chain[U]{ctx: c.ctx, res: uncheck.Try(c.ctx, func(ctx context.Context) (U, error) {
		return fn(ctx, v)
	})}
}

// Finally reduces the chain to a value. An empty chain is reported to
// onFailure with a nil error.
func Finally[T, U any](c Chain[T],
	onSuccess func(ctx context.Context, t T) U,
	onFailure func(ctx context.Context, err error) U,
	onCancel func(ctx context.Context, err error) U) U {

	switch {
	case c.res.IsSuccess():
		return onSuccess(c.ctx, c.res.Result())
	case c.res.IsCancel():
		return onCancel(c.ctx, c.res.Err())
	default:
		return onFailure(c.ctx, c.res.Err())
	}
}

func carry[T, U any](r uncheck.Result[T]) uncheck.Result[U] {
	if r.IsFailure() {
		return uncheck.Fail[U](r.Err())
	}
	return uncheck.Empty[U]()
}
