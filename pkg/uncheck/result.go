package uncheck

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Result is the captured outcome of a checked operation: a value, a
// normalized failure, or nothing at all (an operation that never ran).
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	hasResult bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		hasResult: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Empty is the outcome of an operation that was skipped, for example because
// its resource was absent.
func Empty[T any]() Result[T] {
	return Result[T]{
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// IsCancel reports a failure caused by a cancellation signal.
func (r Result[T]) IsCancel() bool {
	return r.err != nil && IsInterrupt(r.err)
}

func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isSuccess
}

func (r Result[T]) HasResult() bool {
	return r.hasResult
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) ID() uuid.UUID {
	return r.id
}

// OrElse returns the value, or fallback when there is none.
func (r Result[T]) OrElse(fallback T) T {
	if r.hasResult {
		return r.result
	}
	return fallback
}

// Must returns the value, raising the failure through Rethrow. An empty
// result yields the zero value.
func (r Result[T]) Must(ctx context.Context) T {
	Rethrow(ctx, r.err)
	return r.result
}
