// Package stream is a lazy pipeline over iter.Seq whose operations accept the
// checked adapters of package uncheck. A failing adapter raises its failure
// through uncheck.Rethrow when the pipeline is consumed.
//
// Intermediate operations (Filter, Peek, Sorted, Limit, Map, FlatMap) only
// describe work; terminal operations (ForEach, Collect, Count, the matchers,
// Min, Max, Reduce, Fold) run it. A Stream is an io.Closer: Close runs the
// handlers registered with OnClose, so it can be handed to package closing.
package stream

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/ib-77/unexceptional/pkg/uncheck"
)

type Stream[T any] struct {
	ctx   context.Context
	seq   iter.Seq[T]
	hooks *hooks
}

// hooks is shared by every stream derived from the same source.
type hooks struct {
	mu     sync.Mutex
	fns    []func() error
	closed bool
}

func Of[T any](ctx context.Context, vs ...T) *Stream[T] {
	return From(ctx, slices.Values(vs))
}

func From[T any](ctx context.Context, seq iter.Seq[T]) *Stream[T] {
	return &Stream[T]{ctx: ctx, seq: seq, hooks: &hooks{}}
}

// Open builds the source by applying fn to a, raising its failure at once:
//
//	entries := stream.Open(ctx, readDir, ".")
func Open[A, T any](ctx context.Context, fn uncheck.Function[A, iter.Seq[T]], a A) *Stream[T] {
	return From(ctx, uncheck.Apply(ctx, fn, a))
}

func derive[T, U any](s *Stream[T], seq iter.Seq[U]) *Stream[U] {
	return &Stream[U]{ctx: s.ctx, seq: seq, hooks: s.hooks}
}

// All exposes the pipeline as a plain sequence.
func (s *Stream[T]) All() iter.Seq[T] {
	return s.seq
}

func (s *Stream[T]) Filter(p uncheck.Predicate[T]) *Stream[T] {
	return derive[T, T](s, func(yield func(T) bool) {
		for v := range s.seq {
			if uncheck.Test(s.ctx, p, v) && !yield(v) {
				return
			}
		}
	})
}

// Peek feeds each element to fn as it flows past.
func (s *Stream[T]) Peek(fn uncheck.Consumer[T]) *Stream[T] {
	return derive[T, T](s, func(yield func(T) bool) {
		for v := range s.seq {
			uncheck.Accept(s.ctx, fn, v)
			if !yield(v) {
				return
			}
		}
	})
}

// Sorted buffers the whole source and yields it in a stable order.
func (s *Stream[T]) Sorted(c uncheck.Comparator[T]) *Stream[T] {
	return derive[T, T](s, func(yield func(T) bool) {
		vs := slices.Collect(s.seq)
		slices.SortStableFunc(vs, uncheck.UncheckComparator(s.ctx, c))
		for _, v := range vs {
			if !yield(v) {
				return
			}
		}
	})
}

func (s *Stream[T]) Limit(n int) *Stream[T] {
	return derive[T, T](s, func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for v := range s.seq {
			if !yield(v) {
				return
			}
			if i++; i >= n {
				return
			}
		}
	})
}

func Map[T, U any](s *Stream[T], fn uncheck.Function[T, U]) *Stream[U] {
	return derive[T, U](s, func(yield func(U) bool) {
		for v := range s.seq {
			if !yield(uncheck.Apply(s.ctx, fn, v)) {
				return
			}
		}
	})
}

func FlatMap[T, U any](s *Stream[T], fn uncheck.Function[T, iter.Seq[U]]) *Stream[U] {
	return derive[T, U](s, func(yield func(U) bool) {
		for v := range s.seq {
			for u := range uncheck.Apply(s.ctx, fn, v) {
				if !yield(u) {
					return
				}
			}
		}
	})
}

func (s *Stream[T]) ForEach(fn uncheck.Consumer[T]) {
	uncheck.ForEach(s.ctx, s.seq, fn)
}

func (s *Stream[T]) Collect() []T {
	return slices.Collect(s.seq)
}

func (s *Stream[T]) Count() int {
	n := 0
	for range s.seq {
		n++
	}
	return n
}

// AnyMatch stops at the first element p accepts.
func (s *Stream[T]) AnyMatch(p uncheck.Predicate[T]) bool {
	for v := range s.seq {
		if uncheck.Test(s.ctx, p, v) {
			return true
		}
	}
	return false
}

// AllMatch stops at the first element p rejects. It is true for an empty stream.
func (s *Stream[T]) AllMatch(p uncheck.Predicate[T]) bool {
	return !s.AnyMatch(p.Negate())
}

func (s *Stream[T]) NoneMatch(p uncheck.Predicate[T]) bool {
	return !s.AnyMatch(p)
}

func (s *Stream[T]) Min(c uncheck.Comparator[T]) (T, bool) {
	return s.Reduce(uncheck.MinBy(c))
}

func (s *Stream[T]) Max(c uncheck.Comparator[T]) (T, bool) {
	return s.Reduce(uncheck.MaxBy(c))
}

// Reduce folds the elements with op. ok is false for an empty stream.
func (s *Stream[T]) Reduce(op uncheck.BinaryOperator[T]) (acc T, ok bool) {
	for v := range s.seq {
		if !ok {
			acc, ok = v, true
			continue
		}
		acc = uncheck.Operate(s.ctx, op, acc, v)
	}
	return acc, ok
}

// Fold folds the elements into identity with fn.
func Fold[T, U any](s *Stream[T], identity U, fn uncheck.BiFunction[U, T, U]) U {
	acc := identity
	for v := range s.seq {
		acc = uncheck.ApplyBi(s.ctx, fn, acc, v)
	}
	return acc
}

// OnClose registers fn to run on Close, after the handlers registered before it.
func (s *Stream[T]) OnClose(fn func() error) *Stream[T] {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()

	s.hooks.fns = append(s.hooks.fns, fn)
	return s
}

// Close runs every close handler once, even when one fails. The first
// failure is returned with the later ones attached as suppressed records.
// Closing again is a no-op.
func (s *Stream[T]) Close() error {
	s.hooks.mu.Lock()
	if s.hooks.closed {
		s.hooks.mu.Unlock()
		return nil
	}
	s.hooks.closed = true
	fns := s.hooks.fns
	s.hooks.fns = nil
	s.hooks.mu.Unlock()

	var err error
	for _, fn := range fns {
		var hookErr error
		if raised := uncheck.Catch(func() { hookErr = fn() }); raised != nil {
			hookErr = raised
		}
		if hookErr == nil {
			continue
		}
		if err == nil {
			err = hookErr
			continue
		}
		err = uncheck.Suppress(err, hookErr)
	}
	return err
}
