package uncheck

import (
	"context"
	"errors"
	"reflect"
)

// ErrInterrupted is the cancellation signal for code that does not use a context.
var ErrInterrupted = errors.New("interrupted")

// IsNil reports whether i is nil, including a typed nil pointer, map, slice,
// chan, func or interface held in an interface.
func IsNil(i any) bool {
	if i == nil {
		return true
	}

	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// IsInterrupt reports whether err carries a cancellation signal anywhere in its chain.
func IsInterrupt(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrInterrupted)
}

// same compares two failures by identity without panicking on values whose
// dynamic type is not comparable.
func same(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
