package uncheck

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

// ErrNotInvocable reports a reflective call that could not be made at all.
var ErrNotInvocable = errors.New("not invocable")

// InvocationError wraps the error returned by a function called through Invoke.
type InvocationError struct {
	Func string
	Err  error
}

func (e *InvocationError) Error() string {
	return "invoke " + e.Func + ": " + e.Err.Error()
}

func (e *InvocationError) Unwrap() error { return e.Err }

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// Invoke calls fn through reflection. When fn's first parameter is a
// context.Context it receives ctx and args fill the remaining parameters.
//
// Behavior:
//   - fn not a func, wrong arity, unassignable argument => ErrNotInvocable
//   - trailing error result non-nil => no values, *InvocationError wrapping it
//   - fn panics => *PanicError wrapping the panic value
//
// The returned values exclude a trailing error result.
func Invoke(ctx context.Context, fn any, args ...any) ([]any, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T is not a function", ErrNotInvocable, fn)
	}

	name := funcName(v)
	in, err := invocationArgs(ctx, v.Type(), args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotInvocable, name, err)
	}

	var results []reflect.Value
	if raised := Catch(func() { results = v.Call(in) }); raised != nil {
		p, ok := raised.(*PanicError)
		if !ok {
			p = newPanicError(raised)
		}
		return nil, p
	}

	t := v.Type()
	if n := t.NumOut(); n > 0 && t.Out(n-1) == errorType {
		last := results[n-1]
		if !last.IsNil() {
			return nil, &InvocationError{Func: name, Err: last.Interface().(error)}
		}
		results = results[:n-1]
	}

	out := make([]any, len(results))
	for i, r := range results {
		out[i] = r.Interface()
	}
	return out, nil
}

func invocationArgs(ctx context.Context, t reflect.Type, args []any) ([]reflect.Value, error) {
	in := make([]reflect.Value, 0, t.NumIn())
	if t.NumIn() > 0 && t.In(0) == contextType {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
	}

	if t.IsVariadic() {
		if len(in)+len(args) < t.NumIn()-1 {
			return nil, fmt.Errorf("want at least %d arguments, got %d", t.NumIn()-1-len(in), len(args))
		}
	} else if len(in)+len(args) != t.NumIn() {
		return nil, fmt.Errorf("want %d arguments, got %d", t.NumIn()-len(in), len(args))
	}

	for i, a := range args {
		pos := len(in)
		var want reflect.Type
		if t.IsVariadic() && pos >= t.NumIn()-1 {
			want = t.In(t.NumIn() - 1).Elem()
		} else {
			want = t.In(pos)
		}

		if a == nil {
			switch want.Kind() {
			case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
				in = append(in, reflect.Zero(want))
				continue
			}
			return nil, fmt.Errorf("argument %d: nil is not assignable to %s", i, want)
		}

		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(want) {
			return nil, fmt.Errorf("argument %d: %s is not assignable to %s", i, av.Type(), want)
		}
		in = append(in, av)
	}
	return in, nil
}

func funcName(v reflect.Value) string {
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return v.Type().String()
}
