package uncheck

import (
	"runtime"
	"sync"
)

// FatalError marks a failure as non-recoverable. It is never wrapped by the
// normalizer and never swallowed.
type FatalError struct {
	err error

	mu         sync.Mutex
	suppressed []error
}

var _ Suppressor = (*FatalError)(nil)

// Fatal marks err as non-recoverable. A nil err stays nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{err: err}
}

func (f *FatalError) Error() string { return "fatal: " + f.err.Error() }

func (f *FatalError) Unwrap() error { return f.err }

func (f *FatalError) Fatal() bool { return true }

// AddSuppressed lets a release failure ride along with a fatal failure
// without changing its identity.
func (f *FatalError) AddSuppressed(err error) {
	if err == nil || err == error(f) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.suppressed {
		if same(s, err) {
			return
		}
	}
	f.suppressed = append(f.suppressed, err)
}

func (f *FatalError) Suppressed() []error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]error(nil), f.suppressed...)
}

// IsFatal reports whether the outermost value of err is fatal. Causes are
// deliberately not inspected: a fatal failure wrapped by an unchecked one is
// treated as unchecked.
func IsFatal(err error) bool {
	f, ok := err.(interface{ Fatal() bool })
	return ok && f.Fatal()
}

// isUnchecked reports whether the outermost value of err already has the
// propagation class of an unchecked failure.
func isUnchecked(err error) bool {
	switch e := err.(type) {
	case *Error, *PanicError, runtime.Error:
		return true
	case interface{ Unchecked() bool }:
		return e.Unchecked()
	}
	return false
}
