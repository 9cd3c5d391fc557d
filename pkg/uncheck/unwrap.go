package uncheck

// Unwrap strips wrapper layers from err to expose its root cause. The layers
// stripped are *InvocationError, *PanicError and canonical *Error values, each
// only while it has a non-nil cause; a wrapper without a cause is returned as is.
//
// When anything was stripped and the root is a Suppressor, the original err is
// recorded on it as a suppressed failure. Unwrapping a root again is a no-op,
// so Unwrap(Unwrap(err)) records nothing twice.
func Unwrap(err error) error {
	if err == nil {
		return nil
	}

	root, stripped := unwrapping(err)
	if stripped {
		if s, ok := root.(Suppressor); ok {
			s.AddSuppressed(err)
		}
	}
	return root
}

func unwrapping(err error) (error, bool) {
	// Only pointer wrapper types enter seen, so identity keys are safe.
	seen := make(map[error]struct{})
	orig := err
	for {
		cause, ok := unwrapOnce(err)
		if !ok {
			return err, len(seen) > 0
		}
		if _, dup := seen[err]; dup {
			return err, !same(err, orig)
		}
		seen[err] = struct{}{}
		err = cause
	}
}

func unwrapOnce(err error) (error, bool) {
	var cause error
	switch e := err.(type) {
	case *InvocationError:
		if e != nil {
			cause = e.Err
		}
	case *PanicError:
		if e != nil {
			cause = e.cause
		}
	case *Error:
		if e != nil {
			cause = e.cause
		}
	default:
		return nil, false
	}
	return cause, cause != nil
}
