package uncheck

import (
	"context"
	"errors"
	"sync"
)

// Kind is the canonical category of a normalized failure.
type Kind uint8

const (
	KindGeneric Kind = iota
	KindIO
	KindSecurity
	KindReflective
	KindInterrupt
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindSecurity:
		return "security"
	case KindReflective:
		return "reflective"
	case KindInterrupt:
		return "interrupt"
	default:
		return "generic"
	}
}

// Suppressor is implemented by failures that can carry secondary failures
// without replacing their own cause.
type Suppressor interface {
	error
	AddSuppressed(err error)
	Suppressed() []error
}

// Error is the canonical unchecked failure. It wraps exactly one original
// failure (reachable via Unwrap) and optionally a message.
type Error struct {
	kind  Kind
	msg   string
	cause error

	mu         sync.Mutex
	suppressed []error
}

var _ Suppressor = (*Error)(nil)

// New creates a message-only generic failure.
func New(msg string) *Error {
	return &Error{kind: KindGeneric, msg: msg}
}

// Wrap creates a generic failure around cause.
func Wrap(cause error) *Error {
	return &Error{kind: KindGeneric, cause: cause}
}

// WrapMessage creates a generic failure with both a message and a cause.
func WrapMessage(msg string, cause error) *Error {
	return &Error{kind: KindGeneric, msg: msg, cause: cause}
}

func NewIO(cause error) *Error {
	return &Error{kind: KindIO, cause: cause}
}

func NewSecurity(cause error) *Error {
	return &Error{kind: KindSecurity, cause: cause}
}

func NewReflective(cause error) *Error {
	return &Error{kind: KindReflective, cause: cause}
}

// NewInterrupt wraps a cancellation signal and fires the interrupt flag carried
// by ctx, so outer code cooperating with cancellation still observes it.
func NewInterrupt(ctx context.Context, cause error) *Error {
	Interrupt(ctx, cause)
	return &Error{kind: KindInterrupt, cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch {
	case e.msg != "" && e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	case e.msg != "":
		return e.msg
	case e.cause != nil:
		return e.cause.Error()
	}

	return e.kind.String() + " failure"
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }

// Message returns the message given at construction, if any.
func (e *Error) Message() string { return e.msg }

// AddSuppressed records err as a secondary failure. Nil, self and already
// recorded values are ignored.
func (e *Error) AddSuppressed(err error) {
	if e == nil || err == nil || err == error(e) {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.suppressed {
		if same(s, err) {
			return
		}
	}
	e.suppressed = append(e.suppressed, err)
}

// Suppressed returns a copy of the secondary failures, in the order recorded.
func (e *Error) Suppressed() []error {
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.suppressed) == 0 {
		return nil
	}
	out := make([]error, len(e.suppressed))
	copy(out, e.suppressed)
	return out
}

// KindOf reports the kind of the first canonical failure in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return KindGeneric, false
}

// Suppress attaches secondary to primary and returns the failure carrying both.
// When primary cannot hold secondary failures it is wrapped in a generic Error,
// so secondary is never dropped.
func Suppress(primary, secondary error) error {
	if secondary == nil {
		return primary
	}
	if primary == nil {
		return secondary
	}

	if s, ok := primary.(Suppressor); ok {
		s.AddSuppressed(secondary)
		return primary
	}

	w := Wrap(primary)
	w.AddSuppressed(secondary)
	return w
}

// SuppressedOf returns the secondary failures recorded on err itself.
func SuppressedOf(err error) []error {
	if s, ok := err.(Suppressor); ok {
		return s.Suppressed()
	}
	return nil
}
