package uncheck

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// PanicError wraps a failure that escaped a boundary declaring only error
// returns: a recovered panic value. When the value was itself an error it is
// the cause.
type PanicError struct {
	id    uuid.UUID
	value any
	cause error
	stack []byte

	mu         sync.Mutex
	suppressed []error
}

var _ Suppressor = (*PanicError)(nil)

func newPanicError(value any) *PanicError {
	p := &PanicError{
		id:    uuid.New(),
		value: value,
		stack: debug.Stack(),
	}
	if err, ok := value.(error); ok {
		p.cause = err
	}
	return p
}

func (p *PanicError) Error() string {
	if p.cause != nil {
		return "panic: " + p.cause.Error()
	}
	return fmt.Sprintf("panic: %v", p.value)
}

func (p *PanicError) Unwrap() error { return p.cause }

// ID identifies the incident, for correlating logs with the failure.
func (p *PanicError) ID() uuid.UUID { return p.id }

// Value is the value the panic carried.
func (p *PanicError) Value() any { return p.value }

// Stack is the goroutine stack captured when the panic was recovered.
func (p *PanicError) Stack() []byte { return p.stack }

func (p *PanicError) AddSuppressed(err error) {
	if err == nil || err == error(p) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range p.suppressed {
		if same(s, err) {
			return
		}
	}
	p.suppressed = append(p.suppressed, err)
}

func (p *PanicError) Suppressed() []error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.suppressed) == 0 {
		return nil
	}
	out := make([]error, len(p.suppressed))
	copy(out, p.suppressed)
	return out
}

// Recovered turns a value obtained from recover() into an error. Errors are
// returned as they are; any other value is wrapped in a PanicError.
func Recovered(v any) error {
	if v == nil {
		return nil
	}
	if err, ok := v.(error); ok {
		return err
	}
	return newPanicError(v)
}
