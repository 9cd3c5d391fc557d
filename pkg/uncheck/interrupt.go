package uncheck

import "context"

type flagKey struct{}

type interruptFlag struct {
	cancel context.CancelCauseFunc
}

// WithInterrupt returns a context carrying an interrupt flag. The flag is set
// by Interrupt, by NewInterrupt, and whenever the normalizer observes a
// cancellation signal under this context; setting it cancels the context with
// the observed failure as cause (see context.Cause).
func WithInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	ctx = context.WithValue(ctx, flagKey{}, &interruptFlag{cancel: cancel})
	return ctx, func() { cancel(context.Canceled) }
}

// Interrupt sets the interrupt flag carried by ctx, recording cause. It is a
// no-op for contexts without a flag and idempotent otherwise.
func Interrupt(ctx context.Context, cause error) {
	if f := flagFrom(ctx); f != nil {
		if cause == nil {
			cause = ErrInterrupted
		}
		f.cancel(cause)
	}
}

// Interrupted reports whether ctx has been cancelled or interrupted.
func Interrupted(ctx context.Context) bool {
	return ctx != nil && ctx.Err() != nil
}

// InterruptIf sets the interrupt flag carried by ctx when err is a
// cancellation signal, and reports whether it was.
func InterruptIf(ctx context.Context, err error) bool {
	if err == nil || !IsInterrupt(err) {
		return false
	}
	Interrupt(ctx, err)
	return true
}

func flagFrom(ctx context.Context) *interruptFlag {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(flagKey{}).(*interruptFlag)
	return f
}
