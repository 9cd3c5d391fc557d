package uncheck

import "context"

// Rethrow panics with err normalized by Uncheck. Fatal and already unchecked
// failures are raised unchanged. A nil err is ignored.
func Rethrow(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if IsFatal(err) {
		panic(err)
	}
	panic(Uncheck(ctx, err))
}

// Throw panics with err exactly as given, without normalizing it. The
// interrupt flag is still set for cancellation signals. A nil err is ignored.
func Throw(ctx context.Context, err error) {
	if err == nil {
		return
	}
	InterruptIf(ctx, err)
	panic(err)
}

// Swallow discards err. Use it only once a failure is known to be immaterial:
// fatal failures are still raised, and cancellation signals still set the
// interrupt flag carried by ctx.
func Swallow(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if IsFatal(err) {
		panic(err)
	}
	InterruptIf(ctx, err)
}

// Catch runs fn and returns whatever it panicked with, as an error. It does
// not normalize, so identity is preserved for error values.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Recovered(r)
		}
	}()

	fn()
	return nil
}

// Handler receives a failure that escaped a goroutine or callback boundary.
type Handler func(ctx context.Context, err error)

var (
	// Rethrowing raises every failure it receives through Rethrow.
	Rethrowing Handler = func(ctx context.Context, err error) { Rethrow(ctx, err) }

	// Swallowing discards every non-fatal failure it receives through Swallow.
	Swallowing Handler = func(ctx context.Context, err error) { Swallow(ctx, err) }
)

// Recover hands a panic in progress to h. It must be deferred directly:
//
//	defer uncheck.Swallowing.Recover(ctx)
func (h Handler) Recover(ctx context.Context) {
	if r := recover(); r != nil {
		h(ctx, Recovered(r))
	}
}

// Guard runs fn and hands its failure, returned or raised, to h.
func (h Handler) Guard(ctx context.Context, fn func(ctx context.Context) error) {
	var err error
	if raised := Catch(func() { err = fn(ctx) }); raised != nil {
		err = raised
	}

	if err != nil {
		h(ctx, err)
	}
}
