// Package uncheck converts checked failures (functions returning an error) into
// unchecked ones (panics carrying a normalized error), and back.
//
// Every failure that crosses the package is normalized into a small, closed set
// of canonical kinds so callers can reason about it uniformly:
// - KindIO, KindSecurity, KindReflective, KindInterrupt, KindGeneric
//
// Key constructs:
// - Uncheck/Rethrow/Throw/Swallow: the normalizer and its raise policies
// - Apply/Accept/Get/Run/Test/Compare: invoke a checked adapter, panic on failure
// - Uncheck*: bind a context and return stdlib-shaped funcs (for slices, iter, sort)
// - Unwrap: strip wrapper layers back to the root cause
// - Rethrowing/Swallowing: handlers for failures escaping a worker goroutine
// - WithInterrupt/Interrupted: the cancellation flag relayed by the normalizer
//
// Fatal failures (see Fatal) are never wrapped and never swallowed. Errors that
// are already unchecked pass through by identity.
package uncheck
