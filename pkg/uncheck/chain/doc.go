// Package chain provides a fluent Chain[T] over uncheck.Result[T] whose steps
// are checked functions.
//
// A failure returned or raised by any step is normalized by uncheck.Uncheck and
// short-circuits the remaining steps. A context that is already done stops the
// chain with an interrupt failure before the next step runs.
//
// Key operations:
// - Start/FromValue/From: begin a chain from a Result[T], a value or a supplier
// - Then: apply a checked T -> T step
// - Switch: apply a checked T -> U step, changing the value type
// - Map: apply a plain transformation
// - Tee: run a checked side effect without changing the value
// - Validate: fail the chain when a checked predicate rejects the value
// - Or/And: pick between chains built from the same context
// - Must/Finally: leave the chain by raising or by reducing to a value
package chain
