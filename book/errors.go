package book

import (
	"errors"
	"fmt"
)

// Soft errors: reported as a boolean/no-op, never change book state.
var (
	// ErrNotFound names the outcome of Cancel/Amend targeting an unknown
	// order ID. The public methods report that outcome as `false` and do
	// not return this value — a missing ID is an expected outcome, not a
	// failure worth an error return.
	ErrNotFound = errors.New("order not found")

	// ErrDuplicateOrder names the outcome of Add's matching residue
	// colliding with an existing order ID. Add does not return this
	// value: it treats the collision as a silent no-op (the duplicate is
	// discarded, the book is left untouched).
	ErrDuplicateOrder = errors.New("duplicate order id")
)

// InvariantViolation marks a detected mismatch between the order index,
// level aggregates, and FIFO sequences — a programming error inside the
// engine itself, never a consequence of caller input. The engine must
// never continue operating on a torn book, so callers of fatal see a
// panic rather than a returned error.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("order book invariant violated: %s", e.Reason)
}

// ResourceExhaustion marks a failure to grow the order pool's backing
// storage. Like InvariantViolation, this is fatal: the book has no safe
// partial state to fall back to mid-match.
type ResourceExhaustion struct {
	Reason string
}

func (e *ResourceExhaustion) Error() string {
	return fmt.Sprintf("order pool exhausted: %s", e.Reason)
}

// fatal panics with err. The engine never attempts partial recovery from
// an invariant violation or pool exhaustion — both mean the book can no
// longer guarantee its own consistency, so progress aborts entirely. A
// library cannot terminate its host process, so this is the boundary
// equivalent: the panic is expected to propagate out of Add/Cancel/Amend
// uncaught, by design.
func fatal(err error) {
	logger.Error("order book cannot make progress", "error", err)
	panic(err)
}
