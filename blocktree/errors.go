package blocktree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("blocktree: invalid configuration")
	// ErrOutOfRange signals an invalid positional index or block count.
	ErrOutOfRange = errors.New("blocktree: index out of range")
	// ErrCapacityExceeded signals a request beyond the representable or
	// configured index range. It is reported before the tree is touched.
	ErrCapacityExceeded = errors.New("blocktree: capacity exceeded")
	// ErrAllocationFailure signals that a block could not be allocated within
	// the configured block budget. It is not retried.
	ErrAllocationFailure = errors.New("blocktree: block allocation failed")
	// ErrCorrupted signals a violated structural invariant, as reported by
	// Check.
	ErrCorrupted = errors.New("blocktree: invariant violated")
)
