package mlvec

import "github.com/npillmayer/mlvec/blocktree"

// Config configures a vector. The zero value is a valid configuration,
// selecting blocks of 64 elements and no limits.
type Config[T any] struct {
	// Exp is the block-size exponent, B = 2^Exp. Zero selects
	// blocktree.DefaultExp.
	Exp uint8
	// MaxCapacity limits the number of element slots. Zero means the largest
	// capacity representable for Exp.
	MaxCapacity int
	// MaxBlocks limits the number of blocks the vector may hold at a time.
	// Zero means unlimited.
	MaxBlocks int
	// Pool optionally recycles blocks between vectors of the same Exp.
	Pool *blocktree.Pool[T]
	// Release is called for every element removed from the vector, i.e. by
	// Shrink, PopBack, Resize and Clear. Errors do not stop the removal; they
	// are collected and returned by the removing operation.
	Release func(T) error
}

func (cfg Config[T]) treeConfig() blocktree.Config[T] {
	return blocktree.Config[T]{
		Exp:         cfg.Exp,
		MaxCapacity: cfg.MaxCapacity,
		MaxBlocks:   cfg.MaxBlocks,
		Pool:        cfg.Pool,
	}
}
