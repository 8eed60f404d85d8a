package blocktree

import "fmt"

// Config configures a block tree.
type Config[T any] struct {
	// Exp is the block-size exponent, fixing the branching factor B = 2^Exp.
	// Zero selects DefaultExp.
	Exp uint8
	// MaxCapacity limits the number of slots the tree may allocate.
	// Zero selects the largest capacity representable for Exp.
	MaxCapacity int
	// MaxBlocks limits the number of live blocks (leaf and index blocks).
	// Growth beyond it fails with ErrAllocationFailure. Zero means unlimited.
	MaxBlocks int
	// Pool optionally recycles freed blocks. It must have been created for
	// the same Exp.
	Pool *Pool[T]
}

func (cfg Config[T]) normalized() Config[T] {
	if cfg.Exp == 0 {
		cfg.Exp = DefaultExp
	}
	if cfg.Exp > MaxExp {
		return cfg
	}
	limit := NewCodec(cfg.Exp).MaxCapacity()
	if cfg.MaxCapacity == 0 || cfg.MaxCapacity > limit {
		cfg.MaxCapacity = limit
	}
	return cfg
}

func (cfg Config[T]) validate() error {
	cfg = cfg.normalized()
	if cfg.Exp > MaxExp {
		return fmt.Errorf("%w: block-size exponent %d exceeds %d", ErrInvalidConfig, cfg.Exp, MaxExp)
	}
	if cfg.MaxCapacity < 0 {
		return fmt.Errorf("%w: negative capacity limit %d", ErrInvalidConfig, cfg.MaxCapacity)
	}
	if cfg.MaxBlocks < 0 {
		return fmt.Errorf("%w: negative block limit %d", ErrInvalidConfig, cfg.MaxBlocks)
	}
	if cfg.Pool != nil && cfg.Pool.exp != cfg.Exp {
		return fmt.Errorf("%w: pool block exponent %d does not match %d",
			ErrInvalidConfig, cfg.Pool.exp, cfg.Exp)
	}
	return nil
}
