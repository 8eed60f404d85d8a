package mlvec

import (
	"errors"
	"fmt"
	"iter"

	"github.com/npillmayer/mlvec/blocktree"
)

// Vector is a sequence of elements of type T, stored in a tree of blocks.
//
// The zero value is an empty vector with default configuration, ready to use.
// Vectors must not be copied after first use.
type Vector[T any] struct {
	cfg  Config[T]
	tree *blocktree.Tree[T]
	free int    // unused slots in the tail leaf block, 0 ≤ free < B
	tail []T    // tail leaf block, nil for an empty vector
	gen  uint64 // incremented whenever blocks are added or freed
}

// New creates an empty vector. It returns ErrInvalidConfig for
// configurations the block tree cannot be built with.
func New[T any](cfg Config[T]) (*Vector[T], error) {
	tree, err := blocktree.New(cfg.treeConfig())
	if err != nil {
		return nil, err
	}
	return &Vector[T]{cfg: cfg, tree: tree}, nil
}

// NewSized creates a vector of n zero-valued elements.
func NewSized[T any](n int, cfg Config[T]) (*Vector[T], error) {
	v, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err = v.Extend(n); err != nil {
		return nil, err
	}
	return v, nil
}

// NewFilled creates a vector of n copies of value.
func NewFilled[T any](n int, value T, cfg Config[T]) (*Vector[T], error) {
	v, err := NewSized(n, cfg)
	if err != nil {
		return nil, err
	}
	v.tree.ForEachLeaf(func(first int, leaf []T) bool {
		for i := range leaf {
			if first+i >= n {
				return false
			}
			leaf[i] = value
		}
		return true
	})
	return v, nil
}

// ensure creates the block tree of a zero-valued vector.
func (v *Vector[T]) ensure() error {
	if v.tree != nil {
		return nil
	}
	tree, err := blocktree.New(v.cfg.treeConfig())
	if err != nil {
		return err
	}
	v.tree = tree
	return nil
}

// touch records a change of the block structure: cached leaf blocks get
// stale and the tail block is looked up again.
func (v *Vector[T]) touch() {
	v.gen++
	v.tail = v.tree.Tail()
}

// --- Queries ---------------------------------------------------------------

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	if v.tree == nil {
		return 0
	}
	return v.tree.Capacity() - v.free
}

// Cap returns the number of allocated element slots, always a multiple of
// BlockSize.
func (v *Vector[T]) Cap() int {
	if v.tree == nil {
		return 0
	}
	return v.tree.Capacity()
}

// IsEmpty returns true if the vector holds no elements.
func (v *Vector[T]) IsEmpty() bool {
	return v.Len() == 0
}

// Height returns the number of index levels above the leaf blocks.
func (v *Vector[T]) Height() int {
	return v.tree.Height()
}

// BlockSize returns the number of elements per block, B.
func (v *Vector[T]) BlockSize() int {
	if v.tree == nil {
		exp := v.cfg.Exp
		if exp == 0 {
			exp = blocktree.DefaultExp
		}
		return 1 << exp
	}
	return v.tree.Codec().BlockSize()
}

// Tree gives read access to the underlying block tree, for diagnostics.
// Clients must not grow or shrink it.
func (v *Vector[T]) Tree() *blocktree.Tree[T] {
	return v.tree
}

// --- Element access --------------------------------------------------------

// Index returns the address of element i. Like indexing a slice it panics if
// i is out of range. The address stays valid until the element is removed.
func (v *Vector[T]) Index(i int) *T {
	if i < 0 || i >= v.Len() {
		panic(fmt.Sprintf("mlvec: index out of range [%d] with length %d", i, v.Len()))
	}
	return v.tree.Addr(i)
}

// At returns element i, or ErrOutOfRange.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.Len() {
		var zero T
		return zero, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, v.Len())
	}
	return *v.tree.Addr(i), nil
}

// Set overwrites element i, or returns ErrOutOfRange.
func (v *Vector[T]) Set(i int, value T) error {
	if i < 0 || i >= v.Len() {
		return fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, v.Len())
	}
	*v.tree.Addr(i) = value
	return nil
}

// Front returns the first element, or ErrOutOfRange for an empty vector.
func (v *Vector[T]) Front() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, fmt.Errorf("%w: front of empty vector", ErrOutOfRange)
	}
	return v.tree.Head()[0], nil
}

// Back returns the last element, or ErrOutOfRange for an empty vector.
func (v *Vector[T]) Back() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, fmt.Errorf("%w: back of empty vector", ErrOutOfRange)
	}
	return v.tail[len(v.tail)-1-v.free], nil
}

// All returns an iterator over index/element pairs in index order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := v.Len()
		if n == 0 {
			return
		}
		v.tree.ForEachLeaf(func(first int, leaf []T) bool {
			for i, x := range leaf {
				if first+i >= n || !yield(first+i, x) {
					return false
				}
			}
			return true
		})
	}
}

// Backward returns an iterator over index/element pairs, last element first.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := v.Len() - 1
		if i < 0 {
			return
		}
		mask := v.tree.Codec().BlockMask()
		for i >= 0 {
			leaf := v.tree.Leaf(i)
			for first := i &^ mask; i >= first; i-- {
				if !yield(i, leaf[i&mask]) {
					return
				}
			}
		}
	}
}

// --- Mutators --------------------------------------------------------------

// PushBack appends value. Elements already in the vector are neither moved
// nor copied.
func (v *Vector[T]) PushBack(value T) error {
	if err := v.ensure(); err != nil {
		return err
	}
	if v.free > 0 {
		v.tail[len(v.tail)-v.free] = value
		v.free--
		return nil
	}
	slots, err := v.tree.GrowOne()
	if err != nil {
		return err
	}
	slots[0] = value
	v.free = len(slots) - 1
	v.gen++
	v.tail = slots
	return nil
}

// PopBack removes the last element. If a Release function is configured, it
// is called for the element and its error, if any, is returned; the element
// is removed nevertheless.
func (v *Vector[T]) PopBack() error {
	if v.IsEmpty() {
		return fmt.Errorf("%w: pop from empty vector", ErrOutOfRange)
	}
	last := len(v.tail) - 1 - v.free
	err := v.release(v.tail[last : last+1])
	if last > 0 {
		v.free++
		return err
	}
	if shrinkErr := v.tree.ShrinkBy(1); shrinkErr != nil {
		return errors.Join(err, shrinkErr)
	}
	v.free = 0
	v.touch()
	return err
}

// Extend appends n zero-valued elements. Trailing slack of the tail block is
// used first, further blocks are allocated as needed. If the blocks cannot
// be allocated the vector is left unchanged.
func (v *Vector[T]) Extend(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: cannot extend by %d elements", ErrIllegalArguments, n)
	}
	if n == 0 {
		return nil
	}
	if err := v.ensure(); err != nil {
		return err
	}
	if n <= v.free {
		v.free -= n
		return nil
	}
	codec := v.tree.Codec()
	rest := n - v.free
	blocks := codec.BlockCount(rest)
	if err := v.tree.GrowBy(blocks); err != nil {
		return err
	}
	v.free = blocks<<codec.Exp() - rest
	v.touch()
	return nil
}

// Shrink removes the last n elements. Blocks which hold no element any more
// are freed, and the tree loses levels once they are no longer needed.
//
// Errors returned by a configured Release function are joined and returned,
// but do not stop the removal of the remaining elements.
func (v *Vector[T]) Shrink(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: cannot shrink by %d elements", ErrIllegalArguments, n)
	}
	if n > v.Len() {
		return fmt.Errorf("%w: cannot remove %d of %d elements", ErrOutOfRange, n, v.Len())
	}
	if n == 0 {
		return nil
	}
	codec := v.tree.Codec()
	size := v.Len() - n
	err := v.releaseRange(size, v.Len())
	capacity := codec.BlockCount(size) << codec.Exp()
	if blocks := (v.Cap() - capacity) >> codec.Exp(); blocks > 0 {
		if shrinkErr := v.tree.ShrinkBy(blocks); shrinkErr != nil {
			return errors.Join(err, shrinkErr)
		}
		v.touch()
	}
	v.free = capacity - size
	return err
}

// Resize sets the number of elements to n, appending zero values or
// removing elements from the tail.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: cannot resize to %d elements", ErrIllegalArguments, n)
	}
	if l := v.Len(); n > l {
		return v.Extend(n - l)
	} else if n < l {
		return v.Shrink(l - n)
	}
	return nil
}

// Clear removes all elements and frees every block of the vector.
func (v *Vector[T]) Clear() error {
	if v.tree == nil {
		return nil
	}
	err := v.releaseRange(0, v.Len())
	tracer().Debugf("mlvec: clearing vector of %d blocks", v.tree.LiveBlocks())
	v.tree.Destroy()
	v.free = 0
	v.touch()
	return err
}

// releaseRange releases and clears elements from…to-1, block by block.
func (v *Vector[T]) releaseRange(from, to int) error {
	mask := v.tree.Codec().BlockMask()
	var errs []error
	for i := from; i < to; {
		leaf := v.tree.Leaf(i)
		end := min(to, (i|mask)+1)
		if err := v.release(leaf[i&mask : (end-1)&mask+1]); err != nil {
			errs = append(errs, err)
		}
		i = end
	}
	return errors.Join(errs...)
}

// release calls the Release function for each of slots, then clears them.
func (v *Vector[T]) release(slots []T) error {
	var errs []error
	if v.cfg.Release != nil {
		for _, x := range slots {
			if err := v.cfg.Release(x); err != nil {
				errs = append(errs, err)
			}
		}
	}
	clear(slots)
	if len(errs) > 0 {
		tracer().Errorf("mlvec: %d of %d elements failed to release", len(errs), len(slots))
	}
	return errors.Join(errs...)
}

// Check validates the block tree and the bookkeeping of the vector.
func (v *Vector[T]) Check() error {
	if v.tree == nil {
		if v.free != 0 || v.tail != nil {
			return fmt.Errorf("%w: vector without tree has state", ErrCorrupted)
		}
		return nil
	}
	if err := v.tree.Check(); err != nil {
		return err
	}
	B := v.tree.Codec().BlockSize()
	if v.free < 0 || v.free >= B {
		return fmt.Errorf("%w: slack %d out of range 0…%d", ErrCorrupted, v.free, B-1)
	}
	if v.tree.IsEmpty() {
		if v.free != 0 || v.tail != nil {
			return fmt.Errorf("%w: empty vector with slack %d", ErrCorrupted, v.free)
		}
		return nil
	}
	if tail := v.tree.Tail(); len(v.tail) != B || &v.tail[0] != &tail[0] {
		return fmt.Errorf("%w: stale tail block", ErrCorrupted)
	}
	return nil
}
