package blocktree

import (
	"fmt"
)

// Tree is a tail-growing tree of fixed-size blocks.
//
// T is the element type. A tree is either empty, a single leaf block
// (height 0), or rooted at an index block (height ≥ 1). Growth never moves
// a block which is already part of the tree, so addresses of elements stay
// stable until their block is freed.
type Tree[T any] struct {
	cfg    Config[T]
	codec  Codec
	root   node[T]
	height int
	peek   int // highest allocated slot index, 0 for an empty tree
	live   int // number of allocated blocks
}

// New creates an empty tree with validated configuration.
func New[T any](cfg Config[T]) (*Tree[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	return &Tree[T]{cfg: cfg, codec: NewCodec(cfg.Exp)}, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[T]) Config() Config[T] {
	return t.cfg
}

// Codec returns the address codec of the tree.
func (t *Tree[T]) Codec() Codec {
	return t.codec
}

// IsEmpty reports whether the tree has no blocks.
func (t *Tree[T]) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Height returns the number of index-block levels above the leaf level.
func (t *Tree[T]) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Peek returns the frontier, i.e. the highest allocated slot index.
// It is 0 for an empty tree.
func (t *Tree[T]) Peek() int {
	if t == nil {
		return 0
	}
	return t.peek
}

// Capacity returns the number of allocated slots, a multiple of B.
func (t *Tree[T]) Capacity() int {
	if t.IsEmpty() {
		return 0
	}
	return t.peek + 1
}

// Leaves returns the number of allocated leaf blocks.
func (t *Tree[T]) Leaves() int {
	return t.Capacity() >> t.codec.exp
}

// LiveBlocks returns the number of allocated leaf and index blocks.
func (t *Tree[T]) LiveBlocks() int {
	if t == nil {
		return 0
	}
	return t.live
}

// reserve checks that n more leaf blocks fit into the configured capacity
// and block budget. It does not modify the tree.
func (t *Tree[T]) reserve(n int) error {
	leaves := t.Leaves()
	maxLeaves := t.cfg.MaxCapacity >> t.codec.exp
	if n > maxLeaves-leaves {
		return fmt.Errorf("%w: %d blocks requested, %d of %d in use",
			ErrCapacityExceeded, n, leaves, maxLeaves)
	}
	if t.cfg.MaxBlocks > 0 {
		need := t.codec.BlocksFor(leaves+n) - t.codec.BlocksFor(leaves)
		if t.live+need > t.cfg.MaxBlocks {
			tracer().Errorf("blocktree: block budget exhausted (%d live, %d needed, limit %d)",
				t.live, need, t.cfg.MaxBlocks)
			return fmt.Errorf("%w: %d blocks needed, %d of %d in use",
				ErrAllocationFailure, need, t.live, t.cfg.MaxBlocks)
		}
	}
	return nil
}

// GrowBy appends n leaf blocks at the tail of the tree.
//
// Capacity and block budget are checked up front; on error the tree is left
// unchanged. Blocks are appended in index order and no existing block is
// moved or copied. New slots hold the zero value of T.
func (t *Tree[T]) GrowBy(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative block count %d", ErrOutOfRange, n)
	}
	if n == 0 {
		return nil
	}
	if err := t.reserve(n); err != nil {
		return err
	}
	if t.root == nil {
		t.root = t.newLeaf()
		t.peek = t.codec.BlockMask()
		n--
	}
	for n > 0 {
		if t.peek == t.codec.Span(t.height)-1 {
			t.wrapRoot()
		}
		t.fill(asIndex[T](t.root), t.height, &n)
	}
	return nil
}

// GrowOne appends a single leaf block and returns its slots for immediate
// population.
func (t *Tree[T]) GrowOne() ([]T, error) {
	if err := t.reserve(1); err != nil {
		return nil, err
	}
	if t.root == nil {
		leaf := t.newLeaf()
		t.root = leaf
		t.peek = t.codec.BlockMask()
		return leaf.slots, nil
	}
	if t.peek == t.codec.Span(t.height)-1 {
		t.wrapRoot()
	}
	t.peek += t.codec.BlockSize()
	inner := asIndex[T](t.root)
	for level := t.height; level > 1; level-- {
		i := t.codec.Digit(level, t.peek)
		if inner.children[i] == nil {
			inner.children[i] = t.newIndex()
			inner.n++
		}
		inner = asIndex[T](inner.children[i])
	}
	leaf := t.newLeaf()
	inner.children[t.codec.Digit(1, t.peek)] = leaf
	inner.n++
	return leaf.slots, nil
}

// wrapRoot puts the current root as child 0 into a new index block.
func (t *Tree[T]) wrapRoot() {
	inner := t.newIndex()
	inner.children[0] = t.root
	inner.n = 1
	t.root = inner
	t.height++
	tracer().Debugf("blocktree: height grows to %d at capacity %d", t.height, t.Capacity())
}

// fill appends up to *n leaf blocks below inner, which sits at the given
// level, descending towards the slot following the frontier. Missing index
// blocks on the way are allocated lazily.
func (t *Tree[T]) fill(inner *indexBlock[T], level int, n *int) {
	B := t.codec.BlockSize()
	if level == 1 {
		for i := t.codec.Digit(level, t.peek+B); *n > 0 && i < B; i++ {
			inner.children[i] = t.newLeaf()
			inner.n++
			t.peek += B
			*n--
		}
		return
	}
	for i := t.codec.Digit(level, t.peek+B); *n > 0 && i < B; i++ {
		if inner.children[i] == nil {
			inner.children[i] = t.newIndex()
			inner.n++
		}
		t.fill(asIndex[T](inner.children[i]), level-1, n)
	}
}

// ShrinkBy frees the last n leaf blocks, walking backwards from the
// frontier. Index blocks losing their last child are freed as well, and the
// height shrinks while the remaining capacity fits into a lower tree.
// Shrinking by all leaf blocks empties the tree.
func (t *Tree[T]) ShrinkBy(n int) error {
	leaves := t.Leaves()
	if n < 0 || n > leaves {
		return fmt.Errorf("%w: cannot free %d of %d blocks", ErrOutOfRange, n, leaves)
	}
	if n == 0 {
		return nil
	}
	if n == leaves {
		t.Destroy()
		return nil
	}
	t.trim(asIndex[T](t.root), t.height, &n)
	t.collapse()
	return nil
}

func (t *Tree[T]) trim(inner *indexBlock[T], level int, n *int) {
	for i := t.codec.Digit(level, t.peek); *n > 0 && i >= 0; i-- {
		child := inner.children[i]
		assert(child != nil, "trim: missing child below frontier")
		if level == 1 {
			t.freeLeaf(asLeaf[T](child))
			inner.children[i] = nil
			inner.n--
			t.peek -= t.codec.BlockSize()
			*n--
			continue
		}
		sub := asIndex[T](child)
		t.trim(sub, level-1, n)
		if sub.n == 0 {
			t.freeIndex(sub)
			inner.children[i] = nil
			inner.n--
		}
	}
}

// collapse replaces the root by its only child while the capacity fits into
// a tree of smaller height.
func (t *Tree[T]) collapse() {
	for t.height > 0 && t.Capacity() <= t.codec.Span(t.height-1) {
		old := asIndex[T](t.root)
		assert(old.n == 1, "collapse: root has more than one child")
		t.root = old.children[0]
		t.freeIndex(old)
		t.height--
		tracer().Debugf("blocktree: height shrinks to %d at capacity %d", t.height, t.Capacity())
	}
}

// Destroy frees every block of the tree exactly once, children before their
// parents, and leaves an empty tree behind.
func (t *Tree[T]) Destroy() {
	if t == nil || t.root == nil {
		return
	}
	t.destroyNode(t.root, t.height)
	t.root = nil
	t.height = 0
	t.peek = 0
	assert(t.live == 0, "Destroy: blocks leaked")
}

func (t *Tree[T]) destroyNode(n node[T], height int) {
	if height == 0 {
		t.freeLeaf(asLeaf[T](n))
		return
	}
	inner := asIndex[T](n)
	for _, child := range inner.children[:inner.n] {
		t.destroyNode(child, height-1)
	}
	t.freeIndex(inner)
}
