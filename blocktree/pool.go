package blocktree

import "sync"

// Pool represents free lists of leaf and index blocks. By default a tree
// allocates fresh blocks and leaves freed ones to the garbage collector.
// Trees configured with a Pool take blocks from it and return freed blocks to
// it, which pays off for workloads oscillating around a block boundary.
//
// Multiple trees using the same Pool are safe for concurrent use of the pool;
// the trees themselves are not.
type Pool[T any] struct {
	mu      sync.Mutex
	exp     uint8
	leaves  []*leafBlock[T]
	indices []*indexBlock[T]
}

// NewPool creates a new block pool for trees with block-size exponent exp.
// size is the maximum number of blocks kept per block variant.
func NewPool[T any](exp uint8, size int) *Pool[T] {
	if exp == 0 {
		exp = DefaultExp
	}
	return &Pool[T]{
		exp:     exp,
		leaves:  make([]*leafBlock[T], 0, size),
		indices: make([]*indexBlock[T], 0, size),
	}
}

// Len returns the number of pooled leaf and index blocks.
func (p *Pool[T]) Len() (leaves int, indices int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.leaves), len(p.indices)
}

func (p *Pool[T]) getLeaf() (l *leafBlock[T]) {
	p.mu.Lock()
	index := len(p.leaves) - 1
	if index < 0 {
		p.mu.Unlock()
		return nil
	}
	l = p.leaves[index]
	p.leaves[index] = nil
	p.leaves = p.leaves[:index]
	p.mu.Unlock()
	return
}

// putLeaf adds a cleared leaf block to the pool, returning true if it was
// added and false if it was discarded.
func (p *Pool[T]) putLeaf(l *leafBlock[T]) (out bool) {
	p.mu.Lock()
	if len(p.leaves) < cap(p.leaves) {
		p.leaves = append(p.leaves, l)
		out = true
	}
	p.mu.Unlock()
	return
}

func (p *Pool[T]) getIndex() (b *indexBlock[T]) {
	p.mu.Lock()
	index := len(p.indices) - 1
	if index < 0 {
		p.mu.Unlock()
		return nil
	}
	b = p.indices[index]
	p.indices[index] = nil
	p.indices = p.indices[:index]
	p.mu.Unlock()
	return
}

func (p *Pool[T]) putIndex(b *indexBlock[T]) (out bool) {
	p.mu.Lock()
	if len(p.indices) < cap(p.indices) {
		p.indices = append(p.indices, b)
		out = true
	}
	p.mu.Unlock()
	return
}
