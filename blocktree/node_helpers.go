package blocktree

// newLeaf materializes a zero-valued leaf block, preferring a pooled one.
func (t *Tree[T]) newLeaf() *leafBlock[T] {
	t.live++
	if t.cfg.Pool != nil {
		if leaf := t.cfg.Pool.getLeaf(); leaf != nil {
			return leaf
		}
	}
	return &leafBlock[T]{slots: make([]T, t.codec.BlockSize())}
}

// newIndex materializes an index block with all children absent.
func (t *Tree[T]) newIndex() *indexBlock[T] {
	t.live++
	if t.cfg.Pool != nil {
		if inner := t.cfg.Pool.getIndex(); inner != nil {
			return inner
		}
	}
	return &indexBlock[T]{children: make([]node[T], t.codec.BlockSize())}
}

// freeLeaf clears a leaf block and hands it back to the pool, if any.
func (t *Tree[T]) freeLeaf(leaf *leafBlock[T]) {
	assert(t.live > 0, "freeLeaf: no live blocks")
	t.live--
	clear(leaf.slots)
	if t.cfg.Pool != nil {
		t.cfg.Pool.putLeaf(leaf)
	}
}

// freeIndex clears an index block and hands it back to the pool, if any.
func (t *Tree[T]) freeIndex(inner *indexBlock[T]) {
	assert(t.live > 0, "freeIndex: no live blocks")
	t.live--
	clear(inner.children)
	inner.n = 0
	if t.cfg.Pool != nil {
		t.cfg.Pool.putIndex(inner)
	}
}
