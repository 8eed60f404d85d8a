package blocktree

// ForEachLeaf walks leaf blocks in index order.
//
// The callback receives the index of the first slot of each leaf block and
// the block's slots. Iteration stops early if callback returns false.
func (t *Tree[T]) ForEachLeaf(fn func(first int, leaf []T) bool) {
	if t.IsEmpty() || fn == nil {
		return
	}
	t.forEachLeafNode(t.root, t.height, 0, fn)
}

func (t *Tree[T]) forEachLeafNode(n node[T], height int, first int, fn func(int, []T) bool) bool {
	assert(n != nil, "forEachLeafNode called with nil node")
	if height == 0 {
		return fn(first, asLeaf[T](n).slots)
	}
	inner := asIndex[T](n)
	step := t.codec.Span(height - 1)
	for i, child := range inner.children[:inner.n] {
		if !t.forEachLeafNode(child, height-1, first+i*step, fn) {
			return false
		}
	}
	return true
}
