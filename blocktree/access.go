package blocktree

// Addr returns the address of the slot at index.
//
// Addr descends digit by digit from the root, which is O(height). Bounds
// checking is the caller's obligation: index must be in 0…Peek().
func (t *Tree[T]) Addr(index int) *T {
	leaf := t.leafAt(index)
	return &leaf.slots[t.codec.Digit(0, index)]
}

// Leaf returns the slots of the leaf block containing index. index must be
// in 0…Peek().
func (t *Tree[T]) Leaf(index int) []T {
	return t.leafAt(index).slots
}

// Head returns the first leaf block, or nil for an empty tree.
func (t *Tree[T]) Head() []T {
	if t.IsEmpty() {
		return nil
	}
	n := t.root
	for range t.height {
		n = asIndex[T](n).children[0]
	}
	return asLeaf[T](n).slots
}

// Tail returns the leaf block holding the frontier, or nil for an empty tree.
func (t *Tree[T]) Tail() []T {
	if t.IsEmpty() {
		return nil
	}
	return t.leafAt(t.peek).slots
}

func (t *Tree[T]) leafAt(index int) *leafBlock[T] {
	assert(!t.IsEmpty(), "leafAt called on empty tree")
	assert(index >= 0 && index <= t.peek, "leafAt index out of range")
	n := t.root
	for level := t.height; level > 0; level-- {
		n = asIndex[T](n).children[t.codec.Digit(level, index)]
	}
	return asLeaf[T](n)
}
