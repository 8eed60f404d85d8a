package blocktree

// node is a block of the tree. Which variant a node is follows from its
// height: nodes at height 0 are leaf blocks, all others are index blocks.
type node[T any] interface {
	isLeaf() bool
}

// leafBlock holds exactly B element slots.
type leafBlock[T any] struct {
	slots []T
}

func (l *leafBlock[T]) isLeaf() bool { return true }

// indexBlock holds exactly B child handles. Children are appended in index
// order, so the live ones are always children[:n].
type indexBlock[T any] struct {
	// n is the number of present children.
	n        int
	children []node[T]
}

func (b *indexBlock[T]) isLeaf() bool { return false }

func asLeaf[T any](n node[T]) *leafBlock[T] {
	leaf, ok := n.(*leafBlock[T])
	assert(ok, "expected leaf block at height 0")
	return leaf
}

func asIndex[T any](n node[T]) *indexBlock[T] {
	inner, ok := n.(*indexBlock[T])
	assert(ok, "expected index block above height 0")
	return inner
}
