package mlvec

import (
	"io"

	"github.com/npillmayer/mlvec/blocktree"
)

// Vector2Dot outputs the block tree of a vector in Graphviz DOT format
// (for debugging purposes).
func Vector2Dot[T any](v *Vector[T], w io.Writer) error {
	return blocktree.Tree2Dot(v.tree, w)
}
