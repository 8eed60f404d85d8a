package blocktree

import (
	"fmt"
	"io"
	"strings"
)

// absentChild is the table key of an absent child slot of an index block.
type absentChild[T any] struct {
	parent node[T]
	slot   int
}

type blockids[T any] struct {
	idTable map[any]int // keys are node[T] or absentChild[T]
	max     int
}

func newtable[T any]() blockids[T] {
	return blockids[T]{
		idTable: make(map[any]int),
		max:     1,
	}
}

func (ids *blockids[T]) alloc(n any) int {
	if id := ids.idTable[n]; id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// Tree2Dot outputs the block structure of a tree in Graphviz DOT format
// (for debugging purposes). Index blocks are labelled with their live child
// count, leaf blocks with the range of slot indices they hold. Absent children
// of index blocks at the frontier are drawn as empty circles.
func Tree2Dot[T any](tree *Tree[T], w io.Writer) error {
	var bf strings.Builder
	bf.WriteString("strict digraph {\n")
	bf.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	if !tree.IsEmpty() {
		ids := newtable[T]()
		var nodelist, edgelist strings.Builder
		tree.dotNode(tree.root, tree.height, 0, &ids, &nodelist, &edgelist)
		bf.WriteString(nodelist.String())
		bf.WriteString(edgelist.String())
	}
	bf.WriteString("}\n")
	_, err := io.WriteString(w, bf.String())
	if err != nil {
		tracer().Errorf("block tree DOT: %s", err.Error())
	}
	return err
}

func (t *Tree[T]) dotNode(n node[T], height int, first int, ids *blockids[T], nodes, edges *strings.Builder) int {
	ID := ids.alloc(n)
	if height == 0 {
		last := first + t.codec.BlockMask()
		fmt.Fprintf(nodes, "\"%d\" [label=\"%d…%d\" %s];\n", ID, first, last, blockDotStyles(true))
		return ID
	}
	inner := asIndex[T](n)
	step := t.codec.Span(height - 1)
	for i, child := range inner.children {
		if child == nil {
			nilid := ids.alloc(absentChild[T]{parent: n, slot: i})
			fmt.Fprintf(nodes, "\"%d\" %s;\n", nilid, emptyBlock())
			fmt.Fprintf(edges, "\"%d\" -> \"%d\";\n", ID, nilid)
			continue
		}
		childID := t.dotNode(child, height-1, first+i*step, ids, nodes, edges)
		fmt.Fprintf(edges, "\"%d\" -> \"%d\";\n", ID, childID)
	}
	fmt.Fprintf(nodes, "\"%d\" [label=%d %s];\n", ID, inner.n, blockDotStyles(false))
	return ID
}

func emptyBlock() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"
}

func blockDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}
