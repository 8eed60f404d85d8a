/*
Package blocktree implements the storage engine of a multilevel vector: a tree
of fixed-size blocks with branching factor B = 2^Exp.

Elements live in leaf blocks of exactly B slots. Leaf blocks hang below index
blocks of exactly B child handles, where an absent handle marks a subtree that
has not been grown yet. The tree only ever grows and shrinks at its tail:

  - growth appends leaf blocks in index order and never moves or copies a
    block which is already part of the tree,
  - shrinking frees leaf blocks backwards from the frontier,
  - addressing decomposes a linear index into base-B digits, one per level.

The tree is not a general-purpose container. It has no notion of a logical
length; clients (see package mlvec) keep track of unused trailing slots.

Current status:
  - address codec with digit decomposition and block accounting (`Codec`),
  - leaf and index block variants, dispatched by height,
  - optional block pool to recycle freed blocks between trees (`Pool`),
  - bulk growth (`GrowBy`), single-block growth (`GrowOne`), bulk shrink
    (`ShrinkBy`), postorder teardown (`Destroy`),
  - digit-descent addressing (`Addr`, `Leaf`, `Head`, `Tail`),
  - structural invariant checker (`Check`) and GraphViz export (`Tree2Dot`).

The package is not safe for concurrent use, with the exception of `Pool`.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package blocktree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
