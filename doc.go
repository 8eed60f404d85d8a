/*
Package mlvec implements a multilevel vector: a sequence container which stores
its elements in a tree of fixed-size blocks.

# Multilevel Vectors

A Go slice keeps its elements in one contiguous array. Appending beyond the
capacity of that array allocates a larger one and copies every element over,
which invalidates pointers into the old array and makes single appends
occasionally very expensive for large slices.

A multilevel vector never copies. Elements live in leaf blocks of B = 2^Exp
slots, leaf blocks hang below index blocks of B children, and the tree grows by
adding blocks at its tail and, once full, by putting the root below a new
root. Consequences are:

1. Pointers to elements (see `Vector.Index`) stay valid while the vector
grows, until the element itself is removed.

2. PushBack and PopBack are O(1) amortized; no operation ever moves elements.

3. Random access is O(log_B n) by decomposing an index into base-B digits,
one digit per tree level. Iterators cache the current leaf block, making
sequential access amortized O(1).

Vectors grow and shrink at the tail only. They are not safe for concurrent
use. The block tree itself is implemented in package blocktree.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–26, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package mlvec

import (
	"github.com/npillmayer/mlvec/blocktree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// VectorError is an error type for the mlvec module
type VectorError string

func (e VectorError) Error() string {
	return string(e)
}

// ErrIllegalArguments is flagged whenever function parameters are invalid,
// e.g. negative element counts.
const ErrIllegalArguments = VectorError("illegal arguments")

// Errors of the underlying block tree, re-exported for clients which do not
// want to import package blocktree. Use errors.Is to test for them.
var (
	ErrInvalidConfig     = blocktree.ErrInvalidConfig
	ErrOutOfRange        = blocktree.ErrOutOfRange
	ErrCapacityExceeded  = blocktree.ErrCapacityExceeded
	ErrAllocationFailure = blocktree.ErrAllocationFailure
	ErrCorrupted         = blocktree.ErrCorrupted
)

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
