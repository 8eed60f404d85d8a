package mlvec

import "fmt"

// ConstIterator is a random-access read-only iterator over a vector.
//
// An iterator is a position within a vector. Positions 0…Len()-1 denote
// elements; Len() denotes the end position. Reverse iterators count
// positions from the back of the vector, i.e., position 0 of a reverse
// iterator is the last element.
//
// Iterators remember the leaf block of the latest dereference, so stepping
// through a vector touches the block tree once per block only. Iterators stay
// usable while the vector changes size; dereferencing a position outside the
// vector panics.
type ConstIterator[T any] struct {
	vec     *Vector[T]
	pos     int
	reverse bool
	cache   blockCache[T]
}

// Iterator is a random-access iterator which may modify elements.
type Iterator[T any] struct {
	ConstIterator[T]
}

// Begin returns an iterator positioned at the first element.
func (v *Vector[T]) Begin() *Iterator[T] {
	return &Iterator[T]{ConstIterator[T]{vec: v}}
}

// End returns an iterator positioned behind the last element.
func (v *Vector[T]) End() *Iterator[T] {
	return &Iterator[T]{ConstIterator[T]{vec: v, pos: v.Len()}}
}

// RBegin returns a reverse iterator positioned at the last element.
func (v *Vector[T]) RBegin() *Iterator[T] {
	return &Iterator[T]{ConstIterator[T]{vec: v, reverse: true}}
}

// REnd returns a reverse iterator positioned before the first element.
func (v *Vector[T]) REnd() *Iterator[T] {
	return &Iterator[T]{ConstIterator[T]{vec: v, pos: v.Len(), reverse: true}}
}

// CBegin returns a read-only iterator positioned at the first element.
func (v *Vector[T]) CBegin() *ConstIterator[T] {
	return &ConstIterator[T]{vec: v}
}

// CEnd returns a read-only iterator positioned behind the last element.
func (v *Vector[T]) CEnd() *ConstIterator[T] {
	return &ConstIterator[T]{vec: v, pos: v.Len()}
}

// CRBegin returns a read-only reverse iterator positioned at the last element.
func (v *Vector[T]) CRBegin() *ConstIterator[T] {
	return &ConstIterator[T]{vec: v, reverse: true}
}

// CREnd returns a read-only reverse iterator positioned before the first
// element.
func (v *Vector[T]) CREnd() *ConstIterator[T] {
	return &ConstIterator[T]{vec: v, pos: v.Len(), reverse: true}
}

// Next advances the iterator by one position.
func (it *ConstIterator[T]) Next() {
	it.pos++
}

// Prev moves the iterator back by one position.
func (it *ConstIterator[T]) Prev() {
	it.pos--
}

// Add advances the iterator by n positions. n may be negative.
func (it *ConstIterator[T]) Add(n int) {
	it.pos += n
}

// Sub moves the iterator back by n positions. n may be negative.
func (it *ConstIterator[T]) Sub(n int) {
	it.pos -= n
}

// Pos returns the position of the iterator, counted in iteration direction.
func (it *ConstIterator[T]) Pos() int {
	return it.pos
}

// Index returns the vector index the iterator refers to. For reverse
// iterators this is Len()-1-Pos().
func (it *ConstIterator[T]) Index() int {
	return it.physical(it.pos)
}

// Valid returns true if the iterator refers to an element.
func (it *ConstIterator[T]) Valid() bool {
	return it.vec != nil && it.pos >= 0 && it.pos < it.vec.Len()
}

// Diff returns the number of steps from other to it. Both iterators have to
// belong to the same vector and have the same direction.
func (it *ConstIterator[T]) Diff(other *ConstIterator[T]) int {
	it.mustCompare(other)
	return it.pos - other.pos
}

// Equal returns true if both iterators are at the same position.
func (it *ConstIterator[T]) Equal(other *ConstIterator[T]) bool {
	return it.Diff(other) == 0
}

// Less returns true if it is positioned before other.
func (it *ConstIterator[T]) Less(other *ConstIterator[T]) bool {
	return it.Diff(other) < 0
}

// LessEq returns true if it is not positioned after other.
func (it *ConstIterator[T]) LessEq(other *ConstIterator[T]) bool {
	return it.Diff(other) <= 0
}

// Greater returns true if it is positioned after other.
func (it *ConstIterator[T]) Greater(other *ConstIterator[T]) bool {
	return it.Diff(other) > 0
}

// GreaterEq returns true if it is not positioned before other.
func (it *ConstIterator[T]) GreaterEq(other *ConstIterator[T]) bool {
	return it.Diff(other) >= 0
}

// Get returns the element at the iterator's position. It panics if the
// iterator is not valid.
func (it *ConstIterator[T]) Get() T {
	return *it.addr(it.pos)
}

// At returns the element n positions ahead of the iterator, without moving
// it. It panics if there is no element at that position.
func (it *ConstIterator[T]) At(n int) T {
	return *it.addr(it.pos + n)
}

func (it *ConstIterator[T]) physical(pos int) int {
	if it.reverse {
		return it.vec.Len() - 1 - pos
	}
	return pos
}

func (it *ConstIterator[T]) addr(pos int) *T {
	if it.vec == nil || pos < 0 || pos >= it.vec.Len() {
		panic(fmt.Sprintf("mlvec: iterator position %d out of range", pos))
	}
	return it.cache.lookup(it.vec, it.physical(pos))
}

func (it *ConstIterator[T]) mustCompare(other *ConstIterator[T]) {
	assert(other != nil && it.vec == other.vec && it.reverse == other.reverse,
		"iterators of different vectors or directions are not comparable")
}

// Const returns the read-only part of a mutable iterator, e.g., for
// comparisons.
func (it *Iterator[T]) Const() *ConstIterator[T] {
	return &it.ConstIterator
}

// Ptr returns the address of the element at the iterator's position. It
// panics if the iterator is not valid.
func (it *Iterator[T]) Ptr() *T {
	return it.addr(it.pos)
}

// Set overwrites the element at the iterator's position. It panics if the
// iterator is not valid.
func (it *Iterator[T]) Set(value T) {
	*it.addr(it.pos) = value
}
