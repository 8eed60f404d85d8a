package mlvec

// blockCache remembers the leaf block of the most recently dereferenced
// index. It is keyed by the leaf number (index >> Exp) and by the vector's
// generation, which changes whenever blocks are added or freed.
type blockCache[T any] struct {
	slots []T
	tag   int
	gen   uint64
}

func (c *blockCache[T]) lookup(v *Vector[T], index int) *T {
	codec := v.tree.Codec()
	tag := index >> codec.Exp()
	if c.slots == nil || c.tag != tag || c.gen != v.gen {
		c.slots = v.tree.Leaf(index)
		c.tag = tag
		c.gen = v.gen
	}
	return &c.slots[index&codec.BlockMask()]
}
