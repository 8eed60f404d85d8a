package blocktree

import "fmt"

// Check validates structural tree invariants.
//
// This checker is intentionally strict and walks the whole tree; it is meant
// for tests and diagnostics.
func (t *Tree[T]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrCorrupted)
	}
	if t.root == nil {
		if t.height != 0 || t.peek != 0 || t.live != 0 {
			return fmt.Errorf("%w: empty tree must have height=0, peek=0, no blocks (%d, %d, %d)",
				ErrCorrupted, t.height, t.peek, t.live)
		}
		return nil
	}
	capacity := t.Capacity()
	if capacity&t.codec.BlockMask() != 0 {
		return fmt.Errorf("%w: capacity %d is not a multiple of %d",
			ErrCorrupted, capacity, t.codec.BlockSize())
	}
	if capacity > t.codec.Span(t.height) {
		return fmt.Errorf("%w: capacity %d exceeds span %d of height %d",
			ErrCorrupted, capacity, t.codec.Span(t.height), t.height)
	}
	if t.height > 0 && capacity <= t.codec.Span(t.height-1) {
		return fmt.Errorf("%w: height %d is not minimal for capacity %d",
			ErrCorrupted, t.height, capacity)
	}
	leaves, blocks, err := t.checkNode(t.root, t.height, 0)
	if err != nil {
		return err
	}
	if leaves != t.Leaves() {
		return fmt.Errorf("%w: leaf count mismatch (%d != %d)", ErrCorrupted, leaves, t.Leaves())
	}
	if blocks != t.live {
		return fmt.Errorf("%w: live block mismatch (%d reachable, %d accounted)",
			ErrCorrupted, blocks, t.live)
	}
	if want := t.codec.BlocksFor(leaves); blocks != want {
		return fmt.Errorf("%w: %d blocks for %d leaves, expected %d", ErrCorrupted, blocks, leaves, want)
	}
	return nil
}

// checkNode validates the subtree n of the given height, whose first slot
// has index first. It returns the number of leaf blocks and of all blocks.
func (t *Tree[T]) checkNode(n node[T], height int, first int) (leaves int, blocks int, err error) {
	if n == nil {
		return 0, 0, fmt.Errorf("%w: nil block at %d", ErrCorrupted, first)
	}
	if first > t.peek {
		return 0, 0, fmt.Errorf("%w: block at %d beyond frontier %d", ErrCorrupted, first, t.peek)
	}
	if height == 0 {
		leaf, ok := n.(*leafBlock[T])
		if !ok {
			return 0, 0, fmt.Errorf("%w: index block at leaf level (%d)", ErrCorrupted, first)
		}
		if len(leaf.slots) != t.codec.BlockSize() {
			return 0, 0, fmt.Errorf("%w: leaf block at %d has %d slots", ErrCorrupted, first, len(leaf.slots))
		}
		return 1, 1, nil
	}
	inner, ok := n.(*indexBlock[T])
	if !ok {
		return 0, 0, fmt.Errorf("%w: leaf block at height %d (%d)", ErrCorrupted, height, first)
	}
	if len(inner.children) != t.codec.BlockSize() {
		return 0, 0, fmt.Errorf("%w: index block at %d has %d children",
			ErrCorrupted, first, len(inner.children))
	}
	if inner.n == 0 {
		return 0, 0, fmt.Errorf("%w: empty index block at %d", ErrCorrupted, first)
	}
	step := t.codec.Span(height - 1)
	blocks = 1
	for i, child := range inner.children {
		if i >= inner.n {
			if child != nil {
				return 0, 0, fmt.Errorf("%w: child %d present beyond live count %d at %d",
					ErrCorrupted, i, inner.n, first)
			}
			continue
		}
		cLeaves, cBlocks, cErr := t.checkNode(child, height-1, first+i*step)
		if cErr != nil {
			return 0, 0, cErr
		}
		if i < inner.n-1 && cLeaves != step>>t.codec.exp {
			return 0, 0, fmt.Errorf("%w: subtree at %d is not fully populated", ErrCorrupted, first+i*step)
		}
		leaves += cLeaves
		blocks += cBlocks
	}
	return leaves, blocks, nil
}
