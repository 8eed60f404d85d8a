package blocktree

import "testing"

func TestPoolRecyclesZeroedBlocks(t *testing.T) {
	pool := NewPool[int](2, 8)
	tree, err := New(Config[int]{Exp: 2, Pool: pool})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tree.GrowBy(3); err != nil {
		t.Fatalf("grow failed: %v", err)
	}
	for i := range tree.Capacity() {
		*tree.Addr(i) = i + 100
	}
	if err := tree.ShrinkBy(2); err != nil {
		t.Fatalf("shrink failed: %v", err)
	}
	leaves, indices := pool.Len()
	if leaves != 2 || indices != 1 {
		t.Fatalf("expected 2 leaf + 1 index block in pool, got %d + %d", leaves, indices)
	}
	if err := tree.GrowBy(2); err != nil {
		t.Fatalf("grow failed: %v", err)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("tree invariants violated: %v", err)
	}
	leaves, indices = pool.Len()
	if leaves != 0 || indices != 0 {
		t.Fatalf("expected pool to be drained, got %d + %d", leaves, indices)
	}
	for i := 4; i < tree.Capacity(); i++ {
		if v := *tree.Addr(i); v != 0 {
			t.Fatalf("recycled slot %d not zeroed: %d", i, v)
		}
	}
	for i := range 4 {
		if v := *tree.Addr(i); v != i+100 {
			t.Fatalf("slot %d changed to %d", i, v)
		}
	}
}

func TestPoolDiscardsBeyondSize(t *testing.T) {
	pool := NewPool[int](1, 2)
	tree, err := New(Config[int]{Exp: 1, Pool: pool})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tree.GrowBy(8); err != nil {
		t.Fatalf("grow failed: %v", err)
	}
	tree.Destroy()
	leaves, indices := pool.Len()
	if leaves != 2 || indices != 2 {
		t.Fatalf("expected pool to be capped at 2 per variant, got %d + %d", leaves, indices)
	}
}

func TestPoolSharedBetweenTrees(t *testing.T) {
	pool := NewPool[string](3, 16)
	a, err := New(Config[string]{Exp: 3, Pool: pool})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := New(Config[string]{Exp: 3, Pool: pool})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.GrowBy(1); err != nil {
		t.Fatalf("grow failed: %v", err)
	}
	*a.Addr(0) = "from a"
	a.Destroy()
	if err := b.GrowBy(1); err != nil {
		t.Fatalf("grow failed: %v", err)
	}
	if *b.Addr(0) != "" {
		t.Fatalf("block handed over between trees was not cleared")
	}
	if leaves, _ := pool.Len(); leaves != 0 {
		t.Fatalf("expected leaf block to be reused, pool holds %d", leaves)
	}
}
