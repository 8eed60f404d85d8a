package blocktree

import (
	"math/rand"
	"testing"
)

// How to run:
//   - Deterministic randomized property test:
//     go test ./blocktree -run TestRandomizedGrowShrink -count=1
//   - Fuzz test:
//     go test ./blocktree -run '^$' -fuzz FuzzGrowShrink -fuzztime=10s

// runGrowShrink applies a random sequence of growth and shrink operations and
// checks tree invariants plus slot contents after each step. Every slot holds
// index+1, written as soon as its block appears.
func runGrowShrink(t *testing.T, exp uint8, seed int64, steps int) {
	t.Helper()
	tree := makeIntTree(t, exp)
	r := rand.New(rand.NewSource(seed))
	for step := range steps {
		before := tree.Capacity()
		switch op := r.Intn(4); {
		case op == 0:
			if _, err := tree.GrowOne(); err != nil {
				t.Fatalf("step %d: grow one failed: %v", step, err)
			}
		case op == 1:
			if err := tree.GrowBy(r.Intn(12)); err != nil {
				t.Fatalf("step %d: grow failed: %v", step, err)
			}
		default:
			if tree.Leaves() == 0 {
				continue
			}
			if err := tree.ShrinkBy(r.Intn(tree.Leaves() + 1)); err != nil {
				t.Fatalf("step %d: shrink failed: %v", step, err)
			}
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("step %d: invariants violated: %v", step, err)
		}
		for i := before; i < tree.Capacity(); i++ {
			if v := *tree.Addr(i); v != 0 {
				t.Fatalf("step %d: new slot %d not zeroed: %d", step, i, v)
			}
			*tree.Addr(i) = i + 1
		}
		for i := range tree.Capacity() {
			if v := *tree.Addr(i); v != i+1 {
				t.Fatalf("step %d: slot %d holds %d", step, i, v)
			}
		}
		if c := tree.Capacity(); c > 0 && tree.Height() > 0 && c <= tree.Codec().Span(tree.Height()-1) {
			t.Fatalf("step %d: height %d too large for capacity %d", step, tree.Height(), c)
		}
	}
	tree.Destroy()
	if tree.LiveBlocks() != 0 {
		t.Fatalf("destroy leaked %d blocks", tree.LiveBlocks())
	}
}

func TestRandomizedGrowShrink(t *testing.T) {
	for _, exp := range []uint8{1, 2, 3, 4} {
		for seed := range int64(8) {
			runGrowShrink(t, exp, seed, 200)
		}
	}
}

func FuzzGrowShrink(f *testing.F) {
	f.Add(uint8(1), int64(1))
	f.Add(uint8(2), int64(42))
	f.Add(uint8(3), int64(7))
	f.Fuzz(func(t *testing.T, exp uint8, seed int64) {
		exp = exp%5 + 1
		runGrowShrink(t, exp, seed, 100)
	})
}
