package blocktree

import (
	"regexp"
	"strings"
	"testing"
)

func TestTree2Dot(t *testing.T) {
	tree := makeIntTree(t, 2)
	if err := tree.GrowBy(3); err != nil {
		t.Fatalf("grow failed: %v", err)
	}
	var bf strings.Builder
	if err := Tree2Dot(tree, &bf); err != nil {
		t.Fatalf("DOT export failed: %v", err)
	}
	dot := bf.String()
	if !strings.HasPrefix(dot, "strict digraph {") {
		t.Fatalf("unexpected DOT header: %q", dot)
	}
	if n := strings.Count(dot, "->"); n != 4 {
		t.Fatalf("expected 3 leaf edges + 1 absent child, got %d edges:\n%s", n, dot)
	}
	if !strings.Contains(dot, "8…11") {
		t.Fatalf("expected label of last leaf block:\n%s", dot)
	}
}

func TestTree2DotEmpty(t *testing.T) {
	tree := makeIntTree(t, 2)
	var bf strings.Builder
	if err := Tree2Dot(tree, &bf); err != nil {
		t.Fatalf("DOT export failed: %v", err)
	}
	if strings.Contains(bf.String(), "->") {
		t.Fatalf("expected no edges for empty tree")
	}
}

func TestTree2DotNodeIDsAreUnique(t *testing.T) {
	tree := makeIntTree(t, 1)
	if err := tree.GrowBy(1237); err != nil {
		t.Fatalf("grow failed: %v", err)
	}
	var bf strings.Builder
	if err := Tree2Dot(tree, &bf); err != nil {
		t.Fatalf("DOT export failed: %v", err)
	}
	declared := make(map[string]bool)
	absent := 0
	for _, m := range regexp.MustCompile(`(?m)^"(\d+)" \[(.*)$`).FindAllStringSubmatch(bf.String(), -1) {
		if declared[m[1]] {
			t.Fatalf("node %s declared twice", m[1])
		}
		declared[m[1]] = true
		if strings.HasPrefix(m[2], `label=""`) {
			absent++
		}
	}
	if absent == 0 {
		t.Fatalf("expected absent children for a partially filled tree")
	}
	if n := len(declared) - absent; n != tree.LiveBlocks() {
		t.Fatalf("expected %d block nodes, have %d", tree.LiveBlocks(), n)
	}
	for _, m := range regexp.MustCompile(`"(\d+)" -> "(\d+)";`).FindAllStringSubmatch(bf.String(), -1) {
		if !declared[m[1]] || !declared[m[2]] {
			t.Fatalf("edge %s -> %s to undeclared node", m[1], m[2])
		}
	}
}
