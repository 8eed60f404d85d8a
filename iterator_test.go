package mlvec

import "testing"

func TestIteratorForward(t *testing.T) {
	v := makeIntVector(t, 2)
	pushRange(t, v, 0, 13)
	sum := 0
	for it := v.CBegin(); !it.Equal(v.CEnd()); it.Next() {
		if it.Get() != it.Pos() || it.Index() != it.Pos() {
			t.Fatalf("iterator at %d yields %d", it.Pos(), it.Get())
		}
		sum += it.Get()
	}
	if sum != 78 {
		t.Errorf("expected sum 78, have %d", sum)
	}
	if d := v.CEnd().Diff(v.CBegin()); d != 13 {
		t.Errorf("expected end-begin = 13, have %d", d)
	}
}

func TestIteratorReverse(t *testing.T) {
	v := makeIntVector(t, 2)
	pushRange(t, v, 0, 9)
	want := 8
	for it := v.CRBegin(); it.Valid(); it.Next() {
		if x := it.Get(); x != want || it.Index() != want {
			t.Fatalf("reverse iterator at %d yields %d, expected %d", it.Pos(), x, want)
		}
		want--
	}
	if want != -1 {
		t.Errorf("reverse iteration stopped early at %d", want)
	}
	it := v.RBegin()
	it.Add(3)
	if it.Get() != 5 || it.At(2) != 3 || it.At(-1) != 6 {
		t.Errorf("reverse random access broken: %d %d %d", it.Get(), it.At(2), it.At(-1))
	}
	if !it.Const().Less(v.REnd().Const()) || it.Const().Equal(v.RBegin().Const()) {
		t.Errorf("reverse comparisons broken")
	}
}

func TestIteratorArithmetic(t *testing.T) {
	v := makeIntVector(t, 3)
	pushRange(t, v, 0, 40)
	a, b := v.CBegin(), v.CBegin()
	a.Add(17)
	b.Add(20)
	b.Sub(1)
	b.Prev()
	if d := b.Diff(a); d != 1 {
		t.Errorf("expected diff 1, have %d", d)
	}
	if !a.Less(b) || !a.LessEq(b) || a.Greater(b) || a.GreaterEq(b) || !b.Greater(a) {
		t.Errorf("comparisons of %d and %d inconsistent", a.Pos(), b.Pos())
	}
	b.Prev()
	if !a.Equal(b) || !a.LessEq(b) || !a.GreaterEq(b) {
		t.Errorf("expected equal iterators at 17")
	}
	if a.Get() != 17 || a.At(5) != 22 {
		t.Errorf("expected 17/22, have %d/%d", a.Get(), a.At(5))
	}
}

func TestIteratorModifiesElements(t *testing.T) {
	v := makeIntVector(t, 2)
	pushRange(t, v, 0, 10)
	for it := v.Begin(); it.Valid(); it.Next() {
		it.Set(it.Get() * 10)
	}
	it := v.Begin()
	it.Add(4)
	*it.Ptr() += 1
	for i := range 10 {
		want := i * 10
		if i == 4 {
			want++
		}
		if x := *v.Index(i); x != want {
			t.Errorf("v[%d] = %d, expected %d", i, x, want)
		}
	}
}

func TestIteratorSurvivesReallocation(t *testing.T) {
	v := makeIntVector(t, 2)
	pushRange(t, v, 0, 12)
	it := v.Begin()
	it.Add(9)
	if it.Get() != 9 {
		t.Fatalf("expected 9, have %d", it.Get())
	}
	if err := v.Shrink(4); err != nil { // frees the block holding 9
		t.Fatal(err)
	}
	if it.Valid() {
		t.Errorf("iterator at 9 should be invalid for length 8")
	}
	pushRange(t, v, 100, 104)
	if x := it.Get(); x != 101 {
		t.Errorf("iterator read stale block: expected 101, have %d", x)
	}
}

func TestIteratorPanicsWhenInvalid(t *testing.T) {
	v := makeIntVector(t, 2)
	pushRange(t, v, 0, 3)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected dereferencing End() to panic")
		}
	}()
	v.End().Get()
}
