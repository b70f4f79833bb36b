package value

import "testing"

func TestCollectFreesUnreachable(t *testing.T) {
	h := NewHeap()
	kept := h.List(Int(1), Int(2))
	h.List(Int(3), Int(4), Int(5))

	if h.Live() != 5 {
		t.Fatalf("Live = %d, want 5", h.Live())
	}

	h.Collect(kept)

	if h.Live() != 2 {
		t.Errorf("Live after collect = %d, want 2", h.Live())
	}
	if h.Freed() != 3 {
		t.Errorf("Freed = %d, want 3", h.Freed())
	}
	if h.Collections() != 1 {
		t.Errorf("Collections = %d, want 1", h.Collections())
	}
	if got := h.Print(kept); got != "(1 2)" {
		t.Errorf("rooted value prints %s after collect, want (1 2)", got)
	}
}

func TestCollectWithNoRootsFreesEverything(t *testing.T) {
	h := NewHeap()
	h.List(Int(1), Int(2), Int(3))
	h.Collect()
	if h.Live() != 0 {
		t.Errorf("Live = %d, want 0", h.Live())
	}
}

func TestFreedCellsAreReused(t *testing.T) {
	h := NewHeap()
	h.Cons(Int(1), Nil)
	h.Collect()

	before := len(h.cells)
	h.Cons(Int(2), Nil)
	if len(h.cells) != before {
		t.Errorf("allocation after sweep should reuse a free cell: arena grew %d -> %d", before, len(h.cells))
	}
	if h.Live() != 1 {
		t.Errorf("Live = %d, want 1", h.Live())
	}
}

func TestMarkSurvivesCycles(t *testing.T) {
	h := NewHeap()
	a := h.Cons(Nil, Nil)
	b := h.Cons(a, Nil)
	h.SetCar(a, b)
	h.SetCdr(a, a)

	// must terminate
	h.Collect(a)

	if h.Live() != 2 {
		t.Errorf("Live = %d, want 2", h.Live())
	}
	if !Eq(h.Cdr(a), a) {
		t.Error("cycle edge lost after collection")
	}
}

func TestMarkDeepListIteratively(t *testing.T) {
	h := NewHeap()
	list := Nil
	for i := 0; i < 200000; i++ {
		list = h.Cons(Int(int64(i)), list)
	}
	h.Collect(list)
	if h.Live() != 200000 {
		t.Errorf("Live = %d, want 200000", h.Live())
	}
}

func TestClosureCellsAreCollected(t *testing.T) {
	h := NewHeap()
	closure := h.NewClosure(Nil, Nil, h.Cons(Int(1), Nil))

	h.Collect(closure)
	if h.Live() != 3 {
		t.Errorf("Live with closure rooted = %d, want 3", h.Live())
	}

	h.Collect()
	if h.Live() != 0 {
		t.Errorf("Live after dropping closure = %d, want 0", h.Live())
	}
}

func TestMarksClearedBetweenCollections(t *testing.T) {
	h := NewHeap()
	kept := h.Cons(Int(1), Nil)
	h.Collect(kept)
	// a second collection with no roots must free the survivor
	h.Collect()
	if h.Live() != 0 {
		t.Errorf("Live = %d, want 0: mark bit not cleared on survivor", h.Live())
	}
}
