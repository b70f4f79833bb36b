package value

// List helpers over heap-allocated pair chains. A proper list is a
// chain of pairs terminated by Nil; everything else with a non-Nil tail
// is improper.

// List builds a proper list of the given items
func (h *Heap) List(items ...Value) Value {
	result := Nil
	for i := len(items) - 1; i >= 0; i-- {
		result = h.Cons(items[i], result)
	}
	return result
}

// IsList reports whether v is a proper list (Nil counts)
func (h *Heap) IsList(v Value) bool {
	for !v.IsNil() {
		if !v.IsPair() {
			return false
		}
		v = h.Cdr(v)
	}
	return true
}

// Length returns the number of pairs in the spine of a list
func (h *Heap) Length(list Value) int {
	n := 0
	for list.IsPair() {
		n++
		list = h.Cdr(list)
	}
	return n
}

// ListGet returns the k-th element of a list
func (h *Heap) ListGet(list Value, k int) Value {
	for ; k > 0; k-- {
		list = h.Cdr(list)
	}
	return h.Car(list)
}

// ListSet overwrites the k-th element of a list
func (h *Heap) ListSet(list Value, k int, v Value) {
	for ; k > 0; k-- {
		list = h.Cdr(list)
	}
	h.SetCar(list, v)
}

// ReverseInPlace reverses a list destructively, reusing its cells, and
// returns the new head.
func (h *Heap) ReverseInPlace(list Value) Value {
	tail := Nil
	for !list.IsNil() {
		next := h.Cdr(list)
		h.SetCdr(list, tail)
		tail = list
		list = next
	}
	return tail
}

// CopyList returns a shallow copy of a proper list: fresh spine, shared
// elements.
func (h *Heap) CopyList(list Value) Value {
	if list.IsNil() {
		return Nil
	}
	result := h.Cons(h.Car(list), Nil)
	cursor := result
	for list = h.Cdr(list); !list.IsNil(); list = h.Cdr(list) {
		next := h.Cons(h.Car(list), Nil)
		h.SetCdr(cursor, next)
		cursor = next
	}
	return result
}
