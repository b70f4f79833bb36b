package value

// cellRef indexes a cell in the heap arena. Values reference cells by
// index rather than by pointer so that sweeping can reuse storage
// without leaving dangling Go pointers around.
type cellRef int32

const noCell cellRef = -1

// cell is one two-slot heap allocation
type cell struct {
	car  Value
	cdr  Value
	live bool
	mark bool
	next cellRef // free-list link while dead
}

// Heap is the arena every Pair, Closure, and Macro is allocated from.
// It tracks every allocation so a mark-and-sweep collection can free
// cells that are no longer reachable from the evaluator's roots.
//
// The heap is single-threaded, like the interpreter that owns it.
type Heap struct {
	cells []cell
	free  cellRef

	live        int
	allocs      uint64
	freed       uint64
	collections uint64

	worklist []cellRef // reused across collections
}

// NewHeap returns an empty heap
func NewHeap() *Heap {
	return &Heap{free: noCell}
}

func (h *Heap) alloc() cellRef {
	if h.free != noCell {
		ref := h.free
		h.free = h.cells[ref].next
		h.cells[ref] = cell{live: true, next: noCell}
		h.live++
		h.allocs++
		return ref
	}
	h.cells = append(h.cells, cell{live: true, next: noCell})
	h.live++
	h.allocs++
	return cellRef(len(h.cells) - 1)
}

// Cons allocates a new pair holding car and cdr
func (h *Heap) Cons(car, cdr Value) Value {
	ref := h.alloc()
	h.cells[ref].car = car
	h.cells[ref].cdr = cdr
	return Value{tag: PairTag, ref: ref}
}

// NewClosure allocates the pair-backed triple (env params body...) and
// tags it as a Closure. body must already be a list of body forms.
func (h *Heap) NewClosure(env, params, body Value) Value {
	v := h.Cons(env, h.Cons(params, body))
	return v.AsClosure()
}

// NewMacro allocates the same shape as NewClosure with the Macro tag
func (h *Heap) NewMacro(env, params, body Value) Value {
	v := h.Cons(env, h.Cons(params, body))
	return v.AsMacro()
}

// Car returns the head of a pair-backed value, or Nil for anything else
func (h *Heap) Car(v Value) Value {
	if !v.pairBacked() {
		return Nil
	}
	return h.cells[v.ref].car
}

// Cdr returns the tail of a pair-backed value, or Nil for anything else
func (h *Heap) Cdr(v Value) Value {
	if !v.pairBacked() {
		return Nil
	}
	return h.cells[v.ref].cdr
}

// SetCar overwrites the head slot of a pair-backed value
func (h *Heap) SetCar(v, x Value) {
	if v.pairBacked() {
		h.cells[v.ref].car = x
	}
}

// SetCdr overwrites the tail slot of a pair-backed value
func (h *Heap) SetCdr(v, x Value) {
	if v.pairBacked() {
		h.cells[v.ref].cdr = x
	}
}

// Live returns the number of live cells
func (h *Heap) Live() int {
	return h.live
}

// Allocs returns the total number of allocations ever made
func (h *Heap) Allocs() uint64 {
	return h.allocs
}

// Freed returns the total number of cells freed by collections
func (h *Heap) Freed() uint64 {
	return h.freed
}

// Collections returns how many collections have run
func (h *Heap) Collections() uint64 {
	return h.collections
}

// Collect runs a stop-the-world mark-and-sweep collection. Everything
// reachable from the given roots survives; every other live cell is
// freed and its storage recycled. Values held by the caller that are
// not covered by a root do not survive.
func (h *Heap) Collect(roots ...Value) {
	for _, r := range roots {
		h.markFrom(r)
	}
	h.sweep()
	h.collections++
}

// markFrom marks every cell reachable from v. The walk is iterative
// over an explicit worklist and tests the mark bit before pushing, so
// cyclic structures terminate and deep structures cannot overflow the
// native stack.
func (h *Heap) markFrom(v Value) {
	h.push(v)
	for len(h.worklist) > 0 {
		ref := h.worklist[len(h.worklist)-1]
		h.worklist = h.worklist[:len(h.worklist)-1]
		c := &h.cells[ref]
		h.push(c.car)
		h.push(c.cdr)
	}
}

func (h *Heap) push(v Value) {
	if !v.pairBacked() {
		return
	}
	c := &h.cells[v.ref]
	if !c.live || c.mark {
		return
	}
	c.mark = true
	h.worklist = append(h.worklist, v.ref)
}

// sweep frees unmarked cells and clears marks on survivors
func (h *Heap) sweep() {
	for i := range h.cells {
		c := &h.cells[i]
		if !c.live {
			continue
		}
		if c.mark {
			c.mark = false
			continue
		}
		c.car = Nil
		c.cdr = Nil
		c.live = false
		c.next = h.free
		h.free = cellRef(i)
		h.live--
		h.freed++
	}
}
