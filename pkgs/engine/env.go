package engine

import (
	"github.com/aledsdavies/parens/pkgs/errors"
	"github.com/aledsdavies/parens/pkgs/value"
)

// Environments are ordinary heap values: env = (parent . bindings),
// where bindings is a list of (symbol . value) cells. The root
// environment has parent Nil. Making environments pair-backed keeps
// them visible to the collector for free.

// envCreate returns a fresh frame chained to parent
func (ip *Interp) envCreate(parent value.Value) value.Value {
	return ip.heap.Cons(parent, value.Nil)
}

// envGet resolves sym by walking the frame's bindings, then the parent
// chain. A miss in every enclosing frame is an Unbound error.
func (ip *Interp) envGet(env, sym value.Value) (value.Value, error) {
	h := ip.heap
	for frame := env; !frame.IsNil(); frame = h.Car(frame) {
		for b := h.Cdr(frame); !b.IsNil(); b = h.Cdr(b) {
			cell := h.Car(b)
			if value.Eq(h.Car(cell), sym) {
				return h.Cdr(cell), nil
			}
		}
	}
	return value.Nil, errors.NewUnboundError(sym.Symbol().Name)
}

// envSet updates the nearest enclosing binding for sym anywhere on the
// chain; if no frame binds it, a new binding is created in env itself.
func (ip *Interp) envSet(env, sym, v value.Value) {
	h := ip.heap
	for frame := env; !frame.IsNil(); frame = h.Car(frame) {
		for b := h.Cdr(frame); !b.IsNil(); b = h.Cdr(b) {
			cell := h.Car(b)
			if value.Eq(h.Car(cell), sym) {
				h.SetCdr(cell, v)
				return
			}
		}
	}
	ip.envBindLocal(env, sym, v)
}

// envBindLocal binds sym in env's own frame, ignoring the parent
// chain. Parameter binding uses this so a parameter named like an
// outer variable shadows it instead of rebinding it.
func (ip *Interp) envBindLocal(env, sym, v value.Value) {
	h := ip.heap
	for b := h.Cdr(env); !b.IsNil(); b = h.Cdr(b) {
		cell := h.Car(b)
		if value.Eq(h.Car(cell), sym) {
			h.SetCdr(cell, v)
			return
		}
	}
	cell := h.Cons(sym, v)
	h.SetCdr(env, h.Cons(cell, h.Cdr(env)))
}
