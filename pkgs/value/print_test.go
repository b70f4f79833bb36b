package value

import (
	"strings"
	"testing"
)

func TestPrintForms(t *testing.T) {
	h := NewHeap()
	in := NewInterner()

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"nil", Nil, "NIL"},
		{"integer", Int(42), "42"},
		{"negative integer", Int(-7), "-7"},
		{"symbol", in.Intern("FOO"), "FOO"},
		{"pair", h.Cons(Int(1), Int(2)), "(1 . 2)"},
		{"proper list", h.List(Int(1), Int(2), Int(3)), "(1 2 3)"},
		{"improper list", h.Cons(Int(1), h.Cons(Int(2), Int(3))), "(1 2 . 3)"},
		{"nested", h.List(in.Intern("A"), h.List(in.Intern("B")), Int(3)), "(A (B) 3)"},
		{"list of nil", h.List(Nil), "(NIL)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Print(tt.v); got != tt.want {
				t.Errorf("Print = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintOpaqueTags(t *testing.T) {
	h := NewHeap()
	in := NewInterner()

	b := NewBuiltin("CAR", func(h *Heap, args Value) (Value, error) { return Nil, nil })
	if got := h.Print(b); got != "#<BUILTIN CAR>" {
		t.Errorf("builtin prints %q", got)
	}

	params := h.List(in.Intern("X"))
	body := h.List(h.List(in.Intern("*"), in.Intern("X"), in.Intern("X")))
	closure := h.NewClosure(Nil, params, body)

	got := h.Print(closure)
	if !strings.HasPrefix(got, "#<CLOSURE ") {
		t.Errorf("closure prints %q", got)
	}
	if !strings.Contains(got, "(X)") || !strings.Contains(got, "(* X X)") {
		t.Errorf("closure print should show params and body, got %q", got)
	}

	macro := h.NewMacro(Nil, params, body)
	if !strings.HasPrefix(h.Print(macro), "#<MACRO ") {
		t.Errorf("macro prints %q", h.Print(macro))
	}
}
