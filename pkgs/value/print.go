package value

import (
	"strconv"
	"strings"
)

// Print renders a value in its s-expression textual form. Every
// printable value reads back as itself; Builtins, Closures, and Macros
// print as opaque #<...> tags. A Closure or Macro additionally shows
// its (params body...) form; the captured environment is elided because
// the ordinary self-recursive definition makes env and closure
// mutually reachable.
func (h *Heap) Print(v Value) string {
	var sb strings.Builder
	h.write(&sb, v)
	return sb.String()
}

func (h *Heap) write(sb *strings.Builder, v Value) {
	switch v.Tag() {
	case NilTag:
		sb.WriteString("NIL")
	case IntegerTag:
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case SymbolTag:
		sb.WriteString(v.Symbol().Name)
	case BuiltinTag:
		sb.WriteString("#<BUILTIN ")
		sb.WriteString(v.Builtin().Name)
		sb.WriteString(">")
	case ClosureTag, MacroTag:
		sb.WriteString("#<")
		sb.WriteString(v.Tag().String())
		sb.WriteString(" ")
		h.writePair(sb, h.Cdr(v))
		sb.WriteString(">")
	case PairTag:
		h.writePair(sb, v)
	}
}

// writePair renders (e1 e2 ... en) for proper lists and
// (e1 ... ek . t) when the tail is a non-Nil non-Pair.
func (h *Heap) writePair(sb *strings.Builder, v Value) {
	sb.WriteString("(")
	h.write(sb, h.Car(v))
	for tail := h.Cdr(v); !tail.IsNil(); {
		if tail.IsPair() {
			sb.WriteString(" ")
			h.write(sb, h.Car(tail))
			tail = h.Cdr(tail)
			continue
		}
		sb.WriteString(" . ")
		h.write(sb, tail)
		break
	}
	sb.WriteString(")")
}
