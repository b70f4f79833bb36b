package value

import "fmt"

// Tag discriminates the variants of Value
type Tag uint8

const (
	NilTag Tag = iota
	PairTag
	SymbolTag
	IntegerTag
	BuiltinTag
	ClosureTag
	MacroTag
)

var tagNames = [...]string{
	NilTag:     "NIL",
	PairTag:    "PAIR",
	SymbolTag:  "SYMBOL",
	IntegerTag: "INTEGER",
	BuiltinTag: "BUILTIN",
	ClosureTag: "CLOSURE",
	MacroTag:   "MACRO",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// Symbol is the canonical storage for one interned name. Two Value
// instances carrying the same name share the same *Symbol, so symbol
// equality is pointer equality.
type Symbol struct {
	Name string
}

// BuiltinFunc is the signature of a native function. It receives the
// already-evaluated argument list and produces a result or an error.
type BuiltinFunc func(h *Heap, args Value) (Value, error)

// Builtin pairs a native function with a name for printing
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

// Value is a tagged union over every variant the interpreter handles.
// The zero Value is Nil. Pair, Closure, and Macro values share the pair
// payload: a Closure or Macro is physically a heap pair carrying a
// different tag. That aliasing stays behind the Heap constructors and
// the AsClosure/AsMacro views.
type Value struct {
	tag Tag
	num int64
	sym *Symbol
	fn  *Builtin
	ref cellRef
}

// Nil is the canonical empty value; it is also the only false value.
var Nil = Value{}

// Int returns an Integer value
func Int(n int64) Value {
	return Value{tag: IntegerTag, num: n}
}

// Sym wraps an interned symbol as a value
func Sym(s *Symbol) Value {
	return Value{tag: SymbolTag, sym: s}
}

// NewBuiltin returns a Builtin value wrapping a native function
func NewBuiltin(name string, fn BuiltinFunc) Value {
	return Value{tag: BuiltinTag, fn: &Builtin{Name: name, Fn: fn}}
}

// Tag returns the variant tag
func (v Value) Tag() Tag {
	return v.tag
}

// IsNil reports whether the value is Nil
func (v Value) IsNil() bool {
	return v.tag == NilTag
}

// IsPair reports whether the value is tagged Pair. Closures and Macros
// are pair-backed but do not count as pairs.
func (v Value) IsPair() bool {
	return v.tag == PairTag
}

// pairBacked reports whether the payload is a heap cell
func (v Value) pairBacked() bool {
	return v.tag == PairTag || v.tag == ClosureTag || v.tag == MacroTag
}

// Truthy reports the truth convention: only Nil is false
func (v Value) Truthy() bool {
	return v.tag != NilTag
}

// Int returns the Integer payload
func (v Value) Int() int64 {
	return v.num
}

// Symbol returns the Symbol payload
func (v Value) Symbol() *Symbol {
	return v.sym
}

// Builtin returns the Builtin payload
func (v Value) Builtin() *Builtin {
	return v.fn
}

// AsClosure returns a Closure-tagged view of a pair-backed value. The
// evaluator uses this to run a Macro's body with closure semantics.
func (v Value) AsClosure() Value {
	v.tag = ClosureTag
	return v
}

// AsMacro returns a Macro-tagged view of a pair-backed value
func (v Value) AsMacro() Value {
	v.tag = MacroTag
	return v
}

// Eq implements identity equality: tags must match and payloads must be
// identical. Nil equals Nil, Integers compare by value, Symbols and
// Builtins by pointer, and pair-backed values by heap cell.
func Eq(a, b Value) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case NilTag:
		return true
	case IntegerTag:
		return a.num == b.num
	case SymbolTag:
		return a.sym == b.sym
	case BuiltinTag:
		return a.fn == b.fn
	default:
		return a.ref == b.ref
	}
}
