package value

// Interner is a symbol table, one per interpreter: it maps each name to its
// canonical Symbol so that symbols with the same name share storage and
// compare equal by pointer. Symbols live for the lifetime of the
// interner; they are never collected.
type Interner struct {
	syms map[string]*Symbol
}

// NewInterner returns an empty symbol table
func NewInterner() *Interner {
	return &Interner{syms: make(map[string]*Symbol)}
}

// Intern returns the canonical symbol value for name, creating it on
// first use.
func (in *Interner) Intern(name string) Value {
	if s, ok := in.syms[name]; ok {
		return Sym(s)
	}
	s := &Symbol{Name: name}
	in.syms[name] = s
	return Sym(s)
}

// Len returns the number of interned symbols
func (in *Interner) Len() int {
	return len(in.syms)
}
