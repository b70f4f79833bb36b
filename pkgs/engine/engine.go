package engine

import (
	"github.com/aledsdavies/parens/pkgs/parser"
	"github.com/aledsdavies/parens/pkgs/stdlib"
	"github.com/aledsdavies/parens/pkgs/value"
)

// Interp is the interpreter context: it owns the pair heap, the symbol
// table, the root environment, and the evaluator's GC bookkeeping.
// Nothing lives in package-level state, so independent interpreters do
// not share anything.
//
// An Interp is single-threaded; all state transitions are sequenced by
// the evaluator loop.
type Interp struct {
	heap   *value.Heap
	syms   *value.Interner
	reader *parser.Parser
	global value.Value

	gcThreshold int
	gcCounter   int

	// pinned values survive collections in addition to the evaluator
	// roots; EvalSource uses it to keep not-yet-evaluated forms and
	// already-produced results alive.
	pinned []value.Value

	// special-form symbols, interned once
	symQuote    *value.Symbol
	symIf       *value.Symbol
	symLambda   *value.Symbol
	symDefine   *value.Symbol
	symDefmacro *value.Symbol
	symApply    *value.Symbol
	symGC       *value.Symbol

	truthSym value.Value
	applyBI  *value.Builtin
}

type config struct {
	gcThreshold int
	stdlib      bool
}

// Option configures an Interp
type Option func(*config)

// WithGCThreshold sets how many evaluator iterations run between
// automatic collections.
func WithGCThreshold(n int) Option {
	return func(c *config) {
		c.gcThreshold = n
	}
}

// WithoutStdlib skips loading the bootstrap library, leaving only the
// builtins (with 2-ary arithmetic) and T in the root environment.
func WithoutStdlib() Option {
	return func(c *config) {
		c.stdlib = false
	}
}

// New creates an interpreter with the builtins bound in a fresh root
// environment and, unless disabled, the bootstrap library loaded.
func New(opts ...Option) (*Interp, error) {
	cfg := &config{
		gcThreshold: defaultGCThreshold,
		stdlib:      true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	heap := value.NewHeap()
	syms := value.NewInterner()
	ip := &Interp{
		heap:        heap,
		syms:        syms,
		reader:      parser.New(heap, syms),
		gcThreshold: cfg.gcThreshold,
	}
	ip.global = ip.envCreate(value.Nil)

	ip.symQuote = syms.Intern("QUOTE").Symbol()
	ip.symIf = syms.Intern("IF").Symbol()
	ip.symLambda = syms.Intern("LAMBDA").Symbol()
	ip.symDefine = syms.Intern("DEFINE").Symbol()
	ip.symDefmacro = syms.Intern("DEFMACRO").Symbol()
	ip.symApply = syms.Intern("APPLY").Symbol()
	ip.symGC = syms.Intern("GC").Symbol()

	ip.registerBuiltins()

	if cfg.stdlib {
		if _, err := ip.EvalSource(stdlib.Source); err != nil {
			return nil, err
		}
	}
	return ip, nil
}

// Heap exposes the pair heap, mainly for its counters
func (ip *Interp) Heap() *value.Heap {
	return ip.heap
}

// Global returns the root environment
func (ip *Interp) Global() value.Value {
	return ip.global
}

// ReadAll parses every top-level form in src
func (ip *Interp) ReadAll(src string) ([]value.Value, error) {
	return ip.reader.ReadAll(src)
}

// Print renders a value in its textual form
func (ip *Interp) Print(v value.Value) string {
	return ip.heap.Print(v)
}

// Eval evaluates one expression in the root environment. A collection
// runs when it returns, whether or not evaluation succeeded; only the
// result, the environments, and pinned values survive it, so callers
// holding other pair-backed values across calls must re-derive them
// from a binding.
func (ip *Interp) Eval(expr value.Value) (value.Value, error) {
	result, err := ip.run(expr, ip.global)
	ip.collect(result)
	return result, err
}

// EvalSource reads and evaluates every top-level form in src, returning
// one result per form. On error the results so far are returned with
// the error.
func (ip *Interp) EvalSource(src string) ([]value.Value, error) {
	forms, err := ip.ReadAll(src)
	if err != nil {
		return nil, err
	}
	base := len(ip.pinned)
	defer func() {
		ip.pinned = ip.pinned[:base]
	}()
	ip.pinned = append(ip.pinned, forms...)

	results := make([]value.Value, 0, len(forms))
	for _, form := range forms {
		result, err := ip.Eval(form)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		ip.pinned = append(ip.pinned, result)
	}
	return results, nil
}

// collect runs a collection rooted at the global environment, the
// pinned values, and any extras the evaluator is holding.
func (ip *Interp) collect(extras ...value.Value) {
	roots := make([]value.Value, 0, 1+len(ip.pinned)+len(extras))
	roots = append(roots, ip.global)
	roots = append(roots, ip.pinned...)
	roots = append(roots, extras...)
	ip.heap.Collect(roots...)
}

// truth maps a Go bool onto the canonical truth symbol or Nil
func (ip *Interp) truth(b bool) value.Value {
	if b {
		return ip.truthSym
	}
	return value.Nil
}
