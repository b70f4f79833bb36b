package engine

import (
	"github.com/aledsdavies/parens/pkgs/errors"
	"github.com/aledsdavies/parens/pkgs/value"
)

// registerBuiltins binds the native functions and the truth symbol into
// the root environment. All names are uppercase, matching what the
// reader produces.
func (ip *Interp) registerBuiltins() {
	// T is the canonical truth value, bound to itself
	ip.truthSym = ip.syms.Intern("T")
	ip.envSet(ip.global, ip.truthSym, ip.truthSym)

	bind := func(name string, fn value.BuiltinFunc) value.Value {
		v := value.NewBuiltin(name, fn)
		ip.envSet(ip.global, ip.syms.Intern(name), v)
		return v
	}

	bind("CAR", func(h *value.Heap, args value.Value) (value.Value, error) {
		arg, err := oneArg("CAR", ip.heap, args)
		if err != nil {
			return value.Nil, err
		}
		return pairSlot("CAR", ip.heap, arg, ip.heap.Car)
	})

	bind("CDR", func(h *value.Heap, args value.Value) (value.Value, error) {
		arg, err := oneArg("CDR", ip.heap, args)
		if err != nil {
			return value.Nil, err
		}
		return pairSlot("CDR", ip.heap, arg, ip.heap.Cdr)
	})

	bind("CONS", func(h *value.Heap, args value.Value) (value.Value, error) {
		a, b, err := twoArgs("CONS", ip.heap, args)
		if err != nil {
			return value.Nil, err
		}
		return ip.heap.Cons(a, b), nil
	})

	bind("PAIR?", func(h *value.Heap, args value.Value) (value.Value, error) {
		arg, err := oneArg("PAIR?", ip.heap, args)
		if err != nil {
			return value.Nil, err
		}
		return ip.truth(arg.IsPair()), nil
	})

	bind("EQ?", func(h *value.Heap, args value.Value) (value.Value, error) {
		a, b, err := twoArgs("EQ?", ip.heap, args)
		if err != nil {
			return value.Nil, err
		}
		return ip.truth(value.Eq(a, b)), nil
	})

	ip.arith(bind, "+", func(a, b int64) (int64, error) { return a + b, nil })
	ip.arith(bind, "-", func(a, b int64) (int64, error) { return a - b, nil })
	ip.arith(bind, "*", func(a, b int64) (int64, error) { return a * b, nil })
	ip.arith(bind, "/", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errors.NewTypeError("/: division by zero")
		}
		return a / b, nil
	})

	ip.compare(bind, "=", func(a, b int64) bool { return a == b })
	ip.compare(bind, "<", func(a, b int64) bool { return a < b })
	ip.compare(bind, "<=", func(a, b int64) bool { return a <= b })
	ip.compare(bind, ">", func(a, b int64) bool { return a > b })
	ip.compare(bind, ">=", func(a, b int64) bool { return a >= b })

	bind("HEAP-LIVE", func(h *value.Heap, args value.Value) (value.Value, error) {
		if !args.IsNil() {
			return value.Nil, errors.NewArgsError("HEAP-LIVE", "expected no arguments")
		}
		return value.Int(int64(ip.heap.Live())), nil
	})

	// APPLY as a value: the evaluator tail-calls through it, so the
	// builtin itself carries no function body.
	ip.applyBI = bind("APPLY", nil).Builtin()
}

// arith binds a 2-ary integer primitive. Variadic and unary forms are
// layered on top by the bootstrap library.
func (ip *Interp) arith(bind func(string, value.BuiltinFunc) value.Value, name string, f func(a, b int64) (int64, error)) {
	bind(name, func(h *value.Heap, args value.Value) (value.Value, error) {
		a, b, err := twoInts(name, ip.heap, args)
		if err != nil {
			return value.Nil, err
		}
		n, err := f(a, b)
		if err != nil {
			return value.Nil, err
		}
		return value.Int(n), nil
	})
}

// compare binds a 2-ary integer comparison producing T or NIL
func (ip *Interp) compare(bind func(string, value.BuiltinFunc) value.Value, name string, f func(a, b int64) bool) {
	bind(name, func(h *value.Heap, args value.Value) (value.Value, error) {
		a, b, err := twoInts(name, ip.heap, args)
		if err != nil {
			return value.Nil, err
		}
		return ip.truth(f(a, b)), nil
	})
}

// pairSlot applies the car/cdr policy: Nil passes through as Nil, a
// Pair yields its slot, and every other tag is a type error.
func pairSlot(name string, h *value.Heap, arg value.Value, slot func(value.Value) value.Value) (value.Value, error) {
	switch arg.Tag() {
	case value.NilTag:
		return value.Nil, nil
	case value.PairTag:
		return slot(arg), nil
	default:
		return value.Nil, errors.NewTypeError(name + ": expected a pair, got " + arg.Tag().String())
	}
}

func oneArg(name string, h *value.Heap, args value.Value) (value.Value, error) {
	if args.IsNil() || !h.Cdr(args).IsNil() {
		return value.Nil, errors.NewArgsError(name, "expected exactly 1 argument")
	}
	return h.Car(args), nil
}

func twoArgs(name string, h *value.Heap, args value.Value) (value.Value, value.Value, error) {
	if h.Length(args) != 2 || !h.IsList(args) {
		return value.Nil, value.Nil, errors.NewArgsError(name, "expected exactly 2 arguments")
	}
	return h.Car(args), h.Car(h.Cdr(args)), nil
}

func twoInts(name string, h *value.Heap, args value.Value) (int64, int64, error) {
	a, b, err := twoArgs(name, h, args)
	if err != nil {
		return 0, 0, err
	}
	if a.Tag() != value.IntegerTag || b.Tag() != value.IntegerTag {
		return 0, 0, errors.NewTypeError(name + ": expected integer arguments")
	}
	return a.Int(), b.Int(), nil
}
