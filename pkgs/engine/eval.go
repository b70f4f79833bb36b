package engine

import (
	"github.com/aledsdavies/parens/pkgs/errors"
	"github.com/aledsdavies/parens/pkgs/value"
)

// defaultGCThreshold is how many evaluator iterations run between
// automatic collections.
const defaultGCThreshold = 10000

// The evaluator is an iterative trampoline over an explicit stack of
// activation frames. A frame is a six-element list:
//
//	(parent env op pending-args reversed-evaluated-args body)
//
// parent is the previous frame or Nil; env is the environment the
// frame was pushed under; op holds the evaluated operator (or the
// special-form symbol being executed); pending-args are the argument
// forms not yet evaluated; the evaluated arguments accumulate in
// reverse; body holds the remaining expressions of a closure body.
//
// Because frames are ordinary lists, the whole stack is reachable by
// the collector like any other value, and user programs drive the
// depth of this list rather than the native stack.

const (
	frameParent = iota
	frameEnv
	frameOp
	framePending
	frameArgs
	frameBody
)

func (ip *Interp) makeFrame(parent, env, pending value.Value) value.Value {
	return ip.heap.List(parent, env, value.Nil, pending, value.Nil, value.Nil)
}

// run is the trampoline. It loops until no frame remains, collecting
// at the safepoint on top of the loop where expr, env, stack, and the
// previous result are the complete root set.
func (ip *Interp) run(expr, env value.Value) (value.Value, error) {
	h := ip.heap
	stack := value.Nil
	result := value.Nil

	for {
		ip.gcCounter++
		if ip.gcCounter >= ip.gcThreshold {
			ip.collect(expr, env, stack, result)
			ip.gcCounter = 0
		}

		var err error
		pushed := false

		switch {
		case expr.Tag() == value.SymbolTag:
			result, err = ip.envGet(env, expr)

		case expr.Tag() != value.PairTag:
			result = expr

		case !h.IsList(expr):
			err = errors.NewSyntaxError("cannot evaluate improper list " + h.Print(expr))

		default:
			op, args := h.Car(expr), h.Cdr(expr)
			if op.Tag() == value.SymbolTag {
				stack, expr, result, pushed, err = ip.evalSpecialOrPush(stack, env, expr, op, args)
			} else if op.Tag() == value.BuiltinTag {
				result, err = ip.callBuiltin(op.Builtin(), args)
			} else {
				stack = ip.makeFrame(stack, env, args)
				expr = op
				pushed = true
			}
		}

		if err != nil {
			return value.Nil, err
		}
		if pushed {
			continue
		}
		if stack.IsNil() {
			return result, nil
		}
		if err := ip.evalReturn(&stack, &expr, &env, &result); err != nil {
			return value.Nil, err
		}
	}
}

// evalSpecialOrPush dispatches a symbol in operator position: special
// forms execute directly or set up a frame; any other symbol pushes an
// application frame and evaluates the operator first.
func (ip *Interp) evalSpecialOrPush(stack, env, expr, op value.Value, args value.Value) (value.Value, value.Value, value.Value, bool, error) {
	h := ip.heap
	result := value.Nil

	switch op.Symbol() {
	case ip.symQuote:
		if args.IsNil() || !h.Cdr(args).IsNil() {
			return stack, expr, result, false, errors.NewArgsError("QUOTE", "expected exactly 1 argument")
		}
		result = h.Car(args)

	case ip.symDefine:
		if args.IsNil() || h.Cdr(args).IsNil() {
			return stack, expr, result, false, errors.NewArgsError("DEFINE", "expected a name and a definition")
		}
		sym := h.Car(args)
		switch sym.Tag() {
		case value.PairTag:
			// (DEFINE (name p...) body...) is LAMBDA sugar
			closure, err := ip.makeClosure(env, h.Cdr(sym), h.Cdr(args))
			if err != nil {
				return stack, expr, result, false, err
			}
			name := h.Car(sym)
			if name.Tag() != value.SymbolTag {
				return stack, expr, result, false, errors.NewTypeError("DEFINE: function name must be a symbol")
			}
			ip.envSet(env, name, closure)
			result = name
		case value.SymbolTag:
			if !h.Cdr(h.Cdr(args)).IsNil() {
				return stack, expr, result, false, errors.NewArgsError("DEFINE", "expected exactly 1 definition")
			}
			stack = ip.makeFrame(stack, env, value.Nil)
			h.ListSet(stack, frameOp, op)
			h.ListSet(stack, frameArgs, sym)
			return stack, h.Car(h.Cdr(args)), result, true, nil
		default:
			return stack, expr, result, false, errors.NewTypeError("DEFINE: name must be a symbol")
		}

	case ip.symLambda:
		if args.IsNil() || h.Cdr(args).IsNil() {
			return stack, expr, result, false, errors.NewArgsError("LAMBDA", "expected parameters and at least 1 body form")
		}
		closure, err := ip.makeClosure(env, h.Car(args), h.Cdr(args))
		if err != nil {
			return stack, expr, result, false, err
		}
		result = closure

	case ip.symIf:
		if h.Length(args) != 3 || !h.IsList(args) {
			return stack, expr, result, false, errors.NewArgsError("IF", "expected condition, consequent, and alternative")
		}
		stack = ip.makeFrame(stack, env, h.Cdr(args))
		h.ListSet(stack, frameOp, op)
		return stack, h.Car(args), result, true, nil

	case ip.symDefmacro:
		if args.IsNil() || h.Cdr(args).IsNil() {
			return stack, expr, result, false, errors.NewArgsError("DEFMACRO", "expected a (name params...) head and a body")
		}
		head := h.Car(args)
		if head.Tag() != value.PairTag {
			return stack, expr, result, false, errors.NewSyntaxError("DEFMACRO: expected (name params...) head")
		}
		name := h.Car(head)
		if name.Tag() != value.SymbolTag {
			return stack, expr, result, false, errors.NewTypeError("DEFMACRO: macro name must be a symbol")
		}
		closure, err := ip.makeClosure(env, h.Cdr(head), h.Cdr(args))
		if err != nil {
			return stack, expr, result, false, err
		}
		ip.envSet(env, name, closure.AsMacro())
		result = name

	case ip.symApply:
		if h.Length(args) != 2 || !h.IsList(args) {
			return stack, expr, result, false, errors.NewArgsError("APPLY", "expected a function and an argument list")
		}
		stack = ip.makeFrame(stack, env, h.Cdr(args))
		h.ListSet(stack, frameOp, op)
		return stack, h.Car(args), result, true, nil

	case ip.symGC:
		if !args.IsNil() {
			return stack, expr, result, false, errors.NewArgsError("GC", "expected no arguments")
		}
		ip.collect(expr, env, stack)
		result = ip.truthSym

	default:
		stack = ip.makeFrame(stack, env, args)
		return stack, op, result, true, nil
	}

	return stack, expr, result, false, nil
}

// evalReturn consumes the result of the expression that just finished
// and decides what runs next: store an evaluated argument, pick an IF
// branch, bind a DEFINE, re-enter with a macro expansion, or apply.
func (ip *Interp) evalReturn(stack, expr, env, result *value.Value) error {
	h := ip.heap
	*env = h.ListGet(*stack, frameEnv)
	op := h.ListGet(*stack, frameOp)
	body := h.ListGet(*stack, frameBody)

	if !body.IsNil() {
		// mid-body result of a closure: discarded, keep executing
		return ip.evalApply(stack, expr, env, result)
	}

	if op.IsNil() {
		// the operator itself just finished evaluating
		op = *result
		h.ListSet(*stack, frameOp, op)
		if op.Tag() == value.MacroTag {
			// pass the unevaluated argument forms to the macro body
			pending := h.ListGet(*stack, framePending)
			*stack = ip.makeFrame(*stack, *env, value.Nil)
			h.ListSet(*stack, frameOp, op.AsClosure())
			h.ListSet(*stack, frameArgs, pending)
			return ip.evalBind(stack, expr, env)
		}
	} else if op.Tag() == value.SymbolTag {
		switch op.Symbol() {
		case ip.symDefine:
			sym := h.ListGet(*stack, frameArgs)
			ip.envSet(*env, sym, *result)
			*stack = h.Car(*stack)
			*expr = h.List(value.Sym(ip.symQuote), sym)
			return nil
		case ip.symIf:
			branches := h.ListGet(*stack, framePending)
			if result.Truthy() {
				*expr = h.Car(branches)
			} else {
				*expr = h.Car(h.Cdr(branches))
			}
			*stack = h.Car(*stack)
			return nil
		default:
			// APPLY: fall through to store the evaluated argument
			h.ListSet(*stack, frameArgs, h.Cons(*result, h.ListGet(*stack, frameArgs)))
		}
	} else if op.Tag() == value.MacroTag {
		// the macro body finished: its result replaces the call site
		*expr = *result
		*stack = h.Car(*stack)
		return nil
	} else {
		h.ListSet(*stack, frameArgs, h.Cons(*result, h.ListGet(*stack, frameArgs)))
	}

	pending := h.ListGet(*stack, framePending)
	if pending.IsNil() {
		return ip.evalApply(stack, expr, env, result)
	}
	*expr = h.Car(pending)
	h.ListSet(*stack, framePending, h.Cdr(pending))
	return nil
}

// evalApply runs once every argument is evaluated: it un-reverses the
// argument list and invokes the operator. A builtin is called through
// a rebuilt (op . args) expression; a closure binds and executes; the
// APPLY form replaces the current frame so the call is a tail call.
func (ip *Interp) evalApply(stack, expr, env, result *value.Value) error {
	h := ip.heap
	op := h.ListGet(*stack, frameOp)
	args := h.ListGet(*stack, frameArgs)

	if !args.IsNil() {
		args = h.ReverseInPlace(args)
		h.ListSet(*stack, frameArgs, args)
	}

	if op.Tag() == value.SymbolTag && op.Symbol() == ip.symApply {
		var err error
		op, args, err = ip.applyTarget(stack, env, args)
		if err != nil {
			return err
		}
	}

	// APPLY bound as a value unwraps the same way
	for op.Tag() == value.BuiltinTag && op.Builtin() == ip.applyBI {
		if h.Length(args) != 2 || !h.IsList(args) {
			return errors.NewArgsError("APPLY", "expected a function and an argument list")
		}
		var err error
		op, args, err = ip.applyTarget(stack, env, args)
		if err != nil {
			return err
		}
	}

	if op.Tag() == value.BuiltinTag {
		*stack = h.Car(*stack)
		*expr = h.Cons(op, args)
		return nil
	}
	if op.Tag() != value.ClosureTag {
		return errors.NewTypeError("operator is not callable: " + h.Print(op))
	}
	return ip.evalBind(stack, expr, env)
}

// applyTarget replaces the current frame with a tail call to the
// function and argument list held in args. The argument list is
// shallow-copied so the caller's list structure stays intact.
func (ip *Interp) applyTarget(stack *value.Value, env *value.Value, args value.Value) (value.Value, value.Value, error) {
	h := ip.heap
	fn := h.Car(args)
	fnArgs := h.Car(h.Cdr(args))
	if !h.IsList(fnArgs) {
		return value.Nil, value.Nil, errors.NewSyntaxError("APPLY: argument list must be a proper list")
	}
	fnArgs = h.CopyList(fnArgs)
	*stack = h.Car(*stack)
	*stack = ip.makeFrame(*stack, *env, value.Nil)
	h.ListSet(*stack, frameOp, fn)
	h.ListSet(*stack, frameArgs, fnArgs)
	return fn, fnArgs, nil
}

// evalBind creates the closure's environment, binds parameters to the
// evaluated arguments, and starts executing the body.
func (ip *Interp) evalBind(stack, expr, env *value.Value) error {
	h := ip.heap
	body := h.ListGet(*stack, frameBody)
	if !body.IsNil() {
		return ip.evalExec(stack, expr, env)
	}

	op := h.ListGet(*stack, frameOp)
	args := h.ListGet(*stack, frameArgs)

	*env = ip.envCreate(h.Car(op))
	params := h.Car(h.Cdr(op))
	body = h.Cdr(h.Cdr(op))
	h.ListSet(*stack, frameEnv, *env)
	h.ListSet(*stack, frameBody, body)

	for !params.IsNil() {
		if params.Tag() == value.SymbolTag {
			// rest-symbol takes the remaining arguments as a list
			ip.envBindLocal(*env, params, args)
			args = value.Nil
			break
		}
		if args.IsNil() {
			return errors.NewArgsError("closure", "too few arguments")
		}
		ip.envBindLocal(*env, h.Car(params), h.Car(args))
		params = h.Cdr(params)
		args = h.Cdr(args)
	}
	if !args.IsNil() {
		return errors.NewArgsError("closure", "too many arguments")
	}
	h.ListSet(*stack, frameArgs, value.Nil)
	return ip.evalExec(stack, expr, env)
}

// evalExec advances to the next body expression. Entering the final
// body form pops the frame first, so the tail position replaces the
// caller's frame instead of stacking on it.
func (ip *Interp) evalExec(stack, expr, env *value.Value) error {
	h := ip.heap
	*env = h.ListGet(*stack, frameEnv)
	body := h.ListGet(*stack, frameBody)
	*expr = h.Car(body)
	body = h.Cdr(body)
	if body.IsNil() {
		*stack = h.Car(*stack)
	} else {
		h.ListSet(*stack, frameBody, body)
	}
	return nil
}

// makeClosure validates parameters and body and builds the pair-backed
// (env params body...) triple. params may be a proper list of symbols,
// an improper list ending in a rest-symbol, or a bare rest-symbol.
func (ip *Interp) makeClosure(env, params, body value.Value) (value.Value, error) {
	h := ip.heap
	if !h.IsList(body) {
		return value.Nil, errors.NewSyntaxError("closure body must be a proper list")
	}
	if body.IsNil() {
		return value.Nil, errors.NewArgsError("LAMBDA", "expected at least 1 body form")
	}
	p := params
	for p.Tag() == value.PairTag {
		if h.Car(p).Tag() != value.SymbolTag {
			return value.Nil, errors.NewTypeError("parameter name must be a symbol")
		}
		p = h.Cdr(p)
	}
	if !p.IsNil() && p.Tag() != value.SymbolTag {
		return value.Nil, errors.NewTypeError("rest parameter must be a symbol")
	}
	return h.NewClosure(env, params, body), nil
}

// callBuiltin invokes a native function with its evaluated arguments
func (ip *Interp) callBuiltin(b *value.Builtin, args value.Value) (value.Value, error) {
	if b.Fn == nil {
		return value.Nil, errors.NewTypeError("operator is not callable: #<BUILTIN " + b.Name + ">")
	}
	return b.Fn(ip.heap, args)
}
