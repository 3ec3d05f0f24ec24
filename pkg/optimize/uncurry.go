package optimize

import (
	"github.com/pkg/errors"

	"github.com/fern-lang/fern/pkg/ir"
)

// uncurryReceivedArgs flattens curried function types in a function
// literal's own parameter list to their fixed-arity form, retyping every
// reference to those parameters inside the body. After this pass a
// function's signature agrees with the native calling convention even
// before its callers are rewritten.
func (o *optimizer) uncurryReceivedArgs(e ir.Expr) ir.Expr {
	switch fn := e.(type) {
	case *ir.Lambda:
		params, body, changed := uncurryIdentsAndReplaceInBody([]ir.Ident{fn.Param}, fn.Body)
		if !changed {
			return e
		}
		return &ir.Lambda{Param: params[0], Body: body, Name: fn.Name, Rng: fn.Rng}
	case *ir.Delegate:
		params, body, changed := uncurryIdentsAndReplaceInBody(fn.Params, fn.Body)
		if !changed {
			return e
		}
		return &ir.Delegate{Params: params, Body: body, Name: fn.Name, Rng: fn.Rng}
	default:
		return e
	}
}

func uncurryIdentsAndReplaceInBody(idents []ir.Ident, body ir.Expr) ([]ir.Ident, ir.Expr, bool) {
	replacements := make(map[string]ir.Expr)
	out := make([]ir.Ident, len(idents))
	for i, id := range idents {
		uncurried := ir.UncurryType(id.Typ)
		if !uncurried.Eq(id.Typ) {
			id = id.WithType(uncurried)
			replacements[id.Name] = &ir.IdentExpr{Ident: id}
		}
		out[i] = id
	}
	if len(replacements) == 0 {
		return out, body, false
	}
	return out, ReplaceValues(replacements, body), true
}

// uncurrySendingArgs rewrites call and emit arguments whose declared
// parameter types are curried function types, so each argument presents the
// fixed-arity interface the callee expects after uncurryReceivedArgs. A
// lambda chain of exactly the right arity becomes a delegate on the spot;
// anything else is bridged at runtime by the core library.
func (o *optimizer) uncurrySendingArgs(e ir.Expr) ir.Expr {
	switch call := e.(type) {
	case *ir.Call:
		info, changed := o.uncurryCallArgs(call.Info)
		if !changed {
			return e
		}
		return &ir.Call{Kind: call.Kind, Callee: call.Callee, Info: info, Typ: call.Typ, Rng: call.Rng}
	case *ir.Emit:
		info, changed := o.uncurryCallArgs(call.Info)
		if !changed {
			return e
		}
		return &ir.Emit{Macro: call.Macro, Info: info, Typ: call.Typ, Rng: call.Rng}
	default:
		return e
	}
}

func (o *optimizer) uncurryCallArgs(info ir.CallInfo) (ir.CallInfo, bool) {
	if len(info.SignatureArgTypes) == 0 {
		return info, false
	}
	changed := false
	args := make([]ir.Expr, len(info.Args))
	for i, arg := range info.Args {
		args[i] = arg
		if i >= len(info.SignatureArgTypes) {
			continue
		}
		arity := ir.CurriedArity(info.SignatureArgTypes[i])
		if arity < 2 {
			continue
		}
		if uncurried := o.uncurryArg(arity, arg); uncurried != arg {
			args[i] = uncurried
			changed = true
		}
	}
	if !changed {
		return info, false
	}
	return ir.CallInfo{This: info.This, Args: args, SignatureArgTypes: info.SignatureArgTypes}, true
}

// uncurryArgsFor conforms each argument to its declared parameter type,
// bridging curried arguments the same way uncurrySendingArgs does. Used for
// the direct calls synthesized by the later uncurry passes.
func (o *optimizer) uncurryArgsFor(paramTypes []ir.Type, args []ir.Expr) []ir.Expr {
	out := make([]ir.Expr, len(args))
	for i, arg := range args {
		out[i] = arg
		if i >= len(paramTypes) {
			continue
		}
		if arity := ir.CurriedArity(paramTypes[i]); arity >= 2 {
			out[i] = o.uncurryArg(arity, arg)
		}
	}
	return out
}

func (o *optimizer) uncurryArg(arity int, arg ir.Expr) ir.Expr {
	if _, ok := arg.Type().(ir.DelegateType); ok {
		return arg
	}
	if params, body, name, ok := ir.NestedLambda(arg); ok {
		if len(params) == arity {
			return &ir.Delegate{Params: params, Body: body, Name: name, Rng: arg.Range()}
		}
	}
	return o.core.UncurryAtRuntime(arity, arg)
}

// uncurryInnerFunctions converts curried lambda chains to fixed-arity
// delegates where nothing outside the local scope can observe the calling
// shape: a let-bound chain whose name never escapes as a value, or a named
// chain applied immediately with all of its arguments.
func (o *optimizer) uncurryInnerFunctions(e ir.Expr) ir.Expr {
	switch e := e.(type) {
	case *ir.Let:
		if len(e.Bindings) != 1 {
			return e
		}
		binding := e.Bindings[0]
		params, fnBody, name, ok := ir.NestedLambda(binding.Value)
		if !ok || len(params) < 2 {
			return e
		}
		if LambdaMayEscapeScope(binding.Ident.Name, e.Body) {
			return e
		}
		ident := binding.Ident.WithType(ir.UncurryType(binding.Ident.Typ))
		if name == "" {
			name = ident.Name
		}
		body := ReplaceValues(
			map[string]ir.Expr{ident.Name: &ir.IdentExpr{Ident: ident}},
			e.Body,
		)
		fn := &ir.Delegate{Params: params, Body: fnBody, Name: name, Rng: binding.Value.Range()}
		return &ir.Let{Bindings: []ir.Binding{{Ident: ident, Value: fn}}, Body: body, Rng: e.Rng}

	case *ir.CurriedApply:
		callee, args, _ := ir.NestedApply(e)
		params, fnBody, name, ok := ir.NestedLambda(callee)
		if !ok || name == "" || len(params) < 2 || len(params) != len(args) {
			return e
		}
		fn := &ir.Delegate{Params: params, Body: fnBody, Name: name, Rng: callee.Range()}
		paramTypes := delegateParamTypes(fn)
		return &ir.Call{
			Kind:   ir.StaticCall,
			Callee: fn,
			Info:   ir.CallInfo{Args: o.uncurryArgsFor(paramTypes, args), SignatureArgTypes: paramTypes},
			Typ:    e.Typ,
			Rng:    e.Rng,
		}

	default:
		return e
	}
}

func delegateParamTypes(fn *ir.Delegate) []ir.Type {
	dt, ok := fn.Type().(ir.DelegateType)
	if !ok || len(dt.Params) != len(fn.Params) {
		panic(errors.Errorf("delegate arity mismatch: %d parameters, type %s", len(fn.Params), fn.Type()))
	}
	return dt.Params
}

// uncurryApplications collapses chains of single-argument applications of a
// value already known to have fixed arity into one direct call, going to the
// core library for partial applications. This rule must see a whole
// application chain before its sub-applications are rewritten, so the
// pipeline runs it outside-in rather than bottom-up.
func (o *optimizer) uncurryApplications(e ir.Expr) ir.Expr {
	apply, ok := e.(*ir.CurriedApply)
	if !ok {
		return e
	}
	callee, args, _ := ir.NestedApply(apply)
	delegate, ok := callee.Type().(ir.DelegateType)
	if !ok {
		return e
	}
	arity := len(delegate.Params)
	switch {
	case len(args) == arity:
		return &ir.Call{
			Kind:   ir.StaticCall,
			Callee: callee,
			Info:   ir.CallInfo{Args: o.uncurryArgsFor(delegate.Params, args), SignatureArgTypes: delegate.Params},
			Typ:    apply.Typ,
			Rng:    apply.Rng,
		}
	case len(args) < arity:
		return o.core.PartiallyApply(callee, arity, args, apply.Typ)
	default:
		// Saturate the delegate, then keep applying the surplus arguments to
		// the (necessarily curried) result one at a time.
		saturated := &ir.Call{
			Kind:   ir.StaticCall,
			Callee: callee,
			Info:   ir.CallInfo{Args: o.uncurryArgsFor(delegate.Params, args[:arity]), SignatureArgTypes: delegate.Params},
			Typ:    delegate.Ret,
			Rng:    apply.Rng,
		}
		return &ir.CurriedApply{Applied: saturated, Args: args[arity:], Typ: apply.Typ, Rng: apply.Rng}
	}
}
