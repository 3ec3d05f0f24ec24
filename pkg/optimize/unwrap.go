package optimize

import "github.com/fern-lang/fern/pkg/ir"

// unwrapFunctions eta-reduces forwarding wrappers: a function literal whose
// entire body is a direct static call passing exactly the wrapper's own
// parameters, in order, with no receiver, is replaced by a reference to the
// called function. Earlier passes and front-end lowering both produce such
// wrappers.
func (o *optimizer) unwrapFunctions(e ir.Expr) ir.Expr {
	switch fn := e.(type) {
	case *ir.Lambda:
		if callee, ok := forwardedCallee(fn.Body, []ir.Ident{fn.Param}); ok {
			return callee
		}
	case *ir.Delegate:
		if callee, ok := forwardedCallee(fn.Body, fn.Params); ok {
			return callee
		}
	}
	return e
}

func forwardedCallee(body ir.Expr, params []ir.Ident) (ir.Expr, bool) {
	call, ok := body.(*ir.Call)
	if !ok || call.Kind != ir.StaticCall || call.Info.This != nil {
		return nil, false
	}
	if len(call.Info.Args) != len(params) {
		return nil, false
	}
	for i, arg := range call.Info.Args {
		ref, ok := arg.(*ir.IdentExpr)
		if !ok || ref.Ident.Name != params[i].Name {
			return nil, false
		}
	}
	// The callee must not depend on the wrapper's parameters, or removing
	// the wrapper would unbind them. This needs the exact occurrence check,
	// not the conservative counter, which would reject every imported callee.
	for _, p := range params {
		if referencesName(p.Name, call.Callee) {
			return nil, false
		}
	}
	return call.Callee, true
}

func referencesName(name string, e ir.Expr) bool {
	if ref, ok := e.(*ir.IdentExpr); ok {
		return ref.Ident.Name == name
	}
	for _, sub := range ir.SubExpressions(e) {
		if referencesName(name, sub) {
			return true
		}
	}
	return false
}
