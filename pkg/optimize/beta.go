package optimize

import "github.com/fern-lang/fern/pkg/ir"

// bindingBetaReduction erases single, non-mutable let bindings whose value
// can safely be substituted at the use sites: either the value is cheap to
// duplicate, or it is referenced at most once. Function-literal values are
// only moved, never duplicated, and inherit the binding's name as a
// diagnostics hint.
func (o *optimizer) bindingBetaReduction(e ir.Expr) ir.Expr {
	let, ok := e.(*ir.Let)
	if !ok || len(let.Bindings) != 1 {
		return e
	}
	binding := let.Bindings[0]
	if binding.Ident.IsMutable {
		return e
	}

	value := binding.Value
	var canErase bool
	switch value.(type) {
	case *ir.Lambda, *ir.Delegate:
		canErase = !IsReferencedMoreThan(1, binding.Ident.Name, let.Body)
		if canErase {
			value = nameFunction(value, binding.Ident.Name)
		}
	default:
		canErase = !HasDoubleEvalRisk(value) ||
			!IsReferencedMoreThan(1, binding.Ident.Name, let.Body)
	}
	if !canErase {
		return e
	}
	return ReplaceValues(map[string]ir.Expr{binding.Ident.Name: value}, let.Body)
}

// nameFunction fills in a function literal's missing name hint.
func nameFunction(e ir.Expr, name string) ir.Expr {
	switch fn := e.(type) {
	case *ir.Lambda:
		if fn.Name == "" {
			return &ir.Lambda{Param: fn.Param, Body: fn.Body, Name: name, Rng: fn.Rng}
		}
	case *ir.Delegate:
		if fn.Name == "" {
			return &ir.Delegate{Params: fn.Params, Body: fn.Body, Name: name, Rng: fn.Rng}
		}
	}
	return e
}

// lambdaBetaReduction inlines a fully saturated application of a nested
// single-parameter lambda chain. Arguments that carry double-evaluation risk
// and are used more than once stay behind as explicit bindings so the
// computation runs exactly once; everything else is substituted inline.
func (o *optimizer) lambdaBetaReduction(e ir.Expr) ir.Expr {
	apply, ok := e.(*ir.CurriedApply)
	if !ok {
		return e
	}
	params, body, _, ok := ir.NestedLambda(apply.Applied)
	if !ok || len(params) == 0 || len(params) != len(apply.Args) {
		return e
	}
	return applyArgs(params, apply.Args, body)
}

func applyArgs(params []ir.Ident, args []ir.Expr, body ir.Expr) ir.Expr {
	replacements := make(map[string]ir.Expr, len(params))
	var bindings []ir.Binding
	for i, param := range params {
		arg := args[i]
		if HasDoubleEvalRisk(arg) && IsReferencedMoreThan(1, param.Name, body) {
			bindings = append(bindings, ir.Binding{Ident: param, Value: arg})
		} else {
			replacements[param.Name] = arg
		}
	}
	body = ReplaceValues(replacements, body)
	if len(bindings) == 0 {
		return body
	}
	return &ir.Let{Bindings: bindings, Body: body}
}

// getterBetaReduction folds structural projections out of constructors built
// in the same expression: an element of a freshly built tuple, or the
// payload of a freshly built option.
func (o *optimizer) getterBetaReduction(e ir.Expr) ir.Expr {
	get, ok := e.(*ir.Get)
	if !ok {
		return e
	}
	switch kind := get.Kind.(type) {
	case ir.TupleGet:
		if tuple, ok := get.Expr.(*ir.NewTuple); ok {
			return tuple.Items[kind.Index]
		}
	case ir.OptionValue:
		if option, ok := get.Expr.(*ir.NewOption); ok && option.Value != nil {
			return option.Value
		}
	}
	return e
}
