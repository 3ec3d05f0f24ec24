// Package optimize rewrites the elaborated expression IR into an equivalent
// but cheaper form, reconciling the front end's curried calling model with
// the fixed-arity convention of the target runtime.
//
// Every rewrite is a single bottom-up (or, for application collapsing,
// top-down) sweep over one declaration body; the pipeline runs the rules in
// a fixed, documented order and never iterates to a fixpoint.
package optimize

import "github.com/fern-lang/fern/pkg/ir"

// ReplaceValues substitutes identifier references by name: every reference
// whose name is a key of replacements becomes the mapped expression
// verbatim. Replacement maps are built fresh per reduction site and map to
// closed terms from the enclosing scope, so substitution introduces no new
// bindings; inner binders that rebind a mapped name shadow it and stop the
// substitution for their subtree.
func ReplaceValues(replacements map[string]ir.Expr, e ir.Expr) ir.Expr {
	if len(replacements) == 0 {
		return e
	}
	return substitute(replacements, e)
}

func substitute(m map[string]ir.Expr, e ir.Expr) ir.Expr {
	if len(m) == 0 {
		return e
	}
	switch e := e.(type) {
	case *ir.IdentExpr:
		if repl, ok := m[e.Ident.Name]; ok {
			return repl
		}
		return e

	case *ir.Lambda:
		return &ir.Lambda{
			Param: e.Param,
			Body:  substitute(shadow(m, e.Param.Name), e.Body),
			Name:  e.Name,
			Rng:   e.Rng,
		}

	case *ir.Delegate:
		inner := m
		for _, p := range e.Params {
			inner = shadow(inner, p.Name)
		}
		return &ir.Delegate{Params: e.Params, Body: substitute(inner, e.Body), Name: e.Name, Rng: e.Rng}

	case *ir.Let:
		// Bindings are sequential: each value sees the scope before its own
		// identifier is introduced.
		cur := m
		bindings := make([]ir.Binding, len(e.Bindings))
		for i, b := range e.Bindings {
			bindings[i] = ir.Binding{Ident: b.Ident, Value: substitute(cur, b.Value)}
			cur = shadow(cur, b.Ident.Name)
		}
		return &ir.Let{Bindings: bindings, Body: substitute(cur, e.Body), Rng: e.Rng}

	case *ir.ForLoop:
		return &ir.ForLoop{
			Ident: e.Ident,
			Start: substitute(m, e.Start),
			Limit: substitute(m, e.Limit),
			Body:  substitute(shadow(m, e.Ident.Name), e.Body),
			IsUp:  e.IsUp,
			Rng:   e.Rng,
		}

	case *ir.ForEach:
		return &ir.ForEach{
			Ident:    e.Ident,
			Iterable: substitute(m, e.Iterable),
			Body:     substitute(shadow(m, e.Ident.Name), e.Body),
			Rng:      e.Rng,
		}

	case *ir.TryCatch:
		var catch *ir.CatchClause
		if e.Catch != nil {
			catch = &ir.CatchClause{
				Param: e.Catch.Param,
				Body:  substitute(shadow(m, e.Catch.Param.Name), e.Catch.Body),
			}
		}
		var finalizer ir.Expr
		if e.Finalizer != nil {
			finalizer = substitute(m, e.Finalizer)
		}
		return &ir.TryCatch{Body: substitute(m, e.Body), Catch: catch, Finalizer: finalizer, Rng: e.Rng}

	case *ir.DecisionTree:
		targets := make([]ir.DecisionTarget, len(e.Targets))
		for i, t := range e.Targets {
			inner := m
			for _, b := range t.Bindings {
				inner = shadow(inner, b.Name)
			}
			targets[i] = ir.DecisionTarget{Bindings: t.Bindings, Body: substitute(inner, t.Body)}
		}
		return &ir.DecisionTree{Expr: substitute(m, e.Expr), Targets: targets, Rng: e.Rng}

	default:
		return ir.MapChildren(func(c ir.Expr) ir.Expr { return substitute(m, c) }, e)
	}
}

// shadow returns m without name. The original map is shared when name is
// not a key, so the common no-shadowing path allocates nothing.
func shadow(m map[string]ir.Expr, name string) map[string]ir.Expr {
	if _, ok := m[name]; !ok {
		return m
	}
	out := make(map[string]ir.Expr, len(m)-1)
	for k, v := range m {
		if k != name {
			out[k] = v
		}
	}
	return out
}
