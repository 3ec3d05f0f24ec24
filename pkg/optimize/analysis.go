package optimize

import "github.com/fern-lang/fern/pkg/ir"

// HasDoubleEvalRisk reports whether duplicating e at several use sites could
// change program behavior or cost. Only expressions that are trivially pure
// and cheap are safe: scalar literals, references to immutable bindings, and
// imports (a static reference, not a call). Everything else is treated as
// risky, including value constructors, since duplicating an allocation is
// already a cost change.
func HasDoubleEvalRisk(e ir.Expr) bool {
	switch e := e.(type) {
	case *ir.Literal:
		return false
	case *ir.Import:
		return false
	case *ir.IdentExpr:
		return e.Ident.IsMutable
	default:
		return true
	}
}

// IsReferencedMoreThan reports whether the identifier name occurs more than
// limit times inside e. The count is conservative: node kinds where moving
// or duplicating a binding could change evaluation order or execution count
// (imports, throws, sequences, conditionals, loops, decision trees,
// try/catch) are treated as automatically exceeding the limit, so callers
// fall back to keeping the binding. The walk short-circuits as soon as the
// outcome is known.
func IsReferencedMoreThan(limit int, name string, e ir.Expr) bool {
	count := 0
	var walk func(ir.Expr) bool
	walk = func(e ir.Expr) bool {
		switch e := e.(type) {
		case *ir.IdentExpr:
			if e.Ident.Name == name {
				count++
				return count > limit
			}
			return false
		case *ir.Import, *ir.Throw, *ir.Sequential, *ir.IfThenElse,
			*ir.WhileLoop, *ir.ForLoop, *ir.ForEach,
			*ir.DecisionTree, *ir.TryCatch:
			return true
		default:
			for _, sub := range ir.SubExpressions(e) {
				if walk(sub) {
					return true
				}
			}
			return false
		}
	}
	return walk(e)
}

// LambdaMayEscapeScope reports whether the function value bound to name is
// used anywhere in e other than as the immediately-invoked callee of a
// curried application. A function that escapes (stored, passed as a value,
// returned) must keep its curried calling shape, because consuming code
// elsewhere expects it; only non-escaping bindings may be converted to a
// fixed-arity delegate locally.
func LambdaMayEscapeScope(name string, e ir.Expr) bool {
	var escapes func(ir.Expr) bool
	escapes = func(e ir.Expr) bool {
		switch e := e.(type) {
		case *ir.IdentExpr:
			return e.Ident.Name == name
		case *ir.CurriedApply:
			// Being the callee is the one permitted use; the arguments are
			// ordinary value positions.
			if ref, ok := e.Applied.(*ir.IdentExpr); ok && ref.Ident.Name == name {
				for _, arg := range e.Args {
					if escapes(arg) {
						return true
					}
				}
				return false
			}
			for _, sub := range ir.SubExpressions(e) {
				if escapes(sub) {
					return true
				}
			}
			return false
		default:
			for _, sub := range ir.SubExpressions(e) {
				if escapes(sub) {
					return true
				}
			}
			return false
		}
	}
	return escapes(e)
}
