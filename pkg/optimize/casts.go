package optimize

import "github.com/fern-lang/fern/pkg/ir"

// resolveCasts erases or materializes type-coercion nodes. A cast to the
// expression's own type disappears. A literal list viewed as a sequence
// becomes a flat array of the same elements; other sequence coercions and
// interface casts are materialized by the core-library collaborator. All
// remaining casts are left for codegen, which erases them.
func (o *optimizer) resolveCasts(e ir.Expr) ir.Expr {
	cast, ok := e.(*ir.Cast)
	if !ok {
		return e
	}
	inner := cast.Expr
	if cast.Typ.Eq(inner.Type()) {
		return inner
	}
	switch target := cast.Typ.(type) {
	case ir.SeqType:
		if items, ok := ir.ListItems(inner); ok {
			return &ir.NewArray{Items: items, Elem: target.Elem, Rng: cast.Rng}
		}
		return o.core.CoerceToSequence(inner, target)
	case ir.DeclaredType:
		if target.Interface {
			return o.core.CastToInterface(inner, target)
		}
	}
	return cast
}
