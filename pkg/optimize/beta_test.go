package optimize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fern-lang/fern/pkg/ir"
)

func TestBindingBetaReduction(t *testing.T) {
	o := testOptimizer()

	t.Run("cheap value inlines at every use", func(t *testing.T) {
		let := &ir.Let{
			Bindings: []ir.Binding{{Ident: ident("x", ir.IntType), Value: intLit(5)}},
			Body:     add(ref("x", ir.IntType), ref("x", ir.IntType)),
		}
		out := ir.Visit(o.bindingBetaReduction, let)
		require.Equal(t, ir.Expr(add(intLit(5), intLit(5))), out)
	})

	t.Run("risky value with one use inlines", func(t *testing.T) {
		call := sideEffect()
		let := &ir.Let{
			Bindings: []ir.Binding{{Ident: ident("x", ir.IntType), Value: call}},
			Body:     add(ref("x", ir.IntType), intLit(1)),
		}
		out := ir.Visit(o.bindingBetaReduction, let)
		require.Equal(t, ir.Expr(add(call, intLit(1))), out)
	})

	t.Run("risky value with several uses is kept", func(t *testing.T) {
		let := &ir.Let{
			Bindings: []ir.Binding{{Ident: ident("x", ir.IntType), Value: sideEffect()}},
			Body:     add(ref("x", ir.IntType), ref("x", ir.IntType)),
		}
		out := ir.Visit(o.bindingBetaReduction, let)
		require.Equal(t, ir.Expr(let), out)
	})

	t.Run("mutable binding is kept", func(t *testing.T) {
		let := &ir.Let{
			Bindings: []ir.Binding{{
				Ident: ir.Ident{Name: "x", Typ: ir.IntType, IsMutable: true},
				Value: intLit(5),
			}},
			Body: ref("x", ir.IntType),
		}
		out := ir.Visit(o.bindingBetaReduction, let)
		require.Equal(t, ir.Expr(let), out)
	})

	t.Run("multi-binding lets are kept", func(t *testing.T) {
		let := &ir.Let{
			Bindings: []ir.Binding{
				{Ident: ident("x", ir.IntType), Value: intLit(1)},
				{Ident: ident("y", ir.IntType), Value: intLit(2)},
			},
			Body: add(ref("x", ir.IntType), ref("y", ir.IntType)),
		}
		out := ir.Visit(o.bindingBetaReduction, let)
		require.Equal(t, ir.Expr(let), out)
	})

	t.Run("single-use function inlines and inherits the binding name", func(t *testing.T) {
		let := &ir.Let{
			Bindings: []ir.Binding{{Ident: ident("f", curried2), Value: addChain("")}},
			Body:     apply(apply(ref("f", curried2), curried2.Ret, intLit(1)), ir.IntType, intLit(2)),
		}
		out := ir.Visit(o.bindingBetaReduction, let)

		outer, ok := out.(*ir.CurriedApply)
		require.True(t, ok)
		inner, ok := outer.Applied.(*ir.CurriedApply)
		require.True(t, ok)
		fn, ok := inner.Applied.(*ir.Lambda)
		require.True(t, ok)
		require.Equal(t, "f", fn.Name)
	})

	t.Run("multi-use function is kept", func(t *testing.T) {
		use := func() *ir.CurriedApply {
			return apply(apply(ref("f", curried2), curried2.Ret, intLit(1)), ir.IntType, intLit(2))
		}
		let := &ir.Let{
			Bindings: []ir.Binding{{Ident: ident("f", curried2), Value: addChain("")}},
			Body:     add(use(), use()),
		}
		out := ir.Visit(o.bindingBetaReduction, let)
		require.Equal(t, ir.Expr(let), out)
	})
}

func TestLambdaBetaReduction(t *testing.T) {
	o := testOptimizer()
	incr := &ir.Lambda{Param: ident("x", ir.IntType), Body: add(ref("x", ir.IntType), intLit(1))}

	t.Run("safe argument substitutes directly", func(t *testing.T) {
		out := ir.Visit(o.lambdaBetaReduction, apply(incr, ir.IntType, intLit(5)))
		require.Equal(t, ir.Expr(add(intLit(5), intLit(1))), out)
	})

	t.Run("risky argument used twice binds once", func(t *testing.T) {
		call := sideEffect()
		dbl := &ir.Lambda{Param: ident("x", ir.IntType), Body: add(ref("x", ir.IntType), ref("x", ir.IntType))}
		out := ir.Visit(o.lambdaBetaReduction, apply(dbl, ir.IntType, call))

		let, ok := out.(*ir.Let)
		require.True(t, ok)
		require.Len(t, let.Bindings, 1)
		require.Equal(t, "x", let.Bindings[0].Ident.Name)
		require.Equal(t, ir.Expr(call), let.Bindings[0].Value)
		require.Equal(t, ir.Expr(add(ref("x", ir.IntType), ref("x", ir.IntType))), let.Body)

		effects := func(e ir.Expr) bool { _, ok := e.(*ir.Call); return ok }
		require.Equal(t, 1, countMatches(effects, out))
	})

	t.Run("saturated chain reduces in one step", func(t *testing.T) {
		out := ir.Visit(o.lambdaBetaReduction,
			apply(addChain(""), ir.IntType, intLit(1), intLit(2)))
		require.Equal(t, ir.Expr(add(intLit(1), intLit(2))), out)
	})

	t.Run("partial application is left alone", func(t *testing.T) {
		e := apply(addChain(""), curried2.Ret, intLit(1))
		out := ir.Visit(o.lambdaBetaReduction, e)
		require.Equal(t, ir.Expr(e), out)
	})
}

func TestGetterBetaReduction(t *testing.T) {
	o := testOptimizer()

	t.Run("tuple projection folds to the item", func(t *testing.T) {
		get := &ir.Get{
			Expr: &ir.NewTuple{Items: []ir.Expr{intLit(1), intLit(2)}},
			Kind: ir.TupleGet{Index: 1},
			Typ:  ir.IntType,
		}
		out := ir.Visit(o.getterBetaReduction, get)
		require.Equal(t, ir.Expr(intLit(2)), out)
	})

	t.Run("option unwrap folds to the payload", func(t *testing.T) {
		get := &ir.Get{
			Expr: &ir.NewOption{Value: intLit(7), Elem: ir.IntType},
			Kind: ir.OptionValue{},
			Typ:  ir.IntType,
		}
		out := ir.Visit(o.getterBetaReduction, get)
		require.Equal(t, ir.Expr(intLit(7)), out)
	})

	t.Run("none stays a runtime unwrap", func(t *testing.T) {
		get := &ir.Get{
			Expr: &ir.NewOption{Elem: ir.IntType},
			Kind: ir.OptionValue{},
			Typ:  ir.IntType,
		}
		out := ir.Visit(o.getterBetaReduction, get)
		require.Equal(t, ir.Expr(get), out)
	})

	t.Run("projection of a reference is untouched", func(t *testing.T) {
		get := &ir.Get{
			Expr: ref("pair", ir.TupleType{Items: []ir.Type{ir.IntType, ir.IntType}}),
			Kind: ir.TupleGet{Index: 0},
			Typ:  ir.IntType,
		}
		out := ir.Visit(o.getterBetaReduction, get)
		require.Equal(t, ir.Expr(get), out)
	})
}

func TestResolveCasts(t *testing.T) {
	o := testOptimizer()

	t.Run("identity cast drops", func(t *testing.T) {
		cast := &ir.Cast{Expr: intLit(1), Typ: ir.IntType}
		out := ir.Visit(o.resolveCasts, cast)
		require.Equal(t, ir.Expr(intLit(1)), out)
	})

	t.Run("static list to sequence builds an array", func(t *testing.T) {
		list := &ir.NewList{
			Head: intLit(1),
			Tail: &ir.NewList{Head: intLit(2), Elem: ir.IntType},
			Elem: ir.IntType,
		}
		cast := &ir.Cast{Expr: list, Typ: ir.SeqType{Elem: ir.IntType}}
		out := ir.Visit(o.resolveCasts, cast)
		require.Equal(t, ir.Expr(&ir.NewArray{Items: []ir.Expr{intLit(1), intLit(2)}, Elem: ir.IntType}), out)
	})

	t.Run("dynamic list to sequence goes through the runtime", func(t *testing.T) {
		cast := &ir.Cast{
			Expr: ref("xs", ir.ListType{Elem: ir.IntType}),
			Typ:  ir.SeqType{Elem: ir.IntType},
		}
		out := ir.Visit(o.resolveCasts, cast)
		emit, ok := out.(*ir.Emit)
		require.True(t, ok)
		require.Equal(t, "toSeq", emit.Macro)
	})

	t.Run("interface cast goes through the runtime", func(t *testing.T) {
		iface := ir.DeclaredType{Name: "Printable", Interface: true}
		cast := &ir.Cast{Expr: ref("v", ir.DeclaredType{Name: "Point"}), Typ: iface}
		out := ir.Visit(o.resolveCasts, cast)
		emit, ok := out.(*ir.Emit)
		require.True(t, ok)
		require.Equal(t, "castToInterface", emit.Macro)
	})

	t.Run("other casts survive", func(t *testing.T) {
		cast := &ir.Cast{Expr: intLit(1), Typ: ir.AnyType}
		out := ir.Visit(o.resolveCasts, cast)
		require.Equal(t, ir.Expr(cast), out)
	})
}
