package optimize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fern-lang/fern/pkg/ir"
)

func TestReplaceValues(t *testing.T) {
	t.Run("replaces every occurrence", func(t *testing.T) {
		expr := add(ref("x", ir.IntType), ref("x", ir.IntType))
		out := ReplaceValues(map[string]ir.Expr{"x": intLit(5)}, expr)
		require.Equal(t, ir.Expr(add(intLit(5), intLit(5))), out)
	})

	t.Run("empty map returns the same expression", func(t *testing.T) {
		expr := add(ref("x", ir.IntType), intLit(1))
		out := ReplaceValues(nil, expr)
		require.Same(t, ir.Expr(expr), out)
	})

	t.Run("unrelated names are untouched", func(t *testing.T) {
		expr := add(ref("y", ir.IntType), intLit(1))
		out := ReplaceValues(map[string]ir.Expr{"x": intLit(5)}, expr)
		require.Equal(t, ir.Expr(expr), out)
	})

	t.Run("lambda parameter shadows the mapping", func(t *testing.T) {
		inner := &ir.Lambda{Param: ident("x", ir.IntType), Body: ref("x", ir.IntType)}
		expr := &ir.NewTuple{Items: []ir.Expr{ref("x", ir.IntType), inner}}

		out := ReplaceValues(map[string]ir.Expr{"x": intLit(5)}, expr).(*ir.NewTuple)
		require.Equal(t, ir.Expr(intLit(5)), out.Items[0])
		require.Equal(t, ir.Expr(inner), out.Items[1])
	})

	t.Run("let binding shadows its body but not its value", func(t *testing.T) {
		expr := &ir.Let{
			Bindings: []ir.Binding{{Ident: ident("x", ir.IntType), Value: ref("x", ir.IntType)}},
			Body:     add(ref("x", ir.IntType), intLit(1)),
		}

		out := ReplaceValues(map[string]ir.Expr{"x": intLit(7)}, expr).(*ir.Let)
		require.Equal(t, ir.Expr(intLit(7)), out.Bindings[0].Value)
		require.Equal(t, ir.Expr(add(ref("x", ir.IntType), intLit(1))), out.Body)
	})

	t.Run("catch parameter shadows the handler", func(t *testing.T) {
		param := ident("x", ir.AnyType)
		expr := &ir.TryCatch{
			Body:  ref("x", ir.IntType),
			Catch: &ir.CatchClause{Param: param, Body: ref("x", ir.AnyType)},
		}

		out := ReplaceValues(map[string]ir.Expr{"x": intLit(3)}, expr).(*ir.TryCatch)
		require.Equal(t, ir.Expr(intLit(3)), out.Body)
		require.Equal(t, ir.Expr(ref("x", ir.AnyType)), out.Catch.Body)
	})

	t.Run("decision target bindings shadow the target body", func(t *testing.T) {
		expr := &ir.DecisionTree{
			Expr: ref("x", ir.IntType),
			Targets: []ir.DecisionTarget{
				{Bindings: []ir.Ident{ident("x", ir.IntType)}, Body: ref("x", ir.IntType)},
				{Body: ref("x", ir.IntType)},
			},
		}

		out := ReplaceValues(map[string]ir.Expr{"x": intLit(9)}, expr).(*ir.DecisionTree)
		require.Equal(t, ir.Expr(intLit(9)), out.Expr)
		require.Equal(t, ir.Expr(ref("x", ir.IntType)), out.Targets[0].Body)
		require.Equal(t, ir.Expr(intLit(9)), out.Targets[1].Body)
	})
}
