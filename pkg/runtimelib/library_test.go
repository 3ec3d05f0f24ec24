package runtimelib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fern-lang/fern/pkg/ir"
	"github.com/fern-lang/fern/pkg/optimize"
)

var _ optimize.CoreLibrary = (*Library)(nil)

func intLit(n int64) *ir.Literal {
	return &ir.Literal{Kind: ir.IntLiteral, IntVal: n, Typ: ir.IntType}
}

func TestCoerceToSequence(t *testing.T) {
	lib := New("fern-runtime")
	target := ir.SeqType{Elem: ir.IntType}

	out := lib.CoerceToSequence(intLit(1), target).(*ir.Call)
	require.Equal(t, ir.StaticCall, out.Kind)
	require.Equal(t, ir.Type(target), out.Typ)

	callee := out.Callee.(*ir.Import)
	require.Equal(t, "toSeq", callee.Selector)
	require.Equal(t, "fern-runtime/seq", callee.Path)
	require.Equal(t, []ir.Expr{intLit(1)}, out.Info.Args)
}

func TestCastToInterface(t *testing.T) {
	lib := New("fern-runtime")
	target := ir.DeclaredType{Name: "StringRepresentable", Interface: true}

	out := lib.CastToInterface(intLit(1), target).(*ir.Call)
	require.Equal(t, ir.Type(target), out.Typ)

	callee := out.Callee.(*ir.Import)
	require.Equal(t, "castToInterface", callee.Selector)
	require.Equal(t, "fern-runtime/util", callee.Path)

	require.Len(t, out.Info.Args, 2)
	table := out.Info.Args[1].(*ir.Import)
	require.Equal(t, "stringRepresentable", table.Selector)
	require.Equal(t, "fern-runtime/interfaces", table.Path)
}

func TestPartiallyApply(t *testing.T) {
	lib := New("fern-runtime")
	fn := &ir.IdentExpr{Ident: ir.Ident{
		Name: "f",
		Typ:  ir.DelegateType{Params: []ir.Type{ir.IntType, ir.IntType, ir.IntType}, Ret: ir.IntType},
	}}
	typ := ir.LambdaType{Arg: ir.IntType, Ret: ir.LambdaType{Arg: ir.IntType, Ret: ir.IntType}}

	out := lib.PartiallyApply(fn, 3, []ir.Expr{intLit(1)}, typ).(*ir.Call)
	require.Equal(t, ir.Type(typ), out.Typ)
	require.Equal(t, "partialApply", out.Callee.(*ir.Import).Selector)

	// Leading argument tells the runtime how many parameters remain.
	require.Equal(t, []ir.Expr{intLit(2), fn, intLit(1)}, out.Info.Args)
}

func TestUncurryAtRuntime(t *testing.T) {
	curried3 := ir.LambdaType{
		Arg: ir.IntType,
		Ret: ir.LambdaType{
			Arg: ir.BoolType,
			Ret: ir.LambdaType{Arg: ir.StringType, Ret: ir.IntType},
		},
	}

	t.Run("picks the arity-specific helper", func(t *testing.T) {
		lib := New("fern-runtime")
		fn := &ir.IdentExpr{Ident: ir.Ident{Name: "f", Typ: curried3}}

		out := lib.UncurryAtRuntime(3, fn).(*ir.Call)
		callee := out.Callee.(*ir.Import)
		require.Equal(t, "uncurry3", callee.Selector)
		require.Equal(t, "fern-runtime/functions", callee.Path)
		require.Equal(t, []ir.Expr{ir.Expr(fn)}, out.Info.Args)
		require.Equal(t,
			ir.Type(ir.DelegateType{
				Params: []ir.Type{ir.IntType, ir.BoolType, ir.StringType},
				Ret:    ir.IntType,
			}),
			out.Typ)
	})

	t.Run("recurries parameters beyond the requested arity", func(t *testing.T) {
		lib := New("fern-runtime")
		fn := &ir.IdentExpr{Ident: ir.Ident{Name: "f", Typ: curried3}}

		out := lib.UncurryAtRuntime(2, fn).(*ir.Call)
		require.Equal(t,
			ir.Type(ir.DelegateType{
				Params: []ir.Type{ir.IntType, ir.BoolType},
				Ret:    ir.LambdaType{Arg: ir.StringType, Ret: ir.IntType},
			}),
			out.Typ)
	})

	t.Run("opaque types fall back to any", func(t *testing.T) {
		lib := New("fern-runtime")
		fn := &ir.IdentExpr{Ident: ir.Ident{Name: "f", Typ: ir.GenericParam{Name: "a"}}}

		out := lib.UncurryAtRuntime(2, fn).(*ir.Call)
		require.Equal(t, ir.Type(ir.AnyType), out.Typ)
	})
}

func TestHelperImportsAreShared(t *testing.T) {
	lib := New("fern-runtime")

	first := lib.CoerceToSequence(intLit(1), ir.SeqType{Elem: ir.IntType}).(*ir.Call)
	second := lib.CoerceToSequence(intLit(2), ir.SeqType{Elem: ir.IntType}).(*ir.Call)
	require.Same(t, first.Callee, second.Callee)

	other := lib.PartiallyApply(intLit(0), 2, nil, ir.AnyType).(*ir.Call)
	require.NotSame(t, first.Callee, other.Callee)
}
