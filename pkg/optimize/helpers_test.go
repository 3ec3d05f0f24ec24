package optimize

import (
	"github.com/fern-lang/fern/pkg/ir"
)

func intLit(n int64) *ir.Literal {
	return &ir.Literal{Kind: ir.IntLiteral, IntVal: n, Typ: ir.IntType}
}

func ident(name string, t ir.Type) ir.Ident {
	return ir.Ident{Name: name, Typ: t}
}

func ref(name string, t ir.Type) *ir.IdentExpr {
	return &ir.IdentExpr{Ident: ident(name, t)}
}

func add(left, right ir.Expr) *ir.BinaryOp {
	return &ir.BinaryOp{Op: ir.BinaryPlus, Left: left, Right: right, Typ: ir.IntType}
}

func apply(f ir.Expr, typ ir.Type, args ...ir.Expr) *ir.CurriedApply {
	return &ir.CurriedApply{Applied: f, Args: args, Typ: typ}
}

// sideEffect builds a call whose re-evaluation would be observable.
func sideEffect() *ir.Call {
	return &ir.Call{
		Kind:   ir.StaticCall,
		Callee: &ir.Import{Selector: "nextId", Path: "fern-runtime/ids", Typ: ir.AnyType},
		Typ:    ir.IntType,
	}
}

// curried2 is Int -> Int -> Int.
var curried2 = ir.LambdaType{
	Arg: ir.IntType,
	Ret: ir.LambdaType{Arg: ir.IntType, Ret: ir.IntType},
}

// delegate2 is the flattened form of curried2.
var delegate2 = ir.DelegateType{Params: []ir.Type{ir.IntType, ir.IntType}, Ret: ir.IntType}

// addChain is a two-step lambda chain computing a + b, optionally named.
func addChain(name string) *ir.Lambda {
	body := add(ref("a", ir.IntType), ref("b", ir.IntType))
	return &ir.Lambda{
		Param: ident("a", ir.IntType),
		Body:  &ir.Lambda{Param: ident("b", ir.IntType), Body: body},
		Name:  name,
	}
}

// fakeCore is a stand-in for the core-library collaborator. It marks every
// materialization with a recognizable emit macro so tests can assert which
// bridge was requested.
type fakeCore struct{}

func (fakeCore) CoerceToSequence(e ir.Expr, target ir.SeqType) ir.Expr {
	return &ir.Emit{Macro: "toSeq", Info: ir.CallInfo{Args: []ir.Expr{e}}, Typ: target}
}

func (fakeCore) CastToInterface(e ir.Expr, target ir.DeclaredType) ir.Expr {
	return &ir.Emit{Macro: "castToInterface", Info: ir.CallInfo{Args: []ir.Expr{e}}, Typ: target}
}

func (fakeCore) PartiallyApply(fn ir.Expr, arity int, args []ir.Expr, typ ir.Type) ir.Expr {
	return &ir.Emit{Macro: "partialApply", Info: ir.CallInfo{Args: append([]ir.Expr{fn}, args...)}, Typ: typ}
}

func (fakeCore) UncurryAtRuntime(arity int, fn ir.Expr) ir.Expr {
	return &ir.Emit{Macro: "uncurry", Info: ir.CallInfo{Args: []ir.Expr{fn}}, Typ: ir.AnyType}
}

func testOptimizer() *optimizer {
	return &optimizer{core: fakeCore{}}
}

// countMatches walks the whole tree counting nodes for which pred holds.
func countMatches(pred func(ir.Expr) bool, e ir.Expr) int {
	count := 0
	if pred(e) {
		count++
	}
	for _, sub := range ir.SubExpressions(e) {
		count += countMatches(pred, sub)
	}
	return count
}
