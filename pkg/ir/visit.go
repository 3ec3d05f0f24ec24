package ir

import "fmt"

// Visit rewrites the tree bottom-up: every immediate sub-expression is
// visited first, the node is rebuilt with the rewritten children, and only
// then is rule applied to the rebuilt node. Rules therefore always observe
// children already in final form for the current pass. Leaf nodes
// (identifier references, imports, debugger markers, scalar literals) are
// returned unchanged by the reconstruction step before the rule is applied
// to them.
func Visit(rule func(Expr) Expr, e Expr) Expr {
	return rule(MapChildren(func(c Expr) Expr { return Visit(rule, c) }, e))
}

// MapChildren rebuilds a node with f applied to each of its immediate
// sub-expressions, without recursing further. Leaf nodes are returned
// unchanged.
//
// MapChildren and SubExpressions must agree on what counts as a child: any
// node shape added to one must be added to the other.
func MapChildren(f func(Expr) Expr, e Expr) Expr {
	switch e := e.(type) {
	case *IdentExpr, *Import, *Debugger, *Literal:
		return e

	case *NewTuple:
		return &NewTuple{Items: mapMany(f, e.Items), Rng: e.Rng}
	case *NewArray:
		return &NewArray{Items: mapMany(f, e.Items), Elem: e.Elem, Rng: e.Rng}
	case *NewList:
		return &NewList{Head: mapOpt(f, e.Head), Tail: mapOpt(f, e.Tail), Elem: e.Elem, Rng: e.Rng}
	case *NewOption:
		return &NewOption{Value: mapOpt(f, e.Value), Elem: e.Elem, Rng: e.Rng}
	case *NewRecord:
		return &NewRecord{Fields: mapMany(f, e.Fields), Typ: e.Typ, Rng: e.Rng}
	case *NewUnionCase:
		return &NewUnionCase{Tag: e.Tag, Fields: mapMany(f, e.Fields), Typ: e.Typ, Rng: e.Rng}
	case *ErasedUnion:
		return &ErasedUnion{Value: f(e.Value), Typ: e.Typ, Rng: e.Rng}

	case *TypeTest:
		return &TypeTest{Expr: f(e.Expr), TestType: e.TestType, Rng: e.Rng}
	case *Cast:
		return &Cast{Expr: f(e.Expr), Typ: e.Typ, Rng: e.Rng}

	case *Lambda:
		return &Lambda{Param: e.Param, Body: f(e.Body), Name: e.Name, Rng: e.Rng}
	case *Delegate:
		return &Delegate{Params: e.Params, Body: f(e.Body), Name: e.Name, Rng: e.Rng}

	case *ObjectExpr:
		members := make([]ObjectMember, len(e.Members))
		for i, m := range e.Members {
			members[i] = ObjectMember{Name: m.Name, Body: f(m.Body)}
		}
		return &ObjectExpr{Members: members, BaseCall: mapOpt(f, e.BaseCall), Typ: e.Typ, Rng: e.Rng}

	case *CurriedApply:
		return &CurriedApply{Applied: f(e.Applied), Args: mapMany(f, e.Args), Typ: e.Typ, Rng: e.Rng}
	case *Call:
		return &Call{Kind: e.Kind, Callee: f(e.Callee), Info: mapCallInfo(f, e.Info), Typ: e.Typ, Rng: e.Rng}
	case *Emit:
		return &Emit{Macro: e.Macro, Info: mapCallInfo(f, e.Info), Typ: e.Typ, Rng: e.Rng}

	case *UnaryOp:
		return &UnaryOp{Op: e.Op, Operand: f(e.Operand), Typ: e.Typ, Rng: e.Rng}
	case *BinaryOp:
		return &BinaryOp{Op: e.Op, Left: f(e.Left), Right: f(e.Right), Typ: e.Typ, Rng: e.Rng}
	case *LogicalOp:
		return &LogicalOp{Op: e.Op, Left: f(e.Left), Right: f(e.Right), Rng: e.Rng}

	case *Get:
		kind := e.Kind
		if eg, ok := kind.(ExprGet); ok {
			kind = ExprGet{Index: f(eg.Index)}
		}
		return &Get{Expr: f(e.Expr), Kind: kind, Typ: e.Typ, Rng: e.Rng}
	case *Set:
		kind := e.Kind
		if es, ok := kind.(ExprSet); ok {
			kind = ExprSet{Index: f(es.Index)}
		}
		return &Set{Target: f(e.Target), Kind: kind, Value: f(e.Value), Rng: e.Rng}

	case *Throw:
		return &Throw{Value: mapOpt(f, e.Value), Typ: e.Typ, Rng: e.Rng}
	case *Sequential:
		return &Sequential{Exprs: mapMany(f, e.Exprs), Rng: e.Rng}

	case *Let:
		bindings := make([]Binding, len(e.Bindings))
		for i, b := range e.Bindings {
			bindings[i] = Binding{Ident: b.Ident, Value: f(b.Value)}
		}
		return &Let{Bindings: bindings, Body: f(e.Body), Rng: e.Rng}

	case *IfThenElse:
		return &IfThenElse{Cond: f(e.Cond), Then: f(e.Then), Else: f(e.Else), Rng: e.Rng}

	case *WhileLoop:
		return &WhileLoop{Guard: f(e.Guard), Body: f(e.Body), Rng: e.Rng}
	case *ForLoop:
		return &ForLoop{Ident: e.Ident, Start: f(e.Start), Limit: f(e.Limit), Body: f(e.Body), IsUp: e.IsUp, Rng: e.Rng}
	case *ForEach:
		return &ForEach{Ident: e.Ident, Iterable: f(e.Iterable), Body: f(e.Body), Rng: e.Rng}

	case *TryCatch:
		var catch *CatchClause
		if e.Catch != nil {
			catch = &CatchClause{Param: e.Catch.Param, Body: f(e.Catch.Body)}
		}
		return &TryCatch{Body: f(e.Body), Catch: catch, Finalizer: mapOpt(f, e.Finalizer), Rng: e.Rng}

	case *DecisionTree:
		targets := make([]DecisionTarget, len(e.Targets))
		for i, t := range e.Targets {
			targets[i] = DecisionTarget{Bindings: t.Bindings, Body: f(t.Body)}
		}
		return &DecisionTree{Expr: f(e.Expr), Targets: targets, Rng: e.Rng}
	case *DecisionTreeSuccess:
		return &DecisionTreeSuccess{Index: e.Index, BoundValues: mapMany(f, e.BoundValues), Typ: e.Typ, Rng: e.Rng}

	default:
		panic(fmt.Sprintf("MapChildren: unhandled expression type %T", e))
	}
}

func mapMany(f func(Expr) Expr, exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = f(e)
	}
	return out
}

func mapOpt(f func(Expr) Expr, e Expr) Expr {
	if e == nil {
		return nil
	}
	return f(e)
}

func mapCallInfo(f func(Expr) Expr, info CallInfo) CallInfo {
	return CallInfo{
		This:              mapOpt(f, info.This),
		Args:              mapMany(f, info.Args),
		SignatureArgTypes: info.SignatureArgTypes,
	}
}

// SubExpressions enumerates a node's immediate children without recursing.
// Analyses that need a custom traversal (escape analysis, reference
// counting) drive themselves with this instead of Visit.
func SubExpressions(e Expr) []Expr {
	switch e := e.(type) {
	case *IdentExpr, *Import, *Debugger, *Literal:
		return nil

	case *NewTuple:
		return e.Items
	case *NewArray:
		return e.Items
	case *NewList:
		return collect(e.Head, e.Tail)
	case *NewOption:
		return collect(e.Value)
	case *NewRecord:
		return e.Fields
	case *NewUnionCase:
		return e.Fields
	case *ErasedUnion:
		return []Expr{e.Value}

	case *TypeTest:
		return []Expr{e.Expr}
	case *Cast:
		return []Expr{e.Expr}

	case *Lambda:
		return []Expr{e.Body}
	case *Delegate:
		return []Expr{e.Body}

	case *ObjectExpr:
		var out []Expr
		for _, m := range e.Members {
			out = append(out, m.Body)
		}
		if e.BaseCall != nil {
			out = append(out, e.BaseCall)
		}
		return out

	case *CurriedApply:
		return append([]Expr{e.Applied}, e.Args...)
	case *Call:
		return append([]Expr{e.Callee}, callInfoExprs(e.Info)...)
	case *Emit:
		return callInfoExprs(e.Info)

	case *UnaryOp:
		return []Expr{e.Operand}
	case *BinaryOp:
		return []Expr{e.Left, e.Right}
	case *LogicalOp:
		return []Expr{e.Left, e.Right}

	case *Get:
		out := []Expr{e.Expr}
		if eg, ok := e.Kind.(ExprGet); ok {
			out = append(out, eg.Index)
		}
		return out
	case *Set:
		out := []Expr{e.Target}
		if es, ok := e.Kind.(ExprSet); ok {
			out = append(out, es.Index)
		}
		return append(out, e.Value)

	case *Throw:
		return collect(e.Value)
	case *Sequential:
		return e.Exprs

	case *Let:
		var out []Expr
		for _, b := range e.Bindings {
			out = append(out, b.Value)
		}
		return append(out, e.Body)

	case *IfThenElse:
		return []Expr{e.Cond, e.Then, e.Else}

	case *WhileLoop:
		return []Expr{e.Guard, e.Body}
	case *ForLoop:
		return []Expr{e.Start, e.Limit, e.Body}
	case *ForEach:
		return []Expr{e.Iterable, e.Body}

	case *TryCatch:
		out := []Expr{e.Body}
		if e.Catch != nil {
			out = append(out, e.Catch.Body)
		}
		if e.Finalizer != nil {
			out = append(out, e.Finalizer)
		}
		return out

	case *DecisionTree:
		out := []Expr{e.Expr}
		for _, t := range e.Targets {
			out = append(out, t.Body)
		}
		return out
	case *DecisionTreeSuccess:
		return e.BoundValues

	default:
		panic(fmt.Sprintf("SubExpressions: unhandled expression type %T", e))
	}
}

func collect(exprs ...Expr) []Expr {
	var out []Expr
	for _, e := range exprs {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

func callInfoExprs(info CallInfo) []Expr {
	return append(collect(info.This), info.Args...)
}
