// Package runtimelib binds the optimizer's core-library collaborator to the
// runtime support modules shipped with compiled programs. It only builds
// expressions referencing runtime helpers; it never evaluates anything, so
// it is safe to share across the parallel per-declaration pipelines.
package runtimelib

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/iancoleman/strcase"

	"github.com/fern-lang/fern/pkg/ir"
)

const importCacheSize = 256

// Library materializes sequence coercions, interface casts, and
// curried/fixed-arity bridges as calls into the runtime helper module.
type Library struct {
	module  string
	imports *lru.Cache[importKey, *ir.Import]
}

type importKey struct {
	selector string
	path     string
}

// New returns a Library rooted at the given runtime module import path,
// e.g. "fern-runtime".
func New(module string) *Library {
	imports, err := lru.New[importKey, *ir.Import](importCacheSize)
	if err != nil {
		panic(fmt.Sprintf("runtimelib: building import cache: %v", err))
	}
	return &Library{module: module, imports: imports}
}

// CoerceToSequence wraps e in the runtime's generic sequence adapter.
func (l *Library) CoerceToSequence(e ir.Expr, target ir.SeqType) ir.Expr {
	return &ir.Call{
		Kind:   ir.StaticCall,
		Callee: l.helper("toSeq", "seq"),
		Info:   ir.CallInfo{Args: []ir.Expr{e}},
		Typ:    target,
		Rng:    e.Range(),
	}
}

// CastToInterface casts e to the target interface by pairing it with the
// interface's dispatch table.
func (l *Library) CastToInterface(e ir.Expr, target ir.DeclaredType) ir.Expr {
	table := l.helper(strcase.ToLowerCamel(target.Name), "interfaces")
	return &ir.Call{
		Kind:   ir.StaticCall,
		Callee: l.helper("castToInterface", "util"),
		Info:   ir.CallInfo{Args: []ir.Expr{e, table}},
		Typ:    target,
		Rng:    e.Range(),
	}
}

// PartiallyApply applies args to a fixed-arity fn that expects arity
// arguments, producing a curried value of type typ that collects the rest.
func (l *Library) PartiallyApply(fn ir.Expr, arity int, args []ir.Expr, typ ir.Type) ir.Expr {
	missing := &ir.Literal{Kind: ir.IntLiteral, IntVal: int64(arity - len(args)), Typ: ir.IntType}
	return &ir.Call{
		Kind:   ir.StaticCall,
		Callee: l.helper("partialApply", "functions"),
		Info:   ir.CallInfo{Args: append([]ir.Expr{missing, fn}, args...)},
		Typ:    typ,
		Rng:    fn.Range(),
	}
}

// UncurryAtRuntime wraps a curried function value so it accepts arity
// arguments at once.
func (l *Library) UncurryAtRuntime(arity int, fn ir.Expr) ir.Expr {
	return &ir.Call{
		Kind:   ir.StaticCall,
		Callee: l.helper(fmt.Sprintf("uncurry%d", arity), "functions"),
		Info:   ir.CallInfo{Args: []ir.Expr{fn}},
		Typ:    uncurriedType(arity, fn.Type()),
		Rng:    fn.Range(),
	}
}

func uncurriedType(arity int, t ir.Type) ir.Type {
	params, ret := ir.NestedLambdaType(t)
	if len(params) < arity {
		// The value's static type does not expose its full shape (generic
		// position); the helper still works, but we can only type the result
		// loosely.
		return ir.AnyType
	}
	for i := len(params) - 1; i >= arity; i-- {
		ret = ir.LambdaType{Arg: params[i], Ret: ret}
	}
	return ir.DelegateType{Params: params[:arity], Ret: ret}
}

// helper returns an import of one runtime helper entry point. Imports are
// immutable, so they are cached and shared between call sites.
func (l *Library) helper(selector, file string) *ir.Import {
	key := importKey{selector: selector, path: l.module + "/" + file}
	if imp, ok := l.imports.Get(key); ok {
		return imp
	}
	imp := &ir.Import{Selector: key.selector, Path: key.path, Typ: ir.AnyType}
	l.imports.Add(key, imp)
	return imp
}
