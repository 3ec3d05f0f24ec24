package ir

// TypeTest checks at runtime whether a value inhabits a type.
type TypeTest struct {
	Expr     Expr
	TestType Type
	Rng      *SourceRange
}

func (e *TypeTest) Type() Type          { return BoolType }
func (e *TypeTest) Range() *SourceRange { return rangeOf(e.Rng, e.Expr) }
func (e *TypeTest) isExpr()             {}

// Cast views an expression at another type. Most casts at this level are
// erasable; the ones that are not get materialized by the cast resolution
// rule.
type Cast struct {
	Expr Expr
	Typ  Type
	Rng  *SourceRange
}

func (e *Cast) Type() Type          { return e.Typ }
func (e *Cast) Range() *SourceRange { return rangeOf(e.Rng, e.Expr) }
func (e *Cast) isExpr()             {}

// Lambda is a curried function literal: exactly one parameter. Name is an
// optional hint preserved for diagnostics and stack traces, "" when absent.
type Lambda struct {
	Param Ident
	Body  Expr
	Name  string
	Rng   *SourceRange
}

func (e *Lambda) Type() Type          { return LambdaType{Arg: e.Param.Typ, Ret: e.Body.Type()} }
func (e *Lambda) Range() *SourceRange { return rangeOf(e.Rng, e.Body) }
func (e *Lambda) isExpr()             {}

// Delegate is a fixed-arity function literal matching the target runtime's
// native calling convention.
type Delegate struct {
	Params []Ident
	Body   Expr
	Name   string
	Rng    *SourceRange
}

func (e *Delegate) Type() Type {
	params := make([]Type, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.Typ
	}
	return DelegateType{Params: params, Ret: e.Body.Type()}
}

func (e *Delegate) Range() *SourceRange { return rangeOf(e.Rng, e.Body) }
func (e *Delegate) isExpr()             {}

// ObjectMember is one member of an object literal.
type ObjectMember struct {
	Name string
	Body Expr
}

// ObjectExpr is an object literal implementing Typ, with an optional call to
// the base constructor.
type ObjectExpr struct {
	Members  []ObjectMember
	BaseCall Expr
	Typ      Type
	Rng      *SourceRange
}

func (e *ObjectExpr) Type() Type          { return e.Typ }
func (e *ObjectExpr) Range() *SourceRange { return e.Rng }
func (e *ObjectExpr) isExpr()             {}

// CurriedApply applies a curried value to one or more arguments, one at a
// time. Multiple args mean chained single-argument applications.
type CurriedApply struct {
	Applied Expr
	Args    []Expr
	Typ     Type
	Rng     *SourceRange
}

func (e *CurriedApply) Type() Type          { return e.Typ }
func (e *CurriedApply) Range() *SourceRange { return rangeOf(e.Rng, e.Applied) }
func (e *CurriedApply) isExpr()             {}

// CallKind discriminates the native call shapes.
type CallKind int

const (
	StaticCall CallKind = iota
	ConstructorCall
	InstanceCall
)

// Call is a native fixed-arity call: constructor, static, or instance.
type Call struct {
	Kind   CallKind
	Callee Expr
	Info   CallInfo
	Typ    Type
	Rng    *SourceRange
}

func (e *Call) Type() Type          { return e.Typ }
func (e *Call) Range() *SourceRange { return rangeOf(e.Rng, e.Callee) }
func (e *Call) isExpr()             {}

// Emit splices a target-language snippet, with call-shaped arguments.
type Emit struct {
	Macro string
	Info  CallInfo
	Typ   Type
	Rng   *SourceRange
}

func (e *Emit) Type() Type          { return e.Typ }
func (e *Emit) Range() *SourceRange { return e.Rng }
func (e *Emit) isExpr()             {}

// UnaryOperator is the set of unary operations.
type UnaryOperator int

const (
	UnaryMinus UnaryOperator = iota
	UnaryNot
	UnaryBitwiseNot
)

// UnaryOp applies a unary operator.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Expr
	Typ     Type
	Rng     *SourceRange
}

func (e *UnaryOp) Type() Type          { return e.Typ }
func (e *UnaryOp) Range() *SourceRange { return rangeOf(e.Rng, e.Operand) }
func (e *UnaryOp) isExpr()             {}

// BinaryOperator is the set of binary operations.
type BinaryOperator int

const (
	BinaryPlus BinaryOperator = iota
	BinaryMinus
	BinaryMultiply
	BinaryDivide
	BinaryModulus
	BinaryEqual
	BinaryUnequal
	BinaryLess
	BinaryLessOrEqual
	BinaryGreater
	BinaryGreaterOrEqual
)

// BinaryOp applies a binary operator.
type BinaryOp struct {
	Op    BinaryOperator
	Left  Expr
	Right Expr
	Typ   Type
	Rng   *SourceRange
}

func (e *BinaryOp) Type() Type          { return e.Typ }
func (e *BinaryOp) Range() *SourceRange { return rangeOf(e.Rng, e.Left, e.Right) }
func (e *BinaryOp) isExpr()             {}

// LogicalOperator is short-circuiting and/or.
type LogicalOperator int

const (
	LogicalAnd LogicalOperator = iota
	LogicalOr
)

// LogicalOp applies a short-circuiting boolean operator.
type LogicalOp struct {
	Op    LogicalOperator
	Left  Expr
	Right Expr
	Rng   *SourceRange
}

func (e *LogicalOp) Type() Type          { return BoolType }
func (e *LogicalOp) Range() *SourceRange { return rangeOf(e.Rng, e.Left, e.Right) }
func (e *LogicalOp) isExpr()             {}

// GetKind selects what a Get projects out of its subject. ExprGet is the
// only kind carrying a sub-expression (the index).
type GetKind interface {
	isGetKind()
}

// FieldGet projects a named record or object field.
type FieldGet struct{ Name string }

// TupleGet projects the Index-th tuple element.
type TupleGet struct{ Index int }

// UnionField projects the Index-th field of a union case.
type UnionField struct{ Index int }

// UnionTag projects a union value's case tag.
type UnionTag struct{}

// OptionValue projects the payload out of an option known to be present.
type OptionValue struct{}

// ExprGet indexes by a computed key.
type ExprGet struct{ Index Expr }

func (FieldGet) isGetKind()    {}
func (TupleGet) isGetKind()    {}
func (UnionField) isGetKind()  {}
func (UnionTag) isGetKind()    {}
func (OptionValue) isGetKind() {}
func (ExprGet) isGetKind()     {}

// Get projects a component out of a structured value.
type Get struct {
	Expr Expr
	Kind GetKind
	Typ  Type
	Rng  *SourceRange
}

func (e *Get) Type() Type          { return e.Typ }
func (e *Get) Range() *SourceRange { return rangeOf(e.Rng, e.Expr) }
func (e *Get) isExpr()             {}

// SetKind selects what a Set mutates.
type SetKind interface {
	isSetKind()
}

// FieldSet mutates a named field.
type FieldSet struct{ Name string }

// ExprSet mutates at a computed key.
type ExprSet struct{ Index Expr }

// VarSet mutates a mutable binding itself.
type VarSet struct{}

func (FieldSet) isSetKind() {}
func (ExprSet) isSetKind()  {}
func (VarSet) isSetKind()   {}

// Set is a mutation of a binding, field, or element.
type Set struct {
	Target Expr
	Kind   SetKind
	Value  Expr
	Rng    *SourceRange
}

func (e *Set) Type() Type          { return UnitType }
func (e *Set) Range() *SourceRange { return rangeOf(e.Rng, e.Target) }
func (e *Set) isExpr()             {}

// Throw raises Value as an exception. Its static type is whatever the
// surrounding context expects.
type Throw struct {
	Value Expr
	Typ   Type
	Rng   *SourceRange
}

func (e *Throw) Type() Type          { return e.Typ }
func (e *Throw) Range() *SourceRange { return rangeOf(e.Rng, e.Value) }
func (e *Throw) isExpr()             {}

// Sequential evaluates expressions in order; its value is the last one's.
type Sequential struct {
	Exprs []Expr
	Rng   *SourceRange
}

func (e *Sequential) Type() Type {
	if len(e.Exprs) == 0 {
		return UnitType
	}
	return e.Exprs[len(e.Exprs)-1].Type()
}

func (e *Sequential) Range() *SourceRange { return rangeOf(e.Rng, e.Exprs...) }
func (e *Sequential) isExpr()             {}

// Binding is one (identifier, value) pair of a Let.
type Binding struct {
	Ident Ident
	Value Expr
}

// Let binds one or more values in scope of Body.
type Let struct {
	Bindings []Binding
	Body     Expr
	Rng      *SourceRange
}

func (e *Let) Type() Type          { return e.Body.Type() }
func (e *Let) Range() *SourceRange { return rangeOf(e.Rng, e.Body) }
func (e *Let) isExpr()             {}

// IfThenElse is a conditional expression; both branches have the same type.
type IfThenElse struct {
	Cond Expr
	Then Expr
	Else Expr
	Rng  *SourceRange
}

func (e *IfThenElse) Type() Type          { return e.Then.Type() }
func (e *IfThenElse) Range() *SourceRange { return rangeOf(e.Rng, e.Then) }
func (e *IfThenElse) isExpr()             {}

// WhileLoop evaluates Body while Guard holds.
type WhileLoop struct {
	Guard Expr
	Body  Expr
	Rng   *SourceRange
}

func (e *WhileLoop) Type() Type          { return UnitType }
func (e *WhileLoop) Range() *SourceRange { return e.Rng }
func (e *WhileLoop) isExpr()             {}

// ForLoop is a counted loop from Start to Limit inclusive, upward or
// downward.
type ForLoop struct {
	Ident Ident
	Start Expr
	Limit Expr
	Body  Expr
	IsUp  bool
	Rng   *SourceRange
}

func (e *ForLoop) Type() Type          { return UnitType }
func (e *ForLoop) Range() *SourceRange { return e.Rng }
func (e *ForLoop) isExpr()             {}

// ForEach iterates a sequence, binding each element to Ident.
type ForEach struct {
	Ident    Ident
	Iterable Expr
	Body     Expr
	Rng      *SourceRange
}

func (e *ForEach) Type() Type          { return UnitType }
func (e *ForEach) Range() *SourceRange { return e.Rng }
func (e *ForEach) isExpr()             {}

// CatchClause binds the caught exception for its handler body.
type CatchClause struct {
	Param Ident
	Body  Expr
}

// TryCatch is structured exception handling with an optional handler and an
// optional finalizer.
type TryCatch struct {
	Body      Expr
	Catch     *CatchClause
	Finalizer Expr
	Rng       *SourceRange
}

func (e *TryCatch) Type() Type          { return e.Body.Type() }
func (e *TryCatch) Range() *SourceRange { return rangeOf(e.Rng, e.Body) }
func (e *TryCatch) isExpr()             {}

// DecisionTarget is one numbered success branch of a decision tree.
type DecisionTarget struct {
	Bindings []Ident
	Body     Expr
}

// DecisionTree is compiled pattern matching: an expression whose leaves are
// DecisionTreeSuccess nodes selecting a numbered target. Treated here as an
// opaque, effect-bearing control-flow node.
type DecisionTree struct {
	Expr    Expr
	Targets []DecisionTarget
	Rng     *SourceRange
}

func (e *DecisionTree) Type() Type {
	if len(e.Targets) == 0 {
		return UnitType
	}
	return e.Targets[0].Body.Type()
}

func (e *DecisionTree) Range() *SourceRange { return rangeOf(e.Rng, e.Expr) }
func (e *DecisionTree) isExpr()             {}

// DecisionTreeSuccess jumps to the Index-th target of the nearest enclosing
// decision tree, supplying its bound values.
type DecisionTreeSuccess struct {
	Index       int
	BoundValues []Expr
	Typ         Type
	Rng         *SourceRange
}

func (e *DecisionTreeSuccess) Type() Type          { return e.Typ }
func (e *DecisionTreeSuccess) Range() *SourceRange { return e.Rng }
func (e *DecisionTreeSuccess) isExpr()             {}

// NestedLambda unrolls a chain of single-parameter lambdas into the full
// parameter list and the innermost body. The name hint, if any, comes from
// the outermost lambda. Reports false for anything that is not a lambda.
func NestedLambda(e Expr) (params []Ident, body Expr, name string, ok bool) {
	outer, isLambda := e.(*Lambda)
	if !isLambda {
		return nil, nil, "", false
	}
	name = outer.Name
	for {
		lam, isLambda := e.(*Lambda)
		if !isLambda {
			return params, e, name, true
		}
		params = append(params, lam.Param)
		e = lam.Body
	}
}

// NestedApply flattens chained curried applications into the ultimate callee
// and the full argument list, in application order.
func NestedApply(e Expr) (callee Expr, args []Expr, ok bool) {
	apply, isApply := e.(*CurriedApply)
	if !isApply {
		return nil, nil, false
	}
	args = append([]Expr{}, apply.Args...)
	callee = apply.Applied
	for {
		inner, isApply := callee.(*CurriedApply)
		if !isApply {
			return callee, args, true
		}
		args = append(append([]Expr{}, inner.Args...), args...)
		callee = inner.Applied
	}
}
