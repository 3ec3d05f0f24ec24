package ir

import "fmt"

// SourceRange is a best-effort source location carried through the IR for
// diagnostics. The optimizer never reads it, only preserves it.
type SourceRange struct {
	Filename  string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Expr is one node of the expression IR: a closed, immutable sum type.
// Rewrites build new nodes rather than mutating in place; the only two
// functions that need to know every constructor are Visit and
// SubExpressions, which must stay in lockstep.
type Expr interface {
	// Type is the node's static result type, computed structurally.
	Type() Type
	// Range is the node's best-effort source location, propagated from the
	// most specific sub-node when the node itself carries none.
	Range() *SourceRange

	isExpr()
}

// Ident is a binding occurrence or reference target: a name unique within
// its binding scope (not globally), its static type, and whether the binding
// is mutable. Names are the sole key for scope-sensitive analyses.
type Ident struct {
	Name      string
	Typ       Type
	IsMutable bool
	Rng       *SourceRange
}

// WithType returns a copy of the ident carrying a different static type.
func (id Ident) WithType(t Type) Ident {
	id.Typ = t
	return id
}

// CallInfo carries the argument list of a call or emit operation, an
// optional receiver, and optionally the declared parameter types of the
// target signature. SignatureArgTypes is what drives uncurrying decisions;
// when absent the call's argument shapes are left alone.
type CallInfo struct {
	This              Expr
	Args              []Expr
	SignatureArgTypes []Type
}

// IdentExpr is a reference to a bound identifier.
type IdentExpr struct {
	Ident Ident
}

func (e *IdentExpr) Type() Type          { return e.Ident.Typ }
func (e *IdentExpr) Range() *SourceRange { return e.Ident.Rng }
func (e *IdentExpr) isExpr()             {}

// Import is a reference to a value from another compilation unit or from
// the runtime support library.
type Import struct {
	Selector string
	Path     string
	Typ      Type
	Rng      *SourceRange
}

func (e *Import) Type() Type          { return e.Typ }
func (e *Import) Range() *SourceRange { return e.Rng }
func (e *Import) isExpr()             {}

// Debugger is a breakpoint marker emitted verbatim by codegen.
type Debugger struct {
	Rng *SourceRange
}

func (e *Debugger) Type() Type          { return UnitType }
func (e *Debugger) Range() *SourceRange { return e.Rng }
func (e *Debugger) isExpr()             {}

// LiteralKind discriminates the scalar literal shapes.
type LiteralKind int

const (
	UnitLiteral LiteralKind = iota
	BoolLiteral
	IntLiteral
	FloatLiteral
	StringLiteral
	CharLiteral
	RegexpLiteral
	EnumLiteral
)

// Literal is a scalar constant: unit, boolean, numeric, string, char, regex
// source, or enum tag. Structured values (tuples, records, and friends) are
// their own node kinds because they have sub-expressions.
type Literal struct {
	Kind LiteralKind

	BoolVal   bool
	IntVal    int64
	FloatVal  float64
	StrVal    string // string, char, and regexp source
	EnumTag   int
	EnumName  string
	RegexOpts string

	Typ Type
	Rng *SourceRange
}

func (e *Literal) Type() Type          { return e.Typ }
func (e *Literal) Range() *SourceRange { return e.Rng }
func (e *Literal) isExpr()             {}

func (e *Literal) String() string {
	switch e.Kind {
	case UnitLiteral:
		return "()"
	case BoolLiteral:
		return fmt.Sprintf("%v", e.BoolVal)
	case IntLiteral:
		return fmt.Sprintf("%d", e.IntVal)
	case FloatLiteral:
		return fmt.Sprintf("%g", e.FloatVal)
	case StringLiteral:
		return fmt.Sprintf("%q", e.StrVal)
	case CharLiteral:
		return fmt.Sprintf("'%s'", e.StrVal)
	case RegexpLiteral:
		return fmt.Sprintf("/%s/%s", e.StrVal, e.RegexOpts)
	case EnumLiteral:
		return fmt.Sprintf("%s.%d", e.EnumName, e.EnumTag)
	default:
		panic(fmt.Sprintf("unhandled literal kind: %d", e.Kind))
	}
}

// Unit is the unit constant with no particular source location.
func Unit() *Literal {
	return &Literal{Kind: UnitLiteral, Typ: UnitType}
}
