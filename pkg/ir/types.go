package ir

import (
	"fmt"
	"strings"
)

// Type represents the static type of an expression. The set of constructors
// is closed: the front end has already resolved and checked everything, so
// types here only need equality and enough structure for the uncurrying
// passes to reason about function shapes.
type Type interface {
	Eq(Type) bool
	fmt.Stringer
}

// BasicType covers the scalar types that carry no structure of their own.
type BasicType string

const (
	UnitType   BasicType = "Unit"
	BoolType   BasicType = "Bool"
	IntType    BasicType = "Int"
	FloatType  BasicType = "Float"
	StringType BasicType = "String"
	CharType   BasicType = "Char"
	RegexpType BasicType = "Regexp"
	AnyType    BasicType = "Any"
)

func (bt BasicType) Eq(other Type) bool {
	ot, ok := other.(BasicType)
	return ok && bt == ot
}

func (bt BasicType) String() string {
	return string(bt)
}

// GenericParam is a type parameter left unresolved by the front end.
type GenericParam struct {
	Name string
}

func (gp GenericParam) Eq(other Type) bool {
	ot, ok := other.(GenericParam)
	return ok && gp.Name == ot.Name
}

func (gp GenericParam) String() string {
	return "'" + gp.Name
}

// OptionType is an optional value of Elem.
type OptionType struct {
	Elem Type
}

func (ot OptionType) Eq(other Type) bool {
	o, ok := other.(OptionType)
	return ok && ot.Elem.Eq(o.Elem)
}

func (ot OptionType) String() string {
	return fmt.Sprintf("Option<%s>", ot.Elem)
}

// ListType is an immutable cons list of Elem.
type ListType struct {
	Elem Type
}

func (lt ListType) Eq(other Type) bool {
	o, ok := other.(ListType)
	return ok && lt.Elem.Eq(o.Elem)
}

func (lt ListType) String() string {
	return fmt.Sprintf("List<%s>", lt.Elem)
}

// ArrayType is a mutable flat array of Elem.
type ArrayType struct {
	Elem Type
}

func (at ArrayType) Eq(other Type) bool {
	o, ok := other.(ArrayType)
	return ok && at.Elem.Eq(o.Elem)
}

func (at ArrayType) String() string {
	return fmt.Sprintf("Array<%s>", at.Elem)
}

// SeqType is the generic sequence interface the runtime iterates over.
// Lists and arrays both coerce to it.
type SeqType struct {
	Elem Type
}

func (st SeqType) Eq(other Type) bool {
	o, ok := other.(SeqType)
	return ok && st.Elem.Eq(o.Elem)
}

func (st SeqType) String() string {
	return fmt.Sprintf("Seq<%s>", st.Elem)
}

// TupleType is a fixed-width product type.
type TupleType struct {
	Items []Type
}

func (tt TupleType) Eq(other Type) bool {
	o, ok := other.(TupleType)
	if !ok || len(tt.Items) != len(o.Items) {
		return false
	}
	for i, item := range tt.Items {
		if !item.Eq(o.Items[i]) {
			return false
		}
	}
	return true
}

func (tt TupleType) String() string {
	names := make([]string, len(tt.Items))
	for i, item := range tt.Items {
		names[i] = item.String()
	}
	return "(" + strings.Join(names, " * ") + ")"
}

// LambdaType is a curried function type: exactly one argument, possibly
// returning another function. This is the shape the front end produces for
// every source-level function.
type LambdaType struct {
	Arg Type
	Ret Type
}

func (lt LambdaType) Eq(other Type) bool {
	o, ok := other.(LambdaType)
	return ok && lt.Arg.Eq(o.Arg) && lt.Ret.Eq(o.Ret)
}

func (lt LambdaType) String() string {
	return fmt.Sprintf("(%s -> %s)", lt.Arg, lt.Ret)
}

// DelegateType is a fixed-arity function type matching the target runtime's
// native calling convention. The optimizer introduces these; the front end
// never does.
type DelegateType struct {
	Params []Type
	Ret    Type
}

func (dt DelegateType) Eq(other Type) bool {
	o, ok := other.(DelegateType)
	if !ok || len(dt.Params) != len(o.Params) || !dt.Ret.Eq(o.Ret) {
		return false
	}
	for i, p := range dt.Params {
		if !p.Eq(o.Params[i]) {
			return false
		}
	}
	return true
}

func (dt DelegateType) String() string {
	names := make([]string, len(dt.Params))
	for i, p := range dt.Params {
		names[i] = p.String()
	}
	return fmt.Sprintf("delegate(%s): %s", strings.Join(names, ", "), dt.Ret)
}

// DeclaredType is a nominal type declared by user or library code: a record,
// union, enum, class, or interface, possibly instantiated with type
// arguments.
type DeclaredType struct {
	Name      string
	Args      []Type
	Interface bool
}

func (dt DeclaredType) Eq(other Type) bool {
	o, ok := other.(DeclaredType)
	if !ok || dt.Name != o.Name || len(dt.Args) != len(o.Args) {
		return false
	}
	for i, a := range dt.Args {
		if !a.Eq(o.Args[i]) {
			return false
		}
	}
	return true
}

func (dt DeclaredType) String() string {
	if len(dt.Args) == 0 {
		return dt.Name
	}
	names := make([]string, len(dt.Args))
	for i, a := range dt.Args {
		names[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", dt.Name, strings.Join(names, ", "))
}

// NestedLambdaType unrolls a chain of curried function types into the full
// parameter list and the final return type. A non-function type returns an
// empty parameter list and itself.
func NestedLambdaType(t Type) ([]Type, Type) {
	var params []Type
	for {
		lt, ok := t.(LambdaType)
		if !ok {
			return params, t
		}
		params = append(params, lt.Arg)
		t = lt.Ret
	}
}

// CurriedArity is the number of single-argument applications needed to
// saturate a value of type t. Zero for non-function types.
func CurriedArity(t Type) int {
	params, _ := NestedLambdaType(t)
	return len(params)
}

// UncurryType flattens a curried function type of arity two or more into its
// fixed-arity delegate form. Types that are not curried functions, and
// single-argument functions (already native shape), are returned unchanged.
func UncurryType(t Type) Type {
	params, ret := NestedLambdaType(t)
	if len(params) < 2 {
		return t
	}
	return DelegateType{Params: params, Ret: ret}
}
