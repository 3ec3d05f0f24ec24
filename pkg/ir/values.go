package ir

// NewTuple constructs a tuple value.
type NewTuple struct {
	Items []Expr
	Rng   *SourceRange
}

func (e *NewTuple) Type() Type {
	items := make([]Type, len(e.Items))
	for i, item := range e.Items {
		items[i] = item.Type()
	}
	return TupleType{Items: items}
}

func (e *NewTuple) Range() *SourceRange { return rangeOf(e.Rng, e.Items...) }
func (e *NewTuple) isExpr()             {}

// NewArray constructs a flat array value.
type NewArray struct {
	Items []Expr
	Elem  Type
	Rng   *SourceRange
}

func (e *NewArray) Type() Type          { return ArrayType{Elem: e.Elem} }
func (e *NewArray) Range() *SourceRange { return rangeOf(e.Rng, e.Items...) }
func (e *NewArray) isExpr()             {}

// NewList is one cons cell of an immutable list. A nil Head and Tail is the
// empty list.
type NewList struct {
	Head Expr
	Tail Expr
	Elem Type
	Rng  *SourceRange
}

func (e *NewList) Type() Type          { return ListType{Elem: e.Elem} }
func (e *NewList) Range() *SourceRange { return rangeOf(e.Rng, e.Head, e.Tail) }
func (e *NewList) isExpr()             {}

// NewOption constructs an option value. A nil Value is None.
type NewOption struct {
	Value Expr
	Elem  Type
	Rng   *SourceRange
}

func (e *NewOption) Type() Type          { return OptionType{Elem: e.Elem} }
func (e *NewOption) Range() *SourceRange { return rangeOf(e.Rng, e.Value) }
func (e *NewOption) isExpr()             {}

// NewRecord constructs a record value with fields in declaration order.
type NewRecord struct {
	Fields []Expr
	Typ    Type
	Rng    *SourceRange
}

func (e *NewRecord) Type() Type          { return e.Typ }
func (e *NewRecord) Range() *SourceRange { return rangeOf(e.Rng, e.Fields...) }
func (e *NewRecord) isExpr()             {}

// NewUnionCase constructs one case of a tagged union.
type NewUnionCase struct {
	Tag    int
	Fields []Expr
	Typ    Type
	Rng    *SourceRange
}

func (e *NewUnionCase) Type() Type          { return e.Typ }
func (e *NewUnionCase) Range() *SourceRange { return rangeOf(e.Rng, e.Fields...) }
func (e *NewUnionCase) isExpr()             {}

// ErasedUnion wraps a value whose erased-union type is represented at
// runtime by the value itself.
type ErasedUnion struct {
	Value Expr
	Typ   Type
	Rng   *SourceRange
}

func (e *ErasedUnion) Type() Type          { return e.Typ }
func (e *ErasedUnion) Range() *SourceRange { return rangeOf(e.Rng, e.Value) }
func (e *ErasedUnion) isExpr()             {}

// rangeOf picks the node's own range when present, otherwise the first
// child range available.
func rangeOf(own *SourceRange, children ...Expr) *SourceRange {
	if own != nil {
		return own
	}
	for _, c := range children {
		if c == nil {
			continue
		}
		if r := c.Range(); r != nil {
			return r
		}
	}
	return nil
}

// ListItems flattens a statically known list spine into its elements.
// It reports false as soon as the spine reaches anything other than a cons
// cell, meaning the list's length is not known here.
func ListItems(e Expr) ([]Expr, bool) {
	var items []Expr
	for {
		cell, ok := e.(*NewList)
		if !ok {
			return nil, false
		}
		if cell.Head == nil {
			return items, true
		}
		items = append(items, cell.Head)
		if cell.Tail == nil {
			return items, true
		}
		e = cell.Tail
	}
}
