package ir

// File is one fully elaborated compilation unit as handed over by the front
// end: declarations to optimize plus bookkeeping that later stages need.
// The optimizer replaces declaration bodies and passes everything else
// through untouched.
type File struct {
	SourcePath   string
	Decls        []Declaration
	UsedNames    map[string]struct{}
	Dependencies []string
}

// Declaration is one top-level item of a compilation unit. The optimizer
// preserves declaration shape (kind, names, arity) and only rewrites the
// expression bodies.
type Declaration interface {
	DeclName() string

	isDeclaration()
}

// ActionDecl is a top-level effectful statement run for its side effects.
type ActionDecl struct {
	Body Expr
}

func (d *ActionDecl) DeclName() string { return "" }
func (d *ActionDecl) isDeclaration()   {}

// ValueDecl is a named top-level value or function.
type ValueDecl struct {
	Name   string
	Body   Expr
	Public bool
}

func (d *ValueDecl) DeclName() string { return d.Name }
func (d *ValueDecl) isDeclaration()   {}

// ConstructorDecl is the implicit constructor of a class-like entity.
type ConstructorDecl struct {
	Name      string
	Arguments []Ident
	Body      Expr
}

func (d *ConstructorDecl) DeclName() string { return d.Name }
func (d *ConstructorDecl) isDeclaration()   {}

// OverrideDecl overrides an inherited member with a new body.
type OverrideDecl struct {
	Name       string
	EntityName string
	Arguments  []Ident
	Body       Expr
}

func (d *OverrideDecl) DeclName() string { return d.Name }
func (d *OverrideDecl) isDeclaration()   {}

// InterfaceMember is one member body of an interface cast group.
type InterfaceMember struct {
	Name string
	Body Expr
}

// InterfaceCastDecl groups the member bodies materialized for one
// entity-implements-interface relationship.
type InterfaceCastDecl struct {
	InterfaceName string
	EntityName    string
	Members       []InterfaceMember
}

func (d *InterfaceCastDecl) DeclName() string { return d.InterfaceName }
func (d *InterfaceCastDecl) isDeclaration()   {}
