package syntax

import "strings"

// Position is a 1-based line and 0-based byte column.
type Position struct {
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

// CompilationUnit is the parsed form of one Java source file.
type CompilationUnit struct {
	Package   string
	Imports   []string
	TypeDecls []TypeDecl
}

// PrimaryType returns the first top-level type declaration if it is
// class-like. Files are assumed to have a single primary type; later
// declarations are never consulted.
func (cu *CompilationUnit) PrimaryType() (*ClassDecl, bool) {
	if cu == nil || len(cu.TypeDecls) == 0 {
		return nil, false
	}
	cls, ok := cu.TypeDecls[0].(*ClassDecl)
	return cls, ok
}

// TypeDecl is a top-level declaration: *ClassDecl or *ModuleDecl.
type TypeDecl interface {
	DeclName() string
	DeclSpan() Span
	typeDecl()
}

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindRecord     ClassKind = "record"
	ClassKindAnnotation ClassKind = "annotation"
)

// ClassDecl is any class-like declaration. It also appears as a Member
// when nested inside another type.
type ClassDecl struct {
	Kind           ClassKind
	Name           string
	Modifiers      Modifiers
	TypeParameters []TypeParameter
	Members        []Member
	Span           Span
}

func (c *ClassDecl) DeclName() string { return c.Name }
func (c *ClassDecl) DeclSpan() Span   { return c.Span }
func (*ClassDecl) typeDecl()          {}

func (c *ClassDecl) MemberName() string         { return c.Name }
func (c *ClassDecl) MemberModifiers() Modifiers { return c.Modifiers }
func (c *ClassDecl) MemberSpan() Span           { return c.Span }
func (*ClassDecl) member()                      {}

// ModuleDecl is a module-info declaration. It is not class-like.
type ModuleDecl struct {
	Name string
	Span Span
}

func (m *ModuleDecl) DeclName() string { return m.Name }
func (m *ModuleDecl) DeclSpan() Span   { return m.Span }
func (*ModuleDecl) typeDecl()          {}

// Member is a declaration directly inside a type body: *FieldDecl,
// *MethodDecl, *ConstructorDecl, *InitializerDecl or a nested *ClassDecl.
type Member interface {
	MemberName() string
	MemberModifiers() Modifiers
	MemberSpan() Span
	member()
}

type FieldDecl struct {
	Name      string
	Type      string
	Modifiers Modifiers
	Span      Span
}

func (f *FieldDecl) MemberName() string         { return f.Name }
func (f *FieldDecl) MemberModifiers() Modifiers { return f.Modifiers }
func (f *FieldDecl) MemberSpan() Span           { return f.Span }
func (*FieldDecl) member()                      {}

type MethodDecl struct {
	Name           string
	ReturnType     string
	Modifiers      Modifiers
	TypeParameters []TypeParameter
	Parameters     []Parameter
	Span           Span
}

func (m *MethodDecl) MemberName() string         { return m.Name }
func (m *MethodDecl) MemberModifiers() Modifiers { return m.Modifiers }
func (m *MethodDecl) MemberSpan() Span           { return m.Span }
func (*MethodDecl) member()                      {}

type ConstructorDecl struct {
	Name       string
	Modifiers  Modifiers
	Parameters []Parameter
	Span       Span
}

func (c *ConstructorDecl) MemberName() string         { return c.Name }
func (c *ConstructorDecl) MemberModifiers() Modifiers { return c.Modifiers }
func (c *ConstructorDecl) MemberSpan() Span           { return c.Span }
func (*ConstructorDecl) member()                      {}

// InitializerDecl is an instance or static initializer block.
type InitializerDecl struct {
	Modifiers Modifiers
	Span      Span
}

func (*InitializerDecl) MemberName() string           { return "" }
func (i *InitializerDecl) MemberModifiers() Modifiers { return i.Modifiers }
func (i *InitializerDecl) MemberSpan() Span           { return i.Span }
func (*InitializerDecl) member()                      {}

type Parameter struct {
	Name    string
	Type    string
	Varargs bool
}

func (p Parameter) String() string {
	t := p.Type
	if p.Varargs {
		t += "..."
	}
	if p.Name == "" {
		return t
	}
	return t + " " + p.Name
}

type TypeParameter struct {
	Name   string
	Bounds []string
}

// String renders the parameter the way javac prints a type parameter tree,
// e.g. "T extends Comparable<T> & Serializable".
func (tp TypeParameter) String() string {
	if len(tp.Bounds) == 0 {
		return tp.Name
	}
	return tp.Name + " extends " + strings.Join(tp.Bounds, " & ")
}
