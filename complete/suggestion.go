package complete

import (
	"strings"

	"github.com/dhamidi/jcomplete/java/syntax"
)

type Kind int

const (
	KindField Kind = iota
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	}
	return "unknown"
}

// Insert is editor-specific placement data. It is filled in by
// Editor.SetInfo, never by a matcher.
type Insert struct {
	Prefix       string
	ReplaceStart int
	ReplaceEnd   int
	Text         string
	CursorOffset int // relative to ReplaceStart
	Snippet      bool
}

// Description is the part shared by all suggestion descriptors. For methods
// Type holds the return type.
type Description struct {
	Name      string
	Type      string
	Modifiers syntax.Modifiers
	Insert    Insert
}

func (d *Description) Describe() *Description {
	return d
}

// Suggestion is a *FieldDescription or a *MethodDescription.
type Suggestion interface {
	Describe() *Description
	Kind() Kind
	// Detail is the one-line signature shown next to the name.
	Detail() string
	suggestion()
}

type FieldDescription struct {
	Description
}

func NewFieldDescription(name, typ string, mods syntax.Modifiers) *FieldDescription {
	return &FieldDescription{Description{Name: name, Type: typ, Modifiers: mods}}
}

func (*FieldDescription) Kind() Kind       { return KindField }
func (f *FieldDescription) Detail() string { return f.Type }
func (*FieldDescription) suggestion()      {}

type MethodDescription struct {
	Description
	TypeParameters []string
	Parameters     []syntax.Parameter
}

func NewMethodDescription(name, returnType string, mods syntax.Modifiers, typeParams []string) *MethodDescription {
	return &MethodDescription{
		Description:    Description{Name: name, Type: returnType, Modifiers: mods},
		TypeParameters: typeParams,
	}
}

func (*MethodDescription) Kind() Kind  { return KindMethod }
func (*MethodDescription) suggestion() {}

func (m *MethodDescription) ReturnType() string {
	return m.Type
}

// Detail renders "<T> R name(A a, B b)".
func (m *MethodDescription) Detail() string {
	var sb strings.Builder
	if len(m.TypeParameters) > 0 {
		sb.WriteString("<" + strings.Join(m.TypeParameters, ", ") + "> ")
	}
	sb.WriteString(m.Type + " " + m.Name + "(")
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Sink collects the suggestions of one completion request. It only grows.
type Sink struct {
	items []Suggestion
}

func (s *Sink) Add(sg Suggestion) {
	s.items = append(s.items, sg)
}

func (s *Sink) Len() int {
	return len(s.items)
}

// Items returns a copy of the collected suggestions in insertion order.
func (s *Sink) Items() []Suggestion {
	out := make([]Suggestion, len(s.items))
	copy(out, s.items)
	return out
}
