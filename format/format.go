// Package format renders parsed types and completion results for the
// command line.
package format

import (
	"strings"

	"github.com/dhamidi/jcomplete/complete"
	"github.com/dhamidi/jcomplete/java/syntax"
)

type Encoder interface {
	EncodeClass(cls *syntax.ClassDecl) error
	EncodeSuggestions(items []complete.Suggestion) error
}

// MemberKind names the kind of a class member as shown to users.
func MemberKind(m syntax.Member) string {
	switch m := m.(type) {
	case *syntax.FieldDecl:
		if m.Modifiers.IsEnum() {
			return "enum constant"
		}
		if m.Modifiers&syntax.ModRecord != 0 {
			return "component"
		}
		return "field"
	case *syntax.MethodDecl:
		return "method"
	case *syntax.ConstructorDecl:
		return "constructor"
	case *syntax.InitializerDecl:
		return "initializer"
	case *syntax.ClassDecl:
		return string(m.Kind)
	default:
		return "unknown"
	}
}

// MemberType renders the declared type of m, or the full signature for
// methods and constructors.
func MemberType(m syntax.Member) string {
	switch m := m.(type) {
	case *syntax.FieldDecl:
		return m.Type
	case *syntax.MethodDecl:
		desc := complete.NewMethodDescription(m.Name, m.ReturnType, m.Modifiers, typeParameters(m.TypeParameters))
		desc.Parameters = m.Parameters
		return desc.Detail()
	case *syntax.ConstructorDecl:
		return m.Name + "(" + parameterList(m.Parameters) + ")"
	default:
		return ""
	}
}

func typeParameters(tps []syntax.TypeParameter) []string {
	var out []string
	for _, tp := range tps {
		out = append(out, tp.String())
	}
	return out
}

func parameterList(params []syntax.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
