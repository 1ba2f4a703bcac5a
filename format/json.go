package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jcomplete/complete"
	"github.com/dhamidi/jcomplete/java/syntax"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

type jsonClass struct {
	Name           string       `json:"name"`
	Kind           string       `json:"kind"`
	Visibility     string       `json:"visibility"`
	Modifiers      []string     `json:"modifiers,omitempty"`
	TypeParameters []string     `json:"typeParameters,omitempty"`
	Members        []jsonMember `json:"members"`
}

type jsonMember struct {
	Name       string          `json:"name,omitempty"`
	Kind       string          `json:"kind"`
	Type       string          `json:"type,omitempty"`
	Visibility string          `json:"visibility"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Parameters []jsonParameter `json:"parameters,omitempty"`
	Line       int             `json:"line"`
}

type jsonParameter struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Varargs bool   `json:"varargs,omitempty"`
}

type jsonSuggestion struct {
	Name   string     `json:"name"`
	Kind   string     `json:"kind"`
	Detail string     `json:"detail"`
	Static bool       `json:"static,omitempty"`
	Insert jsonInsert `json:"insert"`
}

type jsonInsert struct {
	Text         string `json:"text"`
	ReplaceStart int    `json:"replaceStart"`
	ReplaceEnd   int    `json:"replaceEnd"`
	CursorOffset int    `json:"cursorOffset"`
	Snippet      bool   `json:"snippet,omitempty"`
}

func (e *JSONEncoder) EncodeClass(cls *syntax.ClassDecl) error {
	data := jsonClass{
		Name:           cls.Name,
		Kind:           string(cls.Kind),
		Visibility:     cls.Modifiers.Visibility(),
		Modifiers:      cls.Modifiers.Keywords(),
		TypeParameters: typeParameters(cls.TypeParameters),
		Members:        make([]jsonMember, 0, len(cls.Members)),
	}
	for _, m := range cls.Members {
		data.Members = append(data.Members, buildMember(m))
	}
	return e.write(data)
}

func buildMember(m syntax.Member) jsonMember {
	mods := m.MemberModifiers()
	jm := jsonMember{
		Name:       m.MemberName(),
		Kind:       MemberKind(m),
		Type:       MemberType(m),
		Visibility: mods.Visibility(),
		Modifiers:  mods.Keywords(),
		Line:       m.MemberSpan().Start.Line,
	}
	switch m := m.(type) {
	case *syntax.MethodDecl:
		jm.Parameters = buildParameters(m.Parameters)
	case *syntax.ConstructorDecl:
		jm.Parameters = buildParameters(m.Parameters)
	}
	return jm
}

func buildParameters(params []syntax.Parameter) []jsonParameter {
	result := make([]jsonParameter, len(params))
	for i, p := range params {
		result[i] = jsonParameter{Name: p.Name, Type: p.Type, Varargs: p.Varargs}
	}
	return result
}

func (e *JSONEncoder) EncodeSuggestions(items []complete.Suggestion) error {
	data := make([]jsonSuggestion, 0, len(items))
	for _, s := range items {
		d := s.Describe()
		data = append(data, jsonSuggestion{
			Name:   d.Name,
			Kind:   s.Kind().String(),
			Detail: s.Detail(),
			Static: d.Modifiers.IsStatic(),
			Insert: jsonInsert{
				Text:         d.Insert.Text,
				ReplaceStart: d.Insert.ReplaceStart,
				ReplaceEnd:   d.Insert.ReplaceEnd,
				CursorOffset: d.Insert.CursorOffset,
				Snippet:      d.Insert.Snippet,
			},
		})
	}
	return e.write(data)
}

func (e *JSONEncoder) write(v any) error {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}
