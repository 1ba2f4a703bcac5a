package codebase

import (
	"strconv"
	"strings"

	"github.com/dhamidi/jcomplete/complete"
)

// Editor is a document with a cursor. It implements complete.Editor.
type Editor struct {
	text     string
	offset   int
	snippets bool
}

func NewEditor(text string, offset int, snippets bool) *Editor {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	return &Editor{text: text, offset: offset, snippets: snippets}
}

func (e *Editor) Text() string {
	return e.text
}

func (e *Editor) Offset() int {
	return e.offset
}

// Statement returns the text between the last statement boundary before
// the cursor and the cursor, without leading whitespace.
func (e *Editor) Statement() string {
	before := e.text[:e.offset]
	start := strings.LastIndexAny(before, ";{}") + 1
	return strings.TrimLeft(before[start:], " \t\r\n")
}

// SetInfo records where and what to insert for s. The replace range covers
// the typed prefix; methods get parentheses with the cursor inside them
// when they take parameters.
func (e *Editor) SetInfo(s complete.Suggestion, prefix string) {
	d := s.Describe()
	ins := complete.Insert{
		Prefix:       prefix,
		ReplaceStart: e.offset - len(prefix),
		ReplaceEnd:   e.offset,
		Text:         d.Name,
		CursorOffset: len(d.Name),
	}

	if m, ok := s.(*complete.MethodDescription); ok {
		ins.Text = m.Name + "()"
		ins.CursorOffset = len(ins.Text)
		if len(m.Parameters) > 0 {
			ins.CursorOffset = len(m.Name) + 1
			if e.snippets {
				ins.Text = formatMethodSnippet(m)
				ins.Snippet = true
			}
		}
	}

	d.Insert = ins
}

func formatMethodSnippet(m *complete.MethodDescription) string {
	var placeholders []string
	for i, p := range m.Parameters {
		name := p.Name
		if name == "" {
			name = p.Type
		}
		placeholders = append(placeholders, "${"+strconv.Itoa(i+1)+":"+name+"}")
	}
	return m.Name + "(" + strings.Join(placeholders, ", ") + ")"
}
