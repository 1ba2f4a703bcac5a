package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/dhamidi/jcomplete/complete"
	"github.com/dhamidi/jcomplete/java/syntax"
)

// TableEncoder renders human readable tables.
type TableEncoder struct {
	w io.Writer
}

func NewTableEncoder(w io.Writer) *TableEncoder {
	return &TableEncoder{w: w}
}

func (e *TableEncoder) EncodeClass(cls *syntax.ClassDecl) error {
	header := strings.TrimSpace(cls.Modifiers.String() + " " + string(cls.Kind) + " " + cls.Name)
	if tps := typeParameters(cls.TypeParameters); len(tps) > 0 {
		header += "<" + strings.Join(tps, ", ") + ">"
	}
	if _, err := fmt.Fprintln(e.w, header); err != nil {
		return err
	}

	data := pterm.TableData{{"Line", "Kind", "Name", "Modifiers", "Type"}}
	for _, m := range cls.Members {
		data = append(data, []string{
			fmt.Sprint(m.MemberSpan().Start.Line),
			MemberKind(m),
			m.MemberName(),
			m.MemberModifiers().String(),
			MemberType(m),
		})
	}
	return e.render(data)
}

func (e *TableEncoder) EncodeSuggestions(items []complete.Suggestion) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(e.w, "no completions")
		return err
	}
	data := pterm.TableData{{"Kind", "Name", "Detail", "Insert"}}
	for _, s := range items {
		d := s.Describe()
		data = append(data, []string{s.Kind().String(), d.Name, s.Detail(), d.Insert.Text})
	}
	return e.render(data)
}

func (e *TableEncoder) render(data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.w, out)
	return err
}
