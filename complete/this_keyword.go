package complete

import (
	"context"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jcomplete/java/syntax"
)

type Option func(*ThisKeyword)

func WithLogger(log commonlog.Logger) Option {
	return func(m *ThisKeyword) {
		m.log = log
	}
}

// ThisKeyword completes "this." and "this.<prefix>" with the non-static
// fields and methods declared directly on the file's primary type.
type ThisKeyword struct {
	provider syntax.Provider
	log      commonlog.Logger
}

func NewThisKeyword(provider syntax.Provider, opts ...Option) *ThisKeyword {
	m := &ThisKeyword{
		provider: provider,
		log:      commonlog.GetLogger("jcomplete.complete.this"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Process claims the statement once the trigger matches and the file
// parses, even if no member survives the filter.
func (m *ThisKeyword) Process(ctx context.Context, ed Editor, statement string, sink *Sink) bool {
	prefix, ok := MatchThis(statement)
	if !ok {
		return false
	}

	cu, err := m.provider.Parse(ctx, []byte(ed.Text()))
	if err != nil {
		m.log.Debugf("process: can not parse: %s", err)
		return false
	}

	m.Suggest(ed, cu, prefix, sink)
	return true
}

// Suggest appends a descriptor for every non-static field and method of
// the primary type whose name starts with prefix, in declaration order.
func (m *ThisKeyword) Suggest(ed Editor, cu *syntax.CompilationUnit, prefix string, sink *Sink) {
	cls, ok := cu.PrimaryType()
	if !ok {
		return
	}

	for _, member := range cls.Members {
		switch member := member.(type) {
		case *syntax.FieldDecl:
			m.addField(member, ed, prefix, sink)
		case *syntax.MethodDecl:
			m.addMethod(member, ed, prefix, sink)
		}
	}
}

func (m *ThisKeyword) addField(field *syntax.FieldDecl, ed Editor, prefix string, sink *Sink) {
	if field.Modifiers.IsStatic() {
		m.log.Debugf("skipping static field %s", field.Name)
		return
	}
	if !strings.HasPrefix(field.Name, prefix) {
		return
	}
	desc := NewFieldDescription(field.Name, field.Type, field.Modifiers)
	ed.SetInfo(desc, prefix)
	sink.Add(desc)
}

func (m *ThisKeyword) addMethod(method *syntax.MethodDecl, ed Editor, prefix string, sink *Sink) {
	if method.Modifiers.IsStatic() {
		m.log.Debugf("skipping static method %s", method.Name)
		return
	}
	if !strings.HasPrefix(method.Name, prefix) {
		return
	}
	typeParams := make([]string, 0, len(method.TypeParameters))
	for _, tp := range method.TypeParameters {
		typeParams = append(typeParams, tp.String())
	}
	desc := NewMethodDescription(method.Name, method.ReturnType, method.Modifiers, typeParams)
	desc.Parameters = method.Parameters
	ed.SetInfo(desc, prefix)
	sink.Add(desc)
}
