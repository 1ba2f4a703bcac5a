// Package complete implements contextual completion matchers for Java
// source and the pipeline that runs them.
package complete

import "context"

// Editor is the view of the editing session a matcher needs.
type Editor interface {
	// Text returns the full current text of the file being edited.
	Text() string
	// SetInfo attaches editor-specific insertion data to a suggestion.
	SetInfo(s Suggestion, prefix string)
}

// Matcher is one completion rule. Process reports whether the rule claimed
// the statement; when it does, no later matcher is consulted. A matcher
// only ever appends to sink.
type Matcher interface {
	Process(ctx context.Context, ed Editor, statement string, sink *Sink) bool
}

type MatcherFunc func(ctx context.Context, ed Editor, statement string, sink *Sink) bool

func (f MatcherFunc) Process(ctx context.Context, ed Editor, statement string, sink *Sink) bool {
	return f(ctx, ed, statement, sink)
}

// Pipeline runs matchers in order until one claims the statement.
type Pipeline struct {
	matchers []Matcher
}

func NewPipeline(matchers ...Matcher) *Pipeline {
	return &Pipeline{matchers: matchers}
}

// Complete returns the suggestions of the first matcher that handles
// statement, and false if none did.
func (p *Pipeline) Complete(ctx context.Context, ed Editor, statement string) ([]Suggestion, bool) {
	var sink Sink
	for _, m := range p.matchers {
		if m.Process(ctx, ed, statement, &sink) {
			return sink.Items(), true
		}
	}
	return sink.Items(), false
}
