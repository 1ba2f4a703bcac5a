// Package treesitter implements syntax.Provider on top of the tree-sitter
// Java grammar.
package treesitter

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/dhamidi/jcomplete/java/syntax"
)

var javaLanguage = sync.OnceValue(func() *tree_sitter.Language {
	return tree_sitter.NewLanguage(tree_sitter_java.Language())
})

type Option func(*Provider)

// WithStrict makes any syntax error fail the parse, including errors
// inside method bodies.
func WithStrict(strict bool) Option {
	return func(p *Provider) {
		p.strict = strict
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Provider) {
		p.log = log
	}
}

// Provider parses whole Java files. It keeps no state between calls and
// may be used from several goroutines.
type Provider struct {
	strict bool
	log    commonlog.Logger
}

func New(opts ...Option) *Provider {
	p := &Provider{
		log: commonlog.GetLogger("jcomplete.treesitter"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Parse(ctx context.Context, src []byte) (*syntax.CompilationUnit, error) {
	tree, err := p.parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	bad := firstError(root, !p.strict)
	if bad == nil {
		c := converter{src: src}
		return c.compilationUnit(root), nil
	}

	if !p.strict {
		if fixed, ok := closeDanglingAccess(src); ok {
			retry, err := p.parse(ctx, fixed)
			if err != nil {
				return nil, err
			}
			defer retry.Close()
			if firstError(retry.RootNode(), true) == nil {
				p.log.Debugf("parsed after closing a dangling member access")
				c := converter{src: fixed}
				return c.compilationUnit(retry.RootNode()), nil
			}
		}
	}

	perr := errorFromNode(bad, src)
	p.log.Debugf("rejecting tree: %s", perr)
	return nil, perr
}

// parse runs one tree-sitter parse that stops when ctx is done.
func (p *Provider) parse(ctx context.Context, src []byte) (*tree_sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, &syntax.ParseError{Message: "parse cancelled", Cause: err}
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(javaLanguage()); err != nil {
		return nil, errors.Wrap(err, "set java language")
	}

	var cancelled uintptr
	parser.SetCancellationFlag(&cancelled)
	stop := context.AfterFunc(ctx, func() {
		atomic.StoreUintptr(&cancelled, 1)
	})
	tree := parser.Parse(src, nil)
	stop()

	if tree == nil {
		if err := ctx.Err(); err != nil {
			return nil, &syntax.ParseError{Message: "parse cancelled", Cause: err}
		}
		return nil, &syntax.ParseError{Message: "parser produced no tree"}
	}
	return tree, nil
}

// tolerated lists nodes whose contents may be broken without losing any
// member declarations: bodies and field initializers.
var tolerated = map[string]bool{
	"block":                           true,
	"constructor_body":                true,
	"array_initializer":               true,
	"element_value_array_initializer": true,
}

func firstError(n *tree_sitter.Node, tolerant bool) *tree_sitter.Node {
	if n == nil || !n.HasError() {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	if tolerant && (tolerated[n.Kind()] || isFieldInitializer(n)) {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if bad := firstError(n.Child(i), tolerant); bad != nil {
			return bad
		}
	}
	return nil
}

// isFieldInitializer reports whether n is the value of a field's variable
// declarator.
func isFieldInitializer(n *tree_sitter.Node) bool {
	decl := n.Parent()
	if decl == nil || decl.Kind() != "variable_declarator" {
		return false
	}
	value := decl.ChildByFieldName("value")
	if value == nil || value.Id() != n.Id() {
		return false
	}
	owner := decl.Parent()
	return owner != nil && (owner.Kind() == "field_declaration" || owner.Kind() == "constant_declaration")
}

func errorFromNode(n *tree_sitter.Node, src []byte) *syntax.ParseError {
	start := n.StartPosition()
	perr := &syntax.ParseError{
		Pos:  syntax.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
		Kind: n.Kind(),
	}
	if n.IsMissing() {
		perr.Message = "missing " + n.Kind()
		return perr
	}
	text := n.Utf8Text(src)
	if len(text) > 20 {
		text = text[:20] + "..."
	}
	perr.Message = "unexpected " + strconv.Quote(text)
	return perr
}
