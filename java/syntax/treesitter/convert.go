package treesitter

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dhamidi/jcomplete/java/syntax"
)

var classKinds = map[string]syntax.ClassKind{
	"class_declaration":           syntax.ClassKindClass,
	"interface_declaration":       syntax.ClassKindInterface,
	"enum_declaration":            syntax.ClassKindEnum,
	"record_declaration":          syntax.ClassKindRecord,
	"annotation_type_declaration": syntax.ClassKindAnnotation,
}

type converter struct {
	src []byte
}

func (c *converter) text(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(c.src)
}

func (c *converter) compilationUnit(root *tree_sitter.Node) *syntax.CompilationUnit {
	cu := &syntax.CompilationUnit{}
	for _, n := range namedChildren(root) {
		switch kind := n.Kind(); kind {
		case "package_declaration":
			for _, child := range namedChildren(n) {
				if child.Kind() == "identifier" || child.Kind() == "scoped_identifier" {
					cu.Package = syntax.NormalizeType(c.text(child))
				}
			}
		case "import_declaration":
			cu.Imports = append(cu.Imports, c.importName(n))
		case "module_declaration":
			cu.TypeDecls = append(cu.TypeDecls, &syntax.ModuleDecl{
				Name: syntax.NormalizeType(c.text(n.ChildByFieldName("name"))),
				Span: span(n),
			})
		default:
			if _, ok := classKinds[kind]; ok {
				cu.TypeDecls = append(cu.TypeDecls, c.classDecl(n))
			}
		}
	}
	return cu
}

func (c *converter) importName(n *tree_sitter.Node) string {
	text := strings.TrimSpace(c.text(n))
	text = strings.TrimPrefix(text, "import")
	text = strings.TrimSuffix(text, ";")
	return strings.Join(strings.Fields(text), " ")
}

func (c *converter) classDecl(n *tree_sitter.Node) *syntax.ClassDecl {
	cls := &syntax.ClassDecl{
		Kind:           classKinds[n.Kind()],
		Name:           c.text(n.ChildByFieldName("name")),
		Modifiers:      c.modifiers(n),
		TypeParameters: c.typeParameters(n.ChildByFieldName("type_parameters")),
		Span:           span(n),
	}

	if cls.Kind == syntax.ClassKindRecord {
		for _, p := range c.parameters(n.ChildByFieldName("parameters")) {
			cls.Members = append(cls.Members, &syntax.FieldDecl{
				Name:      p.Name,
				Type:      p.Type,
				Modifiers: syntax.ModPrivate | syntax.ModFinal | syntax.ModRecord,
				Span:      cls.Span,
			})
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	for _, child := range namedChildren(body) {
		switch child.Kind() {
		case "enum_constant":
			cls.Members = append(cls.Members, &syntax.FieldDecl{
				Name:      c.text(child.ChildByFieldName("name")),
				Type:      cls.Name,
				Modifiers: syntax.ModPublic | syntax.ModStatic | syntax.ModFinal | syntax.ModEnum,
				Span:      span(child),
			})
		case "enum_body_declarations":
			for _, decl := range namedChildren(child) {
				cls.Members = append(cls.Members, c.members(decl)...)
			}
		default:
			cls.Members = append(cls.Members, c.members(child)...)
		}
	}
	return cls
}

// members converts one body declaration. Field declarations may yield
// several members, one per declarator.
func (c *converter) members(n *tree_sitter.Node) []syntax.Member {
	switch kind := n.Kind(); kind {
	case "field_declaration", "constant_declaration":
		return c.fields(n)
	case "method_declaration":
		return []syntax.Member{c.method(n)}
	case "annotation_type_element_declaration":
		return []syntax.Member{&syntax.MethodDecl{
			Name:       c.text(n.ChildByFieldName("name")),
			ReturnType: c.typeText(n.ChildByFieldName("type"), n.ChildByFieldName("dimensions")),
			Modifiers:  c.modifiers(n),
			Span:       span(n),
		}}
	case "constructor_declaration", "compact_constructor_declaration":
		return []syntax.Member{&syntax.ConstructorDecl{
			Name:       c.text(n.ChildByFieldName("name")),
			Modifiers:  c.modifiers(n),
			Parameters: c.parameters(n.ChildByFieldName("parameters")),
			Span:       span(n),
		}}
	case "block":
		return []syntax.Member{&syntax.InitializerDecl{Span: span(n)}}
	case "static_initializer":
		return []syntax.Member{&syntax.InitializerDecl{Modifiers: syntax.ModStatic, Span: span(n)}}
	default:
		if _, ok := classKinds[kind]; ok {
			return []syntax.Member{c.classDecl(n)}
		}
	}
	return nil
}

func (c *converter) fields(n *tree_sitter.Node) []syntax.Member {
	mods := c.modifiers(n)
	typ := n.ChildByFieldName("type")

	var out []syntax.Member
	for _, child := range namedChildren(n) {
		if child.Kind() != "variable_declarator" {
			continue
		}
		out = append(out, &syntax.FieldDecl{
			Name:      c.text(child.ChildByFieldName("name")),
			Type:      c.typeText(typ, child.ChildByFieldName("dimensions")),
			Modifiers: mods,
			Span:      span(n),
		})
	}
	return out
}

func (c *converter) method(n *tree_sitter.Node) *syntax.MethodDecl {
	return &syntax.MethodDecl{
		Name:           c.text(n.ChildByFieldName("name")),
		ReturnType:     c.typeText(n.ChildByFieldName("type"), n.ChildByFieldName("dimensions")),
		Modifiers:      c.modifiers(n),
		TypeParameters: c.typeParameters(n.ChildByFieldName("type_parameters")),
		Parameters:     c.parameters(n.ChildByFieldName("parameters")),
		Span:           span(n),
	}
}

// typeText renders a type node plus optional trailing dimensions, as in
// "int a[]" or the legacy "int f()[]".
func (c *converter) typeText(typ, dims *tree_sitter.Node) string {
	return syntax.NormalizeType(c.text(typ) + c.text(dims))
}

// modifiers collects keyword modifiers from the declaration's modifiers
// child. Annotations are ignored.
func (c *converter) modifiers(n *tree_sitter.Node) syntax.Modifiers {
	var mods syntax.Modifiers
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || child.Kind() != "modifiers" {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			kw := child.Child(j)
			if kw == nil {
				continue
			}
			if mod, ok := syntax.ModifierFromKeyword(kw.Kind()); ok {
				mods |= mod
			}
		}
	}
	return mods
}

func (c *converter) typeParameters(n *tree_sitter.Node) []syntax.TypeParameter {
	if n == nil {
		return nil
	}
	var out []syntax.TypeParameter
	for _, child := range namedChildren(n) {
		if child.Kind() != "type_parameter" {
			continue
		}
		var tp syntax.TypeParameter
		for _, part := range namedChildren(child) {
			switch part.Kind() {
			case "type_identifier", "identifier":
				tp.Name = c.text(part)
			case "type_bound":
				for _, bound := range namedChildren(part) {
					tp.Bounds = append(tp.Bounds, syntax.NormalizeType(c.text(bound)))
				}
			}
		}
		out = append(out, tp)
	}
	return out
}

func (c *converter) parameters(n *tree_sitter.Node) []syntax.Parameter {
	if n == nil {
		return nil
	}
	var out []syntax.Parameter
	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "formal_parameter":
			out = append(out, syntax.Parameter{
				Name: c.text(child.ChildByFieldName("name")),
				Type: c.typeText(child.ChildByFieldName("type"), child.ChildByFieldName("dimensions")),
			})
		case "spread_parameter":
			p := syntax.Parameter{Varargs: true}
			for _, part := range namedChildren(child) {
				switch part.Kind() {
				case "modifiers", "annotation", "marker_annotation":
				case "variable_declarator":
					p.Name = c.text(part.ChildByFieldName("name"))
				default:
					p.Type = syntax.NormalizeType(c.text(part))
				}
			}
			out = append(out, p)
		}
	}
	return out
}

// namedChildren skips comments, which tree-sitter attaches as extras
// anywhere in the tree.
func namedChildren(n *tree_sitter.Node) []*tree_sitter.Node {
	var out []*tree_sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || child.IsExtra() {
			continue
		}
		out = append(out, child)
	}
	return out
}

func span(n *tree_sitter.Node) syntax.Span {
	start, end := n.StartPosition(), n.EndPosition()
	return syntax.Span{
		Start: syntax.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
		End:   syntax.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
	}
}
