package arkts

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Parser builds arkts trees from source text using the tree-sitter
// TypeScript grammar. ArkTS `struct` declarations are rewritten to
// `class ` (same byte length, so every offset survives) before parsing.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a parser instance. Not safe for concurrent use; create
// one per goroutine.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())
	return &Parser{parser: p}
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

var structDeclRe = regexp.MustCompile(`\bstruct(\s+[A-Za-z_$][A-Za-z0-9_$]*)`)

// rewriteStructs replaces `struct` declaration keywords in place and
// returns the set of names declared as structs.
func rewriteStructs(src []byte) ([]byte, map[string]bool) {
	names := make(map[string]bool)
	matches := structDeclRe.FindAllSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, names
	}
	out := make([]byte, len(src))
	copy(out, src)
	for _, m := range matches {
		names[strings.TrimSpace(string(src[m[2]:m[3]]))] = true
		copy(out[m[0]:m[0]+6], "class ")
	}
	return out, names
}

// ParseFile parses content into a File tree.
func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	src, structNames := rewriteStructs(content)
	tree, err := p.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	b := &builder{
		src:         src,
		structNames: structNames,
		file:        &File{Path: path},
	}
	b.collectScope(tree.RootNode())
	return b.file, nil
}

type builder struct {
	src         []byte
	structNames map[string]bool
	file        *File
	defaultCls  *Class
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start > end || end > uint32(len(b.src)) {
		return ""
	}
	return string(b.src[start:end])
}

// defaultClass lazily creates the per-file container for top-level
// functions.
func (b *builder) defaultClass() *Class {
	if b.defaultCls == nil {
		b.defaultCls = &Class{
			Name:      DefaultClassName,
			Category:  CategoryTopLevel,
			Synthetic: true,
			File:      b.file,
			StartLine: 1,
		}
		b.file.Classes = append(b.file.Classes, b.defaultCls)
	}
	return b.defaultCls
}

// collectScope walks the children of a program or namespace body,
// gathering classes and top-level functions. Decorators appear as
// siblings preceding the declaration they annotate.
func (b *builder) collectScope(scope *sitter.Node) {
	var pending []string
	for i := 0; i < int(scope.NamedChildCount()); i++ {
		child := scope.NamedChild(i)
		pending = b.collectDecl(child, pending)
	}
}

func (b *builder) collectDecl(node *sitter.Node, pending []string) []string {
	switch node.Type() {
	case "decorator":
		return append(pending, decoratorName(b.text(node)))
	case "export_statement":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			pending = b.collectDecl(node.NamedChild(i), pending)
		}
		return pending
	case "class_declaration", "abstract_class_declaration":
		b.buildClass(node, CategoryClass, pending)
		return nil
	case "interface_declaration":
		b.buildClass(node, CategoryInterface, pending)
		return nil
	case "enum_declaration":
		b.buildClass(node, CategoryEnum, pending)
		return nil
	case "internal_module", "module":
		if body := node.ChildByFieldName("body"); body != nil {
			b.collectScope(body)
		}
		return nil
	case "function_declaration":
		cls := b.defaultClass()
		if m := b.buildMethod(node, cls, pending); m != nil {
			cls.Methods = append(cls.Methods, m)
			if m.EndLine > cls.EndLine {
				cls.EndLine = m.EndLine
			}
		}
		return nil
	default:
		return nil
	}
}

func (b *builder) buildClass(node *sitter.Node, category ClassCategory, decorators []string) {
	name := b.text(node.ChildByFieldName("name"))
	if category == CategoryClass && b.structNames[name] {
		category = CategoryStruct
	}

	cls := &Class{
		Name:       name,
		Category:   category,
		Decorators: decorators,
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
		File:       b.file,
	}
	b.file.Classes = append(b.file.Classes, cls)

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	var pending []string
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "decorator":
			pending = append(pending, decoratorName(b.text(member)))
		case "method_definition":
			if m := b.buildMethod(member, cls, pending); m != nil {
				cls.Methods = append(cls.Methods, m)
			}
			pending = nil
		default:
			pending = nil
		}
	}
}

func (b *builder) buildMethod(node *sitter.Node, cls *Class, decorators []string) *Method {
	// Member decorators can also hang off the definition node itself.
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Type() == "decorator" {
			decorators = append(decorators, decoratorName(b.text(c)))
		}
	}

	name := b.text(node.ChildByFieldName("name"))
	if name == "" {
		return nil
	}

	m := &Method{
		Name:          name,
		Decorators:    decorators,
		StartLine:     int(node.StartPoint().Row) + 1,
		EndLine:       int(node.EndPoint().Row) + 1,
		StartCol:      int(node.StartPoint().Column),
		IsConstructor: name == "constructor",
		Class:         cls,
	}
	m.HasViewTree = m.HasDecorator("Builder") ||
		(name == "build" && cls.Category == CategoryStruct && cls.HasDecorator("Component"))

	body := node.ChildByFieldName("body")
	if body == nil {
		return m
	}
	m.Statements = b.collectBlock(body, nil)
	b.collectCalls(body, m)
	return m
}

// collectBlock flattens a statement block into CFG-order statements:
// simple statements keep their full text, control-flow statements emit a
// header entry and recurse into their bodies.
func (b *builder) collectBlock(block *sitter.Node, stmts []*Statement) []*Statement {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		stmts = b.addStatement(block.NamedChild(i), stmts)
	}
	return stmts
}

func (b *builder) addStatement(node *sitter.Node, stmts []*Statement) []*Statement {
	switch node.Type() {
	case "comment":
		return stmts
	case "statement_block":
		return b.collectBlock(node, stmts)
	case "if_statement":
		stmts = append(stmts, b.stmt(node, "if ("+b.text(node.ChildByFieldName("condition"))+")"))
		if cons := node.ChildByFieldName("consequence"); cons != nil {
			stmts = b.addStatement(cons, stmts)
		}
		if alt := node.ChildByFieldName("alternative"); alt != nil {
			stmts = append(stmts, b.stmt(alt, "else"))
			for i := 0; i < int(alt.NamedChildCount()); i++ {
				stmts = b.addStatement(alt.NamedChild(i), stmts)
			}
		}
		return stmts
	case "for_statement", "for_in_statement":
		body := node.ChildByFieldName("body")
		header := b.text(node)
		if body != nil {
			header = strings.TrimSpace(string(b.src[node.StartByte():body.StartByte()]))
		}
		stmts = append(stmts, b.stmt(node, header))
		if body != nil {
			stmts = b.addStatement(body, stmts)
		}
		return stmts
	case "while_statement":
		stmts = append(stmts, b.stmt(node, "while ("+b.text(node.ChildByFieldName("condition"))+")"))
		if body := node.ChildByFieldName("body"); body != nil {
			stmts = b.addStatement(body, stmts)
		}
		return stmts
	case "do_statement":
		stmts = append(stmts, b.stmt(node, "do"))
		if body := node.ChildByFieldName("body"); body != nil {
			stmts = b.addStatement(body, stmts)
		}
		stmts = append(stmts, b.stmt(node, "while ("+b.text(node.ChildByFieldName("condition"))+")"))
		return stmts
	case "switch_statement":
		stmts = append(stmts, b.stmt(node, "switch ("+b.text(node.ChildByFieldName("value"))+")"))
		if body := node.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				arm := body.NamedChild(i)
				switch arm.Type() {
				case "switch_case":
					value := arm.ChildByFieldName("value")
					stmts = append(stmts, b.stmt(arm, "case "+b.text(value)+":"))
					for j := 0; j < int(arm.NamedChildCount()); j++ {
						if c := arm.NamedChild(j); c != value {
							stmts = b.addStatement(c, stmts)
						}
					}
				case "switch_default":
					stmts = append(stmts, b.stmt(arm, "default:"))
					for j := 0; j < int(arm.NamedChildCount()); j++ {
						stmts = b.addStatement(arm.NamedChild(j), stmts)
					}
				}
			}
		}
		return stmts
	case "try_statement":
		stmts = append(stmts, b.stmt(node, "try"))
		if body := node.ChildByFieldName("body"); body != nil {
			stmts = b.addStatement(body, stmts)
		}
		if handler := node.ChildByFieldName("handler"); handler != nil {
			stmts = append(stmts, b.stmt(handler, "catch ("+b.text(handler.ChildByFieldName("parameter"))+")"))
			if hb := handler.ChildByFieldName("body"); hb != nil {
				stmts = b.addStatement(hb, stmts)
			}
		}
		if fin := node.ChildByFieldName("finalizer"); fin != nil {
			stmts = append(stmts, b.stmt(fin, "finally"))
			for i := 0; i < int(fin.NamedChildCount()); i++ {
				stmts = b.addStatement(fin.NamedChild(i), stmts)
			}
		}
		return stmts
	default:
		return append(stmts, b.stmt(node, b.text(node)))
	}
}

func (b *builder) stmt(node *sitter.Node, text string) *Statement {
	return &Statement{
		Text:   text,
		Line:   int(node.StartPoint().Row) + 1,
		Column: int(node.StartPoint().Column),
		Kind:   node.Type(),
	}
}

// collectCalls records call expressions and switch statements for the
// threshold checkers.
func (b *builder) collectCalls(node *sitter.Node, m *Method) {
	if node.Type() == "call_expression" {
		fn := node.ChildByFieldName("function")
		args := node.ChildByFieldName("arguments")
		argCount := 0
		if args != nil {
			argCount = int(args.NamedChildCount())
		}
		call := CallInfo{
			ArgCount: argCount,
			Line:     int(node.StartPoint().Row) + 1,
			Column:   int(node.StartPoint().Column),
		}
		if fn != nil {
			switch fn.Type() {
			case "member_expression":
				obj := fn.ChildByFieldName("object")
				call.Name = b.text(fn.ChildByFieldName("property"))
				if obj != nil && (obj.Type() == "identifier" || obj.Type() == "this") {
					call.Receiver = b.text(obj)
				} else {
					call.Receiver = "<expr>"
				}
			case "identifier":
				call.Name = b.text(fn)
			}
		}
		m.Calls = append(m.Calls, call)
	}

	if node.Type() == "switch_statement" {
		info := SwitchInfo{
			Line:   int(node.StartPoint().Row) + 1,
			Column: int(node.StartPoint().Column),
		}
		if body := node.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				switch body.NamedChild(i).Type() {
				case "switch_case":
					info.CaseCount++
				case "switch_default":
					info.HasDefault = true
				}
			}
		}
		m.Switches = append(m.Switches, info)
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		b.collectCalls(node.NamedChild(i), m)
	}
}

// decoratorName strips the @ and any call arguments from a decorator's
// source text: "@Component({})" -> "Component".
func decoratorName(text string) string {
	name := strings.TrimPrefix(text, "@")
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
