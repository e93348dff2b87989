package syntax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// ErrSyntax is returned when the source does not parse as C#.
var ErrSyntax = errors.New("syntax error")

const (
	methodDeclarationType = "method_declaration"
	attributeListType     = "attribute_list"
	attributeType         = "attribute"
	modifierType          = "modifier"
)

// Parse builds a Unit from C# source. Sources with error or missing nodes are
// rejected with ErrSyntax so no partially understood file is ever rewritten.
func Parse(ctx context.Context, src []byte) (*Unit, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse c# source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, describeError(root))
	}

	unit := &Unit{
		src:     bytes.Clone(src),
		newline: detectNewline(src),
	}

	collectHandlers(root, unit.src, &unit.handlers)

	return unit, nil
}

// collectHandlers walks the tree depth first and records method declarations in
// document order.
func collectHandlers(node *sitter.Node, src []byte, handlers *[]Handler) {
	if node.Type() == methodDeclarationType {
		*handlers = append(*handlers, newHandler(node, src))
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectHandlers(node.NamedChild(i), src, handlers)
	}
}

func newHandler(node *sitter.Node, src []byte) Handler {
	handler := Handler{Span: spanOf(node)}

	if name := node.ChildByFieldName("name"); name != nil {
		handler.Name = name.Content(src)
	}

	for _, field := range []string{"returns", "type"} {
		if returns := node.ChildByFieldName(field); returns != nil {
			handler.ReturnType = returns.Content(src)
			break
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case attributeListType:
			handler.Groups = append(handler.Groups, newAttributeGroup(child, src))
		case modifierType:
			handler.Modifiers = append(handler.Modifiers, child.Content(src))
		}
	}

	return handler
}

func newAttributeGroup(node *sitter.Node, src []byte) AttributeGroup {
	group := AttributeGroup{Span: spanOf(node)}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != attributeType {
			continue
		}

		attribute := Attribute{
			Text: child.Content(src),
			Span: spanOf(child),
		}

		if name := child.ChildByFieldName("name"); name != nil {
			attribute.Name = name.Content(src)
		} else {
			attribute.Name = attributeName(attribute.Text)
		}

		group.Attributes = append(group.Attributes, attribute)
	}

	return group
}

// attributeName strips the argument list from an attribute's text.
func attributeName(text string) string {
	if i := strings.IndexByte(text, '('); i >= 0 {
		text = text[:i]
	}

	return strings.TrimSpace(text)
}

func spanOf(node *sitter.Node) Span {
	return Span{Start: int(node.StartByte()), End: int(node.EndByte())}
}

// describeError locates the first error or missing node for the error message.
func describeError(node *sitter.Node) string {
	if node.IsMissing() {
		return fmt.Sprintf("missing %s at line %d", node.Type(), node.StartPoint().Row+1)
	}

	if node.Type() == "ERROR" {
		return fmt.Sprintf("unexpected input at line %d", node.StartPoint().Row+1)
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsMissing() {
			return describeError(child)
		}
	}

	return "malformed source"
}
