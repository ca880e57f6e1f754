package languages

import (
	"context"
	"fmt"
	"strings"

	"github.com/morozRed/launcher/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// GoParser implements parsing for Go source files
type GoParser struct {
	parser *sitter.Parser
}

// NewGoParser creates a new Go parser
func NewGoParser() *GoParser {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return &GoParser{parser: p}
}

func (g *GoParser) Language() string {
	return "go"
}

func (g *GoParser) Extensions() []string {
	return []string{".go"}
}

func (g *GoParser) Parse(filename string, content []byte) (*parser.FileSymbols, error) {
	tree, err := g.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if err := syntaxError(filename, root); err != nil {
		return nil, err
	}

	result := &parser.FileSymbols{
		Path:      filename,
		Language:  "go",
		Functions: make([]parser.Function, 0),
	}
	g.extractFunctions(root, content, result)

	return result, nil
}

// Methods are skipped: they cannot be called without a receiver.
func (g *GoParser) extractFunctions(node *sitter.Node, content []byte, result *parser.FileSymbols) {
	switch node.Type() {
	case "package_clause":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "package_identifier" {
				result.Package = strings.TrimSpace(child.Content(content))
			}
		}
		return

	case "function_declaration":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			result.Functions = append(result.Functions, parser.Function{
				Name: nameNode.Content(content),
				Kind: parser.KindFunction,
				Line: lineOf(node),
			})
		}
		return

	case "method_declaration":
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		g.extractFunctions(node.Child(i), content, result)
	}
}

// GoEntryPoint locates the name of the top-level main function. start and end
// are byte offsets into content.
func GoEntryPoint(content []byte) (start, end uint32, ok bool) {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return 0, 0, false
	}
	defer tree.Close()

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		if decl.Type() != "function_declaration" {
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		if nameNode != nil && nameNode.Content(content) == "main" {
			return nameNode.StartByte(), nameNode.EndByte(), true
		}
	}
	return 0, 0, false
}
