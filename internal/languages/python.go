package languages

import (
	"context"
	"fmt"

	"github.com/morozRed/launcher/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonParser implements parsing for Python source files
type PythonParser struct {
	parser *sitter.Parser
}

// NewPythonParser creates a new Python parser
func NewPythonParser() *PythonParser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &PythonParser{parser: p}
}

func (p *PythonParser) Language() string {
	return "python"
}

func (p *PythonParser) Extensions() []string {
	return []string{".py", ".pyw"}
}

func (p *PythonParser) Parse(filename string, content []byte) (*parser.FileSymbols, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
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
		Language:  "python",
		Functions: make([]parser.Function, 0),
	}
	p.extractFunctions(root, content, result, "")

	return result, nil
}

// extractFunctions walks every node depth-first. enclosing is "" at module
// level, "class" directly inside a class body and "function" anywhere inside a
// function body.
func (p *PythonParser) extractFunctions(node *sitter.Node, content []byte, result *parser.FileSymbols, enclosing string) {
	switch node.Type() {
	case "function_definition":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			result.Functions = append(result.Functions, parser.Function{
				Name: nameNode.Content(content),
				Kind: pythonFunctionKind(enclosing),
				Line: lineOf(node),
			})
		}
		enclosing = "function"

	case "class_definition":
		if enclosing != "function" {
			enclosing = "class"
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.extractFunctions(node.Child(i), content, result, enclosing)
	}
}

func pythonFunctionKind(enclosing string) parser.FunctionKind {
	switch enclosing {
	case "class":
		return parser.KindMethod
	case "function":
		return parser.KindNested
	default:
		return parser.KindFunction
	}
}
