package languages

import (
	"github.com/morozRed/launcher/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// syntaxError returns a *parser.ParseError for the first ERROR or MISSING node
// under root, or nil when the tree is clean.
func syntaxError(filename string, root *sitter.Node) error {
	if root == nil || !root.HasError() {
		return nil
	}
	bad := firstErrorNode(root)
	if bad == nil {
		return &parser.ParseError{File: filename}
	}
	point := bad.StartPoint()
	return &parser.ParseError{
		File:   filename,
		Line:   int(point.Row) + 1,
		Column: int(point.Column) + 1,
	}
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func lineOf(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}
