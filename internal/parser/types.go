package parser

import "fmt"

// DefaultMarkerPrefix marks a function definition as selectable from the callable menu.
const DefaultMarkerPrefix = "__"

// FunctionKind represents the type of function definition
type FunctionKind int

const (
	KindFunction FunctionKind = iota
	KindMethod
	KindNested
)

func (k FunctionKind) String() string {
	switch k {
	case KindFunction:
		return "func"
	case KindMethod:
		return "method"
	case KindNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Function is a named function definition found while walking a syntax tree.
type Function struct {
	Name string
	Kind FunctionKind
	Line int // 1-based
}

// Callable is a marked function exposed in the callable menu.
type Callable struct {
	Name        string `json:"name"`         // raw name, including the marker prefix
	DisplayName string `json:"display_name"` // name with the marker prefix removed
	Kind        string `json:"kind"`
	Line        int    `json:"line"`
}

// FileSymbols holds the function definitions extracted from a single file
type FileSymbols struct {
	Path      string
	Language  string
	Package   string     // package clause for languages that have one
	Functions []Function // depth-first, document order
}

// ParseError reports source text that is not syntactically valid.
type ParseError struct {
	File   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: syntax error", e.File, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: syntax error", e.File)
}
