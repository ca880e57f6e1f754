package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LanguageParser defines the interface each language must implement
type LanguageParser interface {
	// Language returns the language name (e.g., "go", "python")
	Language() string

	// Extensions returns file extensions this parser handles
	Extensions() []string

	// Parse extracts function definitions from source code. Invalid source
	// yields a *ParseError.
	Parse(filename string, content []byte) (*FileSymbols, error)
}

// Registry holds all registered language parsers
type Registry struct {
	parsers   map[string]LanguageParser // language name -> parser
	extToLang map[string]string         // extension -> language name
}

// NewRegistry creates a new parser registry
func NewRegistry() *Registry {
	return &Registry{
		parsers:   make(map[string]LanguageParser),
		extToLang: make(map[string]string),
	}
}

// Register adds a language parser to the registry
func (r *Registry) Register(p LanguageParser) {
	lang := p.Language()
	r.parsers[lang] = p
	for _, ext := range p.Extensions() {
		r.extToLang[strings.ToLower(ext)] = lang
	}
}

// GetParserForFile returns the appropriate parser for a file
func (r *Registry) GetParserForFile(filename string) (LanguageParser, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	lang, ok := r.extToLang[ext]
	if !ok {
		return nil, false
	}
	parser, ok := r.parsers[lang]
	return parser, ok
}

// LanguageForFile returns the registered language name for filename.
func (r *Registry) LanguageForFile(filename string) (string, bool) {
	parser, ok := r.GetParserForFile(filename)
	if !ok {
		return "", false
	}
	return parser.Language(), true
}

// IsSource reports whether filename has a registered language.
func (r *Registry) IsSource(filename string) bool {
	_, ok := r.GetParserForFile(filename)
	return ok
}

// Languages returns the registered language names, sorted.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.parsers))
	for lang := range r.parsers {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// SupportedExtensions returns all supported file extensions, sorted.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.extToLang))
	for ext := range r.extToLang {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Parse parses already loaded content. A nil result with a nil error means the
// file type is not supported.
func (r *Registry) Parse(path string, content []byte) (*FileSymbols, error) {
	parser, ok := r.GetParserForFile(path)
	if !ok {
		return nil, nil
	}

	symbols, err := parser.Parse(path, content)
	if err != nil {
		return nil, err
	}
	symbols.Path = path
	return symbols, nil
}

// ParseFile parses a single file and returns its function definitions
func (r *Registry) ParseFile(path string) (*FileSymbols, error) {
	if _, ok := r.GetParserForFile(path); !ok {
		return nil, nil // unsupported file type, skip silently
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return r.Parse(path, content)
}

// ExtractMarked parses path and returns its marked callables. The result is
// nil when the file defines none or its type is not supported.
func (r *Registry) ExtractMarked(path, prefix string) (*FileSymbols, []Callable, error) {
	symbols, err := r.ParseFile(path)
	if err != nil || symbols == nil {
		return nil, nil, err
	}
	return symbols, MarkedCallables(symbols.Functions, prefix), nil
}

// MarkedCallables keeps the functions whose name starts with prefix, in the
// order given. It returns nil when none match.
func MarkedCallables(functions []Function, prefix string) []Callable {
	if prefix == "" {
		prefix = DefaultMarkerPrefix
	}

	var out []Callable
	for _, fn := range functions {
		if !strings.HasPrefix(fn.Name, prefix) {
			continue
		}
		out = append(out, Callable{
			Name:        fn.Name,
			DisplayName: strings.TrimPrefix(fn.Name, prefix),
			Kind:        fn.Kind.String(),
			Line:        fn.Line,
		})
	}
	return out
}
