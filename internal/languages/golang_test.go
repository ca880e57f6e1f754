package languages

import (
	"errors"
	"testing"

	"github.com/morozRed/launcher/internal/parser"
)

const goTasks = `package main

import "fmt"

type runner struct{}

func (runner) __method() {}

func __build() {
	fmt.Println("build")
}

func helper() {}

func __deploy() error {
	return nil
}

func main() {
	__build()
}
`

func TestGoParserExtractsTopLevelFunctions(t *testing.T) {
	g := NewGoParser()
	file, err := g.Parse("tasks.go", []byte(goTasks))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if file.Package != "main" {
		t.Fatalf("expected package main, got %q", file.Package)
	}

	callables := parser.MarkedCallables(file.Functions, "__")
	if len(callables) != 2 {
		t.Fatalf("expected 2 callables (methods skipped), got %#v", callables)
	}
	if callables[0].DisplayName != "build" || callables[1].DisplayName != "deploy" {
		t.Fatalf("unexpected callables: %#v", callables)
	}
}

func TestGoParserSyntaxError(t *testing.T) {
	g := NewGoParser()
	_, err := g.Parse("broken.go", []byte("package main\n\nfunc broken( {\n"))

	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *parser.ParseError, got %v", err)
	}
}

func TestGoEntryPointLocatesMainName(t *testing.T) {
	content := []byte(goTasks)
	start, end, ok := GoEntryPoint(content)
	if !ok {
		t.Fatalf("expected main to be located")
	}
	if got := string(content[start:end]); got != "main" {
		t.Fatalf("expected range to cover %q, got %q", "main", got)
	}

	if _, _, ok := GoEntryPoint([]byte("package lib\n\nfunc Helper() {}\n")); ok {
		t.Fatalf("did not expect an entry point in a library file")
	}
}

func TestDefaultRegistryLanguages(t *testing.T) {
	r := NewDefaultRegistry()
	for _, name := range []string{"a.py", "b.PYW", "c.go"} {
		if !r.IsSource(name) {
			t.Fatalf("expected %s to be a source file", name)
		}
	}
	if r.IsSource("notes.txt") {
		t.Fatalf("did not expect notes.txt to be a source file")
	}
}

func TestGoEdgeCasesFixture(t *testing.T) {
	_, callables, err := NewDefaultRegistry().ExtractMarked("testdata/go/edge_cases.go", "__")
	if err != nil {
		t.Fatalf("ExtractMarked failed: %v", err)
	}

	want := []string{"migrate", "__twice"}
	if len(callables) != len(want) {
		t.Fatalf("expected %v, got %#v", want, callables)
	}
	for i, name := range want {
		if callables[i].DisplayName != name {
			t.Fatalf("callable %d: expected %q, got %#v", i, name, callables[i])
		}
	}
	if callables[0].Line != 30 {
		t.Fatalf("expected __migrate on line 30, got %d", callables[0].Line)
	}
}
