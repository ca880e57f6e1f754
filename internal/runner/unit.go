package runner

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/morozRed/launcher/internal/languages"
	"github.com/morozRed/launcher/internal/parser"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Func is a zero-argument callable resolved from a unit.
type Func func(ctx context.Context) error

// Unit is a loaded source file exposing its callables by name.
type Unit interface {
	Lookup(name string) (Func, error)
}

// Loader turns a source file into a Unit.
type Loader interface {
	Load(ctx context.Context, target CallableTarget, content []byte) (Unit, error)
}

// DefaultLoaders returns the loaders for the built-in languages.
func DefaultLoaders(interpreters map[string][]string, stdin io.Reader, stdout, stderr io.Writer) map[string]Loader {
	return map[string]Loader{
		"go": &GoLoader{Stdin: stdin, Stdout: stdout, Stderr: stderr},
		"python": &PythonLoader{
			Command: interpreters["python"],
			Stdin:   stdin,
			Stdout:  stdout,
			Stderr:  stderr,
		},
	}
}

// entrypointRename replaces the name of a Go file's main function so that
// evaluating the file does not run the program.
const entrypointRename = "launcherEntrypoint"

// GoLoader interprets Go files in-process with yaegi.
type GoLoader struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (l *GoLoader) Load(ctx context.Context, target CallableTarget, content []byte) (Unit, error) {
	src := content
	if start, end, ok := languages.GoEntryPoint(content); ok {
		src = make([]byte, 0, len(content)+len(entrypointRename))
		src = append(src, content[:start]...)
		src = append(src, entrypointRename...)
		src = append(src, content[end:]...)
	}

	i := interp.New(interp.Options{
		Stdin:  l.Stdin,
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib: %w", err)
	}
	if _, err := i.EvalWithContext(ctx, string(src)); err != nil {
		return nil, fmt.Errorf("failed to evaluate %s: %w", filepath.Base(target.Path), err)
	}

	pkg := target.Package
	if pkg == "" {
		pkg = "main"
	}
	return &goUnit{interp: i, pkg: pkg}, nil
}

type goUnit struct {
	interp *interp.Interpreter
	pkg    string
}

func (u *goUnit) Lookup(name string) (Func, error) {
	v, err := u.interp.Eval(u.pkg + "." + name)
	if err != nil {
		return nil, fmt.Errorf("callable %s not found: %w", name, err)
	}
	if !v.IsValid() || !v.CanInterface() {
		return nil, fmt.Errorf("callable %s is not a function", name)
	}

	switch fn := v.Interface().(type) {
	case func():
		return func(context.Context) error {
			fn()
			return nil
		}, nil
	case func() error:
		return func(context.Context) error {
			return fn()
		}, nil
	default:
		return nil, fmt.Errorf("callable %s has signature %s (expected func() or func() error)", name, v.Type())
	}
}

// pythonShim loads a file as a module namespace and calls one function by name.
const pythonShim = `import os, runpy, sys
path, name = sys.argv[1], sys.argv[2]
sys.path.insert(0, os.path.dirname(os.path.abspath(path)))
namespace = runpy.run_path(path, run_name="__launcher__")
fn = namespace.get(name)
if not callable(fn):
    sys.stderr.write("callable %s not found in %s\n" % (name, path))
    sys.exit(2)
fn()
`

// PythonLoader resolves callables through a child interpreter; each call loads
// the file's definitions afresh.
type PythonLoader struct {
	Command []string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

func (l *PythonLoader) Load(_ context.Context, target CallableTarget, _ []byte) (Unit, error) {
	if len(l.Command) == 0 {
		return nil, fmt.Errorf("%w for python", ErrNoInterpreter)
	}
	// only module-level names are reachable from the loaded namespace
	switch target.Callable.Kind {
	case parser.KindMethod.String():
		return nil, fmt.Errorf("%s is a method and needs an instance to be called", target.Callable.Name)
	case parser.KindNested.String():
		return nil, fmt.Errorf("%s is nested inside another function and cannot be called directly", target.Callable.Name)
	}
	return &pythonUnit{loader: l, path: target.Path}, nil
}

type pythonUnit struct {
	loader *PythonLoader
	path   string
}

func (u *pythonUnit) Lookup(name string) (Func, error) {
	return func(ctx context.Context) error {
		command := u.loader.Command
		args := make([]string, 0, len(command)+3)
		args = append(args, command[1:]...)
		args = append(args, "-c", pythonShim, u.path, name)

		cmd := exec.CommandContext(ctx, command[0], args...)
		cmd.Stdin = u.loader.Stdin
		cmd.Stdout = u.loader.Stdout
		cmd.Stderr = u.loader.Stderr
		return cmd.Run()
	}, nil
}
