package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/morozRed/launcher/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAnnouncer struct {
	events []string
}

func (r *recordingAnnouncer) Started(label string) {
	r.events = append(r.events, "start "+label)
}

func (r *recordingAnnouncer) Succeeded(label string) {
	r.events = append(r.events, "end "+label)
}

type fakeLoader struct {
	funcs map[string]Func
	err   error
	panic any
}

func (l fakeLoader) Load(context.Context, CallableTarget, []byte) (Unit, error) {
	if l.panic != nil {
		panic(l.panic)
	}
	if l.err != nil {
		return nil, l.err
	}
	return fakeUnit(l.funcs), nil
}

type fakeUnit map[string]Func

func (u fakeUnit) Lookup(name string) (Func, error) {
	fn, ok := u[name]
	if !ok {
		return nil, fmt.Errorf("callable %s not found", name)
	}
	return fn, nil
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunFileSucceeds(t *testing.T) {
	requireShell(t)
	path := writeFile(t, "ok.py", "echo hello\n")

	var stdout bytes.Buffer
	announcer := &recordingAnnouncer{}
	d := New(Options{
		Interpreters: map[string][]string{"python": {"sh"}},
		Stdout:       &stdout,
		Stderr:       &bytes.Buffer{},
		Announcer:    announcer,
	})

	require.NoError(t, d.RunFile(context.Background(), FileTarget{Path: path, Language: "python"}))
	assert.Equal(t, "hello\n", stdout.String())
	assert.Equal(t, []string{"start ok.py", "end ok.py"}, announcer.events)
}

func TestRunFileNonZeroExitIsExecutionError(t *testing.T) {
	requireShell(t)
	path := writeFile(t, "fail.py", "exit 3\n")

	announcer := &recordingAnnouncer{}
	d := New(Options{
		Interpreters: map[string][]string{"python": {"sh"}},
		Stdout:       &bytes.Buffer{},
		Stderr:       &bytes.Buffer{},
		Announcer:    announcer,
	})

	err := d.RunFile(context.Background(), FileTarget{Path: path, Language: "python"})
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr), "expected *ExecutionError, got %v", err)
	assert.Equal(t, "fail.py", execErr.Target)
	assert.Contains(t, err.Error(), "Error running fail.py:")

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Equal(t, []string{"start fail.py"}, announcer.events)
}

func TestRunFileWithoutInterpreter(t *testing.T) {
	d := New(Options{Interpreters: map[string][]string{"python": nil}})

	err := d.RunFile(context.Background(), FileTarget{Path: "x.py", Language: "python"})
	assert.ErrorIs(t, err, ErrNoInterpreter)
}

func TestRunCallableAnnouncesDisplayName(t *testing.T) {
	path := writeFile(t, "tasks.mock", "")
	called := false
	announcer := &recordingAnnouncer{}
	d := New(Options{
		Announcer: announcer,
		Loaders: map[string]Loader{"mock": fakeLoader{funcs: map[string]Func{
			"__setup": func(context.Context) error {
				called = true
				return nil
			},
		}}},
	})

	err := d.RunCallable(context.Background(), CallableTarget{
		Path:     path,
		Language: "mock",
		Callable: parser.Callable{Name: "__setup", DisplayName: "setup"},
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, []string{"start 'setup' in tasks.mock", "end 'setup' in tasks.mock"}, announcer.events)
}

func TestRunCallableRecoversPanics(t *testing.T) {
	path := writeFile(t, "tasks.mock", "")
	announcer := &recordingAnnouncer{}
	d := New(Options{
		Announcer: announcer,
		Loaders: map[string]Loader{"mock": fakeLoader{funcs: map[string]Func{
			"__boom": func(context.Context) error { panic("boom") },
		}}},
	})

	err := d.RunCallable(context.Background(), CallableTarget{
		Path:     path,
		Language: "mock",
		Callable: parser.Callable{Name: "__boom", DisplayName: "boom"},
	})
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []string{"start 'boom' in tasks.mock"}, announcer.events)
}

func TestRunCallableLoaderFailures(t *testing.T) {
	path := writeFile(t, "tasks.mock", "")
	target := CallableTarget{Path: path, Language: "mock", Callable: parser.Callable{Name: "__x", DisplayName: "x"}}

	loadErr := errors.New("bad source")
	d := New(Options{Loaders: map[string]Loader{"mock": fakeLoader{err: loadErr}}})
	assert.ErrorIs(t, d.RunCallable(context.Background(), target), loadErr)

	d = New(Options{Loaders: map[string]Loader{"mock": fakeLoader{panic: "kaboom"}}})
	err := d.RunCallable(context.Background(), target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")

	d = New(Options{Loaders: map[string]Loader{"mock": fakeLoader{funcs: map[string]Func{}}}})
	err = d.RunCallable(context.Background(), target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	target.Language = "cobol"
	assert.Error(t, d.RunCallable(context.Background(), target))
}

func TestGoLoaderInvokesCallableWithoutRunningMain(t *testing.T) {
	dir := t.TempDir()
	touched := filepath.Join(dir, "touched")
	mainRan := filepath.Join(dir, "main-ran")

	path := writeFileIn(t, dir, "tasks.go", fmt.Sprintf(`package main

import (
	"errors"
	"os"
)

func __touch() {
	if err := os.WriteFile(%q, []byte("ok"), 0644); err != nil {
		panic(err)
	}
}

func __fails() error {
	return errors.New("deploy refused")
}

func __boom() {
	panic("exploded")
}

func __args(n int) {}

func main() {
	os.WriteFile(%q, []byte("ran"), 0644)
}
`, touched, mainRan))

	d := New(Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	run := func(name string) error {
		return d.RunCallable(context.Background(), CallableTarget{
			Path:     path,
			Language: "go",
			Package:  "main",
			Callable: parser.Callable{Name: name, DisplayName: name[2:]},
		})
	}

	require.NoError(t, run("__touch"))
	assert.FileExists(t, touched)
	assert.NoFileExists(t, mainRan)

	err := run("__fails")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deploy refused")

	err = run("__boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exploded")

	err = run("__args")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature")
}

func TestPythonLoaderInvokesCallable(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")
	path := writeFileIn(t, dir, "tasks.py", fmt.Sprintf(`def __touch():
    with open(%q, "w") as f:
        f.write("ok")

if __name__ == "__main__":
    raise SystemExit(1)
`, marker))

	d := New(Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	err := d.RunCallable(context.Background(), CallableTarget{
		Path:     path,
		Language: "python",
		Callable: parser.Callable{Name: "__touch", DisplayName: "touch"},
	})
	require.NoError(t, err)
	assert.FileExists(t, marker)

	err = d.RunCallable(context.Background(), CallableTarget{
		Path:     path,
		Language: "python",
		Callable: parser.Callable{Name: "__missing", DisplayName: "missing"},
	})
	assert.Error(t, err)
}

func TestPythonLoaderRejectsMethodsAndNestedFunctions(t *testing.T) {
	loader := &PythonLoader{Command: []string{"python3"}}

	for kind, want := range map[parser.FunctionKind]string{
		parser.KindMethod: "needs an instance",
		parser.KindNested: "nested inside another function",
	} {
		_, err := loader.Load(context.Background(), CallableTarget{
			Path:     "tasks.py",
			Language: "python",
			Callable: parser.Callable{Name: "__step", DisplayName: "step", Kind: kind.String()},
		}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), want)
	}

	unit, err := loader.Load(context.Background(), CallableTarget{
		Path:     "tasks.py",
		Language: "python",
		Callable: parser.Callable{Name: "__step", DisplayName: "step", Kind: parser.KindFunction.String()},
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, unit)
}

func TestRunCallableReportsUnreachablePythonMethod(t *testing.T) {
	path := writeFile(t, "tasks.py", "class Jobs:\n    def __step(self):\n        pass\n")
	announcer := &recordingAnnouncer{}
	d := New(Options{Announcer: announcer})

	err := d.RunCallable(context.Background(), CallableTarget{
		Path:     path,
		Language: "python",
		Callable: parser.Callable{Name: "__step", DisplayName: "step", Kind: parser.KindMethod.String()},
	})
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "'step' in tasks.py", execErr.Target)
	assert.Contains(t, err.Error(), "needs an instance")
	assert.Empty(t, announcer.events, "nothing is announced for a callable that cannot be loaded")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	return writeFileIn(t, t.TempDir(), name, content)
}

func writeFileIn(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
