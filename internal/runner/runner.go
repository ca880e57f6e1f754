// Package runner executes a selected source file, either as a whole in a child
// process or one marked callable at a time.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/morozRed/launcher/internal/fileutil"
	"github.com/morozRed/launcher/internal/parser"
	"go.uber.org/zap"
)

// ErrNoInterpreter is returned when a language has no command configured.
var ErrNoInterpreter = errors.New("no interpreter configured")

// ExecutionError reports a failed run. It never stops the browser.
type ExecutionError struct {
	Target string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("Error running %s: %v", e.Target, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Announcer receives run lifecycle messages.
type Announcer interface {
	Started(label string)
	Succeeded(label string)
}

// DefaultInterpreters returns the whole-file command prefix per language. The
// file path is appended as the last argument.
func DefaultInterpreters() map[string][]string {
	return map[string][]string{
		"python": {"python3"},
		"go":     {"go", "run"},
	}
}

// Options configures a Dispatcher.
type Options struct {
	Interpreters map[string][]string
	Loaders      map[string]Loader // nil uses DefaultLoaders
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Announcer    Announcer
	Logger       *zap.Logger
}

// Dispatcher runs files and callables.
type Dispatcher struct {
	interpreters map[string][]string
	loaders      map[string]Loader
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	announcer    Announcer
	logger       *zap.Logger
}

// FileTarget selects whole-file execution.
type FileTarget struct {
	Path     string
	Language string
}

// CallableTarget selects one marked callable.
type CallableTarget struct {
	Path     string
	Language string
	Package  string
	Callable parser.Callable
}

// New creates a Dispatcher, filling unset options with defaults.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		interpreters: DefaultInterpreters(),
		stdin:        opts.Stdin,
		stdout:       opts.Stdout,
		stderr:       opts.Stderr,
		announcer:    opts.Announcer,
		logger:       opts.Logger,
	}
	for lang, command := range opts.Interpreters {
		d.interpreters[lang] = append([]string(nil), command...)
	}
	if d.stdout == nil {
		d.stdout = os.Stdout
	}
	if d.stderr == nil {
		d.stderr = os.Stderr
	}
	if d.announcer == nil {
		d.announcer = nopAnnouncer{}
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	d.loaders = opts.Loaders
	if d.loaders == nil {
		d.loaders = DefaultLoaders(d.interpreters, d.stdin, d.stdout, d.stderr)
	}
	return d
}

// Interpreter returns the command prefix used for language.
func (d *Dispatcher) Interpreter(language string) ([]string, bool) {
	command, ok := d.interpreters[language]
	if !ok || len(command) == 0 {
		return nil, false
	}
	return append([]string(nil), command...), true
}

// RunFile spawns the file with its language interpreter and waits for it. A
// non-zero exit is returned as *ExecutionError.
func (d *Dispatcher) RunFile(ctx context.Context, target FileTarget) error {
	label := filepath.Base(target.Path)
	command, ok := d.Interpreter(target.Language)
	if !ok {
		return &ExecutionError{Target: label, Err: fmt.Errorf("%w for %s", ErrNoInterpreter, target.Language)}
	}

	args := append(command[1:], target.Path)
	logger := d.logger.With(
		zap.String("path", target.Path),
		zap.String("language", target.Language),
		zap.Strings("command", append(command, target.Path)),
	)
	if hash, err := fileutil.HashFile(target.Path); err == nil {
		logger = logger.With(zap.String("hash", hash))
	}

	d.announcer.Started(label)
	logger.Info("running file")

	cmd := exec.CommandContext(ctx, command[0], args...)
	cmd.Stdin = d.stdin
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr
	if err := cmd.Run(); err != nil {
		logger.Warn("file run failed", zap.Error(err))
		return &ExecutionError{Target: label, Err: err}
	}

	logger.Info("file run succeeded")
	d.announcer.Succeeded(label)
	return nil
}

// RunCallable loads the file as a unit and invokes the selected callable.
// Panics and returned errors are reported as *ExecutionError.
func (d *Dispatcher) RunCallable(ctx context.Context, target CallableTarget) error {
	label := fmt.Sprintf("'%s' in %s", target.Callable.DisplayName, filepath.Base(target.Path))
	logger := d.logger.With(
		zap.String("path", target.Path),
		zap.String("language", target.Language),
		zap.String("callable", target.Callable.Name),
	)

	loader, ok := d.loaders[target.Language]
	if !ok {
		return &ExecutionError{Target: label, Err: fmt.Errorf("no callable loader for %s", target.Language)}
	}

	content, err := os.ReadFile(target.Path)
	if err != nil {
		return &ExecutionError{Target: label, Err: fmt.Errorf("failed to read %s: %w", target.Path, err)}
	}
	logger = logger.With(zap.String("hash", fileutil.HashBytes(content)))

	unit, err := loadUnit(ctx, loader, target, content)
	if err != nil {
		logger.Warn("unit load failed", zap.Error(err))
		return &ExecutionError{Target: label, Err: err}
	}
	fn, err := unit.Lookup(target.Callable.Name)
	if err != nil {
		logger.Warn("callable lookup failed", zap.Error(err))
		return &ExecutionError{Target: label, Err: err}
	}

	d.announcer.Started(label)
	logger.Info("running callable")

	if err := invoke(ctx, fn); err != nil {
		logger.Warn("callable failed", zap.Error(err))
		return &ExecutionError{Target: label, Err: err}
	}

	logger.Info("callable succeeded")
	d.announcer.Succeeded(label)
	return nil
}

func loadUnit(ctx context.Context, loader Loader, target CallableTarget, content []byte) (unit Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while loading %s: %v", target.Path, r)
		}
	}()
	return loader.Load(ctx, target, content)
}

func invoke(ctx context.Context, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

type nopAnnouncer struct{}

func (nopAnnouncer) Started(string)   {}
func (nopAnnouncer) Succeeded(string) {}
