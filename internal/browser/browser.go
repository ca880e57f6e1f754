// Package browser drives the interactive directory walk and the handling of a
// selected file.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/morozRed/launcher/internal/ignore"
	"github.com/morozRed/launcher/internal/listing"
	"github.com/morozRed/launcher/internal/menu"
	"github.com/morozRed/launcher/internal/parser"
	"github.com/morozRed/launcher/internal/runner"
	"github.com/morozRed/launcher/internal/ui"
	"go.uber.org/zap"
)

// ErrUnsupportedItem is reported for selections that cannot be executed.
var ErrUnsupportedItem = errors.New("unsupported item")

// Transition is what a single Step did to the navigation state.
type Transition int

const (
	Stayed Transition = iota
	Entered
	Left
	Cleared
	Handled
	Exited
)

func (t Transition) String() string {
	switch t {
	case Stayed:
		return "stayed"
	case Entered:
		return "entered"
	case Left:
		return "left"
	case Cleared:
		return "cleared"
	case Handled:
		return "handled"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

// Dispatcher runs a selected file or callable.
type Dispatcher interface {
	RunFile(ctx context.Context, target runner.FileTarget) error
	RunCallable(ctx context.Context, target runner.CallableTarget) error
}

// Terminal is the operator-facing side of the browser.
type Terminal interface {
	Banner()
	Clear()
	RenderMenu(heading string, entries []menu.Entry)
	CallableHeading(file string) string
	Prompt(text string) (string, error)
	Pause(text string) error
	InvalidInput() error
	Unsupported(reason string) error
	Failure(err error)
}

// Options configures a Browser.
type Options struct {
	Start      string
	Prefix     string
	Registry   *parser.Registry
	Matcher    *ignore.Matcher
	Dispatcher Dispatcher
	Terminal   Terminal
	Logger     *zap.Logger
}

// Browser is the navigation state machine.
type Browser struct {
	state      State
	prefix     string
	registry   *parser.Registry
	matcher    *ignore.Matcher
	dispatcher Dispatcher
	term       Terminal
	logger     *zap.Logger
}

// New creates a Browser positioned at opts.Start.
func New(opts Options) *Browser {
	b := &Browser{
		state:      NewState(opts.Start),
		prefix:     opts.Prefix,
		registry:   opts.Registry,
		matcher:    opts.Matcher,
		dispatcher: opts.Dispatcher,
		term:       opts.Terminal,
		logger:     opts.Logger,
	}
	if b.prefix == "" {
		b.prefix = parser.DefaultMarkerPrefix
	}
	if b.matcher == nil {
		b.matcher = ignore.NewMatcher(nil)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	return b
}

// State returns the current navigation position.
func (b *Browser) State() State {
	return b.state
}

// Run steps until the operator exits or the input ends.
func (b *Browser) Run(ctx context.Context) error {
	b.logger.Info("browsing", zap.String("start", b.state.Start))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		transition, err := b.Step(ctx)
		if err != nil {
			return err
		}
		if transition == Exited {
			b.logger.Info("exited", zap.String("dir", b.state.Current))
			return nil
		}
	}
}

// Step lists the current directory, shows the menu and applies one selection.
func (b *Browser) Step(ctx context.Context) (Transition, error) {
	l, err := listing.List(b.state.Start, b.state.Current, b.matcher)
	if err != nil {
		return Stayed, err
	}

	allowBack := !b.state.IsRoot()
	b.term.Banner()
	b.term.RenderMenu("", menu.BrowseEntries(l, allowBack, b.registry.IsSource))

	input, err := b.term.Prompt(ui.BrowsePrompt)
	if err != nil {
		return b.inputEnded(err)
	}

	selection, err := menu.Parse(input, menu.Options{AllowBack: allowBack, AllowExit: true, Count: l.Len()})
	if err != nil {
		b.logger.Debug("invalid selection", zap.String("input", input), zap.Error(err))
		return b.acknowledge(Stayed, b.term.InvalidInput())
	}

	switch selection.Kind {
	case menu.SelectExit:
		return Exited, nil
	case menu.SelectBack:
		b.state = b.state.Parent()
		return Left, nil
	case menu.SelectClear:
		b.term.Clear()
		return Cleared, nil
	}

	entry, _ := l.Resolve(selection.Index)
	if entry.Kind == listing.KindDirectory {
		b.state = b.state.Enter(entry.Name)
		b.logger.Debug("entered", zap.String("dir", b.state.Current))
		return Entered, nil
	}
	return b.handleFile(ctx, l.Path(entry.Name))
}

func (b *Browser) handleFile(ctx context.Context, path string) (Transition, error) {
	if err := b.checkSupported(path); err != nil {
		return b.unsupported(path, err, "")
	}

	symbols, callables, err := b.registry.ExtractMarked(path, b.prefix)
	if err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			return b.unsupported(path, err, parseErr.Error())
		}
		return b.unsupported(path, err, "")
	}

	language, _ := b.registry.LanguageForFile(path)
	if len(callables) == 0 {
		b.term.Clear()
		if err := b.dispatcher.RunFile(ctx, runner.FileTarget{Path: path, Language: language}); err != nil {
			if !b.report(err) {
				return Stayed, err
			}
		}
		return b.acknowledge(Handled, b.term.Pause(ui.ContinuePrompt))
	}

	return b.chooseCallable(ctx, path, symbols, callables)
}

// chooseCallable shows the callable sub-menu until the operator picks one or
// goes back.
func (b *Browser) chooseCallable(ctx context.Context, path string, symbols *parser.FileSymbols, callables []parser.Callable) (Transition, error) {
	entries := menu.CallableEntries(callables)
	for {
		b.term.Banner()
		b.term.RenderMenu(b.term.CallableHeading(filepath.Base(path)), entries)

		input, err := b.term.Prompt(ui.CallablePrompt)
		if err != nil {
			return b.inputEnded(err)
		}

		selection, err := menu.Parse(input, menu.Options{AllowBack: true, Count: len(callables)})
		if err != nil {
			if t, err := b.acknowledge(Stayed, b.term.InvalidInput()); err != nil || t == Exited {
				return t, err
			}
			continue
		}

		switch selection.Kind {
		case menu.SelectBack:
			return Handled, nil
		case menu.SelectClear:
			b.term.Clear()
			continue
		}

		callable := callables[selection.Index-1]
		b.term.Clear()
		err = b.dispatcher.RunCallable(ctx, runner.CallableTarget{
			Path:     path,
			Language: symbols.Language,
			Package:  symbols.Package,
			Callable: callable,
		})
		if err != nil && !b.report(err) {
			return Stayed, err
		}
		return b.acknowledge(Handled, b.term.Pause("\n"+ui.EnterPrompt))
	}
}

func (b *Browser) checkSupported(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedItem, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrUnsupportedItem, filepath.Base(path))
	}
	if !b.registry.IsSource(path) {
		return fmt.Errorf("%w: %s has no registered language", ErrUnsupportedItem, filepath.Base(path))
	}
	return nil
}

func (b *Browser) unsupported(path string, err error, reason string) (Transition, error) {
	b.logger.Warn("unsupported item", zap.String("path", path), zap.Error(err))
	return b.acknowledge(Stayed, b.term.Unsupported(reason))
}

// report shows a non-fatal run failure. It returns false for errors that
// should stop the browser.
func (b *Browser) report(err error) bool {
	var execErr *runner.ExecutionError
	if !errors.As(err, &execErr) {
		return false
	}
	b.logger.Warn("execution failed", zap.Error(err))
	b.term.Failure(err)
	return true
}

// acknowledge converts the outcome of a pause into a transition. Running out
// of input while paused ends the session.
func (b *Browser) acknowledge(t Transition, err error) (Transition, error) {
	if err != nil {
		return b.inputEnded(err)
	}
	return t, nil
}

func (b *Browser) inputEnded(err error) (Transition, error) {
	if errors.Is(err, io.EOF) {
		return Exited, nil
	}
	return Stayed, fmt.Errorf("failed to read input: %w", err)
}
