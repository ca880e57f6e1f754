// Package ui draws the launcher's menus and messages on a line-oriented
// terminal and reads the operator's answers.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/morozRed/launcher/internal/menu"
	"github.com/morozRed/launcher/internal/theme"
	"golang.org/x/term"
)

// ClearMode controls whether Clear emits escape sequences.
type ClearMode int

const (
	ClearAuto   ClearMode = iota // only when the output is a terminal
	ClearAlways
	ClearNever
)

// Prompt texts shown to the operator.
const (
	BrowsePrompt   = "Enter the number of a subfolder or file (-1 to exit, # to clear): "
	CallablePrompt = "Enter the number of the function to run (0 to cancel, # to clear): "
	ContinuePrompt = "Continue?: "
	EnterPrompt    = "Press Enter to continue..."
)

// Options configures a Screen.
type Options struct {
	Title       string
	Description string
	Clear       ClearMode
}

// Screen is the terminal collaborator used by the browser.
type Screen struct {
	in          *bufio.Reader
	out         io.Writer
	styles      theme.Styles
	title       string
	description string
	clear       bool
}

// NewScreen wraps the operator's input and output streams.
func NewScreen(in io.Reader, out io.Writer, opts Options) *Screen {
	clearScreen := false
	switch opts.Clear {
	case ClearAlways:
		clearScreen = true
	case ClearAuto:
		clearScreen = IsTerminal(out)
	}

	return &Screen{
		in:          bufio.NewReader(in),
		out:         out,
		styles:      theme.New(lipgloss.NewRenderer(out)),
		title:       opts.Title,
		description: opts.Description,
		clear:       clearScreen,
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Clear wipes the terminal and homes the cursor.
func (s *Screen) Clear() {
	if !s.clear {
		return
	}
	fmt.Fprint(s.out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
}

// Banner clears the screen and prints the title and description.
func (s *Screen) Banner() {
	s.Clear()
	if s.title != "" {
		fmt.Fprintln(s.out, s.styles.Title.Render(s.title))
	}
	if s.description != "" {
		fmt.Fprintln(s.out, s.styles.Description.Render(s.description))
	}
	fmt.Fprintln(s.out)
}

// RenderMenu prints one line per entry, optionally under a heading.
func (s *Screen) RenderMenu(heading string, entries []menu.Entry) {
	if heading != "" {
		fmt.Fprintln(s.out, heading)
	}
	for _, entry := range entries {
		fmt.Fprintln(s.out, s.renderEntry(entry))
	}
}

func (s *Screen) renderEntry(entry menu.Entry) string {
	ordinal := fmt.Sprintf("%d: ", entry.Ordinal)
	switch entry.Kind {
	case menu.EntryBack:
		return s.styles.Back.Render(ordinal + entry.Label())
	case menu.EntryDirectory:
		return ordinal + s.styles.Directory.Render(entry.Label())
	case menu.EntrySource:
		return ordinal + s.styles.SourceFile.Render(entry.Label())
	case menu.EntryCallable:
		return ordinal + s.styles.Callable.Render(entry.Label())
	default:
		return ordinal + s.styles.File.Render(entry.Label())
	}
}

// CallableHeading formats the heading of a file's callable sub-menu.
func (s *Screen) CallableHeading(file string) string {
	return "\n" + s.styles.Heading.Render("Functions in file:") + " " + file
}

// Prompt prints text and reads one line. It returns io.EOF once the input is
// exhausted.
func (s *Screen) Prompt(text string) (string, error) {
	fmt.Fprint(s.out, "\n"+s.styles.Prompt.Render(text))
	return s.readLine()
}

// Pause waits for the operator to acknowledge a message.
func (s *Screen) Pause(text string) error {
	fmt.Fprint(s.out, s.styles.Continue.Render(text))
	_, err := s.readLine()
	return err
}

// InvalidInput reports an unusable selection and waits for acknowledgment.
func (s *Screen) InvalidInput() error {
	fmt.Fprintln(s.out, s.styles.Error.Render("Invalid input. Please enter a valid number"))
	return s.Pause(ContinuePrompt)
}

// Unsupported reports a file that cannot be executed. reason may be empty.
func (s *Screen) Unsupported(reason string) error {
	fmt.Fprintln(s.out, "Unable to execute due to item being unsupported.")
	if reason != "" {
		fmt.Fprintln(s.out, reason)
	}
	return s.Pause(ContinuePrompt)
}

// Failure prints a non-fatal error.
func (s *Screen) Failure(err error) {
	fmt.Fprintln(s.out, err)
}

// Started announces the start of a run.
func (s *Screen) Started(label string) {
	fmt.Fprintf(s.out, "\n%s\n\n", s.styles.Running.Render("▶ Now Running: "+label))
}

// Succeeded announces a run that completed normally.
func (s *Screen) Succeeded(label string) {
	fmt.Fprintf(s.out, "\n%s\n", s.styles.Success.Render("▶ Successfully Executed: "+label))
}

func (s *Screen) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
