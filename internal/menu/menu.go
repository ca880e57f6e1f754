// Package menu builds numbered menu entries and turns operator input into
// selections.
package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/morozRed/launcher/internal/listing"
	"github.com/morozRed/launcher/internal/parser"
)

// Recognized control tokens.
const (
	TokenExit  = "-1"
	TokenBack  = "0"
	TokenClear = "#"
)

// ErrInvalidSelection is matched by every *InvalidSelectionError.
var ErrInvalidSelection = errors.New("invalid selection")

// InvalidSelectionError reports input that is neither a control token nor an
// ordinal in range.
type InvalidSelectionError struct {
	Input string
	Count int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %q (expected 1..%d)", e.Input, e.Count)
}

func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// SelectionKind is the outcome of parsing one line of input.
type SelectionKind int

const (
	SelectIndex SelectionKind = iota
	SelectExit
	SelectBack
	SelectClear
)

func (k SelectionKind) String() string {
	switch k {
	case SelectIndex:
		return "index"
	case SelectExit:
		return "exit"
	case SelectBack:
		return "back"
	case SelectClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Selection is a validated operator choice. Index is only set for SelectIndex.
type Selection struct {
	Kind  SelectionKind
	Index int
}

// Options describe which tokens a prompt accepts.
type Options struct {
	AllowBack bool
	AllowExit bool
	Count     int // number of selectable ordinals
}

// Parse converts a raw input line into a Selection.
func Parse(input string, opts Options) (Selection, error) {
	token := strings.TrimSpace(input)
	switch {
	case token == TokenExit && opts.AllowExit:
		return Selection{Kind: SelectExit}, nil
	case token == TokenBack && opts.AllowBack:
		return Selection{Kind: SelectBack}, nil
	case token == TokenClear:
		return Selection{Kind: SelectClear}, nil
	}

	n, err := strconv.Atoi(token)
	if err != nil || n < 1 || n > opts.Count {
		return Selection{}, &InvalidSelectionError{Input: token, Count: opts.Count}
	}
	return Selection{Kind: SelectIndex, Index: n}, nil
}

// EntryKind decides how an entry is labelled and styled.
type EntryKind int

const (
	EntryBack EntryKind = iota
	EntryDirectory
	EntryFile
	EntrySource
	EntryCallable
)

// Entry is one numbered menu line.
type Entry struct {
	Ordinal int       `json:"ordinal"`
	Name    string    `json:"name"`
	Kind    EntryKind `json:"-"`
}

// BrowseEntries numbers a directory listing: 0 for back when allowed, then
// subdirectories, then files. isSource may be nil.
func BrowseEntries(l *listing.Listing, allowBack bool, isSource func(name string) bool) []Entry {
	entries := make([]Entry, 0, l.Len()+1)
	if allowBack {
		entries = append(entries, Entry{Ordinal: 0, Kind: EntryBack})
	}
	for i, entry := range l.Entries() {
		kind := EntryFile
		switch {
		case entry.Kind == listing.KindDirectory:
			kind = EntryDirectory
		case isSource != nil && isSource(entry.Name):
			kind = EntrySource
		}
		entries = append(entries, Entry{Ordinal: i + 1, Name: entry.Name, Kind: kind})
	}
	return entries
}

// CallableEntries numbers a callable sub-menu. Back is always offered.
func CallableEntries(callables []parser.Callable) []Entry {
	entries := make([]Entry, 0, len(callables)+1)
	entries = append(entries, Entry{Ordinal: 0, Kind: EntryBack})
	for i, callable := range callables {
		entries = append(entries, Entry{Ordinal: i + 1, Name: callable.DisplayName, Kind: EntryCallable})
	}
	return entries
}

// Label renders the plain text of an entry without its ordinal.
func (e Entry) Label() string {
	switch e.Kind {
	case EntryBack:
		return "<- Go Back"
	case EntryDirectory:
		return "[Subfolder] " + e.Name
	case EntryFile, EntrySource:
		return "[File] " + e.Name
	default:
		return e.Name
	}
}

// String renders "ordinal: label".
func (e Entry) String() string {
	return fmt.Sprintf("%d: %s", e.Ordinal, e.Label())
}
