// Package listing enumerates the immediate children of a directory in the
// order the browser numbers them.
package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/morozRed/launcher/internal/ignore"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Entry is one child of the listed directory.
type Entry struct {
	Name string `json:"name"`
	Kind Kind   `json:"-"`
}

// Listing holds the sorted subdirectories and files of Dir.
type Listing struct {
	Dir     string
	Subdirs []string
	Files   []string
}

// List reads the immediate children of dir. Entries matched by matcher are
// dropped; rules are matched against paths relative to root, the directory the
// rules were loaded for. A nil matcher applies only the default rules.
func List(root, dir string, matcher *ignore.Matcher) (*Listing, error) {
	if matcher == nil {
		matcher = ignore.NewMatcher(nil)
	}
	prefix := relativePrefix(root, dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	result := &Listing{
		Dir:     dir,
		Subdirs: make([]string, 0),
		Files:   make([]string, 0),
	}
	for _, entry := range entries {
		name := entry.Name()
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			// classify by target; broken links stay files
			if info, statErr := os.Stat(filepath.Join(dir, name)); statErr == nil {
				isDir = info.IsDir()
			}
		}

		if matcher.ShouldIgnore(prefix+name, isDir) {
			continue
		}
		if isDir {
			result.Subdirs = append(result.Subdirs, name)
		} else {
			result.Files = append(result.Files, name)
		}
	}

	sort.Strings(result.Subdirs)
	sort.Strings(result.Files)
	return result, nil
}

// Len is the number of selectable entries.
func (l *Listing) Len() int {
	return len(l.Subdirs) + len(l.Files)
}

// Resolve maps a 1-based ordinal onto its entry: subdirectories first, then
// files.
func (l *Listing) Resolve(ordinal int) (Entry, bool) {
	switch {
	case ordinal >= 1 && ordinal <= len(l.Subdirs):
		return Entry{Name: l.Subdirs[ordinal-1], Kind: KindDirectory}, true
	case ordinal > len(l.Subdirs) && ordinal <= l.Len():
		return Entry{Name: l.Files[ordinal-len(l.Subdirs)-1], Kind: KindFile}, true
	default:
		return Entry{}, false
	}
}

// Entries returns subdirectories followed by files.
func (l *Listing) Entries() []Entry {
	out := make([]Entry, 0, l.Len())
	for _, name := range l.Subdirs {
		out = append(out, Entry{Name: name, Kind: KindDirectory})
	}
	for _, name := range l.Files {
		out = append(out, Entry{Name: name, Kind: KindFile})
	}
	return out
}

// Path joins an entry name onto the listed directory.
func (l *Listing) Path(name string) string {
	return filepath.Join(l.Dir, name)
}

// relativePrefix is dir relative to root with a trailing slash, or "" when
// dir is root or lies outside it.
func relativePrefix(root, dir string) string {
	if root == "" {
		return ""
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel) + "/"
}
