package browser

import "path/filepath"

// State is the navigation position. Start never changes once set.
type State struct {
	Start   string
	Current string
}

// NewState starts browsing at dir.
func NewState(dir string) State {
	clean := filepath.Clean(dir)
	return State{Start: clean, Current: clean}
}

// IsRoot reports whether the current directory is the starting directory.
func (s State) IsRoot() bool {
	return filepath.Clean(s.Current) == filepath.Clean(s.Start)
}

// Enter descends into the named child of the current directory.
func (s State) Enter(name string) State {
	s.Current = filepath.Join(s.Current, name)
	return s
}

// Parent moves one level up. At the root it is a no-op.
func (s State) Parent() State {
	if s.IsRoot() {
		return s
	}
	s.Current = filepath.Dir(s.Current)
	return s
}
