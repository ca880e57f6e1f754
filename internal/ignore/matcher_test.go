package ignore

import "testing"

func TestMatcher_DefaultAndUserOverrides(t *testing.T) {
	m := NewMatcher([]string{
		"vendor/**",
		"!vendor/keep/file.go",
		"*.tmp",
	})

	cases := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{path: "__pycache__", isDir: true, ignored: true},
		{path: "pkg/__pycache__/mod.cpython-312.pyc", isDir: false, ignored: true},
		{path: "vendor/lib/a.go", isDir: false, ignored: true},
		{path: "vendor/keep/file.go", isDir: false, ignored: false},
		{path: "nested/cache.tmp", isDir: false, ignored: true},
		{path: "src/main.go", isDir: false, ignored: false},
		{path: ".git", isDir: true, ignored: false},
	}

	for _, tc := range cases {
		got := m.ShouldIgnore(tc.path, tc.isDir)
		if got != tc.ignored {
			t.Fatalf("path %s: expected ignored=%v, got %v", tc.path, tc.ignored, got)
		}
	}
}

func TestMatcher_CacheNameIsNotHiddenForFiles(t *testing.T) {
	m := NewMatcher(nil)
	if m.ShouldIgnore("__pycache__", false) {
		t.Fatalf("expected a plain file named __pycache__ to stay visible")
	}
}

func TestMatcher_NegatedDirectoryRule(t *testing.T) {
	m := NewMatcher([]string{
		"build/",
		"!build/include/",
	})

	if !m.ShouldIgnore("build/out/file.go", false) {
		t.Fatalf("expected build/out/file.go to be ignored")
	}
	if m.ShouldIgnore("build/include/file.go", false) {
		t.Fatalf("expected build/include/file.go to be included")
	}
}

func TestMatcher_UserCanUnhideCacheDirectory(t *testing.T) {
	m := NewMatcher([]string{"!__pycache__/"})
	if m.ShouldIgnore("__pycache__", true) {
		t.Fatalf("expected negation rule to override the default exclude")
	}
}
