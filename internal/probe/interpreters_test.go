package probe

import (
	"errors"
	"path/filepath"
	"testing"
)

type extDetector map[string]string

func (d extDetector) LanguageForFile(filename string) (string, bool) {
	language, ok := d[filepath.Ext(filename)]
	return language, ok
}

func TestDetectLanguagePresence(t *testing.T) {
	presence := DetectLanguagePresence(
		[]string{"tools/setup.py", "notes.txt"},
		[]string{"go", "python"},
		extDetector{".py": "python", ".go": "go"},
	)

	if !presence["python"] {
		t.Fatalf("expected python to be present")
	}
	if presence["go"] {
		t.Fatalf("expected go to be absent")
	}
}

func TestProbeInterpretersWithLookPath(t *testing.T) {
	capabilities := ProbeInterpretersWithLookPath(
		map[string][]string{
			"python": {"python3"},
			"go":     {"go", "run"},
			"ruby":   nil,
		},
		map[string]bool{"python": true},
		func(file string) (string, error) {
			if file == "python3" {
				return "/mock/bin/python3", nil
			}
			return "", errors.New("not found")
		},
	)

	if len(capabilities) != 3 {
		t.Fatalf("expected 3 capabilities, got %#v", capabilities)
	}
	goCap, pyCap, rbCap := capabilities[0], capabilities[1], capabilities[2]
	if goCap.Language != "go" || goCap.Available || goCap.Reason != "command_not_found" {
		t.Fatalf("unexpected go capability: %#v", goCap)
	}
	if pyCap.Language != "python" || !pyCap.Available || pyCap.Path != "/mock/bin/python3" || !pyCap.Present {
		t.Fatalf("unexpected python capability: %#v", pyCap)
	}
	if rbCap.Reason != "not_configured" {
		t.Fatalf("expected ruby to be not_configured, got %#v", rbCap)
	}
}
