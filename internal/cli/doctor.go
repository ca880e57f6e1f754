package cli

import (
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/morozRed/launcher/internal/fileutil"
	"github.com/morozRed/launcher/internal/ignore"
	"github.com/morozRed/launcher/internal/languages"
	"github.com/morozRed/launcher/internal/probe"
	"github.com/spf13/cobra"
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// DoctorSummary is the --json output of the doctor command.
type DoctorSummary struct {
	Mode         string             `json:"mode"`
	RootPath     string             `json:"root_path"`
	Prefix       string             `json:"prefix"`
	Healthy      bool               `json:"healthy"`
	Interpreters []probe.Capability `json:"interpreters"`
	Missing      []string           `json:"missing,omitempty"`
	Suggestions  []string           `json:"suggestions,omitempty"`
}

func RunDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	rootPath, err := resolveDirectory(cfg.StartDir)
	if err != nil {
		return err
	}
	matcher, err := newMatcher(rootPath, cfg.Exclude)
	if err != nil {
		return err
	}

	registry := languages.NewDefaultRegistry()
	paths, err := scanSourceFiles(rootPath, matcher)
	if err != nil {
		return fmt.Errorf("failed to scan files: %w", err)
	}

	summary := DoctorSummary{
		Mode:     "doctor",
		RootPath: rootPath,
		Prefix:   cfg.Prefix,
	}
	presence := probe.DetectLanguagePresence(paths, registry.Languages(), registry)
	summary.Interpreters = probe.ProbeInterpretersWithLookPath(cfg.Interpreters, presence, lookPath)
	for _, capability := range summary.Interpreters {
		if capability.Present && !capability.Available {
			summary.Missing = append(summary.Missing, capability.Language+" interpreter")
			summary.Suggestions = append(summary.Suggestions,
				fmt.Sprintf("install %s or set interpreters.%s in the config file", strings.Join(capability.Command, " "), capability.Language))
		}
	}
	summary.Healthy = len(summary.Missing) == 0

	out := cmd.OutOrStdout()
	if asJSON {
		return fileutil.PrintJSON(out, summary)
	}

	status := "issues"
	if summary.Healthy {
		status = "ok"
	}
	fmt.Fprintf(out, "doctor: %s\n", status)
	fmt.Fprintf(out, "root: %s prefix=%q\n", summary.RootPath, summary.Prefix)
	for _, capability := range summary.Interpreters {
		state := "available"
		if !capability.Available {
			state = capability.Reason
		}
		fmt.Fprintf(out, "interpreter %s: %s (%s) present=%t\n",
			capability.Language, strings.Join(capability.Command, " "), state, capability.Present)
	}
	if len(summary.Missing) > 0 {
		fmt.Fprintf(out, "missing (%d): %s\n", len(summary.Missing), strings.Join(summary.Missing, ", "))
	}
	for _, suggestion := range summary.Suggestions {
		fmt.Fprintf(out, "next: %s\n", suggestion)
	}
	return nil
}

// scanSourceFiles walks root, skipping hidden entries.
func scanSourceFiles(root string, matcher *ignore.Matcher) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if matcher.ShouldIgnore(filepath.ToSlash(rel), d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			paths = append(paths, rel)
		}
		return nil
	})
	return paths, err
}
