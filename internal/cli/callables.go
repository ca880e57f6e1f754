package cli

import (
	"errors"
	"fmt"

	"github.com/morozRed/launcher/internal/fileutil"
	"github.com/morozRed/launcher/internal/languages"
	"github.com/morozRed/launcher/internal/parser"
	"github.com/spf13/cobra"
)

// CallablesSummary is the --json output of the callables command.
type CallablesSummary struct {
	File      string            `json:"file"`
	Language  string            `json:"language"`
	Prefix    string            `json:"prefix"`
	Callables []parser.Callable `json:"callables"`
}

func RunCallables(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	path := args[0]
	registry := languages.NewDefaultRegistry()
	language, ok := registry.LanguageForFile(path)
	if !ok {
		return fmt.Errorf("unsupported file %s (supported extensions: %v)", path, registry.SupportedExtensions())
	}

	_, callables, err := registry.ExtractMarked(path, cfg.Prefix)
	if err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("cannot list callables: %w", err)
		}
		return err
	}

	summary := CallablesSummary{
		File:      path,
		Language:  language,
		Prefix:    cfg.Prefix,
		Callables: callables,
	}
	if summary.Callables == nil {
		summary.Callables = []parser.Callable{}
	}
	if asJSON {
		return fileutil.PrintJSON(cmd.OutOrStdout(), summary)
	}

	out := cmd.OutOrStdout()
	if len(callables) == 0 {
		fmt.Fprintf(out, "%s: no marked functions, the whole file runs\n", path)
		return nil
	}
	for i, callable := range callables {
		fmt.Fprintf(out, "%d: %s (line %d)\n", i+1, callable.DisplayName, callable.Line)
	}
	return nil
}
