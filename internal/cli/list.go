package cli

import (
	"fmt"

	"github.com/morozRed/launcher/internal/fileutil"
	"github.com/morozRed/launcher/internal/languages"
	"github.com/morozRed/launcher/internal/listing"
	"github.com/morozRed/launcher/internal/menu"
	"github.com/spf13/cobra"
)

// ListEntry is one numbered line of the list command.
type ListEntry struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
	Type    string `json:"type"`
}

// ListSummary is the --json output of the list command.
type ListSummary struct {
	Dir     string      `json:"dir"`
	Entries []ListEntry `json:"entries"`
}

func RunList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	dir := cfg.StartDir
	if len(args) > 0 {
		dir = args[0]
	}
	root, err := resolveDirectory(dir)
	if err != nil {
		return err
	}
	matcher, err := newMatcher(root, cfg.Exclude)
	if err != nil {
		return err
	}
	l, err := listing.List(root, root, matcher)
	if err != nil {
		return err
	}

	registry := languages.NewDefaultRegistry()
	entries := menu.BrowseEntries(l, false, registry.IsSource)
	if asJSON {
		summary := ListSummary{Dir: root, Entries: make([]ListEntry, 0, len(entries))}
		for _, entry := range entries {
			summary.Entries = append(summary.Entries, ListEntry{
				Ordinal: entry.Ordinal,
				Name:    entry.Name,
				Type:    entryType(entry.Kind),
			})
		}
		return fileutil.PrintJSON(cmd.OutOrStdout(), summary)
	}

	for _, entry := range entries {
		fmt.Fprintln(cmd.OutOrStdout(), entry.String())
	}
	return nil
}

func entryType(kind menu.EntryKind) string {
	switch kind {
	case menu.EntryDirectory:
		return "directory"
	case menu.EntrySource:
		return "source"
	default:
		return "file"
	}
}
