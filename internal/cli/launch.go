package cli

import (
	"io"
	"os"

	"github.com/morozRed/launcher/internal/browser"
	"github.com/morozRed/launcher/internal/config"
	"github.com/morozRed/launcher/internal/languages"
	"github.com/morozRed/launcher/internal/logging"
	"github.com/morozRed/launcher/internal/runner"
	"github.com/morozRed/launcher/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig reads --config when given and applies the command's flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	path, err := OptionalStringFlag(cmd, "config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	overrides := map[string]*string{
		"dir":      &cfg.StartDir,
		"prefix":   &cfg.Prefix,
		"log-file": &cfg.LogFile,
		"clear":    &cfg.Clear,
	}
	for name, target := range overrides {
		value, err := OptionalStringFlag(cmd, name)
		if err != nil {
			return nil, err
		}
		if value != "" {
			*target = value
		}
	}
	debug, err := OptionalBoolFlag(cmd, "debug", false)
	if err != nil {
		return nil, err
	}
	cfg.Debug = cfg.Debug || debug

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func RunLauncher(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	start, err := resolveDirectory(cfg.StartDir)
	if err != nil {
		return err
	}
	matcher, err := newMatcher(start, cfg.Exclude)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("session started", zap.String("start", start), zap.String("prefix", cfg.Prefix))

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	screen := ui.NewScreen(in, out, ui.Options{
		Title:       cfg.Title,
		Description: cfg.Description,
		Clear:       clearMode(cfg.Clear),
	})

	dispatcher := runner.New(runner.Options{
		Interpreters: cfg.Interpreters,
		Stdin:        childStdin(in),
		Stdout:       out,
		Stderr:       cmd.ErrOrStderr(),
		Announcer:    screen,
		Logger:       logger,
	})

	b := browser.New(browser.Options{
		Start:      start,
		Prefix:     cfg.Prefix,
		Registry:   languages.NewDefaultRegistry(),
		Matcher:    matcher,
		Dispatcher: dispatcher,
		Terminal:   screen,
		Logger:     logger,
	})
	return b.Run(cmd.Context())
}

// childStdin hands the terminal to child processes. Other readers are owned
// by the prompt, so children get no input.
func childStdin(in io.Reader) io.Reader {
	if f, ok := in.(*os.File); ok {
		return f
	}
	return nil
}

func clearMode(mode string) ui.ClearMode {
	switch mode {
	case config.ClearAlways:
		return ui.ClearAlways
	case config.ClearNever:
		return ui.ClearNever
	default:
		return ui.ClearAuto
	}
}
