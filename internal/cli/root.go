package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "launcher",
		Short: "Browse a directory tree and run source files or their marked functions",
		Long: `Launcher walks a directory tree in the terminal. Pick a subfolder to
enter it, or pick a source file to run it. Files that define functions whose
names start with the marker prefix (default "__") offer those functions in a
sub-menu instead of running the whole file.

Enter -1 to exit, 0 to go back and # to clear the screen.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          RunLauncher,
	}
	rootCmd.Flags().String("dir", "", "Directory to start browsing from (default: current directory)")
	rootCmd.Flags().String("log-file", "", "Write a JSON session log to this file")
	rootCmd.Flags().Bool("debug", false, "Log at debug level")
	rootCmd.Flags().String("clear", "", "Screen clearing: auto|always|never")
	rootCmd.PersistentFlags().String("prefix", "", "Marker prefix of runnable functions (default \"__\")")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	callablesCmd := &cobra.Command{
		Use:   "callables <file>",
		Short: "List the marked functions of a source file",
		Args:  cobra.ExactArgs(1),
		RunE:  RunCallables,
	}
	callablesCmd.Flags().Bool("json", false, "Print machine-readable callables")

	listCmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "Print the numbered menu of a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunList,
	}
	listCmd.Flags().Bool("json", false, "Print machine-readable entries")

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the configured interpreters are installed",
		RunE:  RunDoctor,
	}
	doctorCmd.Flags().Bool("json", false, "Print machine-readable doctor output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "launcher %s\n", version)
		},
	}

	rootCmd.AddCommand(
		callablesCmd,
		listCmd,
		doctorCmd,
		versionCmd,
	)

	return rootCmd
}
