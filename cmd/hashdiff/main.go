package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/hashdiff/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "hashdiff",
		Short: "Compare two files or directory trees by content digest",
		Long: `hashdiff compares two filesystem paths - two files or two directory
trees - and reports whether and how their contents differ. Files are
compared by size first and by content digest when sizes match, so
verifying backups or release artifacts does not require byte-by-byte
diffing of every file. The comparison is strictly read-only.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewCompareCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
