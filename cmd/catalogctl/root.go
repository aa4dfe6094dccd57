package main

import (
	"github.com/spf13/cobra"
)

// RootCommand creates and returns the root command
func RootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operate the generative catalog from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		spawnCommand(),
		illustrateCommand(),
		seedCommand(),
		tokenCommand(),
	)
	return rootCmd
}
