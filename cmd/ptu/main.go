package main

import (
	"fmt"
	"os"

	"ptu/internal/cli"
	"ptu/internal/cli/commands"
	"ptu/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "ptu",
		Short:   "Parallel test updater",
		Long:    `Manage the test suite of a generated API client: regenerate the generated tests from the API description, keep custom tests untouched, and run the whole suite in parallel pytest workers.`,
		Version: version,
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create initial config with defaults and environment overrides
	cfg := config.Load(flags.ToConfigFlags())

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
