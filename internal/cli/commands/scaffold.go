package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ptu/internal/config"
	"ptu/internal/generate"
)

// ScaffoldCommand handles the scaffold command
type ScaffoldCommand struct {
	config *config.Config
}

// NewScaffoldCommand creates a new ScaffoldCommand
func NewScaffoldCommand(cfg *config.Config) *ScaffoldCommand {
	return &ScaffoldCommand{config: cfg}
}

// Execute runs the command
func (sc *ScaffoldCommand) Execute(cmd *cobra.Command, args []string) error {
	path, created, err := generate.Scaffold(sc.config.GetCustomRoot())
	if err != nil {
		return err
	}

	if created {
		color.Green("✓ Created %s", path)
	} else {
		color.Yellow("Example custom test already exists at %s, left untouched", path)
	}
	return nil
}
