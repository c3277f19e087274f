package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ptu/internal/config"
	"ptu/internal/generate"
	"ptu/internal/ui"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	config    *config.Config
	generator *generate.Generator
	formatter *ui.Formatter
}

// NewGenerateCommand creates a new GenerateCommand
func NewGenerateCommand(cfg *config.Config, generator *generate.Generator, formatter *ui.Formatter) *GenerateCommand {
	return &GenerateCommand{
		config:    cfg,
		generator: generator,
		formatter: formatter,
	}
}

// Execute runs the command
func (gc *GenerateCommand) Execute(cmd *cobra.Command, args []string) error {
	desc, err := generate.LoadDescription(gc.config.GetAPISpecPath())
	if err != nil {
		return err
	}

	dryRun := gc.config.Flags.Check
	report, err := gc.generator.Update(desc, dryRun)
	if err != nil {
		return err
	}

	gc.formatter.PrintUpdateReport(report, dryRun)

	if dryRun && report.Changed() {
		return fmt.Errorf("generated test suite is out of date")
	}
	return nil
}
