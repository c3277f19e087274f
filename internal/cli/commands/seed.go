package commands

import (
	"github.com/spf13/cobra"

	"ptu/internal/config"
	"ptu/internal/fixtures"
)

// SeedCommand handles the seed command
type SeedCommand struct {
	config *config.Config
	seeder fixtures.Seeder
}

// NewSeedCommand creates a new SeedCommand
func NewSeedCommand(cfg *config.Config, seeder fixtures.Seeder) *SeedCommand {
	return &SeedCommand{
		config: cfg,
		seeder: seeder,
	}
}

// Execute runs the command
func (sc *SeedCommand) Execute(cmd *cobra.Command, args []string) error {
	return sc.seeder.Run(sc.config.Processors)
}
