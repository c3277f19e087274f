package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ptu/internal/config"
	"ptu/internal/discovery"
	"ptu/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config     *config.Config
	scanner    *discovery.Scanner
	filter     *discovery.Filter
	classifier *discovery.Classifier
	formatter  *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	classifier *discovery.Classifier,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:     cfg,
		scanner:    scanner,
		filter:     filter,
		classifier: classifier,
		formatter:  formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	tests, err := lc.scanner.Scan(lc.config.GetTestRoot())
	if err != nil {
		return err
	}

	tests = lc.filter.FilterByName(tests, lc.config.Flags.NameFilter)
	tests = filterByOrigin(tests, lc.classifier, lc.config.Flags.Origin)

	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	return lc.formatter.PrintTestList(tests, lc.config.Flags.TestCases)
}
