package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ptu/internal/config"
	"ptu/internal/discovery"
	"ptu/internal/domain"
	"ptu/internal/execution"
	"ptu/internal/fixtures"
	"ptu/internal/parser"
	"ptu/internal/storage"
	"ptu/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config     *config.Config
	scanner    *discovery.Scanner
	filter     *discovery.Filter
	classifier *discovery.Classifier
	executor   *execution.WorkerPool
	parser     *parser.PytestParser
	storage    storage.Storage
	formatter  *ui.Formatter
	seeder     fixtures.Seeder
	viewer     *ui.FailureViewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	classifier *discovery.Classifier,
	executor *execution.WorkerPool,
	pytestParser *parser.PytestParser,
	st storage.Storage,
	formatter *ui.Formatter,
	seeder fixtures.Seeder,
	viewer *ui.FailureViewer,
) *RunCommand {
	return &RunCommand{
		config:     cfg,
		scanner:    scanner,
		filter:     filter,
		classifier: classifier,
		executor:   executor,
		parser:     pytestParser,
		storage:    st,
		formatter:  formatter,
		seeder:     seeder,
		viewer:     viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if rc.config.Flags.Seed {
		if err := rc.seeder.Run(rc.config.Processors); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		fmt.Println()
	}

	tests, err := rc.discoverTests()
	if err != nil {
		return err
	}

	tests = rc.filter.FilterByName(tests, rc.config.Flags.NameFilter)
	tests = filterByOrigin(tests, rc.classifier, rc.config.Flags.Origin)

	if rc.config.Flags.OnlyFailed {
		tests, err = rc.restrictToLastFailures(tests)
		if err != nil {
			return err
		}
	}

	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	progressBar := ui.NewProgressBar(len(tests))
	rc.executor.SetProgress(progressBar)

	results, duration, err := rc.executor.ExecuteWithOptions(tests, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	var failures []domain.TestFailure
	failedFiles := 0
	for _, result := range results {
		if result.Success {
			continue
		}
		failedFiles++
		failures = append(failures, rc.parser.ParseFailure(result)...)
	}

	if err := rc.storage.Save(results, failures, duration, rc.config.Processors); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}

	if failedFiles > 0 {
		if rc.config.Flags.OpenFails {
			output, err := rc.storage.Load()
			if err != nil {
				return err
			}
			if err := rc.viewer.View(output); err != nil {
				return err
			}
		}
		return fmt.Errorf("%d test file(s) failed", failedFiles)
	}
	return nil
}

// discoverTests scans the configured root, or both suite roots when no
// explicit test path was given.
func (rc *RunCommand) discoverTests() ([]string, error) {
	root := rc.config.GetTestRoot()
	tests, err := rc.scanner.Scan(root)
	if err != nil {
		return nil, err
	}
	return tests, nil
}

// restrictToLastFailures keeps only tests whose file failed in the stored run.
func (rc *RunCommand) restrictToLastFailures(tests []string) ([]string, error) {
	output, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no stored results to rerun failures from: %w", err)
	}

	failedPaths := make(map[string]bool)
	for _, failure := range output.Details {
		failedPaths[normalizePathKey(rc.config.ProjectPath, failure.FilePath)] = true
	}

	var kept []string
	for _, test := range tests {
		if failedPaths[normalizePathKey(rc.config.ProjectPath, test)] {
			kept = append(kept, test)
		}
	}
	return kept, nil
}

// filterByOrigin keeps only tests matching the requested origin, if any.
func filterByOrigin(tests []string, classifier *discovery.Classifier, origin string) []string {
	if origin == "" {
		return tests
	}

	want := domain.Origin(strings.ToLower(origin))
	var kept []string
	for _, test := range tests {
		if classifier.Classify(test) == want {
			kept = append(kept, test)
		}
	}
	return kept
}

// normalizePathKey produces a stable key for matching stored failure paths
// against discovered test paths.
func normalizePathKey(projectPath, path string) string {
	p := path
	if projectPath != "" {
		if rel, err := filepath.Rel(projectPath, path); err == nil && rel != ".." && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	return filepath.ToSlash(p)
}
