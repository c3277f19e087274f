package commands

import (
	"ptu/internal/cli"
	"ptu/internal/config"
	"ptu/internal/discovery"
	"ptu/internal/execution"
	"ptu/internal/fixtures"
	"ptu/internal/generate"
	"ptu/internal/parser"
	"ptu/internal/storage"
	"ptu/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Generate *GenerateCommand
	Scaffold *ScaffoldCommand
	Run      *RunCommand
	List     *ListCommand
	Fails    *FailsCommand
	Seed     *SeedCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	classifier := discovery.NewClassifier(cfg.GetCustomRoot(), cfg.GetGeneratedRoot())
	runner := execution.NewRunner(cfg, classifier)
	scheduler := execution.NewRoundRobinScheduler()
	pytestParser := parser.NewPytestParser()
	executor := execution.NewWorkerPool(cfg, runner, scheduler, pytestParser)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, testCaseParser, classifier)
	generator := generate.NewGenerator(cfg, scanner, testCaseParser, classifier)
	dbManager := fixtures.NewDatabaseManager(cfg)
	seeder := fixtures.NewSQLSeeder(cfg, dbManager)
	failureViewer := ui.NewFailureViewer(cfg, jsonStorage)

	return &Commands{
		Generate: NewGenerateCommand(cfg, generator, formatter),
		Scaffold: NewScaffoldCommand(cfg),
		Run:      NewRunCommand(cfg, scanner, filter, classifier, executor, pytestParser, jsonStorage, formatter, seeder, failureViewer),
		List:     NewListCommand(cfg, scanner, filter, classifier, formatter),
		Fails:    NewFailsCommand(cfg, jsonStorage, failureViewer),
		Seed:     NewSeedCommand(cfg, seeder),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.Flags = flags.ToConfigFlags()
		if flags.Processors > 0 {
			cfg.Processors = flags.Processors
		}
		return nil
	}

	// Generate command
	generateCmd := &cobra.Command{
		Use:     "generate",
		Short:   "Regenerate the generated test suite",
		Long:    "Render the generated test files from the API description. Files under the custom test directory are never written, deleted or truncated.",
		RunE:    c.Generate.Execute,
		PreRunE: applyFlags,
	}
	generateCmd.Flags().BoolVar(&flags.Check, "check", false, "Dry run: exit non-zero if regeneration would change anything")
	rootCmd.AddCommand(generateCmd)

	// Scaffold command
	scaffoldCmd := &cobra.Command{
		Use:     "scaffold",
		Short:   "Create the example custom test file",
		Long:    "Create tests/custom/test_example_custom.py as a starting point for handwritten tests. An existing file is never overwritten.",
		RunE:    c.Scaffold.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(scaffoldCmd)

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the test suite in parallel",
		Long:    "Discover custom and generated tests and execute them using parallel pytest workers",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of parallel workers to use")
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test discovery should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g. 'test_users*' or '*orders*')")
	runCmd.Flags().StringVar(&flags.Origin, "origin", "", "Run only 'custom' or 'generated' tests")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only tests that failed in the last run")
	runCmd.Flags().BoolVar(&flags.OpenFails, "open-fails", false, "Open the fails viewer when the run finishes with failures")
	runCmd.Flags().BoolVar(&flags.Seed, "seed", false, "Seed worker databases before executing tests")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered tests",
		Long:    "Scan and list custom and generated tests without executing them",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards)")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test discovery should start")
	listCmd.Flags().StringVar(&flags.Origin, "origin", "", "List only 'custom' or 'generated' tests")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases instead of test files")
	rootCmd.AddCommand(listCmd)

	// Fails command
	failsCmd := &cobra.Command{
		Use:   "fails",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		RunE:  c.Fails.Execute,
	}
	rootCmd.AddCommand(failsCmd)

	// Seed command
	seedCmd := &cobra.Command{
		Use:     "seed",
		Short:   "Seed worker test databases",
		Long:    "Create per-worker test databases and apply SQL fixture files to each in parallel",
		RunE:    c.Seed.Execute,
		PreRunE: applyFlags,
	}
	seedCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of worker databases to prepare")
	rootCmd.AddCommand(seedCmd)
}
