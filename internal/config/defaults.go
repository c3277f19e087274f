package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultCustomTestDir is where human-authored tests live, relative to the project
	DefaultCustomTestDir = "tests/custom"
	// DefaultGeneratedTestDir is where the updater writes tests, relative to the project
	DefaultGeneratedTestDir = "tests/generated"
	// DefaultFixturesDir holds SQL seed files for worker databases
	DefaultFixturesDir = "tests/fixtures"
	// DefaultAPISpecFile is the default API description file name
	DefaultAPISpecFile = "api-description.json"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".ptu"
	// DefaultPytestBin is the default test runner binary
	DefaultPytestBin = "pytest"
	// DefaultProcessors is the default number of workers
	DefaultProcessors = 4
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"__pycache__",
	".venv",
	"venv",
	"node_modules",
	".pytest_cache",
	".git",
	"build",
	"dist",
}

// DefaultPytestArgs are always passed to the runner so output stays parseable
var DefaultPytestArgs = []string{"-p", "no:cacheprovider", "--tb=short", "--color=no"}
