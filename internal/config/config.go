package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath      string
	CustomTestDir    string
	GeneratedTestDir string
	FixturesDir      string
	APISpecFile      string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	PytestBin  string
	PytestArgs []string
	Processors int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors int
	NameFilter string
	TestPath   string
	Origin     string
	TestCases  bool
	FailFast   bool
	OnlyFailed bool
	OpenFails  bool
	Seed       bool
	Check      bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:      DefaultProjectPath,
		CustomTestDir:    DefaultCustomTestDir,
		GeneratedTestDir: DefaultGeneratedTestDir,
		FixturesDir:      DefaultFixturesDir,
		APISpecFile:      DefaultAPISpecFile,
		OutputJSONFile:   DefaultOutputJSONFile,
		OutputJSONDir:    DefaultOutputJSONDir,
		PytestBin:        DefaultPytestBin,
		Processors:       DefaultProcessors,
		Flags:            Flags{Processors: DefaultProcessors},
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	cfg.PytestArgs = make([]string, len(DefaultPytestArgs))
	copy(cfg.PytestArgs, DefaultPytestArgs)
	return cfg
}

// Load creates a config, reads .env overrides from the project dir and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))

	if v := os.Getenv("PTU_PROJECT_PATH"); v != "" {
		cfg.ProjectPath = v
	}
	if v := os.Getenv("PTU_PYTEST_BIN"); v != "" {
		cfg.PytestBin = v
	}
	if v := os.Getenv("PTU_CUSTOM_TEST_DIR"); v != "" {
		cfg.CustomTestDir = v
	}
	if v := os.Getenv("PTU_GENERATED_TEST_DIR"); v != "" {
		cfg.GeneratedTestDir = v
	}

	if flags.Processors > 0 {
		cfg.Processors = flags.Processors
	}

	return cfg
}

// GetTestRoot returns the directory test discovery starts from, using flag if provided
func (c *Config) GetTestRoot() string {
	if c.Flags.TestPath != "" {
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	// Default: the common parent of the custom and generated dirs
	return filepath.Join(c.ProjectPath, "tests")
}

// GetCustomRoot returns the absolute path of the custom test directory.
func (c *Config) GetCustomRoot() string {
	return c.absUnderProject(c.CustomTestDir)
}

// GetGeneratedRoot returns the absolute path of the generated test directory.
func (c *Config) GetGeneratedRoot() string {
	return c.absUnderProject(c.GeneratedTestDir)
}

// GetFixturesRoot returns the absolute path of the SQL fixtures directory.
func (c *Config) GetFixturesRoot() string {
	return c.absUnderProject(c.FixturesDir)
}

// GetAPISpecPath returns the path to the API description file.
func (c *Config) GetAPISpecPath() string {
	return filepath.Join(c.ProjectPath, c.APISpecFile)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and fails always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetPytestArgs returns the arguments passed to the runner ahead of the test path.
func (c *Config) GetPytestArgs() []string {
	args := make([]string, len(c.PytestArgs))
	copy(args, c.PytestArgs)
	return args
}

// GetDatabaseName returns the fixture database name for a worker
func (c *Config) GetDatabaseName(workerID int) string {
	prefix := os.Getenv("DB_DATABASE_PREFIX")
	if prefix == "" {
		prefix = "testing"
	}
	return fmt.Sprintf("%s_%d", prefix, workerID)
}

func (c *Config) absUnderProject(dir string) string {
	p := dir
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.ProjectPath, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
