package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"ptu/internal/config"
	"ptu/internal/discovery"
	"ptu/internal/domain"
)

// Runner executes pytest for a single test file
type Runner struct {
	config     *config.Config
	classifier *discovery.Classifier
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, classifier *discovery.Classifier) *Runner {
	return &Runner{config: cfg, classifier: classifier}
}

// Run executes pytest for a single test file
func (r *Runner) Run(testPath string, workerID int) domain.TestResult {
	args := append(r.config.GetPytestArgs(), testPath)
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, r.config.PytestBin, args...)

	// Set environment variables
	cmd.Env = os.Environ() // Start with current environment
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("PTU_WORKER_ID=%d", workerID),
		fmt.Sprintf("DB_DATABASE=%s", r.config.GetDatabaseName(workerID)),
	)

	// Set working directory
	cmd.Dir = r.config.ProjectPath

	start := time.Now()
	output, err := cmd.CombinedOutput()

	return domain.TestResult{
		TestPath: testPath,
		Origin:   r.classifier.Classify(testPath),
		Success:  err == nil,
		Output:   string(output),
		Error:    err,
		Duration: time.Since(start),
	}
}
