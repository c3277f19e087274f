package execution

import (
	"time"

	"ptu/internal/domain"
)

// Executor executes tests and returns results
type Executor interface {
	Execute(tests []string) ([]domain.TestResult, time.Duration, error)
}
