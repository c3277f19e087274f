package fixtures

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"ptu/internal/config"
	"ptu/internal/domain"
)

// Seeder provisions worker databases and applies SQL fixture files
type Seeder interface {
	Run(workerCount int) error
}

// SQLSeeder applies tests/fixtures/*.sql to every worker database in parallel
type SQLSeeder struct {
	config          *config.Config
	databaseManager *DatabaseManager
}

// NewSQLSeeder creates a new SQLSeeder
func NewSQLSeeder(cfg *config.Config, dbManager *DatabaseManager) *SQLSeeder {
	return &SQLSeeder{
		config:          cfg,
		databaseManager: dbManager,
	}
}

// Run creates missing worker databases and applies every fixture file to each
func (s *SQLSeeder) Run(workerCount int) error {
	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║              Seeding Worker Test Databases                 ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	db, err := s.databaseManager.Connect()
	if err != nil {
		return err
	}
	defer db.Close()

	workers, err := s.databaseManager.EnsureDatabases(db, workerCount)
	if err != nil {
		return fmt.Errorf("failed to prepare databases: %w", err)
	}
	if len(workers) == 0 {
		return fmt.Errorf("no worker databases available")
	}

	fixtureFiles, err := s.findFixtureFiles()
	if err != nil {
		return fmt.Errorf("failed to find fixture files: %w", err)
	}
	if len(fixtureFiles) == 0 {
		color.Yellow("No fixture files found under %s", s.config.GetFixturesRoot())
		return nil
	}

	totalProgress := len(workers) * len(fixtureFiles)
	color.White("Workers: %d | Fixture files: %d | Total progress: %d\n\n", len(workers), len(fixtureFiles), totalProgress)

	var progressMu sync.Mutex
	completedCount := 0

	bar := progressbar.NewOptions(totalProgress,
		progressbar.OptionSetDescription(
			color.CyanString("Seeding: ")+
				color.GreenString("[completed: 0/%d]", totalProgress),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	advance := func() {
		progressMu.Lock()
		completedCount++
		current := completedCount
		progressMu.Unlock()

		bar.Set(current)
		bar.Describe(color.CyanString("Seeding: ") +
			color.GreenString("[completed: %d/%d]", current, totalProgress))
	}

	var wg sync.WaitGroup
	results := make(chan domain.SeedResult, len(workers))
	startTime := time.Now()

	for _, workerID := range workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			results <- s.seedWorker(id, fixtureFiles, advance)
		}(workerID)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var failed []domain.SeedResult
	for result := range results {
		if !result.Success {
			failed = append(failed, result)
		}
	}

	bar.Finish()
	duration := time.Since(startTime)

	fmt.Print("\n")
	if len(failed) == 0 {
		color.Green("✓ Seeding completed for all %d workers\n", len(workers))
		color.White("Duration: %s\n", duration.Round(time.Millisecond))
		return nil
	}

	color.Red("✗ Seeding failed for %d worker(s)\n", len(failed))
	for _, result := range failed {
		color.Red("  Worker %d (DB: %s): %v\n", result.WorkerID, result.Database, result.Error)
	}
	return fmt.Errorf("seeding failed for %d worker(s)", len(failed))
}

// findFixtureFiles discovers SQL files under the fixtures root, sorted so
// numbered files apply in order.
func (s *SQLSeeder) findFixtureFiles() ([]string, error) {
	root := s.config.GetFixturesRoot()
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// seedWorker opens the worker's database and applies each fixture file.
func (s *SQLSeeder) seedWorker(workerID int, files []string, advance func()) domain.SeedResult {
	dbName := s.config.GetDatabaseName(workerID)
	result := domain.SeedResult{WorkerID: workerID, Database: dbName}

	if !IsValidDatabaseName(dbName) {
		result.Error = fmt.Errorf("invalid database name: %s", dbName)
		return result
	}

	db, err := sql.Open("mysql", workerDSN(dbName))
	if err != nil {
		result.Error = fmt.Errorf("failed to connect to %s: %w", dbName, err)
		return result
	}
	defer db.Close()

	var applied []string
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			result.Error = fmt.Errorf("read fixture %s: %w", file, err)
			return result
		}
		if _, err := db.Exec(string(content)); err != nil {
			result.Error = fmt.Errorf("apply fixture %s: %w", filepath.Base(file), err)
			return result
		}
		applied = append(applied, filepath.Base(file))
		advance()
	}

	result.Success = true
	result.Output = strings.Join(applied, "\n")
	return result
}

// workerDSN builds a DSN selecting the worker's database.
func workerDSN(dbName string) string {
	base := serverDSN()
	return strings.Replace(base, "/?", "/"+dbName+"?", 1)
}
