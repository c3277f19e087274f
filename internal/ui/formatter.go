package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"

	"ptu/internal/config"
	"ptu/internal/discovery"
	"ptu/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config     *config.Config
	parser     *discovery.Parser
	classifier *discovery.Classifier
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, parser *discovery.Parser, classifier *discovery.Classifier) *Formatter {
	return &Formatter{
		config:     cfg,
		parser:     parser,
		classifier: classifier,
	}
}

// PrintMetaStats reads and displays meta statistics from the JSON results file
func (f *Formatter) PrintMetaStats() error {
	outputPath := f.config.GetOutputPath()

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read results file: %w", err)
	}

	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse results file: %w", err)
	}

	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Test Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	rows := []struct {
		label string
		value string
		paint func(format string, a ...interface{})
	}{
		{"Total Test Files", fmt.Sprintf("%d", meta.TotalTestFiles), color.White},
		{"Passed Test Files", fmt.Sprintf("%d", meta.PassedTestFiles), color.Green},
		{"Failed Test Files", fmt.Sprintf("%d", meta.FailedTestFiles), color.Red},
		{"Failed Test Cases", fmt.Sprintf("%d", meta.FailedTestCases), color.Red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.White},
		{"Workers", fmt.Sprintf("%d", meta.Workers), color.White},
		{"Run ID", meta.RunID, color.White},
		{"Timestamp", meta.Timestamp, color.White},
	}

	fmt.Println("┌─────────────────────────────────┬──────────────────────────────────────┐")
	for i, row := range rows {
		fmt.Printf("│ %-31s │ ", row.label)
		row.paint("%-36s │\n", row.value)
		if i < len(rows)-1 {
			fmt.Println("├─────────────────────────────────┼──────────────────────────────────────┤")
		}
	}
	fmt.Println("└─────────────────────────────────┴──────────────────────────────────────┘")

	fmt.Println()
	if meta.FailedTestFiles == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d test file(s) failed with %d test case failure(s)", meta.FailedTestFiles, meta.FailedTestCases)
		fmt.Println()
		f.printFailedTests(output.Details)
	}

	return nil
}

// printFailedTests prints failures grouped by file.
func (f *Formatter) printFailedTests(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	fileMap := make(map[string][]domain.TestFailure)
	var files []string
	for _, failure := range failures {
		if _, ok := fileMap[failure.FilePath]; !ok {
			files = append(files, failure.FilePath)
		}
		fileMap[failure.FilePath] = append(fileMap[failure.FilePath], failure)
	}
	sort.Strings(files)

	for i, file := range files {
		fileConnector := "├── "
		childBar := "│   "
		if i == len(files)-1 {
			fileConnector = "└── "
			childBar = "    "
		}

		marker := ""
		if len(fileMap[file]) > 0 && fileMap[file][0].Origin != "" {
			marker = fmt.Sprintf(" [%s]", fileMap[file][0].Origin)
		}
		color.Yellow("%s%s%s", fileConnector, file, marker)

		cases := fileMap[file]
		for j, failure := range cases {
			caseConnector := childBar + "├── "
			if j == len(cases)-1 {
				caseConnector = childBar + "└── "
			}
			color.Red("%s%s", caseConnector, failure.TestName)
		}
	}
}

// PrintTestList prints a list of test files, optionally with test cases.
func (f *Formatter) PrintTestList(tests []string, showTestCases bool) error {
	color.Green("Found %d test file(s):\n", len(tests))

	for i, test := range tests {
		relPath, err := filepath.Rel(f.config.ProjectPath, test)
		if err != nil {
			relPath = test
		}

		isLastFile := i == len(tests)-1
		fileConnector := "├── "
		childBar := "│   "
		if isLastFile {
			fileConnector = "└── "
			childBar = "    "
		}

		origin := f.classifier.Classify(test)
		color.Cyan("%s%s %s", fileConnector, relPath, originLabel(origin))

		if !showTestCases {
			continue
		}

		testCases, err := f.parser.FindTestCases(test)
		if err != nil {
			color.Red("%s└── (error reading file: %v)", childBar, err)
			continue
		}
		if len(testCases) == 0 {
			fmt.Printf("%s└── %s\n", childBar, color.RedString("(no test cases found)"))
			continue
		}
		for j, testCase := range testCases {
			caseConnector := childBar + "├── "
			if j == len(testCases)-1 {
				caseConnector = childBar + "└── "
			}
			fmt.Printf("%s%s\n", caseConnector, color.YellowString(testCase))
		}
	}

	return nil
}

// CountTestCases returns the total number of test cases across the given test files.
func (f *Formatter) CountTestCases(tests []string) (int, error) {
	var total int
	for _, test := range tests {
		cases, err := f.parser.FindTestCases(test)
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}

// PrintUpdateReport summarizes a regeneration pass.
func (f *Formatter) PrintUpdateReport(report domain.UpdateReport, dryRun bool) {
	verb := "updated"
	if dryRun {
		verb = "would update"
	}

	color.Cyan("Generated test suite %s:", verb)
	printReportSection(color.Green, "written", report.Written)
	printReportSection(color.White, "unchanged", report.Unchanged)
	printReportSection(color.Red, "pruned", report.Pruned)
	printReportSection(color.Yellow, "skipped (not generated by ptu)", report.Skipped)
	printReportSection(color.Yellow, "renamed (custom name collision)", report.Renamed)

	if !report.Changed() {
		color.Green("✓ Generated suite already up to date")
	}
}

func printReportSection(paint func(format string, a ...interface{}), label string, entries []string) {
	if len(entries) == 0 {
		return
	}
	paint("  %s (%d):", label, len(entries))
	for _, entry := range entries {
		paint("    %s", entry)
	}
}

func originLabel(origin domain.Origin) string {
	switch origin {
	case domain.OriginCustom:
		return color.GreenString("[custom]")
	case domain.OriginGenerated:
		return color.WhiteString("[generated]")
	default:
		return ""
	}
}

