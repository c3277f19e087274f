package parser

import (
	"fmt"
	"regexp"
	"strings"

	"ptu/internal/domain"
)

// PytestParser parses pytest output
type PytestParser struct{}

// NewPytestParser creates a new PytestParser
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

var (
	// ========= 3 passed, 1 failed, 2 errors in 0.12s =========
	passedPattern  = regexp.MustCompile(`(\d+) passed`)
	failedPattern  = regexp.MustCompile(`(\d+) failed`)
	errorPattern   = regexp.MustCompile(`(\d+) error`)
	summaryPattern = regexp.MustCompile(`(?m)^=+ .* in [\d.]+s.* =+$`)

	// FAILED tests/custom/test_users.py::TestUsers::test_create - AssertionError: ...
	failedLinePattern = regexp.MustCompile(`(?m)^(?:FAILED|ERROR)\s+(\S+?\.py)::(\S+?)(?:\s+-\s+(.*))?$`)

	// tests/custom/test_users.py:14: in test_create
	locationPattern = regexp.MustCompile(`^(\S+?\.py):(\d+)`)

	blockHeaderPattern = regexp.MustCompile(`^_{5,}\s+(.+?)\s+_{5,}$`)
)

// ParseTestCounts extracts passed and failed test case counts from pytest output.
// Returns (passed, failed). If parsing fails, returns (1,0) for success or (0,1) for failure (file-level fallback).
func (p *PytestParser) ParseTestCounts(result domain.TestResult) (passed, failed int) {
	summary := summaryPattern.FindString(result.Output)
	if summary != "" {
		passed = extractCount(passedPattern, summary)
		failed = extractCount(failedPattern, summary) + extractCount(errorPattern, summary)
		if passed > 0 || failed > 0 {
			return passed, failed
		}
	}

	// Fallback: one "test" per file
	if result.Success {
		return 1, 0
	}
	return 0, 1
}

func extractCount(pattern *regexp.Regexp, line string) int {
	match := pattern.FindStringSubmatch(line)
	if len(match) < 2 {
		return 0
	}
	var n int
	fmt.Sscanf(match[1], "%d", &n)
	return n
}

// ParseFailure extracts failed test cases from pytest output. Case names and
// messages come from the short test summary; file/line locations and
// tracebacks come from the FAILURES section.
func (p *PytestParser) ParseFailure(result domain.TestResult) []domain.TestFailure {
	var failures []domain.TestFailure

	blocks := p.parseFailureBlocks(result.Output)

	for _, match := range failedLinePattern.FindAllStringSubmatch(result.Output, -1) {
		failure := domain.TestFailure{
			FilePath:   match[1],
			TestName:   caseName(match[2]),
			Origin:     result.Origin,
			StackTrace: []string{},
		}
		if len(match) > 3 {
			failure.Message = strings.TrimSpace(match[3])
		}

		if block, ok := blocks[failure.TestName]; ok {
			failure.StackTrace = block.lines
			failure.File = block.file
			failure.Line = block.line
			if failure.Message == "" {
				failure.Message = block.message
			}
		}

		failures = append(failures, failure)
	}

	return failures
}

type failureBlock struct {
	lines   []string
	file    string
	line    int
	message string
}

// parseFailureBlocks splits the FAILURES section into per-case traceback
// blocks, keyed by the case name from the block header.
func (p *PytestParser) parseFailureBlocks(output string) map[string]failureBlock {
	blocks := make(map[string]failureBlock)

	lines := strings.Split(output, "\n")
	inFailures := false
	var current string
	var block failureBlock

	flush := func() {
		if current != "" {
			blocks[caseName(current)] = block
		}
		current = ""
		block = failureBlock{}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "=") && strings.Contains(trimmed, "FAILURES") {
			inFailures = true
			continue
		}
		if !inFailures {
			continue
		}
		// Any other ==== banner ends the FAILURES section.
		if strings.HasPrefix(trimmed, "=") && strings.HasSuffix(trimmed, "=") {
			flush()
			break
		}

		if match := blockHeaderPattern.FindStringSubmatch(trimmed); match != nil {
			flush()
			current = match[1]
			continue
		}
		if current == "" {
			continue
		}

		if trimmed != "" {
			block.lines = append(block.lines, line)
		}
		if match := locationPattern.FindStringSubmatch(trimmed); match != nil && block.file == "" {
			block.file = match[1]
			fmt.Sscanf(match[2], "%d", &block.line)
		}
		if strings.HasPrefix(trimmed, "E ") && block.message == "" {
			block.message = strings.TrimSpace(strings.TrimPrefix(trimmed, "E "))
		}
	}
	flush()

	return blocks
}

// caseName reduces a pytest node id or block header to the bare case name:
// "TestUsers.test_create" and "TestUsers::test_create" both become "test_create".
func caseName(id string) string {
	id = strings.ReplaceAll(id, "::", ".")
	if i := strings.LastIndex(id, "."); i >= 0 {
		id = id[i+1:]
	}
	// Strip parametrization: test_create[case-1] -> test_create[case-1] kept,
	// the bracket suffix identifies the failing variant.
	return strings.TrimSpace(id)
}
