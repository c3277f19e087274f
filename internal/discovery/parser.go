package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Parser parses test files to extract test cases
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

var (
	// Matches both plain pytest functions and unittest methods:
	// - def test_create_user(self):
	// - def test_roundtrip():
	// - async def test_stream():
	testFuncPattern = regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+(test_\w+)\s*\(`)

	// unittest-style grouping classes: class TestUsers(unittest.TestCase):
	testClassPattern = regexp.MustCompile(`(?m)^class\s+(Test\w+)\s*[(:]`)
)

// FindTestCases finds all test case names in a test file
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	fileContent := string(content)
	testCasesMap := make(map[string]bool) // Use map to avoid duplicates

	for _, match := range testFuncPattern.FindAllStringSubmatch(fileContent, -1) {
		if len(match) > 1 {
			testCasesMap[match[1]] = true
		}
	}

	// Convert map to sorted slice for consistent output
	var testCases []string
	for testCase := range testCasesMap {
		testCases = append(testCases, testCase)
	}
	sort.Strings(testCases)

	return testCases, nil
}

// FindTestClasses returns the unittest-style test classes declared in a file.
func (p *Parser) FindTestClasses(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	seen := make(map[string]bool)
	for _, match := range testClassPattern.FindAllStringSubmatch(string(content), -1) {
		if len(match) > 1 {
			seen[match[1]] = true
		}
	}

	var classes []string
	for name := range seen {
		classes = append(classes, name)
	}
	sort.Strings(classes)

	return classes, nil
}

// FindTestCasesInDir collects case names across every test file under root.
// Used by the generator to avoid clashing with custom case names.
func (p *Parser) FindTestCasesInDir(scanner *Scanner, root string) (map[string]bool, error) {
	names := make(map[string]bool)

	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return names, nil
		}
		return nil, err
	}

	files, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		cases, err := p.FindTestCases(file)
		if err != nil {
			return nil, err
		}
		for _, c := range cases {
			names[strings.TrimSpace(c)] = true
		}
	}

	return names, nil
}
