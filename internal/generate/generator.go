package generate

import (
	"fmt"

	"ptu/internal/config"
	"ptu/internal/discovery"
	"ptu/internal/domain"
)

// Generator regenerates the generated test suite from an API description.
// It only ever writes below the generated root; the custom root is read to
// avoid test case name collisions and is never modified.
type Generator struct {
	config     *config.Config
	scanner    *discovery.Scanner
	parser     *discovery.Parser
	classifier *discovery.Classifier
}

// NewGenerator creates a new Generator
func NewGenerator(cfg *config.Config, scanner *discovery.Scanner, parser *discovery.Parser, classifier *discovery.Classifier) *Generator {
	return &Generator{
		config:     cfg,
		scanner:    scanner,
		parser:     parser,
		classifier: classifier,
	}
}

// Update renders the generated suite and reconciles it with disk. With
// dryRun set, nothing is written or removed; the report shows what a real
// pass would do.
func (g *Generator) Update(desc *APIDescription, dryRun bool) (domain.UpdateReport, error) {
	var report domain.UpdateReport

	customCases, err := g.parser.FindTestCasesInDir(g.scanner, g.config.GetCustomRoot())
	if err != nil {
		return report, fmt.Errorf("scan custom tests: %w", err)
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return report, fmt.Errorf("parse templates: %w", err)
	}

	writer := NewWriter(g.classifier, g.config.GetGeneratedRoot(), dryRun)
	keep := make(map[string]bool)

	for _, group := range desc.ByResource() {
		caseNames := make(map[string]string, len(group.Operations))
		for _, op := range group.Operations {
			name := "test_" + op.Name
			if customCases[name] {
				renamed := name + "_generated"
				report.Renamed = append(report.Renamed, fmt.Sprintf("%s -> %s", name, renamed))
				name = renamed
			}
			caseNames[op.Name] = name
		}

		content, err := renderGroup(tmpl, desc, group, caseNames)
		if err != nil {
			return report, err
		}

		fileName := group.FileName()
		keep[fileName] = true

		state, err := writer.Write(fileName, content)
		if err != nil {
			return report, err
		}
		switch state {
		case StateWritten:
			report.Written = append(report.Written, fileName)
		case StateUnchanged:
			report.Unchanged = append(report.Unchanged, fileName)
		case StateSkipped:
			report.Skipped = append(report.Skipped, fileName)
		}
	}

	pruned, skipped, err := writer.Prune(keep)
	if err != nil {
		return report, err
	}
	for _, path := range pruned {
		report.Pruned = append(report.Pruned, writer.relName(path))
	}
	for _, path := range skipped {
		report.Skipped = append(report.Skipped, writer.relName(path))
	}

	return report, nil
}
