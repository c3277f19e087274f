package discovery

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"ptu/internal/domain"
)

// GeneratedHeader is the first line of every file the updater owns.
// A file without it is never overwritten or pruned, wherever it lives.
const GeneratedHeader = "# Code generated by ptu. DO NOT EDIT."

// Classifier decides who owns a test file: the updater or a human.
type Classifier struct {
	customRoot    string
	generatedRoot string
}

// NewClassifier creates a Classifier for the given custom and generated roots.
func NewClassifier(customRoot, generatedRoot string) *Classifier {
	return &Classifier{
		customRoot:    filepath.Clean(customRoot),
		generatedRoot: filepath.Clean(generatedRoot),
	}
}

// Classify returns the origin of a path. Anything under the custom root is
// custom. A file under the generated root is generated only if it carries the
// header; without it the file is treated as custom content in the wrong place.
func (c *Classifier) Classify(path string) domain.Origin {
	if c.under(path, c.customRoot) {
		return domain.OriginCustom
	}
	if c.under(path, c.generatedRoot) {
		if HasGeneratedHeader(path) {
			return domain.OriginGenerated
		}
		return domain.OriginCustom
	}
	return domain.OriginUnknown
}

// InCustomRoot reports whether a path resides under the custom root,
// independent of file content.
func (c *Classifier) InCustomRoot(path string) bool {
	return c.under(path, c.customRoot)
}

// InGeneratedRoot reports whether a path resides under the generated root.
func (c *Classifier) InGeneratedRoot(path string) bool {
	return c.under(path, c.generatedRoot)
}

func (c *Classifier) under(path, root string) bool {
	p := filepath.Clean(path)
	if filepath.IsAbs(root) && !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// HasGeneratedHeader reports whether the file starts with the generated
// header, tolerating a leading encoding comment line.
func HasGeneratedHeader(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < 2 && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == GeneratedHeader {
			return true
		}
		if !strings.HasPrefix(line, "# coding:") {
			return false
		}
	}
	return false
}
