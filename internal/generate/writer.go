package generate

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ptu/internal/discovery"
)

// Sentinel errors for writes the updater refuses to perform.
var (
	// ErrCustomPath is returned when a write would land under the custom
	// test directory. Custom tests are read-only to the updater.
	ErrCustomPath = errors.New("refusing to write under the custom test directory")
	// ErrOutsideGeneratedRoot is returned when a target escapes the
	// generated test directory.
	ErrOutsideGeneratedRoot = errors.New("target path escapes the generated test directory")
)

// WriteState describes what happened to one target file
type WriteState int

const (
	// StateWritten means the file was created or its content replaced
	StateWritten WriteState = iota
	// StateUnchanged means the rendered content already matched disk
	StateUnchanged
	// StateSkipped means an existing file without the generated header
	// occupied the target and was left alone
	StateSkipped
)

// Writer performs all filesystem writes for the updater and enforces the
// preservation rule: nothing outside the generated root is ever written,
// and existing files without the generated header are never replaced.
type Writer struct {
	classifier    *discovery.Classifier
	generatedRoot string
	dryRun        bool
}

// NewWriter creates a Writer rooted at generatedRoot.
func NewWriter(classifier *discovery.Classifier, generatedRoot string, dryRun bool) *Writer {
	return &Writer{
		classifier:    classifier,
		generatedRoot: filepath.Clean(generatedRoot),
		dryRun:        dryRun,
	}
}

// Write places content at name (relative to the generated root) and returns
// what happened. Content must start with the generated header.
func (w *Writer) Write(name string, content []byte) (WriteState, error) {
	target := filepath.Join(w.generatedRoot, name)

	if w.classifier.InCustomRoot(target) {
		return StateSkipped, fmt.Errorf("%w: %s", ErrCustomPath, target)
	}
	if !w.classifier.InGeneratedRoot(target) {
		return StateSkipped, fmt.Errorf("%w: %s", ErrOutsideGeneratedRoot, target)
	}
	if !bytes.HasPrefix(content, []byte(discovery.GeneratedHeader)) {
		return StateSkipped, fmt.Errorf("content for %s lacks the generated header", name)
	}

	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		if !discovery.HasGeneratedHeader(target) {
			// Hand-written content occupying a generated path: leave it.
			return StateSkipped, nil
		}
		if bytes.Equal(existing, content) {
			return StateUnchanged, nil
		}
	case !os.IsNotExist(err):
		return StateSkipped, fmt.Errorf("stat %s: %w", target, err)
	}

	if w.dryRun {
		return StateWritten, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return StateSkipped, fmt.Errorf("create generated dir: %w", err)
	}
	if err := os.WriteFile(target, content, 0644); err != nil {
		return StateSkipped, fmt.Errorf("write %s: %w", target, err)
	}
	return StateWritten, nil
}

// Prune removes generated files whose names are not in keep. Files without
// the generated header are never removed; their paths are returned as skipped.
func (w *Writer) Prune(keep map[string]bool) (pruned, skipped []string, err error) {
	entries, err := os.ReadDir(w.generatedRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read generated dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !discovery.IsTestFile(entry.Name()) {
			continue
		}
		if keep[entry.Name()] {
			continue
		}

		path := filepath.Join(w.generatedRoot, entry.Name())
		if !discovery.HasGeneratedHeader(path) {
			skipped = append(skipped, path)
			continue
		}
		if !w.dryRun {
			if err := os.Remove(path); err != nil {
				return pruned, skipped, fmt.Errorf("prune %s: %w", path, err)
			}
		}
		pruned = append(pruned, path)
	}

	return pruned, skipped, nil
}

// relName returns name relative to the generated root for reporting.
func (w *Writer) relName(path string) string {
	if rel, err := filepath.Rel(w.generatedRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
