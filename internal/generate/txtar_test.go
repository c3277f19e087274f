package generate

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"ptu/internal/config"
	"ptu/internal/discovery"
)

var writeTxtarGolden = flag.Bool("write-txtar-golden", false, "If true, writes out golden files in txtar archives")

// Each txtar archive holds an api-description.json followed by the expected
// generated files, named as they appear inside the generated root.
func TestTxtarGenerate(t *testing.T) {
	txtarFiles, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("failed to find txtar files in testdata: %v", err)
	}
	if len(txtarFiles) == 0 {
		t.Skip("no txtar files found")
	}

	for _, txtarFile := range txtarFiles {
		t.Run(filepath.Base(txtarFile), func(t *testing.T) {
			runTxtarTest(t, txtarFile)
		})
	}
}

func runTxtarTest(t *testing.T, txtarFile string) {
	archive, err := txtar.ParseFile(txtarFile)
	if err != nil {
		t.Fatalf("failed to parse txtar file: %v", err)
	}
	if len(archive.Files) == 0 || archive.Files[0].Name != "api-description.json" {
		t.Fatalf("archive must start with api-description.json")
	}

	projectDir := t.TempDir()
	descPath := filepath.Join(projectDir, "api-description.json")
	if err := os.WriteFile(descPath, archive.Files[0].Data, 0644); err != nil {
		t.Fatalf("failed to write description: %v", err)
	}

	cfg := config.New()
	cfg.ProjectPath = projectDir

	desc, err := LoadDescription(descPath)
	if err != nil {
		t.Fatalf("failed to load description: %v", err)
	}

	gen := newTestGenerator(cfg)
	report, err := gen.Update(desc, false)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(report.Written) != len(archive.Files)-1 {
		t.Errorf("expected %d written files, got %d", len(archive.Files)-1, len(report.Written))
	}

	updated := false
	for i, want := range archive.Files[1:] {
		got, err := os.ReadFile(filepath.Join(cfg.GetGeneratedRoot(), want.Name))
		if err != nil {
			t.Errorf("expected generated file %s: %v", want.Name, err)
			continue
		}
		if *writeTxtarGolden {
			archive.Files[i+1].Data = got
			updated = true
			continue
		}
		if diff := cmp.Diff(string(want.Data), string(got)); diff != "" {
			t.Errorf("generated %s mismatch (-want +got):\n%s", want.Name, diff)
		}
	}

	if updated {
		if err := os.WriteFile(txtarFile, txtar.Format(archive), 0644); err != nil {
			t.Fatalf("failed to update golden archive: %v", err)
		}
	}
}

func newTestGenerator(cfg *config.Config) *Generator {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	parser := discovery.NewParser()
	classifier := discovery.NewClassifier(cfg.GetCustomRoot(), cfg.GetGeneratedRoot())
	return NewGenerator(cfg, scanner, parser, classifier)
}
