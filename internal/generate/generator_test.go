package generate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ptu/internal/config"
)

func testDescription() *APIDescription {
	return &APIDescription{
		Client:   "petstore",
		Version:  "1.0.0",
		BasePath: "/v2",
		Operations: []Operation{
			{Name: "create_pet", Resource: "pets", Method: "post", Path: "/pets", ExpectedStatus: 201},
			{Name: "get_pet", Resource: "pets", Method: "get", Path: "/pets/{id}", ExpectedStatus: 200},
		},
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return cfg
}

func TestGenerator_Update_LeavesCustomFilesIntact(t *testing.T) {
	cfg := testConfig(t)
	customRoot := cfg.GetCustomRoot()
	if err := os.MkdirAll(customRoot, 0755); err != nil {
		t.Fatalf("failed to create custom dir: %v", err)
	}

	customPath := filepath.Join(customRoot, "test_business_rules.py")
	customContent := []byte("def test_one_plus_one():\n    assert 1 + 1 == 2\n")
	if err := os.WriteFile(customPath, customContent, 0644); err != nil {
		t.Fatalf("failed to write custom test: %v", err)
	}

	gen := newTestGenerator(cfg)
	desc := testDescription()

	// Run the update twice; the custom file must stay byte-identical.
	for i := 0; i < 2; i++ {
		if _, err := gen.Update(desc, false); err != nil {
			t.Fatalf("update %d failed: %v", i, err)
		}

		got, err := os.ReadFile(customPath)
		if err != nil {
			t.Fatalf("custom file missing after update %d: %v", i, err)
		}
		if string(got) != string(customContent) {
			t.Fatalf("custom file modified by update %d:\n%s", i, got)
		}
	}
}

func TestGenerator_Update_SecondRunUnchanged(t *testing.T) {
	cfg := testConfig(t)
	gen := newTestGenerator(cfg)
	desc := testDescription()

	first, err := gen.Update(desc, false)
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	if len(first.Written) != 1 {
		t.Fatalf("expected 1 written file, got %v", first.Written)
	}

	second, err := gen.Update(desc, false)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if len(second.Written) != 0 {
		t.Errorf("expected no writes on identical rerun, got %v", second.Written)
	}
	if len(second.Unchanged) != 1 {
		t.Errorf("expected 1 unchanged file, got %v", second.Unchanged)
	}
	if second.Changed() {
		t.Error("identical rerun must report no change")
	}
}

func TestGenerator_Update_PrunesRemovedResources(t *testing.T) {
	cfg := testConfig(t)
	gen := newTestGenerator(cfg)

	desc := testDescription()
	desc.Operations = append(desc.Operations, Operation{
		Name: "list_orders", Resource: "orders", Method: "get", Path: "/orders", ExpectedStatus: 200,
	})

	if _, err := gen.Update(desc, false); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	ordersFile := filepath.Join(cfg.GetGeneratedRoot(), "test_orders_api.py")
	if _, err := os.Stat(ordersFile); err != nil {
		t.Fatalf("expected orders file to exist: %v", err)
	}

	// Drop the orders resource; its generated file must be pruned.
	desc.Operations = desc.Operations[:2]
	report, err := gen.Update(desc, false)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(report.Pruned) != 1 || report.Pruned[0] != "test_orders_api.py" {
		t.Errorf("expected orders file pruned, got %v", report.Pruned)
	}
	if _, err := os.Stat(ordersFile); !os.IsNotExist(err) {
		t.Error("expected orders file to be removed")
	}
}

func TestGenerator_Update_NeverPrunesHeaderlessFiles(t *testing.T) {
	cfg := testConfig(t)
	generatedRoot := cfg.GetGeneratedRoot()
	if err := os.MkdirAll(generatedRoot, 0755); err != nil {
		t.Fatalf("failed to create generated dir: %v", err)
	}

	// A hand-written file saved in the wrong place.
	strayPath := filepath.Join(generatedRoot, "test_handwritten.py")
	strayContent := []byte("def test_stray():\n    assert True\n")
	if err := os.WriteFile(strayPath, strayContent, 0644); err != nil {
		t.Fatalf("failed to write stray file: %v", err)
	}

	gen := newTestGenerator(cfg)
	report, err := gen.Update(testDescription(), false)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := os.ReadFile(strayPath)
	if err != nil {
		t.Fatalf("stray file was removed: %v", err)
	}
	if string(got) != string(strayContent) {
		t.Fatalf("stray file was modified:\n%s", got)
	}
	found := false
	for _, skipped := range report.Skipped {
		if skipped == "test_handwritten.py" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected stray file in skipped report, got %v", report.Skipped)
	}
}

func TestGenerator_Update_RenamesCollidingCases(t *testing.T) {
	cfg := testConfig(t)
	customRoot := cfg.GetCustomRoot()
	if err := os.MkdirAll(customRoot, 0755); err != nil {
		t.Fatalf("failed to create custom dir: %v", err)
	}
	custom := "def test_create_pet():\n    assert True\n"
	if err := os.WriteFile(filepath.Join(customRoot, "test_mine.py"), []byte(custom), 0644); err != nil {
		t.Fatalf("failed to write custom test: %v", err)
	}

	gen := newTestGenerator(cfg)
	report, err := gen.Update(testDescription(), false)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if len(report.Renamed) != 1 || report.Renamed[0] != "test_create_pet -> test_create_pet_generated" {
		t.Errorf("expected collision rename, got %v", report.Renamed)
	}

	content, err := os.ReadFile(filepath.Join(cfg.GetGeneratedRoot(), "test_pets_api.py"))
	if err != nil {
		t.Fatalf("generated file missing: %v", err)
	}
	if !strings.Contains(string(content), "def test_create_pet_generated(self):") {
		t.Error("expected renamed case in generated file")
	}
	if strings.Contains(string(content), "def test_create_pet(self):") {
		t.Error("colliding case name must not appear in generated file")
	}
}

func TestGenerator_Update_DryRun(t *testing.T) {
	cfg := testConfig(t)
	gen := newTestGenerator(cfg)

	report, err := gen.Update(testDescription(), true)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if len(report.Written) != 1 {
		t.Errorf("dry run should report pending writes, got %v", report.Written)
	}
	if _, err := os.Stat(cfg.GetGeneratedRoot()); !os.IsNotExist(err) {
		t.Error("dry run must not create the generated dir")
	}
}
