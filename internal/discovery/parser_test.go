package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParser_FindTestCases(t *testing.T) {
	tmpDir := t.TempDir()
	parser := NewParser()

	content := `# coding: utf-8
import unittest


class TestCustomExample(unittest.TestCase):

    def test_custom_logic_example(self):
        self.assertTrue(True)

    def test_edge_case_example(self):
        result = 2 + 2
        self.assertEqual(result, 4)

    def helper(self):
        pass


def test_module_level():
    assert True


async def test_async_case():
    assert True
`

	path := filepath.Join(tmpDir, "test_example_custom.py")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cases, err := parser.FindTestCases(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"test_async_case",
		"test_custom_logic_example",
		"test_edge_case_example",
		"test_module_level",
	}
	if len(cases) != len(expected) {
		t.Fatalf("expected %d cases, got %d: %v", len(expected), len(cases), cases)
	}
	for i, name := range expected {
		if cases[i] != name {
			t.Errorf("case %d: expected %s, got %s", i, name, cases[i])
		}
	}
}

func TestParser_FindTestClasses(t *testing.T) {
	tmpDir := t.TempDir()
	parser := NewParser()

	content := `class TestUsers(unittest.TestCase):
    pass

class TestOrders:
    pass

class Helper:
    pass
`

	path := filepath.Join(tmpDir, "test_api.py")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	classes, err := parser.FindTestClasses(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(classes) != 2 {
		t.Fatalf("expected 2 classes, got %d: %v", len(classes), classes)
	}
	if classes[0] != "TestOrders" || classes[1] != "TestUsers" {
		t.Errorf("unexpected classes: %v", classes)
	}
}

func TestParser_FindTestCasesInDir(t *testing.T) {
	tmpDir := t.TempDir()
	parser := NewParser()
	scanner := NewScanner(nil)

	sub := filepath.Join(tmpDir, "custom")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	os.WriteFile(filepath.Join(sub, "test_a.py"), []byte("def test_one(): pass\n"), 0644)
	os.WriteFile(filepath.Join(sub, "test_b.py"), []byte("def test_two(): pass\ndef test_one(): pass\n"), 0644)

	names, err := parser.FindTestCasesInDir(scanner, sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || !names["test_one"] || !names["test_two"] {
		t.Errorf("unexpected names: %v", names)
	}

	t.Run("missing dir yields empty set", func(t *testing.T) {
		names, err := parser.FindTestCasesInDir(scanner, filepath.Join(tmpDir, "missing"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("expected empty set, got %v", names)
		}
	})
}

func TestParser_FindTestCases_MissingFile(t *testing.T) {
	parser := NewParser()
	if _, err := parser.FindTestCases("/non/existent/test_x.py"); err == nil {
		t.Error("expected error for missing file")
	}
}
