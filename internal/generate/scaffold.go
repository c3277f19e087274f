package generate

import (
	"fmt"
	"os"
	"path/filepath"
)

// exampleCustomTest is the starter file dropped into the custom directory.
// It mirrors the shape of a generated file without the header, so nothing
// ever rewrites it.
const exampleCustomTest = `# coding: utf-8
"""Example custom test file.

Tests in this directory are never deleted or overwritten when the
generated suite is updated. Add business logic, edge case and
integration tests here.
"""

import unittest


class TestCustomExample(unittest.TestCase):

    def test_custom_logic_example(self):
        self.assertTrue(True, "This is a custom test that persists across updates")

    def test_edge_case_example(self):
        result = 2 + 2
        self.assertEqual(result, 4, "Math still works")


if __name__ == "__main__":
    unittest.main()
`

// ExampleCustomTestName is the file name Scaffold creates.
const ExampleCustomTestName = "test_example_custom.py"

// Scaffold creates the example custom test under customRoot. It is
// create-only: an existing file with that name is never touched. Returns the
// file path and whether it was created by this call.
func Scaffold(customRoot string) (string, bool, error) {
	path := filepath.Join(customRoot, ExampleCustomTestName)

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return path, false, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(customRoot, 0755); err != nil {
		return path, false, fmt.Errorf("create custom dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(exampleCustomTest), 0644); err != nil {
		return path, false, fmt.Errorf("write %s: %w", path, err)
	}
	return path, true, nil
}
