package generate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ptu/internal/discovery"
)

func testWriter(t *testing.T) (*Writer, string, string) {
	t.Helper()
	tmpDir := t.TempDir()
	customRoot := filepath.Join(tmpDir, "tests", "custom")
	generatedRoot := filepath.Join(tmpDir, "tests", "generated")
	classifier := discovery.NewClassifier(customRoot, generatedRoot)
	return NewWriter(classifier, generatedRoot, false), customRoot, generatedRoot
}

func generatedContent(body string) []byte {
	return []byte(discovery.GeneratedHeader + "\n" + body)
}

func TestWriter_Write(t *testing.T) {
	w, _, generatedRoot := testWriter(t)

	t.Run("creates new file", func(t *testing.T) {
		state, err := w.Write("test_a.py", generatedContent("def test_a(): pass\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state != StateWritten {
			t.Errorf("expected StateWritten, got %v", state)
		}
		if _, err := os.Stat(filepath.Join(generatedRoot, "test_a.py")); err != nil {
			t.Errorf("expected file on disk: %v", err)
		}
	})

	t.Run("identical content is unchanged", func(t *testing.T) {
		state, err := w.Write("test_a.py", generatedContent("def test_a(): pass\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state != StateUnchanged {
			t.Errorf("expected StateUnchanged, got %v", state)
		}
	})

	t.Run("rewrites changed generated file", func(t *testing.T) {
		state, err := w.Write("test_a.py", generatedContent("def test_a2(): pass\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state != StateWritten {
			t.Errorf("expected StateWritten, got %v", state)
		}
	})

	t.Run("never replaces headerless file", func(t *testing.T) {
		path := filepath.Join(generatedRoot, "test_mine.py")
		original := []byte("def test_mine(): pass\n")
		if err := os.WriteFile(path, original, 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		state, err := w.Write("test_mine.py", generatedContent("def test_mine(): pass\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state != StateSkipped {
			t.Errorf("expected StateSkipped, got %v", state)
		}
		got, _ := os.ReadFile(path)
		if string(got) != string(original) {
			t.Error("headerless file was modified")
		}
	})

	t.Run("rejects escape from generated root", func(t *testing.T) {
		_, err := w.Write(filepath.Join("..", "test_escape.py"), generatedContent(""))
		if !errors.Is(err, ErrOutsideGeneratedRoot) {
			t.Errorf("expected ErrOutsideGeneratedRoot, got %v", err)
		}
	})

	t.Run("rejects path into custom root", func(t *testing.T) {
		_, err := w.Write(filepath.Join("..", "custom", "test_intrusion.py"), generatedContent(""))
		if !errors.Is(err, ErrCustomPath) {
			t.Errorf("expected ErrCustomPath, got %v", err)
		}
	})

	t.Run("rejects content without header", func(t *testing.T) {
		_, err := w.Write("test_bare.py", []byte("def test_bare(): pass\n"))
		if err == nil {
			t.Error("expected error for headerless content")
		}
	})
}

func TestWriter_Prune(t *testing.T) {
	w, _, generatedRoot := testWriter(t)
	if err := os.MkdirAll(generatedRoot, 0755); err != nil {
		t.Fatalf("failed to create generated dir: %v", err)
	}

	os.WriteFile(filepath.Join(generatedRoot, "test_keep.py"), generatedContent("pass\n"), 0644)
	os.WriteFile(filepath.Join(generatedRoot, "test_stale.py"), generatedContent("pass\n"), 0644)
	os.WriteFile(filepath.Join(generatedRoot, "test_headerless.py"), []byte("pass\n"), 0644)
	os.WriteFile(filepath.Join(generatedRoot, "conftest.py"), []byte("pass\n"), 0644)

	pruned, skipped, err := w.Prune(map[string]bool{"test_keep.py": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pruned) != 1 || filepath.Base(pruned[0]) != "test_stale.py" {
		t.Errorf("expected only test_stale.py pruned, got %v", pruned)
	}
	if len(skipped) != 1 || filepath.Base(skipped[0]) != "test_headerless.py" {
		t.Errorf("expected test_headerless.py skipped, got %v", skipped)
	}

	for _, name := range []string{"test_keep.py", "test_headerless.py", "conftest.py"} {
		if _, err := os.Stat(filepath.Join(generatedRoot, name)); err != nil {
			t.Errorf("expected %s to survive prune: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(generatedRoot, "test_stale.py")); !os.IsNotExist(err) {
		t.Error("expected test_stale.py to be removed")
	}
}

func TestWriter_Prune_MissingDir(t *testing.T) {
	w, _, _ := testWriter(t)
	pruned, skipped, err := w.Prune(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pruned) != 0 || len(skipped) != 0 {
		t.Error("expected empty result for missing dir")
	}
}
