package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriterCreatesParentDirectories(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root)

	if err := writer.Write(".github/instructions/a.instructions.md", []byte("one")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, ".github/instructions/a.instructions.md"))
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "one" {
		t.Fatalf("content = %q", data)
	}
}

func TestWriterBacksUpExistingFile(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root)

	if err := writer.Write("CLAUDE.md", []byte("first")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "CLAUDE.md.bak")); !os.IsNotExist(err) {
		t.Fatal("backup should not exist after first write")
	}

	if err := writer.Write("CLAUDE.md", []byte("second")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	backup, err := os.ReadFile(filepath.Join(root, "CLAUDE.md.bak"))
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != "first" {
		t.Fatalf("backup content = %q, want %q", backup, "first")
	}

	current, err := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(current) != "second" {
		t.Fatalf("content = %q, want %q", current, "second")
	}
}

func TestWriterBackupLastRunWins(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root)

	for _, content := range []string{"v1", "v2", "v3"} {
		if err := writer.Write("AGENTS.md", []byte(content)); err != nil {
			t.Fatalf("write %q: %v", content, err)
		}
	}

	backup, err := os.ReadFile(filepath.Join(root, "AGENTS.md.bak"))
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != "v2" {
		t.Fatalf("backup content = %q, want %q", backup, "v2")
	}
}
