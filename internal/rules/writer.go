package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

// backupSuffix names the sibling copy taken before a destination file is
// overwritten. The backup is unconditional and unversioned: the last run wins.
const backupSuffix = ".bak"

// Writer persists destination files under a root directory, backing up any
// existing file before it is replaced.
type Writer struct {
	root string
}

var _ interfaces.FileWriter = (*Writer)(nil)

// NewWriter creates a Writer rooted at the supplied directory. An empty root
// writes relative to the working directory.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Write stores data at path, creating parent directories as needed. When the
// destination already exists its current content is copied to a ".bak"
// sibling first.
func (w *Writer) Write(path string, data []byte) error {
	full := path
	if w.root != "" {
		full = filepath.Join(w.root, path)
	}

	existing, err := os.ReadFile(full)
	switch {
	case err == nil:
		if err := os.WriteFile(full+backupSuffix, existing, 0o644); err != nil {
			return fmt.Errorf("rules writer: backup %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// First write, nothing to back up.
	default:
		return fmt.Errorf("rules writer: inspect %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("rules writer: prepare %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("rules writer: write %s: %w", path, err)
	}
	return nil
}

// discardWriter satisfies interfaces.FileWriter for dry runs.
type discardWriter struct{}

func (discardWriter) Write(string, []byte) error { return nil }
