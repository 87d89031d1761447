package site

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ritdining/pkg/metadata"
)

// Writer persists rendered pages under the output root.
type Writer struct {
	root string
	sign bool
	now  func() time.Time
}

// NewWriter creates a writer rooted at root. With sign set every page gets a
// metadata block.
func NewWriter(root string, sign bool) *Writer {
	return &Writer{root: root, sign: sign, now: time.Now}
}

// Write stores content at rel (slash separated, relative to the root) and
// returns the file path.
func (w *Writer) Write(rel, content string, validated bool) (string, error) {
	path := filepath.Join(w.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	if w.sign {
		content = metadata.Sign(content, rel, validated, w.now())
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}

	return path, nil
}
