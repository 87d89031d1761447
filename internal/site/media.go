package site

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyDir mirrors the regular files under src into dst and returns how many
// files were copied. Existing files in dst are overwritten.
func CopyDir(src, dst string) (int, error) {
	count := 0

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if err := copyFile(path, target); err != nil {
			return err
		}

		count++

		return nil
	})
	if err != nil {
		return count, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	return count, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()

		return err
	}

	return out.Close()
}
