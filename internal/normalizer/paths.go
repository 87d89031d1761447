package normalizer

import (
	"path/filepath"
)

// RelPrefix returns the relative path from pageDir to rootDir with a trailing
// slash, or "" when the page already lives in rootDir.
func RelPrefix(pageDir, rootDir string) string {
	rel, err := filepath.Rel(filepath.Clean(pageDir), filepath.Clean(rootDir))
	if err != nil {
		// One side is absolute and the other relative.
		rel, err = filepath.Rel(absPath(pageDir), absPath(rootDir))
	}

	if err != nil || rel == "." {
		return ""
	}

	return filepath.ToSlash(rel) + "/"
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}

	return filepath.Clean(p)
}
