package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes data to relativePath under baseDir and returns the absolute path.
//
// The function ensures:
//   - The output path stays under baseDir (no path traversal)
//   - Parent directories are created if needed; existing ones are fine
//   - An existing file at the path is replaced
func WriteFile(baseDir, relativePath string, data []byte) (string, error) {
	if baseDir == "" {
		return "", errors.New("output directory is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path must be relative to %s: %s", baseDir, relativePath)
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}
	fullPath := filepath.Join(absBase, cleanRel)
	rel, err := filepath.Rel(absBase, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path escapes %s: %s", baseDir, relativePath)
	}

	if err = os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	// #nosec G306 -- generated documentation is meant to be readable
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return fullPath, nil
}
