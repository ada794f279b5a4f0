// Package fsutil has the filesystem helpers used when writing build
// output.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateFile creates the named file, creating any missing parent
// directories first.
func CreateFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file %s: %w", path, err)
	}
	return f, nil
}

// WriteFile writes content to filename inside buildDir, creating the file
// and its directories as needed.
func WriteFile(buildDir, filename string, content []byte) error {
	f, err := CreateFile(filepath.Join(buildDir, filename))
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return f.Close()
}
