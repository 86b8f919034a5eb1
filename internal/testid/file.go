package testid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadSource reads a source file. Failures wrap ErrInputNotReadable.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInputNotReadable, path, err)
	}
	return string(data), nil
}

// WriteOutput writes content to path through a temporary file in the same
// directory that is renamed into place, creating parent directories as
// needed. The temporary file is closed and removed on every failure path.
// Failures wrap ErrOutputNotWritable.
func WriteOutput(path, content string) (err error) {
	dir := filepath.Dir(path)
	if mkErr := os.MkdirAll(dir, 0750); mkErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputNotWritable, path, mkErr)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputNotWritable, path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()        //nolint:errcheck // best effort cleanup
			_ = os.Remove(tmpName) //nolint:errcheck // best effort cleanup
		}
	}()

	if _, err = tmp.WriteString(content); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputNotWritable, path, err)
	}
	if err = tmp.Chmod(0600); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputNotWritable, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputNotWritable, path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputNotWritable, path, err)
	}
	return nil
}

// OutputPath returns the sibling path "<stem><suffix><ext>" for src. When
// outDir is set the file is placed there instead, keeping the path of src
// relative to root.
func OutputPath(src, root, outDir, suffix string) string {
	ext := filepath.Ext(src)
	name := strings.TrimSuffix(filepath.Base(src), ext) + suffix + ext

	if outDir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}

	relDir := "."
	if root != "" {
		if rel, err := filepath.Rel(root, filepath.Dir(src)); err == nil && !strings.HasPrefix(rel, "..") {
			relDir = rel
		}
	}
	return filepath.Join(outDir, relDir, name)
}

// IsGenerated reports whether path looks like an output produced with suffix.
func IsGenerated(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	ext := filepath.Ext(path)
	return strings.HasSuffix(strings.TrimSuffix(filepath.Base(path), ext), suffix)
}
