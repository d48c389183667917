// Package atomicfile writes files by staging them next to the destination
// and renaming into place, so readers never observe a half-written catalog
// or export page.
package atomicfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return WriteWith(path, perm, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return err
	})
}

// WriteWith streams the file contents through fill and commits them to path
// only if fill succeeds. A perm of 0 keeps the mode of an existing file, or
// uses 0644.
func WriteWith(path string, perm os.FileMode, fill func(w io.Writer) error) error {
	return Commit(path, perm, func(tmpPath string, f *os.File) error {
		if err := fill(f); err != nil {
			return err
		}
		return f.Sync()
	})
}

// Commit creates a staging file in the destination directory, hands it to
// stage, and renames it over path on success. stage may close f itself (for
// example to let another library reopen tmpPath); Commit tolerates that.
func Commit(path string, perm os.FileMode, stage func(tmpPath string, f *os.File) error) error {
	if perm == 0 {
		perm = 0o644
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	_ = tmp.Chmod(perm)

	if err := stage(tmpPath, tmp); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Windows refuses to rename over an existing file.
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}
