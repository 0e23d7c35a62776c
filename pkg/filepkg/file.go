// Package filepkg provides helpers for whole-file persistence.
package filepkg

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// Perm is the mode used for data files.
const Perm = 0o644

// WriteFile replaces the file at path with data.
//
// The data is written to a temporary file in the same directory and then
// renamed over path, so readers see either the old or the new content.
func WriteFile(fs afero.Fs, path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := afero.TempFile(fs, dir, "."+base+"-*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return err
	}

	if err := fs.Chmod(tmpName, Perm); err != nil {
		_ = fs.Remove(tmpName)
		return err
	}

	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return err
	}

	return nil
}
