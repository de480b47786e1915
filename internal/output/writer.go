// Package output serialises the build-info and BOM documents to disk.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/StinkyLord/build-info-recorder/internal/model"
)

// writeJSON streams v as indented JSON into a temporary file next to path and
// renames it over path once the stream is complete. On any failure the handle
// is closed and the temporary removed, so path is either fully replaced or
// left untouched.
func writeJSON(path string, v any) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w: %w", path, model.ErrOutputWrite, err)
	}
	tmpPath := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmpPath)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err = enc.Encode(v); err != nil {
		return fmt.Errorf("write %s: %w: encode: %w", path, model.ErrOutputWrite, err)
	}

	closed = true
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, model.ErrOutputWrite, err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, model.ErrOutputWrite, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, model.ErrOutputWrite, err)
	}
	return nil
}
