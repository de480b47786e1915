package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/StinkyLord/build-info-recorder/internal/bom"
	"github.com/StinkyLord/build-info-recorder/internal/buildinfo"
	"github.com/StinkyLord/build-info-recorder/internal/model"
)

const (
	// TargetDir is the build output directory, relative to the working
	// directory, that receives the BOM document.
	TargetDir = "target"

	// BomSuffix is appended to the artifact id to name the BOM document.
	BomSuffix = "_bdio.json"
)

// BuildInfoPath returns <workDir>/build-info.json.
func BuildInfoPath(workDir string) string {
	return filepath.Join(workDir, buildinfo.FileName)
}

// BomPath returns <workDir>/target/<artifactID>_bdio.json.
func BomPath(workDir, artifactID string) string {
	return filepath.Join(workDir, TargetDir, artifactID+BomSuffix)
}

// EnsureTargetDir creates the target subdirectory of an existing working
// directory. A missing working directory is reported as model.ErrOutputWrite.
func EnsureTargetDir(workDir string) error {
	info, err := os.Stat(workDir)
	if err != nil {
		return fmt.Errorf("working directory %q: %w: %w", workDir, model.ErrOutputWrite, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory %q is not a directory: %w", workDir, model.ErrOutputWrite)
	}
	target := filepath.Join(workDir, TargetDir)
	if err := os.Mkdir(target, 0o755); err != nil && !os.IsExist(err) {
		return fmt.Errorf("create %s directory: %w: %w", TargetDir, model.ErrOutputWrite, err)
	}
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", target, model.ErrOutputWrite)
	}
	return nil
}

// WriteBuildInfo serialises doc to path, replacing any existing file.
func WriteBuildInfo(doc *buildinfo.Document, path string) error {
	if doc == nil {
		return fmt.Errorf("write build info: nil document: %w", model.ErrInvalidArgument)
	}
	return writeJSON(path, doc)
}

// WriteBom serialises doc to path, replacing any existing file.
func WriteBom(doc *bom.Document, path string) error {
	if doc == nil {
		return fmt.Errorf("write bom: nil document: %w", model.ErrInvalidArgument)
	}
	return writeJSON(path, doc)
}
