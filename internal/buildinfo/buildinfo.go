// Package buildinfo assembles the flat build-info document.
package buildinfo

import (
	"fmt"

	"github.com/StinkyLord/build-info-recorder/internal/model"
)

// FileName is the name of the build-info document inside the working
// directory.
const FileName = "build-info.json"

// Document is the project's own artifact plus its aggregated dependencies.
type Document struct {
	Artifact     model.BuildArtifact     `json:"artifact"`
	BuildID      string                  `json:"buildId,omitempty"`
	Dependencies []model.BuildDependency `json:"dependencies"`
}

// Assemble composes a build-info document. It fails with
// model.ErrMissingArtifact when artifact is nil, i.e. the project's own
// coordinate was never observed.
func Assemble(artifact *model.BuildArtifact, deps []model.BuildDependency, buildID string) (*Document, error) {
	if artifact == nil {
		return nil, fmt.Errorf("assemble build info: %w", model.ErrMissingArtifact)
	}
	if deps == nil {
		deps = []model.BuildDependency{}
	}
	return &Document{
		Artifact:     *artifact,
		BuildID:      buildID,
		Dependencies: deps,
	}, nil
}
