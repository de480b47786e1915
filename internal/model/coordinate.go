// Package model defines the canonical data structures recorded from a build.
package model

// MavenType is the ecosystem tag stamped on artifacts reported by Maven.
const MavenType = "org.apache.maven"

// Coordinate is the group/artifact/version identity of a component.
// It is a comparable value and can be used directly as a map key.
type Coordinate struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
}

// String returns the coordinate as group:artifact:version.
func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// BuildArtifact describes the project's own publishable output.
type BuildArtifact struct {
	Type     string `json:"type"`
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
	ID       string `json:"id,omitempty"` // build tool id, e.g. "g:a:jar:1.0"
}

// Coordinate returns the GAV of the artifact.
func (a BuildArtifact) Coordinate() Coordinate {
	return Coordinate{Group: a.Group, Artifact: a.Artifact, Version: a.Version}
}

// DependencyEdge is one resolved dependency occurrence as reported by the
// resolver. Several edges may differ only in Scope.
type DependencyEdge struct {
	Coordinate
	Classifier string `json:"classifier,omitempty"`
	Extension  string `json:"extension"`
	Scope      string `json:"scope"`
}

// Key returns the aggregation key of the edge.
func (e DependencyEdge) Key() DependencyKey {
	return DependencyKey{
		Group:      e.Group,
		Artifact:   e.Artifact,
		Version:    e.Version,
		Classifier: e.Classifier,
		Extension:  e.Extension,
	}
}

// DependencyKey uniquely identifies a BuildDependency.
type DependencyKey struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	Extension  string
}

// BuildDependency is an aggregated dependency record: every edge sharing the
// same DependencyKey contributes its scope to Scopes.
type BuildDependency struct {
	Coordinate
	Classifier string   `json:"classifier"`
	Extension  string   `json:"extension"`
	Scopes     []string `json:"scopes"`
}

// Key returns the deduplication key of the record.
func (d BuildDependency) Key() DependencyKey {
	return DependencyKey{
		Group:      d.Group,
		Artifact:   d.Artifact,
		Version:    d.Version,
		Classifier: d.Classifier,
		Extension:  d.Extension,
	}
}
