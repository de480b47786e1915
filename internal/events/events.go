// Package events defines the build notifications consumed by the recorder
// and the sources that produce them.
package events

import (
	"io"

	"github.com/StinkyLord/build-info-recorder/internal/model"
)

// Event is one build notification. It has exactly two cases,
// ProjectResolved and DependencyResolution; consumers switch on the
// concrete type.
type Event interface {
	isEvent()
}

// ProjectResolved reports the coordinate of the build unit being built.
type ProjectResolved struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
	Name       string `json:"name,omitempty"`
	ID         string `json:"id,omitempty"`
}

func (ProjectResolved) isEvent() {}

// Artifact returns the project's own artifact descriptor.
func (p ProjectResolved) Artifact() model.BuildArtifact {
	return model.BuildArtifact{
		Type:     model.MavenType,
		Group:    p.GroupID,
		Artifact: p.ArtifactID,
		Version:  p.Version,
		ID:       p.ID,
	}
}

// DependencyResolution carries the resolver's flat dependency list and the
// root of the resolved tree. Root may be nil when the resolver reported no
// tree.
type DependencyResolution struct {
	Edges []model.DependencyEdge
	Root  model.NativeNode
}

func (DependencyResolution) isEvent() {}

// Source yields events in build order. Next returns io.EOF after the last
// event.
type Source interface {
	Next() (Event, error)
}

// SliceSource replays a fixed list of events.
type SliceSource struct {
	events []Event
	pos    int
}

func NewSliceSource(evs ...Event) *SliceSource {
	return &SliceSource{events: evs}
}

func (s *SliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return nil, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}
