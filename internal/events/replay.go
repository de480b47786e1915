package events

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/StinkyLord/build-info-recorder/internal/model"
)

// ---- replay file structures (YAML or JSON) ----
//
//	events:
//	  - projectResolved: {groupId: com.example, artifactId: app, version: "1.0"}
//	  - dependencyResolution:
//	      dependencies:
//	        - {group: org.lib, artifact: core, version: "2.3", extension: jar, scope: compile}
//	      tree:
//	        groupId: com.example
//	        artifactId: app
//	        version: "1.0"
//	        children:
//	          - {groupId: org.lib, artifactId: core, version: "2.3"}

type replayFile struct {
	Events []replayEntry `json:"events"`
}

type replayEntry struct {
	ProjectResolved      *ProjectResolved  `json:"projectResolved,omitempty"`
	DependencyResolution *replayResolution `json:"dependencyResolution,omitempty"`
}

type replayResolution struct {
	Dependencies []model.DependencyEdge `json:"dependencies,omitempty"`
	Tree         *Node                  `json:"tree,omitempty"`
}

// Load decodes a replay file. When a dependencyResolution entry omits its
// flat dependency list, the list is derived from the tree.
func Load(r io.Reader) ([]Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}

	var f replayFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parse replay file: %w", err)
	}

	evs := make([]Event, 0, len(f.Events))
	for i, entry := range f.Events {
		switch {
		case entry.ProjectResolved != nil && entry.DependencyResolution != nil:
			return nil, fmt.Errorf("replay event %d: sets both projectResolved and dependencyResolution", i)
		case entry.ProjectResolved != nil:
			evs = append(evs, *entry.ProjectResolved)
		case entry.DependencyResolution != nil:
			evs = append(evs, entry.DependencyResolution.event())
		default:
			return nil, fmt.Errorf("replay event %d: sets neither projectResolved nor dependencyResolution", i)
		}
	}
	return evs, nil
}

func (r *replayResolution) event() DependencyResolution {
	ev := DependencyResolution{Edges: r.Dependencies}
	if r.Tree != nil {
		ev.Root = r.Tree
		if ev.Edges == nil {
			ev.Edges = r.Tree.Edges()
		}
	}
	return ev
}
