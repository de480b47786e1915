package events

import "github.com/StinkyLord/build-info-recorder/internal/model"

// Node is a resolver-produced dependency tree node as it appears in replay
// files and `mvn dependency:tree` output. It implements model.NativeNode.
type Node struct {
	GroupID    string  `json:"groupId"`
	ArtifactID string  `json:"artifactId"`
	Version    string  `json:"version"`
	Classifier string  `json:"classifier,omitempty"`
	Extension  string  `json:"extension,omitempty"`
	Scope      string  `json:"scope,omitempty"`
	Deps       []*Node `json:"children,omitempty"`
}

func (n *Node) Coordinate() model.Coordinate {
	return model.Coordinate{Group: n.GroupID, Artifact: n.ArtifactID, Version: n.Version}
}

// Children returns the non-nil children in order.
func (n *Node) Children() []model.NativeNode {
	out := make([]model.NativeNode, 0, len(n.Deps))
	for _, d := range n.Deps {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// Edge returns the node as a flat dependency edge.
func (n *Node) Edge() model.DependencyEdge {
	return model.DependencyEdge{
		Coordinate: n.Coordinate(),
		Classifier: n.Classifier,
		Extension:  n.Extension,
		Scope:      n.Scope,
	}
}

// Edges flattens every node below n, depth-first, into dependency edges.
// n itself is the project and is not included.
func (n *Node) Edges() []model.DependencyEdge {
	var edges []model.DependencyEdge
	stack := make([]*Node, 0, len(n.Deps))
	for i := len(n.Deps) - 1; i >= 0; i-- {
		stack = append(stack, n.Deps[i])
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		edges = append(edges, cur.Edge())
		for i := len(cur.Deps) - 1; i >= 0; i-- {
			stack = append(stack, cur.Deps[i])
		}
	}
	return edges
}
