// Package bom converts a canonical dependency tree into a BDIO-style bill of
// materials document.
package bom

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/StinkyLord/build-info-recorder/internal/model"
)

const (
	// SpecVersion is the BDIO revision the document follows.
	SpecVersion = "1.1.0"

	TypeBillOfMaterials = "BillOfMaterials"
	TypeProject         = "Project"
	TypeComponent       = "Component"

	// ExternalSystemMaven is the externalSystemTypeId of Maven coordinates.
	ExternalSystemMaven = "maven"

	// DynamicLink is the only relationship type emitted: a parent links its
	// resolved children at build time.
	DynamicLink = "DYNAMIC_LINK"
)

// ---- BDIO JSON schema types ----

type Document struct {
	ID            string         `json:"@id"`
	Type          string         `json:"@type"`
	SpecVersion   string         `json:"specVersion"`
	Name          string         `json:"name"`
	Root          string         `json:"root"`
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`
}

type Node struct {
	ID                 string             `json:"@id"`
	Type               string             `json:"@type"`
	Name               string             `json:"name"`
	Revision           string             `json:"revision"`
	ExternalIdentifier ExternalIdentifier `json:"externalIdentifier"`
}

type ExternalIdentifier struct {
	ExternalSystemTypeID string `json:"externalSystemTypeId"`
	ExternalID           string `json:"externalId"`
}

// Relationship links one parent node to its children by identifier.
type Relationship struct {
	Parent           string   `json:"parent"`
	Children         []string `json:"children"`
	RelationshipType string   `json:"relationshipType"`
}

// NodeID returns the stable identifier of a coordinate,
// e.g. "mvn:org.lib/core/2.3".
func NodeID(c model.Coordinate) string {
	return "mvn:" + c.Group + "/" + c.Artifact + "/" + c.Version
}

// DocumentID derives the document identifier from the root node identifier
// with a name-based UUID, so unchanged input yields an unchanged identifier.
func DocumentID(rootID string) string {
	return "uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(rootID)).String()
}

// ToBom walks the tree rooted at the project's own coordinate and returns its
// BOM document. Nodes are listed once per distinct identifier in depth-first
// order of first appearance; every node with children contributes one
// relationship record.
func ToBom(root *model.GraphNode, projectName string) (*Document, error) {
	if root == nil {
		return nil, fmt.Errorf("convert to bom: nil root: %w", model.ErrInvalidArgument)
	}

	rootID := NodeID(root.Coordinate)
	if projectName == "" {
		projectName = root.Coordinate.Artifact
	}

	doc := &Document{
		ID:            DocumentID(rootID),
		Type:          TypeBillOfMaterials,
		SpecVersion:   SpecVersion,
		Name:          projectName,
		Root:          rootID,
		Nodes:         []Node{},
		Relationships: []Relationship{},
	}

	seenNodes := map[string]bool{}
	relIndex := map[string]int{}
	relChildren := map[string]map[string]bool{}

	root.Walk(func(n *model.GraphNode, depth int) bool {
		id := NodeID(n.Coordinate)
		if !seenNodes[id] {
			seenNodes[id] = true
			node := newNode(id, n.Coordinate)
			if depth == 0 {
				node.Type = TypeProject
				node.Name = projectName
			}
			doc.Nodes = append(doc.Nodes, node)
		}

		if len(n.Children) == 0 {
			return true
		}
		idx, ok := relIndex[id]
		if !ok {
			idx = len(doc.Relationships)
			relIndex[id] = idx
			relChildren[id] = map[string]bool{}
			doc.Relationships = append(doc.Relationships, Relationship{
				Parent:           id,
				Children:         []string{},
				RelationshipType: DynamicLink,
			})
		}
		for _, c := range n.Children {
			cid := NodeID(c.Coordinate)
			if relChildren[id][cid] {
				continue
			}
			relChildren[id][cid] = true
			doc.Relationships[idx].Children = append(doc.Relationships[idx].Children, cid)
		}
		return true
	})

	return doc, nil
}

func newNode(id string, c model.Coordinate) Node {
	return Node{
		ID:       id,
		Type:     TypeComponent,
		Name:     c.Artifact,
		Revision: c.Version,
		ExternalIdentifier: ExternalIdentifier{
			ExternalSystemTypeID: ExternalSystemMaven,
			ExternalID:           c.String(),
		},
	}
}
