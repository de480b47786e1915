package model

import (
	"sort"

	"github.com/StinkyLord/build-info-recorder/internal/version"
)

// Aggregate merges resolved dependency edges into unique BuildDependency
// records. Edges sharing a DependencyKey are collapsed into one record whose
// Scopes is the union of the edges' scopes.
//
// No validation is performed: empty coordinate fields and empty scopes are
// carried through unchanged. The result is in canonical order (see
// SortDependencies), so any permutation of edges yields an equal result.
func Aggregate(edges []DependencyEdge) []BuildDependency {
	type entry struct {
		dep    BuildDependency
		scopes map[string]bool
	}
	byKey := make(map[DependencyKey]*entry, len(edges))

	for _, e := range edges {
		k := e.Key()
		en, ok := byKey[k]
		if !ok {
			en = &entry{
				dep: BuildDependency{
					Coordinate: e.Coordinate,
					Classifier: e.Classifier,
					Extension:  e.Extension,
				},
				scopes: map[string]bool{},
			}
			byKey[k] = en
		}
		en.scopes[e.Scope] = true
	}

	result := make([]BuildDependency, 0, len(byKey))
	for _, en := range byKey {
		scopes := make([]string, 0, len(en.scopes))
		for s := range en.scopes {
			scopes = append(scopes, s)
		}
		sort.Strings(scopes)
		en.dep.Scopes = scopes
		result = append(result, en.dep)
	}

	SortDependencies(result)
	return result
}

// SortDependencies orders records by group, artifact, version, classifier and
// extension. Versions use version.Compare.
func SortDependencies(deps []BuildDependency) {
	sort.Slice(deps, func(i, j int) bool {
		a, b := deps[i], deps[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Artifact != b.Artifact {
			return a.Artifact < b.Artifact
		}
		if c := version.Compare(a.Version, b.Version); c != 0 {
			return c < 0
		}
		if a.Classifier != b.Classifier {
			return a.Classifier < b.Classifier
		}
		return a.Extension < b.Extension
	})
}
