package events

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StinkyLord/build-info-recorder/internal/model"
)

func TestSliceSource(t *testing.T) {
	src := NewSliceSource(ProjectResolved{ArtifactID: "app"}, DependencyResolution{})

	ev, err := src.Next()
	require.NoError(t, err)
	assert.IsType(t, ProjectResolved{}, ev)

	ev, err = src.Next()
	require.NoError(t, err)
	assert.IsType(t, DependencyResolution{}, ev)

	_, err = src.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestProjectResolvedArtifact(t *testing.T) {
	p := ProjectResolved{GroupID: "com.example", ArtifactID: "app", Version: "1.0", ID: "com.example:app:jar:1.0"}
	assert.Equal(t, model.BuildArtifact{
		Type: model.MavenType, Group: "com.example", Artifact: "app", Version: "1.0", ID: "com.example:app:jar:1.0",
	}, p.Artifact())
}

const replayYAML = `
events:
  - projectResolved: {groupId: com.example, artifactId: app, version: "1.0", name: My App}
  - dependencyResolution:
      dependencies:
        - {group: org.lib, artifact: core, version: "2.3", extension: jar, scope: compile}
        - {group: org.lib, artifact: core, version: "2.3", extension: jar, scope: test}
      tree:
        groupId: com.example
        artifactId: app
        version: "1.0"
        children:
          - {groupId: org.lib, artifactId: core, version: "2.3"}
`

func TestLoadYAML(t *testing.T) {
	evs, err := Load(strings.NewReader(replayYAML))
	require.NoError(t, err)
	require.Len(t, evs, 2)

	p, ok := evs[0].(ProjectResolved)
	require.True(t, ok)
	assert.Equal(t, "My App", p.Name)

	d, ok := evs[1].(DependencyResolution)
	require.True(t, ok)
	require.Len(t, d.Edges, 2)
	assert.Equal(t, "test", d.Edges[1].Scope)
	require.NotNil(t, d.Root)
	assert.Equal(t, "app", d.Root.Coordinate().Artifact)
	assert.Len(t, d.Root.Children(), 1)
}

func TestLoadJSONDerivesEdgesFromTree(t *testing.T) {
	const doc = `{"events": [{"dependencyResolution": {"tree": {
		"groupId": "g", "artifactId": "app", "version": "1",
		"children": [{"groupId": "g", "artifactId": "a", "version": "1", "extension": "jar", "scope": "compile",
			"children": [{"groupId": "g", "artifactId": "b", "version": "2", "extension": "jar", "scope": "runtime"}]}]
	}}}]}`

	evs, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, evs, 1)
	d := evs[0].(DependencyResolution)
	require.Len(t, d.Edges, 2)
	assert.Equal(t, "a", d.Edges[0].Artifact)
	assert.Equal(t, "b", d.Edges[1].Artifact)
	assert.Equal(t, "runtime", d.Edges[1].Scope)
}

func TestLoadRejectsAmbiguousEntries(t *testing.T) {
	_, err := Load(strings.NewReader(`events: [{}]`))
	assert.ErrorContains(t, err, "neither")

	_, err = Load(strings.NewReader(`events: [{projectResolved: {artifactId: a}, dependencyResolution: {}}]`))
	assert.ErrorContains(t, err, "both")
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader(`events: [{projectResolved: {artifact: a}}]`))
	assert.Error(t, err)
}

const treeOutput = `[INFO] Scanning for projects...
[INFO]
[INFO] --- maven-dependency-plugin:3.6.0:tree (default-cli) @ app ---
[INFO] com.example:app:jar:1.0
[INFO] +- org.lib:core:jar:2.3:compile
[INFO] |  +- org.lib:util:jar:1.1:compile
[INFO] |  \- org.lib:natives:jar:linux-x86_64:1.1:runtime
[INFO] \- junit:junit:jar:4.12:test (optional)
[INFO] ------------------------------------------------------------------------
[INFO] BUILD SUCCESS
`

func TestParseDependencyTree(t *testing.T) {
	evs, err := ParseDependencyTree(strings.NewReader(treeOutput))
	require.NoError(t, err)
	require.Len(t, evs, 2)

	p := evs[0].(ProjectResolved)
	assert.Equal(t, ProjectResolved{GroupID: "com.example", ArtifactID: "app", Version: "1.0", Name: "app"}, p)

	d := evs[1].(DependencyResolution)
	var got []string
	for _, e := range d.Edges {
		got = append(got, e.Artifact+"@"+e.Scope)
	}
	assert.Equal(t, []string{"core@compile", "util@compile", "natives@runtime", "junit@test"}, got)
	assert.Equal(t, "linux-x86_64", d.Edges[2].Classifier)

	root, err := model.Normalize(d.Root)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "core", root.Children[0].Coordinate.Artifact)
	require.Len(t, root.Children[0].Children, 2)
	assert.Equal(t, "natives", root.Children[0].Children[1].Coordinate.Artifact)
	assert.Equal(t, "junit", root.Children[1].Coordinate.Artifact)
}

func TestParseDependencyTreeMultiModule(t *testing.T) {
	const out = `com.example:parent:pom:1.0

com.example:child:jar:1.0
+- org.lib:core:jar:2.3:compile
`
	evs, err := ParseDependencyTree(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, evs, 4)
	assert.Equal(t, "parent", evs[0].(ProjectResolved).ArtifactID)
	assert.Empty(t, evs[1].(DependencyResolution).Edges)
	assert.Equal(t, "child", evs[2].(ProjectResolved).ArtifactID)
	assert.Len(t, evs[3].(DependencyResolution).Edges, 1)
}

func TestParseDependencyTreeVerboseOmitted(t *testing.T) {
	const out = `com.example:app:jar:1.0
+- org.lib:core:jar:2.3:compile
|  \- (org.lib:util:jar:1.1:compile - omitted for duplicate)
\- org.lib:util:jar:1.1:compile
`
	evs, err := ParseDependencyTree(strings.NewReader(out))
	require.NoError(t, err)
	d := evs[1].(DependencyResolution)
	require.Len(t, d.Edges, 3)
	assert.Equal(t, "org.lib", d.Edges[1].Group)
}

func TestParseDependencyTreeSkipsConflictAndCycleLosers(t *testing.T) {
	const out = `com.example:app:jar:1.0
+- org.lib:core:jar:2.3:compile
|  +- (org.lib:util:jar:1.0:compile - omitted for conflict with 2.0)
|  \- (com.example:app:jar:1.0:compile - omitted for cycle)
\- org.lib:util:jar:2.0:compile
`
	evs, err := ParseDependencyTree(strings.NewReader(out))
	require.NoError(t, err)
	d := evs[1].(DependencyResolution)

	var got []string
	for _, e := range d.Edges {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"org.lib:core:2.3", "org.lib:util:2.0"}, got)

	root, err := model.Normalize(d.Root)
	require.NoError(t, err)
	assert.Equal(t, 3, root.Count())
	assert.Empty(t, root.Children[0].Children)

	deps := model.Aggregate(d.Edges)
	require.Len(t, deps, 2)
	assert.Equal(t, "2.0", deps[1].Version)
}

func TestParseDependencyTreeErrors(t *testing.T) {
	cases := []struct {
		name, input, want string
	}{
		{"no project", "+- org.lib:core:jar:2.3:compile\n", "line 1: dependency before project line"},
		{"bad indent", "g:a:jar:1\n|  +- org.lib:core:jar:2.3:compile\n", "line 2: unexpected indentation"},
		{"bad coordinate", "g:a:jar:1\n+- org.lib:core:2.3\n", "line 2: malformed dependency coordinate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDependencyTree(strings.NewReader(tc.input))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}
