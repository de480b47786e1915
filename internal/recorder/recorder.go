// Package recorder accumulates build events and emits the build-info and BOM
// documents once the build completes.
package recorder

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/StinkyLord/build-info-recorder/internal/bom"
	"github.com/StinkyLord/build-info-recorder/internal/buildinfo"
	"github.com/StinkyLord/build-info-recorder/internal/config"
	"github.com/StinkyLord/build-info-recorder/internal/events"
	"github.com/StinkyLord/build-info-recorder/internal/metrics"
	"github.com/StinkyLord/build-info-recorder/internal/model"
	"github.com/StinkyLord/build-info-recorder/internal/output"
)

// Recorder keeps the latest project and dependency observations of a build.
//
// The build tool delivers events sequentially, so a Recorder is not safe for
// concurrent use and needs no locking.
type Recorder struct {
	cfg     config.Config
	log     *zap.Logger
	metrics *metrics.Metrics

	artifact    *model.BuildArtifact
	projectName string
	edges       []model.DependencyEdge
	tree        model.NativeNode

	closed bool
}

// Paths are the files written by Close.
type Paths struct {
	BuildInfo string
	Bom       string
}

// New creates a Recorder. A nil logger or metrics set is replaced by a no-op
// logger or a fresh private set.
func New(cfg config.Config, log *zap.Logger, m *metrics.Metrics) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Recorder{cfg: cfg, log: log, metrics: m}
}

// Handle dispatches one build event.
func (r *Recorder) Handle(ev events.Event) error {
	switch e := ev.(type) {
	case events.ProjectResolved:
		r.RecordProjectResolved(e.Artifact(), e.Name)
	case events.DependencyResolution:
		r.RecordDependenciesResolved(e.Edges, e.Root)
	default:
		return fmt.Errorf("handle event %T: %w", ev, model.ErrInvalidArgument)
	}
	return nil
}

// Replay drains src through Handle.
func (r *Recorder) Replay(src events.Source) error {
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read event: %w", err)
		}
		if err := r.Handle(ev); err != nil {
			return err
		}
	}
}

// RecordProjectResolved stores the project's own artifact. The last
// observation wins; replacing a different project is logged because earlier
// modules of a multi-module build are dropped.
func (r *Recorder) RecordProjectResolved(artifact model.BuildArtifact, projectName string) {
	r.metrics.ObserveEvent(metrics.KindProjectResolved)
	r.log.Debug("project resolved",
		zap.Stringer("coordinate", artifact.Coordinate()),
		zap.String("name", projectName))

	if r.artifact != nil && r.artifact.Coordinate() != artifact.Coordinate() {
		r.log.Warn("replacing previously resolved project",
			zap.Stringer("previous", r.artifact.Coordinate()),
			zap.Stringer("current", artifact.Coordinate()))
	}
	r.artifact = &artifact
	r.projectName = projectName
}

// RecordDependenciesResolved stores the flat dependency list and the resolved
// tree root. The last observation wins. tree may be nil.
func (r *Recorder) RecordDependenciesResolved(edges []model.DependencyEdge, tree model.NativeNode) {
	r.metrics.ObserveEvent(metrics.KindDependencyResolution)
	r.log.Debug("dependencies resolved",
		zap.Int("edges", len(edges)),
		zap.Bool("tree", tree != nil))

	r.edges = edges
	r.tree = tree
}

// Build assembles both documents from the latest observations. It fails with
// model.ErrMissingArtifact when no project was ever resolved.
func (r *Recorder) Build() (*buildinfo.Document, *bom.Document, error) {
	deps := model.Aggregate(r.edges)

	info, err := buildinfo.Assemble(r.artifact, deps, r.cfg.BuildID)
	if err != nil {
		return nil, nil, err
	}

	root, err := r.projectTree(deps)
	if err != nil {
		return nil, nil, err
	}
	doc, err := bom.ToBom(root, r.projectName)
	if err != nil {
		return nil, nil, err
	}

	r.metrics.ObserveBuild(len(deps), len(doc.Nodes))
	return info, doc, nil
}

// projectTree returns the canonical tree rooted at the project's coordinate.
//
// Without a resolved tree the aggregated dependencies become direct children
// of the project. A tree with an empty root coordinate has its children
// adopted by the project; a tree rooted elsewhere is grafted below it.
func (r *Recorder) projectTree(deps []model.BuildDependency) (*model.GraphNode, error) {
	project := r.artifact.Coordinate()

	if r.tree == nil {
		root := &model.GraphNode{Coordinate: project}
		for _, d := range deps {
			root.Children = append(root.Children, &model.GraphNode{Coordinate: d.Coordinate})
		}
		return root, nil
	}

	tree, err := model.Normalize(r.tree)
	if err != nil {
		return nil, err
	}
	switch tree.Coordinate {
	case project:
		return tree, nil
	case model.Coordinate{}:
		return &model.GraphNode{Coordinate: project, Children: tree.Children}, nil
	default:
		r.log.Warn("dependency tree is not rooted at the project; grafting it below the project",
			zap.Stringer("project", project),
			zap.Stringer("treeRoot", tree.Coordinate))
		return &model.GraphNode{Coordinate: project, Children: []*model.GraphNode{tree}}, nil
	}
}

// Close builds and writes both documents under the working directory. It
// emits at most once: later calls return the zero Paths and no error.
// Failures are returned to the caller, which should fail the build.
func (r *Recorder) Close() (Paths, error) {
	if r.closed {
		return Paths{}, nil
	}
	r.closed = true

	info, doc, err := r.Build()
	if err != nil {
		return Paths{}, fmt.Errorf("build documents: %w", err)
	}

	paths := Paths{
		BuildInfo: output.BuildInfoPath(r.cfg.WorkingDirectory),
		Bom:       output.BomPath(r.cfg.WorkingDirectory, info.Artifact.Artifact),
	}

	// Both destinations must exist before either document is written.
	if err := output.EnsureTargetDir(r.cfg.WorkingDirectory); err != nil {
		return Paths{}, err
	}

	r.log.Info("writing build info", zap.String("path", paths.BuildInfo))
	if err := output.WriteBuildInfo(info, paths.BuildInfo); err != nil {
		return Paths{}, err
	}
	r.metrics.ObserveWrite(metrics.DocumentBuildInfo)

	r.log.Info("writing bom", zap.String("path", paths.Bom))
	if err := output.WriteBom(doc, paths.Bom); err != nil {
		return Paths{}, err
	}
	r.metrics.ObserveWrite(metrics.DocumentBom)

	return paths, nil
}
