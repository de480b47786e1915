// Package metrics holds the recorder's prometheus collectors.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Event kinds and document names used as label values.
const (
	KindProjectResolved      = "project_resolved"
	KindDependencyResolution = "dependency_resolution"

	DocumentBuildInfo = "build_info"
	DocumentBom       = "bom"
)

// Metrics is a set of collectors registered on a private registry, so every
// recorder run reports only its own observations.
type Metrics struct {
	Registry *prometheus.Registry

	eventsTotal           *prometheus.CounterVec
	dependencies          prometheus.Gauge
	bomNodes              prometheus.Gauge
	documentsWrittenTotal *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "build_info_recorder_events_total",
				Help: "Number of build events handled by kind.",
			},
			[]string{"kind"},
		),
		dependencies: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "build_info_recorder_dependencies",
				Help: "Number of aggregated dependency records in the last built document.",
			},
		),
		bomNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "build_info_recorder_bom_nodes",
				Help: "Number of nodes in the last built BOM document.",
			},
		),
		documentsWrittenTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "build_info_recorder_documents_written_total",
				Help: "Number of documents written by document.",
			},
			[]string{"document"},
		),
	}
	m.Registry.MustRegister(m.eventsTotal, m.dependencies, m.bomNodes, m.documentsWrittenTotal)
	return m
}

func (m *Metrics) ObserveEvent(kind string) {
	m.eventsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveBuild(dependencies, bomNodes int) {
	m.dependencies.Set(float64(dependencies))
	m.bomNodes.Set(float64(bomNodes))
}

func (m *Metrics) ObserveWrite(document string) {
	m.documentsWrittenTotal.WithLabelValues(document).Inc()
}

// WriteTextfile exports the registry in the text exposition format, e.g. for
// the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
