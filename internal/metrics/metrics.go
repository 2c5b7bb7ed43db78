// Package metrics holds Prometheus instruments for the extraction engine.
// All collectors are registered with the global registry, so importing this
// package in main.go is enough to expose them when the optional listener is
// enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MicrositesResolvedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "microsites_resolved_total",
			Help: "Cumulative number of club microsites fully resolved.",
		})

	ResolveErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "microsite_resolve_errors_total",
			Help: "Cumulative number of microsite resolutions that failed.",
		})

	PagesFusedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "microsite_pages_fused_total",
			Help: "Cumulative number of pages whose body fragments were fused.",
		})

	MediaPathsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "microsite_media_paths_total",
			Help: "Cumulative number of media paths extracted from page bodies.",
		})
)

func init() {
	prometheus.MustRegister(
		MicrositesResolvedTotal,
		ResolveErrorsTotal,
		PagesFusedTotal,
		MediaPathsTotal,
	)
}
