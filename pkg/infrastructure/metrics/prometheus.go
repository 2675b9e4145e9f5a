// Package metrics provides Prometheus metrics for the BOM engine
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpansionsTotal counts assembly expansions by resolution outcome
	ExpansionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bom_expansions_total",
			Help: "Total number of catalog expansions performed",
		},
		[]string{"outcome"}, // assembly, part, fallback, placeholder
	)

	// PlaceholdersTotal counts lines degraded to placeholders
	PlaceholdersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bom_placeholders_total",
			Help: "Total number of BOM lines degraded to placeholders",
		},
	)

	// FallbackHitsTotal counts resolutions served by the fallback provider
	FallbackHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bom_fallback_hits_total",
			Help: "Total number of identifiers resolved by the fallback provider",
		},
		[]string{"source"}, // generic_mapping, static_assembly
	)

	// ExpansionDepth observes the recursion depth reached per expansion
	ExpansionDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bom_expansion_depth",
			Help:    "Recursion depth reached while expanding assemblies",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 20, 50, 100},
		},
	)

	// GenerationsTotal counts Generate calls by result
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bom_generations_total",
			Help: "Total number of BOM generation calls",
		},
		[]string{"status"}, // ok, error
	)
)
