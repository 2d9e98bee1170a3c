// Package metrics defines and registers all custom Prometheus metrics for the
// character API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto; /metrics exposes them together with the echo request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mapledash"

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts HTTP calls made to the Nexon Open API.
// Labels:
//   - endpoint: upstream path (e.g. "/character/basic")
//   - code: HTTP status code, or "error" when no response was received
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream API calls, by endpoint and status code.",
	},
	[]string{"endpoint", "code"},
)

// UpstreamRequestDuration measures a single upstream attempt, retries excluded.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of a single upstream API attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// UpstreamRetriesTotal counts retried upstream attempts.
var UpstreamRetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_retries_total",
		Help:      "Total number of upstream attempts that were retried.",
	},
	[]string{"endpoint"},
)

// ── Aggregation metrics ───────────────────────────────────────────────────────

// ModuleOutcomesTotal counts settled module fetches.
// Labels:
//   - section, module: the module path
//   - outcome: "ok", "not_applicable" or "failed"
var ModuleOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "module_outcomes_total",
		Help:      "Total number of settled module fetches, by outcome.",
	},
	[]string{"section", "module", "outcome"},
)

// SectionFailuresTotal counts whole-section rejections.
var SectionFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "section_failures_total",
		Help:      "Total number of sections that failed as a whole.",
	},
	[]string{"section"},
)

// AssemblyDuration measures composite assembly from identity resolution to the
// final join.
var AssemblyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "composite_assembly_duration_seconds",
		Help:      "Duration of composite response assembly.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts response cache decisions.
// Label:
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of response cache lookups, labelled by result.",
	},
	[]string{"result"},
)
