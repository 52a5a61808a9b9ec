package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "moth_bridge"

// Verdicts for CandidatesChecked
const (
	VerdictOwned    = "owned"
	VerdictNotOwned = "not_owned"
	VerdictFailed   = "failed"
)

// Outcomes shared by the counters below
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

var (
	// ScansTotal counts resolver runs by where the result came from and how they ended
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ownership",
		Name:      "scans_total",
		Help:      "Total number of ownership scans",
	}, []string{"source", "outcome"})

	// ScanDuration measures end-to-end resolver latency
	ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ownership",
		Name:      "scan_duration_seconds",
		Help:      "Duration of ownership scans",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"source"})

	// BlocksScanned records how much of the log window a scan consumed before stopping
	BlocksScanned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ownership",
		Name:      "blocks_scanned",
		Help:      "Blocks covered by log scans",
		Buckets:   prometheus.ExponentialBuckets(5000, 2, 8),
	})

	// CandidatesChecked counts ownerOf verifications by verdict
	CandidatesChecked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ownership",
		Name:      "candidates_checked_total",
		Help:      "Candidates verified against ownerOf",
	}, []string{"verdict"})

	// PreviewsTotal counts metadata preview loads
	PreviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "metadata",
		Name:      "previews_total",
		Help:      "Metadata preview loads by outcome",
	}, []string{"outcome"})

	// RPCProxyRequests counts forwarded JSON-RPC requests
	RPCProxyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpcproxy",
		Name:      "requests_total",
		Help:      "Forwarded RPC requests by chain and upstream status",
	}, []string{"chain", "status"})

	// SnapshotsPublished counts ownership snapshot publications
	SnapshotsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "messaging",
		Name:      "snapshots_published_total",
		Help:      "Ownership snapshots published by outcome",
	}, []string{"outcome"})
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
