// Package metrics holds the application-wide Prometheus collectors shared by
// the storage backends and workers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// TxCommits counts committed storage transactions, labelled by backend.
	TxCommits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_storage_tx_commits_total",
		Help: "Number of committed storage transactions.",
	}, []string{"backend"})

	// TxRollbacks counts rolled-back storage transactions, labelled by backend.
	TxRollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_storage_tx_rollbacks_total",
		Help: "Number of rolled back storage transactions.",
	}, []string{"backend"})

	// WriteMode counts mutating repository calls by how they ran: "joined" when
	// the call attached to an ambient session, "standalone" when it opened a
	// private call-scoped transaction.
	WriteMode = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_storage_writes_total",
		Help: "Number of mutating repository calls by transaction mode.",
	}, []string{"backend", "mode"})
)

// Transaction mode label values for WriteMode.
const (
	ModeJoined     = "joined"
	ModeStandalone = "standalone"
)
