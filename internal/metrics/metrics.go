// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobconnect",
		Name:      "store_fallback_total",
		Help:      "Operations served by the local store because the remote store failed.",
	}, []string{"operation"})

	postSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobconnect",
		Name:      "post_sync_total",
		Help:      "Local-only posts pushed to the remote store, by result.",
	}, []string{"result"})

	remoteEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobconnect",
		Name:      "remote_events_total",
		Help:      "Change events received from the remote post store.",
	}, []string{"type"})
)

func StoreFallback(operation string) {
	storeFallbacks.WithLabelValues(operation).Inc()
}

func PostSync(result string) {
	postSyncs.WithLabelValues(result).Inc()
}

func RemoteEvent(changeType string) {
	remoteEvents.WithLabelValues(changeType).Inc()
}
