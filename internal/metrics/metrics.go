package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mela_collection_refresh_total",
			Help: "Collection re-fetches performed by the reconciliation loop",
		},
		[]string{"collection"},
	)

	FetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mela_collection_fetch_failures_total",
			Help: "Collection re-fetches that failed and kept the previous snapshot",
		},
		[]string{"collection"},
	)

	SupersededFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mela_collection_superseded_fetches_total",
			Help: "Fetch results discarded because a newer fetch already published",
		},
		[]string{"collection"},
	)

	ViewsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mela_views_published_total",
			Help: "Dashboard views published to consumers",
		},
	)

	WriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mela_command_write_failures_total",
			Help: "Dashboard write commands rejected by the remote store",
		},
		[]string{"command"},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mela_websocket_clients",
			Help: "Connected live-view websocket clients",
		},
	)
)
