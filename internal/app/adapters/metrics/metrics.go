package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesIngested counts parsed chat messages by transport.
	MessagesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "overlay_messages_ingested_total",
			Help: "Total number of chat messages ingested per source",
		},
		[]string{"source"},
	)

	// MessagesThrottled counts messages that lost the last-message slot
	// to a newer one inside the publish window.
	MessagesThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "overlay_messages_throttled_total",
			Help: "Total number of messages displaced from the last-message slot by the throttle",
		},
	)

	// NotificationsShown counts reward redemption notifications.
	NotificationsShown = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "overlay_notifications_total",
			Help: "Total number of reward notifications shown",
		},
	)

	// Reconnects counts connection losses per transport.
	Reconnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "overlay_reconnects_total",
			Help: "Total number of reconnect attempts per transport",
		},
		[]string{"transport"},
	)

	// ConnectionUp reports the current connection state per transport.
	ConnectionUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "overlay_connection_up",
			Help: "Whether the transport connection is currently up (1) or down (0)",
		},
		[]string{"transport"},
	)

	// EmotesLoaded reports the size of each emote namespace.
	EmotesLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "overlay_emotes_loaded",
			Help: "Number of emotes loaded per namespace",
		},
		[]string{"namespace"},
	)

	// BadgeSetsLoaded reports the number of known badge sets.
	BadgeSetsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "overlay_badge_sets_loaded",
			Help: "Number of badge sets in the catalog",
		},
	)

	// MessageProcessingTime tracks how long parsing and publishing one
	// message takes.
	MessageProcessingTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "overlay_message_processing_milliseconds",
			Help:    "Time to parse and publish a single message",
			Buckets: prometheus.ExponentialBuckets(0.00005, 1.5, 25),
		},
	)
)
