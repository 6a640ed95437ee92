package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	ConnectedPeers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skillswap_signaling_connected_peers",
		Help: "Number of live websocket connections",
	})
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skillswap_signaling_active_rooms",
		Help: "Number of session rooms with at least one participant",
	})
)

// Counters
var (
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_signaling_events_total",
		Help: "Client events processed by type",
	}, []string{"event"})
	DroppedMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_signaling_dropped_messages_total",
		Help: "Outbound messages dropped because a send buffer was full",
	})
	PeerJoinedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_signaling_peer_joined_total",
		Help: "Times a room reached two participants and an initiator was designated",
	})
)
