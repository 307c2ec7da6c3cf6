package conn

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts connection traffic. One Metrics may be shared by many
// connections; a nil *Metrics records nothing.
type Metrics struct {
	packetsSent      *prometheus.CounterVec
	packetsReceived  *prometheus.CounterVec
	bytesSent        *prometheus.CounterVec
	bytesReceived    *prometheus.CounterVec
	compressedFrames *prometheus.CounterVec
	errors           *prometheus.CounterVec
	open             prometheus.Gauge
}

// NewMetrics registers the connection metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	const namespace, subsystem = "froglight", "conn"

	return &Metrics{
		packetsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packets_sent_total",
			Help:      "Packets written, by protocol state.",
		}, []string{"state"}),
		packetsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "packets_received_total",
			Help:      "Packets read, by protocol state.",
		}, []string{"state"}),
		bytesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bytes_sent_total",
			Help:      "Frame bytes written, by protocol state.",
		}, []string{"state"}),
		bytesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bytes_received_total",
			Help:      "Frame bytes read, by protocol state.",
		}, []string{"state"}),
		compressedFrames: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "compressed_frames_total",
			Help:      "Frames carrying a zlib payload, by direction.",
		}, []string{"direction"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Errors that broke a connection, by operation.",
		}, []string{"op"}),
		open: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "open",
			Help:      "Connections currently open.",
		}),
	}
}

func (m *Metrics) sent(state string, bytes int, compressed bool) {
	if m == nil {
		return
	}
	m.packetsSent.WithLabelValues(state).Inc()
	m.bytesSent.WithLabelValues(state).Add(float64(bytes))
	if compressed {
		m.compressedFrames.WithLabelValues("send").Inc()
	}
}

func (m *Metrics) received(state string, bytes int, compressed bool) {
	if m == nil {
		return
	}
	m.packetsReceived.WithLabelValues(state).Inc()
	m.bytesReceived.WithLabelValues(state).Add(float64(bytes))
	if compressed {
		m.compressedFrames.WithLabelValues("recv").Inc()
	}
}

func (m *Metrics) failed(op string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(op).Inc()
}

func (m *Metrics) opened() {
	if m != nil {
		m.open.Inc()
	}
}

func (m *Metrics) closed() {
	if m != nil {
		m.open.Dec()
	}
}
