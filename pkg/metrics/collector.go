package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector collects gateway metrics: FEC outcomes, frame counts, and the
// set of stations/streams currently active. Counters are backed by real
// Prometheus instruments so PrometheusServer can expose them without a
// manual text-format render.
type Collector struct {
	mu sync.RWMutex

	framesDecoded *prometheus.CounterVec
	framesEncoded *prometheus.CounterVec

	golayCorrections prometheus.Counter
	viterbiFailures  prometheus.Counter
	crcFailures      prometheus.Counter
	reassemblyErrors *prometheus.CounterVec

	bytesReceived prometheus.Counter
	bytesSent     prometheus.Counter

	activeStreams   map[uint16]bool // keyed by IP-frame stream ID
	heardStations   map[string]bool // keyed by callsign
	activeStreamsG  prometheus.Gauge
	heardStationsG  prometheus.Gauge
}

// NewCollector creates a Collector and registers its instruments with reg.
// Pass prometheus.NewRegistry() in production, or a throwaway registry in
// tests that don't care about duplicate-registration panics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		framesDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "m17gw_frames_decoded_total",
			Help: "Total RF frames successfully decoded, by frame type.",
		}, []string{"frame_type"}),
		framesEncoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "m17gw_frames_encoded_total",
			Help: "Total RF frames encoded for transmission, by frame type.",
		}, []string{"frame_type"}),
		golayCorrections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "m17gw_golay_corrections_total",
			Help: "Total Golay(24,12) codewords decoded with a nonzero error pattern.",
		}),
		viterbiFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "m17gw_viterbi_failures_total",
			Help: "Total convolutional decodes that failed to converge.",
		}),
		crcFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "m17gw_crc_failures_total",
			Help: "Total frames dropped for a CRC mismatch.",
		}),
		reassemblyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "m17gw_reassembly_errors_total",
			Help: "Total LICH/packet reassembly failures, by kind.",
		}, []string{"kind"}),
		bytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "m17gw_bytes_received_total",
			Help: "Total bytes received from the reflector/peer link.",
		}),
		bytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "m17gw_bytes_sent_total",
			Help: "Total bytes sent to the reflector/peer link.",
		}),
		activeStreamsG: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "m17gw_active_streams",
			Help: "Number of voice/data streams currently in progress.",
		}),
		heardStationsG: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "m17gw_heard_stations",
			Help: "Number of distinct stations heard in the current session.",
		}),
		activeStreams: make(map[uint16]bool),
		heardStations: make(map[string]bool),
	}

	if reg != nil {
		reg.MustRegister(
			c.framesDecoded, c.framesEncoded,
			c.golayCorrections, c.viterbiFailures, c.crcFailures, c.reassemblyErrors,
			c.bytesReceived, c.bytesSent,
			c.activeStreamsG, c.heardStationsG,
		)
	}

	return c
}

// FrameDecoded records a successfully decoded RF frame of the given type
// ("lsf", "stream", "packet", "bert").
func (c *Collector) FrameDecoded(frameType string) {
	c.framesDecoded.WithLabelValues(frameType).Inc()
}

// FrameEncoded records an RF frame produced for transmission.
func (c *Collector) FrameEncoded(frameType string) {
	c.framesEncoded.WithLabelValues(frameType).Inc()
}

// GolayCorrected records a Golay(24,12) decode that corrected one or more
// bit errors.
func (c *Collector) GolayCorrected() { c.golayCorrections.Inc() }

// ViterbiFailed records a convolutional decode that could not converge on
// the expected flush state.
func (c *Collector) ViterbiFailed() { c.viterbiFailures.Inc() }

// CRCFailed records a frame dropped for a CRC mismatch.
func (c *Collector) CRCFailed() { c.crcFailures.Inc() }

// ReassemblyFailed records a LICH or packet-chunk reassembly failure.
// kind is "lich" or "packet".
func (c *Collector) ReassemblyFailed(kind string) {
	c.reassemblyErrors.WithLabelValues(kind).Inc()
}

// BytesReceived records bytes read from the reflector/peer socket.
func (c *Collector) BytesReceived(n uint64) { c.bytesReceived.Add(float64(n)) }

// BytesSent records bytes written to the reflector/peer socket.
func (c *Collector) BytesSent(n uint64) { c.bytesSent.Add(float64(n)) }

// StreamStarted records a new stream ID becoming active.
func (c *Collector) StreamStarted(streamID uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeStreams[streamID] = true
	c.activeStreamsG.Set(float64(len(c.activeStreams)))
}

// StreamEnded records a stream ID finishing (EOT or timeout).
func (c *Collector) StreamEnded(streamID uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.activeStreams, streamID)
	c.activeStreamsG.Set(float64(len(c.activeStreams)))
}

// StationHeard records a station callsign appearing in a decoded LSF.
func (c *Collector) StationHeard(callsign string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.heardStations[callsign] = true
	c.heardStationsG.Set(float64(len(c.heardStations)))
}

// GetActiveStreams returns the number of streams currently in progress.
func (c *Collector) GetActiveStreams() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.activeStreams)
}

// GetHeardStations returns the number of distinct stations heard.
func (c *Collector) GetHeardStations() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.heardStations)
}

// Reset clears the active-set trackers. Cumulative counters are untouched,
// matching their Prometheus counter-only-increases semantics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeStreams = make(map[uint16]bool)
	c.heardStations = make(map[string]bool)
	c.activeStreamsG.Set(0)
	c.heardStationsG.Set(0)
}
