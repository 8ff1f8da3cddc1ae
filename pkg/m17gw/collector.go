package m17gw

import (
	"sync"

	"github.com/M17-Project/m17-core-go/pkg/m17"
)

// StreamRegistry holds one LICHCollector per in-progress incoming
// stream, keyed by stream ID, matching spec.md §5's
// one-collector-per-in-progress-stream concurrency model. Collectors for
// different stream IDs exist side by side; a new stream ID gets its own
// collector and does not displace the others. A collector stays
// registered until Discard removes it.
//
// Grounded on pkg/peer/subscription.go's per-peer registry pattern
// (map plus mutex).
type StreamRegistry struct {
	mu         sync.Mutex
	collectors map[uint16]*m17.LICHCollector
}

// NewStreamRegistry returns an empty registry.
func NewStreamRegistry() *StreamRegistry {
	return &StreamRegistry{collectors: make(map[uint16]*m17.LICHCollector)}
}

// Collector returns the collector for streamID, creating one if this is
// the first frame seen for that stream.
func (r *StreamRegistry) Collector(streamID uint16) *m17.LICHCollector {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collectors[streamID]
	if !ok {
		c = m17.NewLICHCollector()
		r.collectors[streamID] = c
	}
	return c
}

// Discard drops the collector for streamID; the client calls it once the
// stream ends (EOT frame).
func (r *StreamRegistry) Discard(streamID uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.collectors, streamID)
}

// Active reports how many streams currently have an in-progress
// collector.
func (r *StreamRegistry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.collectors)
}
