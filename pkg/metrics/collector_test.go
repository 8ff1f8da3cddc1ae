package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewCollector(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	if c == nil {
		t.Fatal("expected non-nil collector")
	}
}

func TestCollector_StreamTracking(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.StreamStarted(0xBEEF)
	if got := c.GetActiveStreams(); got != 1 {
		t.Errorf("got %d active streams, want 1", got)
	}

	c.StreamEnded(0xBEEF)
	if got := c.GetActiveStreams(); got != 0 {
		t.Errorf("got %d active streams after end, want 0", got)
	}
}

func TestCollector_HeardStations(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.StationHeard("W2FBI")
	c.StationHeard("N0CALL")
	c.StationHeard("W2FBI") // duplicate should not double-count

	if got := c.GetHeardStations(); got != 2 {
		t.Errorf("got %d heard stations, want 2", got)
	}
}

func TestCollector_FrameAndFECCounters(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.FrameDecoded("lsf")
	c.FrameDecoded("stream")
	c.FrameEncoded("packet")
	c.GolayCorrected()
	c.ViterbiFailed()
	c.CRCFailed()
	c.ReassemblyFailed("lich")
	c.BytesReceived(1024)
	c.BytesSent(2048)

	if v := testutil.ToFloat64(c.framesDecoded.WithLabelValues("lsf")); v != 1 {
		t.Errorf("got %v decoded lsf frames, want 1", v)
	}
	if v := testutil.ToFloat64(c.reassemblyErrors.WithLabelValues("lich")); v != 1 {
		t.Errorf("got %v lich reassembly failures, want 1", v)
	}
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.StreamStarted(1)
	c.StationHeard("W2FBI")
	c.Reset()

	if got := c.GetActiveStreams(); got != 0 {
		t.Errorf("got %d active streams after reset, want 0", got)
	}
	if got := c.GetHeardStations(); got != 0 {
		t.Errorf("got %d heard stations after reset, want 0", got)
	}
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func(id int) {
			c.StreamStarted(uint16(id))
			c.FrameDecoded("stream")
			c.BytesReceived(100)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if got := c.GetActiveStreams(); got != 10 {
		t.Errorf("got %d active streams, want 10", got)
	}
}
