package m17gw

import "testing"

func TestStreamRegistry_CreateOnFirstAccess(t *testing.T) {
	r := NewStreamRegistry()
	if r.Active() != 0 {
		t.Fatalf("expected 0 active, got %d", r.Active())
	}

	c := r.Collector(100)
	if c == nil {
		t.Fatal("expected non-nil collector")
	}
	if r.Active() != 1 {
		t.Fatalf("expected 1 active, got %d", r.Active())
	}

	c2 := r.Collector(100)
	if c2 != c {
		t.Fatal("expected same collector instance for same stream id")
	}
	if r.Active() != 1 {
		t.Fatalf("expected still 1 active after repeat access, got %d", r.Active())
	}
}

func TestStreamRegistry_Discard(t *testing.T) {
	r := NewStreamRegistry()
	r.Collector(1)
	r.Collector(2)
	if r.Active() != 2 {
		t.Fatalf("expected 2 active, got %d", r.Active())
	}

	r.Discard(1)
	if r.Active() != 1 {
		t.Fatalf("expected 1 active after discard, got %d", r.Active())
	}

	r.Discard(1)
	if r.Active() != 1 {
		t.Fatalf("expected discard of unknown stream id to be a no-op, got %d", r.Active())
	}
}

func TestStreamRegistry_DistinctStreamsIndependent(t *testing.T) {
	r := NewStreamRegistry()
	a := r.Collector(10)
	b := r.Collector(20)
	if a == b {
		t.Fatal("expected distinct collectors for distinct stream ids")
	}
}
