package locator

import (
	"testing"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/ioprovider"
)

func nic() radar.Addr { return radar.Addr{IP: "192.168.1.50"} }

func newStarted(t *testing.T) (*Locator, *ioprovider.Mock) {
	t.Helper()
	io := ioprovider.NewMock()
	l := New([]radar.Addr{nic()})
	if err := l.Start(io); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return l, io
}

func handleFor(t *testing.T, l *Locator, brand radar.Brand) radar.Handle {
	t.Helper()
	for _, s := range l.sockets {
		if s.brand == brand {
			return s.handle
		}
	}
	t.Fatalf("no socket bound for brand %s", brand)
	return 0
}

func TestStartBindsEveryBrandOnEveryNIC(t *testing.T) {
	l, _ := newStarted(t)
	if len(l.sockets) != 4 {
		t.Fatalf("expected 4 beacon sockets (one per brand) on 1 NIC, got %d", len(l.sockets))
	}
}

func TestPollEmitsRadarFoundOnRecognizedBeacon(t *testing.T) {
	l, io := newStarted(t)
	h := handleFor(t, l, radar.Furuno)
	io.Deliver(h, furunoAnnounceFrame(), radar.Addr{IP: "10.0.0.5"})

	events := l.Poll(io)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	found, ok := events[0].(radar.RadarFoundEvent)
	if !ok {
		t.Fatalf("event type = %T, want RadarFoundEvent", events[0])
	}
	if found.Identity.Brand != radar.Furuno || found.Identity.Serial != "10.0.0.5" {
		t.Fatalf("identity = %+v", found.Identity)
	}
	if found.Endpoints.NIC != nic().IP {
		t.Fatalf("endpoints.NIC = %q, want %q", found.Endpoints.NIC, nic().IP)
	}
}

func TestPollDiscardsUnrecognizedBeacon(t *testing.T) {
	l, io := newStarted(t)
	h := handleFor(t, l, radar.Furuno)
	io.Deliver(h, []byte{0x01, 0x02, 0x03}, radar.Addr{IP: "10.0.0.5"})

	if events := l.Poll(io); len(events) != 0 {
		t.Fatalf("expected no events for a malformed beacon, got %d", len(events))
	}
}

func TestPollDedupsWithinWindow(t *testing.T) {
	l, io := newStarted(t)
	h := handleFor(t, l, radar.Furuno)
	src := radar.Addr{IP: "10.0.0.5"}

	io.Deliver(h, furunoAnnounceFrame(), src)
	if events := l.Poll(io); len(events) != 1 {
		t.Fatalf("first sighting: expected 1 event, got %d", len(events))
	}

	io.AdvanceMillis(1000)
	io.Deliver(h, furunoAnnounceFrame(), src)
	if events := l.Poll(io); len(events) != 0 {
		t.Fatalf("repeat within window: expected 0 events, got %d", len(events))
	}

	io.AdvanceMillis(dedupWindowMs + 1)
	io.Deliver(h, furunoAnnounceFrame(), src)
	if events := l.Poll(io); len(events) != 1 {
		t.Fatalf("after window elapses: expected 1 event, got %d", len(events))
	}
}

func TestPollEmitsAgainWhenModelKeyIsUpgraded(t *testing.T) {
	l, io := newStarted(t)
	h := handleFor(t, l, radar.Furuno)
	src := radar.Addr{IP: "10.0.0.5"}

	io.Deliver(h, furunoAnnounceFrame(), src)
	events := l.Poll(io)
	if len(events) != 1 || events[0].(radar.RadarFoundEvent).Identity.ModelKey != "" {
		t.Fatalf("expected the bare announce to report an empty model key, got %+v", events)
	}

	io.Deliver(h, furunoModelResponseFrame("DRS4D-NXT RADAR"), src)
	events = l.Poll(io)
	if len(events) != 1 {
		t.Fatalf("expected the model response to still emit (model-key upgrade), got %d events", len(events))
	}
	if events[0].(radar.RadarFoundEvent).Identity.ModelKey != "DRS4D-NXT" {
		t.Fatalf("model key = %q, want DRS4D-NXT", events[0].(radar.RadarFoundEvent).Identity.ModelKey)
	}
}

func TestShutdownClosesSockets(t *testing.T) {
	l, io := newStarted(t)
	h := handleFor(t, l, radar.Navico)
	l.Shutdown(io)
	if len(l.sockets) != 0 {
		t.Fatal("expected sockets to be cleared after Shutdown")
	}
	if err := io.UDPSendTo(h, []byte{1}, radar.Addr{IP: "1.2.3.4", Port: 1}); err == nil {
		t.Fatal("expected send on a closed handle to fail")
	}
}
