package navico

import (
	"testing"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
	"github.com/mayara-radar/mayara/radar/ioprovider"
	"github.com/mayara-radar/mayara/radar/modeldb"
)

func newTestController(t *testing.T, modelKey string) (*Controller, *ioprovider.Mock) {
	t.Helper()
	identity := radar.RadarIdentity{Brand: radar.Navico, Serial: "54321", ModelKey: modelKey}
	manifest := modeldb.BuildManifest(identity)
	endpoints := radar.RadarEndpoints{
		NIC: "192.168.1.10",
		A: &radar.EndpointTriple{
			Data:   radar.Addr{IP: "236.6.7.8", Port: 6678},
			Report: radar.Addr{IP: "236.6.7.9", Port: 6679},
			Send:   radar.Addr{IP: "236.6.7.10", Port: 6680},
		},
	}
	c, err := New(identity, endpoints, manifest)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c.(*Controller), ioprovider.NewMock()
}

func TestDisconnectedToListeningToConnected(t *testing.T) {
	c, io := newTestController(t, "4G")

	events := c.Poll(io)
	if c.state != radar.Listening {
		t.Fatalf("state after bind = %v, want Listening", c.state)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 state-changed event, got %d", len(events))
	}

	ep := c.eps[0]
	io.Deliver(ep.reportHandle, []byte{0x01, 0xC4, 0x02}, ep.triple.Report)
	events = c.Poll(io)
	if c.state != radar.Connected {
		t.Fatalf("state after first report = %v, want Connected", c.state)
	}
	found := false
	for _, e := range events {
		if sc, ok := e.(radar.StateChangedEvent); ok && sc.State == radar.Connected {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a StateChangedEvent to Connected")
	}
}

func TestStayAliveIntervalHALOvsOther(t *testing.T) {
	halo, _ := newTestController(t, "HALO20")
	if halo.stayAliveMs != stayAliveIntervalHaloMs {
		t.Fatalf("HALO stayAliveMs = %d, want %d", halo.stayAliveMs, stayAliveIntervalHaloMs)
	}
	other, _ := newTestController(t, "4G")
	if other.stayAliveMs != stayAliveIntervalOtherMs {
		t.Fatalf("4G stayAliveMs = %d, want %d", other.stayAliveMs, stayAliveIntervalOtherMs)
	}
}

func TestStayAliveSentAtInterval(t *testing.T) {
	c, io := newTestController(t, "4G")
	c.Poll(io) // bind -> Listening

	c.Poll(io)
	firstCount := len(io.Sent)
	if firstCount == 0 {
		t.Fatal("expected a stay-alive burst on the first active poll")
	}

	io.AdvanceMillis(500)
	c.Poll(io)
	if len(io.Sent) != firstCount {
		t.Fatalf("expected no new stay-alive burst before the interval elapses, sent=%d", len(io.Sent))
	}

	io.AdvanceMillis(stayAliveIntervalOtherMs)
	c.Poll(io)
	if len(io.Sent) <= firstCount {
		t.Fatal("expected another stay-alive burst once the interval elapses")
	}
}

func TestReportTimeoutDisconnects(t *testing.T) {
	c, io := newTestController(t, "4G")
	c.Poll(io)
	ep := c.eps[0]
	io.Deliver(ep.reportHandle, []byte{0x01, 0xC4, 0x02}, ep.triple.Report)
	c.Poll(io)
	if c.state != radar.Connected {
		t.Fatalf("state = %v, want Connected", c.state)
	}

	io.AdvanceMillis(reportTimeoutMs + 1)
	events := c.Poll(io)
	if c.state != radar.Disconnected {
		t.Fatalf("state after timeout = %v, want Disconnected", c.state)
	}
	found := false
	for _, e := range events {
		if sc, ok := e.(radar.StateChangedEvent); ok && sc.State == radar.Disconnected {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a StateChangedEvent to Disconnected")
	}
}

func connectedController(t *testing.T) (*Controller, *ioprovider.Mock) {
	t.Helper()
	c, io := newTestController(t, "4G")
	c.Poll(io)
	ep := c.eps[0]
	io.Deliver(ep.reportHandle, []byte{0x01, 0xC4, 0x02}, ep.triple.Report)
	c.Poll(io)
	io.Sent = nil
	return c, io
}

func TestSetGainSendsFrame(t *testing.T) {
	c, io := connectedController(t)
	err := c.Set(io, controldefs.Gain, radar.ControlValue{ID: controldefs.Gain, Value: 50})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if len(io.Sent) != 1 {
		t.Fatalf("expected 1 sent frame, got %d", len(io.Sent))
	}
	if io.Sent[0].Data[10] != 0x80 {
		t.Fatalf("gain byte = 0x%02x, want 0x80", io.Sent[0].Data[10])
	}
}

func TestSetUnknownControlRejected(t *testing.T) {
	c, io := connectedController(t)
	if err := c.Set(io, "not-a-real-control", radar.ControlValue{Value: 1}); err == nil {
		t.Fatal("expected an error for an unknown control")
	}
}

// testValueFor picks a value that passes Set()'s preamble validation for
// any control kind HALO24's manifest contains, so this test exercises
// dispatch rather than clamp/enum rejection.
func testValueFor(id string, def radar.ControlDefinition) radar.ControlValue {
	enabled := true
	switch {
	case def.Kind == radar.EnumKind:
		for k := range def.EnumLabels {
			return radar.ControlValue{ID: id, Value: float64(k)}
		}
	case id == controldefs.GuardZone1 || id == controldefs.GuardZone2:
		gz := GuardZone{InnerMeters: 50, OuterMeters: 1000, BearingDeg: 0, WidthDeg: 400}
		return radar.ControlValue{ID: id, Value: packGuardZone(gz), Enabled: &enabled}
	case id == controldefs.BlankingSector1 || id == controldefs.BlankingSector2 ||
		id == controldefs.BlankingSector3 || id == controldefs.BlankingSector4:
		return radar.ControlValue{ID: id, Value: packBlankingSector(10, 200), Enabled: &enabled}
	}
	return radar.ControlValue{ID: id, Value: def.Min}
}

// TestSetDispatchesEveryManifestControl guards against the Navico
// dispatch table silently falling behind its manifest: every control
// HALO24 (the union of all Navico extras) lists must be reachable from
// Set(), never falling through to UnknownControl.
func TestSetDispatchesEveryManifestControl(t *testing.T) {
	c, io := connectedController(t)
	for _, id := range modeldb.GetAllControlsForModel(radar.Navico, "HALO24") {
		def := controldefs.MustGet(id)
		err := c.Set(io, id, testValueFor(id, def))
		if cerr, ok := err.(*radar.ControllerError); ok && cerr.Kind == radar.ErrUnknownControl {
			t.Fatalf("Set(%s): dispatch missing for a manifest control", id)
		}
	}
}

func TestSetBeforeListeningRejected(t *testing.T) {
	c, io := newTestController(t, "4G")
	if err := c.Set(io, controldefs.Gain, radar.ControlValue{ID: controldefs.Gain, Value: 50}); err == nil {
		t.Fatal("expected an error when not yet Listening/Connected")
	}
}

func TestSetGuardZoneMergesSiblingEnable(t *testing.T) {
	c, io := connectedController(t)

	// Establish guard zone 2 as disabled via a report, as the radar would
	// report it, before setting guard zone 1.
	disabledGZ2 := make([]byte, 99)
	disabledGZ2[0], disabledGZ2[1] = 0x02, 0xC4
	// offset 76: inner/outer/bearing/width all zero -> width 0 -> disabled.
	if _, err := applyReport(c.identity, c.normalized, disabledGZ2, 0); err != nil {
		t.Fatalf("applyReport: %v", err)
	}
	io.Sent = nil

	enabled := true
	gz1 := GuardZone{InnerMeters: 50, OuterMeters: 2000, BearingDeg: 90, WidthDeg: 1200}
	err := c.Set(io, controldefs.GuardZone1, radar.ControlValue{
		ID: controldefs.GuardZone1, Value: packGuardZone(gz1), Enabled: &enabled, Screen: 0,
	})
	if err != nil {
		t.Fatalf("Set gz1: %v", err)
	}
	if len(io.Sent) != 2 {
		t.Fatalf("expected geometry + toggle frames, got %d", len(io.Sent))
	}
	toggle := io.Sent[1].Data
	want := []byte{0x90, 0xC1, 0x01, 0x00, 0x01, 0x00}
	for i := range want {
		if toggle[i] != want[i] {
			t.Fatalf("toggle frame = %x, want gz1 enabled, gz2 disabled from sibling state (%x)", toggle, want)
		}
	}
}

func TestShutdownRejectsFurtherSets(t *testing.T) {
	c, io := connectedController(t)
	c.Shutdown(io)
	if c.state != radar.Disconnected {
		t.Fatalf("state after shutdown = %v, want Disconnected", c.state)
	}
	if err := c.Set(io, controldefs.Gain, radar.ControlValue{ID: controldefs.Gain, Value: 50}); err == nil {
		t.Fatal("expected Set to fail after shutdown")
	}
}
