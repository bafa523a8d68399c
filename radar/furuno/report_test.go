package furuno

import (
	"testing"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

func testIdentity() radar.RadarIdentity {
	return radar.RadarIdentity{Brand: radar.Furuno, Serial: "12345", ModelKey: "DRS4D-NXT"}
}

func TestApplyNotificationRange(t *testing.T) {
	state := radar.NewNormalizedState()
	fr, ok := parseFrame("$N62,4,0,0")
	if !ok {
		t.Fatal("parseFrame failed")
	}
	events, err := applyNotification(testIdentity(), state, fr, 0)
	if err != nil {
		t.Fatalf("applyNotification error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	v, ok := state.Get(controldefs.Range, 0)
	if !ok || v.Value != 1852 {
		t.Fatalf("range state = %+v, %v, want 1852", v, ok)
	}
}

func TestApplyNotificationGainAuto(t *testing.T) {
	state := radar.NewNormalizedState()
	fr, _ := parseFrame("$N63,1,72")
	_, err := applyNotification(testIdentity(), state, fr, 0)
	if err != nil {
		t.Fatalf("applyNotification error: %v", err)
	}
	v, ok := state.Get(controldefs.Gain, 0)
	if !ok || v.Value != 72 || v.Auto == nil || !*v.Auto {
		t.Fatalf("gain state = %+v, %v", v, ok)
	}
}

func TestApplyFeatureReportSetEcho(t *testing.T) {
	state := radar.NewNormalizedState()
	fr, _ := parseFrame("$N67,0,3,2,0")
	events, err := applyNotification(testIdentity(), state, fr, 0)
	if err != nil {
		t.Fatalf("applyNotification error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	v, ok := state.Get(controldefs.NoiseRej, 0)
	if !ok || v.Value != 2 {
		t.Fatalf("noise rejection state = %+v, %v, want 2", v, ok)
	}
}

func TestApplyFeatureReportRequestResponse(t *testing.T) {
	state := radar.NewNormalizedState()
	fr, _ := parseFrame("$N67,0,1,0")
	_, err := applyNotification(testIdentity(), state, fr, 0)
	if err != nil {
		t.Fatalf("applyNotification error: %v", err)
	}
	v, ok := state.Get(controldefs.IR, 0)
	if !ok || v.Value != 1 {
		t.Fatalf("IR state = %+v, %v, want 1", v, ok)
	}
}

func TestApplyFeatureReportUnrecognizedArity(t *testing.T) {
	state := radar.NewNormalizedState()
	fr, _ := parseFrame("$N67,1")
	if _, err := applyNotification(testIdentity(), state, fr, 0); err == nil {
		t.Fatal("expected an error for unrecognized $N67 arity")
	}
}

func TestApplyNotificationMagnetronWarmup(t *testing.T) {
	state := radar.NewNormalizedState()
	fr, _ := parseFrame("$N76,30")
	events, err := applyNotification(testIdentity(), state, fr, 0)
	if err != nil {
		t.Fatalf("applyNotification error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event during warmup, got %d", len(events))
	}
	if state.GetStatus(0) != radar.Warming {
		t.Fatalf("status = %v, want Warming", state.GetStatus(0))
	}

	fr2, _ := parseFrame("$N76,55")
	events2, err := applyNotification(testIdentity(), state, fr2, 0)
	if err != nil {
		t.Fatalf("applyNotification error: %v", err)
	}
	if len(events2) != 0 {
		t.Fatalf("expected no event once warmup clears the threshold, got %d", len(events2))
	}
	// Status is left alone once warmup clears; a real radar follows up
	// with its own $N69 to report the post-warmup state.
	if state.GetStatus(0) != radar.Warming {
		t.Fatalf("status should still read the last explicit value, got %v", state.GetStatus(0))
	}
}

func TestApplyBlindSectors(t *testing.T) {
	state := radar.NewNormalizedState()
	fr, _ := parseFrame("$N77,1,0,90,180,45")
	events, err := applyNotification(testIdentity(), state, fr, 0)
	if err != nil {
		t.Fatalf("applyNotification error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events (both sectors), got %d", len(events))
	}
	v1, ok := state.Get(controldefs.NoTransmitSector1, 0)
	if !ok || v1.Enabled == nil || !*v1.Enabled {
		t.Fatalf("sector1 = %+v, %v", v1, ok)
	}
	v2, ok := state.Get(controldefs.NoTransmitSector2, 0)
	if !ok || v2.Enabled == nil || !*v2.Enabled {
		t.Fatalf("sector2 = %+v, %v", v2, ok)
	}
	s2 := decodeSector(v2.Value, true)
	if s2.StartDeg != 180 || s2.EndDeg != normalizeDeg(180+45) {
		t.Fatalf("sector2 decoded = %+v", s2)
	}
}

func TestApplyNotificationMalformedFieldDiscarded(t *testing.T) {
	state := radar.NewNormalizedState()
	fr, _ := parseFrame("$N62,notanumber,0,0")
	if _, err := applyNotification(testIdentity(), state, fr, 0); err == nil {
		t.Fatal("expected an error for a non-numeric field")
	}
	if _, ok := state.Get(controldefs.Range, 0); ok {
		t.Fatal("state must not be touched by a malformed frame")
	}
}
