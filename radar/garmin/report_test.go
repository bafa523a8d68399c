package garmin

import (
	"encoding/binary"
	"testing"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

func testIdentity() radar.RadarIdentity {
	return radar.RadarIdentity{Brand: radar.Garmin, Serial: "77001", ModelKey: "Fantom"}
}

func TestApplyReportRejectsTooShort(t *testing.T) {
	state := radar.NewNormalizedState()
	if _, err := applyReport(testIdentity(), state, []byte{0x01}); err == nil {
		t.Fatal("expected an error for a packet too short to carry a command id")
	}
}

func TestApplyReportScannerInfoIsNoop(t *testing.T) {
	state := radar.NewNormalizedState()
	data := make([]byte, 4)
	binary.LittleEndian.PutUint16(data, cmdScannerInfo)
	events, err := applyReport(testIdentity(), state, data)
	if err != nil {
		t.Fatalf("applyReport error: %v", err)
	}
	if events != nil {
		t.Fatalf("expected no events for ScannerMessage, got %v", events)
	}
}

func TestApplyReportStatus(t *testing.T) {
	data := buildFrame(cmdStatus, 2)
	state := radar.NewNormalizedState()
	events, err := applyReport(testIdentity(), state, data)
	if err != nil {
		t.Fatalf("applyReport error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if state.GetStatus(0) != radar.Transmit {
		t.Fatalf("status = %v, want Transmit", state.GetStatus(0))
	}
}

func TestApplyReportStatusRejectsUnknownByte(t *testing.T) {
	data := buildFrame(cmdStatus, 9)
	state := radar.NewNormalizedState()
	if _, err := applyReport(testIdentity(), state, data); err == nil {
		t.Fatal("expected an error for an unrecognized status byte")
	}
}

func TestApplyReportRange(t *testing.T) {
	data := buildRangeFrame(1852)
	state := radar.NewNormalizedState()
	events, err := applyReport(testIdentity(), state, data)
	if err != nil {
		t.Fatalf("applyReport error: %v", err)
	}
	if len(events) != 1 {
		t.Fatal("expected 1 event")
	}
	cv, ok := state.Get(controldefs.Range, 0)
	if !ok || cv.Value != 1852 {
		t.Fatalf("range = %+v, %v, want 1852", cv, ok)
	}
}

func TestApplyReportGuardZone(t *testing.T) {
	data := buildGuardZoneFrame(GuardZone{InnerMeters: 100, OuterMeters: 5000, BearingDeg: 45, WidthDeg: 900}, true)
	state := radar.NewNormalizedState()
	_, err := applyReport(testIdentity(), state, data)
	if err != nil {
		t.Fatalf("applyReport error: %v", err)
	}
	cv, ok := state.Get(controldefs.GuardZone, 0)
	if !ok {
		t.Fatal("guard zone not set")
	}
	gz := unpackGuardZone(cv.Value)
	if gz.InnerMeters != 100 || gz.OuterMeters != 5000 || gz.BearingDeg != 45 || gz.WidthDeg != 900 {
		t.Fatalf("decoded guard zone = %+v", gz)
	}
	if cv.Enabled == nil || !*cv.Enabled {
		t.Fatal("guard zone should be enabled")
	}
}

func TestApplyReportTimedIdle(t *testing.T) {
	data := buildTimedIdleFrame(45)
	state := radar.NewNormalizedState()
	_, err := applyReport(testIdentity(), state, data)
	if err != nil {
		t.Fatalf("applyReport error: %v", err)
	}
	cv, ok := state.Get(controldefs.TimedIdle, 0)
	if !ok || cv.Value != 45 {
		t.Fatalf("timed idle = %+v, %v, want 45", cv, ok)
	}
}

func TestApplyReportUnrecognizedCommandIsNotAnError(t *testing.T) {
	data := buildFrame(0xFFFF)
	state := radar.NewNormalizedState()
	events, err := applyReport(testIdentity(), state, data)
	if err != nil {
		t.Fatalf("unrecognized command should not error: %v", err)
	}
	if events != nil {
		t.Fatalf("expected no events, got %v", events)
	}
}
