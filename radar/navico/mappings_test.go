package navico

import "testing"

func TestPercentByteRoundTrip(t *testing.T) {
	for p := 0.0; p <= 100; p += 5 {
		b := PercentToByte(p)
		back := ByteToPercent(b)
		if diff := back - p; diff > 1 || diff < -1 {
			t.Errorf("percent %v -> byte %d -> %v, diff exceeds 1", p, b, back)
		}
	}
}

func TestGainSetScenario(t *testing.T) {
	// Gain value 50 must encode to wire byte 0x80.
	b := PercentToByte(50)
	if b != 0x80 {
		t.Fatalf("PercentToByte(50) = 0x%02x, want 0x80", b)
	}
	frame := buildGain(false, b)
	want := []byte{0x06, 0xC1, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}
	if len(frame) != len(want) {
		t.Fatalf("frame length = %d, want %d", len(frame), len(want))
	}
	for i := range want {
		if frame[i] != want[i] {
			t.Fatalf("frame[%d] = 0x%02x, want 0x%02x (full frame %x)", i, frame[i], want[i], frame)
		}
	}
}

func TestHeadingRoundTrip(t *testing.T) {
	cases := []float64{-180, -90, -0.1, 0, 0.1, 90, 179.9}
	for _, deg := range cases {
		wire := HeadingUIToWire(deg)
		back := HeadingWireToUI(wire)
		if HeadingUIToWire(back) != wire {
			t.Errorf("heading %v round-trip mismatch: wire=%d, back=%v, rewire=%d", deg, wire, back, HeadingUIToWire(back))
		}
	}
}

func TestGuardZoneRoundTrip(t *testing.T) {
	cases := []GuardZone{
		{InnerMeters: 0, OuterMeters: 1000, BearingDeg: 0, WidthDeg: 900},
		{InnerMeters: 500, OuterMeters: 74080, BearingDeg: 1800, WidthDeg: 3599},
		{InnerMeters: 100, OuterMeters: 200, BearingDeg: 3599, WidthDeg: 1},
	}
	for _, gz := range cases {
		packed := packGuardZone(gz)
		back := unpackGuardZone(packed)
		if back != gz {
			t.Errorf("guard zone %+v round-tripped to %+v", gz, back)
		}
	}
}

func TestGuardZoneGeometryWireRoundTrip(t *testing.T) {
	gz := GuardZone{InnerMeters: 100, OuterMeters: 5000, BearingDeg: 45, WidthDeg: 120}
	frame := buildGuardZoneGeometry(0, gz)
	inner, _ := u32le(frame, 6)
	outer, _ := u32le(frame, 10)
	bearing, _ := u16le(frame, 14)
	width, _ := u16le(frame, 16)
	if float64(inner) != gz.InnerMeters || float64(outer) != gz.OuterMeters ||
		int(bearing) != gz.BearingDeg || int(width) != gz.WidthDeg {
		t.Fatalf("wire-decoded geometry mismatch: inner=%d outer=%d bearing=%d width=%d, want %+v", inner, outer, bearing, width, gz)
	}
}
