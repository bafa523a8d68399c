package garmin

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

func TestAntennaHeightRoundTrip(t *testing.T) {
	cases := []float64{0, 2.5, 10.1, 99.9}
	for _, m := range cases {
		wire := antennaHeightMetersToDecimeters(m)
		back := antennaHeightDecimetersToMeters(wire)
		if diff := back - m; diff > 0.05 || diff < -0.05 {
			t.Errorf("antenna height %v -> wire %d -> %v", m, wire, back)
		}
	}
}

func TestGuardZoneRoundTrip(t *testing.T) {
	cases := []GuardZone{
		{InnerMeters: 0, OuterMeters: 1000, BearingDeg: 0, WidthDeg: 900},
		{InnerMeters: 500, OuterMeters: 111120, BearingDeg: 1800, WidthDeg: 3599},
	}
	for _, gz := range cases {
		packed := packGuardZone(gz)
		back := unpackGuardZone(packed)
		if back != gz {
			t.Errorf("guard zone %+v round-tripped to %+v", gz, back)
		}
	}
}
