package locator

import (
	"testing"

	"github.com/mayara-radar/mayara/radar"
)

func raymarineFrame(subtype byte, mac [6]byte, modelName string) []byte {
	frame := make([]byte, raymarineBeaconLen)
	frame[raymarineSubtypeOffset] = subtype
	copy(frame[raymarineSerialOffset:], mac[:])
	copy(frame[raymarineModelNameOffset:], modelName)
	return frame
}

func TestParseRaymarineRD(t *testing.T) {
	mac := [6]byte{1, 2, 3, 4, 5, 6}
	identity, endpoints, ok := parseRaymarine(radar.Addr{}, nic(), raymarineFrame(raymarineSubtypeRD, mac, ""))
	if !ok {
		t.Fatal("expected RD beacon to be recognized")
	}
	if identity.ModelKey != "RD" || identity.Serial != "010203040506" {
		t.Fatalf("identity = %+v", identity)
	}
	if endpoints.A == nil || endpoints.A.Report.Port != raymarineBeaconPort {
		t.Fatalf("endpoints.A = %+v", endpoints.A)
	}
}

func TestParseRaymarineQuantumVariants(t *testing.T) {
	cases := []struct {
		subtype byte
		name    string
		want    string
	}{
		{raymarineSubtypeQuantum, "Quantum Radar", "Quantum"},
		{raymarineSubtypeQuantum, "Quantum 2 Radar", "Quantum2"},
		{raymarineSubtypeQuantumWiFi, "Cyclone Radar", "Cyclone"},
		{raymarineSubtypeQuantum, "Mystery Radar", ""},
	}
	for _, c := range cases {
		mac := [6]byte{0xA, 0xB, 0xC, 0xD, 0xE, 0xF}
		identity, _, ok := parseRaymarine(radar.Addr{}, nic(), raymarineFrame(c.subtype, mac, c.name))
		if !ok {
			t.Fatalf("%q: expected recognized beacon", c.name)
		}
		if identity.ModelKey != c.want {
			t.Errorf("%q: model key = %q, want %q", c.name, identity.ModelKey, c.want)
		}
	}
}

func TestParseRaymarineRejectsTooShort(t *testing.T) {
	if _, _, ok := parseRaymarine(radar.Addr{}, nic(), make([]byte, raymarineBeaconLen-1)); ok {
		t.Fatal("expected a too-short beacon to be rejected")
	}
}

func TestParseRaymarineRejectsUnknownSubtype(t *testing.T) {
	frame := raymarineFrame(0x99, [6]byte{}, "")
	if _, _, ok := parseRaymarine(radar.Addr{}, nic(), frame); ok {
		t.Fatal("expected an unknown subtype byte to be rejected")
	}
}
