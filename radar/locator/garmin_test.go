package locator

import (
	"encoding/binary"
	"testing"

	"github.com/mayara-radar/mayara/radar"
)

func garminFrame(serial uint32, modelName string) []byte {
	frame := make([]byte, garminMinBeaconLen)
	binary.LittleEndian.PutUint16(frame[0:2], garminScannerMsgID)
	binary.LittleEndian.PutUint32(frame[garminSerialOffset:garminSerialOffset+4], serial)
	copy(frame[garminModelNameOffset:], modelName)
	putAddr(frame, garminTripleOffset, [4]byte{239, 254, 2, 1}, 50100)
	putAddr(frame, garminTripleOffset+6, [4]byte{239, 254, 2, 1}, 50101)
	putAddr(frame, garminTripleOffset+12, [4]byte{239, 254, 2, 1}, 50102)
	return frame
}

func TestParseGarminScannerMessage(t *testing.T) {
	identity, endpoints, ok := parseGarmin(radar.Addr{}, nic(), garminFrame(77001, "Fantom Radar"))
	if !ok {
		t.Fatal("expected ScannerMessage to be recognized")
	}
	if identity.Brand != radar.Garmin || identity.Serial != "77001" || identity.ModelKey != "Fantom" {
		t.Fatalf("identity = %+v", identity)
	}
	if endpoints.A == nil || endpoints.A.Send.Port != 50102 {
		t.Fatalf("endpoints.A = %+v", endpoints.A)
	}
}

func TestParseGarminModelMatching(t *testing.T) {
	cases := map[string]string{
		"GMR18 HD":   "GMR18",
		"GMR24 HD":   "GMR24",
		"Fantom 126": "Fantom",
		"Unknown":    "",
	}
	for name, want := range cases {
		identity, _, ok := parseGarmin(radar.Addr{}, nic(), garminFrame(1, name))
		if !ok {
			t.Fatalf("%q: expected recognized beacon", name)
		}
		if identity.ModelKey != want {
			t.Errorf("%q: model key = %q, want %q", name, identity.ModelKey, want)
		}
	}
}

func TestParseGarminRejectsWrongCommand(t *testing.T) {
	frame := garminFrame(1, "Fantom")
	binary.LittleEndian.PutUint16(frame[0:2], 0x0001)
	if _, _, ok := parseGarmin(radar.Addr{}, nic(), frame); ok {
		t.Fatal("expected a non-ScannerMessage command id to be rejected")
	}
}

func TestParseGarminRejectsTooShort(t *testing.T) {
	if _, _, ok := parseGarmin(radar.Addr{}, nic(), garminFrame(1, "x")[:garminMinBeaconLen-1]); ok {
		t.Fatal("expected a too-short packet to be rejected")
	}
}
