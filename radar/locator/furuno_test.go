package locator

import (
	"testing"

	"github.com/mayara-radar/mayara/radar"
)

func furunoAnnounceFrame() []byte {
	frame := make([]byte, furunoAnnounceLen)
	frame[0] = furunoAnnounceTag
	return frame
}

func furunoModelResponseFrame(deviceName string) []byte {
	frame := make([]byte, furunoModelResponseLen)
	frame[0] = furunoModelResponseTag
	copy(frame[furunoDeviceNameOffset:], deviceName)
	return frame
}

func TestParseFurunoAnnounce(t *testing.T) {
	identity, endpoints, ok := parseFuruno(radar.Addr{IP: "10.0.0.5"}, nic(), furunoAnnounceFrame())
	if !ok {
		t.Fatal("expected the announce packet to be recognized")
	}
	if identity.Brand != radar.Furuno || identity.Serial != "10.0.0.5" || identity.ModelKey != "" {
		t.Fatalf("identity = %+v", identity)
	}
	if len(endpoints.LoginPorts) != 2 || endpoints.LoginPorts[0] != 10010 {
		t.Fatalf("login ports = %v, want [10010 10000]", endpoints.LoginPorts)
	}
	if endpoints.Unicast.IP != "10.0.0.5" {
		t.Fatalf("unicast = %+v", endpoints.Unicast)
	}
}

func TestParseFurunoModelResponseMatchesModel(t *testing.T) {
	cases := map[string]string{
		"DRS4D-NXT RADAR": "DRS4D-NXT",
		"DRS6A-NXT RADAR": "DRS6A-NXT",
		"FAR-2228":        "FAR-2xx8",
		"UNKNOWN DEVICE":  "",
	}
	for name, want := range cases {
		identity, _, ok := parseFuruno(radar.Addr{IP: "10.0.0.5"}, nic(), furunoModelResponseFrame(name))
		if !ok {
			t.Fatalf("%q: expected recognized model response", name)
		}
		if identity.ModelKey != want {
			t.Errorf("%q: model key = %q, want %q", name, identity.ModelKey, want)
		}
	}
}

func TestParseFurunoRejectsTooShort(t *testing.T) {
	if _, _, ok := parseFuruno(radar.Addr{IP: "10.0.0.5"}, nic(), []byte{0x00, 0x01}); ok {
		t.Fatal("expected a too-short announce to be rejected")
	}
}

func TestParseFurunoRejectsUnknownTag(t *testing.T) {
	frame := make([]byte, furunoAnnounceLen)
	frame[0] = 0x42
	if _, _, ok := parseFuruno(radar.Addr{IP: "10.0.0.5"}, nic(), frame); ok {
		t.Fatal("expected an unrecognized tag byte to be rejected")
	}
}
