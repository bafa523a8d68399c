package locator

import (
	"encoding/binary"
	"testing"

	"github.com/mayara-radar/mayara/radar"
)

func putAddr(frame []byte, off int, ip [4]byte, port uint16) {
	copy(frame[off:off+4], ip[:])
	binary.LittleEndian.PutUint16(frame[off+4:off+6], port)
}

func navicoFrame(gen byte, mac [6]byte, dual bool) []byte {
	n := navicoTripleAOffset + tripleLen
	if dual {
		n += tripleLen
	}
	frame := make([]byte, n)
	frame[0] = navicoMarker0
	frame[1] = navicoMarker1
	frame[navicoGenOffset] = gen
	copy(frame[navicoSerialOffset:], mac[:])
	putAddr(frame, navicoTripleAOffset, [4]byte{236, 6, 7, 8}, 6678)
	putAddr(frame, navicoTripleAOffset+6, [4]byte{236, 6, 7, 9}, 6679)
	putAddr(frame, navicoTripleAOffset+12, [4]byte{236, 6, 7, 10}, 6680)
	if dual {
		putAddr(frame, navicoTripleBOffset, [4]byte{236, 6, 7, 11}, 6681)
		putAddr(frame, navicoTripleBOffset+6, [4]byte{236, 6, 7, 12}, 6682)
		putAddr(frame, navicoTripleBOffset+12, [4]byte{236, 6, 7, 13}, 6683)
	}
	return frame
}

func TestParseNavicoBR24(t *testing.T) {
	mac := [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	identity, endpoints, ok := parseNavico(radar.Addr{}, nic(), navicoFrame(navicoGenBR24, mac, false))
	if !ok {
		t.Fatal("expected BR24 beacon to be recognized")
	}
	if identity.Brand != radar.Navico || identity.ModelKey != "BR24" || identity.Serial != "aabbccddeeff" {
		t.Fatalf("identity = %+v", identity)
	}
	if endpoints.A == nil || endpoints.A.Data.IP != "236.6.7.8" || endpoints.A.Data.Port != 6678 {
		t.Fatalf("endpoints.A = %+v", endpoints.A)
	}
	if endpoints.B != nil {
		t.Fatalf("BR24 is never dual-range, got B = %+v", endpoints.B)
	}
}

func TestParseNavicoDualRangeFillsBothTriples(t *testing.T) {
	mac := [6]byte{1, 2, 3, 4, 5, 6}
	identity, endpoints, ok := parseNavico(radar.Addr{}, nic(), navicoFrame(navicoGenDualRange, mac, true))
	if !ok {
		t.Fatal("expected dual-range beacon to be recognized")
	}
	if identity.ModelKey != "" {
		t.Fatalf("expected dual-range generation to leave 4G/HALO24 disambiguation to the controller, got %q", identity.ModelKey)
	}
	if endpoints.A == nil || endpoints.B == nil {
		t.Fatalf("expected both A and B triples, got A=%v B=%v", endpoints.A, endpoints.B)
	}
	if endpoints.B.Send.IP != "236.6.7.13" || endpoints.B.Send.Port != 6683 {
		t.Fatalf("B.Send = %+v", endpoints.B.Send)
	}
}

func TestParseNavicoSingleRangeIsNotDual(t *testing.T) {
	mac := [6]byte{1, 1, 1, 1, 1, 1}
	identity, endpoints, ok := parseNavico(radar.Addr{}, nic(), navicoFrame(navicoGenSingleRange, mac, false))
	if !ok {
		t.Fatal("expected single-range beacon to be recognized")
	}
	if identity.ModelKey != "" {
		t.Fatalf("expected 3G/HALO20 disambiguation to be left to the controller, got %q", identity.ModelKey)
	}
	if endpoints.B != nil {
		t.Fatal("single-range beacon must not produce a B triple")
	}
}

func TestParseNavicoRejectsBadMarker(t *testing.T) {
	frame := navicoFrame(navicoGenBR24, [6]byte{}, false)
	frame[1] = 0x00
	if _, _, ok := parseNavico(radar.Addr{}, nic(), frame); ok {
		t.Fatal("expected a bad marker byte to be rejected")
	}
}

func TestParseNavicoRejectsTooShort(t *testing.T) {
	if _, _, ok := parseNavico(radar.Addr{}, nic(), []byte{navicoMarker0, navicoMarker1}); ok {
		t.Fatal("expected a too-short packet to be rejected")
	}
}
