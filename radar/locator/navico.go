package locator

import "github.com/mayara-radar/mayara/radar"

// Navico's beacon multicast group and port, shared by BR24 through HALO
// (the generation byte inside the packet, not the group address, is what
// varies).
const (
	navicoBeaconIP   = "236.6.7.5"
	navicoBeaconPort = 6878
)

const (
	navicoMarker0   = 0x01
	navicoMarker1   = 0xB2
	navicoGenOffset = 2

	navicoGenBR24        = 0x01
	navicoGenSingleRange = 0x02
	navicoGenDualRange   = 0x03

	navicoSerialOffset = 3
	navicoSerialLen    = 6

	navicoTripleAOffset = navicoSerialOffset + navicoSerialLen // 9
	navicoTripleBOffset = navicoTripleAOffset + tripleLen      // 27
)

// parseNavico recognizes the `01 B2` beacon and its three embedded
// sub-beacon shapes. The generation byte tells BR24 apart from the
// single-range and dual-range families, but 3G/HALO20 (and 4G/HALO24)
// share a generation byte and are left with ModelKey == "" — they are
// disambiguated later by the controller's own Report 03 C4 model byte
// (radar/navico/report.go), which the locator has no access to.
func parseNavico(src, nic radar.Addr, data []byte) (radar.RadarIdentity, radar.RadarEndpoints, bool) {
	if len(data) < navicoTripleAOffset+tripleLen || data[0] != navicoMarker0 || data[1] != navicoMarker1 {
		return radar.RadarIdentity{}, radar.RadarEndpoints{}, false
	}

	mac := data[navicoSerialOffset : navicoSerialOffset+navicoSerialLen]
	tripleA, ok := readTriple(data, navicoTripleAOffset)
	if !ok {
		return radar.RadarIdentity{}, radar.RadarEndpoints{}, false
	}

	endpoints := radar.RadarEndpoints{NIC: nic.IP, A: &tripleA}
	modelKey, dual := navicoModelForGeneration(data[navicoGenOffset])
	if dual {
		if tripleB, ok := readTriple(data, navicoTripleBOffset); ok {
			endpoints.B = &tripleB
		}
	}

	identity := radar.RadarIdentity{Brand: radar.Navico, Serial: macSerial(mac), ModelKey: modelKey}
	return identity, endpoints, true
}

func navicoModelForGeneration(gen byte) (modelKey string, dual bool) {
	switch gen {
	case navicoGenBR24:
		return "BR24", false
	case navicoGenSingleRange:
		return "", false
	case navicoGenDualRange:
		return "", true
	default:
		return "", false
	}
}
