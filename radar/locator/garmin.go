package locator

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/mayara-radar/mayara/radar"
)

// Multicast beacon on 239.254.2.x.
const (
	garminBeaconIP   = "239.254.2.0"
	garminBeaconPort = 50100
)

const (
	garminScannerMsgID    = 0x099b
	garminSerialOffset    = 2
	garminSerialLen       = 4
	garminModelNameOffset = garminSerialOffset + garminSerialLen       // 6
	garminModelNameLen    = 32
	garminTripleOffset    = garminModelNameOffset + garminModelNameLen // 38
	garminMinBeaconLen    = garminTripleOffset + tripleLen             // 56
)

// parseGarmin recognizes the ScannerMessage (command id 0x099b), which
// carries an explicit model string, plus an
// embedded (data, report, send) triple at the documented offset, the same
// convention Navico's beacon uses.
func parseGarmin(src, nic radar.Addr, data []byte) (radar.RadarIdentity, radar.RadarEndpoints, bool) {
	if len(data) < garminMinBeaconLen {
		return radar.RadarIdentity{}, radar.RadarEndpoints{}, false
	}
	if binary.LittleEndian.Uint16(data[0:2]) != garminScannerMsgID {
		return radar.RadarIdentity{}, radar.RadarEndpoints{}, false
	}

	serial := binary.LittleEndian.Uint32(data[garminSerialOffset : garminSerialOffset+garminSerialLen])
	name := nullTerminated(data[garminModelNameOffset : garminModelNameOffset+garminModelNameLen])
	triple, ok := readTriple(data, garminTripleOffset)
	if !ok {
		return radar.RadarIdentity{}, radar.RadarEndpoints{}, false
	}

	identity := radar.RadarIdentity{
		Brand:    radar.Garmin,
		Serial:   fmt.Sprintf("%d", serial),
		ModelKey: matchGarminModel(name),
	}
	endpoints := radar.RadarEndpoints{NIC: nic.IP, A: &triple}
	return identity, endpoints, true
}

func matchGarminModel(name string) string {
	switch {
	case strings.Contains(name, "Fantom"):
		return "Fantom"
	case strings.Contains(name, "GMR24"):
		return "GMR24"
	case strings.Contains(name, "GMR18"):
		return "GMR18"
	default:
		return ""
	}
}
