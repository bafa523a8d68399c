package locator

import (
	"strings"

	"github.com/mayara-radar/mayara/radar"
)

// 56-byte multicast beacon on 224.0.0.1:5800.
const (
	raymarineBeaconIP   = "224.0.0.1"
	raymarineBeaconPort = 5800
)

const (
	raymarineBeaconLen       = 56
	raymarineSubtypeOffset   = 1
	raymarineSerialOffset    = 2
	raymarineSerialLen       = 6
	raymarineModelNameOffset = 8
	raymarineModelNameLen    = raymarineBeaconLen - raymarineModelNameOffset

	raymarineSubtypeRD          = 0x01
	raymarineSubtypeQuantum     = 0x66
	raymarineSubtypeQuantumWiFi = 0x4D
)

// Raymarine's beacon carries no embedded address triple (unlike Navico and
// Garmin); the radar always reports and accepts commands on this same
// well-known multicast group, the fixed ports radar/raymarine's controller
// tests also use.
var raymarineWellKnownTriple = radar.EndpointTriple{
	Data:   radar.Addr{IP: raymarineBeaconIP, Port: 5801},
	Report: radar.Addr{IP: raymarineBeaconIP, Port: raymarineBeaconPort},
	Send:   radar.Addr{IP: raymarineBeaconIP, Port: 5802},
}

// parseRaymarine recognizes the 56-byte beacon and its subtype byte,
// which selects the RD/Quantum/Quantum-WiFi variant.
func parseRaymarine(src, nic radar.Addr, data []byte) (radar.RadarIdentity, radar.RadarEndpoints, bool) {
	if len(data) < raymarineBeaconLen {
		return radar.RadarIdentity{}, radar.RadarEndpoints{}, false
	}

	var modelKey string
	switch data[raymarineSubtypeOffset] {
	case raymarineSubtypeRD:
		modelKey = "RD"
	case raymarineSubtypeQuantum, raymarineSubtypeQuantumWiFi:
		name := nullTerminated(data[raymarineModelNameOffset : raymarineModelNameOffset+raymarineModelNameLen])
		modelKey = matchRaymarineQuantumModel(name)
	default:
		return radar.RadarIdentity{}, radar.RadarEndpoints{}, false
	}

	mac := data[raymarineSerialOffset : raymarineSerialOffset+raymarineSerialLen]
	triple := raymarineWellKnownTriple
	identity := radar.RadarIdentity{Brand: radar.Raymarine, Serial: macSerial(mac), ModelKey: modelKey}
	endpoints := radar.RadarEndpoints{NIC: nic.IP, A: &triple}
	return identity, endpoints, true
}

func matchRaymarineQuantumModel(name string) string {
	switch {
	case strings.Contains(name, "Cyclone"):
		return "Cyclone"
	case strings.Contains(name, "Quantum 2"), strings.Contains(name, "Quantum2"):
		return "Quantum2"
	case strings.Contains(name, "Quantum"):
		return "Quantum"
	default:
		return ""
	}
}
