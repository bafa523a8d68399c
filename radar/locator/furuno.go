package locator

import (
	"strings"

	"github.com/mayara-radar/mayara/radar"
)

// Furuno has no multicast beacon group; it broadcasts on a single UDP
// port.
const furunoBeaconPort = 10010

const (
	furunoAnnounceTag      = 0x00
	furunoAnnounceLen      = 32
	furunoModelResponseTag = 0x0F
	furunoModelResponseLen = 170
	furunoDeviceNameOffset = 2
	furunoDeviceNameLen    = 64
)

// furunoLoginPorts is a copy of radar/furuno/login.go's loginPortOrder: the
// locator hands the controller the same port-cycling order it already
// assumes.
var furunoLoginPorts = []int{10010, 10000}

// parseFuruno recognizes the 0x00 announce (32B, presence only) and the
// 0x0F model-response (170B, carries the ASCII device name) packets.
// Furuno radars carry no printed serial in either
// packet, so the source IP stands in for the stable identity key — it is
// as unique as the NIC-scoped deployment the controller ever sees.
func parseFuruno(src, nic radar.Addr, data []byte) (radar.RadarIdentity, radar.RadarEndpoints, bool) {
	if len(data) == 0 {
		return radar.RadarIdentity{}, radar.RadarEndpoints{}, false
	}
	endpoints := radar.RadarEndpoints{
		NIC:        nic.IP,
		Unicast:    radar.Addr{IP: src.IP},
		LoginPorts: furunoLoginPorts,
	}
	switch {
	case data[0] == furunoAnnounceTag && len(data) >= furunoAnnounceLen:
		return radar.RadarIdentity{Brand: radar.Furuno, Serial: src.IP}, endpoints, true
	case data[0] == furunoModelResponseTag && len(data) >= furunoModelResponseLen:
		name := furunoDeviceName(data)
		identity := radar.RadarIdentity{Brand: radar.Furuno, Serial: src.IP, ModelKey: matchFurunoModel(name)}
		return identity, endpoints, true
	default:
		return radar.RadarIdentity{}, radar.RadarEndpoints{}, false
	}
}

func furunoDeviceName(data []byte) string {
	end := furunoDeviceNameOffset + furunoDeviceNameLen
	if end > len(data) {
		end = len(data)
	}
	return nullTerminated(data[furunoDeviceNameOffset:end])
}

func matchFurunoModel(name string) string {
	switch {
	case strings.Contains(name, "DRS6A"):
		return "DRS6A-NXT"
	case strings.Contains(name, "DRS4D"):
		return "DRS4D-NXT"
	case strings.Contains(name, "FAR"):
		return "FAR-2xx8"
	default:
		return ""
	}
}
