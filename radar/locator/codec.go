package locator

import (
	"encoding/binary"
	"fmt"

	"github.com/mayara-radar/mayara/radar"
)

// readAddr reads a 6-byte (4-byte big-endian IPv4 + 2-byte little-endian
// port) socket address at off, the same "documented offset" encoding
// Navico and Garmin beacons use to embed their data/report/send triples.
func readAddr(data []byte, off int) (radar.Addr, bool) {
	if off < 0 || off+6 > len(data) {
		return radar.Addr{}, false
	}
	ip := fmt.Sprintf("%d.%d.%d.%d", data[off], data[off+1], data[off+2], data[off+3])
	port := int(binary.LittleEndian.Uint16(data[off+4 : off+6]))
	return radar.Addr{IP: ip, Port: port}, true
}

// tripleLen is the wire width of one (data, report, send) EndpointTriple:
// three 6-byte addresses.
const tripleLen = 18

// readTriple reads a (data, report, send) EndpointTriple at off.
func readTriple(data []byte, off int) (radar.EndpointTriple, bool) {
	d, ok1 := readAddr(data, off)
	r, ok2 := readAddr(data, off+6)
	s, ok3 := readAddr(data, off+12)
	if !ok1 || !ok2 || !ok3 {
		return radar.EndpointTriple{}, false
	}
	return radar.EndpointTriple{Data: d, Report: r, Send: s}, true
}

// nullTerminated trims b at its first NUL byte, for fixed-width ASCII
// fields (device/model name) padded with zeros.
func nullTerminated(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// macSerial formats a 6-byte MAC-like field as the lowercase hex serial
// string Navico/Raymarine beacons carry in place of a printed serial
// number.
func macSerial(mac []byte) string {
	return fmt.Sprintf("%02x%02x%02x%02x%02x%02x", mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}
