package garmin

import "encoding/binary"

// Garmin's wire protocol is a small-packet request/report format: every
// datagram opens with a 2-byte LE command id.
const (
	cmdScannerInfo = 0x099b // ScannerMessage: carries the explicit model string
	cmdStatus      = 0x0001
	cmdRange       = 0x0003
	cmdGain        = 0x0006
	cmdSea         = 0x0007
	cmdRain        = 0x0008
	cmdBearing     = 0x000A
	cmdAntenna     = 0x000B
	cmdGuardZone   = 0x000C
	cmdTimedIdle   = 0x000D
)

func u8(b []byte, off int) (byte, bool) {
	if off < 0 || off >= len(b) {
		return 0, false
	}
	return b[off], true
}

func u16le(b []byte, off int) (uint16, bool) {
	if off < 0 || off+2 > len(b) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b[off : off+2]), true
}

func u32le(b []byte, off int) (uint32, bool) {
	if off < 0 || off+4 > len(b) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b[off : off+4]), true
}

func commandID(data []byte) (uint16, bool) {
	return u16le(data, 0)
}

// buildFrame encodes one request/set datagram: a 2-byte LE command id
// followed by its payload.
func buildFrame(cmd uint16, payload ...byte) []byte {
	frame := make([]byte, 2, 2+len(payload))
	binary.LittleEndian.PutUint16(frame, cmd)
	return append(frame, payload...)
}

// statusRequestFrame is the periodic keep-alive: a bare status command
// with no payload.
func statusRequestFrame() []byte {
	return buildFrame(cmdStatus)
}

func buildRangeFrame(meters float64) []byte {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, uint32(meters))
	return buildFrame(cmdRange, payload...)
}

func buildGainFrame(auto bool, value byte) []byte {
	a := byte(0)
	if auto {
		a = 1
	}
	return buildFrame(cmdGain, a, value)
}

func buildSeaFrame(auto bool, value byte) []byte {
	a := byte(0)
	if auto {
		a = 1
	}
	return buildFrame(cmdSea, a, value)
}

func buildRainFrame(value byte) []byte {
	return buildFrame(cmdRain, value)
}

func buildBearingFrame(wire uint16) []byte {
	payload := make([]byte, 2)
	binary.LittleEndian.PutUint16(payload, wire)
	return buildFrame(cmdBearing, payload...)
}

func buildAntennaHeightFrame(decimeters uint16) []byte {
	payload := make([]byte, 2)
	binary.LittleEndian.PutUint16(payload, decimeters)
	return buildFrame(cmdAntenna, payload...)
}

func buildTimedIdleFrame(minutes byte) []byte {
	return buildFrame(cmdTimedIdle, minutes)
}

// buildGuardZoneFrame packs the whole guard zone (geometry + enable) into
// one request — unlike Navico/Raymarine, Garmin has only one guard zone
// and no separate geometry/toggle split.
func buildGuardZoneFrame(gz GuardZone, enabled bool) []byte {
	payload := make([]byte, 9)
	binary.LittleEndian.PutUint16(payload[0:], uint16(gz.InnerMeters/10))
	binary.LittleEndian.PutUint16(payload[2:], uint16(gz.OuterMeters/10))
	binary.LittleEndian.PutUint16(payload[4:], uint16(gz.BearingDeg))
	binary.LittleEndian.PutUint16(payload[6:], uint16(gz.WidthDeg))
	if enabled {
		payload[8] = 1
	}
	return buildFrame(cmdGuardZone, payload...)
}
