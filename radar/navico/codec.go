package navico

import "encoding/binary"

// reportHeader returns the report's leading command byte if data looks
// like a well-formed "{type} C4" report, and false otherwise — callers
// discard anything that fails this check without touching
// NormalizedState.
func reportHeader(data []byte) (reportType byte, ok bool) {
	if len(data) < 2 || data[1] != 0xC4 {
		return 0, false
	}
	return data[0], true
}

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

func utf16leString(b []byte, off, maxLen int) (string, bool) {
	if off < 0 || off+maxLen > len(b) {
		return "", false
	}
	chunk := b[off : off+maxLen]
	var runes []rune
	for i := 0; i+1 < len(chunk); i += 2 {
		v := binary.LittleEndian.Uint16(chunk[i : i+2])
		if v == 0 {
			break
		}
		runes = append(runes, rune(v))
	}
	return string(runes), true
}

// --- Command encoders ---

// stayAliveBurst is the periodic keep-alive sent to the send address
// while Listening or Connected.
func stayAliveBurst() [][]byte {
	return [][]byte{
		{0xA0, 0xC1},
		{0x03, 0xC2},
		{0x04, 0xC2},
		{0x05, 0xC2},
		{0x0A, 0xC2},
	}
}

// buildPowerFrames is the two-step power command: the first frame is a
// fixed preparation message, the second carries the desired on/off state.
// Standby and Transmit both map to "on" at the wire level — Navico has no
// separate wire-level standby toggle in this command set.
func buildPowerFrames(status int) [][]byte {
	on := byte(0)
	if status != 0 {
		on = 1
	}
	return [][]byte{
		{0x00, 0xC1, 0x01},
		{0x01, 0xC1, on},
	}
}

func buildRange(meters float64) []byte {
	dm := metersToDecimeters(meters)
	frame := make([]byte, 6)
	frame[0], frame[1] = 0x03, 0xC1
	binary.LittleEndian.PutUint32(frame[2:], uint32(dm))
	return frame
}

func buildGain(auto bool, value byte) []byte {
	frame := make([]byte, 11)
	frame[0], frame[1] = 0x06, 0xC1
	// bytes 2-5 are a fixed zero prefix the radar expects ahead of the
	// LE u32 auto flag at 6-9.
	if auto {
		binary.LittleEndian.PutUint32(frame[6:], 1)
	}
	frame[10] = value
	return frame
}

// buildSeaMode/buildSeaManual encode the HALO sea-clutter command family:
// mode toggle or manual value.
func buildSeaMode(auto bool) []byte {
	v := byte(0)
	if auto {
		v = 1
	}
	return []byte{0x11, 0xC1, v, 0x00, 0x00, 0x01}
}

func buildSeaManual(value byte) []byte {
	return []byte{0x11, 0xC1, 0x00, value, value, 0x02}
}

// buildRain encodes rain clutter as a single auto-flag-plus-value frame:
// one auto byte and one value byte, without buildGain's zero prefix and
// u32 auto flag — unlike sea clutter, rain has no separate
// auto-adjust offset in this command set.
func buildRain(auto bool, value byte) []byte {
	a := byte(0)
	if auto {
		a = 1
	}
	return []byte{0x07, 0xC1, a, value}
}

func buildIR(value byte) []byte {
	return []byte{0x12, 0xC1, value}
}

func buildNoiseRej(value byte) []byte {
	return []byte{0x13, 0xC1, value}
}

func buildLocalIR(value byte) []byte {
	return []byte{0x14, 0xC1, value}
}

func buildTargetSeparation(value byte) []byte {
	return []byte{0x15, 0xC1, value}
}

func buildTargetBoost(value byte) []byte {
	return []byte{0x16, 0xC1, value}
}

func buildTargetExpansion(level byte) []byte {
	return []byte{0x17, 0xC1, level}
}

func buildScanSpeed(value byte) []byte {
	return []byte{0x18, 0xC1, value}
}

func buildSidelobeSuppression(auto bool, value byte) []byte {
	a := byte(0)
	if auto {
		a = 1
	}
	return []byte{0x19, 0xC1, a, value}
}

func buildHaloAccentLight(value byte) []byte {
	return []byte{0x1A, 0xC1, value}
}

func buildDopplerMode(value byte) []byte {
	return []byte{0x1B, 0xC1, value}
}

func buildDopplerSpeedThreshold(knots uint16) []byte {
	frame := make([]byte, 4)
	frame[0], frame[1] = 0x1C, 0xC1
	binary.LittleEndian.PutUint16(frame[2:4], knots)
	return frame
}

func buildBearingAlignment(wire uint16) []byte {
	frame := make([]byte, 4)
	frame[0], frame[1] = 0x1D, 0xC1
	binary.LittleEndian.PutUint16(frame[2:4], wire)
	return frame
}

func buildAntennaHeight(heightMM uint16) []byte {
	frame := make([]byte, 4)
	frame[0], frame[1] = 0x1E, 0xC1
	binary.LittleEndian.PutUint16(frame[2:4], heightMM)
	return frame
}

// buildBlankingSector encodes one of the four no-transmit sectors report06
// decodes (applyBlankingReport): idx selects the sector, start/end are the
// same raw wire units (degrees x10) the report carries at offsets
// off+1/off+3.
func buildBlankingSector(idx byte, enabled bool, start, end uint16) []byte {
	frame := make([]byte, 8)
	frame[0], frame[1] = 0x20, 0xC1
	frame[2] = idx
	if enabled {
		frame[3] = 1
	}
	binary.LittleEndian.PutUint16(frame[4:6], start)
	binary.LittleEndian.PutUint16(frame[6:8], end)
	return frame
}

// buildGuardZoneToggle enables/disables the two guard zones in one frame.
func buildGuardZoneToggle(gz1Enabled, gz2Enabled bool) []byte {
	e1, e2 := byte(0), byte(0)
	if gz1Enabled {
		e1 = 1
	}
	if gz2Enabled {
		e2 = 1
	}
	return []byte{0x90, 0xC1, 0x01, 0x00, e1, e2}
}

// buildGuardZoneGeometry encodes one guard zone's (inner, outer, bearing,
// width) geometry. idx is 0 or 1. A width of 3599 means full-circle.
func buildGuardZoneGeometry(idx byte, gz GuardZone) []byte {
	frame := make([]byte, 18)
	frame[0], frame[1], frame[2] = 0x90, 0xC1, 0x02
	frame[3] = idx
	binary.LittleEndian.PutUint32(frame[6:10], uint32(gz.InnerMeters))
	binary.LittleEndian.PutUint32(frame[10:14], uint32(gz.OuterMeters))
	binary.LittleEndian.PutUint16(frame[14:16], uint16(gz.BearingDeg))
	binary.LittleEndian.PutUint16(frame[16:18], uint16(gz.WidthDeg))
	return frame
}
