package raymarine

import "encoding/binary"

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

// stayAliveFrame is the periodic keep-alive request sent while Listening
// or Connected.
func stayAliveFrame() []byte {
	return []byte{0x00, 0xC1, 0xFF, 0xFF, 0x00}
}

// buildQuantumFrame encodes one Quantum command: fixed prefix, then a
// one- or two-byte little-endian value.
func buildQuantumFrame(op quantumOp, value uint16) []byte {
	frame := []byte{op.opLo, op.opHi, 0x28, 0x00, 0x00}
	if op.shape == shapeOneByte {
		return append(frame, byte(value))
	}
	valueBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(valueBytes, value)
	return append(frame, valueBytes...)
}

// buildRDFrame encodes one RD command: fixed prefix, lead bytes, the
// value payload, and a trailing zero terminator byte.
func buildRDFrame(op rdOp, valueBytes []byte) []byte {
	frame := []byte{0x00, 0xC1, op.lead1, op.lead2}
	frame = append(frame, valueBytes...)
	return append(frame, 0x00)
}

func rdStandardValue(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func rdOnOffValue(on bool) []byte {
	if on {
		return []byte{0x01}
	}
	return []byte{0x00}
}

// buildQuantumGuardZoneFrames encodes a guard zone as a geometry frame
// (lead byte selects zone 0/1) followed by an enable-toggle frame.
func buildQuantumGuardZoneFrames(idx byte, gz GuardZone, enabled bool) [][]byte {
	geom := []byte{0x0C + idx, 0x00, 0x28, 0x00, 0x00}
	geom = appendU16(geom, guardZoneDistanceToDecameters(gz.InnerMeters))
	geom = appendU16(geom, guardZoneDistanceToDecameters(gz.OuterMeters))
	geom = appendU16(geom, uint16(gz.BearingDeg))
	geom = appendU16(geom, uint16(gz.WidthDeg))
	on := byte(0)
	if enabled {
		on = 1
	}
	toggle := []byte{0x10 + idx, 0x00, 0x28, 0x00, 0x00, on}
	return [][]byte{geom, toggle}
}

// buildRDGuardZoneFrames is RD's equivalent: one geometry frame (4 u16
// fields, matching the Quantum wire units for this brand) and one on_off
// toggle frame.
func buildRDGuardZoneFrames(idx byte, gz GuardZone, enabled bool) [][]byte {
	geomValue := appendU16(nil, guardZoneDistanceToDecameters(gz.InnerMeters))
	geomValue = appendU16(geomValue, guardZoneDistanceToDecameters(gz.OuterMeters))
	geomValue = appendU16(geomValue, uint16(gz.BearingDeg))
	geomValue = appendU16(geomValue, uint16(gz.WidthDeg))
	geom := buildRDFrame(rdOp{lead1: 0x09 + idx, lead2: 0x00, kind: rdKindStandard}, geomValue)
	toggle := buildRDFrame(rdOp{lead1: 0x0B + idx, lead2: 0x00, kind: rdKindOnOff}, rdOnOffValue(enabled))
	return [][]byte{geom, toggle}
}

func appendU16(b []byte, v uint16) []byte {
	tmp := make([]byte, 2)
	binary.LittleEndian.PutUint16(tmp, v)
	return append(b, tmp...)
}
