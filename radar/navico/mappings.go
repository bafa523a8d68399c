package navico

import "math"

// rangeMetersFromDecimeters converts report02's range field (u32 LE
// decimeters) to meters; the same unit the range command sends on the
// wire as an LE i32.
func rangeMetersFromDecimeters(decimeters uint32) float64 {
	return float64(decimeters) / 10.0
}

func metersToDecimeters(meters float64) int32 {
	return int32(math.Round(meters * 10))
}

// PercentToByte/ByteToPercent mirror Furuno's percent<->byte mapping:
// a UI value of 50 maps to wire byte 0x80.
func PercentToByte(percent float64) byte {
	v := int(math.Round(percent * 255 / 100))
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}

func ByteToPercent(b byte) float64 {
	return float64(b) * 100 / 255
}

// HeadingUIToWire/HeadingWireToUI: bearing alignment is reported as an
// unsigned 0..3599 wire value with wraparound — negative UI degrees
// fold back into range via (3600 + v) % 3600.
func HeadingUIToWire(deg float64) uint16 {
	wire := int(math.Round(deg*10)) % 3600
	wire = ((wire % 3600) + 3600) % 3600
	return uint16(wire)
}

func HeadingWireToUI(wire uint16) float64 {
	w := int(wire)
	if w < 1800 {
		return float64(w) / 10.0
	}
	return float64(w-3600) / 10.0
}

// GuardZone is the UI-facing view of one guard zone's `90 C1 02`
// geometry command. WidthDeg == 3599 means full-circle.
type GuardZone struct {
	InnerMeters float64
	OuterMeters float64
	BearingDeg  int
	WidthDeg    int
}

// packGuardZone/unpackGuardZone carry a GuardZone through ControlValue's
// single float64 Value field by bit-packing the four integer fields into
// a uint64 and reinterpreting it as a float64 bit pattern (an exact,
// lossless round trip — math.Float64frombits/Float64bits never normalize
// or canonicalize, unlike an arithmetic float conversion would).
func packGuardZone(gz GuardZone) float64 {
	inner := uint64(gz.InnerMeters) & 0x1FFFF // 17 bits: up to 131071 m
	outer := uint64(gz.OuterMeters) & 0x1FFFF
	bearing := uint64(gz.BearingDeg) & 0xFFF // 12 bits: up to 4095 deci-free degrees
	width := uint64(gz.WidthDeg) & 0xFFF
	packed := inner<<41 | outer<<24 | bearing<<12 | width
	return math.Float64frombits(packed)
}

func unpackGuardZone(v float64) GuardZone {
	packed := math.Float64bits(v)
	return GuardZone{
		InnerMeters: float64((packed >> 41) & 0x1FFFF),
		OuterMeters: float64((packed >> 24) & 0x1FFFF),
		BearingDeg:  int((packed >> 12) & 0xFFF),
		WidthDeg:    int(packed & 0xFFF),
	}
}

// packBlankingSector/unpackBlankingSector carry a no-transmit sector's
// (start, end) wire pair through ControlValue's single float64 Value
// field, the same decimal-packing applyBlankingReport uses to decode
// report06: start is always worth 10000 units, so it round-trips exactly
// for any end < 10000 (the full 0..3599 degrees-x10 wire range).
func packBlankingSector(start, end uint16) float64 {
	return float64(start)*10000 + float64(end)
}

func unpackBlankingSector(v float64) (start, end uint16) {
	s := uint16(v / 10000)
	return s, uint16(v - float64(s)*10000)
}
