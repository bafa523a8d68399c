package raymarine

import "math"

// PercentToByte/ByteToPercent mirror Navico's scaling for this brand's own
// 0-255 wire range; kept as a brand-local copy rather than a shared helper,
// matching how Furuno and Navico each carry their own value-mapping file.
func PercentToByte(percent float64) byte {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return byte(math.Round(percent * 255.0 / 100.0))
}

func ByteToPercent(b byte) float64 {
	return float64(b) * 100.0 / 255.0
}

// HeadingUIToWire/HeadingWireToUI carry a UI degree value (-180..179.9) as
// a 0.1-degree wire unit in [0, 3599], wrapping negative angles the same
// way Navico's heading wire format does.
func HeadingUIToWire(deg float64) uint16 {
	wire := int(math.Round(deg * 10))
	wire %= 3600
	if wire < 0 {
		wire += 3600
	}
	return uint16(wire)
}

func HeadingWireToUI(wire uint16) float64 {
	deg := float64(wire) / 10.0
	if deg >= 180 {
		deg -= 360
	}
	return deg
}

// antennaHeightMetersToDecimeters/decimetersToMeters encode AntennaHeight's
// 0.1 m step directly as a u16 wire word.
func antennaHeightMetersToDecimeters(meters float64) uint16 {
	return uint16(math.Round(meters * 10))
}

func antennaHeightDecimetersToMeters(wire uint16) float64 {
	return float64(wire) / 10.0
}

// GuardZone is this brand's own compound geometry value, packed the same
// bit-exact way as Navico's to avoid decimal-digit-packing precision loss
// across its four fields (two distances plus bearing and width).
type GuardZone struct {
	InnerMeters, OuterMeters float64
	BearingDeg, WidthDeg     int
}

func packGuardZone(gz GuardZone) float64 {
	inner := uint64(gz.InnerMeters) & 0x1FFFF
	outer := uint64(gz.OuterMeters) & 0x1FFFF
	bearing := uint64(gz.BearingDeg) & 0xFFF
	width := uint64(gz.WidthDeg) & 0xFFF
	bits := inner<<41 | outer<<24 | bearing<<12 | width
	return math.Float64frombits(bits)
}

func unpackGuardZone(v float64) GuardZone {
	bits := math.Float64bits(v)
	return GuardZone{
		InnerMeters: float64((bits >> 41) & 0x1FFFF),
		OuterMeters: float64((bits >> 24) & 0x1FFFF),
		BearingDeg:  int((bits >> 12) & 0xFFF),
		WidthDeg:    int(bits & 0xFFF),
	}
}

// guardZoneDistanceToDecameters/decametersToDistance encode the two guard
// zone distances (up to ~74 km) as a u16 wire word in units of 10 m.
func guardZoneDistanceToDecameters(meters float64) uint16 {
	return uint16(math.Round(meters / 10.0))
}

func decametersToGuardZoneDistance(wire uint16) float64 {
	return float64(wire) * 10.0
}
