package furuno

import "math"

// Round-trippable value mappings between UI units and wire encodings.

// HeadingUIToWire converts a signed UI degree value (-180..+179.9) to the
// wire deci-degree representation in [0, 3599].
func HeadingUIToWire(deg float64) int {
	wire := int(math.Round(deg*10)) % 3600
	wire = ((wire % 3600) + 3600) % 3600
	return wire
}

// HeadingWireToUI is the exact inverse of HeadingUIToWire for every
// w in [0, 3599]: HeadingUIToWire(HeadingWireToUI(w)) == w.
func HeadingWireToUI(wire int) float64 {
	if wire < 1800 {
		return float64(wire) / 10.0
	}
	return float64(wire-3600) / 10.0
}

// PercentToWire converts a 0..100 main-bang percentage to its wire byte.
func PercentToWire(percent float64) int {
	v := int(math.Round(percent * 255 / 100))
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return v
}

// WireToPercent is PercentToWire's inverse, accurate to within 1 unit:
// abs(wireToPercent(percentToWire(p)) - p) < 1.
func WireToPercent(wire int) float64 {
	return float64(wire) * 100 / 255
}

// BlindSector is the UI-facing (start, end, enabled) view of a no-transmit
// sector; the wire form is (start, width).
type BlindSector struct {
	StartDeg int
	EndDeg   int
	Enabled  bool
}

// BlindSectorToWire converts a BlindSector to its wire (start, width) pair.
// A disabled sector is width 0.
func BlindSectorToWire(s BlindSector) (start, width int) {
	if !s.Enabled {
		return normalizeDeg(s.StartDeg), 0
	}
	start = normalizeDeg(s.StartDeg)
	width = normalizeDeg(s.EndDeg-s.StartDeg) % 360
	if width < 0 {
		width += 360
	}
	return start, width
}

// BlindSectorFromWire is the inverse: identity with BlindSectorToWire when
// width > 0. width == 0 means disabled.
func BlindSectorFromWire(start, width int) BlindSector {
	if width <= 0 {
		return BlindSector{StartDeg: normalizeDeg(start), Enabled: false}
	}
	return BlindSector{
		StartDeg: normalizeDeg(start),
		EndDeg:   normalizeDeg(start + width),
		Enabled:  true,
	}
}

func normalizeDeg(d int) int {
	d %= 360
	if d < 0 {
		d += 360
	}
	return d
}

// rangeTableEntry is one (wire index, meters) row of a model's range table.
// Furuno's range table is non-monotone — e.g. 1/16 nm lives at wire index
// 21 while 36 nm lives at index 19 — so lookup is a table scan, never
// arithmetic.
type rangeTableEntry struct {
	Index  int
	Meters float64
}

const nmInMeters = 1852.0

// defaultRangeTable is shared across the DRS/FAR model line; indices 4,
// 19 and 21 are pinned exactly to 1 nm, 36 nm, and 1/16 nm respectively;
// the rest of the
// table fills in the documented non-monotone ordering of a typical
// Furuno range dial.
var defaultRangeTable = []rangeTableEntry{
	{0, 0.125 * nmInMeters},
	{1, 0.25 * nmInMeters},
	{2, 0.5 * nmInMeters},
	{3, 0.75 * nmInMeters},
	{4, 1 * nmInMeters},
	{5, 1.5 * nmInMeters},
	{6, 2 * nmInMeters},
	{7, 3 * nmInMeters},
	{8, 4 * nmInMeters},
	{9, 6 * nmInMeters},
	{10, 8 * nmInMeters},
	{11, 12 * nmInMeters},
	{12, 16 * nmInMeters},
	{13, 24 * nmInMeters},
	{14, 32 * nmInMeters},
	{15, 48 * nmInMeters},
	{16, 64 * nmInMeters},
	{17, 72 * nmInMeters},
	{18, 96 * nmInMeters},
	{19, 36 * nmInMeters},
	{20, 120 * nmInMeters},
	{21, 1.0 / 16.0 * nmInMeters},
	{22, 0.1875 * nmInMeters},
	{23, 0.375 * nmInMeters},
}

// RangeIndexForMeters finds the table entry whose meter value is closest
// to meters and returns its wire index.
func RangeIndexForMeters(meters float64) int {
	best := defaultRangeTable[0]
	bestDiff := math.Abs(best.Meters - meters)
	for _, e := range defaultRangeTable[1:] {
		d := math.Abs(e.Meters - meters)
		if d < bestDiff {
			best, bestDiff = e, d
		}
	}
	return best.Index
}

// RangeMetersForIndex is the inverse lookup.
func RangeMetersForIndex(index int) (float64, bool) {
	for _, e := range defaultRangeTable {
		if e.Index == index {
			return e.Meters, true
		}
	}
	return 0, false
}
