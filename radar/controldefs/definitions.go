// Package controldefs authors the normalized control vocabulary exactly
// once. Brand controllers and the model database only ever reference
// these by ID; adding a control to a model entry (radar/modeldb) is the
// sole code path required to expose it through the capability manifest.
package controldefs

import "github.com/mayara-radar/mayara/radar"

// Control IDs. These are the stable strings hosts persist and the
// capability manifest lists.
const (
	Power     = "power" // tri-state status: off/standby/transmit (+warming)
	Range     = "range"
	Gain      = "gain"
	Sea       = "sea"
	Rain      = "rain"
	IR        = "interferenceRejection"
	LocalIR   = "localInterferenceRejection" // Navico Report08 "local IR", distinct source from IR
	NoiseRej  = "noiseRejection"

	BearingAlignment = "bearingAlignment"
	AntennaHeight    = "antennaHeight"
	MainBangSize     = "mainBangSize"
	ScanSpeed        = "scanSpeed"

	NoTransmitSector1 = "noTransmitSector1"
	NoTransmitSector2 = "noTransmitSector2"

	TargetExpansion = "targetExpansion"
	TargetBoost     = "targetBoost"
	TargetSeparation = "targetSeparation"

	GuardZone1 = "guardZone1"
	GuardZone2 = "guardZone2"
	GuardZone  = "guardZone" // Garmin's single, simpler guard zone

	BlankingSector1 = "blankingSector1"
	BlankingSector2 = "blankingSector2"
	BlankingSector3 = "blankingSector3"
	BlankingSector4 = "blankingSector4"

	HaloAccentLight   = "haloAccentLight"
	SidelobeSuppression = "sidelobeSuppression"
	DopplerMode         = "dopplerMode"
	DopplerSpeedThreshold = "dopplerSpeedThreshold"

	TXChannel      = "txChannel"
	BirdMode       = "birdMode"
	RezBoost       = "rezBoost"
	TargetAnalyzer = "targetAnalyzer"
	AutoAcquire    = "autoAcquire"

	TimedIdle = "timedIdle"
)

// DopplerMode enum values.
const (
	DopplerOff = iota
	DopplerApproaching
	DopplerReceding
	DopplerBoth
)

var all = map[string]radar.ControlDefinition{
	Power: {
		ID: Power, DisplayName: "Transmit state", Kind: radar.EnumKind,
		EnumLabels: map[int]string{int(radar.Off): "off", int(radar.Standby): "standby", int(radar.Transmit): "transmit", int(radar.Warming): "warming"},
	},
	Range: {
		ID: Range, DisplayName: "Range", Kind: radar.RangedInteger,
		Min: 0, Max: 72_000, Step: 1,
	},
	Gain: {
		ID: Gain, DisplayName: "Gain", Kind: radar.RangedInteger,
		Min: 0, Max: 100, Step: 1, Flags: radar.ControlFlags{HasAuto: true},
	},
	Sea: {
		ID: Sea, DisplayName: "Sea clutter", Kind: radar.RangedInteger,
		Min: 0, Max: 100, Step: 1, Flags: radar.ControlFlags{HasAuto: true, HasAutoAdjust: true},
	},
	Rain: {
		ID: Rain, DisplayName: "Rain clutter", Kind: radar.RangedInteger,
		Min: 0, Max: 100, Step: 1, Flags: radar.ControlFlags{HasAuto: true},
	},
	IR: {
		ID: IR, DisplayName: "Interference rejection", Kind: radar.RangedInteger,
		Min: 0, Max: 3, Step: 1,
	},
	LocalIR: {
		ID: LocalIR, DisplayName: "Local interference rejection", Kind: radar.RangedInteger,
		Min: 0, Max: 3, Step: 1,
	},
	NoiseRej: {
		ID: NoiseRej, DisplayName: "Noise rejection", Kind: radar.RangedInteger,
		Min: 0, Max: 3, Step: 1,
	},
	BearingAlignment: {
		ID: BearingAlignment, DisplayName: "Bearing alignment", Kind: radar.RangedInteger,
		Min: -180, Max: 179.9, Step: 0.1, Flags: radar.ControlFlags{Installation: true},
	},
	AntennaHeight: {
		ID: AntennaHeight, DisplayName: "Antenna height", Kind: radar.RangedInteger,
		Min: 0, Max: 100, Step: 0.1, Flags: radar.ControlFlags{Installation: true},
	},
	MainBangSize: {
		ID: MainBangSize, DisplayName: "Main bang suppression", Kind: radar.RangedInteger,
		Min: 0, Max: 100, Step: 1, Flags: radar.ControlFlags{Installation: true},
	},
	ScanSpeed: {
		ID: ScanSpeed, DisplayName: "Scan speed", Kind: radar.EnumKind,
		EnumLabels: map[int]string{0: "normal", 1: "fast"},
	},
	NoTransmitSector1: {
		ID: NoTransmitSector1, DisplayName: "No-transmit sector 1", Kind: radar.Compound,
		Flags: radar.ControlFlags{Installation: true},
	},
	NoTransmitSector2: {
		ID: NoTransmitSector2, DisplayName: "No-transmit sector 2", Kind: radar.Compound,
		Flags: radar.ControlFlags{Installation: true},
	},
	TargetExpansion: {
		ID: TargetExpansion, DisplayName: "Target expansion", Kind: radar.Boolean,
	},
	TargetBoost: {
		ID: TargetBoost, DisplayName: "Target boost", Kind: radar.RangedInteger,
		Min: 0, Max: 2, Step: 1,
	},
	TargetSeparation: {
		ID: TargetSeparation, DisplayName: "Target separation", Kind: radar.RangedInteger,
		Min: 0, Max: 3, Step: 1,
	},
	GuardZone1: {ID: GuardZone1, DisplayName: "Guard zone 1", Kind: radar.Compound},
	GuardZone2: {ID: GuardZone2, DisplayName: "Guard zone 2", Kind: radar.Compound},
	GuardZone:  {ID: GuardZone, DisplayName: "Guard zone", Kind: radar.Compound},
	BlankingSector1: {ID: BlankingSector1, DisplayName: "Blanking sector 1", Kind: radar.Compound},
	BlankingSector2: {ID: BlankingSector2, DisplayName: "Blanking sector 2", Kind: radar.Compound},
	BlankingSector3: {ID: BlankingSector3, DisplayName: "Blanking sector 3", Kind: radar.Compound},
	BlankingSector4: {ID: BlankingSector4, DisplayName: "Blanking sector 4", Kind: radar.Compound},
	HaloAccentLight: {
		ID: HaloAccentLight, DisplayName: "HALO accent light", Kind: radar.RangedInteger,
		Min: 0, Max: 255, Step: 1, Flags: radar.ControlFlags{Installation: true},
	},
	SidelobeSuppression: {
		ID: SidelobeSuppression, DisplayName: "Sidelobe suppression", Kind: radar.RangedInteger,
		Min: 0, Max: 100, Step: 1, Flags: radar.ControlFlags{HasAuto: true},
	},
	DopplerMode: {
		ID: DopplerMode, DisplayName: "Doppler mode", Kind: radar.EnumKind,
		EnumLabels: map[int]string{DopplerOff: "off", DopplerApproaching: "approaching", DopplerReceding: "receding", DopplerBoth: "both"},
	},
	DopplerSpeedThreshold: {
		ID: DopplerSpeedThreshold, DisplayName: "Doppler speed threshold", Kind: radar.RangedInteger,
		Min: 0, Max: 300, Step: 1,
	},
	TXChannel: {
		ID: TXChannel, DisplayName: "TX channel", Kind: radar.EnumKind,
		EnumLabels: map[int]string{0: "A", 1: "B"},
	},
	BirdMode: {
		ID: BirdMode, DisplayName: "Bird mode", Kind: radar.RangedInteger,
		Min: 0, Max: 3, Step: 1,
	},
	RezBoost: {
		ID: RezBoost, DisplayName: "RezBoost", Kind: radar.RangedInteger,
		Min: 0, Max: 2, Step: 1,
	},
	TargetAnalyzer: {
		ID: TargetAnalyzer, DisplayName: "Target analyzer", Kind: radar.Compound,
	},
	AutoAcquire: {
		ID: AutoAcquire, DisplayName: "Auto-acquire", Kind: radar.Boolean, Flags: radar.ControlFlags{WriteOnly: true},
	},
	TimedIdle: {
		ID: TimedIdle, DisplayName: "Timed idle", Kind: radar.RangedInteger,
		Min: 0, Max: 120, Step: 1,
	},
}

// Get returns the authored definition for id.
func Get(id string) (radar.ControlDefinition, bool) {
	d, ok := all[id]
	return d, ok
}

// MustGet panics if id was never authored; model entries are static data
// so this is only ever reached by a programming error in modeldb.
func MustGet(id string) radar.ControlDefinition {
	d, ok := all[id]
	if !ok {
		panic("controldefs: unknown control id " + id)
	}
	return d
}

// All returns every authored control id, unordered.
func All() []string {
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	return ids
}
