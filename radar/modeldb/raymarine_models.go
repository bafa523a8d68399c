package modeldb

import "github.com/mayara-radar/mayara/radar/controldefs"

var raymarineModels = map[string]ModelEntry{
	"RD": {
		Family:              "RD",
		SpokesPerRevolution: 1024,
		PixelDepth:          2,
		MaxRangeMeters:      74_080,
		ExtraControls: []string{
			controldefs.AntennaHeight, controldefs.GuardZone1, controldefs.GuardZone2,
		},
	},
	"Quantum": {
		Family:              "Quantum",
		SpokesPerRevolution: 2048,
		PixelDepth:          4,
		MaxRangeMeters:      37_040, // 20 nm
		ExtraControls: []string{
			controldefs.AntennaHeight, controldefs.GuardZone1, controldefs.GuardZone2,
		},
	},
	"Quantum2": {
		Family:              "Quantum 2",
		SpokesPerRevolution: 2048,
		PixelDepth:          4,
		MaxRangeMeters:      37_040,
		HasDoppler:          true,
		ExtraControls: []string{
			controldefs.AntennaHeight, controldefs.GuardZone1, controldefs.GuardZone2,
			controldefs.DopplerMode, controldefs.DopplerSpeedThreshold,
		},
	},
	"Cyclone": {
		Family:              "Cyclone",
		SpokesPerRevolution: 4096,
		PixelDepth:          8,
		MaxRangeMeters:      74_080,
		HasDoppler:          true,
		ExtraControls: []string{
			controldefs.AntennaHeight, controldefs.GuardZone1, controldefs.GuardZone2,
			controldefs.DopplerMode, controldefs.DopplerSpeedThreshold,
		},
	},
}
