package modeldb

import "github.com/mayara-radar/mayara/radar/controldefs"

var garminModels = map[string]ModelEntry{
	"GMR18": {
		Family:              "GMR",
		SpokesPerRevolution: 1024,
		PixelDepth:          2,
		MaxRangeMeters:      37_040,
		ExtraControls:       []string{controldefs.GuardZone, controldefs.TimedIdle},
	},
	"GMR24": {
		Family:              "GMR",
		SpokesPerRevolution: 1024,
		PixelDepth:          2,
		MaxRangeMeters:      74_080,
		ExtraControls:       []string{controldefs.GuardZone, controldefs.TimedIdle},
	},
	"Fantom": {
		Family:              "Fantom",
		SpokesPerRevolution: 2048,
		PixelDepth:          4,
		MaxRangeMeters:      111_120,
		ExtraControls:       []string{controldefs.GuardZone, controldefs.TimedIdle, controldefs.AntennaHeight},
	},
}
