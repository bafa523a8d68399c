package modeldb

import "github.com/mayara-radar/mayara/radar/controldefs"

var furunoModels = map[string]ModelEntry{
	"DRS4D-NXT": {
		Family:              "DRS-NXT",
		SpokesPerRevolution: 2048,
		PixelDepth:          4,
		MaxRangeMeters:      111_120, // 60 nm
		HasDoppler:          false,
		HasDualScan:         true,
		ExtraControls: []string{
			controldefs.MainBangSize, controldefs.AntennaHeight, controldefs.ScanSpeed,
			controldefs.NoTransmitSector1, controldefs.NoTransmitSector2,
			controldefs.NoiseRej, controldefs.TXChannel, controldefs.BirdMode,
			controldefs.RezBoost, controldefs.TargetAnalyzer, controldefs.AutoAcquire,
		},
	},
	"DRS6A-NXT": {
		Family:              "DRS-NXT",
		SpokesPerRevolution: 2048,
		PixelDepth:          4,
		MaxRangeMeters:      222_240, // 120 nm
		HasDoppler:          false,
		HasDualScan:         true,
		ExtraControls: []string{
			controldefs.MainBangSize, controldefs.AntennaHeight, controldefs.ScanSpeed,
			controldefs.NoTransmitSector1, controldefs.NoTransmitSector2,
			controldefs.NoiseRej, controldefs.TXChannel, controldefs.BirdMode,
			controldefs.RezBoost, controldefs.TargetAnalyzer, controldefs.AutoAcquire,
		},
	},
	"FAR-2xx8": {
		Family:              "FAR-series",
		SpokesPerRevolution: 4096,
		PixelDepth:          4,
		MaxRangeMeters:      222_240,
		HasDoppler:          false,
		HasDualScan:         false,
		ExtraControls: []string{
			controldefs.MainBangSize, controldefs.AntennaHeight, controldefs.ScanSpeed,
			controldefs.NoTransmitSector1, controldefs.NoTransmitSector2,
			controldefs.NoiseRej,
		},
	},
}
