package modeldb

import "github.com/mayara-radar/mayara/radar/controldefs"

var navicoModels = map[string]ModelEntry{
	"BR24": {
		Family:              "BR24",
		SpokesPerRevolution: 2048,
		PixelDepth:          2,
		MaxRangeMeters:      74_080, // 40 nm
		HasDualScan:         false,
		ExtraControls: []string{
			controldefs.AntennaHeight,
			controldefs.GuardZone1, controldefs.GuardZone2,
			controldefs.BlankingSector1, controldefs.BlankingSector2,
			controldefs.BlankingSector3, controldefs.BlankingSector4,
		},
	},
	"3G": {
		Family:              "3G",
		SpokesPerRevolution: 2048,
		PixelDepth:          4,
		MaxRangeMeters:      111_120,
		HasDualScan:         false,
		ExtraControls: []string{
			controldefs.AntennaHeight, controldefs.TargetExpansion, controldefs.TargetBoost,
			controldefs.GuardZone1, controldefs.GuardZone2,
			controldefs.BlankingSector1, controldefs.BlankingSector2,
			controldefs.BlankingSector3, controldefs.BlankingSector4,
			controldefs.ScanSpeed, controldefs.NoiseRej, controldefs.TargetSeparation,
		},
	},
	"4G": {
		Family:              "4G",
		SpokesPerRevolution: 2048,
		PixelDepth:          4,
		MaxRangeMeters:      111_120,
		HasDualScan:         true,
		ExtraControls: []string{
			controldefs.AntennaHeight, controldefs.TargetExpansion, controldefs.TargetBoost,
			controldefs.GuardZone1, controldefs.GuardZone2,
			controldefs.BlankingSector1, controldefs.BlankingSector2,
			controldefs.BlankingSector3, controldefs.BlankingSector4,
			controldefs.ScanSpeed, controldefs.NoiseRej, controldefs.TargetSeparation,
			controldefs.LocalIR, controldefs.SidelobeSuppression,
		},
	},
	"HALO20": {
		Family:              "HALO",
		SpokesPerRevolution: 4096,
		PixelDepth:          8,
		MaxRangeMeters:      74_080,
		HasDoppler:          true,
		HasDualScan:         false,
		ExtraControls: []string{
			controldefs.AntennaHeight, controldefs.TargetExpansion, controldefs.TargetBoost,
			controldefs.GuardZone1, controldefs.GuardZone2,
			controldefs.BlankingSector1, controldefs.BlankingSector2,
			controldefs.BlankingSector3, controldefs.BlankingSector4,
			controldefs.ScanSpeed, controldefs.NoiseRej, controldefs.TargetSeparation,
			controldefs.LocalIR, controldefs.SidelobeSuppression, controldefs.HaloAccentLight,
			controldefs.DopplerMode, controldefs.DopplerSpeedThreshold,
		},
	},
	"HALO24": {
		Family:              "HALO",
		SpokesPerRevolution: 4096,
		PixelDepth:          8,
		MaxRangeMeters:      111_120,
		HasDoppler:          true,
		HasDualScan:         true,
		ExtraControls: []string{
			controldefs.AntennaHeight, controldefs.TargetExpansion, controldefs.TargetBoost,
			controldefs.GuardZone1, controldefs.GuardZone2,
			controldefs.BlankingSector1, controldefs.BlankingSector2,
			controldefs.BlankingSector3, controldefs.BlankingSector4,
			controldefs.ScanSpeed, controldefs.NoiseRej, controldefs.TargetSeparation,
			controldefs.LocalIR, controldefs.SidelobeSuppression, controldefs.HaloAccentLight,
			controldefs.DopplerMode, controldefs.DopplerSpeedThreshold,
		},
	},
}
