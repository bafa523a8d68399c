// Package modeldb is the pure (brand, model-key) -> capability lookup.
// The control list per model is data, not code: adding a feature is one
// table entry here plus one dispatch entry in the owning brand package
// plus a codec entry — nothing else.
package modeldb

import (
	"sort"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

// ModelEntry is the per-model row: family name, numeric characteristics,
// and the model-specific controls it adds on top of its brand's base set.
type ModelEntry struct {
	Family              string
	SpokesPerRevolution int
	PixelDepth          int
	MaxRangeMeters      float64
	HasDoppler          bool
	HasDualScan         bool
	ExtraControls       []string
}

var baseControlsByBrand = map[radar.Brand][]string{
	// GetBaseControlsForBrand returns a brand-wide minimum set (power,
	// range, gain, sea, rain, IR, bearing alignment) used when the model
	// is unknown. Garmin's set has no IR: its controller has no IR command.
	radar.Furuno:    {controldefs.Power, controldefs.Range, controldefs.Gain, controldefs.Sea, controldefs.Rain, controldefs.IR, controldefs.BearingAlignment},
	radar.Navico:    {controldefs.Power, controldefs.Range, controldefs.Gain, controldefs.Sea, controldefs.Rain, controldefs.IR, controldefs.BearingAlignment},
	radar.Raymarine: {controldefs.Power, controldefs.Range, controldefs.Gain, controldefs.Sea, controldefs.Rain, controldefs.IR, controldefs.BearingAlignment},
	radar.Garmin:    {controldefs.Power, controldefs.Range, controldefs.Gain, controldefs.Sea, controldefs.Rain, controldefs.BearingAlignment},
}

var models = map[radar.Brand]map[string]ModelEntry{
	radar.Furuno:    furunoModels,
	radar.Navico:    navicoModels,
	radar.Raymarine: raymarineModels,
	radar.Garmin:    garminModels,
}

// GetBaseControlsForBrand returns the brand-wide minimum control set used
// when the model key is unknown (empty).
func GetBaseControlsForBrand(b radar.Brand) []string {
	return append([]string(nil), baseControlsByBrand[b]...)
}

// GetModelEntry looks up a model's row. ok is false for an unknown
// (brand, modelKey) pair — the host still builds a controller with base
// capabilities only.
func GetModelEntry(b radar.Brand, modelKey string) (ModelEntry, bool) {
	byModel, ok := models[b]
	if !ok {
		return ModelEntry{}, false
	}
	e, ok := byModel[modelKey]
	return e, ok
}

// GetAllControlsForModel unions the brand's base set with the model's
// extra controls, deduplicated and sorted for stable manifest ordering.
func GetAllControlsForModel(b radar.Brand, modelKey string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(ids []string) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	add(baseControlsByBrand[b])
	if entry, ok := GetModelEntry(b, modelKey); ok {
		add(entry.ExtraControls)
	}
	sort.Strings(out)
	return out
}

// BuildManifest assembles the full CapabilityManifest for a locator-reported
// identity: the authoritative feature set the host uses for API generation.
func BuildManifest(identity radar.RadarIdentity) radar.CapabilityManifest {
	entry, known := GetModelEntry(identity.Brand, identity.ModelKey)
	m := radar.CapabilityManifest{
		Identity: identity,
		Controls: GetAllControlsForModel(identity.Brand, identity.ModelKey),
	}
	if known {
		m.Family = entry.Family
		m.SpokesPerRevolution = entry.SpokesPerRevolution
		m.PixelDepth = entry.PixelDepth
		m.MaxRangeMeters = entry.MaxRangeMeters
		m.HasDoppler = entry.HasDoppler
		m.HasDualScan = entry.HasDualScan
	} else {
		m.Family = "unknown"
	}
	return m
}
