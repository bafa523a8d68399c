package furuno

import (
	"fmt"
	"strconv"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

// applyNotification parses one decoded $N frame and, on success, advances
// state and returns any ControlChangedEvents produced. On a malformed
// frame it returns an error and leaves state untouched — NormalizedState
// only ever advances on a successful parse.
func applyNotification(identity radar.RadarIdentity, state *radar.NormalizedState, fr frame, screenHint int) ([]radar.Event, error) {
	switch fr.ID {
	case "62":
		idx, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		screen := screenField(fr.Fields, 2)
		meters, ok := RangeMetersForIndex(idx)
		if !ok {
			return nil, fmt.Errorf("furuno: unknown range index %d", idx)
		}
		return setOne(identity, state, controldefs.Range, meters, nil, nil, screen), nil

	case "63":
		return parseAutoValue(identity, state, fr, controldefs.Gain, 1)

	case "64":
		return parseAutoValue(identity, state, fr, controldefs.Sea, 1)

	case "65":
		return parseAutoValue(identity, state, fr, controldefs.Rain, 1)

	case "67":
		return applyFeatureReport(identity, state, fr)

	case "69":
		st, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		screen := screenField(fr.Fields, 1)
		state.SetStatus(screen, radar.Status(st))
		return []radar.Event{radar.ControlChangedEvent{Identity: identity, Value: radar.ControlValue{ID: controldefs.Power, Value: float64(st), Screen: screen}}}, nil

	case "76":
		val, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		if val < magnetronReadyThreshold {
			state.SetStatus(screenHint, radar.Warming)
			return []radar.Event{radar.ControlChangedEvent{Identity: identity, Value: radar.ControlValue{ID: controldefs.Power, Value: float64(radar.Warming), Screen: screenHint}}}, nil
		}
		return nil, nil

	case "77":
		return applyBlindSectors(identity, state, fr)

	case "81":
		deci, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		return setOne(identity, state, controldefs.BearingAlignment, HeadingWireToUI(deci), nil, nil, 0), nil

	case "83":
		wire, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		return setOne(identity, state, controldefs.MainBangSize, WireToPercent(wire), nil, nil, 0), nil

	case "84":
		meters, err := atoi(fr.Fields, 1)
		if err != nil {
			return nil, err
		}
		return setOne(identity, state, controldefs.AntennaHeight, float64(meters), nil, nil, 0), nil

	case "89":
		mode, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		return setOne(identity, state, controldefs.ScanSpeed, float64(mode), nil, nil, 0), nil

	case "EC":
		ch, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		return setOne(identity, state, controldefs.TXChannel, float64(ch), nil, nil, 0), nil

	case "ED":
		lvl, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		screen := screenField(fr.Fields, 1)
		return setOne(identity, state, controldefs.BirdMode, float64(lvl), nil, nil, screen), nil

	case "EE":
		lvl, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		screen := screenField(fr.Fields, 1)
		return setOne(identity, state, controldefs.RezBoost, float64(lvl), nil, nil, screen), nil

	case "EF":
		en, err := atoi(fr.Fields, 0)
		if err != nil {
			return nil, err
		}
		mode, err := atoi(fr.Fields, 1)
		if err != nil {
			return nil, err
		}
		enabled := en != 0
		return setOne(identity, state, controldefs.TargetAnalyzer, float64(mode), nil, &enabled, 0), nil

	default:
		// Several Furuno command IDs are observed but undecoded; pass them
		// through untouched.
		return nil, nil
	}
}

const magnetronReadyThreshold = 52

func atoi(fields []string, i int) (int, error) {
	if i >= len(fields) {
		return 0, fmt.Errorf("furuno: missing field %d", i)
	}
	v, err := strconv.Atoi(fields[i])
	if err != nil {
		return 0, fmt.Errorf("furuno: bad integer field %d (%q): %w", i, fields[i], err)
	}
	return v, nil
}

func screenField(fields []string, i int) int {
	v, err := atoi(fields, i)
	if err != nil || v != 1 {
		return 0
	}
	return 1
}

func setOne(identity radar.RadarIdentity, state *radar.NormalizedState, id string, value float64, auto, enabled *bool, screen int) []radar.Event {
	cv := radar.ControlValue{ID: id, Value: value, Auto: auto, Enabled: enabled, Screen: screen}
	if !state.Set(cv) {
		return nil
	}
	return []radar.Event{radar.ControlChangedEvent{Identity: identity, Value: cv}}
}

func parseAutoValue(identity radar.RadarIdentity, state *radar.NormalizedState, fr frame, id string, valueIdx int) ([]radar.Event, error) {
	autoInt, err := atoi(fr.Fields, 0)
	if err != nil {
		return nil, err
	}
	value, err := atoi(fr.Fields, valueIdx)
	if err != nil {
		return nil, err
	}
	auto := autoInt != 0
	return setOne(identity, state, id, float64(value), &auto, nil, 0), nil
}

// applyFeatureReport disambiguates $N67's two possible layouts by arity:
// four-or-more fields with a leading
// "0" is the SET echo ("0,{feat},{v},0,..."); exactly three fields is the
// REQUEST response ("{feat},{v},{...}").
func applyFeatureReport(identity radar.RadarIdentity, state *radar.NormalizedState, fr frame) ([]radar.Event, error) {
	var featIdx, valIdx int
	if len(fr.Fields) >= 4 && fr.Fields[0] == "0" {
		featIdx, valIdx = 1, 2
	} else if len(fr.Fields) == 3 {
		featIdx, valIdx = 0, 1
	} else {
		return nil, fmt.Errorf("furuno: unrecognized $N67 arity (%d fields)", len(fr.Fields))
	}
	feat, err := atoi(fr.Fields, featIdx)
	if err != nil {
		return nil, err
	}
	val, err := atoi(fr.Fields, valIdx)
	if err != nil {
		return nil, err
	}
	var id string
	switch feat {
	case 0:
		id = controldefs.IR
	case 3:
		id = controldefs.NoiseRej
	default:
		return nil, nil
	}
	return setOne(identity, state, id, float64(val), nil, nil, 0), nil
}

func applyBlindSectors(identity radar.RadarIdentity, state *radar.NormalizedState, fr frame) ([]radar.Event, error) {
	s2en, err := atoi(fr.Fields, 0)
	if err != nil {
		return nil, err
	}
	s1start, err := atoi(fr.Fields, 1)
	if err != nil {
		return nil, err
	}
	s1width, err := atoi(fr.Fields, 2)
	if err != nil {
		return nil, err
	}
	s2start, err := atoi(fr.Fields, 3)
	if err != nil {
		return nil, err
	}
	s2width, err := atoi(fr.Fields, 4)
	if err != nil {
		return nil, err
	}

	sector1 := BlindSectorFromWire(s1start, s1width)
	sector2 := BlindSectorFromWire(s2start, s2width)
	sector2.Enabled = sector2.Enabled && s2en != 0

	var events []radar.Event
	events = append(events, setOne(identity, state, controldefs.NoTransmitSector1, encodeSector(sector1), boolPtr(sector1.Enabled), nil, 0)...)
	events = append(events, setOne(identity, state, controldefs.NoTransmitSector2, encodeSector(sector2), boolPtr(sector2.Enabled), nil, 0)...)
	return events, nil
}

// encodeSector packs (start, end) into a single float64 for the compound
// control's primary Value field: start*1000+end. Controllers/hosts that
// need the full compound shape read it back out with decodeSector.
func encodeSector(s BlindSector) float64 { return float64(s.StartDeg)*1000 + float64(s.EndDeg) }

func decodeSector(v float64, enabled bool) BlindSector {
	start := int(v) / 1000
	end := int(v) % 1000
	return BlindSector{StartDeg: start, EndDeg: end, Enabled: enabled}
}

func boolPtr(b bool) *bool { return &b }
