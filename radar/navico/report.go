package navico

import (
	"fmt"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

// applyReport parses one report datagram (first byte + 0xC4 selects the
// layout) and advances state, or returns an error and leaves state
// untouched if the packet is too short/malformed for its declared type.
func applyReport(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte, screen int) ([]radar.Event, error) {
	reportType, ok := reportHeader(data)
	if !ok {
		return nil, &radar.MalformedPacketError{Len: len(data), FirstBytes: data}
	}
	switch reportType {
	case 0x01:
		return applyStatusReport(identity, state, data, screen)
	case 0x02:
		return applyControlReport(identity, state, data, screen)
	case 0x03:
		return applyModelReport(identity, state, data, screen)
	case 0x04:
		return applyInstallationReport(identity, state, data, screen)
	case 0x06:
		return applyBlankingReport(identity, state, data, screen)
	case 0x08:
		return applyAdvancedReport(identity, state, data, screen)
	default:
		return nil, nil // unrecognized report type, not an error
	}
}

func applyStatusReport(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte, screen int) ([]radar.Event, error) {
	b, ok := u8(data, 2)
	if !ok {
		return nil, fmt.Errorf("navico: report01 too short")
	}
	var st radar.Status
	switch b {
	case 0:
		st = radar.Off
	case 1:
		st = radar.Standby
	case 2:
		st = radar.Transmit
	case 5:
		st = radar.Warming
	default:
		return nil, fmt.Errorf("navico: report01 unknown status byte %d", b)
	}
	state.SetStatus(screen, st)
	cv := radar.ControlValue{ID: controldefs.Power, Value: float64(st), Screen: screen}
	return []radar.Event{radar.ControlChangedEvent{Identity: identity, Value: cv}}, nil
}

func applyControlReport(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte, screen int) ([]radar.Event, error) {
	if len(data) < 99 {
		return nil, fmt.Errorf("navico: report02 too short (%d bytes)", len(data))
	}
	var events []radar.Event

	rangeDm, ok := u32le(data, 2)
	if !ok {
		return nil, fmt.Errorf("navico: report02 range field out of bounds")
	}
	events = append(events, setOne(identity, state, controldefs.Range, rangeMetersFromDecimeters(rangeDm), nil, nil, screen)...)

	gainAuto, _ := u8(data, 8)
	gainVal, _ := u8(data, 12)
	auto := gainAuto != 0
	events = append(events, setOne(identity, state, controldefs.Gain, ByteToPercent(gainVal), &auto, nil, screen)...)

	seaMode, _ := u8(data, 13)
	seaVal, _ := u8(data, 17)
	seaAuto := seaMode != 0
	events = append(events, setOne(identity, state, controldefs.Sea, ByteToPercent(seaVal), &seaAuto, nil, screen)...)

	rainVal, _ := u8(data, 22)
	events = append(events, setOne(identity, state, controldefs.Rain, ByteToPercent(rainVal), nil, nil, screen)...)

	irVal, _ := u8(data, 34)
	events = append(events, setOne(identity, state, controldefs.IR, float64(irVal), nil, nil, screen)...)

	texpVal, _ := u8(data, 38)
	enabled := texpVal != 0
	events = append(events, setOne(identity, state, controldefs.TargetExpansion, float64(texpVal), nil, &enabled, screen)...)

	tboostVal, _ := u8(data, 42)
	events = append(events, setOne(identity, state, controldefs.TargetBoost, float64(tboostVal), nil, nil, screen)...)

	events = append(events, applyGuardZoneGeometry(identity, state, data, 54, controldefs.GuardZone1, screen)...)
	events = append(events, applyGuardZoneGeometry(identity, state, data, 76, controldefs.GuardZone2, screen)...)

	return events, nil
}

// applyGuardZoneGeometry decodes one 22-byte guard-zone geometry block
// (offsets 54 and 76 within report02) into a packed GuardZone value.
func applyGuardZoneGeometry(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte, off int, id string, screen int) []radar.Event {
	if off+18 > len(data) {
		return nil
	}
	inner, _ := u32le(data, off)
	outer, _ := u32le(data, off+4)
	bearing, _ := u16le(data, off+8)
	width, _ := u16le(data, off+10)
	gz := GuardZone{InnerMeters: float64(inner), OuterMeters: float64(outer), BearingDeg: int(bearing), WidthDeg: int(width)}
	enabled := width > 0
	return setOne(identity, state, id, packGuardZone(gz), nil, &enabled, screen)
}

func applyModelReport(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte, screen int) ([]radar.Event, error) {
	if len(data) < 58 {
		return nil, fmt.Errorf("navico: report03 too short")
	}
	// Model and firmware identification is surfaced via capability
	// metadata at construction time, not NormalizedState; report03 here
	// only refreshes the liveness signal the controller's Poll uses.
	return nil, nil
}

func applyInstallationReport(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte, screen int) ([]radar.Event, error) {
	if len(data) < 20 {
		return nil, fmt.Errorf("navico: report04 too short")
	}
	var events []radar.Event

	bearingWire, _ := u16le(data, 4)
	events = append(events, setOne(identity, state, controldefs.BearingAlignment, HeadingWireToUI(bearingWire), nil, nil, screen)...)

	heightMM, _ := u16le(data, 10)
	events = append(events, setOne(identity, state, controldefs.AntennaHeight, float64(heightMM)/1000.0, nil, nil, screen)...)

	accent, _ := u8(data, 19)
	events = append(events, setOne(identity, state, controldefs.HaloAccentLight, float64(accent), nil, nil, screen)...)

	return events, nil
}

func applyBlankingReport(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte, screen int) ([]radar.Event, error) {
	ids := []string{controldefs.BlankingSector1, controldefs.BlankingSector2, controldefs.BlankingSector3, controldefs.BlankingSector4}
	var events []radar.Event
	for i, id := range ids {
		off := 2 + i*5
		if off+5 > len(data) {
			break
		}
		en, _ := u8(data, off)
		start, _ := u16le(data, off+1)
		end, _ := u16le(data, off+3)
		enabled := en != 0
		events = append(events, setOne(identity, state, id, packBlankingSector(start, end), nil, &enabled, screen)...)
	}
	return events, nil
}

func applyAdvancedReport(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte, screen int) ([]radar.Event, error) {
	if len(data) < 14 {
		return nil, fmt.Errorf("navico: report08 too short")
	}
	var events []radar.Event

	seaState, _ := u8(data, 2)
	events = append(events, setOne(identity, state, controldefs.Sea, float64(seaState), nil, nil, screen)...)

	localIR, _ := u8(data, 3)
	events = append(events, setOne(identity, state, controldefs.LocalIR, float64(localIR), nil, nil, screen)...)

	scanSpeed, _ := u8(data, 4)
	events = append(events, setOne(identity, state, controldefs.ScanSpeed, float64(scanSpeed), nil, nil, screen)...)

	sidelobeAuto, _ := u8(data, 5)
	sidelobeVal, _ := u8(data, 9)
	slAuto := sidelobeAuto != 0
	events = append(events, setOne(identity, state, controldefs.SidelobeSuppression, ByteToPercent(sidelobeVal), &slAuto, nil, screen)...)

	noiseRej, _ := u8(data, 12)
	events = append(events, setOne(identity, state, controldefs.NoiseRej, float64(noiseRej), nil, nil, screen)...)

	targetSep, _ := u8(data, 13)
	events = append(events, setOne(identity, state, controldefs.TargetSeparation, float64(targetSep), nil, nil, screen)...)

	if len(data) >= 21 {
		dopplerMode, _ := u8(data, 18)
		events = append(events, setOne(identity, state, controldefs.DopplerMode, float64(dopplerMode), nil, nil, screen)...)
		dopplerThresh, _ := u16le(data, 19)
		events = append(events, setOne(identity, state, controldefs.DopplerSpeedThreshold, float64(dopplerThresh), nil, nil, screen)...)
	}

	return events, nil
}

func setOne(identity radar.RadarIdentity, state *radar.NormalizedState, id string, value float64, auto, enabled *bool, screen int) []radar.Event {
	cv := radar.ControlValue{ID: id, Value: value, Auto: auto, Enabled: enabled, Screen: screen}
	if !state.Set(cv) {
		return nil
	}
	return []radar.Event{radar.ControlChangedEvent{Identity: identity, Value: cv}}
}
