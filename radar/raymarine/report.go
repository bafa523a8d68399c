package raymarine

import (
	"fmt"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

const reportMarker = 0xA1

// minReportLen covers every fixed field up to and including guard zone 2's
// geometry; the Doppler fields beyond it are optional (Quantum 2/Cyclone
// only) and read only when the packet is long enough to carry them.
const minReportLen = 29

// applyReport parses the combined status/report multicast packet the
// same way the Navico codec does and advances state, or returns an error
// and leaves state untouched if the packet is too short or its marker
// byte doesn't match.
func applyReport(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	marker, ok := u8(data, 1)
	if !ok || marker != reportMarker {
		return nil, &radar.MalformedPacketError{Len: len(data), FirstBytes: data}
	}
	if len(data) < minReportLen {
		return nil, fmt.Errorf("raymarine: report too short (%d bytes)", len(data))
	}

	var events []radar.Event

	statusByte, _ := u8(data, 2)
	var st radar.Status
	switch statusByte {
	case 0:
		st = radar.Off
	case 1:
		st = radar.Standby
	case 2:
		st = radar.Transmit
	case 5:
		st = radar.Warming
	default:
		return nil, fmt.Errorf("raymarine: unknown status byte %d", statusByte)
	}
	state.SetStatus(0, st)
	events = append(events, setOne(identity, state, controldefs.Power, float64(st), nil, nil)...)

	gainAuto, _ := u8(data, 3)
	gainVal, _ := u8(data, 4)
	ga := gainAuto != 0
	events = append(events, setOne(identity, state, controldefs.Gain, ByteToPercent(gainVal), &ga, nil)...)

	seaAuto, _ := u8(data, 5)
	seaVal, _ := u8(data, 6)
	sa := seaAuto != 0
	events = append(events, setOne(identity, state, controldefs.Sea, ByteToPercent(seaVal), &sa, nil)...)

	rainVal, _ := u8(data, 7)
	events = append(events, setOne(identity, state, controldefs.Rain, ByteToPercent(rainVal), nil, nil)...)

	irVal, _ := u8(data, 8)
	events = append(events, setOne(identity, state, controldefs.IR, float64(irVal), nil, nil)...)

	bearingWire, _ := u16le(data, 9)
	events = append(events, setOne(identity, state, controldefs.BearingAlignment, HeadingWireToUI(bearingWire), nil, nil)...)

	heightWire, _ := u16le(data, 11)
	events = append(events, setOne(identity, state, controldefs.AntennaHeight, antennaHeightDecimetersToMeters(heightWire), nil, nil)...)

	events = append(events, applyGuardZoneGeometry(identity, state, data, 13, controldefs.GuardZone1)...)
	events = append(events, applyGuardZoneGeometry(identity, state, data, 21, controldefs.GuardZone2)...)

	if len(data) >= 32 {
		dopplerMode, _ := u8(data, 29)
		events = append(events, setOne(identity, state, controldefs.DopplerMode, float64(dopplerMode), nil, nil)...)
		dopplerThresh, _ := u16le(data, 30)
		events = append(events, setOne(identity, state, controldefs.DopplerSpeedThreshold, float64(dopplerThresh), nil, nil)...)
	}

	return events, nil
}

func applyGuardZoneGeometry(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte, off int, id string) []radar.Event {
	if off+8 > len(data) {
		return nil
	}
	innerWire, _ := u16le(data, off)
	outerWire, _ := u16le(data, off+2)
	bearing, _ := u16le(data, off+4)
	width, _ := u16le(data, off+6)
	gz := GuardZone{
		InnerMeters: decametersToGuardZoneDistance(innerWire),
		OuterMeters: decametersToGuardZoneDistance(outerWire),
		BearingDeg:  int(bearing),
		WidthDeg:    int(width),
	}
	enabled := width > 0
	return setOne(identity, state, id, packGuardZone(gz), nil, &enabled)
}

func setOne(identity radar.RadarIdentity, state *radar.NormalizedState, id string, value float64, auto, enabled *bool) []radar.Event {
	cv := radar.ControlValue{ID: id, Value: value, Auto: auto, Enabled: enabled, Screen: 0}
	if !state.Set(cv) {
		return nil
	}
	return []radar.Event{radar.ControlChangedEvent{Identity: identity, Value: cv}}
}
