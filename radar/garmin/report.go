package garmin

import (
	"fmt"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

// applyReport parses one report datagram (2-byte LE command id + payload)
// and advances state, or returns an error and leaves state untouched if
// the packet is too short for its declared command.
func applyReport(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	cmd, ok := commandID(data)
	if !ok {
		return nil, &radar.MalformedPacketError{Len: len(data), FirstBytes: data}
	}
	switch cmd {
	case cmdScannerInfo:
		// Model string identification is surfaced via capability metadata
		// at construction time; here it only confirms the radar is alive.
		return nil, nil
	case cmdStatus:
		return applyStatus(identity, state, data)
	case cmdRange:
		return applyRange(identity, state, data)
	case cmdGain:
		return applyGain(identity, state, data)
	case cmdSea:
		return applySea(identity, state, data)
	case cmdRain:
		return applyRain(identity, state, data)
	case cmdBearing:
		return applyBearing(identity, state, data)
	case cmdAntenna:
		return applyAntenna(identity, state, data)
	case cmdGuardZone:
		return applyGuardZone(identity, state, data)
	case cmdTimedIdle:
		return applyTimedIdle(identity, state, data)
	default:
		return nil, nil // unrecognized command, not an error
	}
}

func applyStatus(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	b, ok := u8(data, 2)
	if !ok {
		return nil, fmt.Errorf("garmin: status report too short")
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
		return nil, fmt.Errorf("garmin: unknown status byte %d", b)
	}
	state.SetStatus(0, st)
	return setOne(identity, state, controldefs.Power, float64(st), nil, nil), nil
}

func applyRange(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	meters, ok := u32le(data, 2)
	if !ok {
		return nil, fmt.Errorf("garmin: range report too short")
	}
	return setOne(identity, state, controldefs.Range, float64(meters), nil, nil), nil
}

func applyGain(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	auto, ok1 := u8(data, 2)
	value, ok2 := u8(data, 3)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("garmin: gain report too short")
	}
	a := auto != 0
	return setOne(identity, state, controldefs.Gain, ByteToPercent(value), &a, nil), nil
}

func applySea(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	auto, ok1 := u8(data, 2)
	value, ok2 := u8(data, 3)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("garmin: sea report too short")
	}
	a := auto != 0
	return setOne(identity, state, controldefs.Sea, ByteToPercent(value), &a, nil), nil
}

func applyRain(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	value, ok := u8(data, 2)
	if !ok {
		return nil, fmt.Errorf("garmin: rain report too short")
	}
	return setOne(identity, state, controldefs.Rain, ByteToPercent(value), nil, nil), nil
}

func applyBearing(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	wire, ok := u16le(data, 2)
	if !ok {
		return nil, fmt.Errorf("garmin: bearing alignment report too short")
	}
	return setOne(identity, state, controldefs.BearingAlignment, HeadingWireToUI(wire), nil, nil), nil
}

func applyAntenna(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	wire, ok := u16le(data, 2)
	if !ok {
		return nil, fmt.Errorf("garmin: antenna height report too short")
	}
	return setOne(identity, state, controldefs.AntennaHeight, antennaHeightDecimetersToMeters(wire), nil, nil), nil
}

func applyGuardZone(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	if len(data) < 11 {
		return nil, fmt.Errorf("garmin: guard zone report too short")
	}
	innerWire, _ := u16le(data, 2)
	outerWire, _ := u16le(data, 4)
	bearing, _ := u16le(data, 6)
	width, _ := u16le(data, 8)
	en, _ := u8(data, 10)
	gz := GuardZone{
		InnerMeters: float64(innerWire) * 10,
		OuterMeters: float64(outerWire) * 10,
		BearingDeg:  int(bearing),
		WidthDeg:    int(width),
	}
	enabled := en != 0
	return setOne(identity, state, controldefs.GuardZone, packGuardZone(gz), nil, &enabled), nil
}

func applyTimedIdle(identity radar.RadarIdentity, state *radar.NormalizedState, data []byte) ([]radar.Event, error) {
	minutes, ok := u8(data, 2)
	if !ok {
		return nil, fmt.Errorf("garmin: timed idle report too short")
	}
	return setOne(identity, state, controldefs.TimedIdle, float64(minutes), nil, nil), nil
}

func setOne(identity radar.RadarIdentity, state *radar.NormalizedState, id string, value float64, auto, enabled *bool) []radar.Event {
	cv := radar.ControlValue{ID: id, Value: value, Auto: auto, Enabled: enabled, Screen: 0}
	if !state.Set(cv) {
		return nil
	}
	return []radar.Event{radar.ControlChangedEvent{Identity: identity, Value: cv}}
}
