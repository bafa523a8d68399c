// Package garmin implements the small-packet UDP request/report
// controller: a single multicast endpoint triple, a narrow control
// surface (no Doppler, one simple guard zone, timed-idle), and a small
// fixed command table.
package garmin

import (
	"fmt"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

const (
	stayAliveIntervalMs = 1000
	reportTimeoutMs      = 10000
)

// Controller is the Garmin radar.Controller implementation.
type Controller struct {
	identity  radar.RadarIdentity
	endpoints radar.RadarEndpoints
	manifest  radar.CapabilityManifest

	state radar.ControllerState

	normalized *radar.NormalizedState
	backoff    *radar.Backoff

	reportHandle, dataHandle, sendHandle radar.Handle

	lastStayAliveMs int64
	lastReportMs    int64
	nextAttemptMs   int64

	shutdownFlag bool
}

// New constructs a Garmin controller. Registered as the Brand factory in
// register.go.
func New(identity radar.RadarIdentity, endpoints radar.RadarEndpoints, manifest radar.CapabilityManifest) (radar.Controller, error) {
	if endpoints.A == nil {
		return nil, fmt.Errorf("garmin: endpoints missing the A triple")
	}
	return &Controller{
		identity:   identity,
		endpoints:  endpoints,
		manifest:   manifest,
		state:      radar.Disconnected,
		normalized: radar.NewNormalizedState(),
		backoff:    radar.NewBackoff(250, 8000),
	}, nil
}

func (c *Controller) Identity() radar.RadarIdentity          { return c.identity }
func (c *Controller) State() radar.ControllerState           { return c.state }
func (c *Controller) IsConnected() bool                      { return c.state == radar.Connected }
func (c *Controller) Snapshot() radar.StateSnapshot           { return c.normalized.Snapshot() }
func (c *Controller) Capabilities() radar.CapabilityManifest { return c.manifest }

func (c *Controller) Poll(io radar.IOProvider) []radar.Event {
	if c.shutdownFlag {
		return nil
	}
	switch c.state {
	case radar.Disconnected:
		return c.pollDisconnected(io)
	case radar.Listening, radar.Connected:
		return c.pollActive(io)
	default:
		return nil
	}
}

func (c *Controller) pollDisconnected(io radar.IOProvider) []radar.Event {
	now := io.NowMillis()
	if now < c.nextAttemptMs {
		return nil
	}
	nicAddr := radar.Addr{IP: c.endpoints.NIC}
	triple := c.endpoints.A

	rh, err := io.UDPBind(radar.Addr{IP: "0.0.0.0", Port: triple.Report.Port})
	if err != nil {
		return c.failBind(io)
	}
	if err := io.UDPJoinMulticast(rh, triple.Report, nicAddr); err != nil {
		io.Close(rh)
		return c.failBind(io)
	}
	dh, err := io.UDPBind(radar.Addr{IP: "0.0.0.0", Port: triple.Data.Port})
	if err != nil {
		io.Close(rh)
		return c.failBind(io)
	}
	if err := io.UDPJoinMulticast(dh, triple.Data, nicAddr); err != nil {
		io.Close(rh)
		io.Close(dh)
		return c.failBind(io)
	}
	sh, err := io.UDPBind(radar.Addr{IP: nicAddr.IP, Port: 0})
	if err != nil {
		io.Close(rh)
		io.Close(dh)
		return c.failBind(io)
	}
	c.reportHandle, c.dataHandle, c.sendHandle = rh, dh, sh
	c.lastStayAliveMs = now - stayAliveIntervalMs // due on the first active poll
	c.state = radar.Listening
	c.lastReportMs = now
	c.backoff.Reset()
	return []radar.Event{radar.StateChangedEvent{Identity: c.identity, State: radar.Listening}}
}

func (c *Controller) failBind(io radar.IOProvider) []radar.Event {
	c.closeAll(io)
	c.nextAttemptMs = io.NowMillis() + c.backoff.NextMs()
	return nil
}

func (c *Controller) pollActive(io radar.IOProvider) []radar.Event {
	now := io.NowMillis()
	var events []radar.Event

	if now-c.lastStayAliveMs >= stayAliveIntervalMs {
		io.UDPSendTo(c.sendHandle, statusRequestFrame(), c.endpoints.A.Send)
		c.lastStayAliveMs = now
	}

	buf := make([]byte, 2048)
	for {
		n, _, ok, err := io.UDPTryRecv(c.reportHandle, buf)
		if err != nil || !ok {
			break
		}
		ev, perr := applyReport(c.identity, c.normalized, buf[:n])
		if perr != nil {
			continue // malformed report, discarded without touching state
		}
		c.lastReportMs = now
		if c.state == radar.Listening {
			c.state = radar.Connected
			events = append(events, radar.StateChangedEvent{Identity: c.identity, State: radar.Connected})
		}
		events = append(events, ev...)
	}

	for {
		_, _, ok, err := io.UDPTryRecv(c.dataHandle, buf)
		if err != nil || !ok {
			break
		}
	}

	if c.state == radar.Connected && now-c.lastReportMs > reportTimeoutMs {
		c.closeAll(io)
		c.state = radar.Disconnected
		c.nextAttemptMs = now + c.backoff.NextMs()
		return append(events, radar.StateChangedEvent{Identity: c.identity, State: radar.Disconnected})
	}

	return events
}

func (c *Controller) closeAll(io radar.IOProvider) {
	if c.reportHandle != radar.NoHandle {
		io.Close(c.reportHandle)
	}
	if c.dataHandle != radar.NoHandle {
		io.Close(c.dataHandle)
	}
	if c.sendHandle != radar.NoHandle {
		io.Close(c.sendHandle)
	}
	c.reportHandle, c.dataHandle, c.sendHandle = radar.NoHandle, radar.NoHandle, radar.NoHandle
}

func (c *Controller) Set(io radar.IOProvider, controlID string, value radar.ControlValue) error {
	if c.shutdownFlag {
		return radar.NewNotReady()
	}
	if !c.manifest.HasControl(controlID) {
		return radar.NewUnknownControl(controlID)
	}
	if c.state != radar.Connected && c.state != radar.Listening {
		return radar.NewNotConnected()
	}
	def := controldefs.MustGet(controlID)
	if def.Kind == radar.RangedInteger {
		value.Value = def.Clamp(value.Value)
	}
	if def.Kind == radar.EnumKind {
		if _, ok := def.EnumLabels[int(value.Value)]; !ok {
			return radar.NewInvalidValue(controlID, "unrecognized enum variant")
		}
	}

	send := func(frame []byte) error {
		if err := io.UDPSendTo(c.sendHandle, frame, c.endpoints.A.Send); err != nil {
			return radar.NewIOError("send", err)
		}
		return nil
	}

	switch controlID {
	case controldefs.Power:
		return send(buildFrame(cmdStatus, byte(value.Value)))
	case controldefs.Range:
		return send(buildRangeFrame(value.Value))
	case controldefs.Gain:
		auto := value.Auto != nil && *value.Auto
		return send(buildGainFrame(auto, PercentToByte(value.Value)))
	case controldefs.Sea:
		auto := value.Auto != nil && *value.Auto
		return send(buildSeaFrame(auto, PercentToByte(value.Value)))
	case controldefs.Rain:
		return send(buildRainFrame(PercentToByte(value.Value)))
	case controldefs.BearingAlignment:
		return send(buildBearingFrame(HeadingUIToWire(value.Value)))
	case controldefs.AntennaHeight:
		return send(buildAntennaHeightFrame(antennaHeightMetersToDecimeters(value.Value)))
	case controldefs.GuardZone:
		gz := unpackGuardZone(value.Value)
		enabled := value.Enabled != nil && *value.Enabled
		return send(buildGuardZoneFrame(gz, enabled))
	case controldefs.TimedIdle:
		return send(buildTimedIdleFrame(byte(value.Value)))
	default:
		return radar.NewUnknownControl(controlID)
	}
}

func (c *Controller) Shutdown(io radar.IOProvider) {
	if c.shutdownFlag {
		return
	}
	c.shutdownFlag = true
	c.closeAll(io)
	c.state = radar.Disconnected
}
