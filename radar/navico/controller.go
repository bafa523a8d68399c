// Package navico implements the UDP-multicast, binary-framed Navico
// controller: multicast discovery-driven endpoints, a periodic
// stay-alive burst, binary report parsing, and per-control binary
// command encoding.
package navico

import (
	"fmt"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

const (
	stayAliveIntervalHaloMs  = 500
	stayAliveIntervalOtherMs = 2000
	reportTimeoutMs          = 15000
)

type endpointState struct {
	screen                int
	triple                *radar.EndpointTriple
	reportHandle          radar.Handle
	dataHandle            radar.Handle
	sendHandle            radar.Handle
	lastStayAliveMs       int64
}

// Controller is the Navico radar.Controller implementation.
type Controller struct {
	identity  radar.RadarIdentity
	endpoints radar.RadarEndpoints
	manifest  radar.CapabilityManifest

	state radar.ControllerState

	normalized *radar.NormalizedState
	backoff    *radar.Backoff

	eps []*endpointState

	isHalo        bool
	stayAliveMs   int64
	lastReportMs  int64
	nextAttemptMs int64

	shutdownFlag bool
}

// New constructs a Navico controller. Registered as the Brand factory in
// register.go.
func New(identity radar.RadarIdentity, endpoints radar.RadarEndpoints, manifest radar.CapabilityManifest) (radar.Controller, error) {
	if endpoints.A == nil {
		return nil, fmt.Errorf("navico: endpoints missing the A triple")
	}
	stayAliveMs := int64(stayAliveIntervalOtherMs)
	if manifest.Family == "HALO" {
		stayAliveMs = stayAliveIntervalHaloMs
	}
	var eps []*endpointState
	eps = append(eps, &endpointState{screen: 0, triple: endpoints.A})
	if endpoints.B != nil {
		eps = append(eps, &endpointState{screen: 1, triple: endpoints.B})
	}
	return &Controller{
		identity:    identity,
		endpoints:   endpoints,
		manifest:    manifest,
		state:       radar.Disconnected,
		normalized:  radar.NewNormalizedState(),
		backoff:     radar.NewBackoff(250, 8000),
		eps:         eps,
		isHalo:      manifest.Family == "HALO",
		stayAliveMs: stayAliveMs,
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
	for _, ep := range c.eps {
		rh, err := io.UDPBind(radar.Addr{IP: "0.0.0.0", Port: ep.triple.Report.Port})
		if err != nil {
			return c.failBind(io)
		}
		if err := io.UDPJoinMulticast(rh, ep.triple.Report, nicAddr); err != nil {
			io.Close(rh)
			return c.failBind(io)
		}
		dh, err := io.UDPBind(radar.Addr{IP: "0.0.0.0", Port: ep.triple.Data.Port})
		if err != nil {
			io.Close(rh)
			return c.failBind(io)
		}
		if err := io.UDPJoinMulticast(dh, ep.triple.Data, nicAddr); err != nil {
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
		ep.reportHandle, ep.dataHandle, ep.sendHandle = rh, dh, sh
		ep.lastStayAliveMs = now - c.stayAliveMs // due on the first active poll
	}
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

	for _, ep := range c.eps {
		if now-ep.lastStayAliveMs >= c.stayAliveMs {
			for _, frame := range stayAliveBurst() {
				io.UDPSendTo(ep.sendHandle, frame, ep.triple.Send)
			}
			ep.lastStayAliveMs = now
		}

		buf := make([]byte, 2048)
		for {
			n, _, ok, err := io.UDPTryRecv(ep.reportHandle, buf)
			if err != nil || !ok {
				break
			}
			ev, perr := applyReport(c.identity, c.normalized, buf[:n], ep.screen)
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

		// The data (spoke/image) multicast group is joined, but its
		// payload is outside this controller's scope; drain it so the
		// socket buffer never backs up.
		for {
			_, _, ok, err := io.UDPTryRecv(ep.dataHandle, buf)
			if err != nil || !ok {
				break
			}
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
	for _, ep := range c.eps {
		if ep.reportHandle != radar.NoHandle {
			io.Close(ep.reportHandle)
		}
		if ep.dataHandle != radar.NoHandle {
			io.Close(ep.dataHandle)
		}
		if ep.sendHandle != radar.NoHandle {
			io.Close(ep.sendHandle)
		}
		ep.reportHandle, ep.dataHandle, ep.sendHandle = radar.NoHandle, radar.NoHandle, radar.NoHandle
	}
}

func (c *Controller) epFor(screen int) *endpointState {
	for _, ep := range c.eps {
		if ep.screen == screen {
			return ep
		}
	}
	return c.eps[0]
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

	ep := c.epFor(value.Screen)
	send := func(frames ...[]byte) error {
		for _, f := range frames {
			if err := io.UDPSendTo(ep.sendHandle, f, ep.triple.Send); err != nil {
				return radar.NewIOError("send", err)
			}
		}
		return nil
	}

	switch controlID {
	case controldefs.Power:
		return send(buildPowerFrames(int(value.Value))...)
	case controldefs.Range:
		return send(buildRange(value.Value))
	case controldefs.Gain:
		auto := value.Auto != nil && *value.Auto
		return send(buildGain(auto, PercentToByte(value.Value)))
	case controldefs.Sea:
		if value.Auto != nil {
			return send(buildSeaMode(*value.Auto))
		}
		return send(buildSeaManual(PercentToByte(value.Value)))
	case controldefs.Rain:
		auto := value.Auto != nil && *value.Auto
		return send(buildRain(auto, PercentToByte(value.Value)))
	case controldefs.IR:
		return send(buildIR(byte(value.Value)))
	case controldefs.NoiseRej:
		return send(buildNoiseRej(byte(value.Value)))
	case controldefs.LocalIR:
		return send(buildLocalIR(byte(value.Value)))
	case controldefs.TargetSeparation:
		return send(buildTargetSeparation(byte(value.Value)))
	case controldefs.TargetBoost:
		return send(buildTargetBoost(byte(value.Value)))
	case controldefs.TargetExpansion:
		return send(buildTargetExpansion(byte(value.Value)))
	case controldefs.ScanSpeed:
		return send(buildScanSpeed(byte(value.Value)))
	case controldefs.SidelobeSuppression:
		auto := value.Auto != nil && *value.Auto
		return send(buildSidelobeSuppression(auto, PercentToByte(value.Value)))
	case controldefs.HaloAccentLight:
		return send(buildHaloAccentLight(byte(value.Value)))
	case controldefs.DopplerMode:
		return send(buildDopplerMode(byte(value.Value)))
	case controldefs.DopplerSpeedThreshold:
		return send(buildDopplerSpeedThreshold(uint16(value.Value)))
	case controldefs.BearingAlignment:
		return send(buildBearingAlignment(HeadingUIToWire(value.Value)))
	case controldefs.AntennaHeight:
		return send(buildAntennaHeight(uint16(value.Value * 1000)))
	case controldefs.GuardZone1:
		return c.setGuardZone(io, ep, 0, value)
	case controldefs.GuardZone2:
		return c.setGuardZone(io, ep, 1, value)
	case controldefs.BlankingSector1:
		return c.setBlankingSector(io, ep, 0, value)
	case controldefs.BlankingSector2:
		return c.setBlankingSector(io, ep, 1, value)
	case controldefs.BlankingSector3:
		return c.setBlankingSector(io, ep, 2, value)
	case controldefs.BlankingSector4:
		return c.setBlankingSector(io, ep, 3, value)
	default:
		return radar.NewUnknownControl(controlID)
	}
}

func (c *Controller) setGuardZone(io radar.IOProvider, ep *endpointState, idx byte, value radar.ControlValue) error {
	gz := unpackGuardZone(value.Value)
	enabled := value.Enabled != nil && *value.Enabled
	if err := io.UDPSendTo(ep.sendHandle, buildGuardZoneGeometry(idx, gz), ep.triple.Send); err != nil {
		return radar.NewIOError("send", err)
	}
	var gz1Enabled, gz2Enabled bool
	if idx == 0 {
		gz1Enabled = enabled
	} else {
		gz2Enabled = enabled
	}
	other := controldefs.GuardZone2
	if idx == 1 {
		other = controldefs.GuardZone1
	}
	if cv, ok := c.normalized.Get(other, ep.screen); ok {
		otherEnabled := cv.Enabled != nil && *cv.Enabled
		if idx == 0 {
			gz2Enabled = otherEnabled
		} else {
			gz1Enabled = otherEnabled
		}
	}
	if err := io.UDPSendTo(ep.sendHandle, buildGuardZoneToggle(gz1Enabled, gz2Enabled), ep.triple.Send); err != nil {
		return radar.NewIOError("send", err)
	}
	return nil
}

func (c *Controller) setBlankingSector(io radar.IOProvider, ep *endpointState, idx byte, value radar.ControlValue) error {
	start, end := unpackBlankingSector(value.Value)
	enabled := value.Enabled != nil && *value.Enabled
	if err := io.UDPSendTo(ep.sendHandle, buildBlankingSector(idx, enabled, start, end), ep.triple.Send); err != nil {
		return radar.NewIOError("send", err)
	}
	return nil
}

func (c *Controller) Shutdown(io radar.IOProvider) {
	if c.shutdownFlag {
		return
	}
	c.shutdownFlag = true
	c.closeAll(io)
	c.state = radar.Disconnected
}
