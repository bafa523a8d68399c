// Package furuno implements the TCP, ASCII-framed Furuno/radiod controller:
// a login handshake that negotiates the command port, a keep-alive'd
// command/notify stream, and the value mappings in mappings.go.
package furuno

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mayara-radar/mayara/radar"
	"github.com/mayara-radar/mayara/radar/controldefs"
)

type phase int

const (
	phaseDisconnected phase = iota
	phaseDialLogin
	phaseAwaitLoginResponse
	phaseDialCommand
	phaseConnected
)

// connectMode tracks which candidate port list pollDisconnected/
// advanceAfterFailure is cycling through.
type connectMode int

const (
	modeLoginPort connectMode = iota
	modeDirectCommand               // dialing the port the login response named
	modeFallbackPort                // cycling fallbackCommandPorts, login never answered
)

const (
	connectTimeoutMs       = 5000
	loginResponseTimeoutMs = 5000
	keepAliveIntervalMs    = 5000
	keepAliveTimeoutMs     = 10000
)

// Controller is the Furuno radar.Controller implementation.
type Controller struct {
	identity  radar.RadarIdentity
	endpoints radar.RadarEndpoints
	manifest  radar.CapabilityManifest

	state radar.ControllerState
	ph    phase

	normalized *radar.NormalizedState
	splitter   streamSplitter
	backoff    *radar.Backoff

	handle radar.Handle

	mode          connectMode
	portIdx       int
	commandPort   int
	phaseStartMs  int64
	nextAttemptMs int64
	lastRecvMs    int64
	lastKeepAlive int64

	shutdownFlag bool
}

// New constructs a Furuno controller. It is registered as the Brand factory
// in register.go.
func New(identity radar.RadarIdentity, endpoints radar.RadarEndpoints, manifest radar.CapabilityManifest) (radar.Controller, error) {
	if endpoints.Unicast.IsZero() {
		return nil, fmt.Errorf("furuno: endpoints missing unicast address")
	}
	return &Controller{
		identity:   identity,
		endpoints:  endpoints,
		manifest:   manifest,
		state:      radar.Disconnected,
		ph:         phaseDisconnected,
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
	switch c.ph {
	case phaseDisconnected:
		return c.pollDisconnected(io)
	case phaseDialLogin:
		return c.pollDialLogin(io)
	case phaseAwaitLoginResponse:
		return c.pollAwaitLoginResponse(io)
	case phaseDialCommand:
		return c.pollDialCommand(io)
	case phaseConnected:
		return c.pollConnected(io)
	default:
		return nil
	}
}

// pollDisconnected dials the next candidate port for the current mode. The
// cycling order is: every loginPortOrder entry, then — only once none of
// them ever answers — every fallbackCommandPorts entry, direct. A
// commandPort learned from an actual login response is dialed once,
// outside either list.
func (c *Controller) pollDisconnected(io radar.IOProvider) []radar.Event {
	now := io.NowMillis()
	if now < c.nextAttemptMs {
		return nil
	}

	var dst radar.Addr
	switch c.mode {
	case modeLoginPort:
		dst = radar.Addr{IP: c.endpoints.Unicast.IP, Port: loginPortOrder[c.portIdx]}
	case modeDirectCommand:
		dst = radar.Addr{IP: c.endpoints.Unicast.IP, Port: c.commandPort}
	case modeFallbackPort:
		dst = radar.Addr{IP: c.endpoints.Unicast.IP, Port: fallbackCommandPorts[c.portIdx]}
	}

	h, err := io.TCPConnect(dst)
	if err != nil {
		return c.advanceAfterFailure(io)
	}
	c.handle = h
	c.phaseStartMs = now
	if c.mode == modeLoginPort {
		c.ph = phaseDialLogin
	} else {
		c.commandPort = dst.Port
		c.ph = phaseDialCommand
	}
	c.state = radar.Connecting
	return []radar.Event{radar.StateChangedEvent{Identity: c.identity, State: radar.Connecting}}
}

func (c *Controller) pollDialLogin(io radar.IOProvider) []radar.Event {
	now := io.NowMillis()
	err := io.TCPSend(c.handle, loginMessage())
	if err == nil {
		c.ph = phaseAwaitLoginResponse
		c.phaseStartMs = now
		c.splitter = streamSplitter{}
		return nil
	}
	if isFatalIOErr(err) || now-c.phaseStartMs > connectTimeoutMs {
		io.Close(c.handle)
		return c.advanceAfterFailure(io)
	}
	return nil // still waiting for the TCP handshake to complete
}

func (c *Controller) pollAwaitLoginResponse(io radar.IOProvider) []radar.Event {
	now := io.NowMillis()
	buf := make([]byte, 256)
	for {
		n, ok, err := io.TCPTryRecv(c.handle, buf)
		if err != nil {
			io.Close(c.handle)
			return c.advanceAfterFailure(io)
		}
		if !ok {
			break
		}
		c.splitter.buf = append(c.splitter.buf, buf[:n]...)
	}
	if len(c.splitter.buf) >= loginResponseSize {
		offset, ok := parseLoginResponse(c.splitter.buf)
		io.Close(c.handle)
		if !ok {
			return c.advanceAfterFailure(io)
		}
		c.commandPort = 10000 + int(offset)
		c.mode = modeDirectCommand
		c.ph = phaseDisconnected
		c.nextAttemptMs = 0
		return nil
	}
	if now-c.phaseStartMs > loginResponseTimeoutMs {
		io.Close(c.handle)
		return c.advanceAfterFailure(io)
	}
	return nil
}

func (c *Controller) pollDialCommand(io radar.IOProvider) []radar.Event {
	now := io.NowMillis()
	err := io.TCPSend(c.handle, buildFrame(ModeReq, "69"))
	if err == nil {
		c.ph = phaseConnected
		c.state = radar.Connected
		c.splitter = streamSplitter{}
		c.lastRecvMs = now
		c.lastKeepAlive = now
		c.backoff.Reset()
		events := []radar.Event{radar.StateChangedEvent{Identity: c.identity, State: radar.Connected}}
		if sendErr := c.sendInitBurst(io); sendErr != nil {
			events = append(events, radar.ControlErrorEvent{Identity: c.identity, Err: sendErr})
		}
		return events
	}
	if isFatalIOErr(err) || now-c.phaseStartMs > connectTimeoutMs {
		io.Close(c.handle)
		return c.advanceAfterFailure(io)
	}
	return nil
}

func (c *Controller) pollConnected(io radar.IOProvider) []radar.Event {
	now := io.NowMillis()
	var events []radar.Event

	buf := make([]byte, 1024)
	for {
		n, ok, err := io.TCPTryRecv(c.handle, buf)
		if err != nil {
			io.Close(c.handle)
			c.enterDisconnected(io)
			return append(events, radar.StateChangedEvent{Identity: c.identity, State: radar.Disconnected})
		}
		if !ok {
			break
		}
		if n > 0 {
			c.lastRecvMs = now
		}
		for _, line := range c.splitter.Feed(buf[:n]) {
			fr, ok := parseFrame(line)
			if !ok {
				continue // malformed line, discarded without touching state
			}
			if fr.Mode != ModeNotify {
				continue
			}
			ev, err := applyNotification(c.identity, c.normalized, fr, 0)
			if err != nil {
				continue // malformed frame body, discarded without touching state
			}
			events = append(events, ev...)
		}
	}

	if now-c.lastRecvMs > keepAliveTimeoutMs {
		io.Close(c.handle)
		c.enterDisconnected(io)
		return append(events, radar.StateChangedEvent{Identity: c.identity, State: radar.Disconnected})
	}

	if now-c.lastKeepAlive >= keepAliveIntervalMs {
		io.TCPSend(c.handle, buildFrame(ModeReq, "E3"))
		c.lastKeepAlive = now
	}

	return events
}

// enterDisconnected drops all the way back to the start of the login-port
// cycle and schedules the next attempt after a backoff delay.
func (c *Controller) enterDisconnected(io radar.IOProvider) {
	c.ph = phaseDisconnected
	c.state = radar.Disconnected
	c.mode = modeLoginPort
	c.portIdx = 0
	c.nextAttemptMs = io.NowMillis() + c.backoff.NextMs()
}

// advanceAfterFailure cycles to the next candidate port within the current
// mode and, once a list is exhausted, either moves to the next mode or —
// if the fallback list is also exhausted — drops to Disconnected for a
// backoff interval once both the login ports and the direct fallback
// ports are exhausted.
func (c *Controller) advanceAfterFailure(io radar.IOProvider) []radar.Event {
	switch c.mode {
	case modeLoginPort:
		c.portIdx++
		if c.portIdx < len(loginPortOrder) {
			c.ph = phaseDisconnected
			c.nextAttemptMs = 0
			return nil
		}
		c.mode = modeFallbackPort
		c.portIdx = 0
		c.ph = phaseDisconnected
		c.nextAttemptMs = 0
		return nil

	case modeDirectCommand:
		// The login handshake succeeded but the named command port refused
		// the connection; fall back to probing the fixed command ports.
		c.mode = modeFallbackPort
		c.portIdx = 0
		c.ph = phaseDisconnected
		c.nextAttemptMs = 0
		return nil

	default: // modeFallbackPort
		c.portIdx++
		if c.portIdx < len(fallbackCommandPorts) {
			c.ph = phaseDisconnected
			c.nextAttemptMs = 0
			return nil
		}
		c.enterDisconnected(io)
		return []radar.Event{radar.StateChangedEvent{Identity: c.identity, State: radar.Disconnected}}
	}
}

func isFatalIOErr(err error) bool {
	var cerr *radar.ControllerError
	if errors.As(err, &cerr) {
		return cerr.Stage == "connect"
	}
	return false
}

// sendInitBurst requests every reportable value once right after connect,
// so NormalizedState reflects the radar's actual configuration instead of
// the zero value until the radar's next unsolicited notify.
func (c *Controller) sendInitBurst(io radar.IOProvider) error {
	frames := [][]byte{
		buildFrame(ModeReq, "62"),
		buildFrame(ModeReq, "63"),
		buildFrame(ModeReq, "64"),
		buildFrame(ModeReq, "65"),
		buildFrame(ModeReq, "67", "0", "3"),
		buildFrame(ModeReq, "67", "0", "0"),
		buildFrame(ModeReq, "EE"),
		buildFrame(ModeReq, "ED"),
		buildFrame(ModeReq, "EF"),
		buildFrame(ModeReq, "89"),
		buildFrame(ModeReq, "83"),
		buildFrame(ModeReq, "EC"),
		buildFrame(ModeReq, "77"),
		buildFrame(ModeReq, "81"),
		buildFrame(ModeReq, "84"),
	}
	for _, f := range frames {
		if err := io.TCPSend(c.handle, f); err != nil {
			return radar.NewIOError("send", err)
		}
	}
	return nil
}

func (c *Controller) Set(io radar.IOProvider, controlID string, value radar.ControlValue) error {
	if c.shutdownFlag {
		return radar.NewNotReady()
	}
	if !c.manifest.HasControl(controlID) {
		return radar.NewUnknownControl(controlID)
	}
	if c.state != radar.Connected {
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

	var frame []byte
	switch controlID {
	case controldefs.Power:
		frame = buildFrame(ModeSet, "69", itoa(int(value.Value)), itoa(value.Screen))
	case controldefs.Range:
		idx := RangeIndexForMeters(value.Value)
		frame = buildFrame(ModeSet, "62", itoa(idx), "0", itoa(value.Screen))
	case controldefs.Gain:
		frame = buildFrame(ModeSet, "63", boolField(value.Auto), itoa(int(value.Value)))
	case controldefs.Sea:
		frame = buildFrame(ModeSet, "64", boolField(value.Auto), itoa(int(value.Value)))
	case controldefs.Rain:
		frame = buildFrame(ModeSet, "65", boolField(value.Auto), itoa(int(value.Value)))
	case controldefs.IR:
		frame = buildFrame(ModeSet, "67", "0", "0", itoa(int(value.Value)), "0")
	case controldefs.NoiseRej:
		frame = buildFrame(ModeSet, "67", "0", "3", itoa(int(value.Value)), "0")
	case controldefs.BearingAlignment:
		frame = buildFrame(ModeSet, "81", itoa(HeadingUIToWire(value.Value)), "0")
	case controldefs.MainBangSize:
		frame = buildFrame(ModeSet, "83", itoa(PercentToWire(value.Value)), "0")
	case controldefs.AntennaHeight:
		frame = buildFrame(ModeSet, "84", "0", itoa(int(value.Value)), "0")
	case controldefs.ScanSpeed:
		frame = buildFrame(ModeSet, "89", itoa(int(value.Value)), "0")
	case controldefs.TXChannel:
		frame = buildFrame(ModeSet, "EC", itoa(int(value.Value)))
	case controldefs.BirdMode:
		frame = buildFrame(ModeSet, "ED", itoa(int(value.Value)), itoa(value.Screen))
	case controldefs.RezBoost:
		frame = buildFrame(ModeSet, "EE", itoa(int(value.Value)), itoa(value.Screen))
	case controldefs.TargetAnalyzer:
		frame = buildFrame(ModeSet, "EF", boolField(value.Enabled), itoa(int(value.Value)))
	case controldefs.AutoAcquire:
		frame = buildFrame(ModeSet, "F0", boolField(value.Enabled))
	case controldefs.NoTransmitSector1, controldefs.NoTransmitSector2:
		frame = c.buildBlindSectorFrame(controlID, value)
	default:
		return radar.NewUnknownControl(controlID)
	}

	if err := io.TCPSend(c.handle, frame); err != nil {
		return radar.NewIOError("send", err)
	}
	return nil
}

// buildBlindSectorFrame merges the sector being set with whatever the other
// sector's last-known value is, since $S77 always carries both sectors.
func (c *Controller) buildBlindSectorFrame(settingID string, value radar.ControlValue) []byte {
	enabled := value.Enabled != nil && *value.Enabled
	sector := decodeSector(value.Value, enabled)

	var sector1, sector2 BlindSector
	if settingID == controldefs.NoTransmitSector1 {
		sector1 = sector
	} else {
		sector2 = sector
	}
	other := controldefs.NoTransmitSector2
	if settingID == controldefs.NoTransmitSector2 {
		other = controldefs.NoTransmitSector1
	}
	if cv, ok := c.normalized.Get(other, 0); ok {
		otherEnabled := cv.Enabled != nil && *cv.Enabled
		otherSector := decodeSector(cv.Value, otherEnabled)
		if settingID == controldefs.NoTransmitSector1 {
			sector2 = otherSector
		} else {
			sector1 = otherSector
		}
	}

	s1start, s1width := BlindSectorToWire(sector1)
	s2start, s2width := BlindSectorToWire(sector2)
	s2en := "0"
	if sector2.Enabled {
		s2en = "1"
	}
	return buildFrame(ModeSet, "77", s2en, itoa(s1start), itoa(s1width), itoa(s2start), itoa(s2width))
}

func (c *Controller) Shutdown(io radar.IOProvider) {
	if c.shutdownFlag {
		return
	}
	c.shutdownFlag = true
	if c.handle != radar.NoHandle {
		io.Close(c.handle)
	}
	c.state = radar.Disconnected
	c.ph = phaseDisconnected
}

func itoa(v int) string { return strconv.Itoa(v) }

func boolField(b *bool) string {
	if b != nil && *b {
		return "1"
	}
	return "0"
}
