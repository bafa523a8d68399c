// Package locator is a beacon listener that binds each brand's discovery
// address on every configured NIC, parses inbound
// beacon packets into a RadarIdentity + RadarEndpoints pair, and emits one
// RadarFoundEvent per (identity, NIC) — deduplicated within a short window,
// the same poll-driven, never-blocking discipline the brand controllers
// use.
package locator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mayara-radar/mayara/radar"
)

// dedupWindowMs is how long a repeated beacon for the same (identity, NIC)
// is suppressed once emitted: beacons dedupe by unique key within this
// window.
const dedupWindowMs = 30_000

// beaconParser turns one inbound datagram into an identity/endpoints pair.
// ok is false for anything that doesn't match this brand's beacon shape —
// the caller discards it silently, mirroring the controllers' own
// malformed-packet handling: a bad packet never corrupts state.
type beaconParser func(src, nic radar.Addr, data []byte) (radar.RadarIdentity, radar.RadarEndpoints, bool)

type beaconSpec struct {
	brand Brand
	port  int
	group radar.Addr // zero IP means a plain bind, no multicast join (Furuno)
	parse beaconParser
}

// Brand is a local alias so this file reads naturally; it is radar.Brand.
type Brand = radar.Brand

var beaconSpecs = []beaconSpec{
	{brand: radar.Furuno, port: furunoBeaconPort, parse: parseFuruno},
	{brand: radar.Navico, port: navicoBeaconPort, group: radar.Addr{IP: navicoBeaconIP, Port: navicoBeaconPort}, parse: parseNavico},
	{brand: radar.Raymarine, port: raymarineBeaconPort, group: radar.Addr{IP: raymarineBeaconIP, Port: raymarineBeaconPort}, parse: parseRaymarine},
	{brand: radar.Garmin, port: garminBeaconPort, group: radar.Addr{IP: garminBeaconIP, Port: garminBeaconPort}, parse: parseGarmin},
}

type beaconSocket struct {
	brand  Brand
	nic    radar.Addr
	handle radar.Handle
}

type seenEntry struct {
	lastMs   int64
	modelKey string
}

// Locator discovers radars on a fixed set of NICs. Construct with New,
// call Start once to bind every beacon socket, then Poll repeatedly —
// exactly the same host-drives-time discipline as radar.Controller.Poll.
type Locator struct {
	nics    []radar.Addr
	sockets []beaconSocket
	seen    map[string]seenEntry
	buf     []byte
}

// New returns a Locator that will listen on every nic in nics (NIC IP,
// port ignored). Call Start before the first Poll.
func New(nics []radar.Addr) *Locator {
	return &Locator{
		nics: nics,
		seen: make(map[string]seenEntry),
		buf:  make([]byte, 2048),
	}
}

// Start binds a beacon listener for every brand on every configured NIC.
func (l *Locator) Start(io radar.IOProvider) error {
	for _, nic := range l.nics {
		for _, spec := range beaconSpecs {
			h, err := io.UDPBind(radar.Addr{IP: nic.IP, Port: spec.port})
			if err != nil {
				return fmt.Errorf("locator: bind %s beacon on %s: %w", spec.brand, nic.IP, err)
			}
			if spec.group.IP != "" {
				if err := io.UDPJoinMulticast(h, spec.group, nic); err != nil {
					return fmt.Errorf("locator: join %s beacon group on %s: %w", spec.brand, nic.IP, err)
				}
			}
			l.sockets = append(l.sockets, beaconSocket{brand: spec.brand, nic: nic, handle: h})
		}
	}
	return nil
}

// Poll drains every beacon socket, parses recognized packets, and returns
// the newly discovered (or re-upgraded) radars as RadarFoundEvent values.
// Never blocks; unrecognized or truncated beacons are silently discarded.
func (l *Locator) Poll(io radar.IOProvider) []radar.Event {
	var events []radar.Event
	now := io.NowMillis()
	parse := make(map[Brand]beaconParser, len(beaconSpecs))
	for _, spec := range beaconSpecs {
		parse[spec.brand] = spec.parse
	}

	for _, s := range l.sockets {
		for {
			n, src, ok, err := io.UDPTryRecv(s.handle, l.buf)
			if err != nil || !ok {
				break
			}
			data := l.buf[:n]
			identity, endpoints, matched := parse[s.brand](src, s.nic, data)
			if !matched {
				continue
			}
			endpoints.NIC = s.nic.IP
			if l.shouldEmit(identity, s.nic.IP, now) {
				events = append(events, radar.RadarFoundEvent{
					CorrelationID: uuid.New(),
					Identity:      identity,
					Endpoints:     endpoints,
				})
			}
		}
	}
	return events
}

// shouldEmit applies the dedup policy: emit for a never-seen key, once the
// window has elapsed, or when this packet newly resolves a model key that
// a prior sighting left empty (an "upgrade", e.g. Furuno's announce
// arriving before its model response).
func (l *Locator) shouldEmit(identity radar.RadarIdentity, nic string, now int64) bool {
	key := identity.Key() + "|" + nic
	prev, existed := l.seen[key]
	emit := !existed || now-prev.lastMs > dedupWindowMs || (identity.ModelKey != "" && prev.modelKey == "")
	if emit {
		l.seen[key] = seenEntry{lastMs: now, modelKey: identity.ModelKey}
	} else {
		prev.lastMs = now
		l.seen[key] = prev
	}
	return emit
}

// Shutdown closes every beacon socket. The Locator is unusable afterward.
func (l *Locator) Shutdown(io radar.IOProvider) {
	for _, s := range l.sockets {
		io.Close(s.handle)
	}
	l.sockets = nil
}
