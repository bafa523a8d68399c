package radar

import "fmt"

// Controller is the common contract every brand controller implements.
// Construction is brand-specific (see Factory below); the rest of the
// surface is uniform so a host can drive any controller identically.
type Controller interface {
	Identity() RadarIdentity

	// Poll is the single scheduling hook. Each invocation performs at most
	// one transport-level action, drains every pending datagram/byte chunk
	// from io, feeds them through the brand parser, and returns the batch
	// of events produced. Never blocks.
	Poll(io IOProvider) []Event

	State() ControllerState
	IsConnected() bool

	// Snapshot returns the last-observed-value-per-control view.
	Snapshot() StateSnapshot

	Capabilities() CapabilityManifest

	// Set dispatches by controlID via a table the controller owns.
	// UnknownControl if controlID isn't in Capabilities().Controls; ranged
	// values are clamped rather than rejected; an unrecognized enum variant
	// is InvalidValue.
	Set(io IOProvider, controlID string, value ControlValue) error

	// Shutdown closes every provider handle this controller owns. After
	// Shutdown, Poll and Set return NotReady.
	Shutdown(io IOProvider)
}

// Factory constructs a brand's Controller from locator-discovered identity
// and endpoints plus the model database's capability manifest for it.
type Factory func(identity RadarIdentity, endpoints RadarEndpoints, manifest CapabilityManifest) (Controller, error)

var registry = make(map[Brand]Factory)

// Register installs a brand's controller constructor. Brand packages
// (radar/furuno, radar/navico, radar/raymarine, radar/garmin) call this
// from an init() in a register.go file, mirroring the teacher's
// audio_extensions self-registration pattern.
func Register(b Brand, f Factory) {
	registry[b] = f
}

// New looks up the registered Factory for identity.Brand and constructs a
// controller.
func New(identity RadarIdentity, endpoints RadarEndpoints, manifest CapabilityManifest) (Controller, error) {
	f, ok := registry[identity.Brand]
	if !ok {
		return nil, fmt.Errorf("radar: no controller registered for brand %s", identity.Brand)
	}
	return f(identity, endpoints, manifest)
}
