package radar

import "github.com/google/uuid"

// Event is the closed set of things a controller's Poll (or the Locator)
// can report to the host.
type Event interface {
	isEvent()
}

// StateChangedEvent reports a ControllerState transition. Controller
// lifecycle transitions are themselves events: the host can display
// "connecting"/"connected"/"lost" without probing.
type StateChangedEvent struct {
	Identity RadarIdentity
	State    ControllerState
}

func (StateChangedEvent) isEvent() {}

// ControlChangedEvent reports that a report packet advanced one control's
// NormalizedState entry.
type ControlChangedEvent struct {
	Identity RadarIdentity
	Value    ControlValue
}

func (ControlChangedEvent) isEvent() {}

// ControlErrorEvent surfaces a protocol-level error response from the
// radar (e.g. a rejected set). It never mutates NormalizedState.
type ControlErrorEvent struct {
	Identity  RadarIdentity
	ControlID string
	Err       error
}

func (ControlErrorEvent) isEvent() {}

// RadarFoundEvent is emitted by the Locator, one per (identity, NIC) pair.
type RadarFoundEvent struct {
	CorrelationID uuid.UUID
	Identity      RadarIdentity
	Endpoints     RadarEndpoints
}

func (RadarFoundEvent) isEvent() {}
