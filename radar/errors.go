package radar

import "fmt"

// ErrorKind enumerates the error kinds surfaced to the host.
type ErrorKind int

const (
	ErrIO ErrorKind = iota
	ErrLoginFailed
	ErrUnknownControl
	ErrInvalidValue
	ErrNotConnected
	ErrNotReady
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIO:
		return "IoError"
	case ErrLoginFailed:
		return "LoginFailed"
	case ErrUnknownControl:
		return "UnknownControl"
	case ErrInvalidValue:
		return "InvalidValue"
	case ErrNotConnected:
		return "NotConnected"
	case ErrNotReady:
		return "NotReady"
	default:
		return "Unknown"
	}
}

// ControllerError is the typed error every Controller.Set (and internal
// transport code) returns. It wraps the underlying cause, if any, so hosts
// can errors.Is/errors.As through to it while still switching on Kind.
type ControllerError struct {
	Kind      ErrorKind
	ControlID string
	Stage     string
	Reason    string
	Err       error
}

func (e *ControllerError) Error() string {
	switch e.Kind {
	case ErrUnknownControl:
		return fmt.Sprintf("unknown control %q", e.ControlID)
	case ErrInvalidValue:
		return fmt.Sprintf("invalid value for control %q: %s", e.ControlID, e.Reason)
	case ErrNotConnected:
		return "not connected"
	case ErrNotReady:
		return "controller shut down"
	case ErrLoginFailed:
		if e.Err != nil {
			return fmt.Sprintf("login failed: %v", e.Err)
		}
		return "login failed"
	default:
		if e.Err != nil {
			return fmt.Sprintf("io error (%s): %v", e.Stage, e.Err)
		}
		return fmt.Sprintf("io error (%s)", e.Stage)
	}
}

func (e *ControllerError) Unwrap() error { return e.Err }

func NewIOError(stage string, err error) *ControllerError {
	return &ControllerError{Kind: ErrIO, Stage: stage, Err: err}
}

func NewLoginFailed(err error) *ControllerError {
	return &ControllerError{Kind: ErrLoginFailed, Err: err}
}

func NewUnknownControl(id string) *ControllerError {
	return &ControllerError{Kind: ErrUnknownControl, ControlID: id}
}

func NewInvalidValue(id, reason string) *ControllerError {
	return &ControllerError{Kind: ErrInvalidValue, ControlID: id, Reason: reason}
}

func NewNotConnected() *ControllerError {
	return &ControllerError{Kind: ErrNotConnected}
}

func NewNotReady() *ControllerError {
	return &ControllerError{Kind: ErrNotReady}
}

// MalformedPacketError describes a discarded packet. It is never returned
// from Set or surfaced to the host as a state change; it exists purely
// so the internal discard-and-log path has a consistent value to format
// into a log line.
type MalformedPacketError struct {
	Len        int
	FirstBytes []byte
}

func (e *MalformedPacketError) Error() string {
	n := e.FirstBytes
	if len(n) > 8 {
		n = n[:8]
	}
	return fmt.Sprintf("malformed packet (len=%d, first bytes=% x)", e.Len, n)
}
