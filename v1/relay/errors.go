package relay

import (
	"errors"
	"fmt"
)

// ErrTransport is matched by every error SendWithContext returns.
var ErrTransport = errors.New("relay: transport failure")

// Failure reasons recorded on the span and carried by TransportError.
const (
	ReasonBuildRequest     = "request build failed"
	ReasonRequestFailed    = "request failed"
	ReasonUnexpectedStatus = "unexpected status"
	ReasonReadBody         = "read body failed"
	ReasonBodyTooLarge     = "body too large"
	ReasonInvalidBody      = "invalid body"
)

// TransportError describes a failed outbound call.
type TransportError struct {
	Reason     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("relay: %s (status %d): %v", e.Reason, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("relay: %s: %v", e.Reason, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports ErrTransport as the error's kind.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// IsTransportError checks if the error is a relay transport error.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}
