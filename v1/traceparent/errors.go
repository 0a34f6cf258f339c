package traceparent

import (
	"errors"
	"fmt"
)

// ErrMalformedContext is matched by every error returned for a traceparent
// value that is present but fails structural validation.
var ErrMalformedContext = errors.New("traceparent: malformed context")

// MalformedError describes why a traceparent value was rejected.
type MalformedError struct {
	Value  string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("traceparent: malformed context %q: %s", e.Value, e.Reason)
}

// Is reports ErrMalformedContext as the error's kind.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedContext
}

// IsMalformed checks if the error is a malformed context error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedContext)
}

func malformed(value, format string, args ...interface{}) error {
	return &MalformedError{Value: value, Reason: fmt.Sprintf(format, args...)}
}
