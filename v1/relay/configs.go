package relay

import "time"

// Config defines the relay settings.
type Config struct {
	// Timeout bounds each call, including reading the response body.
	// Zero leaves bounding to the Doer and the caller's context.
	Timeout time.Duration `yaml:"timeout" envconfig:"RELAY_TIMEOUT" default:"5s"`

	// PropagationEnabled controls whether the traceparent header is attached.
	// Disabling it makes the callee start its own traces.
	PropagationEnabled bool `yaml:"propagation_enabled" envconfig:"PROPAGATION_ENABLED" default:"true"`

	// MaxBodyBytes is the largest accepted response body. A longer body
	// fails the call with ReasonBodyTooLarge.
	MaxBodyBytes int64 `yaml:"max_body_bytes" envconfig:"RELAY_MAX_BODY_BYTES" default:"1048576"`
}
