package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
	"github.com/Aleph-Alpha/tracerelay/v1/metrics"
	"github.com/Aleph-Alpha/tracerelay/v1/tracer"
)

// Span events written by the relay.
const (
	EventReceivedResponse = "received response"
	EventRequestFailed    = "request failed"
)

const defaultMaxBodyBytes = 1 << 20

// RequestBuilder creates the outbound request. It receives the context the
// request must be bound to.
type RequestBuilder func(ctx context.Context) (*http.Request, error)

// Response is a fully read response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client relays requests with trace context attached.
type Client struct {
	cfg      Config
	tracer   *tracer.Tracer
	doer     Doer
	counters metrics.Counters
	logger   logger.Logger
	validate func(body []byte) error
	hop      string
}

// NewClient creates a relay Client that dispatches through a plain
// *http.Client and reports outcomes for the entrypoint hop.
//
// Parameters:
//   - cfg: timeout, propagation switch and body limit
//   - t: the tracer handle whose spans the relay annotates
//
// Collaborators are attached with the builder methods:
//
//	relayClient := relay.NewClient(cfg, tracerClient).
//		WithMetrics(counters).
//		WithLogger(log).
//		WithBodyValidator(parseValue)
func NewClient(cfg Config, t *tracer.Tracer) *Client {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Client{
		cfg:    cfg,
		tracer: t,
		doer:   &http.Client{},
		hop:    metrics.HopEntrypoint,
	}
}

// WithDoer replaces the transport.
func (c *Client) WithDoer(doer Doer) *Client {
	c.doer = doer
	return c
}

// WithMetrics attaches the success/failure counters. A nil Counters disables counting.
func (c *Client) WithMetrics(counters metrics.Counters) *Client {
	c.counters = counters
	return c
}

// WithLogger attaches a logger.
func (c *Client) WithLogger(log logger.Logger) *Client {
	c.logger = log
	return c
}

// WithBodyValidator makes a response whose body fails validate count as a
// transport failure.
func (c *Client) WithBodyValidator(validate func(body []byte) error) *Client {
	c.validate = validate
	return c
}

// WithPropagation overrides Config.PropagationEnabled.
func (c *Client) WithPropagation(enabled bool) *Client {
	c.cfg.PropagationEnabled = enabled
	return c
}

// WithTimeout overrides Config.Timeout. Zero disables the relay's own bound.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.cfg.Timeout = timeout
	return c
}

// WithHop sets the hop label used for counters.
func (c *Client) WithHop(hop string) *Client {
	c.hop = hop
	return c
}

// SendWithContext dispatches the request produced by build, carrying the
// trace context of the span held by ctx.
//
// Returns:
//   - *Response: status, headers and body of a 2xx response that passed validation
//   - error: a *TransportError for any failure; it unwraps to the cause, so
//     errors.Is(err, context.Canceled) identifies a cancelled caller
//
// Example:
//
//	ctx, span := tracerClient.StartSpan(ctx, "entrypoint", "entrypoint", tracer.AsRoot())
//	defer func() { tracerClient.FinishSpan(span, err) }()
//
//	resp, err := relayClient.SendWithContext(ctx, func(ctx context.Context) (*http.Request, error) {
//	    return http.NewRequestWithContext(ctx, http.MethodGet, "http://worker:8080/worker", nil)
//	})
func (c *Client) SendWithContext(ctx context.Context, build RequestBuilder) (*Response, error) {
	span := trace.SpanFromContext(ctx)

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req, err := build(ctx)
	if err != nil {
		return nil, c.fail(ctx, span, ReasonBuildRequest, 0, err)
	}
	if req.Header == nil {
		req.Header = http.Header{}
	}
	if c.cfg.PropagationEnabled {
		c.tracer.InjectCarrier(ctx, propagation.HeaderCarrier(req.Header))
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, c.fail(ctx, span, ReasonRequestFailed, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.fail(ctx, span, ReasonUnexpectedStatus, resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, c.fail(ctx, span, ReasonReadBody, resp.StatusCode, err)
	}
	if int64(len(body)) > c.cfg.MaxBodyBytes {
		return nil, c.fail(ctx, span, ReasonBodyTooLarge, resp.StatusCode,
			fmt.Errorf("body exceeds %d bytes", c.cfg.MaxBodyBytes))
	}

	if c.validate != nil {
		if err := c.validate(body); err != nil {
			return nil, c.fail(ctx, span, ReasonInvalidBody, resp.StatusCode, err)
		}
	}

	span.AddEvent(EventReceivedResponse, trace.WithAttributes(
		attribute.Int("http.status_code", resp.StatusCode),
	))
	if c.counters != nil {
		c.counters.IncrementSuccess(c.hop)
	}
	if c.logger != nil {
		c.logger.DebugWithContext(ctx, "relay request succeeded", nil, map[string]interface{}{
			"url":    req.URL.String(),
			"status": resp.StatusCode,
			"hop":    c.hop,
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// fail records a failed call on the span and the failure counter. The error
// itself is recorded by whoever ends the span, usually through FinishSpan.
func (c *Client) fail(ctx context.Context, span trace.Span, reason string, status int, cause error) error {
	err := &TransportError{Reason: reason, StatusCode: status, Err: cause}

	attrs := []attribute.KeyValue{
		attribute.String("failure.reason", reason),
		attribute.String("error.message", cause.Error()),
	}
	if status != 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}
	span.AddEvent(EventRequestFailed, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, err.Error())

	if c.counters != nil {
		c.counters.IncrementFailure(c.hop)
	}
	if c.logger != nil {
		c.logger.ErrorWithContext(ctx, "relay request failed", cause, map[string]interface{}{
			"reason": reason,
			"status": status,
			"hop":    c.hop,
		})
	}
	return err
}
