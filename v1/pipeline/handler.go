package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
	"github.com/Aleph-Alpha/tracerelay/v1/metrics"
	"github.com/Aleph-Alpha/tracerelay/v1/relay"
	"github.com/Aleph-Alpha/tracerelay/v1/tracer"
)

// Routes served by the Handler.
const (
	RouteEntrypoint = "/entrypoint"
	RouteWorker     = "/worker"
)

// Tracer and span names.
const (
	TracerEntrypoint = "entrypoint"
	TracerWorker     = "worker"

	SpanEntrypoint = "entrypoint"
	SpanWorker     = "worker"
	SpanIsOdd      = "is-odd"
)

// Span events and attributes written by the Handler.
const (
	EventComputedValue = "computed value"
	EventDecision      = "decision"

	AttrResultValue = "result.value"
	AttrOdd         = "odd"
	AttrValue       = "value"
)

// Handler implements the entrypoint and worker roles.
type Handler struct {
	tracer    *tracer.Tracer
	relay     *relay.Client
	counters  metrics.Counters
	logger    logger.Logger
	dice      Dice
	workerURL string
}

// NewHandler creates a Handler.
//
// Parameters:
//   - cfg: provides the worker base URL
//   - t: tracer handle for every span the handler opens
//   - r: relay used by the entrypoint. Give it ValidateValue as body
//     validator so an unparsable worker reply counts as a relay failure.
//   - counters: success counter of the worker hop; nil disables counting
//   - log: logger; nil disables logging
//
// Returns a Handler using NewDice. Use WithDice to replace the source.
//
// Example:
//
//	relayClient := relay.NewClient(relayCfg, tracerClient).
//		WithMetrics(counters).
//		WithBodyValidator(pipeline.ValidateValue)
//	handler := pipeline.NewHandler(cfg, tracerClient, relayClient, counters, log)
func NewHandler(cfg Config, t *tracer.Tracer, r *relay.Client, counters metrics.Counters, log logger.Logger) *Handler {
	return &Handler{
		tracer:    t,
		relay:     r,
		counters:  counters,
		logger:    log,
		dice:      NewDice(),
		workerURL: strings.TrimRight(cfg.WorkerURL, "/"),
	}
}

// WithDice replaces the randomness source.
func (h *Handler) WithDice(dice Dice) *Handler {
	h.dice = dice
	return h
}

// Enter runs the entrypoint role: it opens a new trace, relays to the worker
// and returns the worker's value.
//
// The span is ended on every path. Its status is error when the relay fails,
// with "cancelled" or "deadline exceeded" when ctx ended first.
func (h *Handler) Enter(ctx context.Context) (value int, err error) {
	ctx, span := h.tracer.StartSpan(ctx, TracerEntrypoint, SpanEntrypoint,
		tracer.AsRoot(),
		tracer.WithAttributes(
			semconv.HTTPMethodKey.String(http.MethodGet),
			semconv.HTTPRouteKey.String(RouteEntrypoint),
		),
	)
	defer func() { h.tracer.FinishSpan(span, err) }()

	resp, err := h.relay.SendWithContext(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, h.workerURL+RouteWorker, nil)
	})
	if err != nil {
		return 0, err
	}

	value, err = parseValue(resp.Body)
	if err != nil {
		return 0, err
	}

	h.tracer.SetAttributes(span, map[string]interface{}{AttrResultValue: value})
	return value, nil
}

// Work runs the worker role for one request whose metadata is carrier.
//
// The worker span joins the trace found in carrier. Missing or malformed
// context starts a new trace instead; the request itself never fails.
func (h *Handler) Work(ctx context.Context, carrier propagation.TextMapCarrier) int {
	parent := h.tracer.RemoteParent(ctx, carrier)

	ctx, span := h.tracer.StartSpan(ctx, TracerWorker, SpanWorker,
		tracer.WithRemoteParent(parent),
		tracer.WithAttributes(
			semconv.HTTPMethodKey.String(http.MethodGet),
			semconv.HTTPRouteKey.String(RouteWorker),
		),
	)
	defer h.tracer.EndSpan(span, codes.Ok, "")

	draw := h.dice.Draw()
	if h.logger != nil {
		h.logger.DebugWithContext(ctx, "drew value", nil, map[string]interface{}{
			"draw": draw,
		})
	}

	value := h.decide(ctx, draw*2)

	span.AddEvent(EventComputedValue, trace.WithAttributes(attribute.Int(AttrValue, value)))
	h.tracer.SetAttributes(span, map[string]interface{}{AttrResultValue: value})
	if h.counters != nil {
		h.counters.IncrementSuccess(metrics.HopWorker)
	}
	return value
}

// decide adds one to value on a coin flip, inside its own span.
func (h *Handler) decide(ctx context.Context, value int) int {
	_, span := h.tracer.StartSpan(ctx, TracerWorker, SpanIsOdd)
	defer h.tracer.EndSpan(span, codes.Ok, "")

	odd := h.dice.Flip()
	if odd {
		value++
	}

	span.AddEvent(EventDecision, trace.WithAttributes(
		attribute.Bool(AttrOdd, odd),
		attribute.Int(AttrValue, value),
	))
	return value
}

func parseValue(body []byte) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return 0, fmt.Errorf("worker reply is not an integer: %w", err)
	}
	return value, nil
}

// ValidateValue accepts a worker reply: a decimal integer, optionally
// surrounded by whitespace.
func ValidateValue(body []byte) error {
	_, err := parseValue(body)
	return err
}
