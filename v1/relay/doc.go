// Package relay sends an outbound HTTP request on behalf of the current span
// and carries its trace context to the receiving service.
//
// For every call the Client:
//  1. encodes the span context held by ctx with the traceparent codec
//  2. merges the carrier into the request headers (other headers survive,
//     an existing traceparent is overwritten)
//  3. dispatches the request through the configured Doer
//  4. on success adds a "received response" event to the current span and
//     increments the success counter once
//  5. on failure adds a "request failed" event with the reason, sets the
//     span status to error, increments the failure counter once, and
//     returns a *TransportError
//
// The Client never retries and never memoizes: two calls with the same
// context are two independent outcomes. It does not end the caller's span;
// the frame that started the span ends it.
//
// Basic Usage:
//
//	relayClient := relay.NewClient(relay.Config{Timeout: 5 * time.Second}, tracerClient).
//		WithMetrics(counters).
//		WithLogger(log)
//
//	resp, err := relayClient.SendWithContext(ctx, func(ctx context.Context) (*http.Request, error) {
//		return http.NewRequestWithContext(ctx, http.MethodGet, workerURL, nil)
//	})
//	if relay.IsTransportError(err) {
//		// span status and failure counter are already recorded
//	}
//
// Thread Safety:
//
// A configured Client is safe for concurrent use. Builder methods are meant
// for setup and must not race with SendWithContext.
package relay
