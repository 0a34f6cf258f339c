package pipeline

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
	"github.com/Aleph-Alpha/tracerelay/v1/metrics"
	"github.com/Aleph-Alpha/tracerelay/v1/relay"
	"github.com/Aleph-Alpha/tracerelay/v1/tracer"
)

// FXModule provides the Handler and the Server and runs the server for the
// lifetime of the application.
//
// Dependencies required by this module:
// - pipeline.Config
// - *tracer.Tracer
// - *relay.Client
// - metrics.Counters (may be nil)
// - *metrics.Metrics
// - logger.Logger
var FXModule = fx.Module("pipeline",
	fx.Provide(
		NewHandlerWithDI,
		func(cfg Config, h *Handler, m *metrics.Metrics, log logger.Logger) (*Server, error) {
			return NewServer(cfg, h, m, log)
		},
	),
	fx.Invoke(RegisterServerLifecycle),
)

// NewHandlerWithDI builds the Handler from the dependency injection container.
// The shared relay client is given ValidateValue here, since the entrypoint
// is its only user.
func NewHandlerWithDI(cfg Config, t *tracer.Tracer, r *relay.Client, counters metrics.Counters, log logger.Logger) *Handler {
	return NewHandler(cfg, t, r.WithBodyValidator(ValidateValue), counters, log)
}

// RegisterServerLifecycle binds the listener on start, so address errors
// abort startup, and drains in-flight requests on stop. Once started,
// s.Server.Addr holds the bound address.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", s.Server.Addr)
			if err != nil {
				return err
			}
			s.Server.Addr = ln.Addr().String()
			log.Info("Starting HTTP server", nil, map[string]interface{}{
				"address": s.Server.Addr,
				"role":    string(s.Role),
			})
			go func() {
				if err := s.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down HTTP server", nil, nil)
			return s.Server.Shutdown(ctx)
		},
	})
}
