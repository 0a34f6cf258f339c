// Package logger provides structured, trace-aware logging on top of Uber's Zap.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" pattern:
//   - Logger interface: the logging contract consumed by the other packages
//   - LoggerClient struct: the Zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FXModule: provides *LoggerClient and Logger for dependency injection
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		EnableTracing: true,
//		ServiceName:   "tracerelay",
//	})
//
//	log.Info("worker listening", nil, map[string]interface{}{
//		"address": ":8080",
//	})
//
//	// trace_id and span_id are added from the span held by ctx
//	log.WarnWithContext(ctx, "dropping malformed traceparent", err, nil)
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_ENABLE_TRACING=true      # add trace_id/span_id to *WithContext entries
//	LOGGER_SERVICE_NAME=tracerelay  # "service" field on every entry
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
