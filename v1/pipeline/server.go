package pipeline

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aleph-Alpha/tracerelay/v1/logger"
)

// DurationRecorder records request latency per endpoint.
type DurationRecorder interface {
	RecordRequestDuration(start time.Time, endpoint string)
}

// Server is the HTTP surface of one process.
type Server struct {
	// Engine routes requests to the Handler.
	Engine *gin.Engine

	// Server listens on Config.Address and serves Engine.
	Server *http.Server

	// Role is the parsed Config.Role.
	Role Role
}

// NewServer builds the gin engine for cfg.Role and wraps it in an
// *http.Server bound to cfg.Address.
//
// Middleware order: panic recovery, then request logging and duration
// recording. durations and log may be nil.
func NewServer(cfg Config, h *Handler, durations DurationRecorder, log logger.Logger) (*Server, error) {
	role, err := ParseRole(cfg.Role)
	if err != nil {
		return nil, err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestMiddleware(log, durations))
	h.Register(engine, role)

	return &Server{
		Engine: engine,
		Server: &http.Server{
			Addr:              cfg.Address,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		Role: role,
	}, nil
}

func requestMiddleware(log logger.Logger, durations DurationRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		if durations != nil {
			durations.RecordRequestDuration(start, endpoint)
		}

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if log == nil {
			return
		}
		if len(c.Errors) > 0 {
			log.WarnWithContext(c.Request.Context(), "request failed", c.Errors.Last().Err, fields)
			return
		}
		log.DebugWithContext(c.Request.Context(), "request served", nil, fields)
	}
}
