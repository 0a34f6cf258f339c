package pipeline

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/propagation"
)

// Register adds the routes of role to routes.
func (h *Handler) Register(routes gin.IRoutes, role Role) {
	if role.servesEntrypoint() {
		routes.GET(RouteEntrypoint, h.Entrypoint)
	}
	if role.servesWorker() {
		routes.GET(RouteWorker, h.Worker)
	}
}

// Entrypoint serves GET /entrypoint. A failed relay yields a 500 whose body
// is the status text only.
func (h *Handler) Entrypoint(c *gin.Context) {
	value, err := h.Enter(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	c.String(http.StatusOK, strconv.Itoa(value))
}

// Worker serves GET /worker, reading trace context from the request headers.
func (h *Handler) Worker(c *gin.Context) {
	value := h.Work(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
	c.String(http.StatusOK, strconv.Itoa(value))
}
