package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Pinger is a dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
	started time.Time
}

// NewHealthHandler creates a HealthHandler checking the named dependencies
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
		started: time.Now(),
	}
}

// HealthResponse reports overall and per-dependency status
type HealthResponse struct {
	Status   string            `json:"status"`
	Uptime   string            `json:"uptime,omitempty"`
	Services map[string]string `json:"services,omitempty"`
}

// Live handles GET /health/live. It only proves the process is serving.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

// Ready handles GET /health/ready and GET /health. It returns 503 if any
// dependency fails its ping.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "healthy",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Services: make(map[string]string, len(h.checks)),
	}
	// Checks run concurrently and independently; one failure does not cancel the rest.
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for name, check := range h.checks {
		g.Go(func() error {
			err := check.Ping(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				resp.Services[name] = "unhealthy: " + err.Error()
				return err
			}
			resp.Services[name] = "healthy"
			return nil
		})
	}

	status := http.StatusOK
	if err := g.Wait(); err != nil {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
