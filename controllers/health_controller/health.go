package health_controller

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

const pingTimeout = 2 * time.Second

// Check is one named dependency pinged by the readiness endpoint.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Handler struct {
	checks []Check
}

func NewHandler(checks ...Check) *Handler {
	return &Handler{checks: checks}
}

func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", gin.H{"status": "up"}))
}

// Ready pings every dependency concurrently and reports 503 if any fails.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]string, len(h.checks))
		healthy = true
	)
	for _, check := range h.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := "up"
			if err := check.Ping(ctx); err != nil {
				status = "down: " + err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			results[check.Name] = status
			if status != "up" {
				healthy = false
			}
		}()
	}
	wg.Wait()

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, models.ApiResponse{
			Message: "Service not ready",
			Error:   true,
			Data:    results,
		})
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "ready", results))
}
