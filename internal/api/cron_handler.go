package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iopps-backend-go/internal/core"
)

// CronHandler serves the secret-gated daily sweep routes. Expiry
// compares the stored YYYY-MM-DD strings lexicographically against
// today; the sweeps are safe to re-run.
type CronHandler struct {
	jobs         *core.JobService
	events       *core.ListingService
	scholarships *core.ListingService
	logger       *zap.Logger
}

// NewCronHandler creates a CronHandler.
func NewCronHandler(jobs *core.JobService, events, scholarships *core.ListingService, logger *zap.Logger) *CronHandler {
	return &CronHandler{jobs: jobs, events: events, scholarships: scholarships, logger: logger}
}

func (h *CronHandler) sweep(c *gin.Context, run func(ctx context.Context, today string) (int, error)) {
	today := time.Now().UTC().Format("2006-01-02")
	expired, err := run(c.Request.Context(), today)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"expired":   expired,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ExpireJobs handles GET /api/cron/expire-jobs.
func (h *CronHandler) ExpireJobs(c *gin.Context) {
	h.sweep(c, h.jobs.ExpireBefore)
}

// ExpireEvents handles GET /api/cron/expire-events.
func (h *CronHandler) ExpireEvents(c *gin.Context) {
	h.sweep(c, h.events.ExpireBefore)
}

// ExpireScholarships handles GET /api/cron/expire-scholarships.
func (h *CronHandler) ExpireScholarships(c *gin.Context) {
	h.sweep(c, h.scholarships.ExpireBefore)
}
