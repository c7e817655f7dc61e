package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iopps-backend-go/internal/cache"
	"iopps-backend-go/internal/core"
	"iopps-backend-go/internal/middleware"
	"iopps-backend-go/internal/models"
)

// EmployerHandler serves the employer console routes. Every route
// resolves the caller's organization first; callers with no org get
// 403.
type EmployerHandler struct {
	orgs         *core.OrgService
	jobs         *core.JobService
	events       *core.ListingService
	scholarships *core.ListingService
	cache        cache.Cache
	logger       *zap.Logger
}

// NewEmployerHandler creates an EmployerHandler. cache may be nil.
func NewEmployerHandler(orgs *core.OrgService, jobs *core.JobService, events, scholarships *core.ListingService, cache cache.Cache, logger *zap.Logger) *EmployerHandler {
	return &EmployerHandler{
		orgs: orgs, jobs: jobs, events: events, scholarships: scholarships,
		cache: cache, logger: logger,
	}
}

// resolveOrg maps the authenticated uid to its organization, writing
// the error response itself on failure.
func (h *EmployerHandler) resolveOrg(c *gin.Context) (*core.OrgContext, bool) {
	uid := c.GetString(middleware.ContextUserID)
	org, err := h.orgs.ResolveOrg(c.Request.Context(), uid)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return nil, false
	}
	return org, true
}

// invalidateJobCache drops the default job listing from cache after a
// mutation. Best effort; the 60s TTL bounds staleness for other query
// variants.
func (h *EmployerHandler) invalidateJobCache() {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete("jobs:list:"); err != nil {
		h.logger.Debug("job cache invalidation failed", zap.Error(err))
	}
}

// Check handles GET /api/employer/check.
func (h *EmployerHandler) Check(c *gin.Context) {
	org, ok := h.resolveOrg(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, org)
}

// UpdateProfile handles PUT /api/employer/profile.
func (h *EmployerHandler) UpdateProfile(c *gin.Context) {
	org, ok := h.resolveOrg(c)
	if !ok {
		return
	}
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	keys, err := h.orgs.UpdateProfile(c.Request.Context(), org.OrgID, body)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile updated", Data: gin.H{"updated": keys}})
}

// Stats handles GET /api/employer/stats.
func (h *EmployerHandler) Stats(c *gin.Context) {
	org, ok := h.resolveOrg(c)
	if !ok {
		return
	}
	stats, err := h.orgs.Stats(c.Request.Context(), org.OrgID)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CreateJob handles POST /api/employer/jobs.
func (h *EmployerHandler) CreateJob(c *gin.Context) {
	org, ok := h.resolveOrg(c)
	if !ok {
		return
	}
	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	job, err := h.jobs.CreateForOrg(c.Request.Context(), org, req)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	h.invalidateJobCache()
	c.JSON(http.StatusCreated, job)
}

// ListJobs handles GET /api/employer/jobs.
func (h *EmployerHandler) ListJobs(c *gin.Context) {
	org, ok := h.resolveOrg(c)
	if !ok {
		return
	}
	jobs, err := h.jobs.ListForOrg(c.Request.Context(), org.OrgID)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

func (h *EmployerHandler) createListing(c *gin.Context, svc *core.ListingService) {
	org, ok := h.resolveOrg(c)
	if !ok {
		return
	}
	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	listing, err := svc.CreateForOrg(c.Request.Context(), org, req)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

func (h *EmployerHandler) listListings(c *gin.Context, svc *core.ListingService) {
	org, ok := h.resolveOrg(c)
	if !ok {
		return
	}
	items, err := svc.ListForOrg(c.Request.Context(), org.OrgID)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// CreateEvent handles POST /api/employer/events.
func (h *EmployerHandler) CreateEvent(c *gin.Context) { h.createListing(c, h.events) }

// ListEvents handles GET /api/employer/events.
func (h *EmployerHandler) ListEvents(c *gin.Context) { h.listListings(c, h.events) }

// CreateScholarship handles POST /api/employer/scholarships.
func (h *EmployerHandler) CreateScholarship(c *gin.Context) { h.createListing(c, h.scholarships) }

// ListScholarships handles GET /api/employer/scholarships.
func (h *EmployerHandler) ListScholarships(c *gin.Context) { h.listListings(c, h.scholarships) }
