package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iopps-backend-go/internal/cache"
	"iopps-backend-go/internal/core"
)

const jobListCacheTTL = 60 * time.Second

// JobHandler serves the public job routes.
type JobHandler struct {
	jobs   *core.JobService
	cache  cache.Cache
	logger *zap.Logger
}

// NewJobHandler creates a JobHandler. cache may be nil; the list
// route then always hits the store.
func NewJobHandler(jobs *core.JobService, cache cache.Cache, logger *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, cache: cache, logger: logger}
}

func jobListCacheKey(c *gin.Context) string {
	return "jobs:list:" + c.Request.URL.RawQuery
}

// List handles GET /api/jobs.
func (h *JobHandler) List(c *gin.Context) {
	if h.cache != nil {
		if cached, err := h.cache.Get(jobListCacheKey(c)); err == nil && cached != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	query := core.JobQuery{
		Search:         c.Query("search"),
		Category:       c.Query("category"),
		EmploymentType: c.Query("employmentType"),
		Location:       c.Query("location"),
		Province:       c.Query("province"),
		EmployerName:   c.Query("employer"),
		RemoteOnly:     c.Query("remote") == "true",
		IndigenousOnly: c.Query("indigenous") == "true",
		Page:           core.ParsePage(c.Query("page")),
		Limit:          core.ClampLimit(c.Query("limit"), core.DefaultJobPageSize),
	}

	page, err := h.jobs.ListPublic(c.Request.Context(), query)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}

	if h.cache != nil {
		if body, err := json.Marshal(page); err == nil {
			if err := h.cache.Set(jobListCacheKey(c), string(body), jobListCacheTTL); err != nil {
				h.logger.Debug("job list cache set failed", zap.Error(err))
			}
		}
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/jobs/:id. Inactive jobs answer 404 the same
// as missing ones.
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.GetActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// View handles POST /api/jobs/:id/view. Always answers 200; a view
// count is not worth surfacing errors for.
func (h *JobHandler) View(c *gin.Context) {
	h.jobs.RecordView(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}
