package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iopps-backend-go/internal/core"
	"iopps-backend-go/internal/models"
)

// AdminHandler serves the privileged admin console routes.
type AdminHandler struct {
	admin        *core.AdminService
	orgs         *core.OrgService
	jobs         *core.JobService
	scholarships *core.ListingService
	logger       *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin *core.AdminService, orgs *core.OrgService, jobs *core.JobService, scholarships *core.ListingService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, orgs: orgs, jobs: jobs, scholarships: scholarships, logger: logger}
}

// ImportJobs handles POST /api/admin/import-jobs. Entries whose
// externalUrl already exists are skipped, never overwritten.
func (h *AdminHandler) ImportJobs(c *gin.Context) {
	var req models.ImportJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	result, err := h.jobs.Import(c.Request.Context(), req.Jobs)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Counts handles GET /api/admin/counts.
func (h *AdminHandler) Counts(c *gin.Context) {
	counts, err := h.admin.Counts(c.Request.Context())
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// UpdateUser handles PATCH /api/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if err := h.admin.UpdateUser(c.Request.Context(), c.Param("id"), body); err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User updated"})
}

// Verification handles POST /api/admin/verification/:id.
func (h *AdminHandler) Verification(c *gin.Context) {
	var body struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if err := h.orgs.SetVerification(c.Request.Context(), c.Param("id"), body.Approve); err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Verification updated", Data: gin.H{"approved": body.Approve}})
}

// SeedScholarships handles POST /api/admin/scholarships/seed.
func (h *AdminHandler) SeedScholarships(c *gin.Context) {
	var body struct {
		Scholarships []models.SeedScholarship `json:"scholarships"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	seeded, err := h.scholarships.Seed(c.Request.Context(), body.Scholarships)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seeded": seeded})
}

// ListPayments handles GET /api/admin/payments.
func (h *AdminHandler) ListPayments(c *gin.Context) {
	payments, err := h.admin.ListPayments(c.Request.Context())
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments, "count": len(payments)})
}
