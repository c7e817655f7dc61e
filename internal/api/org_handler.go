package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iopps-backend-go/internal/core"
)

// OrgHandler serves the public organization directory.
type OrgHandler struct {
	orgs   *core.OrgService
	logger *zap.Logger
}

// NewOrgHandler creates an OrgHandler.
func NewOrgHandler(orgs *core.OrgService, logger *zap.Logger) *OrgHandler {
	return &OrgHandler{orgs: orgs, logger: logger}
}

func (h *OrgHandler) list(c *gin.Context, orgType string) {
	query := core.OrgQuery{
		Search:   c.Query("search"),
		Type:     orgType,
		Province: c.Query("province"),
		Location: c.Query("location"),
		Page:     core.ParsePage(c.Query("page")),
		Limit:    core.ClampLimit(c.Query("limit"), core.DefaultListingPageSize),
	}
	if query.Type == "" {
		query.Type = c.Query("type")
	}
	page, err := h.orgs.ListPublic(c.Request.Context(), query)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// List handles GET /api/organizations.
func (h *OrgHandler) List(c *gin.Context) {
	h.list(c, "")
}

// ListSchools handles GET /api/schools; the directory restricted to
// organizations of type "school".
func (h *OrgHandler) ListSchools(c *gin.Context) {
	h.list(c, "school")
}
