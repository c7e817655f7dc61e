package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iopps-backend-go/internal/core"
)

// ListingHandler serves one public event-like collection. The same
// handler type backs events, scholarships, conferences, and education
// programs; only the bound service differs.
type ListingHandler struct {
	svc    *core.ListingService
	logger *zap.Logger
}

// NewListingHandler creates a ListingHandler.
func NewListingHandler(svc *core.ListingService, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{svc: svc, logger: logger}
}

// List handles the public GET route for the bound collection.
func (h *ListingHandler) List(c *gin.Context) {
	query := core.ListingQuery{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		EventType:    c.Query("eventType"),
		Location:     c.Query("location"),
		Province:     c.Query("province"),
		Limit:        core.ClampLimit(c.Query("limit"), core.DefaultListingPageSize),
		StartAfterID: c.Query("startAfterId"),
	}
	page, err := h.svc.ListPublic(c.Request.Context(), query)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
