package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iopps-backend-go/internal/core"
	"iopps-backend-go/internal/middleware"
)

// MemberHandler serves the member self-service profile routes.
type MemberHandler struct {
	members *core.MemberService
	logger  *zap.Logger
}

// NewMemberHandler creates a MemberHandler.
func NewMemberHandler(members *core.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{members: members, logger: logger}
}

// Profile handles GET /api/member/profile.
func (h *MemberHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)
	user, err := h.members.Profile(c.Request.Context(), uid)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PATCH /api/member/profile.
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	keys, err := h.members.UpdateProfile(c.Request.Context(), uid, body)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile updated", Data: gin.H{"updated": keys}})
}
