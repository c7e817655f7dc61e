package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"iopps-backend-go/internal/models"
)

const sessionCookieTTL = time.Hour

// SessionMinter exchanges a verified ID token for a session cookie.
// *auth.Client satisfies it.
type SessionMinter interface {
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
}

// SessionHandler serves POST /api/auth/session.
type SessionHandler struct {
	minter SessionMinter
	secure bool
	logger *zap.Logger
}

// NewSessionHandler creates a SessionHandler. secure controls the
// cookie's Secure flag; off only for local development.
func NewSessionHandler(minter SessionMinter, secure bool, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{minter: minter, secure: secure, logger: logger}
}

// originMatchesHost reports whether the Origin header, when present,
// names the same host the request was sent to. Browser requests
// always carry Origin on cross-site POSTs; a mismatch means the
// request came from another site.
func originMatchesHost(c *gin.Context) bool {
	origin := c.GetHeader("Origin")
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return parsed.Host == c.Request.Host
}

// Create mints the session cookie from a Firebase ID token.
func (h *SessionHandler) Create(c *gin.Context) {
	if !originMatchesHost(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	cookie, err := h.minter.SessionCookie(c.Request.Context(), req.IDToken, sessionCookieTTL)
	if err != nil {
		h.logger.Debug("session cookie mint failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("session", cookie, int(sessionCookieTTL.Seconds()), "/", "", h.secure, true)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Session created"})
}
