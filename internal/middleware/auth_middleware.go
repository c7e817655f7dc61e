package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware for downstream handlers.
const (
	ContextUserID = "userID"
	ContextClaims = "userClaims"
	ContextCron   = "cronCaller"
)

// TokenVerifier verifies a Firebase ID token. *auth.Client satisfies
// it; tests substitute a fake.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthMiddleware provides Gin middleware for Firebase token
// authentication and the shared-secret cron gate.
type AuthMiddleware struct {
	verifier   TokenVerifier
	cronSecret string
	logger     *zap.Logger
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(verifier TokenVerifier, cronSecret string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, cronSecret: cronSecret, logger: logger}
}

// unauthorized is the single 401 response. Missing, malformed, and
// invalid credentials all produce the same body so callers cannot
// probe which check failed.
func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func (m *AuthMiddleware) verify(c *gin.Context) (*auth.Token, bool) {
	idToken := bearerToken(c)
	if idToken == "" {
		return nil, false
	}
	token, err := m.verifier.VerifyIDToken(c.Request.Context(), idToken)
	if err != nil {
		m.logger.Debug("token verification failed", zap.Error(err))
		return nil, false
	}
	return token, true
}

// RequireAuth verifies the bearer ID token and sets the caller's uid
// and claims in the Gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.verify(c)
		if !ok {
			unauthorized(c)
			return
		}
		c.Set(ContextUserID, token.UID)
		c.Set(ContextClaims, token.Claims)
		c.Next()
	}
}

func isAdmin(claims map[string]interface{}) bool {
	if admin, ok := claims["admin"].(bool); ok && admin {
		return true
	}
	if role, ok := claims["role"].(string); ok && role == "admin" {
		return true
	}
	return false
}

// RequireAdmin verifies the bearer token and requires an admin claim.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.verify(c)
		if !ok {
			unauthorized(c)
			return
		}
		if !isAdmin(token.Claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Set(ContextUserID, token.UID)
		c.Set(ContextClaims, token.Claims)
		c.Next()
	}
}

// cronSecretMatches checks the shared cron secret from either the
// x-cron-secret header or a bearer Authorization header.
func (m *AuthMiddleware) cronSecretMatches(c *gin.Context) bool {
	provided := c.GetHeader("x-cron-secret")
	if provided == "" {
		provided = bearerToken(c)
	}
	if provided == "" || m.cronSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(m.cronSecret)) == 1
}

// RequireCronSecret gates the scheduled sweep routes behind the
// shared secret.
func (m *AuthMiddleware) RequireCronSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.cronSecretMatches(c) {
			unauthorized(c)
			return
		}
		c.Set(ContextCron, true)
		c.Next()
	}
}

// AdminOrCron admits either an admin bearer token or the cron secret.
// The import route accepts both so the feed can run unattended while
// admins can trigger it manually.
func (m *AuthMiddleware) AdminOrCron() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cronSecretMatches(c) {
			c.Set(ContextCron, true)
			c.Next()
			return
		}
		token, ok := m.verify(c)
		if !ok {
			unauthorized(c)
			return
		}
		if !isAdmin(token.Claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Set(ContextUserID, token.UID)
		c.Set(ContextClaims, token.Claims)
		c.Next()
	}
}
