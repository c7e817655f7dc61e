package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeMinter struct {
	cookie string
	err    error
}

func (f *fakeMinter) SessionCookie(_ context.Context, _ string, _ time.Duration) (string, error) {
	return f.cookie, f.err
}

func newSessionRouter(minter SessionMinter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewSessionHandler(minter, false, zap.NewNop())
	router.POST("/api/auth/session", handler.Create)
	return router
}

func postSession(router *gin.Engine, origin, host, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if host != "" {
		req.Host = host
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSessionOriginMismatchForbidden(t *testing.T) {
	router := newSessionRouter(&fakeMinter{cookie: "session-value"})

	rec := postSession(router, "https://evil.example", "iopps.ca", `{"idToken":"tok"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cross-origin request, got %d", rec.Code)
	}
}

func TestSessionMatchingOriginSetsCookie(t *testing.T) {
	router := newSessionRouter(&fakeMinter{cookie: "session-value"})

	rec := postSession(router, "https://iopps.ca", "iopps.ca", `{"idToken":"tok"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("expected session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be httpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("session cookie must be SameSite=Lax, got %v", cookie.SameSite)
	}
	if cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("expected 1h expiry, got %d", cookie.MaxAge)
	}
}

func TestSessionNoOriginAllowed(t *testing.T) {
	router := newSessionRouter(&fakeMinter{cookie: "session-value"})
	rec := postSession(router, "", "iopps.ca", `{"idToken":"tok"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without an Origin header, got %d", rec.Code)
	}
}

func TestSessionInvalidToken(t *testing.T) {
	router := newSessionRouter(&fakeMinter{err: errors.New("bad token")})
	rec := postSession(router, "https://iopps.ca", "iopps.ca", `{"idToken":"tok"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rejected token, got %d", rec.Code)
	}
	if rec.Body.String() != `{"error":"Unauthorized"}` {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestSessionMissingBody(t *testing.T) {
	router := newSessionRouter(&fakeMinter{cookie: "session-value"})
	rec := postSession(router, "", "iopps.ca", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing idToken, got %d", rec.Code)
	}
}
