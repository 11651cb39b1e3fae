package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"

	_ "taskboard/docs"

	"github.com/gin-gonic/gin"
)

func newTestEngine(ping func(context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{App: config.AppConfig{Env: "test", Version: "1.2.3"}}
	r := gin.New()
	Setup(r, cfg, Deps{Issuer: auth.NewIssuer("routes-test-secret", time.Hour), Ping: ping})
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPublicRoutes(t *testing.T) {
	r := newTestEngine(nil)

	if w := get(r, "/version"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "1.2.3") {
		t.Fatalf("version: %d %s", w.Code, w.Body.String())
	}
	if w := get(r, "/health"); w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}
	if w := get(r, "/swagger-doc.json"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/tasks/bulk") {
		t.Fatalf("swagger doc: %d", w.Code)
	}
}

func TestHealthReportsStorageFailure(t *testing.T) {
	r := newTestEngine(func(context.Context) error { return errors.New("dial tcp: refused") })
	w := get(r, "/health")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "refused") {
		t.Fatalf("cause leaked: %s", w.Body.String())
	}
}

func TestProtectedPrefixesRequireToken(t *testing.T) {
	r := newTestEngine(nil)
	paths := []string{"/api/user/me", "/api/workspaces", "/api/projects", "/api/tags", "/api/tasks", "/api/tasks/stats"}
	for _, p := range paths {
		w := get(r, p)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: code = %d", p, w.Code)
		}
		if !strings.Contains(w.Body.String(), "No token provided") {
			t.Fatalf("%s: body = %s", p, w.Body.String())
		}
	}
}
