package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-mcp-user-server/config"
	"github.com/oksasatya/go-mcp-user-server/internal/container"
	"github.com/oksasatya/go-mcp-user-server/internal/interface/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(t *testing.T, debug bool) *gin.Engine {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{
		ServerName:          "mcp-template",
		ServerVersion:       "1.0.0",
		DBDriver:            config.DriverMemory,
		CORSAllowedOrigins:  "*",
		RateLimitPerMinute:  120,
		DebugMetricsEnabled: debug,
	}
	c, err := container.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.Recovery(logger))
	reg := NewRegistry(r)
	reg.Use(middleware.RealIP(), func(c *gin.Context) {
		c.Header("X-Client-IP", c.GetString("real_ip"))
		c.Next()
	})
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(newEngine(t, false), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","name":"mcp-template","version":"1.0.0"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestMCPPreflight(t *testing.T) {
	r := newEngine(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
	req.Header.Set("Origin", "http://client.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Mcp-Session-Id")
	w := do(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Mcp-Session-Id")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))

	w = do(r, httptest.NewRequest(http.MethodOptions, "/mcp", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMCPCrossOriginPostExposesSessionHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{}`))
	req.Header.Set("Origin", "http://client.test")
	req.Header.Set("Content-Type", "application/json")
	w := do(newEngine(t, false), req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Mcp-Session-Id")
}

func TestRegistryMiddlewareSeesRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	w := do(newEngine(t, false), req)

	assert.Equal(t, "203.0.113.9", w.Header().Get("X-Client-IP"))
}

func TestDebugVarsToggle(t *testing.T) {
	w := do(newEngine(t, true), httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memstats")

	w = do(newEngine(t, false), httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
