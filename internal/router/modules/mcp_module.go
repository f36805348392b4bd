package modules

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-mcp-user-server/internal/interface/http"
	"github.com/oksasatya/go-mcp-user-server/internal/interface/middleware"
)

// MCPModule mounts the streamable MCP endpoint at /mcp.
// GET opens the server-to-client stream, POST carries JSON-RPC messages,
// DELETE ends a session and OPTIONS answers preflight with 204.
type MCPModule struct {
	Handler        *handlers.MCPHandler
	Redis          *redis.Client
	RatePerMinute  int
	AllowedOrigins []string
}

func NewMCPModule(h *handlers.MCPHandler, rdb *redis.Client, ratePerMinute int, origins []string) *MCPModule {
	return &MCPModule{Handler: h, Redis: rdb, RatePerMinute: ratePerMinute, AllowedOrigins: origins}
}

func (m *MCPModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/mcp")
	g.Use(cors.New(CORSConfig(m.AllowedOrigins)))
	g.OPTIONS("", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	// Per-IP limit; fail-open when redis is absent or unreachable
	g.Use(middleware.RateLimit(m.Redis, m.RatePerMinute, time.Minute, middleware.ByClientIP(), nil))
	g.GET("", m.Handler.Handle)
	g.POST("", m.Handler.Handle)
	g.DELETE("", m.Handler.Handle)
}

// CORSConfig builds the /mcp CORS policy. An empty list or "*" allows any origin.
func CORSConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", "Authorization", "Mcp-Session-Id"},
		ExposeHeaders: []string{"Content-Type", "Mcp-Session-Id"},
		MaxAge:        24 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
