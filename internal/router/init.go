package router

import (
	"github.com/oksasatya/go-mcp-user-server/internal/container"
	handlers "github.com/oksasatya/go-mcp-user-server/internal/interface/http"
	"github.com/oksasatya/go-mcp-user-server/internal/router/modules"
)

// InitModules wires every HTTP module from the container into the registry.
// This function should be called once during application startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(cfg.ServerName, cfg.ServerVersion)))
	r.Add(modules.NewMCPModule(
		handlers.NewMCPHandler(c.MCPServer, cfg.MCPStateless, c.Logger),
		c.Redis,
		cfg.RateLimitPerMinute,
		cfg.CORSOrigins(),
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis, cfg.RateLimitPerMinute))
	}
}
