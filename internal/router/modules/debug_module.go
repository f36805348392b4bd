package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-mcp-user-server/internal/interface/middleware"
)

type DebugModule struct {
	Redis         *redis.Client
	RatePerMinute int
}

func NewDebugModule(rdb *redis.Client, ratePerMinute int) *DebugModule {
	return &DebugModule{Redis: rdb, RatePerMinute: ratePerMinute}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Public metrics endpoint (expvar), limited per IP in its own bucket; private networks bypass
	rl := middleware.RateLimit(m.Redis, m.RatePerMinute, time.Minute, middleware.ByClientIPAndRoute(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
