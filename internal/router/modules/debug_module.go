package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emartsoft/login-service/internal/container"
	"github.com/emartsoft/login-service/internal/interface/middleware"
)

// DebugModule exposes expvar metrics, rate limited per IP.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
