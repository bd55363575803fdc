package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LukasdeSouza/login-corp-nexus-backend/config"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/api/handler"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/api/middleware"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/jwt"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Webhook 摄入入口（共享令牌 + 速率限制，无需用户认证）
		webhook := v1.Group("/notifications/webhook")
		webhook.Use(
			middleware.RateLimit(rdb, cfg.Webhook.RateLimit, cfg.Webhook.RateWindow),
			middleware.WebhookToken(cfg.Webhook.Token),
		)
		{
			webhook.POST("", h.Notification.Webhook)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.PUT("/read-multiple", h.Notification.MarkReadMultiple)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
				notifications.POST("", middleware.RoleAuth(model.RoleAdministrador), h.Notification.Create)
				notifications.DELETE("/:id", middleware.RoleAuth(model.RoleAdministrador), h.Notification.Deactivate)
				notifications.GET("/admin/list", middleware.RoleAuth(model.RoleAdministrador), h.Notification.AdminList)
				notifications.GET("/admin/stats", middleware.RoleAuth(model.RoleAdministrador), h.Notification.Stats)
			}

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth(model.RoleAdministrador, model.RoleRH), h.User.List)
				users.POST("", middleware.RoleAuth(model.RoleAdministrador, model.RoleRH), h.User.Create)
				users.GET("/:id", h.User.Get)
				users.PUT("/:id", middleware.RoleAuth(model.RoleAdministrador, model.RoleRH), h.User.Update)
				users.DELETE("/:id", middleware.RoleAuth(model.RoleAdministrador), h.User.Deactivate)
				users.PUT("/:id/role", middleware.RoleAuth(model.RoleAdministrador), h.User.AssignRole)
			}

			// 企业模块
			companies := authorized.Group("/companies")
			{
				companies.GET("", h.Company.List)
				companies.GET("/:id", h.Company.Get)
				companies.POST("", middleware.RoleAuth(model.RoleAdministrador), h.Company.Create)
				companies.PUT("/:id", middleware.RoleAuth(model.RoleAdministrador), h.Company.Update)
				companies.DELETE("/:id", middleware.RoleAuth(model.RoleAdministrador), h.Company.Deactivate)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/notification-stats", middleware.RoleAuth(model.RoleAdministrador), h.Export.ExportNotificationStats)
			}
		}
	}

	return r
}
