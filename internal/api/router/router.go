package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/config"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/api/handler"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/api/middleware"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/jwt"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/redis"
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
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，带登录限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", middleware.RateLimit(rdb, 30, time.Minute), h.Auth.Refresh)
		}

		// 日历订阅（公开，供"添加到日历"链接使用）
		v1.GET("/calendar.ics", h.Export.CalendarFeed)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.GET("", middleware.RoleAuth("admin"), h.User.ListUsers)
				users.PUT("/:id/role", middleware.RoleAuth("admin"), h.User.UpdateRole)
			}

			// 主办方模块
			sponsors := authorized.Group("/sponsors")
			{
				sponsors.GET("", h.Sponsor.List)
				sponsors.GET("/:id", h.Sponsor.Get)
				sponsors.POST("", middleware.RoleAuth("admin"), h.Sponsor.Create)
				sponsors.PUT("/:id", middleware.RoleAuth("admin"), h.Sponsor.Update)
			}

			// 赛事模块
			events := authorized.Group("/events")
			{
				events.GET("", h.Event.List)
				events.GET("/:id", h.Event.Get)
				events.POST("", middleware.RoleAuth("admin"), h.Event.Create)
				events.PUT("/:id", middleware.RoleAuth("admin"), h.Event.Update)
				events.DELETE("/:id", middleware.RoleAuth("admin"), h.Event.Delete)

				// 评审编排（主持人/管理员）
				events.PUT("/:id/judging-phase", middleware.RoleAuth("admin", "moderator"), h.Event.UpdateJudgingPhase)
				events.PUT("/:id/active-team", middleware.RoleAuth("admin", "moderator"), h.Event.SetActiveTeam)
				events.GET("/:id/moderator-status", middleware.RoleAuth("admin", "moderator"), h.Event.ModeratorStatus)
				events.GET("/:id/insights", middleware.RoleAuth("admin"), h.Event.Insights)

				// 队伍（赛事作用域）
				events.GET("/:id/teams", h.Team.ListByEvent)
				events.POST("/:id/teams", middleware.RoleAuth("admin", "moderator"), h.Team.Create)

				// 评委席位（赛事作用域）
				events.GET("/:id/judges", h.Judge.ListByEvent)
				events.POST("/:id/judges", middleware.RoleAuth("admin"), h.Judge.Assign)
				events.DELETE("/:id/judges/:judgeId", middleware.RoleAuth("admin"), h.Judge.Remove)
				events.GET("/:id/judges/online", middleware.RoleAuth("admin", "moderator"), h.Judge.Online)
				events.GET("/:id/judges/:judgeId/progress", h.Judge.Progress)
				events.POST("/:id/judges/:judgeId/logout", h.Judge.Logout)

				// 榜单与矩阵
				events.GET("/:id/leaderboard", h.Score.Leaderboard)
				events.GET("/:id/scoring-matrix", middleware.RoleAuth("admin", "moderator"), h.Score.Matrix)
				events.GET("/:id/export/scoring-matrix", middleware.RoleAuth("admin", "moderator"), h.Export.ExportScoringMatrix)
			}

			// 队伍模块
			teams := authorized.Group("/teams")
			{
				teams.GET("/:id", h.Team.Get)
				teams.GET("/:id/detail", middleware.RoleAuth("admin", "moderator"), h.Team.GetDetail)
				teams.PUT("/:id", middleware.RoleAuth("admin", "moderator"), h.Team.Update)
				teams.PUT("/:id/status", middleware.RoleAuth("admin", "moderator"), h.Team.UpdateStatus)
				teams.DELETE("/:id", middleware.RoleAuth("admin"), h.Team.Delete)
				teams.POST("/:id/members", middleware.RoleAuth("admin", "moderator"), h.Team.AddMember)
				teams.DELETE("/:id/members/:memberId", middleware.RoleAuth("admin", "moderator"), h.Team.RemoveMember)
			}

			// 评委模块（席位无关的入口）
			judges := authorized.Group("/judges")
			{
				judges.GET("/my-seats", h.Judge.MySeats)
				judges.POST("/heartbeat", h.Judge.Heartbeat)
			}

			// 评分标准与打分
			authorized.GET("/rubric", h.Score.ListCriteria)
			authorized.POST("/scores", h.Score.Submit)

			// 活动日志
			authorized.GET("/activity", middleware.RoleAuth("admin", "moderator"), h.Activity.List)
		}
	}

	return r
}
