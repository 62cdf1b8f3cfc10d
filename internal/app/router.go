package app

import (
	"learning_coach_backend/docs"
	"learning_coach_backend/internal/config"
	"learning_coach_backend/internal/middleware"

	"learning_coach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerAuthorizedRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerAuthorizedRoutes(rg *gin.RouterGroup, c *controllers) {
	// 用户资料
	rg.GET("/users/me", c.user.GetMe)
	rg.PUT("/users/me", c.user.UpdateMe)
	rg.PUT("/users/me/password", c.user.ChangePassword)

	// 学习计划
	rg.POST("/plans/generate", c.plan.Generate)
	rg.GET("/plans", c.plan.List)
	rg.GET("/plans/:id", c.plan.Get)
	rg.GET("/plans/:id/statistics", c.plan.Statistics)
	rg.PUT("/plans/:id/progress", c.plan.UpdateProgress)
	rg.DELETE("/plans/:id", c.plan.Delete)

	// 测验
	rg.POST("/quizzes/generate", c.quiz.Generate)
	rg.POST("/quizzes/submit", c.quiz.Submit)
	rg.GET("/quizzes/history", c.quiz.History)

	// 学习分析
	rg.GET("/analytics/summary", c.analytics.GetSummary)
	rg.GET("/analytics/topics", c.analytics.GetTopics)
	rg.GET("/analytics/activity", c.analytics.GetActivity)
	rg.GET("/analytics/recommendations", c.analytics.GetRecommendations)

	// 跨平台洞察
	rg.GET("/insights", c.insights.GetInsights)

	// 平台集成
	integrations := rg.Group("/integrations")
	{
		integrations.GET("/status", c.integration.Status)
		integrations.POST("/sync", c.integration.SyncAll)
		integrations.GET("/github/activity", c.integration.GitHubActivity)
		integrations.GET("/github/learning-paths", c.integration.LearningPaths)
		integrations.GET("/udemy/analytics", c.integration.UdemyAnalytics)
		integrations.GET("/calendar/events", c.integration.CalendarEvents)
		integrations.POST("/calendar/events", c.integration.CreateCalendarEvent)

		integrations.POST("/:platform/connect", c.integration.Connect)
		integrations.POST("/:platform/sync", c.integration.Sync)
		integrations.DELETE("/:platform", c.integration.Disconnect)
	}

	// 学习报告
	rg.GET("/reports/learning", c.report.GetLearningReport)

	// AI 工具
	rg.POST("/ai/summarize", c.ai.Summarize)

	// 首页概览
	rg.GET("/dashboard", c.dashboard.GetDashboard)
}
