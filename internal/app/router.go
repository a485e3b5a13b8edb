package app

import (
	"exam_studio_backend/internal/config"
	"exam_studio_backend/internal/middleware"
	"exam_studio_backend/internal/model"
	"exam_studio_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 本地化词典
		public.GET("/dictionary", c.dictionary.Locales)
		public.GET("/dictionary/:lang", c.dictionary.Get)
	}

	// 2. 可选认证：公开试卷允许匿名读取，私有试卷仍要求本人
	optional := router.Group("/api")
	optional.Use(middleware.TryAuthMiddleware(cfg))
	{
		optional.GET("/exams/:id", c.exam.Get)
	}

	// 3. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		// 试卷
		authGroup.GET("/exams", c.exam.List)
		authGroup.POST("/exams", c.exam.Create)
		authGroup.PUT("/exams/:id", c.exam.UpdateProperties)
		authGroup.DELETE("/exams/:id", c.exam.Delete)

		// 表达式（POST 的路径参数是客户端本地短 ID）
		authGroup.POST("/exams/:id/expression/:expressionId", c.expression.Create)
		authGroup.PUT("/exams/:id/expression/:expressionId", c.expression.Update)
		authGroup.DELETE("/exams/:id/expression/:expressionId", c.expression.Delete)

		// 题目，生命周期与表达式一致
		authGroup.POST("/exams/:id/question/:questionId", c.question.Create)
		authGroup.PUT("/exams/:id/question/:questionId", c.question.Update)
		authGroup.DELETE("/exams/:id/question/:questionId", c.question.Delete)
	}

	// 4. 管理端路由
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.DELETE("/exams/:id", c.exam.AdminDelete)
	}
}
