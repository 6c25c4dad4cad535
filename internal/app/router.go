package app

import (
	"quiz_sphere_backend/docs"
	"quiz_sphere_backend/internal/config"
	"quiz_sphere_backend/internal/middleware"
	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/token/refresh", c.auth.Refresh)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/logout", c.auth.Logout)
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar", c.user.UploadAvatar)
	rg.DELETE("/user/profile", c.user.DeleteAccount)

	rg.GET("/categories", c.category.List)
	rg.GET("/quiz", c.quiz.GetQuiz)
	rg.GET("/quiz/details", c.quiz.GetQuizDetails)
	rg.POST("/quiz/attempt", c.quiz.Attempt)
	rg.DELETE("/quiz/:categoryId", c.quiz.Delete)
	rg.GET("/standings", c.quiz.GetStandings)
	rg.GET("/leaderboard", c.user.Leaderboard)

	rg.POST("/assistant/explain", c.assistant.Explain)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/categories", c.admin.CreateCategory)
		admin.POST("/questions", c.admin.AddQuestion)
		admin.PUT("/categories/:id/scale", c.admin.UpdateScale)
	}
}
