package app

import (
	"bio_olymp_backend/docs"
	"bio_olymp_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		a.registerCatalogRoutes(api, c)
		a.registerProgressRoutes(api, c)
		a.registerFeedbackRoutes(api, c)
		a.registerQuestionBankRoutes(api, c)
	}
}

func (a *App) registerCatalogRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/categories", c.catalog.GetCategories)
	api.GET("/categories/:name/progress", c.catalog.GetCategoryProgress)

	questions := api.Group("/questions")
	{
		questions.GET("", c.catalog.GetQuestions)
		questions.GET("/unanswered", c.catalog.GetUnanswered)
		questions.GET("/:id/source", c.catalog.GetSource)
	}
}

func (a *App) registerProgressRoutes(api *gin.RouterGroup, c *controllers) {
	progress := api.Group("/progress")
	{
		progress.GET("", c.progress.GetProgress)
		progress.POST("/answers", c.progress.RecordAnswer)
		progress.GET("/chart", c.progress.GetChart)
		progress.GET("/report", c.progress.GetReport)
	}

	api.GET("/achievements", c.progress.GetAchievements)
}

func (a *App) registerFeedbackRoutes(api *gin.RouterGroup, c *controllers) {
	feedback := api.Group("/feedback")
	{
		feedback.POST("", c.feedback.SubmitFeedback)
		feedback.GET("/:questionId", c.feedback.GetFeedback)
	}
}

func (a *App) registerQuestionBankRoutes(api *gin.RouterGroup, c *controllers) {
	bank := api.Group("/question-bank")
	{
		bank.GET("", c.questionBank.ListQuestions)
		bank.POST("", c.questionBank.AddQuestion)
		bank.GET("/themes", c.questionBank.GetThemes)
		bank.GET("/analysis", c.questionBank.GetAnalysis)
		bank.GET("/stats", c.questionBank.GetStats)
		bank.DELETE("/:id", c.questionBank.DeleteQuestion)
	}
}
