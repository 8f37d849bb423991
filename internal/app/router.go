package app

import (
	"artscore_backend/docs"
	"artscore_backend/internal/config"
	"artscore_backend/internal/middleware"
	"artscore_backend/internal/model"
	"artscore_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerQuizRoutes(router, c)
	a.registerPartnerRoutes(router, c, repos, cfg)
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/rooms", c.catalog.GetRooms)
	}
}

// Quiz routes stay public: sessions are taken by end customers who have no
// account, the session UUID is the only credential.
func (a *App) registerQuizRoutes(router *gin.Engine, c *controllers) {
	quiz := router.Group("/api/quiz")
	{
		quiz.GET("/styles", c.catalog.GetStyles)
		quiz.GET("/details", c.catalog.GetDetails)
		quiz.GET("/questions", c.catalog.GetQuestions)

		quiz.POST("/answer", c.quiz.RecordAnswer)
		quiz.POST("/style-score", c.quiz.RecordStyleScore)
		quiz.POST("/comment", c.quiz.RecordComment)
		quiz.POST("/event", c.quiz.RecordEvent)
		quiz.GET("/analytics", c.quiz.GetAnalytics)

		session := quiz.Group("/session")
		{
			session.POST("", c.session.StartSession)
			session.GET("/:id", c.session.GetSession)
			session.POST("/:id/mode", c.session.SelectMode)
			session.POST("/:id/room", c.session.SelectRoom)
			session.POST("/:id/advance", c.session.Advance)
			session.GET("/:id/results", c.session.GetResults)
			session.GET("/:id/report.pdf", c.report.SessionReport)
		}
	}
}

func (a *App) registerPartnerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	partner := router.Group("/api")
	partner.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		partner.GET("/profile", c.auth.GetProfile)
		partner.PUT("/profile", c.auth.UpdateProfile)
		partner.GET("/csrf-token", c.auth.GetCSRFToken)

		// Lead submission is the one browser-form mutation, so it carries
		// the CSRF check on top of the JWT.
		leads := partner.Group("/leads")
		leads.Use(middleware.CSRFMiddleware(cfg))
		{
			leads.POST("", c.lead.SubmitLead)
			leads.GET("", c.lead.ListLeads)
			leads.GET("/:id", c.lead.GetLead)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin), middleware.ActivityMiddleware(repos.user))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
		admin.PUT("/users/:id/role", c.user.SetRole)

		admin.GET("/leads", c.lead.ListLeads)
		admin.PATCH("/leads/:id/status", c.lead.UpdateStatus)

		admin.GET("/settings", c.settings.GetSettings)
		admin.PUT("/settings", c.settings.UpdateSettings)

		reports := admin.Group("/reports")
		{
			reports.GET("/leads.csv", c.report.LeadsCSV)
			reports.GET("/leads.xlsx", c.report.LeadsXLSX)
			reports.GET("/commissions.csv", c.report.CommissionsCSV)
			reports.GET("/commissions.xlsx", c.report.CommissionsXLSX)
		}
	}
}
