package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"feedback-hero/config"
	"feedback-hero/controllers"
	"feedback-hero/services"
	"feedback-hero/utils"
)

// SetupRouter wires all endpoints. Dependencies are injected here and flow
// down into the controllers; nothing reaches for globals.
func SetupRouter(db *gorm.DB, cfg *config.Config, limiter *services.RateLimiter) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Authorization", "Content-Type"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	r.Use(config.PerformanceLogger())

	authController := controllers.NewAuthController(db, cfg)
	feedbackController := controllers.NewFeedbackController(db, limiter, cfg)
	dashboardController := controllers.NewDashboardController(db)
	manageController := controllers.NewManageController(db)
	exportController := controllers.NewExportController(db, cfg)
	profileController := controllers.NewProfileController(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "feedback-hero"})
	})

	// Public customer-facing API (no auth).
	public := r.Group("/api")
	{
		public.POST("/feedback", feedbackController.Submit)
		public.GET("/feedback/check-limit", feedbackController.CheckLimit)
		public.GET("/feedback/stats", feedbackController.PublicStats)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/logout", authController.Logout)

		auth.Use(utils.AuthMiddleware(cfg.JWTSecret))
		auth.GET("/me", authController.Me)
	}

	dashboard := r.Group("/dashboard/api")
	dashboard.Use(utils.AuthMiddleware(cfg.JWTSecret))
	{
		dashboard.GET("/stats", dashboardController.Stats)
		dashboard.GET("/summary", dashboardController.Summary)

		dashboard.GET("/feedback", manageController.List)
		dashboard.GET("/feedback/:id", manageController.GetOne)
		dashboard.POST("/feedback/:id/review", manageController.ToggleReviewed)
		dashboard.DELETE("/feedback/:id", manageController.DeleteOne)
		dashboard.DELETE("/feedback", manageController.DeleteAll)

		dashboard.GET("/export", exportController.Export)
		dashboard.GET("/qrcode", exportController.QRCode)

		dashboard.GET("/profile", profileController.GetProfile)
		dashboard.PUT("/profile", profileController.UpdateBusiness)
		dashboard.POST("/change-password", profileController.ChangePassword)
		dashboard.PUT("/settings", profileController.UpdateSettings)

		dashboard.DELETE("/account", manageController.DeleteAccount)
	}

	return r
}
