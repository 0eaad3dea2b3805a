package api

import (
	"net/http"

	"newspulse-backend/internal/auth/delivery"
	breakingnewsDelivery "newspulse-backend/internal/breakingnews/delivery"
	newsDelivery "newspulse-backend/internal/news/delivery"
	recipientDelivery "newspulse-backend/internal/recipient/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authHandler := delivery.NewAuthHandler(h.authUsecase)
	preferenceHandler := recipientDelivery.NewPreferenceHandler(h.preferenceUsecase)
	newsHandler := newsDelivery.NewNewsHandler(h.newsUsecase)
	adminHandler := breakingnewsDelivery.NewAdminHandler(h.runner, h.runs)
	settingsHandler := NewSettingsHandler(h.settings)

	requireAuth := delivery.AuthMiddleware(h.authUsecase)
	requireAdmin := delivery.AdminOnly(h.config.IsAdmin)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/firebase", authHandler.FirebaseSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		// Preference routes (protected)
		preferences := api.Group("/preferences")
		preferences.Use(requireAuth)
		{
			preferences.GET("", preferenceHandler.GetPreference)
			preferences.PUT("", preferenceHandler.UpdatePreference)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(requireAuth)
		{
			fcm.POST("/register", preferenceHandler.RegisterToken)
			fcm.DELETE("", preferenceHandler.UnregisterToken)
		}

		// News routes (protected)
		news := api.Group("/news")
		news.Use(requireAuth)
		{
			news.GET("", newsHandler.GetHeadlines)
			news.GET("/keywords", newsHandler.GetKeywords)
			news.POST("/sentiment", newsHandler.AnalyzeSentiment)
		}

		// Saved articles (protected)
		saved := api.Group("/saved")
		saved.Use(requireAuth)
		{
			saved.GET("", newsHandler.ListSaved)
			saved.POST("", newsHandler.SaveArticle)
			saved.DELETE("/:id", newsHandler.DeleteSaved)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(requireAuth, requireAdmin)
		{
			admin.POST("/breaking-news/run", adminHandler.TriggerRun)
			admin.GET("/runs", adminHandler.ListRuns)
		}

		// Settings routes (admin) - Runtime configuration
		settings := api.Group("/settings")
		settings.Use(requireAuth, requireAdmin)
		{
			settings.GET("/ollama", settingsHandler.GetOllama)
			settings.PUT("/ollama", settingsHandler.UpdateOllama)
			settings.POST("/ollama/test", settingsHandler.CheckOllama)
		}
	}
}
