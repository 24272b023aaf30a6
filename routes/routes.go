package routes

import (
	"journal-submission-api/controllers"
	"journal-submission-api/middleware"
	"journal-submission-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Journal Submission API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetMyNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.GetMySubmissions)
				submissions.GET("/:id", controllers.GetSubmission)

				// Authors create, revise and withdraw their own manuscripts
				submissions.POST("", middleware.RequireRole(models.RoleAuthor), controllers.CreateSubmission)
				submissions.POST("/:id/revisions", middleware.RequireRole(models.RoleAuthor), controllers.SubmitRevision)
				submissions.POST("/:id/withdraw", controllers.WithdrawSubmission)

				// Editors run the review workflow
				submissions.POST("/:id/reviewers", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.AssignReviewer)
				submissions.POST("/:id/decision", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.MakeDecision)
				submissions.POST("/:id/revert-decision", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.RevertDecision)
			}

			// Reviews
			reviews := protected.Group("/reviews")
			{
				reviews.GET("", middleware.RequireRole(models.RoleReviewer, models.RoleEditor, models.RoleAdmin), controllers.GetMyReviews)
				reviews.POST("/:id/complete", middleware.RequireRole(models.RoleReviewer, models.RoleEditor, models.RoleAdmin), controllers.CompleteReview)
			}

			// Editor dashboard
			protected.GET("/editor/dashboard", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetEditorDashboard)

			// Issues and publication scheduling
			issues := protected.Group("/issues")
			issues.Use(middleware.RequireRole(models.RoleEditor, models.RoleAdmin))
			{
				issues.GET("", controllers.GetIssues)
				issues.POST("", controllers.CreateIssue)
				issues.PUT("/:id", controllers.UpdateIssue)
				issues.DELETE("/:id", controllers.DeleteIssue)
				issues.GET("/:id/publications", controllers.GetIssuePublications)
				issues.POST("/:id/publications", controllers.AssignToIssue)
			}

			publications := protected.Group("/publications")
			publications.Use(middleware.RequireRole(models.RoleEditor, models.RoleAdmin))
			{
				publications.POST("/:id/publish", controllers.PublishArticle)
				publications.POST("/:id/unpublish", controllers.UnpublishArticle)
				publications.DELETE("/:id", controllers.RemoveFromIssue)
			}

			// Admin
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", controllers.GetUsers)
				admin.POST("/users", controllers.CreateUser)
				admin.PUT("/users/:id", controllers.UpdateUser)
				admin.POST("/users/:id/anonymize", controllers.AnonymizeUser)

				admin.GET("/settings", controllers.GetSystemSettings)
				admin.PUT("/settings", controllers.UpdateSystemSettings)
				admin.GET("/doi-health", controllers.DOIHealthCheck)
			}
		}
	}
}
