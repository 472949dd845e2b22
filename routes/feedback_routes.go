package routes

import (
	"github.com/pixelnest/studio-server/controllers"
	"github.com/pixelnest/studio-server/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterFeedbackRoutes mounts the admin side of update feedback. The
// customer-facing writes live with the portal routes.
func RegisterFeedbackRoutes(router *gin.Engine) {
	updates := router.Group("/api/updates")
	updates.GET("/:id/feedback", middleware.RequireAdmin(), controllers.ListFeedback)

	feedback := router.Group("/api/feedback")
	feedback.Use(middleware.RequireAdmin())
	feedback.POST("/:id/reply", controllers.ReplyFeedback)
}
