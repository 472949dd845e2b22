package routes

import (
	"github.com/pixelnest/studio-server/controllers"
	"github.com/pixelnest/studio-server/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterPortalRoutes mounts the customer portal: the public invite-claim
// flow plus the authenticated customer surface.
func RegisterPortalRoutes(router *gin.Engine) {
	portal := router.Group("/api/portal")

	// Public: login and the invite claim flow.
	portal.POST("/login", controllers.PortalLogin)
	portal.GET("/invite", controllers.ValidateInvite)
	portal.POST("/set-password", controllers.SetPassword)

	// Authenticated customer surface.
	authed := portal.Group("")
	authed.Use(middleware.RequirePortal())
	authed.POST("/reset-password", controllers.ResetPassword)
	authed.GET("/me", controllers.PortalMe)
	authed.GET("/projects", controllers.PortalProjects)
	authed.GET("/projects/:id/updates", controllers.PortalProjectUpdates)
	authed.POST("/billing-session", controllers.PortalBillingSession)

	// Feedback is written by customers against updates they can see.
	updates := router.Group("/api/updates")
	updates.Use(middleware.RequirePortal())
	updates.POST("/:id/feedback", controllers.SubmitFeedback)
	updates.POST("/:id/viewed", controllers.MarkViewed)
}
