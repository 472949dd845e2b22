package routes

import (
	"github.com/pixelnest/studio-server/controllers"
	"github.com/pixelnest/studio-server/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes mounts the admin authentication routes.
func RegisterAuthRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")

	// Public: the admin login itself.
	auth.POST("/login", controllers.Login)

	// Any valid session may check its own freshness.
	auth.GET("/validate", middleware.RequireSession(), controllers.ValidateSession)
}
