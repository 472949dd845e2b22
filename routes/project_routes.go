package routes

import (
	"github.com/pixelnest/studio-server/controllers"
	"github.com/pixelnest/studio-server/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterProjectRoutes mounts project and update management, admin only.
func RegisterProjectRoutes(router *gin.Engine) {
	projects := router.Group("/api/projects")
	projects.Use(middleware.RequireAdmin())

	projects.GET("", controllers.ListProjects)
	projects.POST("", controllers.CreateProject)
	projects.GET("/:id", controllers.GetProject)
	projects.PATCH("/:id", controllers.PatchProject)

	projects.GET("/:id/updates", controllers.ListUpdates)
	projects.POST("/:id/updates", controllers.CreateUpdate)

	uploads := router.Group("/api/uploads")
	uploads.Use(middleware.RequireAdmin())
	uploads.POST("/images", controllers.UploadImage)
}
