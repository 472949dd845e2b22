package routes

import (
	"github.com/pixelnest/studio-server/controllers"
	"github.com/pixelnest/studio-server/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterLeadRoutes mounts the lead registry.
func RegisterLeadRoutes(router *gin.Engine) {
	leads := router.Group("/api/leads")

	// Public: the marketing-site contact form posts here.
	leads.POST("", controllers.CreateLead)

	admin := leads.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.GET("", controllers.ListLeads)
	admin.GET("/:id", controllers.GetLead)
	admin.PATCH("/:id", controllers.PatchLead)
	admin.POST("/:id/convert", controllers.ConvertLead)
}
