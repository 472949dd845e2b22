package routes

import (
	"github.com/pixelnest/studio-server/controllers"
	"github.com/pixelnest/studio-server/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterCustomerRoutes mounts customer management, admin only.
func RegisterCustomerRoutes(router *gin.Engine) {
	customers := router.Group("/api/customers")
	customers.Use(middleware.RequireAdmin())

	customers.GET("", controllers.ListCustomers)
	customers.POST("", controllers.CreateCustomer)
	customers.GET("/:id", controllers.GetCustomer)
	customers.PATCH("/:id", controllers.PatchCustomer)
	customers.DELETE("/:id", controllers.DeleteCustomer)
	customers.POST("/:id/invite", controllers.InviteCustomer)
}
