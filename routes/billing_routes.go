package routes

import (
	"github.com/pixelnest/studio-server/controllers"
	"github.com/pixelnest/studio-server/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBillingRoutes mounts the billing adapter and subscription records,
// admin only. The adapter routes 503 when no provider key is configured;
// the subscription records are plain database CRUD and stay available.
func RegisterBillingRoutes(router *gin.Engine) {
	billing := router.Group("/api/billing")
	billing.Use(middleware.RequireAdmin())

	billing.POST("/customers/:id/ensure", controllers.EnsureBillingCustomer)
	billing.POST("/portal-session", controllers.CreateBillingPortalSession)
	billing.GET("/catalog", controllers.GetCatalog)

	subscriptions := router.Group("/api/subscriptions")
	subscriptions.Use(middleware.RequireAdmin())
	subscriptions.GET("", controllers.ListSubscriptions)
	subscriptions.POST("", controllers.CreateSubscription)
	subscriptions.PATCH("/:id", controllers.PatchSubscription)
}
