package routes

import (
	"github.com/pixelnest/studio-server/controllers"
	"github.com/pixelnest/studio-server/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterPaymentRoutes mounts the payment stats dashboard view.
func RegisterPaymentRoutes(router *gin.Engine) {
	router.GET("/api/payment-stats", middleware.RequireAdmin(), controllers.GetPaymentStats)
}
