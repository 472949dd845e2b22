package routes

import (
	"github.com/pixelnest/studio-server/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the whole API surface.
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterPortalRoutes(router)
	RegisterLeadRoutes(router)
	RegisterCustomerRoutes(router)
	RegisterProjectRoutes(router)
	RegisterFeedbackRoutes(router)
	RegisterBillingRoutes(router)
	RegisterPaymentRoutes(router)

	router.GET("/api/health", func(c *gin.Context) {
		status := "ok"
		if err := repository.Ping(c.Request.Context()); err != nil {
			status = "degraded"
		}
		c.JSON(200, gin.H{"status": status})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
