package controllers

import (
	"github.com/pixelnest/studio-server/utils"

	"github.com/gin-gonic/gin"
)

// GetPaymentStats returns the consolidated who-owes-money view: late and
// pending subscriptions plus unpaid projects.
func GetPaymentStats(c *gin.Context) {
	result, err := stats.GetPaymentStats(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, result, "")
}
