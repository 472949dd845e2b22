package controllers

import (
	"net/http"

	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/repository"
	"github.com/pixelnest/studio-server/utils"

	"github.com/gin-gonic/gin"
)

// Login authenticates the admin account. There is a single shared admin
// credential, so the body carries only the password.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	admin, err := repository.FindAdminUser()
	if err != nil {
		utils.Logger.Error().Err(err).Msg("admin lookup failed")
		utils.ErrorResponse(c, "login failed", http.StatusInternalServerError)
		return
	}

	if !utils.VerifyPassword(req.Password, admin.Password) {
		utils.Logger.Info().Msg("admin login rejected: wrong password")
		utils.ErrorResponse(c, "incorrect password", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(admin.ID.Hex(), admin.Name, utils.RoleAdmin)
	if err != nil {
		utils.ErrorResponse(c, "could not issue session token", http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().Msg("admin logged in")
	utils.SuccessResponse(c, gin.H{
		"token": token,
		"user": gin.H{
			"name": admin.Name,
			"role": utils.RoleAdmin,
		},
	}, "")
}

// ValidateSession echoes the authenticated session so the frontend can
// rehydrate without guessing at a stale token.
func ValidateSession(c *gin.Context) {
	session, err := utils.GetSession(c)
	if err != nil {
		utils.ErrorResponse(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": session}, "")
}
