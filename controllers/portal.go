package controllers

import (
	"errors"
	"net/http"

	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/repository"
	"github.com/pixelnest/studio-server/service"
	"github.com/pixelnest/studio-server/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PortalLogin authenticates a customer by email and password. The error
// messages deliberately distinguish no-account, not-set-up, and
// wrong-password.
func PortalLogin(c *gin.Context) {
	var req models.PortalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	customer, err := invites.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoAccount):
			utils.ErrorResponse(c, "no account with that email", http.StatusUnauthorized)
		case errors.Is(err, service.ErrPasswordNotSet):
			utils.ErrorResponse(c, "portal password not set up yet, use your invite link first", http.StatusUnauthorized)
		case errors.Is(err, service.ErrWrongPassword):
			utils.ErrorResponse(c, "incorrect password", http.StatusUnauthorized)
		default:
			utils.HandleError(c, err)
		}
		return
	}

	token, err := utils.GenerateToken(customer.ID.Hex(), customer.Name, utils.RoleCustomer)
	if err != nil {
		utils.ErrorResponse(c, "could not issue session token", http.StatusInternalServerError)
		return
	}

	utils.Logger.Info().Str("customerId", customer.ID.Hex()).Msg("portal login")
	utils.SuccessResponse(c, gin.H{
		"token":      token,
		"customerId": customer.ID.Hex(),
	}, "")
}

// ValidateInvite resolves an invite token for the claim page. Expired and
// unknown tokens come back as different errors so the page can tell the
// visitor to request a fresh link versus checking the URL.
func ValidateInvite(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.HandleError(c, utils.CreateBadRequestError("token is required"))
		return
	}

	preview, err := invites.Validate(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpiredInvite):
			utils.HandleError(c, utils.NewApiError("invite link has expired, ask for a new one", http.StatusBadRequest, "EXPIRED_INVITE"))
		case errors.Is(err, service.ErrInviteNotFound):
			utils.HandleError(c, utils.NewApiError("invite not found", http.StatusNotFound, "INVITE_NOT_FOUND"))
		default:
			utils.HandleError(c, err)
		}
		return
	}

	utils.SuccessResponse(c, preview, "")
}

// SetPassword consumes an invite token and establishes the portal
// password.
func SetPassword(c *gin.Context) {
	var req models.SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	customerID, err := invites.Consume(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort):
			utils.ErrorResponse(c, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrInviteNotFound):
			utils.HandleError(c, utils.NewApiError("invite not found", http.StatusNotFound, "INVITE_NOT_FOUND"))
		default:
			utils.HandleError(c, err)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"customerId": customerID}, "password set")
}

// ResetPassword changes the password of the logged-in customer after
// verifying the current one.
func ResetPassword(c *gin.Context) {
	session, err := utils.GetSession(c)
	if err != nil {
		utils.ErrorResponse(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Customers may only change their own password.
	if req.CustomerID != session.ID {
		utils.ErrorResponse(c, "forbidden", http.StatusForbidden)
		return
	}

	err = invites.ResetPassword(c.Request.Context(), req.CustomerID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort):
			utils.ErrorResponse(c, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrWrongPassword), errors.Is(err, service.ErrPasswordNotSet):
			utils.ErrorResponse(c, err.Error(), http.StatusUnauthorized)
		case errors.Is(err, service.ErrCustomerNotFound):
			utils.HandleError(c, utils.CreateNotFoundError("customer"))
		default:
			utils.HandleError(c, err)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"ok": true}, "")
}

// PortalMe returns the logged-in customer's own record. Credential fields
// never serialize.
func PortalMe(c *gin.Context) {
	session, err := utils.GetSession(c)
	if err != nil {
		utils.ErrorResponse(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	objID, err := primitive.ObjectIDFromHex(session.ID)
	if err != nil {
		utils.ErrorResponse(c, "invalid session", http.StatusUnauthorized)
		return
	}

	var customer models.Customer
	err = repository.Collection(repository.CustomersCollection).
		FindOne(c.Request.Context(), bson.M{"_id": objID}).
		Decode(&customer)
	if err == mongo.ErrNoDocuments {
		utils.HandleError(c, utils.CreateNotFoundError("customer"))
		return
	}
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, customer, "")
}

// PortalProjects lists the logged-in customer's projects.
func PortalProjects(c *gin.Context) {
	session, err := utils.GetSession(c)
	if err != nil {
		utils.ErrorResponse(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.ProjectsCollection).
		Find(c.Request.Context(), bson.M{"customerId": session.ID}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(c.Request.Context())

	projects := []models.Project{}
	if err := cursor.All(c.Request.Context(), &projects); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, projects, "")
}

// PortalProjectUpdates lists updates for one of the customer's own
// projects; ownership is checked before anything is returned.
func PortalProjectUpdates(c *gin.Context) {
	session, err := utils.GetSession(c)
	if err != nil {
		utils.ErrorResponse(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	projectID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("project"))
		return
	}

	var project models.Project
	err = repository.Collection(repository.ProjectsCollection).
		FindOne(c.Request.Context(), bson.M{"_id": objID}).
		Decode(&project)
	if err == mongo.ErrNoDocuments {
		utils.HandleError(c, utils.CreateNotFoundError("project"))
		return
	}
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if project.CustomerID != session.ID {
		utils.ErrorResponse(c, "forbidden", http.StatusForbidden)
		return
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.UpdatesCollection).
		Find(c.Request.Context(), bson.M{"projectId": projectID}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(c.Request.Context())

	updates := []models.ProjectUpdate{}
	if err := cursor.All(c.Request.Context(), &updates); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, updates, "")
}
