package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/pixelnest/studio-server/middleware"
	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/repository"
	"github.com/pixelnest/studio-server/service"
	"github.com/pixelnest/studio-server/utils"

	"github.com/gin-gonic/gin"
)

// CreateLead captures a contact-form submission from the marketing site.
// This is the one unauthenticated write in the API.
func CreateLead(c *gin.Context) {
	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	lead := models.Lead{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Interested: req.Interested,
		Project:    req.Project,
		Status:     models.LeadStatusNew,
		CreatedAt:  time.Now(),
	}

	result, err := repository.Collection(repository.LeadsCollection).
		InsertOne(c.Request.Context(), lead)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("company", req.Company).Msg("lead captured")
	utils.SuccessResponse(c, gin.H{"_id": result.InsertedID}, "thanks, we'll be in touch", http.StatusCreated)
}

// ListLeads returns the sales funnel, optionally filtered by status.
// Converted leads never appear.
func ListLeads(c *gin.Context) {
	leads, err := leadSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, leads, "")
}

// GetLead returns one lead.
func GetLead(c *gin.Context) {
	lead, err := leadSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			utils.HandleError(c, utils.CreateNotFoundError("lead"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, lead, "")
}

// PatchLead applies status and notes edits. An unknown status value is
// silently dropped rather than rejected.
func PatchLead(c *gin.Context) {
	var req models.LeadPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := leadSvc.Patch(c.Request.Context(), c.Param("id"), req); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			utils.HandleError(c, utils.CreateNotFoundError("lead"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	lead, err := leadSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, lead, "")
}

// ConvertLead promotes a lead into a customer and removes the lead.
func ConvertLead(c *gin.Context) {
	customerID, err := converter.Convert(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			utils.HandleError(c, utils.CreateNotFoundError("lead"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	middleware.RecordLeadConverted()
	utils.SuccessResponse(c, gin.H{"customerId": customerID}, "lead converted")
}
