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
)

// SubmitFeedback records the signed-in customer's reaction to an update.
// One record per (updateId, customerId); repeat submissions overwrite the
// like and comment in place.
func SubmitFeedback(c *gin.Context) {
	session, err := utils.GetSession(c)
	if err != nil {
		utils.ErrorResponse(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	updateID := c.Param("id")
	if _, ok := findUpdateForCustomer(c, updateID, session.ID); !ok {
		return
	}

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	feedback, err := feedbackSvc.Submit(c.Request.Context(), updateID, session.ID, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, feedback, "feedback saved")
}

// MarkViewed stamps the customer's first view of an update. The timestamp
// is set exactly once; later calls leave it untouched.
func MarkViewed(c *gin.Context) {
	session, err := utils.GetSession(c)
	if err != nil {
		utils.ErrorResponse(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	updateID := c.Param("id")
	if _, ok := findUpdateForCustomer(c, updateID, session.ID); !ok {
		return
	}

	if err := feedbackSvc.MarkViewed(c.Request.Context(), updateID, session.ID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "viewed")
}

// ReplyFeedback stores the admin reply on a feedback record.
func ReplyFeedback(c *gin.Context) {
	var req models.FeedbackReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	feedback, err := feedbackSvc.Reply(c.Request.Context(), c.Param("id"), req.Reply)
	if errors.Is(err, service.ErrFeedbackNotFound) {
		utils.HandleError(c, utils.CreateNotFoundError("feedback"))
		return
	}
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, feedback, "reply saved")
}

// ListFeedback returns all feedback for one update, admin view.
func ListFeedback(c *gin.Context) {
	updateID := c.Param("id")
	if _, ok := findUpdate(c, updateID); !ok {
		return
	}

	feedback, err := feedbackSvc.ListForUpdate(c.Request.Context(), updateID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, feedback, "")
}

// findUpdate loads an update or writes the 404 itself.
func findUpdate(c *gin.Context, id string) (*models.ProjectUpdate, bool) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("update"))
		return nil, false
	}

	var update models.ProjectUpdate
	err = repository.Collection(repository.UpdatesCollection).
		FindOne(c.Request.Context(), bson.M{"_id": objID}).
		Decode(&update)
	if err == mongo.ErrNoDocuments {
		utils.HandleError(c, utils.CreateNotFoundError("update"))
		return nil, false
	}
	if err != nil {
		utils.HandleError(c, err)
		return nil, false
	}
	return &update, true
}

// findUpdateForCustomer loads an update and verifies the update's project
// belongs to customerID; a miss on either check reads as not found so the
// portal cannot enumerate other customers' updates.
func findUpdateForCustomer(c *gin.Context, id, customerID string) (*models.ProjectUpdate, bool) {
	update, ok := findUpdate(c, id)
	if !ok {
		return nil, false
	}

	projectID, err := primitive.ObjectIDFromHex(update.ProjectID)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("update"))
		return nil, false
	}

	count, err := repository.Collection(repository.ProjectsCollection).
		CountDocuments(c.Request.Context(), bson.M{"_id": projectID, "customerId": customerID})
	if err != nil {
		utils.HandleError(c, err)
		return nil, false
	}
	if count == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("update"))
		return nil, false
	}
	return update, true
}
