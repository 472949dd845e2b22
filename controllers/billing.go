package controllers

import (
	"errors"
	"net/http"
	"time"

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

// handleBillingError maps the billing service's sentinel errors before
// falling back to the generic handler.
func handleBillingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotConfigured):
		utils.HandleError(c, utils.CreateServiceUnavailableError("billing"))
	case errors.Is(err, service.ErrCustomerNotFound):
		utils.HandleError(c, utils.CreateNotFoundError("customer"))
	default:
		utils.HandleError(c, err)
	}
}

// EnsureBillingCustomer creates the provider-side customer record if the
// customer does not have one yet, and returns the provider id either way.
func EnsureBillingCustomer(c *gin.Context) {
	providerID, err := billing.EnsureCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleBillingError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"stripeCustomerId": providerID}, "")
}

// CreateBillingPortalSession returns a short-lived billing-portal URL for
// the customer in the request body.
func CreateBillingPortalSession(c *gin.Context) {
	var req models.PortalSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	url, err := billing.PortalSession(c.Request.Context(), req.CustomerID)
	if err != nil {
		handleBillingError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url}, "")
}

// PortalBillingSession is the customer-facing variant: the session owner is
// taken from the JWT, never from the body.
func PortalBillingSession(c *gin.Context) {
	session, err := utils.GetSession(c)
	if err != nil {
		utils.ErrorResponse(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	url, err := billing.PortalSession(c.Request.Context(), session.ID)
	if err != nil {
		handleBillingError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url}, "")
}

// GetCatalog lists the provider's active recurring offerings.
func GetCatalog(c *gin.Context) {
	offerings, err := billing.Catalog(c.Request.Context())
	if err != nil {
		handleBillingError(c, err)
		return
	}

	utils.SuccessResponse(c, offerings, "")
}

// ListSubscriptions returns subscription records, optionally filtered by
// customer or status.
func ListSubscriptions(c *gin.Context) {
	filter := bson.M{}
	if customerID := c.Query("customerId"); customerID != "" {
		filter["customerId"] = customerID
	}
	if status := c.Query("status"); status != "" && models.IsValidSubscriptionStatus(status) {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.SubscriptionsCollection).
		Find(c.Request.Context(), filter, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(c.Request.Context())

	subscriptions := []models.RecurringSubscription{}
	if err := cursor.All(c.Request.Context(), &subscriptions); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, subscriptions, "")
}

// CreateSubscription records a provider subscription against a customer
// and project. New records always use the items array shape.
func CreateSubscription(c *gin.Context) {
	var req models.SubscriptionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	subscription := models.RecurringSubscription{
		ProjectID:            req.ProjectID,
		CustomerID:           req.CustomerID,
		StripeSubscriptionID: req.StripeSubscriptionID,
		Items:                req.Items,
		BillingDay:           req.BillingDay,
		FirstPaymentDate:     req.FirstPaymentDate,
		Status:               models.SubscriptionStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	result, err := repository.Collection(repository.SubscriptionsCollection).
		InsertOne(c.Request.Context(), subscription)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	subscription.ID = result.InsertedID.(primitive.ObjectID)
	utils.SuccessResponse(c, subscription, "subscription created", http.StatusCreated)
}

// PatchSubscription applies status and billing edits. An unknown status is
// dropped with a warning, consistent with the other PATCH endpoints.
func PatchSubscription(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("subscription"))
		return
	}

	var req models.SubscriptionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Status != nil {
		if models.IsValidSubscriptionStatus(*req.Status) {
			set["status"] = *req.Status
		} else {
			utils.Logger.Warn().Str("subscriptionId", c.Param("id")).
				Str("status", *req.Status).Msg("invalid subscription status ignored")
		}
	}
	if req.CancelAtPeriodEnd != nil {
		set["cancelAtPeriodEnd"] = *req.CancelAtPeriodEnd
	}
	if req.BillingDay != nil {
		set["billingDay"] = *req.BillingDay
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var subscription models.RecurringSubscription
	err = repository.Collection(repository.SubscriptionsCollection).
		FindOneAndUpdate(c.Request.Context(), bson.M{"_id": objID}, bson.M{"$set": set}, opts).
		Decode(&subscription)
	if err == mongo.ErrNoDocuments {
		utils.HandleError(c, utils.CreateNotFoundError("subscription"))
		return
	}
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, subscription, "subscription updated")
}
