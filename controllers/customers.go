package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/pixelnest/studio-server/middleware"
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

// ListCustomers returns customers, optionally filtered by a keyword over
// name, email, and company.
func ListCustomers(c *gin.Context) {
	filter := bson.M{}
	if keyword := c.Query("keyword"); keyword != "" {
		pattern := regexp.QuoteMeta(keyword)
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": pattern, "$options": "i"}},
			{"email": bson.M{"$regex": pattern, "$options": "i"}},
			{"company": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if status := c.Query("inviteStatus"); status != "" && models.IsValidInviteStatus(status) {
		filter["inviteStatus"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.CustomersCollection).
		Find(c.Request.Context(), filter, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(c.Request.Context())

	customers := []models.Customer{}
	if err := cursor.All(c.Request.Context(), &customers); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, customers, "")
}

// CreateCustomer adds a customer directly, outside the conversion path.
func CreateCustomer(c *gin.Context) {
	var req models.CustomerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	customer := models.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Company:      req.Company,
		Phone:        req.Phone,
		Notes:        req.Notes,
		InviteStatus: models.InviteStatusNotInvited,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := repository.Collection(repository.CustomersCollection).
		InsertOne(c.Request.Context(), customer)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	customer.ID = result.InsertedID.(primitive.ObjectID)
	utils.SuccessResponse(c, customer, "customer created", http.StatusCreated)
}

// GetCustomer returns one customer.
func GetCustomer(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("customer"))
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

// PatchCustomer applies admin edits. An unknown inviteStatus value is
// dropped with a warning, same policy as every other status PATCH.
func PatchCustomer(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("customer"))
		return
	}

	var req models.CustomerPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Company != nil {
		set["company"] = *req.Company
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.InviteStatus != nil {
		if models.IsValidInviteStatus(*req.InviteStatus) {
			set["inviteStatus"] = *req.InviteStatus
		} else {
			utils.Logger.Warn().
				Str("customerId", c.Param("id")).
				Str("inviteStatus", *req.InviteStatus).
				Msg("invalid invite status ignored")
		}
	}

	result, err := repository.Collection(repository.CustomersCollection).
		UpdateOne(c.Request.Context(), bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("customer"))
		return
	}

	GetCustomer(c)
}

// DeleteCustomer removes a customer. Projects keep their customerId; the
// payment stats view degrades those rows to "Unknown".
func DeleteCustomer(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("customer"))
		return
	}

	result, err := repository.Collection(repository.CustomersCollection).
		DeleteOne(c.Request.Context(), bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("customer"))
		return
	}

	utils.SuccessResponse(c, nil, "customer deleted")
}

// InviteCustomer issues (or reissues) a portal invite and emails the
// claim link. The token itself never appears in the response.
func InviteCustomer(c *gin.Context) {
	customerID := c.Param("id")

	_, err := invites.Issue(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			utils.HandleError(c, utils.CreateNotFoundError("customer"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	middleware.RecordInviteIssued()
	utils.SuccessResponse(c, gin.H{"inviteStatus": models.InviteStatusInvited}, "invite sent")
}
