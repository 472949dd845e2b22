package controllers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/repository"
	"github.com/pixelnest/studio-server/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxUploadBytes = 10 << 20

// ListProjects returns projects, optionally scoped to one customer.
func ListProjects(c *gin.Context) {
	filter := bson.M{}
	if customerID := c.Query("customerId"); customerID != "" {
		filter["customerId"] = customerID
	}
	if status := c.Query("status"); status != "" && models.IsValidProjectStatus(status) {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := repository.Collection(repository.ProjectsCollection).
		Find(c.Request.Context(), filter, opts)
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

// CreateProject starts a project in the discovery stage, unpaid.
func CreateProject(c *gin.Context) {
	var req models.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !models.IsValidProjectType(req.Type) {
		utils.ErrorResponse(c, "unknown project type: "+req.Type, http.StatusBadRequest)
		return
	}

	customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("customer"))
		return
	}
	count, err := repository.Collection(repository.CustomersCollection).
		CountDocuments(c.Request.Context(), bson.M{"_id": customerID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("customer"))
		return
	}

	now := time.Now()
	project := models.Project{
		CustomerID:    req.CustomerID,
		Type:          models.ProjectType(req.Type),
		Name:          req.Name,
		Status:        models.ProjectStatusDiscovery,
		OneTimeCost:   req.OneTimeCost,
		PaymentStatus: models.PaymentStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := repository.Collection(repository.ProjectsCollection).
		InsertOne(c.Request.Context(), project)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	project.ID = result.InsertedID.(primitive.ObjectID)
	utils.SuccessResponse(c, project, "project created", http.StatusCreated)
}

// GetProject returns one project.
func GetProject(c *gin.Context) {
	project, ok := findProject(c, c.Param("id"))
	if !ok {
		return
	}
	utils.SuccessResponse(c, project, "")
}

// PatchProject applies admin edits. Unknown enum values are dropped with a
// warning so a stale admin UI cannot wedge the record.
func PatchProject(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("project"))
		return
	}

	var req models.ProjectPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.OneTimeCost != nil {
		set["oneTimeCost"] = *req.OneTimeCost
	}
	if req.Type != nil {
		if models.IsValidProjectType(*req.Type) {
			set["type"] = *req.Type
		} else {
			utils.Logger.Warn().Str("projectId", c.Param("id")).
				Str("type", *req.Type).Msg("invalid project type ignored")
		}
	}
	if req.Status != nil {
		if models.IsValidProjectStatus(*req.Status) {
			set["status"] = *req.Status
		} else {
			utils.Logger.Warn().Str("projectId", c.Param("id")).
				Str("status", *req.Status).Msg("invalid project status ignored")
		}
	}
	if req.PaymentStatus != nil {
		if models.IsValidPaymentStatus(*req.PaymentStatus) {
			set["paymentStatus"] = *req.PaymentStatus
		} else {
			utils.Logger.Warn().Str("projectId", c.Param("id")).
				Str("paymentStatus", *req.PaymentStatus).Msg("invalid payment status ignored")
		}
	}

	result, err := repository.Collection(repository.ProjectsCollection).
		UpdateOne(c.Request.Context(), bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("project"))
		return
	}

	GetProject(c)
}

// CreateUpdate publishes a progress update on a project. Updates are
// immutable once created; there is no PATCH or DELETE for them.
func CreateUpdate(c *gin.Context) {
	if _, ok := findProject(c, c.Param("id")); !ok {
		return
	}

	var req models.UpdateCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		utils.HandleError(c, utils.CreateBadRequestError("title must not be empty"))
		return
	}

	update := models.ProjectUpdate{
		ProjectID:   c.Param("id"),
		Title:       title,
		Description: req.Description,
		Images:      req.Images,
		CreatedAt:   time.Now(),
	}

	result, err := repository.Collection(repository.UpdatesCollection).
		InsertOne(c.Request.Context(), update)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	update.ID = result.InsertedID.(primitive.ObjectID)
	utils.SuccessResponse(c, update, "update published", http.StatusCreated)
}

// ListUpdates returns a project's updates, newest first.
func ListUpdates(c *gin.Context) {
	if _, ok := findProject(c, c.Param("id")); !ok {
		return
	}
	projectID := c.Param("id")
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

// UploadImage forwards a multipart image to the configured image host and
// returns the hosted URL for use in update bodies.
func UploadImage(c *gin.Context) {
	if uploader == nil {
		utils.HandleError(c, utils.CreateServiceUnavailableError("image uploads"))
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		utils.ErrorResponse(c, "missing image file", http.StatusBadRequest)
		return
	}
	if header.Size > maxUploadBytes {
		utils.ErrorResponse(c, "image too large", http.StatusBadRequest)
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	url, err := uploader.Upload(c.Request.Context(), header.Filename, data)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url}, "image uploaded")
}

// findProject loads a project or writes the 404 itself.
func findProject(c *gin.Context, id string) (*models.Project, bool) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("project"))
		return nil, false
	}

	var project models.Project
	err = repository.Collection(repository.ProjectsCollection).
		FindOne(c.Request.Context(), bson.M{"_id": objID}).
		Decode(&project)
	if err == mongo.ErrNoDocuments {
		utils.HandleError(c, utils.CreateNotFoundError("project"))
		return nil, false
	}
	if err != nil {
		utils.HandleError(c, err)
		return nil, false
	}
	return &project, true
}
