package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pixelnest/studio-server/config"
	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	AdminUsersCollection    = "adminUsers"
	CustomersCollection     = "customers"
	LeadsCollection         = "leads"
	ProjectsCollection      = "projects"
	UpdatesCollection       = "projectUpdates"
	FeedbackCollection      = "updateFeedback"
	SubscriptionsCollection = "subscriptions"
)

var (
	client *mongo.Client
	db     *mongo.Database
	ctx    = context.Background()
)

// InitMongoDB connects the process-wide client.
func InitMongoDB(uri, dbName string) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	clientOptions := options.Client().ApplyURI(uri)
	client, err = mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}

	db = client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("connected to mongodb")

	return nil
}

// CloseMongoDB disconnects the client.
func CloseMongoDB() {
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			utils.Logger.Error().Err(err).Msg("mongodb disconnect failed")
			return
		}
		utils.Logger.Info().Msg("mongodb disconnected")
	}
}

// Ping checks database reachability, bounded to a short timeout so health
// checks stay fast when the database is down.
func Ping(parent context.Context) error {
	pingCtx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()
	return client.Ping(pingCtx, readpref.Primary())
}

// Collection returns the named collection.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// ExecuteDbOperation runs operation with retries on transient errors.
func ExecuteDbOperation(operation func() (interface{}, error), retries int) (interface{}, error) {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}

		lastErr = err
		utils.Logger.Error().Err(err).Msgf("db operation failed, retry (%d/%d)", i+1, retries)

		if !isRetryableError(err) {
			break
		}

		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}

	return nil, lastErr
}

// isRetryableError reports whether err is worth retrying.
func isRetryableError(err error) bool {
	retryableCodes := map[int]bool{
		6:     true, // HostUnreachable
		7:     true, // HostNotFound
		89:    true, // NetworkTimeout
		91:    true, // ShutdownInProgress
		189:   true, // PrimarySteppedDown
		10107: true, // NotMaster
		13436: true, // NotMasterNoSlaveOk
		11600: true, // InterruptedAtShutdown
		11602: true, // InterruptedDueToReplStateChange
		10058: true, // ConnectionReset
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		return retryableCodes[int(cmdErr.Code)]
	}

	return isNetworkError(err)
}

// isNetworkError checks for common transport failures.
func isNetworkError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	networkErrors := []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"no reachable servers",
		"timeout",
		"context deadline exceeded",
		"server selection error",
	}

	for _, ne := range networkErrors {
		if strings.Contains(errMsg, ne) {
			return true
		}
	}

	return false
}

// InitializeCollections creates any missing collections.
func InitializeCollections() error {
	collections := []string{
		AdminUsersCollection,
		CustomersCollection,
		LeadsCollection,
		ProjectsCollection,
		UpdatesCollection,
		FeedbackCollection,
		SubscriptionsCollection,
	}

	for _, collName := range collections {
		collExists, err := CollectionExists(collName)
		if err != nil {
			return fmt.Errorf("check collection: %w", err)
		}

		if !collExists {
			if err := db.CreateCollection(ctx, collName); err != nil {
				return fmt.Errorf("create collection: %w", err)
			}
			utils.Logger.Info().Str("collection", collName).Msg("collection created")
		}
	}

	return nil
}

// CollectionExists checks whether a collection exists.
func CollectionExists(collName string) (bool, error) {
	collections, err := db.ListCollectionNames(ctx, bson.M{"name": collName})
	if err != nil {
		return false, err
	}

	for _, name := range collections {
		if name == collName {
			return true, nil
		}
	}

	return false, nil
}

// InitializeAdminAccount ensures the single admin credential record exists,
// hashing the bootstrap password from config on first run.
func InitializeAdminAccount() error {
	adminCollection := db.Collection(AdminUsersCollection)

	count, err := adminCollection.CountDocuments(ctx, bson.M{"name": "admin"})
	if err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}

	if count > 0 {
		utils.Logger.Info().Msg("admin account exists, skipping bootstrap")
		return nil
	}

	hash, err := utils.HashPassword(config.LoadConfig().AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.AdminUser{
		Name:      "admin",
		Password:  hash,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := adminCollection.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	utils.Logger.Info().Msg("admin account bootstrapped")
	return nil
}

// FindAdminUser loads the admin credential record.
func FindAdminUser() (*models.AdminUser, error) {
	var admin models.AdminUser
	err := db.Collection(AdminUsersCollection).FindOne(ctx, bson.M{"name": "admin"}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("admin account missing")
		}
		return nil, err
	}

	return &admin, nil
}
