package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/pixelnest/studio-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store types backing the service-layer interfaces. Lookups return
// (nil, nil) when nothing matches; a malformed hex id counts as no match.

// CustomerRepository persists customers.
type CustomerRepository struct{}

// NewCustomerRepository returns the customers store.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var customer models.Customer
	err = Collection(CustomersCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByEmail matches the email case-insensitively with an anchored regex,
// so portal login is forgiving about capitalization.
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	filter := bson.M{"email": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(email) + "$",
		Options: "i",
	}}

	var customer models.Customer
	err := Collection(CustomersCollection).FindOne(ctx, filter).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByInviteToken matches the stored token by exact, case-sensitive
// string equality regardless of expiry; the caller decides expired vs
// valid.
func (r *CustomerRepository) FindByInviteToken(ctx context.Context, token string) (*models.Customer, error) {
	var customer models.Customer
	err := Collection(CustomersCollection).FindOne(ctx, bson.M{"inviteToken": token}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Insert(ctx context.Context, customer *models.Customer) (string, error) {
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	if customer.UpdatedAt.IsZero() {
		customer.UpdatedAt = customer.CreatedAt
	}
	if customer.InviteStatus == "" {
		customer.InviteStatus = models.InviteStatusNotInvited
	}

	result, err := ExecuteDbOperation(func() (interface{}, error) {
		return Collection(CustomersCollection).InsertOne(ctx, customer)
	}, 3)
	if err != nil {
		return "", err
	}

	objID, ok := result.(*mongo.InsertOneResult).InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type")
	}
	return objID.Hex(), nil
}

// SetInvite stores a fresh token, overwriting any prior one.
func (r *CustomerRepository) SetInvite(ctx context.Context, id, token string, expiry time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid customer id: %w", err)
	}

	_, err = ExecuteDbOperation(func() (interface{}, error) {
		return Collection(CustomersCollection).UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
			"$set": bson.M{
				"inviteToken":       token,
				"inviteTokenExpiry": expiry,
				"inviteStatus":      models.InviteStatusInvited,
				"updatedAt":         time.Now(),
			},
		})
	}, 3)
	return err
}

// ConsumeInvite is a single findAndModify: the token must match exactly
// and be unexpired, and the update sets the hash, flips the status, and
// clears the token in one document write.
func (r *CustomerRepository) ConsumeInvite(ctx context.Context, token string, now time.Time, passwordHash string) (*models.Customer, error) {
	filter := bson.M{
		"inviteToken":       token,
		"inviteTokenExpiry": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"passwordHash": passwordHash,
			"inviteStatus": models.InviteStatusSignedUp,
			"updatedAt":    now,
		},
		"$unset": bson.M{
			"inviteToken":       "",
			"inviteTokenExpiry": "",
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var customer models.Customer
	err := Collection(CustomersCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid customer id: %w", err)
	}

	_, err = ExecuteDbOperation(func() (interface{}, error) {
		return Collection(CustomersCollection).UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
			"$set": bson.M{
				"passwordHash": passwordHash,
				"updatedAt":    time.Now(),
			},
		})
	}, 3)
	return err
}

func (r *CustomerRepository) SetStripeCustomerID(ctx context.Context, id, stripeID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid customer id: %w", err)
	}

	_, err = ExecuteDbOperation(func() (interface{}, error) {
		return Collection(CustomersCollection).UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
			"$set": bson.M{
				"stripeCustomerId": stripeID,
				"updatedAt":        time.Now(),
			},
		})
	}, 3)
	return err
}

// CountOutstandingInvites counts customers holding a token at all, and the
// subset whose token has already expired.
func (r *CustomerRepository) CountOutstandingInvites(ctx context.Context, now time.Time) (int64, int64, error) {
	coll := Collection(CustomersCollection)
	holding := bson.M{"inviteToken": bson.M{"$exists": true, "$ne": nil}}

	total, err := coll.CountDocuments(ctx, holding)
	if err != nil {
		return 0, 0, err
	}

	expired, err := coll.CountDocuments(ctx, bson.M{
		"inviteToken":       bson.M{"$exists": true, "$ne": nil},
		"inviteTokenExpiry": bson.M{"$lte": now},
	})
	if err != nil {
		return 0, 0, err
	}

	return total, expired, nil
}

// LeadRepository persists leads.
type LeadRepository struct{}

// NewLeadRepository returns the leads store.
func NewLeadRepository() *LeadRepository {
	return &LeadRepository{}
}

func (r *LeadRepository) List(ctx context.Context, status string) ([]models.Lead, error) {
	filter := bson.M{"status": bson.M{"$ne": models.LeadStatusConverted}}
	if status != "" {
		filter = bson.M{"status": status}
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := Collection(LeadsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var lead models.Lead
	err = Collection(LeadsCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	result, err := ExecuteDbOperation(func() (interface{}, error) {
		return Collection(LeadsCollection).UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	}, 3)
	if err != nil {
		return false, err
	}
	return result.(*mongo.UpdateResult).MatchedCount > 0, nil
}

// DeleteIfNotConverted is the compare-and-delete guard used by lead
// conversion: a racing second convert matches nothing.
func (r *LeadRepository) DeleteIfNotConverted(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := ExecuteDbOperation(func() (interface{}, error) {
		return Collection(LeadsCollection).DeleteOne(ctx, bson.M{
			"_id":    objID,
			"status": bson.M{"$ne": models.LeadStatusConverted},
		})
	}, 3)
	if err != nil {
		return false, err
	}
	return result.(*mongo.DeleteResult).DeletedCount > 0, nil
}

// ProjectRepository exposes project reads for the aggregator.
type ProjectRepository struct{}

// NewProjectRepository returns the projects store.
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var project models.Project
	err = Collection(ProjectsCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) ListOutstanding(ctx context.Context) ([]models.Project, error) {
	filter := bson.M{
		"paymentStatus": bson.M{"$in": []models.PaymentStatus{
			models.PaymentStatusUnpaid,
			models.PaymentStatusPartiallyPaid,
		}},
		"status": bson.M{"$ne": models.ProjectStatusComplete},
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := Collection(ProjectsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// FeedbackRepository persists update feedback, one document per
// (updateId, customerId) pair.
type FeedbackRepository struct{}

// NewFeedbackRepository returns the feedback store.
func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

func (r *FeedbackRepository) Upsert(ctx context.Context, updateID, customerID string, liked *bool, comment string) (*models.ProjectUpdateFeedback, error) {
	filter := bson.M{"updateId": updateID, "customerId": customerID}
	change := bson.M{
		"$set":         bson.M{"liked": liked, "comment": comment},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var feedback models.ProjectUpdateFeedback
	err := Collection(FeedbackCollection).FindOneAndUpdate(ctx, filter, change, opts).Decode(&feedback)
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackRepository) EnsureRecord(ctx context.Context, updateID, customerID string, createdAt time.Time) error {
	_, err := Collection(FeedbackCollection).UpdateOne(ctx,
		bson.M{"updateId": updateID, "customerId": customerID},
		bson.M{"$setOnInsert": bson.M{"liked": nil, "createdAt": createdAt}},
		options.Update().SetUpsert(true))
	return err
}

// SetViewedIfUnset stamps viewedAt through a filter that only matches
// documents without one, so a recorded first view survives repeat calls.
func (r *FeedbackRepository) SetViewedIfUnset(ctx context.Context, updateID, customerID string, viewedAt time.Time) (bool, error) {
	result, err := Collection(FeedbackCollection).UpdateOne(ctx,
		bson.M{
			"updateId":   updateID,
			"customerId": customerID,
			"viewedAt":   bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{"viewedAt": viewedAt}})
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (r *FeedbackRepository) SetReply(ctx context.Context, feedbackID, reply string) (*models.ProjectUpdateFeedback, error) {
	objID, err := primitive.ObjectIDFromHex(feedbackID)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var feedback models.ProjectUpdateFeedback
	err = Collection(FeedbackCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"reply": reply}},
		opts).
		Decode(&feedback)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackRepository) ListByUpdate(ctx context.Context, updateID string) ([]models.ProjectUpdateFeedback, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := Collection(FeedbackCollection).Find(ctx, bson.M{"updateId": updateID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedback []models.ProjectUpdateFeedback
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// SubscriptionRepository exposes subscription reads for the aggregator.
type SubscriptionRepository struct{}

// NewSubscriptionRepository returns the subscriptions store.
func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{}
}

func (r *SubscriptionRepository) ListByStatus(ctx context.Context, status models.SubscriptionStatus) ([]models.RecurringSubscription, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := Collection(SubscriptionsCollection).Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.RecurringSubscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
