package service

import (
	"context"
	"time"

	"github.com/pixelnest/studio-server/models"
)

// Store interfaces consumed by the services in this package. The mongo
// implementations live in repository. Lookup methods return (nil, nil)
// when no record matches, so callers can tell "absent" from "failed".

// CustomerStore persists customers and their credential state.
type CustomerStore interface {
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	FindByInviteToken(ctx context.Context, token string) (*models.Customer, error)
	Insert(ctx context.Context, customer *models.Customer) (string, error)
	SetInvite(ctx context.Context, id, token string, expiry time.Time) error

	// ConsumeInvite atomically matches a live token (exact string, expiry in
	// the future), sets the password hash and signed_up status, and clears
	// the token and expiry. Returns (nil, nil) when no live token matches.
	ConsumeInvite(ctx context.Context, token string, now time.Time, passwordHash string) (*models.Customer, error)

	SetPassword(ctx context.Context, id, passwordHash string) error
	SetStripeCustomerID(ctx context.Context, id, stripeID string) error

	// CountOutstandingInvites counts customers still holding a token, and
	// how many of those tokens have already expired.
	CountOutstandingInvites(ctx context.Context, now time.Time) (total int64, expired int64, err error)
}

// LeadStore persists sales leads.
type LeadStore interface {
	// List returns leads, newest first. An empty status applies the
	// baseline filter, which always excludes converted leads.
	List(ctx context.Context, status string) ([]models.Lead, error)
	FindByID(ctx context.Context, id string) (*models.Lead, error)

	// Update applies the given fields and reports whether a lead matched.
	Update(ctx context.Context, id string, fields map[string]interface{}) (bool, error)

	// DeleteIfNotConverted deletes the lead unless another converter got
	// there first. Reports whether a document was removed.
	DeleteIfNotConverted(ctx context.Context, id string) (bool, error)
}

// ProjectStore exposes the project reads the aggregator needs.
type ProjectStore interface {
	FindByID(ctx context.Context, id string) (*models.Project, error)

	// ListOutstanding returns projects with money owed: paymentStatus in
	// {unpaid, partially_paid} and status not complete.
	ListOutstanding(ctx context.Context) ([]models.Project, error)
}

// SubscriptionStore exposes the subscription reads the aggregator needs.
type SubscriptionStore interface {
	ListByStatus(ctx context.Context, status models.SubscriptionStatus) ([]models.RecurringSubscription, error)
}

// FeedbackStore persists customer reactions to project updates. At most
// one record exists per (updateID, customerID) pair. There is deliberately
// no unconditional viewedAt setter: the stamp can only be written through
// the conditional SetViewedIfUnset, so a recorded first view can never be
// overwritten.
type FeedbackStore interface {
	// Upsert writes the like/comment for the pair, creating the record on
	// first write and returning the stored document.
	Upsert(ctx context.Context, updateID, customerID string, liked *bool, comment string) (*models.ProjectUpdateFeedback, error)

	// EnsureRecord creates an empty record for the pair if none exists.
	EnsureRecord(ctx context.Context, updateID, customerID string, createdAt time.Time) error

	// SetViewedIfUnset stamps viewedAt only when the record has none yet.
	// Reports whether this call wrote the stamp.
	SetViewedIfUnset(ctx context.Context, updateID, customerID string, viewedAt time.Time) (bool, error)

	// SetReply stores the admin reply, returning (nil, nil) when the
	// feedback record does not exist.
	SetReply(ctx context.Context, feedbackID, reply string) (*models.ProjectUpdateFeedback, error)

	ListByUpdate(ctx context.Context, updateID string) ([]models.ProjectUpdateFeedback, error)
}
