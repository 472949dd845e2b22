package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectType classifies the engagement.
type ProjectType string

const (
	ProjectTypeWebsiteRedesign ProjectType = "website_redesign"
	ProjectTypeNewWebsite      ProjectType = "new_website"
	ProjectTypeSEO             ProjectType = "seo"
	ProjectTypeMarketing       ProjectType = "marketing"
	ProjectTypeOther           ProjectType = "other"
)

// ProjectStatus is the delivery pipeline stage. The pipeline is ordered but
// admin edits may move a project to any stage.
type ProjectStatus string

const (
	ProjectStatusDiscovery   ProjectStatus = "discovery"
	ProjectStatusDesign      ProjectStatus = "design"
	ProjectStatusDevelopment ProjectStatus = "development"
	ProjectStatusReview      ProjectStatus = "review"
	ProjectStatusLaunch      ProjectStatus = "launch"
	ProjectStatusComplete    ProjectStatus = "complete"
)

// PaymentStatus tracks the one-time cost of a project.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

// IsValidProjectType reports whether s is a known project type.
func IsValidProjectType(s string) bool {
	switch ProjectType(s) {
	case ProjectTypeWebsiteRedesign, ProjectTypeNewWebsite, ProjectTypeSEO, ProjectTypeMarketing, ProjectTypeOther:
		return true
	}
	return false
}

// IsValidProjectStatus reports whether s is a known pipeline stage.
func IsValidProjectStatus(s string) bool {
	switch ProjectStatus(s) {
	case ProjectStatusDiscovery, ProjectStatusDesign, ProjectStatusDevelopment,
		ProjectStatusReview, ProjectStatusLaunch, ProjectStatusComplete:
		return true
	}
	return false
}

// IsValidPaymentStatus reports whether s is a known payment status.
func IsValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusUnpaid, PaymentStatusPartiallyPaid, PaymentStatusPaid:
		return true
	}
	return false
}

// Project is a unit of work owned by exactly one customer.
type Project struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CustomerID    string             `bson:"customerId" json:"customerId"`
	Type          ProjectType        `bson:"type" json:"type"`
	Name          string             `bson:"name" json:"name"`
	Status        ProjectStatus      `bson:"status" json:"status"`
	OneTimeCost   float64            `bson:"oneTimeCost,omitempty" json:"oneTimeCost,omitempty"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProjectUpdate is a progress post on a project. Updates are immutable once
// published.
type ProjectUpdate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProjectID   string             `bson:"projectId" json:"projectId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProjectUpdateFeedback is a customer's reaction to an update. At most one
// record exists per (updateId, customerId) pair; writes upsert on that key.
// ViewedAt is set exactly once on first view.
type ProjectUpdateFeedback struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UpdateID   string             `bson:"updateId" json:"updateId"`
	CustomerID string             `bson:"customerId,omitempty" json:"customerId,omitempty"`
	Liked      *bool              `bson:"liked" json:"liked"`
	Comment    string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Reply      string             `bson:"reply,omitempty" json:"reply,omitempty"`
	ViewedAt   *time.Time         `bson:"viewedAt,omitempty" json:"viewedAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

type (
	// ProjectCreateRequest creates a project for a customer.
	ProjectCreateRequest struct {
		CustomerID  string  `json:"customerId" binding:"required"`
		Type        string  `json:"type" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		OneTimeCost float64 `json:"oneTimeCost"`
	}

	// ProjectPatchRequest is the lenient admin edit body; unknown enum
	// values are dropped rather than rejected.
	ProjectPatchRequest struct {
		Name          *string  `json:"name"`
		Type          *string  `json:"type"`
		Status        *string  `json:"status"`
		OneTimeCost   *float64 `json:"oneTimeCost"`
		PaymentStatus *string  `json:"paymentStatus"`
	}

	// UpdateCreateRequest publishes a progress update. Images are URLs
	// already hosted (see the uploads endpoint).
	UpdateCreateRequest struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Images      []string `json:"images"`
	}

	// FeedbackRequest records a customer's like/comment on an update.
	FeedbackRequest struct {
		Liked   *bool  `json:"liked"`
		Comment string `json:"comment"`
	}

	// FeedbackReplyRequest is the admin reply to a piece of feedback.
	FeedbackReplyRequest struct {
		Reply string `json:"reply" binding:"required"`
	}
)
