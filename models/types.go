package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InviteStatus tracks how far a customer is through portal onboarding.
type InviteStatus string

const (
	InviteStatusNotInvited InviteStatus = "not_invited"
	InviteStatusInvited    InviteStatus = "invited"
	InviteStatusSignedUp   InviteStatus = "signed_up"
)

// LeadStatus is the sales-funnel state of an unconverted prospect.
type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new"
	LeadStatusContacted     LeadStatus = "contacted"
	LeadStatusConverted     LeadStatus = "converted"
	LeadStatusNotInterested LeadStatus = "not_interested"
)

// IsValidLeadStatus reports whether s is in the lead status allow-list.
func IsValidLeadStatus(s string) bool {
	switch LeadStatus(s) {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusNotInterested:
		return true
	}
	return false
}

// IsValidInviteStatus reports whether s is a known invite status.
func IsValidInviteStatus(s string) bool {
	switch InviteStatus(s) {
	case InviteStatusNotInvited, InviteStatusInvited, InviteStatusSignedUp:
		return true
	}
	return false
}

// AdminUser is the single persisted admin credential record. It is created
// on first boot from ADMIN_PASSWORD and verified on /api/auth/login.
type AdminUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Customer is the root aggregate: a client of the studio. The credential
// fields (passwordHash, inviteToken, inviteTokenExpiry) are write-only and
// must never be serialized into a response.
type Customer struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Company           string             `bson:"company,omitempty" json:"company,omitempty"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	InviteStatus      InviteStatus       `bson:"inviteStatus" json:"inviteStatus"`
	StripeCustomerID  string             `bson:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	PasswordHash      string             `bson:"passwordHash,omitempty" json:"-"`
	InviteToken       string             `bson:"inviteToken,omitempty" json:"-"`
	InviteTokenExpiry *time.Time         `bson:"inviteTokenExpiry,omitempty" json:"-"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Lead is an inbound prospect from the marketing site. It stays independent
// of Customer until conversion deletes it.
type Lead struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Company    string             `bson:"company" json:"company"`
	Interested string             `bson:"interested" json:"interested"`
	Project    string             `bson:"project" json:"project"`
	Status     LeadStatus         `bson:"status" json:"status"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

type (
	// LoginRequest is the admin login body. There is one shared admin
	// account, so only the password travels.
	LoginRequest struct {
		Password string `json:"password" binding:"required"`
	}

	// PortalLoginRequest is the customer portal login body.
	PortalLoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// SetPasswordRequest consumes an invite token.
	SetPasswordRequest struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// ResetPasswordRequest changes an already-set portal password.
	ResetPasswordRequest struct {
		CustomerID      string `json:"customerId" binding:"required"`
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}

	// LeadCreateRequest is the public contact-form submission.
	LeadCreateRequest struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Phone      string `json:"phone"`
		Company    string `json:"company" binding:"required"`
		Interested string `json:"interested"`
		Project    string `json:"project"`
	}

	// LeadPatchRequest carries optional status/notes changes. An invalid
	// status value is ignored, not rejected.
	LeadPatchRequest struct {
		Status *string `json:"status"`
		Notes  *string `json:"notes"`
	}

	// CustomerCreateRequest creates a customer directly, outside the
	// lead-conversion path.
	CustomerCreateRequest struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Company string `json:"company"`
		Phone   string `json:"phone"`
		Notes   string `json:"notes"`
	}

	// CustomerPatchRequest is the lenient admin edit body.
	CustomerPatchRequest struct {
		Name         *string `json:"name"`
		Email        *string `json:"email"`
		Company      *string `json:"company"`
		Phone        *string `json:"phone"`
		Notes        *string `json:"notes"`
		InviteStatus *string `json:"inviteStatus"`
	}
)
