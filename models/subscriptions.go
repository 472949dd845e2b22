package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionStatus mirrors the billing provider's subscription states.
type SubscriptionStatus string

const (
	SubscriptionStatusActive     SubscriptionStatus = "active"
	SubscriptionStatusCanceled   SubscriptionStatus = "canceled"
	SubscriptionStatusPastDue    SubscriptionStatus = "past_due"
	SubscriptionStatusTrialing   SubscriptionStatus = "trialing"
	SubscriptionStatusIncomplete SubscriptionStatus = "incomplete"
)

// IsValidSubscriptionStatus reports whether s is a known subscription status.
func IsValidSubscriptionStatus(s string) bool {
	switch SubscriptionStatus(s) {
	case SubscriptionStatusActive, SubscriptionStatusCanceled, SubscriptionStatusPastDue,
		SubscriptionStatusTrialing, SubscriptionStatusIncomplete:
		return true
	}
	return false
}

// SubscriptionItem is one recurring line on a subscription. Amounts are in
// major currency units.
type SubscriptionItem struct {
	PriceID     string  `bson:"priceId" json:"priceId"`
	ProductID   string  `bson:"productId" json:"productId"`
	ProductName string  `bson:"productName" json:"productName"`
	Amount      float64 `bson:"amount" json:"amount"`
	Interval    string  `bson:"interval" json:"interval"`
}

// RecurringSubscription is a billing record owned by one customer and one
// project. Older documents carry a single flattened item in the priceId/
// productId/productName/amount/interval fields; newer ones use Items.
// Readers should go through NormalizedItems rather than touching either
// shape directly.
type RecurringSubscription struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProjectID            string             `bson:"projectId" json:"projectId"`
	CustomerID           string             `bson:"customerId" json:"customerId"`
	StripeSubscriptionID string             `bson:"stripeSubscriptionId" json:"stripeSubscriptionId"`

	Items []SubscriptionItem `bson:"items,omitempty" json:"items,omitempty"`

	// Legacy flattened single-item shape.
	PriceID     string  `bson:"priceId,omitempty" json:"priceId,omitempty"`
	ProductID   string  `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName string  `bson:"productName,omitempty" json:"productName,omitempty"`
	Amount      float64 `bson:"amount,omitempty" json:"amount,omitempty"`
	Interval    string  `bson:"interval,omitempty" json:"interval,omitempty"`

	BillingDay        int                `bson:"billingDay,omitempty" json:"billingDay,omitempty"`
	FirstPaymentDate  *time.Time         `bson:"firstPaymentDate,omitempty" json:"firstPaymentDate,omitempty"`
	CancelAtPeriodEnd bool               `bson:"cancelAtPeriodEnd" json:"cancelAtPeriodEnd"`
	Status            SubscriptionStatus `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NormalizedItems folds both storage shapes into one items view. The items
// array wins when present; otherwise the flattened fields become a
// single-element list. A record with neither yields an empty list.
func (s *RecurringSubscription) NormalizedItems() []SubscriptionItem {
	if len(s.Items) > 0 {
		return s.Items
	}
	if s.PriceID == "" && s.ProductID == "" && s.Amount == 0 {
		return nil
	}
	return []SubscriptionItem{{
		PriceID:     s.PriceID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Amount:      s.Amount,
		Interval:    s.Interval,
	}}
}

// MonthlyTotal sums the normalized item amounts.
func (s *RecurringSubscription) MonthlyTotal() float64 {
	var total float64
	for _, item := range s.NormalizedItems() {
		total += item.Amount
	}
	return total
}

// SubscriptionAlert is a subscription row in the payment-stats view,
// denormalized with customer and project display names at read time.
type SubscriptionAlert struct {
	SubscriptionID string             `json:"subscriptionId"`
	CustomerID     string             `json:"customerId"`
	CustomerName   string             `json:"customerName"`
	ProjectID      string             `json:"projectId"`
	ProjectName    string             `json:"projectName"`
	Status         SubscriptionStatus `json:"status"`
	Amount         float64            `json:"amount"`
	Items          []SubscriptionItem `json:"items,omitempty"`
}

// ProjectAlert is an outstanding-project row in the payment-stats view.
type ProjectAlert struct {
	ProjectID     string        `json:"projectId"`
	ProjectName   string        `json:"projectName"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	Status        ProjectStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	OneTimeCost   float64       `json:"oneTimeCost"`
}

// PaymentStats is the consolidated who-owes-money view.
type PaymentStats struct {
	LateSubscriptions    []SubscriptionAlert `json:"lateSubscriptions"`
	PendingSubscriptions []SubscriptionAlert `json:"pendingSubscriptions"`
	UnpaidProjects       []ProjectAlert      `json:"unpaidProjects"`
}

// CatalogOffering is one recurring price from the billing provider's
// catalog, enriched with its product name and a major-unit amount.
type CatalogOffering struct {
	PriceID     string  `json:"priceId"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Interval    string  `json:"interval"`
}

type (
	// SubscriptionCreateRequest records a provider subscription against a
	// customer and project.
	SubscriptionCreateRequest struct {
		ProjectID            string             `json:"projectId" binding:"required"`
		CustomerID           string             `json:"customerId" binding:"required"`
		StripeSubscriptionID string             `json:"stripeSubscriptionId" binding:"required"`
		Items                []SubscriptionItem `json:"items"`
		BillingDay           int                `json:"billingDay"`
		FirstPaymentDate     *time.Time         `json:"firstPaymentDate"`
	}

	// SubscriptionPatchRequest is the lenient status/cancel edit body.
	SubscriptionPatchRequest struct {
		Status            *string `json:"status"`
		CancelAtPeriodEnd *bool   `json:"cancelAtPeriodEnd"`
		BillingDay        *int    `json:"billingDay"`
	}

	// PortalSessionRequest asks for a billing-portal URL for a customer.
	PortalSessionRequest struct {
		CustomerID string `json:"customerId" binding:"required"`
	}
)
