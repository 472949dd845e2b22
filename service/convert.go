package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/utils"
)

// ErrLeadNotFound marks a conversion or registry lookup on a lead that
// does not exist (or was already converted away).
var ErrLeadNotFound = errors.New("lead not found")

// LeadConverter promotes leads into customers.
type LeadConverter struct {
	leads     LeadStore
	customers CustomerStore
	now       func() time.Time
}

// NewLeadConverter wires the converter.
func NewLeadConverter(leads LeadStore, customers CustomerStore) *LeadConverter {
	return &LeadConverter{leads: leads, customers: customers, now: time.Now}
}

// Convert creates a customer from the lead and removes the lead. The two
// writes are not one transaction: if the delete fails after the customer
// exists, the anomaly is logged and the call still succeeds, favoring
// availability. The delete is conditioned on the lead not being converted,
// so a racing second convert removes nothing and is logged.
func (s *LeadConverter) Convert(ctx context.Context, leadID string) (string, error) {
	lead, err := s.leads.FindByID(ctx, leadID)
	if err != nil {
		return "", fmt.Errorf("load lead: %w", err)
	}
	if lead == nil {
		return "", ErrLeadNotFound
	}

	now := s.now()
	customer := &models.Customer{
		Name:         lead.Name,
		Email:        lead.Email,
		Company:      lead.Company,
		Phone:        lead.Phone,
		Notes:        lead.Notes,
		InviteStatus: models.InviteStatusNotInvited, // conversion never auto-invites
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	customerID, err := s.customers.Insert(ctx, customer)
	if err != nil {
		return "", fmt.Errorf("create customer from lead: %w", err)
	}

	deleted, err := s.leads.DeleteIfNotConverted(ctx, leadID)
	if err != nil {
		utils.Logger.Error().
			Err(err).
			Str("leadId", leadID).
			Str("customerId", customerID).
			Msg("lead delete failed after conversion, lead left behind")
	} else if !deleted {
		utils.Logger.Error().
			Str("leadId", leadID).
			Str("customerId", customerID).
			Msg("lead already gone during conversion, possible double convert")
	}

	utils.Logger.Info().
		Str("leadId", leadID).
		Str("customerId", customerID).
		Msg("lead converted")

	return customerID, nil
}
