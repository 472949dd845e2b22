package service

import (
	"context"
	"fmt"

	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/utils"
)

// LeadService is the lead registry: list with the converted-exclusion
// baseline, lookups, and the lenient status/notes PATCH.
type LeadService struct {
	leads LeadStore
}

// NewLeadService wires the registry.
func NewLeadService(leads LeadStore) *LeadService {
	return &LeadService{leads: leads}
}

// List returns leads, optionally filtered by status. Converted leads never
// appear: the baseline query excludes them, and asking for them directly
// yields an empty list since conversion deletes the record.
func (s *LeadService) List(ctx context.Context, statusFilter string) ([]models.Lead, error) {
	if statusFilter != "" && !models.IsValidLeadStatus(statusFilter) {
		utils.Logger.Warn().Str("status", statusFilter).Msg("unknown lead status filter ignored")
		statusFilter = ""
	}
	if statusFilter == string(models.LeadStatusConverted) {
		return []models.Lead{}, nil
	}

	leads, err := s.leads.List(ctx, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	return leads, nil
}

// Get returns one lead.
func (s *LeadService) Get(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load lead: %w", err)
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// Patch applies status and notes changes. An unknown status value is
// dropped with a warning rather than rejected; the rest of the patch still
// applies.
func (s *LeadService) Patch(ctx context.Context, id string, req models.LeadPatchRequest) error {
	fields := map[string]interface{}{}

	if req.Status != nil {
		if models.IsValidLeadStatus(*req.Status) {
			fields["status"] = *req.Status
		} else {
			utils.Logger.Warn().
				Str("leadId", id).
				Str("status", *req.Status).
				Msg("invalid lead status ignored")
		}
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if len(fields) == 0 {
		// Everything in the patch was dropped; still confirm the lead exists.
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return nil
	}

	matched, err := s.leads.Update(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("patch lead: %w", err)
	}
	if !matched {
		return ErrLeadNotFound
	}
	return nil
}
