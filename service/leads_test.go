package service

import (
	"context"
	"testing"

	"github.com/pixelnest/studio-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListPassesValidStatusFilter(t *testing.T) {
	leads := new(MockLeadStore)
	svc := NewLeadService(leads)

	leads.On("List", mock.Anything, "contacted").Return([]models.Lead{{Name: "G"}}, nil)

	result, err := svc.List(context.Background(), "contacted")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	leads.AssertExpectations(t)
}

func TestListIgnoresBogusStatusFilter(t *testing.T) {
	leads := new(MockLeadStore)
	svc := NewLeadService(leads)

	// Unknown filter falls back to the baseline query.
	leads.On("List", mock.Anything, "").Return([]models.Lead{{Name: "A"}, {Name: "B"}}, nil)

	result, err := svc.List(context.Background(), "sideways")

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestListConvertedFilterIsAlwaysEmpty(t *testing.T) {
	leads := new(MockLeadStore)
	svc := NewLeadService(leads)

	result, err := svc.List(context.Background(), "converted")

	assert.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
	leads.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListNilBecomesEmptySlice(t *testing.T) {
	leads := new(MockLeadStore)
	svc := NewLeadService(leads)

	leads.On("List", mock.Anything, "").Return([]models.Lead(nil), nil)

	result, err := svc.List(context.Background(), "")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestPatchAppliesValidStatus(t *testing.T) {
	leads := new(MockLeadStore)
	svc := NewLeadService(leads)

	status := "contacted"
	notes := "called twice"
	leads.On("Update", mock.Anything, "lead-1", map[string]interface{}{
		"status": "contacted",
		"notes":  "called twice",
	}).Return(true, nil)

	err := svc.Patch(context.Background(), "lead-1", models.LeadPatchRequest{Status: &status, Notes: &notes})

	assert.NoError(t, err)
	leads.AssertExpectations(t)
}

func TestPatchDropsInvalidStatusKeepsNotes(t *testing.T) {
	leads := new(MockLeadStore)
	svc := NewLeadService(leads)

	status := "definitely-not-a-status"
	notes := "still useful"
	leads.On("Update", mock.Anything, "lead-1", map[string]interface{}{
		"notes": "still useful",
	}).Return(true, nil)

	err := svc.Patch(context.Background(), "lead-1", models.LeadPatchRequest{Status: &status, Notes: &notes})

	assert.NoError(t, err)
	leads.AssertExpectations(t)
}

func TestPatchAllFieldsDroppedStillChecksExistence(t *testing.T) {
	leads := new(MockLeadStore)
	svc := NewLeadService(leads)

	status := "bogus"
	leads.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	err := svc.Patch(context.Background(), "missing", models.LeadPatchRequest{Status: &status})

	assert.ErrorIs(t, err, ErrLeadNotFound)
	leads.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestPatchUnmatchedLead(t *testing.T) {
	leads := new(MockLeadStore)
	svc := NewLeadService(leads)

	notes := "hello"
	leads.On("Update", mock.Anything, "missing", mock.Anything).Return(false, nil)

	err := svc.Patch(context.Background(), "missing", models.LeadPatchRequest{Notes: &notes})

	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestGetUnknownLead(t *testing.T) {
	leads := new(MockLeadStore)
	svc := NewLeadService(leads)

	leads.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrLeadNotFound)
}
