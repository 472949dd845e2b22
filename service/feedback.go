package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/utils"
)

// ErrFeedbackNotFound marks a reply against a feedback id that does not
// exist.
var ErrFeedbackNotFound = errors.New("feedback not found")

// FeedbackService handles customer reactions to project updates: the
// like/comment upsert, the admin reply, and the first-view stamp. The
// viewed timestamp is written through a conditional store update, so once
// set it is never replaced.
type FeedbackService struct {
	feedback FeedbackStore
	now      func() time.Time
}

// NewFeedbackService wires the feedback flow.
func NewFeedbackService(feedback FeedbackStore) *FeedbackService {
	return &FeedbackService{feedback: feedback, now: time.Now}
}

// Submit records the customer's like/comment, overwriting any earlier
// reaction for the same update in place.
func (s *FeedbackService) Submit(ctx context.Context, updateID, customerID string, req models.FeedbackRequest) (*models.ProjectUpdateFeedback, error) {
	feedback, err := s.feedback.Upsert(ctx, updateID, customerID, req.Liked, req.Comment)
	if err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	return feedback, nil
}

// MarkViewed stamps the customer's first view of an update. The record is
// created if the customer has not reacted yet; the stamp itself goes
// through SetViewedIfUnset, so later calls leave the first timestamp
// intact.
func (s *FeedbackService) MarkViewed(ctx context.Context, updateID, customerID string) error {
	now := s.now()
	if err := s.feedback.EnsureRecord(ctx, updateID, customerID, now); err != nil {
		return fmt.Errorf("ensure feedback record: %w", err)
	}

	stamped, err := s.feedback.SetViewedIfUnset(ctx, updateID, customerID, now)
	if err != nil {
		return fmt.Errorf("mark viewed: %w", err)
	}
	if !stamped {
		utils.Logger.Debug().
			Str("updateId", updateID).
			Str("customerId", customerID).
			Msg("update already viewed, keeping original timestamp")
	}
	return nil
}

// Reply stores the admin reply on a feedback record.
func (s *FeedbackService) Reply(ctx context.Context, feedbackID, reply string) (*models.ProjectUpdateFeedback, error) {
	feedback, err := s.feedback.SetReply(ctx, feedbackID, reply)
	if err != nil {
		return nil, fmt.Errorf("save reply: %w", err)
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	return feedback, nil
}

// ListForUpdate returns all feedback for one update, newest first.
func (s *FeedbackService) ListForUpdate(ctx context.Context, updateID string) ([]models.ProjectUpdateFeedback, error) {
	feedback, err := s.feedback.ListByUpdate(ctx, updateID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	if feedback == nil {
		feedback = []models.ProjectUpdateFeedback{}
	}
	return feedback, nil
}
