package service

import (
	"context"
	"fmt"

	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/utils"

	"golang.org/x/sync/errgroup"
)

// unknownName is the sentinel display name for a dangling reference. A
// record pointing at a deleted customer or project still shows up in the
// stats instead of sinking the whole view.
const unknownName = "Unknown"

// PaymentStatsService composes the read-only who-owes-money view.
type PaymentStatsService struct {
	subscriptions SubscriptionStore
	projects      ProjectStore
	customers     CustomerStore
}

// NewPaymentStatsService wires the aggregator.
func NewPaymentStatsService(subscriptions SubscriptionStore, projects ProjectStore, customers CustomerStore) *PaymentStatsService {
	return &PaymentStatsService{
		subscriptions: subscriptions,
		projects:      projects,
		customers:     customers,
	}
}

// GetPaymentStats runs the three source queries concurrently and joins
// each row with its customer/project display names. All three queries must
// succeed; inside a query, dangling references degrade to "Unknown".
func (s *PaymentStatsService) GetPaymentStats(ctx context.Context) (*models.PaymentStats, error) {
	stats := &models.PaymentStats{
		LateSubscriptions:    []models.SubscriptionAlert{},
		PendingSubscriptions: []models.SubscriptionAlert{},
		UnpaidProjects:       []models.ProjectAlert{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		alerts, err := s.subscriptionAlerts(gctx, models.SubscriptionStatusPastDue)
		if err != nil {
			return fmt.Errorf("late subscriptions: %w", err)
		}
		stats.LateSubscriptions = alerts
		return nil
	})

	g.Go(func() error {
		alerts, err := s.subscriptionAlerts(gctx, models.SubscriptionStatusIncomplete)
		if err != nil {
			return fmt.Errorf("pending subscriptions: %w", err)
		}
		stats.PendingSubscriptions = alerts
		return nil
	})

	g.Go(func() error {
		alerts, err := s.projectAlerts(gctx)
		if err != nil {
			return fmt.Errorf("unpaid projects: %w", err)
		}
		stats.UnpaidProjects = alerts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *PaymentStatsService) subscriptionAlerts(ctx context.Context, status models.SubscriptionStatus) ([]models.SubscriptionAlert, error) {
	subs, err := s.subscriptions.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.SubscriptionAlert, 0, len(subs))
	for _, sub := range subs {
		alerts = append(alerts, models.SubscriptionAlert{
			SubscriptionID: sub.ID.Hex(),
			CustomerID:     sub.CustomerID,
			CustomerName:   s.customerName(ctx, sub.CustomerID),
			ProjectID:      sub.ProjectID,
			ProjectName:    s.projectName(ctx, sub.ProjectID),
			Status:         sub.Status,
			Amount:         sub.MonthlyTotal(),
			Items:          sub.NormalizedItems(),
		})
	}

	return alerts, nil
}

func (s *PaymentStatsService) projectAlerts(ctx context.Context) ([]models.ProjectAlert, error) {
	projects, err := s.projects.ListOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.ProjectAlert, 0, len(projects))
	for _, project := range projects {
		alerts = append(alerts, models.ProjectAlert{
			ProjectID:     project.ID.Hex(),
			ProjectName:   project.Name,
			CustomerID:    project.CustomerID,
			CustomerName:  s.customerName(ctx, project.CustomerID),
			Status:        project.Status,
			PaymentStatus: project.PaymentStatus,
			OneTimeCost:   project.OneTimeCost,
		})
	}

	return alerts, nil
}

// customerName resolves a display name, degrading to "Unknown" on a
// dangling reference or lookup failure.
func (s *PaymentStatsService) customerName(ctx context.Context, customerID string) string {
	if customerID == "" {
		return unknownName
	}
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		utils.Logger.Warn().Err(err).Str("customerId", customerID).Msg("payment stats customer lookup failed")
		return unknownName
	}
	if customer == nil {
		return unknownName
	}
	return customer.Name
}

func (s *PaymentStatsService) projectName(ctx context.Context, projectID string) string {
	if projectID == "" {
		return unknownName
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		utils.Logger.Warn().Err(err).Str("projectId", projectID).Msg("payment stats project lookup failed")
		return unknownName
	}
	if project == nil {
		return unknownName
	}
	return project.Name
}
