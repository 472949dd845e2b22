package service

import (
	"context"
	"time"

	"github.com/pixelnest/studio-server/utils"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily housekeeping jobs.
type Scheduler struct {
	cron      *cron.Cron
	customers CustomerStore
}

// NewScheduler builds the scheduler; Start registers and runs the jobs.
func NewScheduler(customers CustomerStore) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		customers: customers,
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() {
	// Every morning, report on outstanding invite tokens. Expired tokens
	// are deliberately left in place: clearing them would make an expired
	// token indistinguishable from one that never existed.
	if _, err := s.cron.AddFunc("0 6 * * *", s.reportOutstandingInvites); err != nil {
		utils.Logger.Error().Err(err).Msg("register invite report job failed")
		return
	}
	s.cron.Start()
	utils.Logger.Info().Msg("scheduler started")
}

// Stop halts the cron loop.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	utils.Logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) reportOutstandingInvites() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total, expired, err := s.customers.CountOutstandingInvites(ctx, time.Now())
	if err != nil {
		utils.Logger.Error().Err(err).Msg("outstanding invite count failed")
		return
	}

	event := utils.Logger.Info()
	if expired > 0 {
		event = utils.Logger.Warn()
	}
	event.
		Int64("outstanding", total).
		Int64("expired", expired).
		Msg("invite token report")
}
