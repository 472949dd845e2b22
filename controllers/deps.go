package controllers

import (
	"github.com/pixelnest/studio-server/config"
	"github.com/pixelnest/studio-server/repository"
	"github.com/pixelnest/studio-server/service"
)

// Package-level services, wired once at startup after the database is up,
// mirroring how the repository package exposes its globals.
var (
	invites     *service.InviteService
	leadSvc     *service.LeadService
	converter   *service.LeadConverter
	stats       *service.PaymentStatsService
	billing     *service.BillingService
	feedbackSvc *service.FeedbackService
	uploader    service.ImageUploader
)

// Init wires the service layer. Must run before routes are served.
func Init(cfg *config.Config) {
	customers := repository.NewCustomerRepository()
	leads := repository.NewLeadRepository()
	projects := repository.NewProjectRepository()
	subscriptions := repository.NewSubscriptionRepository()

	mailer := service.NewMailerFromConfig(cfg)

	invites = service.NewInviteService(customers, mailer, cfg)
	leadSvc = service.NewLeadService(leads)
	converter = service.NewLeadConverter(leads, customers)
	stats = service.NewPaymentStatsService(subscriptions, projects, customers)
	billing = service.NewBillingService(cfg, customers)
	feedbackSvc = service.NewFeedbackService(repository.NewFeedbackRepository())
	uploader = service.NewImageUploaderFromConfig(cfg)
}

// NewInviteScheduler exposes the invite housekeeping job for main.
func NewInviteScheduler() *service.Scheduler {
	return service.NewScheduler(repository.NewCustomerRepository())
}
