package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pixelnest/studio-server/config"
	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/utils"
)

// Sentinel errors for the invite and portal-credential flows. Handlers map
// these onto the HTTP taxonomy; the Expired/NotFound split is deliberate
// and drives distinct user messaging.
var (
	ErrInviteNotFound   = errors.New("no invite matches that token")
	ErrExpiredInvite    = errors.New("invite token has expired")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrNoAccount        = errors.New("no account with that email")
	ErrPasswordNotSet   = errors.New("portal password not set up yet")
	ErrWrongPassword    = errors.New("incorrect password")
)

// InvitePreview is what an unauthenticated visitor may see about the
// customer behind a valid invite token.
type InvitePreview struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// InviteMailer delivers the invite link to the customer.
type InviteMailer interface {
	SendInvite(to, name, link string) error
}

// InviteService owns the invite-token lifecycle and portal credentials.
type InviteService struct {
	customers CustomerStore
	mail      InviteMailer
	ttl       time.Duration
	portalURL string
	now       func() time.Time
}

// NewInviteService wires the invite service from config.
func NewInviteService(customers CustomerStore, mail InviteMailer, cfg *config.Config) *InviteService {
	return &InviteService{
		customers: customers,
		mail:      mail,
		ttl:       time.Duration(cfg.InviteTTLDays) * 24 * time.Hour,
		portalURL: cfg.PortalBaseURL,
		now:       time.Now,
	}
}

// Issue generates a fresh invite token for the customer, replacing any
// prior token, and emails the claim link. Returns the token for the caller
// that needs to hand the link over out of band.
func (s *InviteService) Issue(ctx context.Context, customerID string) (string, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return "", ErrCustomerNotFound
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return "", err
	}

	expiry := s.now().Add(s.ttl)
	if err := s.customers.SetInvite(ctx, customerID, token, expiry); err != nil {
		return "", fmt.Errorf("store invite token: %w", err)
	}

	utils.Logger.Info().
		Str("customerId", customerID).
		Time("expiry", expiry).
		Msg("invite issued")

	// Mail delivery is best-effort; a broken SMTP relay must not undo the
	// issued token.
	if s.mail != nil {
		link := fmt.Sprintf("%s/portal/invite?token=%s", s.portalURL, token)
		go func() {
			if err := s.mail.SendInvite(customer.Email, customer.Name, link); err != nil {
				utils.Logger.Error().Err(err).Str("customerId", customerID).Msg("invite email failed")
			}
		}()
	}

	return token, nil
}

// Validate resolves a token to the customer it was issued for. The three
// outcomes are distinguished exactly: valid, expired (token matches a
// record but expiry has passed), and not found (no record has the token).
func (s *InviteService) Validate(ctx context.Context, token string) (*InvitePreview, error) {
	if token == "" {
		return nil, ErrInviteNotFound
	}

	customer, err := s.customers.FindByInviteToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("look up invite token: %w", err)
	}
	if customer == nil {
		return nil, ErrInviteNotFound
	}

	if customer.InviteTokenExpiry == nil || !customer.InviteTokenExpiry.After(s.now()) {
		return nil, ErrExpiredInvite
	}

	return &InvitePreview{Name: customer.Name, Email: customer.Email}, nil
}

// Consume redeems a live token: the password is hashed and stored, the
// token and expiry are cleared, and the customer becomes signed_up, all in
// one document update. A second attempt with the same token fails with
// ErrInviteNotFound because the token is gone.
func (s *InviteService) Consume(ctx context.Context, token, password string) (string, error) {
	if len(password) < utils.MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}

	customer, err := s.customers.ConsumeInvite(ctx, token, s.now(), hash)
	if err != nil {
		return "", fmt.Errorf("consume invite token: %w", err)
	}
	if customer == nil {
		return "", ErrInviteNotFound
	}

	utils.Logger.Info().
		Str("customerId", customer.ID.Hex()).
		Msg("invite consumed, portal password set")

	return customer.ID.Hex(), nil
}

// Login checks portal credentials by email. The error distinguishes
// no-account, not-set-up, and wrong-password for user messaging.
func (s *InviteService) Login(ctx context.Context, email, password string) (*models.Customer, error) {
	customer, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up customer by email: %w", err)
	}
	if customer == nil {
		return nil, ErrNoAccount
	}
	if customer.PasswordHash == "" {
		return nil, ErrPasswordNotSet
	}
	if !utils.VerifyPassword(password, customer.PasswordHash) {
		return nil, ErrWrongPassword
	}

	return customer, nil
}

// ResetPassword changes an already-established portal password after
// verifying the current one.
func (s *InviteService) ResetPassword(ctx context.Context, customerID, currentPassword, newPassword string) error {
	if len(newPassword) < utils.MinPasswordLength {
		return ErrPasswordTooShort
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return ErrCustomerNotFound
	}
	if customer.PasswordHash == "" {
		return ErrPasswordNotSet
	}
	if !utils.VerifyPassword(currentPassword, customer.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.customers.SetPassword(ctx, customerID, hash); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}

	utils.Logger.Info().Str("customerId", customerID).Msg("portal password reset")
	return nil
}
