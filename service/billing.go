package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pixelnest/studio-server/config"
	"github.com/pixelnest/studio-server/models"
	"github.com/pixelnest/studio-server/utils"

	"github.com/shopspring/decimal"
)

// ErrNotConfigured signals that an optional external provider has no
// credentials. Callers translate it to a 503, never a fault.
var ErrNotConfigured = errors.New("provider not configured")

// providerPrice is one price as reported by the billing provider, with the
// amount still in minor units.
type providerPrice struct {
	ID        string
	ProductID string
	Amount    int64
	Currency  string
	Interval  string
	Recurring bool
}

// billingAPI is the slice of the provider the adapter needs. The concrete
// Stripe client lives in stripe.go; tests substitute a mock.
type billingAPI interface {
	CreateCustomer(ctx context.Context, name, email string) (string, error)
	CreatePortalSession(ctx context.Context, providerCustomerID, returnURL string) (string, error)
	ListActiveProducts(ctx context.Context) (map[string]string, error)
	ListActivePrices(ctx context.Context) ([]providerPrice, error)
}

// providerTimeout bounds each billing-provider call so a slow third party
// cannot stall a request indefinitely.
const providerTimeout = 5 * time.Second

// BillingService is a thin pass-through adapter to the billing provider.
// With no credentials configured every operation returns ErrNotConfigured.
type BillingService struct {
	api       billingAPI
	customers CustomerStore
	returnURL string
}

// NewBillingService wires the adapter; a missing Stripe key leaves it in
// the unconfigured state.
func NewBillingService(cfg *config.Config, customers CustomerStore) *BillingService {
	svc := &BillingService{customers: customers, returnURL: cfg.StripePortalReturnURL}
	if cfg.StripeSecretKey != "" {
		svc.api = newStripeClient(cfg.StripeSecretKey)
	} else {
		utils.Logger.Info().Msg("stripe key absent, billing adapter disabled")
	}
	return svc
}

// Configured reports whether the provider credentials are present.
func (s *BillingService) Configured() bool {
	return s.api != nil
}

// EnsureCustomer guarantees a provider-side customer exists for the given
// customer and returns its external id. Idempotent: an already-linked
// customer returns the stored id without creating a duplicate. A failure
// to persist the link after the provider call is logged, not returned.
func (s *BillingService) EnsureCustomer(ctx context.Context, customerID string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return "", ErrCustomerNotFound
	}
	if customer.StripeCustomerID != "" {
		return customer.StripeCustomerID, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	externalID, err := s.api.CreateCustomer(callCtx, customer.Name, customer.Email)
	if err != nil {
		return "", fmt.Errorf("create provider customer: %w", err)
	}

	// The provider customer already exists at this point; failing the
	// request over a broken local link would only waste it. Serve the id
	// and log the miss, same leniency as lead conversion's cleanup step.
	if err := s.customers.SetStripeCustomerID(ctx, customerID, externalID); err != nil {
		utils.Logger.Error().Err(err).
			Str("customerId", customerID).
			Str("stripeCustomerId", externalID).
			Msg("provider customer created but not linked")
		return externalID, nil
	}

	utils.Logger.Info().
		Str("customerId", customerID).
		Str("stripeCustomerId", externalID).
		Msg("provider customer linked")

	return externalID, nil
}

// PortalSession returns a billing-portal URL for the customer, creating
// the provider customer first if needed.
func (s *BillingService) PortalSession(ctx context.Context, customerID string) (string, error) {
	externalID, err := s.EnsureCustomer(ctx, customerID)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	url, err := s.api.CreatePortalSession(callCtx, externalID, s.returnURL)
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}

	return url, nil
}

// Catalog lists the provider's active recurring offerings, each enriched
// with its product's display name and a major-unit amount. A product
// lookup miss degrades that row's name to "Unknown".
func (s *BillingService) Catalog(ctx context.Context) ([]models.CatalogOffering, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	productCtx, cancelProducts := context.WithTimeout(ctx, providerTimeout)
	defer cancelProducts()

	productNames, err := s.api.ListActiveProducts(productCtx)
	if err != nil {
		// Names are cosmetic; the catalog is still usable without them.
		utils.Logger.Warn().Err(err).Msg("product listing failed, catalog names degraded")
		productNames = map[string]string{}
	}

	priceCtx, cancelPrices := context.WithTimeout(ctx, providerTimeout)
	defer cancelPrices()

	prices, err := s.api.ListActivePrices(priceCtx)
	if err != nil {
		return nil, fmt.Errorf("list provider prices: %w", err)
	}

	offerings := make([]models.CatalogOffering, 0, len(prices))
	for _, price := range prices {
		if !price.Recurring {
			continue
		}

		name := productNames[price.ProductID]
		if name == "" {
			name = unknownName
		}

		amount := decimal.NewFromInt(price.Amount).
			Div(decimal.NewFromInt(100)).
			InexactFloat64()

		offerings = append(offerings, models.CatalogOffering{
			PriceID:     price.ID,
			ProductID:   price.ProductID,
			ProductName: name,
			Amount:      amount,
			Currency:    price.Currency,
			Interval:    price.Interval,
		})
	}

	return offerings, nil
}
