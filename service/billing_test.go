package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pixelnest/studio-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestBillingService(api billingAPI, customers CustomerStore) *BillingService {
	return &BillingService{api: api, customers: customers, returnURL: "https://portal.example.com/billing"}
}

func TestUnconfiguredAdapterRefusesEverything(t *testing.T) {
	customers := new(MockCustomerStore)
	svc := newTestBillingService(nil, customers)

	assert.False(t, svc.Configured())

	_, err := svc.EnsureCustomer(context.Background(), "cust-1")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.PortalSession(context.Background(), "cust-1")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.Catalog(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	customers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestEnsureCustomerCreatesOnce(t *testing.T) {
	api := new(MockBillingAPI)
	customers := new(MockCustomerStore)
	svc := newTestBillingService(api, customers)

	customers.On("FindByID", mock.Anything, "cust-1").
		Return(&models.Customer{Name: "Ada", Email: "ada@example.com"}, nil).Once()
	api.On("CreateCustomer", mock.Anything, "Ada", "ada@example.com").
		Return("cus_stripe_1", nil).Once()
	customers.On("SetStripeCustomerID", mock.Anything, "cust-1", "cus_stripe_1").
		Return(nil).Once()

	id, err := svc.EnsureCustomer(context.Background(), "cust-1")
	assert.NoError(t, err)
	assert.Equal(t, "cus_stripe_1", id)

	// Second call sees the stored link and never talks to the provider.
	customers.On("FindByID", mock.Anything, "cust-1").
		Return(&models.Customer{Name: "Ada", StripeCustomerID: "cus_stripe_1"}, nil).Once()

	id, err = svc.EnsureCustomer(context.Background(), "cust-1")
	assert.NoError(t, err)
	assert.Equal(t, "cus_stripe_1", id)

	api.AssertNumberOfCalls(t, "CreateCustomer", 1)
}

// Once the provider customer exists, a failed local link must not fail
// the call: erroring out would push the caller into a retry that creates
// a duplicate customer on the provider side.
func TestEnsureCustomerServesIDWhenLinkFails(t *testing.T) {
	api := new(MockBillingAPI)
	customers := new(MockCustomerStore)
	svc := newTestBillingService(api, customers)

	customers.On("FindByID", mock.Anything, "cust-1").
		Return(&models.Customer{Name: "Ada", Email: "ada@example.com"}, nil)
	api.On("CreateCustomer", mock.Anything, "Ada", "ada@example.com").
		Return("cus_stripe_1", nil)
	customers.On("SetStripeCustomerID", mock.Anything, "cust-1", "cus_stripe_1").
		Return(errors.New("connection reset"))

	id, err := svc.EnsureCustomer(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Equal(t, "cus_stripe_1", id)
}

func TestEnsureCustomerUnknownCustomer(t *testing.T) {
	api := new(MockBillingAPI)
	customers := new(MockCustomerStore)
	svc := newTestBillingService(api, customers)

	customers.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.EnsureCustomer(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrCustomerNotFound)
	api.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestPortalSessionEnsuresFirst(t *testing.T) {
	api := new(MockBillingAPI)
	customers := new(MockCustomerStore)
	svc := newTestBillingService(api, customers)

	customers.On("FindByID", mock.Anything, "cust-1").
		Return(&models.Customer{Name: "Ada", StripeCustomerID: "cus_stripe_1"}, nil)
	api.On("CreatePortalSession", mock.Anything, "cus_stripe_1", "https://portal.example.com/billing").
		Return("https://billing.stripe.com/session/xyz", nil)

	url, err := svc.PortalSession(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Equal(t, "https://billing.stripe.com/session/xyz", url)
}

func TestCatalogConvertsMinorUnits(t *testing.T) {
	api := new(MockBillingAPI)
	svc := newTestBillingService(api, new(MockCustomerStore))

	api.On("ListActiveProducts", mock.Anything).Return(map[string]string{
		"prod_hosting": "Managed Hosting",
	}, nil)
	api.On("ListActivePrices", mock.Anything).Return([]providerPrice{
		{ID: "price_1", ProductID: "prod_hosting", Amount: 4999, Currency: "usd", Interval: "month", Recurring: true},
		{ID: "price_2", ProductID: "prod_hosting", Amount: 100000, Currency: "usd", Recurring: false},
	}, nil)

	offerings, err := svc.Catalog(context.Background())

	assert.NoError(t, err)
	// Non-recurring prices are excluded from the catalog.
	assert.Len(t, offerings, 1)
	assert.Equal(t, "Managed Hosting", offerings[0].ProductName)
	assert.Equal(t, 49.99, offerings[0].Amount)
	assert.Equal(t, "month", offerings[0].Interval)
}

func TestCatalogUnknownProductName(t *testing.T) {
	api := new(MockBillingAPI)
	svc := newTestBillingService(api, new(MockCustomerStore))

	api.On("ListActiveProducts", mock.Anything).Return(map[string]string{}, nil)
	api.On("ListActivePrices", mock.Anything).Return([]providerPrice{
		{ID: "price_1", ProductID: "prod_gone", Amount: 2000, Currency: "usd", Interval: "month", Recurring: true},
	}, nil)

	offerings, err := svc.Catalog(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Unknown", offerings[0].ProductName)
}

func TestCatalogSurvivesProductListingFailure(t *testing.T) {
	api := new(MockBillingAPI)
	svc := newTestBillingService(api, new(MockCustomerStore))

	api.On("ListActiveProducts", mock.Anything).Return(nil, errors.New("rate limited"))
	api.On("ListActivePrices", mock.Anything).Return([]providerPrice{
		{ID: "price_1", ProductID: "prod_hosting", Amount: 4999, Currency: "usd", Interval: "month", Recurring: true},
	}, nil)

	offerings, err := svc.Catalog(context.Background())

	assert.NoError(t, err)
	assert.Len(t, offerings, 1)
	assert.Equal(t, "Unknown", offerings[0].ProductName)
}

func TestCatalogFailsWhenPricesFail(t *testing.T) {
	api := new(MockBillingAPI)
	svc := newTestBillingService(api, new(MockCustomerStore))

	api.On("ListActiveProducts", mock.Anything).Return(map[string]string{}, nil)
	api.On("ListActivePrices", mock.Anything).Return(nil, errors.New("provider down"))

	_, err := svc.Catalog(context.Background())

	assert.Error(t, err)
}
