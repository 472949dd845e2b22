package service

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// stripeClient adapts the Stripe SDK to the billingAPI surface.
type stripeClient struct {
	api *client.API
}

func newStripeClient(secretKey string) *stripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeClient{api: api}
}

func (s *stripeClient) CreateCustomer(ctx context.Context, name, email string) (string, error) {
	params := &stripe.CustomerParams{
		Name:  stripe.String(name),
		Email: stripe.String(email),
	}
	params.Context = ctx

	customer, err := s.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create customer: %w", err)
	}

	return customer.ID, nil
}

func (s *stripeClient) CreatePortalSession(ctx context.Context, providerCustomerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(providerCustomerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	session, err := s.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe portal session: %w", err)
	}

	return session.URL, nil
}

func (s *stripeClient) ListActiveProducts(ctx context.Context) (map[string]string, error) {
	params := &stripe.ProductListParams{Active: stripe.Bool(true)}
	params.Context = ctx

	names := map[string]string{}
	iter := s.api.Products.List(params)
	for iter.Next() {
		product := iter.Product()
		names[product.ID] = product.Name
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe list products: %w", err)
	}

	return names, nil
}

func (s *stripeClient) ListActivePrices(ctx context.Context) ([]providerPrice, error) {
	params := &stripe.PriceListParams{Active: stripe.Bool(true)}
	params.Context = ctx

	var prices []providerPrice
	iter := s.api.Prices.List(params)
	for iter.Next() {
		price := iter.Price()

		p := providerPrice{
			ID:        price.ID,
			Amount:    price.UnitAmount,
			Currency:  string(price.Currency),
			Recurring: price.Type == stripe.PriceTypeRecurring,
		}
		if price.Product != nil {
			p.ProductID = price.Product.ID
		}
		if price.Recurring != nil {
			p.Interval = string(price.Recurring.Interval)
		}

		prices = append(prices, p)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe list prices: %w", err)
	}

	return prices, nil
}
