package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedItemsPrefersItemsArray(t *testing.T) {
	sub := RecurringSubscription{
		Items: []SubscriptionItem{
			{PriceID: "price_1", Amount: 49.99, Interval: "month"},
			{PriceID: "price_2", Amount: 20, Interval: "month"},
		},
		// Stale flattened fields must lose to the items array.
		PriceID: "price_old",
		Amount:  10,
	}

	items := sub.NormalizedItems()

	assert.Len(t, items, 2)
	assert.Equal(t, "price_1", items[0].PriceID)
}

func TestNormalizedItemsFoldsLegacyShape(t *testing.T) {
	sub := RecurringSubscription{
		PriceID:     "price_legacy",
		ProductID:   "prod_legacy",
		ProductName: "Hosting",
		Amount:      49.99,
		Interval:    "month",
	}

	items := sub.NormalizedItems()

	assert.Len(t, items, 1)
	assert.Equal(t, "price_legacy", items[0].PriceID)
	assert.Equal(t, "Hosting", items[0].ProductName)
	assert.Equal(t, 49.99, items[0].Amount)
}

func TestNormalizedItemsEmptyRecord(t *testing.T) {
	sub := RecurringSubscription{}

	assert.Empty(t, sub.NormalizedItems())
	assert.Equal(t, float64(0), sub.MonthlyTotal())
}

func TestMonthlyTotalSumsItems(t *testing.T) {
	sub := RecurringSubscription{
		Items: []SubscriptionItem{
			{Amount: 49.99},
			{Amount: 20},
		},
	}

	assert.InDelta(t, 69.99, sub.MonthlyTotal(), 0.0001)
}

func TestMonthlyTotalLegacyShape(t *testing.T) {
	sub := RecurringSubscription{Amount: 35}

	assert.Equal(t, float64(35), sub.MonthlyTotal())
}
