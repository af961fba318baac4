// Package plan holds the static catalog mapping subscription tiers to Stripe
// price identifiers and display metadata.
package plan

import "github.com/shopspring/decimal"

// BillingMode matches the Stripe checkout session mode for a plan.
type BillingMode string

const (
	BillingModeSubscription BillingMode = "subscription"
	BillingModePayment      BillingMode = "payment"
)

// UnlimitedChecks marks a plan without a monthly check quota.
const UnlimitedChecks = -1

// Plan is one immutable catalog entry.
type Plan struct {
	ID             string
	BillingPriceID string
	Name           string
	Description    string
	Price          decimal.Decimal
	BillingPeriod  string
	QuotaLabel     string
	BillingMode    BillingMode
	ChecksLimit    int
}

const (
	FreeID   = "free"
	GrowthID = "growth"
	ProID    = "pro"
)

var catalog = []Plan{
	{
		ID:            FreeID,
		Name:          "Free",
		Description:   "Get started with basic fraud checks",
		Price:         decimal.Zero,
		BillingPeriod: "month",
		QuotaLabel:    "10 checks/month",
		BillingMode:   BillingModeSubscription,
		ChecksLimit:   10,
	},
	{
		ID:             GrowthID,
		BillingPriceID: "price_1QwGrowthMoBankCheck01",
		Name:           "Growth",
		Description:    "For growing teams that verify accounts daily",
		Price:          decimal.NewFromInt(49),
		BillingPeriod:  "month",
		QuotaLabel:     "500 checks/month",
		BillingMode:    BillingModeSubscription,
		ChecksLimit:    500,
	},
	{
		ID:             ProID,
		BillingPriceID: "price_1QwProMyBankCheck0001",
		Name:           "Pro",
		Description:    "Unlimited checks and priority support",
		Price:          decimal.NewFromInt(149),
		BillingPeriod:  "month",
		QuotaLabel:     "Unlimited checks",
		BillingMode:    BillingModeSubscription,
		ChecksLimit:    UnlimitedChecks,
	},
}

// All returns every catalog entry in display order.
func All() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// Free returns the free tier entry.
func Free() Plan {
	p, _ := ByID(FreeID)
	return p
}

// ByID looks up a plan by its catalog id. Lookup is exact match only.
func ByID(id string) (Plan, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// ByPriceID looks up a plan by its Stripe price id. Lookup is exact match
// only; substring matching against price ids is not a contract.
func ByPriceID(priceID string) (Plan, bool) {
	if priceID == "" {
		return Plan{}, false
	}
	for _, p := range catalog {
		if p.BillingPriceID == priceID {
			return p, true
		}
	}
	return Plan{}, false
}

// ForPriceID resolves a price id to a plan, defaulting to the free tier for
// unknown price ids. It never fails.
func ForPriceID(priceID string) Plan {
	if p, ok := ByPriceID(priceID); ok {
		return p
	}
	return Free()
}
