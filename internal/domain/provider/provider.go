package provider

import (
	"context"
	"time"
)

// BillingProvider abstracts the payment platform calls the handlers need, so
// handler tests can run without Stripe credentials.
type BillingProvider interface {
	// CreateCustomer creates a billing customer and returns its id.
	CreateCustomer(ctx context.Context, email string, userID string) (string, error)

	// CreateCheckoutSession opens a hosted checkout session and returns its
	// id and redirect URL.
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSessionResult, error)

	// GetSubscription fetches the current state of a subscription.
	GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionDetails, error)

	// GetPaymentMethod fetches card brand/last4 for a payment method.
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*PaymentMethodDetails, error)
}

// CheckoutSessionRequest is a provider-agnostic checkout session request.
type CheckoutSessionRequest struct {
	CustomerID string
	PriceID    string
	Mode       string // "subscription" or "payment"
	SuccessURL string
	CancelURL  string
}

// CheckoutSessionResult is the provider's answer to a checkout request.
type CheckoutSessionResult struct {
	SessionID string
	URL       string
}

// SubscriptionDetails carries the subscription fields the webhook sync needs.
type SubscriptionDetails struct {
	SubscriptionID       string
	CustomerID           string
	PriceID              string
	Status               string
	CurrentPeriodStart   time.Time
	CurrentPeriodEnd     time.Time
	CancelAtPeriodEnd    bool
	DefaultPaymentMethod string
}

// PaymentMethodDetails carries card display fields.
type PaymentMethodDetails struct {
	Brand string
	Last4 string
}
