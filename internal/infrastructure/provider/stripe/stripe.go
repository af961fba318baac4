// Package stripe implements the billing provider against the Stripe API.
package stripe

import (
	"context"
	"fmt"
	"time"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/provider"
	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
	"github.com/stripe/stripe-go/v79/paymentmethod"
	"github.com/stripe/stripe-go/v79/subscription"
	"go.uber.org/zap"
)

type Provider struct {
	logger *zap.Logger
}

// New creates the Stripe billing provider. The package-level stripe.Key must
// already be set by the HTTP server bootstrap.
func New(logger *zap.Logger) *Provider {
	return &Provider{logger: logger}
}

var _ provider.BillingProvider = (*Provider)(nil)

func (p *Provider) CreateCustomer(ctx context.Context, email string, userID string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	c, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	p.logger.Info("Stripe customer created",
		zap.String("customer_id", c.ID),
		zap.String("user_id", userID),
	)
	return c.ID, nil
}

func (p *Provider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*provider.CheckoutSessionResult, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(req.CustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(req.Mode),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx

	s, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &provider.CheckoutSessionResult{
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}

func (p *Provider) GetSubscription(ctx context.Context, subscriptionID string) (*provider.SubscriptionDetails, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	s, err := subscription.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription: %w", err)
	}

	details := &provider.SubscriptionDetails{
		SubscriptionID:     s.ID,
		Status:             string(s.Status),
		CurrentPeriodStart: time.Unix(s.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(s.CurrentPeriodEnd, 0).UTC(),
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
	}
	if s.Customer != nil {
		details.CustomerID = s.Customer.ID
	}
	if len(s.Items.Data) > 0 && s.Items.Data[0].Price != nil {
		details.PriceID = s.Items.Data[0].Price.ID
	}
	if s.DefaultPaymentMethod != nil {
		details.DefaultPaymentMethod = s.DefaultPaymentMethod.ID
	}
	return details, nil
}

func (p *Provider) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*provider.PaymentMethodDetails, error) {
	params := &stripe.PaymentMethodParams{}
	params.Context = ctx

	pm, err := paymentmethod.Get(paymentMethodID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment method: %w", err)
	}

	details := &provider.PaymentMethodDetails{}
	if pm.Card != nil {
		details.Brand = string(pm.Card.Brand)
		details.Last4 = pm.Card.Last4
	}
	return details, nil
}
