package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	domainErrors "github.com/gauravtib/mybankchecknext-sub001/internal/domain/errors"
	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/provider"
	domainRepo "github.com/gauravtib/mybankchecknext-sub001/internal/domain/repository"
	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

// WebhookHandler mirrors Stripe billing events into the database. Signature
// verification is the only authentication on this endpoint. Database write
// failures are logged but still answered 200 so Stripe does not hammer the
// endpoint with redeliveries.
type WebhookHandler struct {
	logger              *zap.Logger
	webhookSecret       string
	billing             provider.BillingProvider
	subscriptionRepo    domainRepo.SubscriptionRepository
	orderRepo           domainRepo.OrderRepository
	customerMappingRepo domainRepo.CustomerMappingRepository
}

func NewWebhookHandler(
	logger *zap.Logger,
	webhookSecret string,
	billing provider.BillingProvider,
	subscriptionRepo domainRepo.SubscriptionRepository,
	orderRepo domainRepo.OrderRepository,
	customerMappingRepo domainRepo.CustomerMappingRepository,
) *WebhookHandler {
	return &WebhookHandler{
		logger:              logger,
		webhookSecret:       webhookSecret,
		billing:             billing,
		subscriptionRepo:    subscriptionRepo,
		orderRepo:           orderRepo,
		customerMappingRepo: customerMappingRepo,
	}
}

func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading webhook body", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error reading request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(
		body,
		sig,
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		h.logger.Error("Webhook signature verification failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Webhook signature verification failed: " + err.Error(),
		})
	}

	eventTime := time.Unix(event.Created, 0).UTC()

	h.logger.Info("Webhook event received",
		zap.String("type", string(event.Type)),
		zap.String("id", event.ID),
		zap.Time("created", eventTime),
	)

	ctx := c.Request().Context()

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.logger.Error("Error parsing checkout session", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook"})
		}
		h.handleCheckoutCompleted(ctx, &session, eventTime)

	case stripe.EventTypeCustomerSubscriptionCreated, stripe.EventTypeCustomerSubscriptionUpdated:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			h.logger.Error("Error parsing subscription", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook"})
		}
		h.handleSubscriptionChanged(ctx, &sub, eventTime)

	case stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			h.logger.Error("Error parsing subscription", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook"})
		}
		h.handleSubscriptionDeleted(ctx, &sub)

	default:
		h.logger.Debug("Ignoring unhandled event type",
			zap.String("type", string(event.Type)))
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

func (h *WebhookHandler) handleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession, eventTime time.Time) {
	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}

	h.logger.Info("Checkout session completed",
		zap.String("session_id", session.ID),
		zap.String("customer_id", customerID),
		zap.String("mode", string(session.Mode)),
		zap.String("payment_status", string(session.PaymentStatus)),
	)

	if customerID != "" {
		mapping, err := h.customerMappingRepo.GetByCustomerID(ctx, customerID)
		if err != nil {
			h.logger.Error("Failed to resolve customer mapping",
				zap.String("customer_id", customerID),
				zap.Error(err))
		} else if mapping == nil {
			h.logger.Warn("Checkout completed for unmapped customer",
				zap.String("customer_id", customerID))
		}
	}

	if session.Mode == stripe.CheckoutSessionModeSubscription && session.Subscription != nil {
		details, err := h.billing.GetSubscription(ctx, session.Subscription.ID)
		if err != nil {
			h.logger.Error("Failed to fetch subscription after checkout",
				zap.String("subscription_id", session.Subscription.ID),
				zap.Error(err))
		} else {
			h.upsertSubscription(ctx, details, eventTime)
		}
	}

	order := &model.Order{
		CheckoutSessionID: session.ID,
		CustomerID:        customerID,
		AmountSubtotal:    session.AmountSubtotal,
		AmountTotal:       session.AmountTotal,
		Currency:          string(session.Currency),
		PaymentStatus:     string(session.PaymentStatus),
		Status:            string(session.Status),
	}
	if session.PaymentIntent != nil {
		order.PaymentIntentID = session.PaymentIntent.ID
	}
	if err := h.orderRepo.Insert(ctx, order); err != nil {
		h.logger.Error("Failed to insert order",
			zap.String("checkout_session_id", session.ID),
			zap.Error(err))
	}
}

func (h *WebhookHandler) handleSubscriptionChanged(ctx context.Context, sub *stripe.Subscription, eventTime time.Time) {
	details := &provider.SubscriptionDetails{
		SubscriptionID:     sub.ID,
		Status:             string(sub.Status),
		CurrentPeriodStart: time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		details.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		details.PriceID = sub.Items.Data[0].Price.ID
	}
	if sub.DefaultPaymentMethod != nil {
		details.DefaultPaymentMethod = sub.DefaultPaymentMethod.ID
	}

	h.logger.Info("Subscription created/updated",
		zap.String("subscription_id", details.SubscriptionID),
		zap.String("customer_id", details.CustomerID),
		zap.String("status", details.Status),
		zap.Time("period_end", details.CurrentPeriodEnd),
	)

	h.upsertSubscription(ctx, details, eventTime)
}

func (h *WebhookHandler) upsertSubscription(ctx context.Context, details *provider.SubscriptionDetails, eventTime time.Time) {
	row := &model.Subscription{
		CustomerID:         details.CustomerID,
		SubscriptionID:     details.SubscriptionID,
		PriceID:            details.PriceID,
		CurrentPeriodStart: details.CurrentPeriodStart,
		CurrentPeriodEnd:   details.CurrentPeriodEnd,
		CancelAtPeriodEnd:  details.CancelAtPeriodEnd,
		Status:             model.SubscriptionStatus(details.Status),
		LastEventAt:        eventTime,
	}

	// Card details are display-only; failing to fetch them must not block the
	// subscription sync.
	if details.DefaultPaymentMethod != "" {
		pm, err := h.billing.GetPaymentMethod(ctx, details.DefaultPaymentMethod)
		if err != nil {
			h.logger.Warn("Failed to fetch payment method details",
				zap.String("payment_method_id", details.DefaultPaymentMethod),
				zap.Error(err))
		} else {
			row.PaymentMethodBrand = pm.Brand
			row.PaymentMethodLast4 = pm.Last4
		}
	}

	if err := h.subscriptionRepo.Upsert(ctx, row); err != nil {
		if errors.Is(err, domainErrors.ErrStaleEvent) {
			h.logger.Warn("Dropped stale subscription event",
				zap.String("subscription_id", row.SubscriptionID),
				zap.Time("event_at", eventTime))
			return
		}
		h.logger.Error("Failed to upsert subscription",
			zap.String("subscription_id", row.SubscriptionID),
			zap.Error(err))
	}
}

func (h *WebhookHandler) handleSubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) {
	h.logger.Info("Subscription deleted",
		zap.String("subscription_id", sub.ID),
	)

	if err := h.subscriptionRepo.MarkCanceled(ctx, sub.ID); err != nil {
		if errors.Is(err, domainErrors.ErrSubscriptionNotFound) {
			h.logger.Warn("Delete event for unknown subscription",
				zap.String("subscription_id", sub.ID))
			return
		}
		h.logger.Error("Failed to mark subscription canceled",
			zap.String("subscription_id", sub.ID),
			zap.Error(err))
	}
}
