package http

import (
	"net/http"

	domainRepo "github.com/gauravtib/mybankchecknext-sub001/internal/domain/repository"
	"github.com/gauravtib/mybankchecknext-sub001/internal/middleware/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	logger              *zap.Logger
	subscriptionRepo    domainRepo.SubscriptionRepository
	customerMappingRepo domainRepo.CustomerMappingRepository
}

func NewSubscriptionHandler(
	logger *zap.Logger,
	subscriptionRepo domainRepo.SubscriptionRepository,
	customerMappingRepo domainRepo.CustomerMappingRepository,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		logger:              logger,
		subscriptionRepo:    subscriptionRepo,
		customerMappingRepo: customerMappingRepo,
	}
}

// GetCurrentSubscription returns the caller's entitled subscription row, or
// {"subscription": null} when there is none. A user without a billing
// customer simply has no subscription; that is not an error.
func (h *SubscriptionHandler) GetCurrentSubscription(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	mapping, err := h.customerMappingRepo.GetByUserID(ctx, user.UserID)
	if err != nil {
		h.logger.Error("Failed to look up customer mapping",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve subscription information",
		})
	}
	if mapping == nil {
		return c.JSON(http.StatusOK, echo.Map{"subscription": nil})
	}

	sub, err := h.subscriptionRepo.GetCurrentForCustomer(ctx, mapping.StripeCustomerID)
	if err != nil {
		h.logger.Error("Failed to get current subscription",
			zap.String("customer_id", mapping.StripeCustomerID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve subscription information",
		})
	}
	if sub == nil {
		return c.JSON(http.StatusOK, echo.Map{"subscription": nil})
	}

	return c.JSON(http.StatusOK, echo.Map{"subscription": sub})
}
