package http

import (
	"context"
	"net/http"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/provider"
	domainRepo "github.com/gauravtib/mybankchecknext-sub001/internal/domain/repository"
	"github.com/gauravtib/mybankchecknext-sub001/internal/middleware/auth"
	"github.com/gauravtib/mybankchecknext-sub001/internal/plan"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	logger              *zap.Logger
	billing             provider.BillingProvider
	customerMappingRepo domainRepo.CustomerMappingRepository
}

func NewCheckoutHandler(
	logger *zap.Logger,
	billing provider.BillingProvider,
	customerMappingRepo domainRepo.CustomerMappingRepository,
) *CheckoutHandler {
	return &CheckoutHandler{
		logger:              logger,
		billing:             billing,
		customerMappingRepo: customerMappingRepo,
	}
}

type CreateCheckoutRequest struct {
	PriceID    string `json:"price_id" validate:"required"`
	Mode       string `json:"mode" validate:"required,oneof=subscription payment"`
	SuccessURL string `json:"success_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
}

type CreateCheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CreateCheckoutSession opens a Stripe checkout session for the caller.
func (h *CheckoutHandler) CreateCheckoutSession(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req CreateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}

	// Price ids must match a catalog entry exactly.
	if _, ok := plan.ByPriceID(req.PriceID); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Unknown price id",
		})
	}

	ctx := c.Request().Context()

	customerID, err := h.getOrCreateCustomer(ctx, user)
	if err != nil {
		h.logger.Error("Failed to resolve billing customer",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to initialize billing customer",
		})
	}

	h.logger.Info("Creating checkout session",
		zap.String("user_id", user.UserID.String()),
		zap.String("customer_id", customerID),
		zap.String("price_id", req.PriceID),
		zap.String("mode", req.Mode),
	)

	result, err := h.billing.CreateCheckoutSession(ctx, &provider.CheckoutSessionRequest{
		CustomerID: customerID,
		PriceID:    req.PriceID,
		Mode:       req.Mode,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		h.logger.Error("Failed to create checkout session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, CreateCheckoutResponse{
		SessionID: result.SessionID,
		URL:       result.URL,
	})
}

func (h *CheckoutHandler) getOrCreateCustomer(ctx context.Context, user *auth.AuthUser) (string, error) {
	mapping, err := h.customerMappingRepo.GetByUserID(ctx, user.UserID)
	if err != nil {
		return "", err
	}
	if mapping != nil {
		return mapping.StripeCustomerID, nil
	}

	customerID, err := h.billing.CreateCustomer(ctx, user.Email, user.UserID.String())
	if err != nil {
		return "", err
	}

	if err := h.customerMappingRepo.Save(ctx, &model.CustomerMapping{
		StripeCustomerID: customerID,
		UserID:           user.UserID,
		Email:            user.Email,
	}); err != nil {
		return "", err
	}
	return customerID, nil
}
