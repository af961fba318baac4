package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
	domainRepo "github.com/gauravtib/mybankchecknext-sub001/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminHandler serves the back-office: user listing/removal and CRUD over the
// fraud report database. Routes are mounted behind the admin allow-list.
type AdminHandler struct {
	logger              *zap.Logger
	customerMappingRepo domainRepo.CustomerMappingRepository
	subscriptionRepo    domainRepo.SubscriptionRepository
	fraudReportRepo     domainRepo.FraudReportRepository
}

func NewAdminHandler(
	logger *zap.Logger,
	customerMappingRepo domainRepo.CustomerMappingRepository,
	subscriptionRepo domainRepo.SubscriptionRepository,
	fraudReportRepo domainRepo.FraudReportRepository,
) *AdminHandler {
	return &AdminHandler{
		logger:              logger,
		customerMappingRepo: customerMappingRepo,
		subscriptionRepo:    subscriptionRepo,
		fraudReportRepo:     fraudReportRepo,
	}
}

type adminUser struct {
	UserID           string `json:"user_id"`
	Email            string `json:"email"`
	StripeCustomerID string `json:"stripe_customer_id"`
	PlanPriceID      string `json:"plan_price_id,omitempty"`
	SubscriptionStatus string `json:"subscription_status,omitempty"`
}

// ListUsers returns every known user with their current subscription state.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	mappings, err := h.customerMappingRepo.List(ctx)
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list users"})
	}

	users := make([]adminUser, 0, len(mappings))
	for _, m := range mappings {
		u := adminUser{
			UserID:           m.UserID.String(),
			Email:            m.Email,
			StripeCustomerID: m.StripeCustomerID,
		}
		sub, err := h.subscriptionRepo.GetCurrentForCustomer(ctx, m.StripeCustomerID)
		if err != nil {
			h.logger.Warn("Failed to load subscription for user",
				zap.String("customer_id", m.StripeCustomerID),
				zap.Error(err))
		} else if sub != nil {
			u.PlanPriceID = sub.PriceID
			u.SubscriptionStatus = string(sub.Status)
		}
		users = append(users, u)
	}

	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// DeleteUser removes a user's customer mapping.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user id"})
	}

	if err := h.customerMappingRepo.Delete(c.Request().Context(), userID); err != nil {
		h.logger.Error("Failed to delete user",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete user"})
	}

	return c.NoContent(http.StatusNoContent)
}

// ListReports returns the fraud report database.
func (h *AdminHandler) ListReports(c echo.Context) error {
	reports, err := h.fraudReportRepo.List(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list fraud reports", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list reports"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": reports})
}

type fraudReportRequest struct {
	AccountLast4  string `json:"account_last4" validate:"required,len=4,numeric"`
	RoutingNumber string `json:"routing_number" validate:"required,len=9,numeric"`
	BankName      string `json:"bank_name"`
	ReportType    string `json:"report_type" validate:"required"`
	Description   string `json:"description"`
	ReporterEmail string `json:"reporter_email" validate:"omitempty,email"`
	Status        string `json:"status" validate:"omitempty,oneof=pending verified rejected"`
}

// CreateReport adds a row to the fraud report database.
func (h *AdminHandler) CreateReport(c echo.Context) error {
	var req fraudReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	report := &model.FraudReport{
		AccountLast4:  req.AccountLast4,
		RoutingNumber: req.RoutingNumber,
		BankName:      req.BankName,
		ReportType:    req.ReportType,
		Description:   req.Description,
		ReporterEmail: req.ReporterEmail,
		Status:        model.FraudReportStatusPending,
	}
	if req.Status != "" {
		report.Status = model.FraudReportStatus(req.Status)
	}

	if err := h.fraudReportRepo.Create(c.Request().Context(), report); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create report"})
	}
	return c.JSON(http.StatusCreated, report)
}

// UpdateReport replaces a row in the fraud report database.
func (h *AdminHandler) UpdateReport(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid report id"})
	}

	var req fraudReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	report, err := h.fraudReportRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load report"})
	}
	if report == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Report not found"})
	}

	report.AccountLast4 = req.AccountLast4
	report.RoutingNumber = req.RoutingNumber
	report.BankName = req.BankName
	report.ReportType = req.ReportType
	report.Description = req.Description
	report.ReporterEmail = req.ReporterEmail
	if req.Status != "" {
		report.Status = model.FraudReportStatus(req.Status)
	}

	if err := h.fraudReportRepo.Update(ctx, report); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update report"})
	}
	return c.JSON(http.StatusOK, report)
}

// DeleteReport removes a row from the fraud report database.
func (h *AdminHandler) DeleteReport(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid report id"})
	}

	if err := h.fraudReportRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete report"})
	}
	return c.NoContent(http.StatusNoContent)
}
