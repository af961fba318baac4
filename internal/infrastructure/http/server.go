package http

import (
	"context"
	"fmt"
	"net/http"

	handlers "github.com/gauravtib/mybankchecknext-sub001/internal/adapter/handler/http"
	"github.com/gauravtib/mybankchecknext-sub001/internal/config"
	"github.com/gauravtib/mybankchecknext-sub001/internal/infrastructure/database"
	stripeProvider "github.com/gauravtib/mybankchecknext-sub001/internal/infrastructure/provider/stripe"
	"github.com/gauravtib/mybankchecknext-sub001/internal/middleware/auth"
	"github.com/gauravtib/mybankchecknext-sub001/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	// Initialize Stripe
	stripe.Key = cfg.Service.StripeSecretKey

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: logger,
		echo:   e,
		repos:  repos,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	billing := stripeProvider.New(s.logger)

	checkoutHandler := handlers.NewCheckoutHandler(s.logger, billing, s.repos.CustomerMapping)
	subscriptionHandler := handlers.NewSubscriptionHandler(s.logger, s.repos.Subscription, s.repos.CustomerMapping)
	webhookHandler := handlers.NewWebhookHandler(s.logger, s.config.Service.StripeWebhookSecret,
		billing, s.repos.Subscription, s.repos.Order, s.repos.CustomerMapping)
	adminHandler := handlers.NewAdminHandler(s.logger, s.repos.CustomerMapping, s.repos.Subscription, s.repos.FraudReport)

	jwtConfig := auth.Config{
		Secret: s.config.Service.Supabase.JWTSecret,
		Logger: s.logger,
	}

	v1 := s.echo.Group("/api/v1")

	// Protected routes (require a Supabase access token)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))
	protected.POST("/checkout/session", checkoutHandler.CreateCheckoutSession)
	protected.GET("/subscriptions/current", subscriptionHandler.GetCurrentSubscription)

	// Admin back-office (allow-listed emails only)
	admin := protected.Group("/admin", auth.AdminOnly(s.config.Service.AdminEmails, s.logger))
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/data", adminHandler.ListReports)
	admin.POST("/data", adminHandler.CreateReport)
	admin.PUT("/data/:id", adminHandler.UpdateReport)
	admin.DELETE("/data/:id", adminHandler.DeleteReport)

	// Webhook route (signature-authenticated, outside API versioning)
	s.echo.POST("/webhook", webhookHandler.HandleWebhook)
}
