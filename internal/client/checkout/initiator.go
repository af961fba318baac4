// Package checkout starts the hosted billing flow: it asks the backend for a
// checkout session and hands back the redirect target. One shot, no retries;
// the user re-triggers manually on failure.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domainErrors "github.com/gauravtib/mybankchecknext-sub001/internal/domain/errors"
	"github.com/gauravtib/mybankchecknext-sub001/internal/plan"
	"go.uber.org/zap"
)

// Initiator creates checkout sessions through the backend endpoint.
type Initiator struct {
	httpClient *http.Client
	endpoint   string
	successURL string
	cancelURL  string
	logger     *zap.Logger
}

type Config struct {
	// Endpoint is the checkout-session creation URL.
	Endpoint string
	// SuccessURL must carry the {CHECKOUT_SESSION_ID} placeholder so the
	// success redirect can be recognized at startup.
	SuccessURL string
	CancelURL  string
	Logger     *zap.Logger
}

func New(cfg Config) *Initiator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Initiator{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   cfg.Endpoint,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		logger:     logger,
	}
}

// Redirect is where the payment platform takes over.
type Redirect struct {
	SessionID string
	URL       string
}

type createRequest struct {
	PriceID    string `json:"price_id"`
	Mode       string `json:"mode"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type createResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	Error     string `json:"error"`
}

// Start resolves the plan and requests a checkout session. Plan problems
// fail before any network call.
func (i *Initiator) Start(ctx context.Context, accessToken, planID string) (*Redirect, error) {
	p, ok := plan.ByID(planID)
	if !ok {
		return nil, domainErrors.ErrInvalidPlanConfiguration
	}
	if p.BillingPriceID == "" {
		return nil, domainErrors.ErrMissingPriceID
	}

	payload, err := json.Marshal(createRequest{
		PriceID:    p.BillingPriceID,
		Mode:       string(p.BillingMode),
		SuccessURL: i.successURL,
		CancelURL:  i.cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkout response: %w", err)
	}

	var decoded createResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Surface whatever the server said, verbatim.
		if decoded.Error != "" {
			return nil, fmt.Errorf("%s", decoded.Error)
		}
		return nil, fmt.Errorf("checkout endpoint returned status %d", resp.StatusCode)
	}

	i.logger.Info("Checkout session created",
		zap.String("plan_id", planID),
		zap.String("session_id", decoded.SessionID),
	)

	return &Redirect{SessionID: decoded.SessionID, URL: decoded.URL}, nil
}
