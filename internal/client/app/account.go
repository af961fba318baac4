package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gauravtib/mybankchecknext-sub001/internal/client/session"
	"github.com/gauravtib/mybankchecknext-sub001/internal/plan"
	"go.uber.org/zap"
)

// AccountSnapshot is the dashboard's view of the signed-in account. ChecksLimit
// of -1 means unlimited.
type AccountSnapshot struct {
	Name        string
	Email       string
	Company     string
	JobTitle    string
	Plan        plan.Plan
	ChecksUsed  int
	ChecksLimit int
}

// SubscriptionInfo is what the backend reports for the current subscription.
type SubscriptionInfo struct {
	PriceID string `json:"price_id"`
	Status  string `json:"status"`
}

// SubscriptionSource fetches the signed-in user's current subscription.
type SubscriptionSource interface {
	CurrentSubscription(ctx context.Context, accessToken string) (*SubscriptionInfo, error)
}

// AccountLoader assembles an AccountSnapshot from the session and the
// subscription backend. It never fails: backend trouble degrades to a
// demo snapshot so the dashboard always has something to show.
type AccountLoader struct {
	source SubscriptionSource
	logger *zap.Logger
}

func NewAccountLoader(source SubscriptionSource, logger *zap.Logger) *AccountLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountLoader{source: source, logger: logger}
}

// Load builds a snapshot for sess. A nil or unreachable subscription maps to
// the free plan; a fetch error falls back to a demo account.
func (l *AccountLoader) Load(ctx context.Context, sess *session.Session) AccountSnapshot {
	if sess == nil {
		return demoSnapshot()
	}

	snapshot := AccountSnapshot{
		Name:     sess.User.MetadataString("full_name"),
		Email:    sess.User.Email,
		Company:  sess.User.MetadataString("company"),
		JobTitle: sess.User.MetadataString("job_title"),
	}
	if snapshot.Name == "" {
		snapshot.Name = sess.User.Email
	}

	priceID := ""
	if l.source != nil {
		info, err := l.source.CurrentSubscription(ctx, sess.AccessToken)
		if err != nil {
			l.logger.Warn("Failed to load subscription, using demo account data", zap.Error(err))
			return demoSnapshot()
		}
		if info != nil {
			priceID = info.PriceID
		}
	}

	p := plan.ForPriceID(priceID)
	snapshot.Plan = p
	snapshot.ChecksLimit = p.ChecksLimit
	return snapshot
}

func demoSnapshot() AccountSnapshot {
	free := plan.Free()
	return AccountSnapshot{
		Name:        "Demo User",
		Email:       "demo@mybankcheck.com",
		Company:     "MyBankCheck",
		JobTitle:    "Analyst",
		Plan:        free,
		ChecksUsed:  3,
		ChecksLimit: free.ChecksLimit,
	}
}

// HTTPSubscriptionSource reads the current subscription from the backend API.
type HTTPSubscriptionSource struct {
	httpClient *http.Client
	endpoint   string
}

func NewHTTPSubscriptionSource(endpoint string) *HTTPSubscriptionSource {
	return &HTTPSubscriptionSource{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
	}
}

func (s *HTTPSubscriptionSource) CurrentSubscription(ctx context.Context, accessToken string) (*SubscriptionInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subscription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subscription endpoint returned status %d", resp.StatusCode)
	}

	var decoded struct {
		Subscription *SubscriptionInfo `json:"subscription"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode subscription response: %w", err)
	}
	return decoded.Subscription, nil
}
