package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	domainErrors "github.com/gauravtib/mybankchecknext-sub001/internal/domain/errors"
	"go.uber.org/zap"
)

// Config holds the auth platform connection settings.
type Config struct {
	ProjectURL string
	APIKey     string
	Logger     *zap.Logger
}

// Client talks to the GoTrue auth API and fans out change notifications. Use
// Default for the shared process-wide instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger

	mu       sync.Mutex
	session  *Session
	handlers map[int]ChangeHandler
	nextID   int
}

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// Default returns the shared client, creating it on first call. Every later
// call returns the same instance regardless of cfg.
func Default(cfg Config) (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient != nil {
		return defaultClient, nil
	}
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	defaultClient = c
	return c, nil
}

// Reset discards the shared client. Test isolation only.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = nil
}

// New creates a standalone client.
func New(cfg Config) (*Client, error) {
	if cfg.ProjectURL == "" || cfg.APIKey == "" {
		return nil, domainErrors.ErrConfigMissing
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.ProjectURL,
		apiKey:     cfg.APIKey,
		logger:     logger,
		handlers:   make(map[int]ChangeHandler),
	}, nil
}

// CurrentSession returns the session held by this client, or nil when there
// is none or it has expired. The read is purely local.
func (c *Client) CurrentSession() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil || c.session.Expired() {
		return nil
	}
	return c.session
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type authError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e *authError) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return "authentication failed"
}

// SignIn exchanges credentials for a session and notifies subscribers.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", "", body, &resp); err != nil {
		return nil, err
	}

	sess := c.storeSession(&resp)
	c.notify(SignedIn, sess)
	return sess, nil
}

// SignUp registers a new account. Metadata lands in the user metadata map.
// When email confirmation is enabled the returned session may be nil.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*Session, error) {
	body := map[string]any{"email": email, "password": password, "data": metadata}
	var resp tokenResponse
	if err := c.post(ctx, "/auth/v1/signup", "", body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, nil
	}

	sess := c.storeSession(&resp)
	c.notify(SignedIn, sess)
	return sess, nil
}

// SignOut revokes the session remotely and always drops it locally. A remote
// failure is returned but the local session is gone and subscribers have
// been told either way.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := ""
	if c.session != nil {
		token = c.session.AccessToken
	}
	c.session = nil
	c.mu.Unlock()

	var remoteErr error
	if token != "" {
		remoteErr = c.post(ctx, "/auth/v1/logout", token, nil, nil)
		if remoteErr != nil {
			c.logger.Warn("Remote sign-out failed, local session dropped anyway",
				zap.Error(remoteErr))
		}
	}

	c.notify(SignedOut, nil)
	return remoteErr
}

// OnSessionChange registers a handler and returns its unsubscribe func.
func (c *Client) OnSessionChange(handler ChangeHandler) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = handler
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	}
}

func (c *Client) storeSession(resp *tokenResponse) *Session {
	sess := &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}
	if resp.ExpiresIn > 0 {
		sess.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()
	return sess
}

func (c *Client) notify(event ChangeEvent, sess *Session) {
	c.mu.Lock()
	handlers := make([]ChangeHandler, 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(event, sess)
	}
}

func (c *Client) post(ctx context.Context, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var ae authError
		_ = json.Unmarshal(respBody, &ae)
		return mapAuthError(resp.StatusCode, ae.text())
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode auth response: %w", err)
		}
	}
	return nil
}

var retryAfterRe = regexp.MustCompile(`(?i)after (\d+) second`)

// mapAuthError translates GoTrue error text into the domain taxonomy.
func mapAuthError(status int, text string) error {
	switch {
	case status == http.StatusTooManyRequests || retryAfterRe.MatchString(text):
		seconds := 0
		if m := retryAfterRe.FindStringSubmatch(text); len(m) == 2 {
			seconds, _ = strconv.Atoi(m[1])
		}
		return &domainErrors.RateLimitedError{RetryAfterSeconds: seconds}
	case containsFold(text, "invalid login credentials"):
		return domainErrors.ErrInvalidCredentials
	case containsFold(text, "email not confirmed"):
		return domainErrors.ErrEmailNotConfirmed
	default:
		return fmt.Errorf("auth error (%d): %s", status, text)
	}
}

func containsFold(s, substr string) bool {
	return len(s) >= len(substr) &&
		regexp.MustCompile(`(?i)`+regexp.QuoteMeta(substr)).MatchString(s)
}
