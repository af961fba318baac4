package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gauravtib/mybankchecknext-sub001/internal/client/session"
	"github.com/gauravtib/mybankchecknext-sub001/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	mu           sync.Mutex
	sess         *session.Session
	handlers     []session.ChangeHandler
	signOutErr   error
	signOutBlock bool
	signOutCalls int
}

func (f *fakeSessions) CurrentSession() *session.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess
}

func (f *fakeSessions) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.signOutCalls++
	block := f.signOutBlock
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	f.mu.Lock()
	f.sess = nil
	f.mu.Unlock()
	return f.signOutErr
}

func (f *fakeSessions) OnSessionChange(fn session.ChangeHandler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, fn)
	return func() {}
}

func (f *fakeSessions) fire(event session.ChangeEvent, s *session.Session) {
	f.mu.Lock()
	handlers := append([]session.ChangeHandler(nil), f.handlers...)
	f.mu.Unlock()
	for _, fn := range handlers {
		fn(event, s)
	}
}

func (f *fakeSessions) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signOutCalls
}

type countingStore struct {
	mu     sync.Mutex
	clears int
}

func (s *countingStore) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (s *countingStore) Set(ctx context.Context, key, value string) error    { return nil }
func (s *countingStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	return nil
}

func (s *countingStore) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

type staticSource struct {
	info *SubscriptionInfo
	err  error
}

func (s *staticSource) CurrentSubscription(ctx context.Context, accessToken string) (*SubscriptionInfo, error) {
	return s.info, s.err
}

func testSession() *session.Session {
	return &session.Session{
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(time.Hour),
		User: session.User{
			Email: "alice@example.com",
			Metadata: map[string]any{
				"full_name": "Alice Smith",
				"company":   "Acme",
			},
		},
	}
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	if cfg.Loader == nil {
		cfg.Loader = NewAccountLoader(&staticSource{}, nil)
	}
	if cfg.History == nil {
		cfg.History = &countingStore{}
	}
	a := New(cfg)
	t.Cleanup(a.Close)
	return a
}

func drain(t *testing.T, a *App) {
	t.Helper()
	done := make(chan struct{})
	a.enqueue(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event loop stalled")
	}
}

func TestApp_Startup_NoSession(t *testing.T) {
	a := newTestApp(t, Config{Sessions: &fakeSessions{}})

	assert.Equal(t, ViewLanding, a.View())
	assert.Nil(t, a.Account())
}

func TestApp_Startup_WithSession(t *testing.T) {
	sessions := &fakeSessions{sess: testSession()}
	a := newTestApp(t, Config{Sessions: sessions})

	assert.Equal(t, ViewDashboard, a.View())
	account := a.Account()
	require.NotNil(t, account)
	assert.Equal(t, "Alice Smith", account.Name)
	assert.Equal(t, "alice@example.com", account.Email)
}

func TestApp_Startup_CheckoutReturnShowsSuccess(t *testing.T) {
	sessions := &fakeSessions{sess: testSession()}
	a := newTestApp(t, Config{Sessions: sessions, StartupSessionID: "cs_test_123"})

	assert.Equal(t, ViewSuccess, a.View())
	assert.NotNil(t, a.Account())
}

func TestApp_Startup_CheckoutIDWithoutSessionIgnored(t *testing.T) {
	a := newTestApp(t, Config{Sessions: &fakeSessions{}, StartupSessionID: "cs_test_123"})

	assert.Equal(t, ViewLanding, a.View())
}

func TestApp_GetStartedBlocksRemoteSignIn(t *testing.T) {
	sessions := &fakeSessions{}
	a := newTestApp(t, Config{Sessions: sessions})

	a.GetStarted()
	drain(t, a)
	assert.Equal(t, ViewSignup, a.View())
	assert.Nil(t, a.Account())

	// Entering signup drops any lingering remote session.
	require.Eventually(t, func() bool {
		return sessions.calls() >= 1
	}, time.Second, 10*time.Millisecond)

	// A lingering session announcing itself must not steal the signup flow.
	sessions.fire(session.SignedIn, testSession())
	drain(t, a)
	assert.Equal(t, ViewSignup, a.View())

	a.BackToWebsite()
	drain(t, a)
	assert.Equal(t, ViewLanding, a.View())

	// Guard released, the next sign-in lands normally.
	sessions.fire(session.SignedIn, testSession())
	drain(t, a)
	assert.Equal(t, ViewDashboard, a.View())
}

func TestApp_SignupCompletedWithPaidPlan(t *testing.T) {
	sessions := &fakeSessions{}
	a := newTestApp(t, Config{Sessions: sessions})

	a.GetStarted()
	growth, ok := plan.ByID("growth")
	require.True(t, ok)
	a.SignupCompleted(AccountSnapshot{
		Name:        "Bob Jones",
		Email:       "bob@example.com",
		Plan:        growth,
		ChecksLimit: growth.ChecksLimit,
	})
	drain(t, a)

	assert.Equal(t, ViewDashboard, a.View())
	account := a.Account()
	require.NotNil(t, account)
	assert.Equal(t, 500, account.ChecksLimit)
	assert.Equal(t, "growth", account.Plan.ID)
}

func TestApp_LoginSucceeded(t *testing.T) {
	sessions := &fakeSessions{}
	a := newTestApp(t, Config{Sessions: sessions})

	a.NavigateSignIn()
	drain(t, a)
	assert.Equal(t, ViewLogin, a.View())

	sessions.mu.Lock()
	sessions.sess = testSession()
	sessions.mu.Unlock()

	a.LoginSucceeded()
	drain(t, a)
	assert.Equal(t, ViewDashboard, a.View())
	require.NotNil(t, a.Account())
}

func TestApp_CheckPerformed(t *testing.T) {
	sessions := &fakeSessions{sess: testSession()}
	a := newTestApp(t, Config{Sessions: sessions})

	a.CheckPerformed()
	a.CheckPerformed()
	drain(t, a)

	account := a.Account()
	require.NotNil(t, account)
	assert.Equal(t, 2, account.ChecksUsed)
}

func TestApp_AccountUpdatedKeepsPlan(t *testing.T) {
	sessions := &fakeSessions{sess: testSession()}
	a := newTestApp(t, Config{Sessions: sessions})

	before := a.Account()
	require.NotNil(t, before)

	a.AccountUpdated(AccountSnapshot{Name: "Alice Cooper", Company: "Initech", JobTitle: "CFO"})
	drain(t, a)

	account := a.Account()
	require.NotNil(t, account)
	assert.Equal(t, "Alice Cooper", account.Name)
	assert.Equal(t, "Initech", account.Company)
	assert.Equal(t, before.Plan.ID, account.Plan.ID)
	assert.Equal(t, before.Email, account.Email)
}

func TestApp_LogoutIsIdempotent(t *testing.T) {
	sessions := &fakeSessions{sess: testSession()}
	store := &countingStore{}
	a := newTestApp(t, Config{Sessions: sessions, History: store, LogoutTimeout: 200 * time.Millisecond})

	a.Logout()
	a.Logout()
	a.Logout()

	require.Eventually(t, func() bool {
		return a.View() == ViewLanding
	}, time.Second, 10*time.Millisecond)

	assert.Nil(t, a.Account())
	assert.Equal(t, 1, store.clearCount())
	assert.Equal(t, 1, sessions.calls())
}

func TestApp_LogoutCompletesWhenRemoteHangs(t *testing.T) {
	sessions := &fakeSessions{sess: testSession(), signOutBlock: true}
	store := &countingStore{}
	a := newTestApp(t, Config{Sessions: sessions, History: store, LogoutTimeout: 50 * time.Millisecond})

	a.Logout()

	require.Eventually(t, func() bool {
		return a.View() == ViewLanding
	}, time.Second, 10*time.Millisecond)
	assert.Nil(t, a.Account())
	assert.Equal(t, 1, store.clearCount())
}

func TestApp_LogoutProceedsPastRemoteError(t *testing.T) {
	sessions := &fakeSessions{sess: testSession(), signOutErr: errors.New("auth server unavailable")}
	store := &countingStore{}
	a := newTestApp(t, Config{Sessions: sessions, History: store, LogoutTimeout: 200 * time.Millisecond})

	a.Logout()

	require.Eventually(t, func() bool {
		return a.View() == ViewLanding
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, store.clearCount())
}

func TestApp_RemoteSignOutReleasesSignupGuard(t *testing.T) {
	sessions := &fakeSessions{}
	a := newTestApp(t, Config{Sessions: sessions})

	a.GetStarted()
	drain(t, a)
	assert.Equal(t, ViewSignup, a.View())

	// A remote sign-out abandons the pinned signup flow entirely.
	sessions.fire(session.SignedOut, nil)
	drain(t, a)
	assert.Equal(t, ViewLanding, a.View())

	// With the guard released, the next sign-in reaches the dashboard.
	sessions.fire(session.SignedIn, testSession())
	drain(t, a)
	assert.Equal(t, ViewDashboard, a.View())
}

func TestApp_RemoteSignOutClearsState(t *testing.T) {
	sessions := &fakeSessions{sess: testSession()}
	store := &countingStore{}
	a := newTestApp(t, Config{Sessions: sessions, History: store})

	assert.Equal(t, ViewDashboard, a.View())

	sessions.fire(session.SignedOut, nil)
	drain(t, a)

	assert.Equal(t, ViewLanding, a.View())
	assert.Nil(t, a.Account())
	assert.Equal(t, 1, store.clearCount())
}

func TestApp_CloseIsSafeToRepeat(t *testing.T) {
	a := New(Config{
		Sessions: &fakeSessions{},
		History:  &countingStore{},
		Loader:   NewAccountLoader(&staticSource{}, nil),
	})
	a.Close()
	a.Close()

	// Events after close are dropped instead of blocking.
	a.GetStarted()
	assert.Equal(t, ViewLanding, a.View())
}
