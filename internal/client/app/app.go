// Package app owns the client's view state. All transitions funnel through a
// single event loop so guard checks and the resulting state change happen in
// one step, with no window for a remote session event to interleave.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/gauravtib/mybankchecknext-sub001/internal/client/history"
	"github.com/gauravtib/mybankchecknext-sub001/internal/client/session"
	"go.uber.org/zap"
)

const defaultLogoutTimeout = 2 * time.Second

// SessionClient is the slice of the auth client the app depends on.
type SessionClient interface {
	CurrentSession() *session.Session
	SignOut(ctx context.Context) error
	OnSessionChange(fn session.ChangeHandler) func()
}

type Config struct {
	Sessions SessionClient
	History  history.Store
	Loader   *AccountLoader
	Logger   *zap.Logger
	// StartupSessionID is the checkout session id from the success redirect
	// query, if present. It routes a signed-in startup to the success view.
	StartupSessionID string
	// LogoutTimeout bounds how long logout waits for the remote sign-out
	// before proceeding anyway. Zero means the default of two seconds.
	LogoutTimeout time.Duration
}

// App is the client application state machine.
type App struct {
	sessions SessionClient
	history  history.Store
	loader   *AccountLoader
	logger   *zap.Logger

	logoutTimeout time.Duration

	events chan func()
	done   chan struct{}

	unsubscribe func()
	closeOnce   sync.Once

	mu          sync.RWMutex
	view        View
	account     *AccountSnapshot
	forceSignup bool
	signingOut  bool
}

// New builds the app and routes the startup view: a live session with a
// checkout session id lands on success, a live session alone on the
// dashboard, anything else on the landing page. The event loop starts
// immediately.
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.LogoutTimeout
	if timeout <= 0 {
		timeout = defaultLogoutTimeout
	}

	a := &App{
		sessions:      cfg.Sessions,
		history:       cfg.History,
		loader:        cfg.Loader,
		logger:        logger,
		logoutTimeout: timeout,
		events:        make(chan func(), 16),
		done:          make(chan struct{}),
		view:          ViewLanding,
	}

	sess := a.sessions.CurrentSession()
	switch {
	case sess != nil && cfg.StartupSessionID != "":
		a.view = ViewSuccess
		a.loadAccount(sess)
	case sess != nil:
		a.view = ViewDashboard
		a.loadAccount(sess)
	}

	a.unsubscribe = a.sessions.OnSessionChange(func(event session.ChangeEvent, s *session.Session) {
		switch event {
		case session.SignedIn:
			a.enqueue(func() { a.handleRemoteSignedIn(s) })
		case session.SignedOut:
			a.enqueue(func() { a.handleRemoteSignedOut() })
		}
	})

	go a.loop()
	return a
}

func (a *App) loop() {
	for {
		select {
		case <-a.done:
			return
		case fn := <-a.events:
			fn()
		}
	}
}

func (a *App) enqueue(fn func()) {
	select {
	case a.events <- fn:
	case <-a.done:
	}
}

// Close tears down the session subscription and stops the loop. Safe to call
// more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		close(a.done)
	})
}

// View returns the current view.
func (a *App) View() View {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view
}

// Account returns the loaded account snapshot, or nil when signed out.
func (a *App) Account() *AccountSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.account == nil {
		return nil
	}
	snapshot := *a.account
	return &snapshot
}

func (a *App) setView(v View) {
	a.mu.Lock()
	a.view = v
	a.mu.Unlock()
}

func (a *App) loadAccount(sess *session.Session) {
	snapshot := a.loader.Load(context.Background(), sess)
	a.mu.Lock()
	a.account = &snapshot
	a.mu.Unlock()
}

// GetStarted routes to signup and pins the flow there until the form is
// completed or abandoned, so a lingering session cannot yank the user
// straight to the dashboard.
func (a *App) GetStarted() {
	a.enqueue(func() {
		a.mu.Lock()
		a.forceSignup = true
		a.account = nil
		a.view = ViewSignup
		a.mu.Unlock()

		// Drop any lingering remote session so the signup starts clean.
		// Best effort: a failure is logged and the flow continues.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), a.logoutTimeout)
			defer cancel()
			if err := a.sessions.SignOut(ctx); err != nil {
				a.logger.Warn("Sign-out before signup failed", zap.Error(err))
			}
		}()
	})
}

// NavigateSignIn shows the login form.
func (a *App) NavigateSignIn() {
	a.enqueue(func() {
		a.mu.Lock()
		a.forceSignup = false
		a.view = ViewLogin
		a.mu.Unlock()
	})
}

// BackToWebsite abandons the login or signup form.
func (a *App) BackToWebsite() {
	a.enqueue(func() {
		a.mu.Lock()
		a.forceSignup = false
		a.view = ViewLanding
		a.mu.Unlock()
	})
}

// LoginSucceeded moves to the dashboard after a credential sign-in.
func (a *App) LoginSucceeded() {
	a.enqueue(func() {
		sess := a.sessions.CurrentSession()
		a.loadAccount(sess)
		a.mu.Lock()
		a.forceSignup = false
		a.view = ViewDashboard
		a.mu.Unlock()
	})
}

// SignupCompleted installs the freshly created account and moves to the
// dashboard. The snapshot comes from the signup form rather than the backend
// because the subscription row may not exist yet.
func (a *App) SignupCompleted(account AccountSnapshot) {
	a.enqueue(func() {
		a.mu.Lock()
		a.forceSignup = false
		a.account = &account
		a.view = ViewDashboard
		a.mu.Unlock()
	})
}

// CheckPerformed bumps the used-checks counter on the dashboard.
func (a *App) CheckPerformed() {
	a.enqueue(func() {
		a.mu.Lock()
		if a.account != nil {
			a.account.ChecksUsed++
		}
		a.mu.Unlock()
	})
}

// AccountUpdated replaces the profile fields of the current snapshot.
func (a *App) AccountUpdated(update AccountSnapshot) {
	a.enqueue(func() {
		a.mu.Lock()
		if a.account != nil {
			a.account.Name = update.Name
			a.account.Company = update.Company
			a.account.JobTitle = update.JobTitle
		}
		a.mu.Unlock()
	})
}

// Logout clears local state immediately and races the remote sign-out against
// a short timer, so a slow or dead auth server cannot wedge the user on the
// dashboard. Repeat calls while a logout is in flight are ignored.
func (a *App) Logout() {
	a.enqueue(func() {
		a.mu.Lock()
		if a.signingOut {
			a.mu.Unlock()
			return
		}
		a.signingOut = true
		a.mu.Unlock()

		if err := a.history.ClearAll(context.Background()); err != nil {
			a.logger.Warn("Failed to clear local history on logout", zap.Error(err))
		}

		remoteDone := make(chan struct{})
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), a.logoutTimeout)
			defer cancel()
			if err := a.sessions.SignOut(ctx); err != nil {
				a.logger.Warn("Remote sign-out failed", zap.Error(err))
			}
			close(remoteDone)
		}()

		go func() {
			timer := time.NewTimer(a.logoutTimeout)
			defer timer.Stop()
			select {
			case <-remoteDone:
			case <-timer.C:
				a.logger.Warn("Remote sign-out timed out, completing logout locally")
			}
			a.enqueue(a.finishLogout)
		}()
	})
}

func (a *App) finishLogout() {
	a.mu.Lock()
	if !a.signingOut {
		a.mu.Unlock()
		return
	}
	a.signingOut = false
	a.forceSignup = false
	a.account = nil
	a.view = ViewLanding
	a.mu.Unlock()
}

func (a *App) handleRemoteSignedIn(sess *session.Session) {
	a.mu.RLock()
	blocked := a.forceSignup || a.signingOut
	a.mu.RUnlock()
	if blocked {
		return
	}
	a.loadAccount(sess)
	a.setView(ViewDashboard)
}

func (a *App) handleRemoteSignedOut() {
	a.mu.RLock()
	local := a.signingOut
	a.mu.RUnlock()
	if local {
		// The logout path owns this transition.
		return
	}
	if err := a.history.ClearAll(context.Background()); err != nil {
		a.logger.Warn("Failed to clear local history on remote sign-out", zap.Error(err))
	}
	a.mu.Lock()
	a.forceSignup = false
	a.account = nil
	a.view = ViewLanding
	a.mu.Unlock()
}
