// Package client assembles the embeddable client core: the auth session
// client, the local history store, the account loader, and the view state
// machine.
package client

import (
	"context"
	"fmt"

	"github.com/gauravtib/mybankchecknext-sub001/internal/client/app"
	"github.com/gauravtib/mybankchecknext-sub001/internal/client/history"
	"github.com/gauravtib/mybankchecknext-sub001/internal/client/session"
	"github.com/gauravtib/mybankchecknext-sub001/internal/config"
	"go.uber.org/zap"
)

// Core bundles the wired client components. Callers drive the App and tear
// the whole thing down with Close.
type Core struct {
	Sessions app.SessionClient
	History  history.Store
	App      *app.App
}

type Options struct {
	// StartupSessionID is the checkout session id from the success redirect
	// query, if the process was started from one.
	StartupSessionID string
	// SubscriptionURL is the backend endpoint for the current subscription.
	// Blank leaves the account loader on local data only.
	SubscriptionURL string
}

// New wires the client core from config. Without auth platform credentials
// the core runs in demo mode: a signed-out session stub and an in-memory
// history store.
func New(cfg *config.Config, logger *zap.Logger, opts Options) (*Core, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		sessions app.SessionClient
		store    history.Store
	)
	if cfg.Service.Supabase.Configured() {
		sc, err := session.New(session.Config{
			ProjectURL: cfg.Service.Supabase.ProjectURL,
			APIKey:     cfg.Service.Supabase.APIKey,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build session client: %w", err)
		}
		sessions = sc
		store = history.NewStore(&cfg.Redis)
	} else {
		logger.Info("Auth platform not configured, running client core in demo mode")
		sessions = demoSessions{}
		store = history.NewMemoryStore()
	}

	var source app.SubscriptionSource
	if opts.SubscriptionURL != "" {
		source = app.NewHTTPSubscriptionSource(opts.SubscriptionURL)
	}

	core := &Core{Sessions: sessions, History: store}
	core.App = app.New(app.Config{
		Sessions:         sessions,
		History:          store,
		Loader:           app.NewAccountLoader(source, logger),
		Logger:           logger,
		StartupSessionID: opts.StartupSessionID,
	})
	return core, nil
}

// Close stops the state machine and releases its session subscription.
func (c *Core) Close() {
	c.App.Close()
}

// demoSessions is the permanently signed-out auth stub used in demo mode.
type demoSessions struct{}

func (demoSessions) CurrentSession() *session.Session { return nil }

func (demoSessions) SignOut(context.Context) error { return nil }

func (demoSessions) OnSessionChange(session.ChangeHandler) func() { return func() {} }
