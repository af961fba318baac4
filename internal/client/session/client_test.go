package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	domainErrors "github.com/gauravtib/mybankchecknext-sub001/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{ProjectURL: srv.URL, APIKey: "anon-key", Logger: zap.NewNop()})
	require.NoError(t, err)
	return srv, client
}

func TestNew_ConfigMissing(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, domainErrors.ErrConfigMissing)

	_, err = New(Config{ProjectURL: "https://example.supabase.co"})
	assert.ErrorIs(t, err, domainErrors.ErrConfigMissing)
}

func TestDefault_Singleton(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg := Config{ProjectURL: "https://example.supabase.co", APIKey: "anon-key"}
	a, err := Default(cfg)
	require.NoError(t, err)
	b, err := Default(Config{ProjectURL: "https://other.supabase.co", APIKey: "other"})
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestSignIn_Success(t *testing.T) {
	userID := uuid.New()
	_, client := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok_abc",
			"refresh_token": "ref_abc",
			"expires_in":    3600,
			"user": map[string]any{
				"id":    userID.String(),
				"email": "user@example.com",
				"user_metadata": map[string]any{
					"name":    "Ada",
					"company": "Example Inc",
				},
			},
		})
	})

	var notified atomic.Int32
	unsubscribe := client.OnSessionChange(func(event ChangeEvent, sess *Session) {
		assert.Equal(t, SignedIn, event)
		require.NotNil(t, sess)
		notified.Add(1)
	})
	defer unsubscribe()

	sess, err := client.SignIn(context.Background(), "user@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok_abc", sess.AccessToken)
	assert.Equal(t, userID, sess.User.ID)
	assert.Equal(t, "Ada", sess.User.MetadataString("name"))
	assert.Equal(t, int32(1), notified.Load())

	assert.Same(t, sess, client.CurrentSession())
}

func TestSignIn_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		check    func(t *testing.T, err error)
	}{
		{
			name:   "invalid credentials",
			status: http.StatusBadRequest,
			body:   `{"error_description":"Invalid login credentials"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
			},
		},
		{
			name:   "email not confirmed",
			status: http.StatusBadRequest,
			body:   `{"msg":"Email not confirmed"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domainErrors.ErrEmailNotConfirmed)
			},
		},
		{
			name:   "rate limited with countdown",
			status: http.StatusTooManyRequests,
			body:   `{"msg":"For security purposes, you can only request this after 37 seconds."}`,
			check: func(t *testing.T, err error) {
				seconds, ok := domainErrors.IsRateLimited(err)
				require.True(t, ok)
				assert.Equal(t, 37, seconds)
			},
		},
		{
			name:   "rate limit text without 429",
			status: http.StatusBadRequest,
			body:   `{"msg":"you can request this after 5 seconds"}`,
			check: func(t *testing.T, err error) {
				seconds, ok := domainErrors.IsRateLimited(err)
				require.True(t, ok)
				assert.Equal(t, 5, seconds)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := client.SignIn(context.Background(), "user@example.com", "wrong")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestSignOut_RemoteFailureStillClearsLocally(t *testing.T) {
	_, client := newAuthServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok_abc",
				"expires_in":   3600,
				"user":         map[string]any{"id": uuid.New().String()},
			})
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"msg":"server exploded"}`))
		}
	})

	_, err := client.SignIn(context.Background(), "user@example.com", "hunter2")
	require.NoError(t, err)

	var sawSignedOut atomic.Bool
	unsubscribe := client.OnSessionChange(func(event ChangeEvent, sess *Session) {
		if event == SignedOut {
			assert.Nil(t, sess)
			sawSignedOut.Store(true)
		}
	})
	defer unsubscribe()

	err = client.SignOut(context.Background())
	assert.Error(t, err)

	// Local cleanup is unconditional.
	assert.Nil(t, client.CurrentSession())
	assert.True(t, sawSignedOut.Load())
}

func TestOnSessionChange_Unsubscribe(t *testing.T) {
	client, err := New(Config{ProjectURL: "https://example.supabase.co", APIKey: "anon-key"})
	require.NoError(t, err)

	var calls atomic.Int32
	unsubscribe := client.OnSessionChange(func(ChangeEvent, *Session) { calls.Add(1) })

	client.notify(SignedOut, nil)
	assert.Equal(t, int32(1), calls.Load())

	unsubscribe()
	client.notify(SignedOut, nil)
	assert.Equal(t, int32(1), calls.Load())

	// Unsubscribing twice is harmless.
	unsubscribe()
}
