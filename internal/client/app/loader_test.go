package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountLoader_MapsPriceIDToPlan(t *testing.T) {
	loader := NewAccountLoader(&staticSource{
		info: &SubscriptionInfo{PriceID: "price_1QwGrowthMoBankCheck01", Status: "active"},
	}, nil)

	snapshot := loader.Load(context.Background(), testSession())

	assert.Equal(t, "growth", snapshot.Plan.ID)
	assert.Equal(t, 500, snapshot.ChecksLimit)
	assert.Equal(t, "Alice Smith", snapshot.Name)
	assert.Equal(t, "Acme", snapshot.Company)
}

func TestAccountLoader_UnmatchedPriceFallsBackToFree(t *testing.T) {
	loader := NewAccountLoader(&staticSource{
		info: &SubscriptionInfo{PriceID: "price_from_another_project", Status: "active"},
	}, nil)

	snapshot := loader.Load(context.Background(), testSession())

	assert.Equal(t, "free", snapshot.Plan.ID)
	assert.Equal(t, 10, snapshot.ChecksLimit)
}

func TestAccountLoader_NoSubscriptionMeansFree(t *testing.T) {
	loader := NewAccountLoader(&staticSource{info: nil}, nil)

	snapshot := loader.Load(context.Background(), testSession())

	assert.Equal(t, "free", snapshot.Plan.ID)
	assert.Equal(t, "alice@example.com", snapshot.Email)
}

func TestAccountLoader_FetchErrorDegradesToDemo(t *testing.T) {
	loader := NewAccountLoader(&staticSource{err: errors.New("backend down")}, nil)

	snapshot := loader.Load(context.Background(), testSession())

	assert.Equal(t, "Demo User", snapshot.Name)
	assert.Equal(t, "free", snapshot.Plan.ID)
	assert.Equal(t, 10, snapshot.ChecksLimit)
}

func TestAccountLoader_NameFallsBackToEmail(t *testing.T) {
	loader := NewAccountLoader(&staticSource{}, nil)

	sess := testSession()
	delete(sess.User.Metadata, "full_name")
	snapshot := loader.Load(context.Background(), sess)

	assert.Equal(t, "alice@example.com", snapshot.Name)
}

func TestHTTPSubscriptionSource_DecodesSubscription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"subscription": map[string]any{
				"price_id": "price_1QwProMyBankCheck0001",
				"status":   "active",
			},
		})
	}))
	defer server.Close()

	source := NewHTTPSubscriptionSource(server.URL)
	info, err := source.CurrentSubscription(context.Background(), "token")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "price_1QwProMyBankCheck0001", info.PriceID)
}

func TestHTTPSubscriptionSource_NullSubscription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"subscription": nil})
	}))
	defer server.Close()

	source := NewHTTPSubscriptionSource(server.URL)
	info, err := source.CurrentSubscription(context.Background(), "token")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestHTTPSubscriptionSource_NonOKStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	source := NewHTTPSubscriptionSource(server.URL)
	_, err := source.CurrentSubscription(context.Background(), "token")
	assert.Error(t, err)
}
