package history

import (
	"context"
	"testing"
	"time"

	"github.com/gauravtib/mybankchecknext-sub001/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_PicksBackendFromConfig(t *testing.T) {
	_, ok := NewStore(nil).(*memoryStore)
	assert.True(t, ok)

	_, ok = NewStore(&config.RedisConfig{}).(*memoryStore)
	assert.True(t, ok)

	_, ok = NewStore(&config.RedisConfig{Addr: "localhost:6379"}).(*redisStore)
	assert.True(t, ok)
}

// Exercises the Redis store against a local server; skipped when none is
// running.
func TestRedisStore_RoundTrip(t *testing.T) {
	store := NewRedisStore(&config.RedisConfig{Addr: "localhost:6379", DB: 9})
	rs := store.(*redisStore)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rs.client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	require.NoError(t, store.ClearAll(ctx))

	// Absent keys read back as empty, not as an error.
	val, err := store.Get(ctx, KeyFraudHistory)
	require.NoError(t, err)
	assert.Equal(t, "", val)

	require.NoError(t, store.Set(ctx, KeyCheckHistory, `[{"account_last4":"1234"}]`))
	val, err = store.Get(ctx, KeyCheckHistory)
	require.NoError(t, err)
	assert.Equal(t, `[{"account_last4":"1234"}]`, val)

	require.NoError(t, store.ClearAll(ctx))
	val, err = store.Get(ctx, KeyCheckHistory)
	require.NoError(t, err)
	assert.Equal(t, "", val)
}
