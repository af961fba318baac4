// Package history holds the client's locally cached data: fraud history,
// check history, and the offline account database. All three are purged
// together on every sign-out path.
package history

import "context"

const (
	KeyFraudHistory    = "mybankcheck:fraud_history"
	KeyCheckHistory    = "mybankcheck:check_history"
	KeyAccountDatabase = "mybankcheck:account_database"
)

// Keys lists every key ClearAll removes.
var Keys = []string{KeyFraudHistory, KeyCheckHistory, KeyAccountDatabase}

type Store interface {
	// Get returns the stored value, "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value under key.
	Set(ctx context.Context, key, value string) error

	// ClearAll removes all history keys. Removing an absent key is harmless.
	ClearAll(ctx context.Context) error
}
