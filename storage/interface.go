package storage

import (
	"context"

	"janken/game"
)

// TallyStore abstracts persistence of the flat tally record under a key.
// Implementations can be swapped for testing or different backends.
type TallyStore interface {
	// Load returns the tally stored under key. found is false when nothing is stored.
	Load(ctx context.Context, key string) (tally game.Tally, found bool, err error)
	// Save replaces the tally stored under key.
	Save(ctx context.Context, key string, tally game.Tally) error
	// Close releases connections held by the store.
	Close() error
}

// Ensure every backend implements TallyStore at compile time.
var (
	_ TallyStore = (*MemoryStore)(nil)
	_ TallyStore = (*FileStore)(nil)
	_ TallyStore = (*RedisStore)(nil)
	_ TallyStore = (*PostgresStore)(nil)
)

// SessionKey scopes the fixed base key to one session: "jankenStats:<id>".
func SessionKey(base, sessionID string) string {
	if sessionID == "" {
		return base
	}
	return base + ":" + sessionID
}
