package storage

import (
	"context"
	"log/slog"

	"janken/game"
)

// BestEffort wraps a TallyStore so that persistence never surfaces to the player:
// failed or corrupt reads yield a zero tally and failed writes are only logged at debug level.
type BestEffort struct {
	Store TallyStore
}

// Load returns the stored tally, or the zero tally when nothing usable is stored.
func (b BestEffort) Load(ctx context.Context, key string) game.Tally {
	if b.Store == nil {
		return game.Tally{}
	}
	t, found, err := b.Store.Load(ctx, key)
	if err != nil {
		slog.Debug("ignoring tally read failure", "tag", "storage", "key", key, "err", err)
		return game.Tally{}
	}
	if !found {
		return game.Tally{}
	}
	return t
}

// Save persists tally, swallowing any error.
func (b BestEffort) Save(ctx context.Context, key string, tally game.Tally) {
	if b.Store == nil {
		return
	}
	if err := b.Store.Save(ctx, key, tally); err != nil {
		slog.Debug("ignoring tally write failure", "tag", "storage", "key", key, "err", err)
	}
}
