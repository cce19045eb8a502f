package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"janken/game"
)

const createTallyTableSQL = `
CREATE TABLE IF NOT EXISTS janken_tally (
	key         TEXT PRIMARY KEY,
	wins        INT NOT NULL DEFAULT 0 CHECK (wins >= 0),
	losses      INT NOT NULL DEFAULT 0 CHECK (losses >= 0),
	draws       INT NOT NULL DEFAULT 0 CHECK (draws >= 0),
	total_games INT NOT NULL DEFAULT 0,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (total_games = wins + losses + draws)
);
`

// PostgresStore keeps tallies in the janken_tally table, one row per key.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and ensures the janken_tally table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTallyTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &PostgresStore{pool: pool}, nil
}

// Load returns the tally stored under key.
func (s *PostgresStore) Load(ctx context.Context, key string) (game.Tally, bool, error) {
	var t game.Tally
	err := s.pool.QueryRow(ctx, `
		SELECT wins, losses, draws, total_games
		FROM janken_tally
		WHERE key = $1`,
		key).Scan(&t.Wins, &t.Losses, &t.Draws, &t.TotalGames)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return game.Tally{}, false, nil
		}
		return game.Tally{}, false, err
	}
	return t, true, nil
}

// Save upserts the row for key.
func (s *PostgresStore) Save(ctx context.Context, key string, tally game.Tally) error {
	if err := tally.Validate(); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO janken_tally (key, wins, losses, draws, total_games, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (key) DO UPDATE SET
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			draws = EXCLUDED.draws,
			total_games = EXCLUDED.total_games,
			updated_at = now()`,
		key, tally.Wins, tally.Losses, tally.Draws, tally.TotalGames)
	return err
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}
