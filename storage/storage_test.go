package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"janken/config"
	"janken/game"
)

var sample = game.Tally{Wins: 2, Losses: 1, Draws: 1, TotalGames: 4}

// failingStore is a test double whose every call fails.
type failingStore struct{}

var errBackend = errors.New("backend down")

func (failingStore) Load(context.Context, string) (game.Tally, bool, error) {
	return game.Tally{}, false, errBackend
}
func (failingStore) Save(context.Context, string, game.Tally) error { return errBackend }
func (failingStore) Close() error                                   { return nil }

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s TallyStore) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := s.Load(ctx, "jankenStats:missing"); err != nil || found {
		t.Fatalf("Load(missing) = found %v, err %v; want not found", found, err)
	}

	if err := s.Save(ctx, "jankenStats:a", sample); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "jankenStats:b", game.Tally{Draws: 1, TotalGames: 1}); err != nil {
		t.Fatalf("Save second key: %v", err)
	}

	got, found, err := s.Load(ctx, "jankenStats:a")
	if err != nil || !found {
		t.Fatalf("Load(a) = found %v, err %v", found, err)
	}
	if got != sample {
		t.Errorf("Load(a) = %+v, want %+v", got, sample)
	}

	// Reset is a save of the zero tally
	if err := s.Save(ctx, "jankenStats:a", game.Tally{}); err != nil {
		t.Fatalf("Save zero: %v", err)
	}
	got, found, err = s.Load(ctx, "jankenStats:a")
	if err != nil || !found || got != (game.Tally{}) {
		t.Errorf("after reset Load(a) = %+v, %v, %v", got, found, err)
	}

	got, _, _ = s.Load(ctx, "jankenStats:b")
	if got.Draws != 1 {
		t.Errorf("other key was disturbed: %+v", got)
	}

	if err := s.Save(ctx, "jankenStats:bad", game.Tally{Wins: 1, TotalGames: 3}); !errors.Is(err, game.ErrCorruptTally) {
		t.Errorf("Save of broken tally: expected ErrCorruptTally, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stats.json")
	s := NewFileStore(path)
	exerciseStore(t, s)

	// A second store on the same file sees the saved data
	got, found, err := NewFileStore(path).Load(context.Background(), "jankenStats:b")
	if err != nil || !found || got.TotalGames != 1 {
		t.Errorf("reopened Load = %+v, %v, %v", got, found, err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)
	ctx := context.Background()

	if _, _, err := s.Load(ctx, "jankenStats"); err == nil {
		t.Fatal("expected parse error on corrupt file")
	}
	// A save replaces the corrupt file
	if err := s.Save(ctx, "jankenStats", sample); err != nil {
		t.Fatalf("Save over corrupt file: %v", err)
	}
	got, found, err := s.Load(ctx, "jankenStats")
	if err != nil || !found || got != sample {
		t.Errorf("Load after repair = %+v, %v, %v", got, found, err)
	}
}

func TestFileStore_NullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(path, []byte("null"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)
	ctx := context.Background()

	if _, found, err := s.Load(ctx, "jankenStats"); err != nil || found {
		t.Fatalf("Load on null file = found %v, err %v; want empty", found, err)
	}
	if err := s.Save(ctx, "jankenStats", sample); err != nil {
		t.Fatalf("Save over null file: %v", err)
	}
	got, found, err := s.Load(ctx, "jankenStats")
	if err != nil || !found || got != sample {
		t.Errorf("Load after save = %+v, %v, %v", got, found, err)
	}

	// The same file behind BestEffort, as the servers use it.
	if err := os.WriteFile(path, []byte("null"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := BestEffort{Store: NewFileStore(path)}
	b.Save(ctx, "jankenStats", sample)
	if got := b.Load(ctx, "jankenStats"); got != sample {
		t.Errorf("BestEffort Load = %+v, want %+v", got, sample)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := NewRedisStore(ctx, mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer s.Close()

	exerciseStore(t, s)

	raw, err := mr.Get("jankenStats:b")
	if err != nil {
		t.Fatalf("miniredis Get: %v", err)
	}
	if raw != `{"wins":0,"losses":0,"draws":1,"totalGames":1}` {
		t.Errorf("unexpected stored value %s", raw)
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	s, err := NewRedisStore(ctx, mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer s.Close()

	mr.Set("jankenStats", "garbage")
	if _, _, err := s.Load(ctx, "jankenStats"); err == nil {
		t.Error("expected decode error for garbage value")
	}

	// Total is recomputed from the counters
	mr.Set("jankenStats", `{"wins":3,"losses":1,"draws":0,"totalGames":99}`)
	got, found, err := s.Load(ctx, "jankenStats")
	if err != nil || !found {
		t.Fatalf("Load = %v, %v", found, err)
	}
	if got.TotalGames != 4 {
		t.Errorf("expected recomputed total 4, got %d", got.TotalGames)
	}
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisStore(context.Background(), addr, "", 0); err == nil {
		t.Error("expected error connecting to a closed server")
	}
}

func TestDecodeTally(t *testing.T) {
	got, err := decodeTally([]byte(`{"wins":1,"losses":2}`))
	if err != nil {
		t.Fatalf("decodeTally: %v", err)
	}
	if got != (game.Tally{Wins: 1, Losses: 2, TotalGames: 3}) {
		t.Errorf("decodeTally = %+v", got)
	}
	if _, err := decodeTally([]byte(`{"wins":-1}`)); !errors.Is(err, game.ErrCorruptTally) {
		t.Errorf("expected ErrCorruptTally for negative counter, got %v", err)
	}
}

func TestBestEffort_SwallowsFailures(t *testing.T) {
	b := BestEffort{Store: failingStore{}}
	ctx := context.Background()

	if got := b.Load(ctx, "jankenStats"); got != (game.Tally{}) {
		t.Errorf("Load on failing store = %+v, want zero", got)
	}
	// Must not panic or surface anything
	b.Save(ctx, "jankenStats", sample)

	var none BestEffort
	if got := none.Load(ctx, "jankenStats"); got != (game.Tally{}) {
		t.Errorf("Load with nil store = %+v, want zero", got)
	}
	none.Save(ctx, "jankenStats", sample)
}

func TestBestEffort_PassesThrough(t *testing.T) {
	b := BestEffort{Store: NewMemoryStore()}
	ctx := context.Background()
	b.Save(ctx, "jankenStats", sample)
	if got := b.Load(ctx, "jankenStats"); got != sample {
		t.Errorf("Load = %+v, want %+v", got, sample)
	}
}

func TestSessionKey(t *testing.T) {
	if got := SessionKey("jankenStats", "abc"); got != "jankenStats:abc" {
		t.Errorf("SessionKey = %q", got)
	}
	if got := SessionKey("jankenStats", ""); got != "jankenStats" {
		t.Errorf("SessionKey with empty id = %q", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	cfg := config.Defaults()
	cfg.Store.Backend = config.BackendMemory
	s, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open memory: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", s)
	}

	cfg.Store.Backend = config.BackendFile
	cfg.Store.FilePath = filepath.Join(t.TempDir(), "stats.json")
	s, err = Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open file: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("expected *FileStore, got %T", s)
	}

	mr := miniredis.RunT(t)
	cfg.Store.Backend = config.BackendRedis
	cfg.Redis.Addr = mr.Addr()
	s, err = Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open redis: %v", err)
	}
	s.Close()

	cfg.Store.Backend = config.BackendPostgres
	cfg.DatabaseURL = ""
	if _, err := Open(ctx, cfg); err == nil {
		t.Error("expected error for postgres without DATABASE_URL")
	}

	cfg.Store.Backend = "etcd"
	if _, err := Open(ctx, cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}
