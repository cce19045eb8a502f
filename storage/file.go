package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"janken/game"
)

// FileStore keeps all tallies in one JSON object on disk, keyed like the browser's local storage.
// Writes go to a temporary file that is renamed over the original.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file and its directory are created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the tally stored under key.
func (s *FileStore) Load(_ context.Context, key string) (game.Tally, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return game.Tally{}, false, err
	}
	raw, ok := entries[key]
	if !ok {
		return game.Tally{}, false, nil
	}
	t, err := decodeTally(raw)
	if err != nil {
		return game.Tally{}, false, err
	}
	return t, true, nil
}

// Save stores tally under key, keeping every other key in the file.
func (s *FileStore) Save(_ context.Context, key string, tally game.Tally) error {
	data, err := encodeTally(tally)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		// An unreadable file is overwritten.
		entries = make(map[string]json.RawMessage)
	}
	entries[key] = data
	return s.writeAll(entries)
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) readAll() (map[string]json.RawMessage, error) {
	entries := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entries, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	// A literal null decodes to a nil map.
	if entries == nil {
		entries = make(map[string]json.RawMessage)
	}
	return entries, nil
}

func (s *FileStore) writeAll(entries map[string]json.RawMessage) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".janken-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
