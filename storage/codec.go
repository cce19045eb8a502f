package storage

import (
	"encoding/json"
	"fmt"

	"janken/game"
)

// encodeTally serializes a tally as {"wins":W,"losses":L,"draws":D,"totalGames":T}.
func encodeTally(t game.Tally) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(t)
}

// decodeTally parses a stored tally and repairs its total.
func decodeTally(data []byte) (game.Tally, error) {
	var t game.Tally
	if err := json.Unmarshal(data, &t); err != nil {
		return game.Tally{}, fmt.Errorf("decode tally: %w", err)
	}
	if err := t.Normalize(); err != nil {
		return game.Tally{}, fmt.Errorf("decode tally: %w", err)
	}
	return t, nil
}
