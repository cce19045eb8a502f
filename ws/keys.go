package ws

import (
	"strings"

	"janken/game"
)

// KeyAction is what a keyboard key does on the page.
type KeyAction int

const (
	KeyIgnored KeyAction = iota
	KeyPlay
	KeyReset
)

// MapKey translates a KeyboardEvent.key value: r/1 rock, p/2 paper, s/3 scissors,
// space or escape reset. Matching is case-insensitive; other keys are ignored.
func MapKey(key string) (KeyAction, game.Hand) {
	switch strings.ToLower(key) {
	case "r", "1":
		return KeyPlay, game.Rock
	case "p", "2":
		return KeyPlay, game.Paper
	case "s", "3":
		return KeyPlay, game.Scissors
	case " ", "space", "spacebar", "escape", "esc":
		return KeyReset, 0
	default:
		return KeyIgnored, 0
	}
}
