package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHand is returned when a value outside rock/paper/scissors is used as a hand.
var ErrInvalidHand = errors.New("invalid hand")

// Hand is one of rock, paper or scissors. The zero value is not a valid hand.
type Hand int

const (
	Rock Hand = iota + 1
	Paper
	Scissors
)

// Hands lists every valid hand in menu order.
var Hands = []Hand{Rock, Paper, Scissors}

// beats maps each hand to the hand it defeats.
var beats = map[Hand]Hand{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// Valid reports whether h is one of the three hands.
func (h Hand) Valid() bool {
	_, ok := beats[h]
	return ok
}

// Beats returns the hand that h defeats.
func (h Hand) Beats() (Hand, error) {
	target, ok := beats[h]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidHand, int(h))
	}
	return target, nil
}

// String returns the wire name of the hand.
func (h Hand) String() string {
	switch h {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "unknown"
	}
}

// Emoji returns the glyph shown for the hand.
func (h Hand) Emoji() string {
	switch h {
	case Rock:
		return "✊"
	case Paper:
		return "✋"
	case Scissors:
		return "✌️"
	default:
		return "❓"
	}
}

// DisplayName returns the Japanese name of the hand (グー, パー, チョキ).
func (h Hand) DisplayName() string {
	switch h {
	case Rock:
		return "グー"
	case Paper:
		return "パー"
	case Scissors:
		return "チョキ"
	default:
		return "?"
	}
}

// Label returns "emoji name", as used in menus and result lines.
func (h Hand) Label() string {
	return h.Emoji() + " " + h.DisplayName()
}

// ParseHand converts a wire name ("rock", "paper", "scissors") into a Hand.
func ParseHand(s string) (Hand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock":
		return Rock, nil
	case "paper":
		return Paper, nil
	case "scissors":
		return Scissors, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidHand, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (h Hand) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHand, int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hand) UnmarshalText(text []byte) error {
	parsed, err := ParseHand(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
