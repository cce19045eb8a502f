package game

import (
	"errors"
	"fmt"
)

// ErrInvalidOutcome is returned when a value outside win/lose/draw is recorded.
var ErrInvalidOutcome = errors.New("invalid outcome")

// Outcome is the result of a round from the player's point of view.
type Outcome int

const (
	Win Outcome = iota + 1
	Lose
	Draw
)

// Valid reports whether o is win, lose or draw.
func (o Outcome) Valid() bool {
	return o == Win || o == Lose || o == Draw
}

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(o))
	}
	return []byte(o.String()), nil
}

// Resolve decides the outcome of player against computer.
// Equal hands draw; otherwise the player wins iff their hand beats the computer's.
func Resolve(player, computer Hand) (Outcome, error) {
	if !player.Valid() {
		return 0, fmt.Errorf("player: %w: %d", ErrInvalidHand, int(player))
	}
	if !computer.Valid() {
		return 0, fmt.Errorf("computer: %w: %d", ErrInvalidHand, int(computer))
	}
	if player == computer {
		return Draw, nil
	}
	if beats[player] == computer {
		return Win, nil
	}
	return Lose, nil
}
