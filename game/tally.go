package game

import (
	"errors"
	"fmt"
)

// ErrCorruptTally is returned when a tally breaks its counting invariant.
var ErrCorruptTally = errors.New("corrupt tally")

// Tally is the running count of round outcomes.
// TotalGames always equals Wins + Losses + Draws.
type Tally struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Draws      int `json:"draws"`
	TotalGames int `json:"totalGames"`
}

// Record counts one round. The tally is left untouched if o is not a valid outcome.
func (t *Tally) Record(o Outcome) error {
	switch o {
	case Win:
		t.Wins++
	case Lose:
		t.Losses++
	case Draw:
		t.Draws++
	default:
		return fmt.Errorf("%w: %d", ErrInvalidOutcome, int(o))
	}
	t.TotalGames++
	return nil
}

// Reset zeroes every counter.
func (t *Tally) Reset() {
	*t = Tally{}
}

// Played reports whether at least one round has been recorded.
func (t Tally) Played() bool {
	return t.TotalGames > 0
}

// WinRate returns wins as a percentage of total games. ok is false when no games were played.
func (t Tally) WinRate() (rate float64, ok bool) {
	return t.rate(t.Wins)
}

// LossRate returns losses as a percentage of total games.
func (t Tally) LossRate() (rate float64, ok bool) {
	return t.rate(t.Losses)
}

// DrawRate returns draws as a percentage of total games.
func (t Tally) DrawRate() (rate float64, ok bool) {
	return t.rate(t.Draws)
}

func (t Tally) rate(n int) (float64, bool) {
	if t.TotalGames <= 0 {
		return 0, false
	}
	return float64(n) / float64(t.TotalGames) * 100, true
}

// Validate reports whether the counters are non-negative and add up to TotalGames.
func (t Tally) Validate() error {
	if t.Wins < 0 || t.Losses < 0 || t.Draws < 0 || t.TotalGames < 0 {
		return fmt.Errorf("%w: negative counter in %+v", ErrCorruptTally, t)
	}
	if t.Wins+t.Losses+t.Draws != t.TotalGames {
		return fmt.Errorf("%w: total %d != %d+%d+%d", ErrCorruptTally, t.TotalGames, t.Wins, t.Losses, t.Draws)
	}
	return nil
}

// Normalize repairs a tally read from storage. The total is recomputed from the
// three outcome counters; a negative counter cannot be repaired and is an error.
func (t *Tally) Normalize() error {
	if t.Wins < 0 || t.Losses < 0 || t.Draws < 0 {
		return fmt.Errorf("%w: negative counter in %+v", ErrCorruptTally, *t)
	}
	t.TotalGames = t.Wins + t.Losses + t.Draws
	return nil
}

// FormatRate renders a rate with one decimal ("50.0%"), or "-%" when there is no rate.
func FormatRate(rate float64, ok bool) string {
	if !ok {
		return "-%"
	}
	return fmt.Sprintf("%.1f%%", rate)
}
