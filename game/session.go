package game

import (
	"fmt"
	"math/rand/v2"
)

// Chooser picks the computer's hand for a round.
type Chooser interface {
	Choose() Hand
}

// RandomChooser draws uniformly from the three hands.
type RandomChooser struct {
	rng *rand.Rand
}

// NewRandomChooser returns a chooser using rng, or the global source when rng is nil.
func NewRandomChooser(rng *rand.Rand) *RandomChooser {
	return &RandomChooser{rng: rng}
}

// Choose returns a uniformly random hand.
func (c *RandomChooser) Choose() Hand {
	if c == nil || c.rng == nil {
		return Hands[rand.IntN(len(Hands))]
	}
	return Hands[c.rng.IntN(len(Hands))]
}

// Round is the result of one play.
type Round struct {
	Player   Hand    `json:"player"`
	Computer Hand    `json:"computer"`
	Outcome  Outcome `json:"outcome"`
}

// Summary is the one-line result shown in the browser, e.g. "🎉 あなたの勝ち！ グー vs チョキ".
func (r Round) Summary() string {
	vs := r.Player.DisplayName() + " vs " + r.Computer.DisplayName()
	switch r.Outcome {
	case Win:
		return "🎉 あなたの勝ち！ " + vs
	case Lose:
		return "😔 あなたの負け... " + vs
	default:
		return "🤝 引き分け！ " + vs
	}
}

// Session is one player's running game: the tally and the computer opponent.
// It is not safe for concurrent use; each surface owns its Session.
type Session struct {
	Tally   Tally
	chooser Chooser
}

// NewSession starts a session from an existing tally. A nil chooser means RandomChooser.
func NewSession(tally Tally, chooser Chooser) *Session {
	if chooser == nil {
		chooser = NewRandomChooser(nil)
	}
	return &Session{Tally: tally, chooser: chooser}
}

// Play draws the computer's hand, resolves the round and records it.
func (s *Session) Play(player Hand) (Round, error) {
	if !player.Valid() {
		return Round{}, fmt.Errorf("play: %w: %d", ErrInvalidHand, int(player))
	}
	computer := s.chooser.Choose()
	outcome, err := Resolve(player, computer)
	if err != nil {
		return Round{}, fmt.Errorf("play: %w", err)
	}
	if err := s.Tally.Record(outcome); err != nil {
		return Round{}, fmt.Errorf("play: %w", err)
	}
	return Round{Player: player, Computer: computer, Outcome: outcome}, nil
}

// Reset zeroes the session's tally.
func (s *Session) Reset() {
	s.Tally.Reset()
}
