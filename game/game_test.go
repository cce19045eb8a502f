package game

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"
)

// fixedChooser always returns the same hand.
type fixedChooser struct {
	hand Hand
}

func (f fixedChooser) Choose() Hand { return f.hand }

// sequenceChooser returns hands in order, cycling.
type sequenceChooser struct {
	hands []Hand
	next  int
}

func (s *sequenceChooser) Choose() Hand {
	h := s.hands[s.next%len(s.hands)]
	s.next++
	return h
}

func TestResolve_SameHandDraws(t *testing.T) {
	for _, h := range Hands {
		got, err := Resolve(h, h)
		if err != nil {
			t.Fatalf("Resolve(%v, %v): unexpected error %v", h, h, err)
		}
		if got != Draw {
			t.Errorf("Resolve(%v, %v) = %v, want draw", h, h, got)
		}
	}
}

func TestResolve_ExactlyOneWinnerPerPair(t *testing.T) {
	for _, a := range Hands {
		for _, b := range Hands {
			if a == b {
				continue
			}
			ab, err := Resolve(a, b)
			if err != nil {
				t.Fatalf("Resolve(%v, %v): %v", a, b, err)
			}
			ba, err := Resolve(b, a)
			if err != nil {
				t.Fatalf("Resolve(%v, %v): %v", b, a, err)
			}
			if (ab == Win) == (ba == Win) {
				t.Errorf("pair (%v, %v): expected exactly one winner, got %v and %v", a, b, ab, ba)
			}
			if ab == Draw || ba == Draw {
				t.Errorf("pair (%v, %v): distinct hands must not draw", a, b)
			}
		}
	}
}

func TestResolve_FollowsCycle(t *testing.T) {
	// rock -> scissors -> paper -> rock
	cycle := []Hand{Rock, Scissors, Paper}
	for i, h := range cycle {
		victim := cycle[(i+1)%len(cycle)]
		target, err := h.Beats()
		if err != nil {
			t.Fatalf("%v.Beats(): %v", h, err)
		}
		if target != victim {
			t.Errorf("%v should beat %v, table says %v", h, victim, target)
		}
		got, _ := Resolve(h, victim)
		if got != Win {
			t.Errorf("Resolve(%v, %v) = %v, want win", h, victim, got)
		}
	}
}

func TestResolve_Scenarios(t *testing.T) {
	tests := []struct {
		player, computer Hand
		want             Outcome
	}{
		{Rock, Scissors, Win},
		{Rock, Paper, Lose},
		{Scissors, Scissors, Draw},
		{Paper, Rock, Win},
		{Scissors, Rock, Lose},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.player, tt.computer)
		if err != nil {
			t.Fatalf("Resolve(%v, %v): %v", tt.player, tt.computer, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(%v, %v) = %v, want %v", tt.player, tt.computer, got, tt.want)
		}
	}
}

func TestResolve_RejectsInvalidHand(t *testing.T) {
	if _, err := Resolve(Hand(0), Rock); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("zero player hand: expected ErrInvalidHand, got %v", err)
	}
	if _, err := Resolve(Rock, Hand(7)); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("out-of-range computer hand: expected ErrInvalidHand, got %v", err)
	}
	if _, err := Hand(-1).Beats(); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("Beats on invalid hand: expected ErrInvalidHand, got %v", err)
	}
}

func TestParseHand(t *testing.T) {
	for _, h := range Hands {
		got, err := ParseHand(h.String())
		if err != nil {
			t.Fatalf("ParseHand(%q): %v", h.String(), err)
		}
		if got != h {
			t.Errorf("ParseHand(%q) = %v, want %v", h.String(), got, h)
		}
	}
	if got, err := ParseHand("  Paper "); err != nil || got != Paper {
		t.Errorf("ParseHand with spaces and case: got %v, %v", got, err)
	}
	if _, err := ParseHand("lizard"); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("ParseHand(lizard): expected ErrInvalidHand, got %v", err)
	}
}

func TestRoundJSON(t *testing.T) {
	data, err := json.Marshal(Round{Player: Rock, Computer: Scissors, Outcome: Win})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"player":"rock","computer":"scissors","outcome":"win"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
	if _, err := json.Marshal(Round{}); err == nil {
		t.Error("expected error marshaling a round with zero hands")
	}
}

func TestTally_RecordKeepsInvariant(t *testing.T) {
	var tally Tally
	outcomes := []Outcome{Win, Lose, Draw, Win, Draw, Draw, Lose}
	for i, o := range outcomes {
		if err := tally.Record(o); err != nil {
			t.Fatalf("Record(%v): %v", o, err)
		}
		if tally.TotalGames != i+1 {
			t.Errorf("after %d rounds TotalGames=%d", i+1, tally.TotalGames)
		}
		if err := tally.Validate(); err != nil {
			t.Errorf("after %d rounds: %v", i+1, err)
		}
	}
}

func TestTally_RecordRejectsInvalidOutcome(t *testing.T) {
	tally := Tally{Wins: 1, TotalGames: 1}
	if err := tally.Record(Outcome(0)); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected ErrInvalidOutcome, got %v", err)
	}
	if tally != (Tally{Wins: 1, TotalGames: 1}) {
		t.Errorf("tally changed on invalid outcome: %+v", tally)
	}
}

func TestTally_ScenarioWinRate(t *testing.T) {
	var tally Tally
	for _, o := range []Outcome{Win, Lose, Draw, Win} {
		if err := tally.Record(o); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	want := Tally{Wins: 2, Losses: 1, Draws: 1, TotalGames: 4}
	if tally != want {
		t.Errorf("got %+v, want %+v", tally, want)
	}
	rate, ok := tally.WinRate()
	if !ok || rate != 50.0 {
		t.Errorf("WinRate() = %v, %v; want 50, true", rate, ok)
	}
	if got := FormatRate(tally.WinRate()); got != "50.0%" {
		t.Errorf("FormatRate = %q, want 50.0%%", got)
	}
}

func TestTally_ZeroGamesRate(t *testing.T) {
	var tally Tally
	rate, ok := tally.WinRate()
	if ok || rate != 0 {
		t.Errorf("WinRate() on empty tally = %v, %v; want 0, false", rate, ok)
	}
	if got := FormatRate(tally.WinRate()); got != "-%" {
		t.Errorf("FormatRate on empty tally = %q, want -%%", got)
	}
	if tally.Played() {
		t.Error("empty tally should not report Played")
	}
}

func TestTally_Reset(t *testing.T) {
	tally := Tally{Wins: 3, Losses: 2, Draws: 1, TotalGames: 6}
	tally.Reset()
	if tally != (Tally{}) {
		t.Errorf("Reset left %+v", tally)
	}
	tally.Reset()
	if tally != (Tally{}) {
		t.Errorf("Reset on zero tally left %+v", tally)
	}
}

func TestTally_ValidateAndNormalize(t *testing.T) {
	bad := Tally{Wins: 1, Losses: 1, Draws: 0, TotalGames: 5}
	if err := bad.Validate(); !errors.Is(err, ErrCorruptTally) {
		t.Errorf("expected ErrCorruptTally for mismatched total, got %v", err)
	}
	if err := bad.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if bad.TotalGames != 2 {
		t.Errorf("Normalize should recompute total, got %d", bad.TotalGames)
	}

	negative := Tally{Wins: -1}
	if err := negative.Normalize(); !errors.Is(err, ErrCorruptTally) {
		t.Errorf("expected ErrCorruptTally for negative counter, got %v", err)
	}
}

func TestRandomChooser_Uniform(t *testing.T) {
	c := NewRandomChooser(rand.New(rand.NewPCG(1, 2)))
	counts := make(map[Hand]int)
	const n = 3000
	for i := 0; i < n; i++ {
		h := c.Choose()
		if !h.Valid() {
			t.Fatalf("chooser returned invalid hand %d", int(h))
		}
		counts[h]++
	}
	for _, h := range Hands {
		if counts[h] < 800 || counts[h] > 1200 {
			t.Errorf("hand %v drawn %d times out of %d; expected roughly a third", h, counts[h], n)
		}
	}
}

func TestRandomChooser_NilSource(t *testing.T) {
	var c *RandomChooser
	if h := c.Choose(); !h.Valid() {
		t.Errorf("nil chooser returned invalid hand %d", int(h))
	}
}

func TestSession_PlayRecordsRounds(t *testing.T) {
	s := NewSession(Tally{}, &sequenceChooser{hands: []Hand{Scissors, Paper, Rock, Scissors}})
	plays := []Hand{Rock, Rock, Rock, Rock}
	want := []Outcome{Win, Lose, Draw, Win}
	for i, p := range plays {
		round, err := s.Play(p)
		if err != nil {
			t.Fatalf("Play(%v): %v", p, err)
		}
		if round.Outcome != want[i] {
			t.Errorf("round %d: got %v, want %v", i, round.Outcome, want[i])
		}
	}
	if s.Tally != (Tally{Wins: 2, Losses: 1, Draws: 1, TotalGames: 4}) {
		t.Errorf("unexpected tally %+v", s.Tally)
	}
	s.Reset()
	if s.Tally != (Tally{}) {
		t.Errorf("Reset left %+v", s.Tally)
	}
}

func TestSession_PlayRejectsInvalidHand(t *testing.T) {
	s := NewSession(Tally{}, fixedChooser{hand: Rock})
	if _, err := s.Play(Hand(0)); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("expected ErrInvalidHand, got %v", err)
	}
	if s.Tally.Played() {
		t.Error("invalid play must not be recorded")
	}
}

func TestRoundSummary(t *testing.T) {
	r := Round{Player: Rock, Computer: Scissors, Outcome: Win}
	if got, want := r.Summary(), "🎉 あなたの勝ち！ グー vs チョキ"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	r = Round{Player: Paper, Computer: Paper, Outcome: Draw}
	if got, want := r.Summary(), "🤝 引き分け！ パー vs パー"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
