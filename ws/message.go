package ws

import (
	"encoding/json"

	"janken/game"
)

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// KeyMsg forwards a keydown from the page. Key is the DOM KeyboardEvent.key value.
type KeyMsg struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

// PlayMsg is sent when a hand button is clicked.
type PlayMsg struct {
	Type string `json:"type"`
	Hand string `json:"hand"`
}

// ResetMsg asks to zero the tally. Confirmed is set once the player accepted the dialog.
type ResetMsg struct {
	Type      string `json:"type"`
	Confirmed bool   `json:"confirmed"`
}

// --- Server-to-Client messages ---

// StateMsg is the full view the page renders: both glyph slots, the result line and the counters.
type StateMsg struct {
	Type         string     `json:"type"`
	PlayerHand   string     `json:"playerHand"`
	ComputerHand string     `json:"computerHand"`
	Outcome      string     `json:"outcome,omitempty"`
	Message      string     `json:"message"`
	Tally        game.Tally `json:"tally"`
	WinRate      string     `json:"winRate"`
}

// ConfirmResetMsg asks the page to show the reset confirmation dialog.
type ConfirmResetMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ErrorMsg is sent when a client action is invalid.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const (
	placeholderGlyph = "❓"
	promptMessage    = "手を選んでゲームを開始しましょう！"
	confirmMessage   = "スコアをリセットしますか？"
)

// buildState renders the tally and, when round is non-nil, the round just played.
func buildState(tally game.Tally, round *game.Round) StateMsg {
	msg := StateMsg{
		Type:         "state",
		PlayerHand:   placeholderGlyph,
		ComputerHand: placeholderGlyph,
		Message:      promptMessage,
		Tally:        tally,
		WinRate:      game.FormatRate(tally.WinRate()),
	}
	if round != nil {
		msg.PlayerHand = round.Player.Emoji()
		msg.ComputerHand = round.Computer.Emoji()
		msg.Outcome = round.Outcome.String()
		msg.Message = round.Summary()
	}
	return msg
}
