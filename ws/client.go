package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"janken/game"
	"janken/wsutil"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Time allowed for one tally write.
	saveTimeout = 2 * time.Second
)

// Client is a middleman between the websocket connection and the hub.
// Its Session is only touched from ReadPump, one event at a time.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
	Session   *game.Session
	storeKey  string
}

// ReadPump pumps messages from the websocket connection to the client's session.
// It runs in its own goroutine per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "tag", "ws", "session", c.SessionID, "err", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps messages from the send channel to the websocket connection.
// It runs in its own goroutine per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var envelope InboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	switch envelope.Type {
	case "key":
		c.handleKey(envelope.Raw)
	case "play":
		c.handlePlay(envelope.Raw)
	case "reset":
		c.handleReset(envelope.Raw)
	default:
		c.sendError("Unknown message type: " + envelope.Type)
	}
}

func (c *Client) handleKey(raw json.RawMessage) {
	var msg KeyMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid key message.")
		return
	}
	switch action, hand := MapKey(msg.Key); action {
	case KeyPlay:
		c.play(hand)
	case KeyReset:
		c.reset(false)
	}
}

func (c *Client) handlePlay(raw json.RawMessage) {
	var msg PlayMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid play message.")
		return
	}
	hand, err := game.ParseHand(msg.Hand)
	if err != nil {
		c.sendError("Unknown hand: " + msg.Hand)
		return
	}
	c.play(hand)
}

func (c *Client) handleReset(raw json.RawMessage) {
	var msg ResetMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendError("Invalid reset message.")
		return
	}
	c.reset(msg.Confirmed)
}

func (c *Client) play(hand game.Hand) {
	round, err := c.Session.Play(hand)
	if err != nil {
		slog.Error("play failed", "tag", "ws", "session", c.SessionID, "err", err)
		c.sendError("Could not play that hand.")
		return
	}
	c.save()
	slog.Debug("round played", "tag", "ws", "session", c.SessionID, "outcome", round.Outcome)
	c.sendJSON(buildState(c.Session.Tally, &round))
}

// reset zeroes the tally. With games on record the page must confirm first.
func (c *Client) reset(confirmed bool) {
	if c.Session.Tally.Played() && !confirmed {
		c.sendJSON(ConfirmResetMsg{Type: "confirm_reset", Message: confirmMessage})
		return
	}
	c.Session.Reset()
	c.save()
	c.sendJSON(buildState(c.Session.Tally, nil))
}

func (c *Client) save() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	c.Hub.Store.Save(ctx, c.storeKey, c.Session.Tally)
}

func (c *Client) sendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshaling message", "tag", "ws", "err", err)
		return
	}
	wsutil.SafeSend(c.Send, data)
}

func (c *Client) sendError(message string) {
	c.sendJSON(ErrorMsg{Type: "error", Message: message})
}
