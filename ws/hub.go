package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"janken/auth"
	"janken/game"
	"janken/gameerrors"
	"janken/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development; restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TokenValidator resolves a session token to its session.
type TokenValidator interface {
	Validate(token string) (auth.Session, error)
}

// Hub maintains the set of active clients.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Store      storage.BestEffort
	StoreKey   string
	Tokens     TokenValidator
	// NewChooser returns the computer opponent for a new connection; nil means uniform random.
	NewChooser func() game.Chooser

	// done is closed when Run returns; sends on Register/Unregister give up after that.
	done chan struct{}
}

// NewHub creates a new Hub. Tallies are stored under storage.SessionKey(storeKey, sessionID).
func NewHub(store storage.TallyStore, storeKey string, tokens TokenValidator) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		Store:      storage.BestEffort{Store: store},
		StoreKey:   storeKey,
		Tokens:     tokens,
	}
}

// Run starts the hub's main loop. Should be run as a goroutine.
// When ctx is cancelled (e.g. on server shutdown), Run returns and no longer accepts new registrations.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received, stopping", "tag", "ws")
			return
		case client := <-h.Register:
			h.Clients[client] = true
			slog.Info("client connected", "tag", "ws", "session", client.SessionID, "clients", len(h.Clients))

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				slog.Info("client disconnected", "tag", "ws", "session", client.SessionID, "clients", len(h.Clients))
			}
		}
	}
}

// ServeWS authenticates the session token from the "token" query parameter,
// restores the session's tally and upgrades the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Tokens.Validate(r.URL.Query().Get("token"))
	if err != nil {
		if !errors.Is(err, gameerrors.ErrInvalidToken) {
			slog.Error("validating session token", "tag", "ws", "err", err)
		}
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade error", "tag", "ws", "err", err)
		return
	}

	var chooser game.Chooser
	if h.NewChooser != nil {
		chooser = h.NewChooser()
	}
	key := storage.SessionKey(h.StoreKey, sess.ID)
	client := &Client{
		Hub:       h,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: sess.ID,
		Session:   game.NewSession(h.Store.Load(r.Context(), key), chooser),
		storeKey:  key,
	}

	select {
	case h.Register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	client.sendJSON(buildState(client.Session.Tally, nil))

	go client.WritePump()
	go client.ReadPump()
}

// unregister removes c from the hub, or returns at once if the hub has stopped.
func (h *Hub) unregister(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}
