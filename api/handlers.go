package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"janken/auth"
	"janken/game"
	"janken/storage"
)

const bearerPrefix = "Bearer "

// Handler holds dependencies for API handlers.
type Handler struct {
	Signer   *auth.Signer
	Store    storage.BestEffort
	StoreKey string
}

// NewHandler creates a new API handler with the given dependencies.
func NewHandler(signer *auth.Signer, store storage.TallyStore, storeKey string) *Handler {
	return &Handler{
		Signer:   signer,
		Store:    storage.BestEffort{Store: store},
		StoreKey: storeKey,
	}
}

// CORS sets CORS headers on the response. Call before writing body.
func CORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return true
	}
	return false
}

// bearerToken returns the token from the Authorization header, or empty string.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(bearerPrefix):])
}

// extractSession validates the Authorization header. ok is false when it is missing or invalid.
func (h *Handler) extractSession(r *http.Request) (auth.Session, bool) {
	token := bearerToken(r)
	if token == "" {
		return auth.Session{}, false
	}
	sess, err := h.Signer.Validate(token)
	if err != nil {
		slog.Debug("rejecting session token", "tag", "api", "err", err)
		return auth.Session{}, false
	}
	return sess, true
}

// SessionResponse is the JSON structure for POST /api/session.
type SessionResponse struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Session issues a session token. A valid bearer token is renewed for the same
// session so the stored tally carries over; otherwise a new session starts.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		sess  auth.Session
		token string
		err   error
	)
	if existing, ok := h.extractSession(r); ok {
		sess, token, err = h.Signer.Issue(existing.ID)
	} else {
		sess, token, err = h.Signer.NewSession()
	}
	if err != nil {
		slog.Error("issuing session", "tag", "api", "err", err)
		http.Error(w, "failed to issue session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, SessionResponse{SessionID: sess.ID, Token: token, ExpiresAt: sess.ExpiresAt})
}

// StatsResponse is the JSON structure for GET /api/stats.
type StatsResponse struct {
	Tally    game.Tally `json:"tally"`
	WinRate  string     `json:"winRate"`
	LossRate string     `json:"lossRate"`
	DrawRate string     `json:"drawRate"`
}

// Stats returns the stored tally for the authenticated session.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := h.extractSession(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	tally := h.Store.Load(r.Context(), storage.SessionKey(h.StoreKey, sess.ID))
	writeJSON(w, StatsResponse{
		Tally:    tally,
		WinRate:  game.FormatRate(tally.WinRate()),
		LossRate: game.FormatRate(tally.LossRate()),
		DrawRate: game.FormatRate(tally.DrawRate()),
	})
}

// Rule is one line of the rules: Hand beats Beats.
type Rule struct {
	Hand  game.Hand `json:"hand"`
	Emoji string    `json:"emoji"`
	Name  string    `json:"name"`
	Beats game.Hand `json:"beats"`
}

// Rules returns the dominance relation between hands.
func (h *Handler) Rules(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rules := make([]Rule, 0, len(game.Hands))
	for _, hand := range game.Hands {
		beaten, _ := hand.Beats()
		rules = append(rules, Rule{Hand: hand, Emoji: hand.Emoji(), Name: hand.DisplayName(), Beats: beaten})
	}
	writeJSON(w, rules)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encoding response", "tag", "api", "err", err)
	}
}
