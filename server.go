package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"janken/api"
	"janken/auth"
	"janken/config"
	"janken/game"
	"janken/storage"
	"janken/web"
	"janken/ws"
)

const shutdownTimeout = 5 * time.Second

// newMux wires the page, the JSON API and the WebSocket endpoint onto one mux.
// chooser builds the computer opponent per connection; nil means uniform random.
func newMux(cfg *config.Config, store storage.TallyStore, signer *auth.Signer, chooser func() game.Chooser) (*http.ServeMux, *ws.Hub) {
	hub := ws.NewHub(store, cfg.Store.Key, signer)
	hub.NewChooser = chooser

	h := api.NewHandler(signer, store, cfg.Store.Key)

	mux := http.NewServeMux()
	mux.Handle("/", web.Handler())
	mux.HandleFunc("/api/session", h.Session)
	mux.HandleFunc("/api/stats", h.Stats)
	mux.HandleFunc("/api/rules", h.Rules)
	mux.HandleFunc("/ws", hub.ServeWS)
	return mux, hub
}

func runServe(ctx context.Context, cfg *config.Config) error {
	setupLogging(cfg, false)

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set; tokens will not survive a restart", "tag", "server")
	}
	signer, err := auth.NewSigner(cfg.SessionSecret, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	if err != nil {
		return err
	}

	mux, hub := newMux(cfg, store, signer, nil)
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("janken server listening", "tag", "server", "addr", srv.Addr, "store", cfg.Store.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down", "tag", "server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
