package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"janken/cli"
	"janken/config"
	"janken/gameerrors"
	"janken/loghandler"
	"janken/prompt"
	"janken/storage"
)

// terminalStoreKey scopes the terminal tally away from browser sessions.
const terminalStoreKey = "terminal"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, gameerrors.ErrInterrupted):
		return 0
	default:
		return 1
	}
}

type rootOptions struct {
	configPath string
	plain      bool
	persist    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "janken",
		Short:         "Rock-paper-scissors against the computer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
			}
			cfg = config.Load(opts.configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), cfg, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (json, yaml or toml)")

	play := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), cfg, opts)
		},
	}
	for _, c := range []*cobra.Command{root, play} {
		c.Flags().BoolVar(&opts.plain, "plain", false, "line-based prompts instead of the interactive menu")
		c.Flags().BoolVar(&opts.persist, "persist", false, "keep the terminal tally in the configured store")
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser game over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	doctor := &cobra.Command{
		Use:   "doctor",
		Short: "Check whether this terminal can run the game",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), cfg)
		},
	}

	root.AddCommand(play, serve, doctor)
	return root
}

// setupLogging installs the compact handler as the default logger.
// The terminal surfaces never log below warn so records do not interleave with prompts.
func setupLogging(cfg *config.Config, terminal bool) {
	level := cfg.SlogLevel()
	if terminal && level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stderr, level)))
}

func runPlay(ctx context.Context, cfg *config.Config, opts *rootOptions) error {
	setupLogging(cfg, true)

	var p prompt.Prompter
	if opts.plain {
		p = prompt.NewLinePrompter(os.Stdin, os.Stdout)
	} else {
		tp, err := prompt.NewTerminalPrompter(os.Stdin, os.Stdout)
		if err != nil {
			cli.PrintNotTerminal(os.Stdout)
			return err
		}
		p = tp
	}

	appOpts := cli.Options{
		Out:      os.Stdout,
		Prompter: p,
		Pause:    time.Duration(cfg.ContinuePauseMS) * time.Millisecond,
	}
	if opts.persist || cfg.PersistTerminal {
		store, err := storage.Open(ctx, cfg)
		if err != nil {
			slog.Warn("persistence disabled", "tag", "cli", "err", err)
		} else {
			defer store.Close()
			appOpts.Store = store
			appOpts.StoreKey = storage.SessionKey(cfg.Store.Key, terminalStoreKey)
		}
	}

	return cli.New(appOpts).Run(ctx)
}

func runDoctor(ctx context.Context, cfg *config.Config) error {
	setupLogging(cfg, true)

	opts := cli.DoctorOptions{
		Out:    os.Stdout,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
	if p, err := prompt.NewTerminalPrompter(os.Stdin, os.Stdout); err == nil {
		opts.Prompter = p
	}
	return cli.RunDoctor(ctx, opts)
}
