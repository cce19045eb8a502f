// Package cli is the interactive terminal surface: a menu loop over one game.Session.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"janken/game"
	"janken/gameerrors"
	"janken/prompt"
	"janken/storage"
)

// Menu actions.
const (
	actionPlay  = "play"
	actionStats = "stats"
	actionRules = "rules"
	actionReset = "reset"
	actionQuit  = "quit"
)

var menuChoices = []prompt.Choice{
	{Label: "🎯 ゲームを開始", Value: actionPlay},
	{Label: "📊 統計を表示", Value: actionStats},
	{Label: "📖 ルールを確認", Value: actionRules},
	{Label: "🔄 統計をリセット", Value: actionReset},
	{Label: "👋 ゲームを終了", Value: actionQuit},
}

// errQuit ends the menu loop normally.
var errQuit = errors.New("quit")

// Options configures an App.
type Options struct {
	Out      io.Writer
	Prompter prompt.Prompter
	// Chooser picks the computer's hand; nil means uniform random.
	Chooser game.Chooser
	// Store and StoreKey enable best-effort persistence of the tally. A nil Store keeps the tally in memory only.
	Store    storage.TallyStore
	StoreKey string
	// Pause is shown after declining another round, before the menu returns.
	Pause time.Duration
}

// App runs the terminal game.
type App struct {
	out      io.Writer
	prompter prompt.Prompter
	session  *game.Session
	chooser  game.Chooser
	store    storage.BestEffort
	storeKey string
	pause    time.Duration
	styles   Styles
	sleep    func(context.Context, time.Duration)
}

// New creates an App. The tally is loaded from the store when Run starts.
func New(opts Options) *App {
	return &App{
		out:      opts.Out,
		prompter: opts.Prompter,
		chooser:  opts.Chooser,
		store:    storage.BestEffort{Store: opts.Store},
		storeKey: opts.StoreKey,
		pause:    opts.Pause,
		styles:   NewStyles(lipgloss.NewRenderer(opts.Out)),
		sleep:    sleepCtx,
	}
}

// Tally returns the current tally.
func (a *App) Tally() game.Tally {
	if a.session == nil {
		return game.Tally{}
	}
	return a.session.Tally
}

// Run shows the welcome banner and loops over the main menu until the player quits.
// It returns nil on quit, gameerrors.ErrInterrupted after Ctrl+C or cancellation
// (the interrupted message is already printed), and gameerrors.ErrNotTerminal when
// prompts cannot run. Other errors are reported and the menu is shown again.
func (a *App) Run(ctx context.Context) error {
	a.session = game.NewSession(a.loadTally(ctx), a.chooser)
	a.printWelcome()

	for {
		err := a.step(ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, errQuit):
			a.printGoodbye()
			return nil
		case errors.Is(err, gameerrors.ErrNotTerminal):
			PrintNotTerminal(a.out)
			return err
		case errors.Is(err, gameerrors.ErrInterrupted):
			a.printInterrupted()
			return err
		default:
			slog.Error("menu action failed", "tag", "cli", "err", err)
			fmt.Fprintln(a.out, a.styles.Danger.Render("✗ エラーが発生しました: "+err.Error()))
		}
	}
}

func (a *App) step(ctx context.Context) error {
	if ctx.Err() != nil {
		return gameerrors.ErrInterrupted
	}
	fmt.Fprintln(a.out)
	action, err := a.prompter.Select(ctx, a.styles.Heading.Render("何をしますか？"), menuChoices)
	if err != nil {
		return err
	}
	switch action {
	case actionPlay:
		return a.playRounds(ctx)
	case actionStats:
		a.printStats()
		return a.waitForEnter(ctx)
	case actionRules:
		a.printRules()
		return a.waitForEnter(ctx)
	case actionReset:
		return a.confirmReset(ctx)
	case actionQuit:
		return errQuit
	default:
		return fmt.Errorf("unknown menu action %q", action)
	}
}

// playRounds plays rounds until the player declines to continue.
func (a *App) playRounds(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, a.styles.Success.Render("🎲 ラウンド開始！"))
		fmt.Fprintln(a.out)

		value, err := a.prompter.Select(ctx, a.styles.Warning.Render("あなたの手を選んでください:"), handChoices())
		if err != nil {
			return err
		}
		hand, err := game.ParseHand(value)
		if err != nil {
			return err
		}
		round, err := a.session.Play(hand)
		if err != nil {
			return err
		}
		a.saveTally(ctx)
		slog.Debug("round played", "tag", "cli", "player", round.Player, "computer", round.Computer, "outcome", round.Outcome)
		a.printRound(round)

		fmt.Fprintln(a.out)
		again, err := a.prompter.Confirm(ctx, a.styles.Heading.Render("もう一度プレイしますか？"), true)
		if err != nil {
			return err
		}
		if !again {
			fmt.Fprintln(a.out)
			fmt.Fprintln(a.out, a.styles.Muted.Render("メインメニューに戻ります..."))
			a.sleep(ctx, a.pause)
			return nil
		}
	}
}

func (a *App) confirmReset(ctx context.Context) error {
	ok, err := a.prompter.Confirm(ctx, a.styles.Danger.Render("本当に統計をリセットしますか？"), false)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	if !ok {
		fmt.Fprintln(a.out, a.styles.Warning.Render("❌ リセットがキャンセルされました。"))
		return nil
	}
	a.session.Reset()
	a.saveTally(ctx)
	fmt.Fprintln(a.out, a.styles.Success.Render("✅ 統計がリセットされました！"))
	return nil
}

func (a *App) waitForEnter(ctx context.Context) error {
	_, err := a.prompter.Input(ctx, a.styles.Muted.Render("エンターキーを押して続行..."))
	return err
}

func (a *App) loadTally(ctx context.Context) game.Tally {
	if a.storeKey == "" {
		return game.Tally{}
	}
	return a.store.Load(ctx, a.storeKey)
}

func (a *App) saveTally(ctx context.Context) {
	if a.storeKey == "" {
		return
	}
	a.store.Save(ctx, a.storeKey, a.session.Tally)
}

func handChoices() []prompt.Choice {
	choices := make([]prompt.Choice, 0, len(game.Hands))
	for _, h := range game.Hands {
		choices = append(choices, prompt.Choice{Label: h.Label(), Value: h.String()})
	}
	return choices
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
