package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"janken/game"
	"janken/gameerrors"
	"janken/prompt"
)

// DoctorOptions configures RunDoctor.
type DoctorOptions struct {
	Out io.Writer
	// Stdin and Stdout are inspected for terminal support; they may be nil.
	Stdin, Stdout *os.File
	Prompter      prompt.Prompter
	Chooser       game.Chooser
	Getenv        func(string) string
	Getwd         func() (string, error)
}

// RunDoctor reports whether the terminal can host the game: environment, colour
// support and an interactive prompt check followed by one test round.
func RunDoctor(ctx context.Context, opts DoctorOptions) error {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Getwd == nil {
		opts.Getwd = os.Getwd
	}
	r := lipgloss.NewRenderer(opts.Out)
	s := NewStyles(r)
	out := opts.Out

	fmt.Fprintln(out, "🎮 じゃんけんゲーム (診断モード)")
	fmt.Fprintln(out, "═══════════════════════════════")
	fmt.Fprintln(out, "Go バージョン:", runtime.Version())
	fmt.Fprintln(out, "プラットフォーム:", runtime.GOOS+"/"+runtime.GOARCH)
	fmt.Fprintln(out, "ターミナル情報:")
	fmt.Fprintln(out, "- stdout.isTTY:", prompt.IsTerminal(opts.Stdout))
	fmt.Fprintln(out, "- stdin.isTTY:", prompt.IsTerminal(opts.Stdin))
	fmt.Fprintln(out, "- TERM環境変数:", opts.Getenv("TERM"))
	fmt.Fprintln(out, "- カラープロファイル:", profileName(r.ColorProfile()))
	fmt.Fprintln(out, s.Success.Render("✅ カラー出力ライブラリ: 正常"))

	if opts.Prompter == nil {
		fmt.Fprintln(out, s.Danger.Render("❌ 対話型入力ライブラリエラー: "+gameerrors.ErrNotTerminal.Error()))
		printHints(out)
		return gameerrors.ErrNotTerminal
	}
	fmt.Fprintln(out, s.Success.Render("✅ 対話型入力ライブラリ: 正常"))

	fmt.Fprintln(out, "\n--- シンプルな対話テスト ---")
	err := doctorPrompts(ctx, opts, s)
	switch {
	case err == nil:
	case errors.Is(err, gameerrors.ErrInterrupted):
		return err
	default:
		fmt.Fprintln(out, s.Danger.Render("❌ エラーが発生しました: "+err.Error()))
		printHints(out)
	}

	fmt.Fprintln(out, "\n--- 環境情報 ---")
	if wd, werr := opts.Getwd(); werr == nil {
		fmt.Fprintln(out, "現在の作業ディレクトリ:", wd)
	}
	return err
}

func doctorPrompts(ctx context.Context, opts DoctorOptions, s Styles) error {
	out := opts.Out
	ok, err := opts.Prompter.Confirm(ctx, "画面は正常に表示されていますか？", true)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, s.Danger.Render("❌ 対話型入力が正常に動作していません。"))
		printHints(out)
		return nil
	}
	fmt.Fprintln(out, s.Success.Render("✅ 対話型入力は正常に動作しています！"))

	fmt.Fprintln(out, "\n--- じゃんけんテスト ---")
	value, err := opts.Prompter.Select(ctx, "あなたの手を選んでください:", handChoices())
	if err != nil {
		return err
	}
	hand, err := game.ParseHand(value)
	if err != nil {
		return err
	}
	round, err := game.NewSession(game.Tally{}, opts.Chooser).Play(hand)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n"+s.Bold.Render("結果:"))
	fmt.Fprintln(out, "あなた:", round.Player.Label())
	fmt.Fprintln(out, "コンピューター:", round.Computer.Label())
	switch round.Outcome {
	case game.Win:
		fmt.Fprintln(out, s.Success.Render("🎉 あなたの勝ちです！"))
	case game.Lose:
		fmt.Fprintln(out, s.Danger.Render("😔 あなたの負けです..."))
	default:
		fmt.Fprintln(out, s.Warning.Render("🤝 引き分けです！"))
	}
	fmt.Fprintln(out, "\n"+s.Info.Render("テスト完了！メインアプリも正常に動作するはずです。"))
	return nil
}

func printHints(out io.Writer) {
	fmt.Fprintln(out, "解決方法:")
	fmt.Fprintln(out, "1. 対話型のターミナルで直接実行してください (パイプやリダイレクトを外す)")
	fmt.Fprintln(out, "2. TERM 環境変数が設定されているか確認してください")
	fmt.Fprintln(out, "3. それでも動作しない場合は `janken play --plain` を使ってください")
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "TrueColor"
	case termenv.ANSI256:
		return "ANSI256"
	case termenv.ANSI:
		return "ANSI"
	default:
		return "Ascii (色なし)"
	}
}
