package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"janken/game"
)

const (
	rule       = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	doubleRule = "═══════════════════════════════════════"
)

var fireworkGlyphs = []string{"✨", "🎆", "🎊", "⭐", "💫"}

func (a *App) printWelcome() {
	fmt.Fprintln(a.out, a.styles.banner("🎮 じゃんけんゲーム 🎮", "コンピューターと対戦しましょう！"))
	fmt.Fprintln(a.out)
}

func (a *App) printRound(r game.Round) {
	s := a.styles
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, s.Bold.Render(rule))
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, s.Info.Render("👤 あなた:         ")+s.Text.Bold(true).Render(r.Player.Label()))
	fmt.Fprintln(a.out, s.Danger.Render("🤖 コンピューター: ")+s.Text.Bold(true).Render(r.Computer.Label()))
	fmt.Fprintln(a.out)

	switch r.Outcome {
	case game.Win:
		fmt.Fprintln(a.out, s.Success.Render("🎉 おめでとうございます！あなたの勝ちです！"))
		fmt.Fprintln(a.out, s.Warning.Render(fireworks(5)))
	case game.Lose:
		fmt.Fprintln(a.out, s.Danger.Render("😔 残念！コンピューターの勝ちです..."))
	case game.Draw:
		fmt.Fprintln(a.out, s.Warning.Render("🤝 引き分けです！"))
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, s.Bold.Render(rule))
	a.printMiniStats()
}

// fireworks returns n random celebration glyphs separated by spaces.
func fireworks(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fireworkGlyphs[rand.IntN(len(fireworkGlyphs))]
	}
	return strings.Join(parts, " ")
}

func (a *App) printMiniStats() {
	t := a.session.Tally
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, a.styles.Muted.Render(fmt.Sprintf("勝利: %d | 敗北: %d | 引き分け: %d | 合計: %d", t.Wins, t.Losses, t.Draws, t.TotalGames)))
}

func (a *App) printStats() {
	s := a.styles
	t := a.session.Tally
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, s.Heading.Render("📊 ゲーム統計"))
	fmt.Fprintln(a.out, s.Bold.Render(doubleRule))

	if !t.Played() {
		fmt.Fprintln(a.out, s.Warning.Render("まだゲームをプレイしていません。"))
		return
	}

	winRate, _ := t.WinRate()
	fmt.Fprintln(a.out, s.Success.Render(fmt.Sprintf("🏆 勝利:     %3d (%s)", t.Wins, game.FormatRate(t.WinRate()))))
	fmt.Fprintln(a.out, s.Danger.Render(fmt.Sprintf("💀 敗北:     %3d (%s)", t.Losses, game.FormatRate(t.LossRate()))))
	fmt.Fprintln(a.out, s.Warning.Render(fmt.Sprintf("🤝 引き分け: %3d (%s)", t.Draws, game.FormatRate(t.DrawRate()))))
	fmt.Fprintln(a.out, s.Info.Render(fmt.Sprintf("📊 合計:     %3d", t.TotalGames)))
	fmt.Fprintln(a.out)

	switch {
	case winRate >= 60:
		fmt.Fprintln(a.out, s.Success.Render("🌟 素晴らしい勝率です！"))
	case winRate >= 40:
		fmt.Fprintln(a.out, s.Warning.Render("⚖️  互角の戦いですね！"))
	default:
		fmt.Fprintln(a.out, s.Danger.Render("💪 次は頑張りましょう！"))
	}
}

func (a *App) printRules() {
	s := a.styles
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, s.Heading.Render("📖 じゃんけんのルール"))
	fmt.Fprintln(a.out, s.Bold.Render(doubleRule))
	fmt.Fprintln(a.out)
	for _, h := range game.Hands {
		victim, err := h.Beats()
		if err != nil {
			continue
		}
		fmt.Fprintln(a.out, s.Text.Render(fmt.Sprintf("%s は %s に", h.Label(), victim.Label()))+s.Success.Render(" 勝利"))
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, s.Warning.Render("同じ手の場合は引き分けです。"))
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, s.Muted.Render("コンピューターはランダムに手を選択します。"))
}

// summaryLine is the final win-rate line, or "" when nothing was played.
func (a *App) summaryLine() string {
	t := a.Tally()
	if !t.Played() {
		return ""
	}
	return fmt.Sprintf("最終勝率: %s (%d勝/%d戦)", game.FormatRate(t.WinRate()), t.Wins, t.TotalGames)
}

func (a *App) printGoodbye() {
	body := a.summaryLine()
	if body == "" {
		body = "またの機会にお楽しみください！"
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, a.styles.banner("ゲーム終了！お疲れ様！", body))
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, a.styles.Party.Render("🎮 ありがとうございました！ 🎮"))
	fmt.Fprintln(a.out)
}

func (a *App) printInterrupted() {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, a.styles.Warning.Render("🛑 ゲームが中断されました。"))
	if line := a.summaryLine(); line != "" {
		fmt.Fprintln(a.out, a.styles.Text.Render(line))
	}
	fmt.Fprintln(a.out, a.styles.Muted.Render("またお会いしましょう！"))
}

// PrintNotTerminal reports that interactive prompts cannot run on w's terminal.
func PrintNotTerminal(w io.Writer) {
	s := NewStyles(lipgloss.NewRenderer(w))
	fmt.Fprintln(w, s.Danger.Render("✗ このターミナルは対話型入力をサポートしていません。"))
	fmt.Fprintln(w, s.Muted.Render("--plain で行入力モードを使うか、janken doctor で環境を確認してください。"))
}
