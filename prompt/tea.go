package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"janken/gameerrors"
)

// TeaPrompter renders each question as a small bubbletea program, in the style of
// inquirer's list/confirm/input prompts.
type TeaPrompter struct {
	in     io.Reader
	out    io.Writer
	styles promptStyles
}

type promptStyles struct {
	question lipgloss.Style
	message  lipgloss.Style
	cursor   lipgloss.Style
	answer   lipgloss.Style
	hint     lipgloss.Style
}

func newPromptStyles(r *lipgloss.Renderer) promptStyles {
	return promptStyles{
		question: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		message:  r.NewStyle().Bold(true),
		cursor:   r.NewStyle().Foreground(lipgloss.Color("6")),
		answer:   r.NewStyle().Foreground(lipgloss.Color("6")),
		hint:     r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// NewTerminalPrompter returns a prompter on the process terminal, or
// gameerrors.ErrNotTerminal when stdin/stdout cannot host interactive prompts.
func NewTerminalPrompter(in, out *os.File) (*TeaPrompter, error) {
	if err := RequireTerminal(in, out); err != nil {
		return nil, err
	}
	return NewTeaPrompter(in, out), nil
}

// NewTeaPrompter returns a prompter reading keys from in and drawing on out.
func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out, styles: newPromptStyles(lipgloss.NewRenderer(out))}
}

// Select implements Prompter.
func (p *TeaPrompter) Select(ctx context.Context, message string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("select %q: no choices", message)
	}
	final, err := p.run(ctx, selectModel{styles: p.styles, message: message, choices: choices})
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if !m.done {
		return "", gameerrors.ErrInterrupted
	}
	return m.choices[m.cursor].Value, nil
}

// Confirm implements Prompter.
func (p *TeaPrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	final, err := p.run(ctx, confirmModel{styles: p.styles, message: message, def: def})
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if !m.done {
		return false, gameerrors.ErrInterrupted
	}
	return m.value, nil
}

// Input implements Prompter.
func (p *TeaPrompter) Input(ctx context.Context, message string) (string, error) {
	final, err := p.run(ctx, inputModel{styles: p.styles, message: message})
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if !m.done {
		return "", gameerrors.ErrInterrupted
	}
	return string(m.value), nil
}

func (p *TeaPrompter) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil, gameerrors.ErrInterrupted
		}
		return nil, fmt.Errorf("prompt: %w", err)
	}
	return final, nil
}

// selectModel is a vertical list navigated with arrows, j/k or digits.
type selectModel struct {
	styles  promptStyles
	message string
	choices []Choice
	cursor  int
	done    bool
	aborted bool
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "ctrl+c":
		m.aborted = true
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.choices)) % len(m.choices)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.choices)
	case "enter", " ":
		m.done = true
		return m, tea.Quit
	default:
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(m.choices) {
			m.cursor = n - 1
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.question.Render("?") + " " + m.styles.message.Render(m.message))
	if m.done {
		b.WriteString(" " + m.styles.answer.Render(m.choices[m.cursor].Label) + "\n")
		return b.String()
	}
	if m.aborted {
		return b.String() + "\n"
	}
	b.WriteString(" " + m.styles.hint.Render("(↑↓ で選択、Enter で決定)") + "\n")
	for i, c := range m.choices {
		if i == m.cursor {
			b.WriteString(m.styles.cursor.Render("❯ "+c.Label) + "\n")
		} else {
			b.WriteString("  " + c.Label + "\n")
		}
	}
	return b.String()
}

// confirmModel answers a yes/no question with y/n or Enter for the default.
type confirmModel struct {
	styles  promptStyles
	message string
	def     bool
	value   bool
	done    bool
	aborted bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "ctrl+c":
		m.aborted = true
		return m, tea.Quit
	case "y":
		m.value, m.done = true, true
		return m, tea.Quit
	case "n":
		m.value, m.done = false, true
		return m, tea.Quit
	case "enter":
		m.value, m.done = m.def, true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	head := m.styles.question.Render("?") + " " + m.styles.message.Render(m.message) + " "
	if m.done {
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		return head + m.styles.answer.Render(answer) + "\n"
	}
	if m.aborted {
		return head + "\n"
	}
	hint := "(y/N)"
	if m.def {
		hint = "(Y/n)"
	}
	return head + m.styles.hint.Render(hint) + "\n"
}

// inputModel reads a single line.
type inputModel struct {
	styles  promptStyles
	message string
	value   []rune
	done    bool
	aborted bool
}

func (m inputModel) Init() tea.Cmd { return nil }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.value) > 0 {
			m.value = m.value[:len(m.value)-1]
		}
	case tea.KeySpace:
		m.value = append(m.value, ' ')
	case tea.KeyRunes:
		m.value = append(m.value, key.Runes...)
	}
	return m, nil
}

func (m inputModel) View() string {
	head := m.styles.question.Render("?") + " " + m.styles.message.Render(m.message) + " "
	if m.done {
		return head + m.styles.answer.Render(string(m.value)) + "\n"
	}
	return head + string(m.value) + "\n"
}
