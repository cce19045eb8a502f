package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"janken/gameerrors"
)

// LinePrompter asks questions as numbered plain-text lines. It works on pipes
// and dumb terminals where TeaPrompter cannot run. End of input counts as an interrupt.
type LinePrompter struct {
	in  *bufio.Scanner
	out io.Writer

	// Lines are scanned on a separate goroutine so a cancelled context
	// can abandon a pending read.
	startOnce sync.Once
	lines     chan string
	scanErr   error
}

// NewLinePrompter returns a prompter reading answers line by line from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewScanner(in), out: out, lines: make(chan string)}
}

// Select implements Prompter. The player answers with the number or the value of a choice.
func (p *LinePrompter) Select(ctx context.Context, message string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("select %q: no choices", message)
	}
	for {
		fmt.Fprintf(p.out, "? %s\n", message)
		for i, c := range choices {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, c.Label)
		}
		fmt.Fprintf(p.out, "  番号を入力 [1-%d]: ", len(choices))
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(choices) {
			return choices[n-1].Value, nil
		}
		for _, c := range choices {
			if strings.EqualFold(line, c.Value) {
				return c.Value, nil
			}
		}
		fmt.Fprintf(p.out, "  %q は選択肢にありません。\n", line)
	}
}

// Confirm implements Prompter.
func (p *LinePrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	hint := "(y/N)"
	if def {
		hint = "(Y/n)"
	}
	for {
		fmt.Fprintf(p.out, "? %s %s ", message, hint)
		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "  y か n で答えてください。")
	}
}

// Input implements Prompter.
func (p *LinePrompter) Input(ctx context.Context, message string) (string, error) {
	fmt.Fprintf(p.out, "? %s ", message)
	return p.readLine(ctx)
}

func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", gameerrors.ErrInterrupted
	}
	p.startOnce.Do(func() { go p.scan() })

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", gameerrors.ErrInterrupted
	case line, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			if p.scanErr != nil {
				return "", fmt.Errorf("read answer: %w", p.scanErr)
			}
			return "", gameerrors.ErrInterrupted
		}
		return strings.TrimSpace(line), nil
	}
}

// scan feeds lines to readLine until the input ends. scanErr is set before
// the channel is closed.
func (p *LinePrompter) scan() {
	defer close(p.lines)
	for p.in.Scan() {
		p.lines <- p.in.Text()
	}
	p.scanErr = p.in.Err()
}
