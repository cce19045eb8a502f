// Package prompt provides the interactive terminal widgets used by the game:
// a list selection, a yes/no confirmation and a free-text input.
package prompt

import (
	"context"
	"os"

	"golang.org/x/term"
	"janken/gameerrors"
)

// Choice is one entry in a selection list.
type Choice struct {
	Label string
	Value string
}

// Prompter asks the player questions one at a time.
// Every method returns gameerrors.ErrInterrupted when the player aborts.
type Prompter interface {
	// Select shows choices and returns the Value of the chosen one.
	Select(ctx context.Context, message string, choices []Choice) (string, error)
	// Confirm asks a yes/no question; def is used when the player just presses Enter.
	Confirm(ctx context.Context, message string, def bool) (bool, error)
	// Input reads one line of text.
	Input(ctx context.Context, message string) (string, error)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// RequireTerminal returns gameerrors.ErrNotTerminal unless both in and out are terminals.
func RequireTerminal(in, out *os.File) error {
	if !IsTerminal(in) || !IsTerminal(out) {
		return gameerrors.ErrNotTerminal
	}
	return nil
}
