package gameerrors

import "errors"

// Sentinel errors shared by the terminal, prompt and web packages to avoid
// circular imports.
var (
	// ErrNotTerminal means the interactive prompts cannot run because stdin or
	// stdout is not attached to a terminal.
	ErrNotTerminal = errors.New("not a terminal: interactive prompts are unavailable")

	// ErrInterrupted means a prompt was aborted (Ctrl+C or context cancellation).
	ErrInterrupted = errors.New("interrupted")

	// ErrInvalidToken means a browser session token is missing, malformed, expired or forged.
	ErrInvalidToken = errors.New("invalid session token")
)
