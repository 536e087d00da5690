// Package prompt acquires secrets from the user without echoing them.
package prompt

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// Reader returns one secret per call. The trailing newline is not part of
// the result. Implementations return an error only when the source itself
// fails; callers treat that as fatal.
type Reader interface {
	ReadSecret(prompt string) ([]byte, error)
}

// Terminal reads secrets from the controlling terminal with echo disabled.
// When stdin is not a terminal (input is piped) it falls back to /dev/tty,
// or CON on Windows.
type Terminal struct {
	Printer *Printer
}

// NewTerminal returns a Terminal that writes prompts to stderr.
func NewTerminal() *Terminal {
	return &Terminal{Printer: NewPrinter(os.Stderr)}
}

func (t *Terminal) ReadSecret(prompt string) ([]byte, error) {
	t.Printer.Prompt(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pass, err := term.ReadPassword(fd)
		t.Printer.Newline()
		if err != nil {
			return nil, fmt.Errorf("failed to read from terminal: %w", err)
		}
		return pass, nil
	}

	tty, err := os.Open(ttyPath())
	if err != nil {
		return nil, fmt.Errorf("cannot read secret: stdin is piped and %s is not available (set %s or use --stdin): %w", ttyPath(), PassphraseEnvVar, err)
	}
	defer tty.Close()

	fd = int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", ttyPath())
	}

	pass, err := term.ReadPassword(fd)
	t.Printer.Newline()
	if err != nil {
		return nil, fmt.Errorf("failed to read from %s: %w", ttyPath(), err)
	}
	return pass, nil
}

func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}
