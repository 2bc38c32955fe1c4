package terminal

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when a prompt is requested without a terminal attached.
var ErrNotInteractive = errors.New("cannot prompt: non-interactive terminal")

// Adapter reports on the terminal the process is attached to.
type Adapter struct {
	stdin  io.Reader
	stdout io.Writer
}

// NewAdapter creates a new terminal adapter.
func NewAdapter(stdin io.Reader, stdout io.Writer) *Adapter {
	return &Adapter{
		stdin:  stdin,
		stdout: stdout,
	}
}

// IsInteractive returns true if both stdin and stdout are terminals.
func (a *Adapter) IsInteractive() bool {
	return isTerminal(a.stdin) && isTerminal(a.stdout)
}

// EnsureInteractive fails with ErrNotInteractive when no terminal is attached.
func (a *Adapter) EnsureInteractive() error {
	if !a.IsInteractive() {
		return ErrNotInteractive
	}
	return nil
}

func isTerminal(v any) bool {
	if file, ok := v.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
