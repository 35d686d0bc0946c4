// Package tui runs the interactive assistant bot session, as a Bubble Tea
// terminal UI on a TTY or as a plain line loop otherwise.
package tui

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/addressbook/internal/shell"
)

// Session drives a Shell until the user exits or input ends.
type Session interface {
	Run(sh *shell.Shell) error
}

// SessionOptions configures session creation.
type SessionOptions struct {
	In         io.Reader // Input source (default: os.Stdin).
	Out        io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force the plain loop even if Out is a TTY.
}

// NewSession returns a TUI session when Out is a TTY, or a plain line
// session otherwise. ForcePlain overrides TTY detection.
func NewSession(opts SessionOptions) Session {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Out) {
		return &PlainSession{in: opts.In, out: opts.Out}
	}
	return &TUISession{in: opts.In, out: opts.Out}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSession reads newline-terminated commands and prints plain responses.
type PlainSession struct {
	in  io.Reader
	out io.Writer
}

// Run executes the plain bot loop.
func (p *PlainSession) Run(sh *shell.Shell) error {
	return sh.Run(p.in, p.out)
}

// TUISession runs the bot inside a Bubble Tea program.
// Falls back to PlainSession if the program fails to start.
type TUISession struct {
	in  io.Reader
	out io.Writer
}

// Run starts the Bubble Tea program and blocks until the user exits.
func (d *TUISession) Run(sh *shell.Shell) error {
	p := tea.NewProgram(NewModel(sh), tea.WithInput(d.in), tea.WithOutput(d.out))
	final, err := p.Run()
	if err != nil {
		plain := &PlainSession{in: d.in, out: d.out}
		return plain.Run(sh)
	}
	// Leave the farewell on screen after the program releases the terminal.
	if m, ok := final.(Model); ok && m.farewell != "" {
		_, _ = io.WriteString(d.out, m.farewell+"\n")
	}
	return nil
}
