// Package shell parses assistant bot command lines and dispatches them to
// the address book.
package shell

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smileynet/addressbook/internal/contact"
)

// Fixed bot lines.
const (
	Welcome = "Welcome to the assistant bot!"
	Prompt  = "Enter a command: "
	Goodbye = "Good bye!"
)

// Result is the outcome of one command.
type Result struct {
	Output string
	Err    error // Set when Output is an error message.
	Exit   bool  // The command asked the session to end.
}

// Shell executes commands against a Book. It is not safe for concurrent use.
type Shell struct {
	book       *contact.Book
	now        func() time.Time
	windowDays int
	help       string
	log        zerolog.Logger
	dirty      bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithClock sets the source of "today" for the birthdays command.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// WithWindowDays sets the look-ahead of the birthdays command.
func WithWindowDays(n int) Option {
	return func(s *Shell) { s.windowDays = n }
}

// WithHelp sets the text printed by the help command.
func WithHelp(text string) Option {
	return func(s *Shell) { s.help = strings.TrimRight(text, "\n") }
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Shell) { s.log = l }
}

// New creates a Shell operating on book.
func New(book *contact.Book, opts ...Option) *Shell {
	s := &Shell{
		book:       book,
		now:        time.Now,
		windowDays: contact.DefaultWindowDays,
		help:       defaultHelp,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Book returns the book the shell operates on.
func (s *Shell) Book() *contact.Book { return s.book }

// Dirty reports whether any command has modified the book.
func (s *Shell) Dirty() bool { return s.dirty }

// ParseInput splits a line into a lower-cased command and its arguments.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Execute parses and runs one command line. Blank lines yield an empty Result.
func (s *Shell) Execute(line string) Result {
	cmd, args := ParseInput(line)
	if cmd == "" {
		return Result{}
	}
	return s.Dispatch(cmd, args)
}

// Dispatch runs cmd with args. Errors are converted to their user-facing
// message; none of them ends the session.
func (s *Shell) Dispatch(cmd string, args []string) Result {
	if cmd == "close" || cmd == "exit" {
		return Result{Output: Goodbye, Exit: true}
	}

	h, ok := commands[cmd]
	if !ok {
		s.log.Debug().Str("command", cmd).Msg("unknown command")
		return Result{Output: MsgInvalidCommand}
	}

	out, err := h(s, args)
	if err != nil {
		s.log.Debug().Err(err).Str("command", cmd).Strs("args", args).Msg("command failed")
		return Result{Output: ErrorMessage(err), Err: err}
	}
	s.log.Debug().Str("command", cmd).Msg("command done")
	return Result{Output: out}
}
