package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	addressbook "github.com/smileynet/addressbook"
	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/logging"
	"github.com/smileynet/addressbook/internal/shell"
	"github.com/smileynet/addressbook/internal/storage"
	"github.com/smileynet/addressbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"Extra config file layered over the user and project configs." type:"path" placeholder:"PATH"`
	Store  string `help:"Contacts file or database (overrides storage.path)." type:"path" placeholder:"PATH"`
	Driver string `help:"Storage driver: json, yaml or sqlite (overrides storage.driver)."`
}

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Globals

	Version      kong.VersionFlag `help:"Show version." short:"V"`
	Shell        ShellCmd         `cmd:"" default:"1" help:"Start the interactive assistant bot."`
	Add          AddCmd           `cmd:"" help:"Add a phone number, creating the contact if needed."`
	Change       ChangeCmd        `cmd:"" help:"Replace one of a contact's phone numbers."`
	Phone        PhoneCmd         `cmd:"" help:"Show a contact."`
	All          AllCmd           `cmd:"" help:"List every contact."`
	AddBirthday  AddBirthdayCmd   `cmd:"" help:"Set a contact's birthday (YYYY-MM-DD)."`
	ShowBirthday ShowBirthdayCmd  `cmd:"" help:"Show a contact's birthday."`
	Birthdays    BirthdaysCmd     `cmd:"" help:"List birthdays in the coming days."`
	Delete       DeleteCmd        `cmd:"" help:"Delete a contact."`
	RemovePhone  RemovePhoneCmd   `cmd:"" help:"Remove one phone number from a contact."`
	Init         InitCmd          `cmd:"" help:"Write a starter config file."`
}

// loadConfig loads layered config from user, project and --config paths,
// then applies env and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		".addressbook/config.yaml",
		g.Config,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.Store != "" {
		cfg.Storage.Path = g.Store
	}
	if g.Driver != "" {
		cfg.Storage.Driver = g.Driver
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app holds the loaded book and everything needed to save it.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
	store     storage.Store
	book      *contact.Book
}

// openApp loads config, sets up logging and loads the book from storage.
func openApp(g *Globals) (*app, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}

	log, logCloser, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path, storage.WithLogger(log))
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	book, err := store.Load()
	if err != nil {
		_ = store.Close()
		_ = logCloser.Close()
		return nil, err
	}

	return &app{cfg: cfg, log: log, logCloser: logCloser, store: store, book: book}, nil
}

// newShell builds a Shell over the app's book. opts override config-derived settings.
func (a *app) newShell(opts ...shell.Option) *shell.Shell {
	base := []shell.Option{
		shell.WithWindowDays(a.cfg.Birthdays.WindowDays),
		shell.WithLogger(a.log),
	}
	if text, err := fs.ReadFile(addressbook.OverlayFS(".addressbook", addressbook.Templates), "help.txt"); err == nil {
		base = append(base, shell.WithHelp(string(text)))
	}
	return shell.New(a.book, append(base, opts...)...)
}

func (a *app) save() error {
	return a.store.Save(a.book)
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing store")
	}
	_ = a.logCloser.Close()
}

// --- Shell command ---

// ShellCmd runs the interactive assistant bot.
type ShellCmd struct {
	NoTUI bool `help:"Force the plain line loop even if stdout is a TTY." default:"false"`
}

// Run loads the book, runs the session and saves the book when it ends.
func (c *ShellCmd) Run(g *Globals) error {
	a, err := openApp(g)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer a.close()

	session := tui.NewSession(tui.SessionOptions{ForcePlain: c.NoTUI || a.cfg.Shell.NoTUI})
	return c.run(a, session)
}

// run drives the session and persists the book, enabling testable wiring.
func (c *ShellCmd) run(a *app, session tui.Session) error {
	sessionErr := session.Run(a.newShell())

	// Save even when input ended without exit, so typed changes are kept.
	if err := a.save(); err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	if sessionErr != nil {
		return fmt.Errorf("shell: %w", sessionErr)
	}
	return nil
}

// --- One-shot commands ---

// commandError reports a rejected one-shot command with its user-facing message.
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }
func (e *commandError) Unwrap() error { return e.err }

// runOneShot loads the book, dispatches a single command and saves if it changed anything.
func runOneShot(g *Globals, w io.Writer, cmd string, args []string, opts ...shell.Option) error {
	a, err := openApp(g)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	defer a.close()
	return a.exec(w, cmd, args, opts...)
}

// exec dispatches cmd against the app's book, enabling testable wiring.
func (a *app) exec(w io.Writer, cmd string, args []string, opts ...shell.Option) error {
	sh := a.newShell(opts...)
	res := sh.Dispatch(cmd, args)
	if res.Err != nil {
		return &commandError{msg: res.Output, err: res.Err}
	}
	_, _ = fmt.Fprintln(w, res.Output)

	if sh.Dirty() {
		if err := a.save(); err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
	}
	return nil
}

// AddCmd adds a phone number to a contact.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number, exactly 10 digits."`
}

// Run executes the add command.
func (c *AddCmd) Run(g *Globals) error {
	return runOneShot(g, os.Stdout, "add", []string{c.Name, c.Phone})
}

// ChangeCmd replaces a contact's phone number.
type ChangeCmd struct {
	Name     string `arg:"" help:"Contact name."`
	OldPhone string `arg:"" help:"Phone number to replace."`
	NewPhone string `arg:"" help:"New phone number, exactly 10 digits."`
}

// Run executes the change command.
func (c *ChangeCmd) Run(g *Globals) error {
	return runOneShot(g, os.Stdout, "change", []string{c.Name, c.OldPhone, c.NewPhone})
}

// PhoneCmd shows a contact.
type PhoneCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the phone command.
func (c *PhoneCmd) Run(g *Globals) error {
	return runOneShot(g, os.Stdout, "phone", []string{c.Name})
}

// AllCmd lists every contact.
type AllCmd struct{}

// Run executes the all command.
func (c *AllCmd) Run(g *Globals) error {
	return runOneShot(g, os.Stdout, "all", nil)
}

// AddBirthdayCmd sets a contact's birthday.
type AddBirthdayCmd struct {
	Name string `arg:"" help:"Contact name."`
	Date string `arg:"" help:"Birthday as YYYY-MM-DD."`
}

// Run executes the add-birthday command.
func (c *AddBirthdayCmd) Run(g *Globals) error {
	return runOneShot(g, os.Stdout, "add-birthday", []string{c.Name, c.Date})
}

// ShowBirthdayCmd shows a contact's birthday.
type ShowBirthdayCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the show-birthday command.
func (c *ShowBirthdayCmd) Run(g *Globals) error {
	return runOneShot(g, os.Stdout, "show-birthday", []string{c.Name})
}

// BirthdaysCmd lists upcoming birthdays.
type BirthdaysCmd struct {
	Days int `help:"Look-ahead in days (default: birthdays.window_days)." default:"-1"`
}

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run(g *Globals) error {
	return runOneShot(g, os.Stdout, "birthdays", nil, c.options()...)
}

// options returns the shell overrides implied by the flags.
func (c *BirthdaysCmd) options() []shell.Option {
	if c.Days < 0 {
		return nil
	}
	return []shell.Option{shell.WithWindowDays(c.Days)}
}

// DeleteCmd deletes a contact.
type DeleteCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(g *Globals) error {
	return runOneShot(g, os.Stdout, "delete", []string{c.Name})
}

// RemovePhoneCmd removes one phone number from a contact.
type RemovePhoneCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number to remove."`
}

// Run executes the remove-phone command.
func (c *RemovePhoneCmd) Run(g *Globals) error {
	return runOneShot(g, os.Stdout, "remove-phone", []string{c.Name, c.Phone})
}

// --- Init command ---

// InitCmd writes the embedded starter config to disk.
type InitCmd struct {
	Path  string `help:"Where to write the config." default:".addressbook/config.yaml" type:"path"`
	Force bool   `help:"Overwrite an existing file."`
}

// Run executes the init command.
func (c *InitCmd) Run() error {
	return c.run(os.Stdout)
}

// run writes the config, enabling testable wiring.
func (c *InitCmd) run(w io.Writer) error {
	if !c.Force {
		if _, err := os.Stat(c.Path); err == nil {
			return fmt.Errorf("init: %s already exists (use --force to overwrite)", c.Path)
		}
	}

	data, err := fs.ReadFile(addressbook.Templates, "config.yaml")
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("init: creating directory: %w", err)
	}
	if err := os.WriteFile(c.Path, data, 0o644); err != nil {
		return fmt.Errorf("init: writing %s: %w", c.Path, err)
	}

	_, _ = fmt.Fprintf(w, "Wrote %s\n", c.Path)
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitCommand = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *commandError
	if errors.As(err, &ce) {
		return exitCommand
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("A command-line contact manager with birthday reminders."),
		kong.UsageOnError(),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
