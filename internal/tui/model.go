package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/addressbook/internal/shell"
)

// maxHistory bounds the scrollback kept in the model.
const maxHistory = 100

// Exchange is one command and the bot's response.
type Exchange struct {
	Command string
	Output  string
	Failed  bool
}

// Model is the Bubble Tea model for the interactive bot.
type Model struct {
	shell    *shell.Shell
	input    textinput.Model
	history  []Exchange
	farewell string
	done     bool
	width    int
}

// NewModel creates a Model with a focused command prompt.
func NewModel(sh *shell.Shell) Model {
	ti := textinput.New()
	ti.Prompt = shell.Prompt
	ti.Placeholder = "help"
	ti.CharLimit = 256
	ti.Focus()

	return Model{shell: sh, input: ti}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(shell.Prompt)-1, 0)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit executes the current prompt line.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	res := m.shell.Execute(line)
	if res.Exit {
		m.farewell = res.Output
		m.done = true
		return m, tea.Quit
	}
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.history = append(m.history, Exchange{Command: line, Output: res.Output, Failed: res.Err != nil})
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	return m, nil
}

// View renders the scrollback followed by the prompt.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(shell.Welcome))
	b.WriteString("\n\n")

	for _, ex := range m.history {
		b.WriteString(commandStyle.Render("> " + ex.Command))
		b.WriteString("\n")
		out := ex.Output
		if ex.Failed {
			out = errorStyle.Render(out)
		}
		b.WriteString(out)
		b.WriteString("\n")
	}

	if m.done {
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("type help for commands, exit to save and quit"))
	b.WriteString("\n")
	return b.String()
}
