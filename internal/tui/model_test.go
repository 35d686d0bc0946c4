package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/shell"
)

func newTestModel() Model {
	return NewModel(shell.New(contact.NewBook()))
}

// enter types line into the prompt and presses Enter.
func enter(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestNewModel_FocusedPrompt(t *testing.T) {
	m := newTestModel()

	if !m.input.Focused() {
		t.Error("prompt should be focused")
	}
	if m.input.Prompt != shell.Prompt {
		t.Errorf("prompt = %q, want %q", m.input.Prompt, shell.Prompt)
	}
	if len(m.history) != 0 || m.done {
		t.Error("new model should have empty history and not be done")
	}
}

func TestModel_Init_ReturnsBlinkCmd(t *testing.T) {
	if cmd := newTestModel().Init(); cmd == nil {
		t.Fatal("Init() should return a non-nil Cmd for the cursor blink")
	}
}

func TestModel_Enter_RecordsExchange(t *testing.T) {
	m, cmd := enter(t, newTestModel(), "hello")

	if cmd != nil {
		t.Error("non-exit command should not produce a Cmd")
	}
	if len(m.history) != 1 {
		t.Fatalf("history len = %d, want 1", len(m.history))
	}
	ex := m.history[0]
	if ex.Command != "hello" || ex.Output != "How can I help you?" || ex.Failed {
		t.Errorf("exchange = %+v", ex)
	}
	if m.input.Value() != "" {
		t.Errorf("prompt = %q after Enter, want cleared", m.input.Value())
	}
}

func TestModel_Enter_MarksFailures(t *testing.T) {
	m, _ := enter(t, newTestModel(), "phone Nobody")

	if len(m.history) != 1 || !m.history[0].Failed {
		t.Fatalf("history = %+v, want one failed exchange", m.history)
	}
	if m.history[0].Output != shell.MsgNotFound {
		t.Errorf("output = %q, want %q", m.history[0].Output, shell.MsgNotFound)
	}
}

func TestModel_Enter_BlankLineIgnored(t *testing.T) {
	m, _ := enter(t, newTestModel(), "   ")

	if len(m.history) != 0 {
		t.Errorf("history = %+v, want empty", m.history)
	}
}

func TestModel_Enter_ExitQuits(t *testing.T) {
	m, cmd := enter(t, newTestModel(), "exit")

	if !m.done {
		t.Error("exit should set done")
	}
	if cmd == nil {
		t.Error("exit should produce quit Cmd")
	}
	if m.farewell != shell.Goodbye {
		t.Errorf("farewell = %q, want %q", m.farewell, shell.Goodbye)
	}
}

func TestModel_Update_CtrlCQuits(t *testing.T) {
	next, cmd := newTestModel().Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if !next.(Model).done {
		t.Error("ctrl+c should set done")
	}
	if cmd == nil {
		t.Error("ctrl+c should produce quit Cmd")
	}
}

func TestModel_Update_WindowSizeMsg(t *testing.T) {
	next, _ := newTestModel().Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if got := next.(Model).width; got != 120 {
		t.Errorf("width = %d, want 120", got)
	}
}

func TestModel_HistoryIsBounded(t *testing.T) {
	m := newTestModel()
	for i := 0; i < maxHistory+5; i++ {
		m, _ = enter(t, m, "hello")
	}
	if len(m.history) != maxHistory {
		t.Errorf("history len = %d, want %d", len(m.history), maxHistory)
	}
}

func TestModel_View(t *testing.T) {
	m, _ := enter(t, newTestModel(), "add John 1234567890")
	view := m.View()

	for _, want := range []string{shell.Welcome, "> add John 1234567890", "Contact added.", "exit to save and quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

// TestModel_Teatest_Session drives a full session through typed keys via teatest.
func TestModel_Teatest_Session(t *testing.T) {
	sh := shell.New(contact.NewBook())
	tm := teatest.NewTestModel(t, NewModel(sh), teatest.WithInitialTermSize(80, 24))

	tm.Type("add John 1234567890")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("add-birthday John 1990-07-05")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("exit")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.done {
		t.Error("final model should be done")
	}
	if len(final.history) != 2 {
		t.Fatalf("history len = %d, want 2", len(final.history))
	}
	if final.history[1].Output != "Contact changed." {
		t.Errorf("second output = %q, want %q", final.history[1].Output, "Contact changed.")
	}
	if _, ok := sh.Book().Find("John"); !ok {
		t.Error("shell book should contain John")
	}
}
