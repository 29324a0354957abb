package wizards

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

type mockTester struct {
	info   string
	err    error
	called bool
	gotCfg orderlens.ConnectionConfig
}

func (m *mockTester) TestConnection(_ context.Context, cfg orderlens.ConnectionConfig) (string, error) {
	m.called = true
	m.gotCfg = cfg
	return m.info, m.err
}

func drainCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drainCmds(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func findTestDone(msgs []tea.Msg) (testDoneMsg, bool) {
	for _, msg := range msgs {
		if m, ok := msg.(testDoneMsg); ok {
			return m, true
		}
	}
	return testDoneMsg{}, false
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func asWizard(t *testing.T, m tea.Model) SetupWizard {
	t.Helper()
	w, ok := m.(SetupWizard)
	if !ok {
		t.Fatalf("model is %T, not SetupWizard", m)
	}
	return w
}

func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// completeForm presses enter through every field, accepting the defaults,
// and delivers the resulting connection test message.
func completeForm(t *testing.T, w SetupWizard) SetupWizard {
	t.Helper()

	var m tea.Model = w
	var cmd tea.Cmd
	for i := 0; i < numFields; i++ {
		m, cmd = m.Update(keyMsg("enter"))
	}

	done, ok := findTestDone(drainCmds(cmd))
	if !ok {
		t.Fatal("expected a connection test to run after the last field")
	}
	m, _ = m.Update(done)
	return asWizard(t, m)
}

func TestSetupWizard_CtrlCCancels(t *testing.T) {
	w := NewSetupWizard(WithTester(&mockTester{}))

	m, cmd := w.Update(keyMsg("ctrl+c"))
	if !isQuitCmd(cmd) {
		t.Fatal("expected quit command")
	}
	if !asWizard(t, m).Result().Cancelled {
		t.Error("expected cancelled result")
	}
}

func TestSetupWizard_EscOnFormCancels(t *testing.T) {
	w := NewSetupWizard(WithTester(&mockTester{}))

	m, cmd := w.Update(keyMsg("esc"))
	if !isQuitCmd(cmd) {
		t.Fatal("expected quit command")
	}
	if !asWizard(t, m).Result().Cancelled {
		t.Error("expected cancelled result")
	}
}

func TestSetupWizard_AcceptDefaults(t *testing.T) {
	tester := &mockTester{info: "PostgreSQL 17.2"}
	w := completeForm(t, NewSetupWizard(WithTester(tester)))

	if !tester.called {
		t.Fatal("expected the connection tester to run")
	}
	if tester.gotCfg.Host != "localhost" || tester.gotCfg.Port != 5432 {
		t.Errorf("unexpected tested config: %+v", tester.gotCfg)
	}
	if !strings.Contains(w.View(), "Connected: PostgreSQL 17.2") {
		t.Errorf("expected success view, got:\n%s", w.View())
	}

	m, cmd := w.Update(keyMsg("enter"))
	if !isQuitCmd(cmd) {
		t.Fatal("expected quit command after accepting")
	}

	result := asWizard(t, m).Result()
	if result.Cancelled {
		t.Error("expected completed result")
	}
	if !result.Tested {
		t.Error("expected tested result")
	}
	if result.Config.Connection.Host != "localhost" ||
		result.Config.Connection.Database != "orders" ||
		result.Config.Generator.Count != 1000 ||
		result.Config.Reports.OutputDir != "reports" {
		t.Errorf("unexpected config: %+v", result.Config)
	}
}

func TestSetupWizard_FailedTestCanStillSave(t *testing.T) {
	tester := &mockTester{err: errors.New("connection refused")}
	w := completeForm(t, NewSetupWizard(WithTester(tester)))

	if !strings.Contains(w.View(), "Connection failed") {
		t.Errorf("expected failure view, got:\n%s", w.View())
	}

	m, cmd := w.Update(keyMsg("enter"))
	if !isQuitCmd(cmd) {
		t.Fatal("expected quit command")
	}

	result := asWizard(t, m).Result()
	if result.Cancelled {
		t.Error("expected completed result")
	}
	if result.Tested {
		t.Error("expected untested result after a failed connection")
	}
}

func TestSetupWizard_EscOnDoneReturnsToForm(t *testing.T) {
	tester := &mockTester{err: errors.New("connection refused")}
	w := completeForm(t, NewSetupWizard(WithTester(tester)))

	m, _ := w.Update(keyMsg("esc"))
	view := asWizard(t, m).View()
	if !strings.Contains(view, "Host") {
		t.Errorf("expected to be back on the form, got:\n%s", view)
	}
}

func TestSetupWizard_RejectsInvalidPort(t *testing.T) {
	w := NewSetupWizard(WithTester(&mockTester{}))

	// Move to the port field and corrupt it.
	m, _ := w.Update(keyMsg("tab"))
	m, _ = m.Update(keyMsg("x"))

	var cmd tea.Cmd
	for i := 0; i < numFields; i++ {
		m, cmd = m.Update(keyMsg("enter"))
	}
	if cmd != nil {
		if _, ok := findTestDone(drainCmds(cmd)); ok {
			t.Fatal("expected validation to block the connection test")
		}
	}

	view := asWizard(t, m).View()
	if !strings.Contains(view, "port must be") {
		t.Errorf("expected port validation error, got:\n%s", view)
	}
}

func TestSetupWizard_FocusWraps(t *testing.T) {
	w := NewSetupWizard(WithTester(&mockTester{}))

	var m tea.Model = w
	for i := 0; i < numFields; i++ {
		m, _ = m.Update(keyMsg("tab"))
	}

	// After a full cycle the host field should be focused again; typing
	// must land there.
	m, _ = m.Update(keyMsg("z"))
	view := asWizard(t, m).View()
	if !strings.Contains(view, "localhostz") {
		t.Errorf("expected typing to append to the host field, got:\n%s", view)
	}
}
