// Package wizards implements the interactive setup flow behind
// `orderlens init`.
package wizards

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackc/pgx/v5"

	"github.com/vkaraulov/orderlens/internal/config"
	"github.com/vkaraulov/orderlens/internal/db"
	"github.com/vkaraulov/orderlens/internal/tui"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

// ConnectionTester tests database connectivity.
type ConnectionTester interface {
	TestConnection(ctx context.Context, cfg orderlens.ConnectionConfig) (info string, err error)
}

type pgxTester struct{}

func (pgxTester) TestConnection(ctx context.Context, cfg orderlens.ConnectionConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, db.BuildConnectionString(&cfg))
	if err != nil {
		return "", err
	}
	defer conn.Close(ctx)

	var version string
	if err := conn.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", err
	}

	if idx := strings.Index(version, ","); idx > 0 {
		version = version[:idx]
	}
	return version, nil
}

// SetupResult holds the outcome of the setup wizard.
type SetupResult struct {
	Cancelled bool
	Config    config.ProjectConfig
	Tested    bool
	TestInfo  string
}

// Field indexes of the input form, in display order.
const (
	fieldHost = iota
	fieldPort
	fieldUsername
	fieldDatabase
	fieldSSLMode
	fieldOrderCount
	fieldReportDir
	numFields
)

type setupStep int

const (
	stepForm setupStep = iota
	stepTesting
	stepDone
)

type testDoneMsg struct {
	info string
	err  error
}

// SetupOption configures a SetupWizard.
type SetupOption func(*SetupWizard)

// WithTester injects a ConnectionTester. Used by tests.
func WithTester(t ConnectionTester) SetupOption {
	return func(w *SetupWizard) {
		w.tester = t
	}
}

// SetupWizard collects the project settings written to orderlens.yaml.
type SetupWizard struct {
	step    setupStep
	inputs  []textinput.Model
	focus   int
	errText string

	spinner spinner.Model
	tester  ConnectionTester

	testInfo string
	testErr  string

	result SetupResult
	keys   tui.KeyMap
}

var fieldLabels = []string{
	"Host",
	"Port",
	"Username",
	"Database",
	"SSL mode",
	"Orders to generate",
	"Report directory",
}

// NewSetupWizard creates a setup wizard pre-filled with sensible defaults.
func NewSetupWizard(opts ...SetupOption) SetupWizard {
	defaults := []string{"localhost", "5432", "postgres", "orders", "prefer", "1000", "reports"}

	inputs := make([]textinput.Model, numFields)
	for i := range inputs {
		in := textinput.New()
		in.SetValue(defaults[i])
		in.CharLimit = 128
		inputs[i] = in
	}
	inputs[fieldHost].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.SpinnerStyle

	w := SetupWizard{
		inputs:  inputs,
		spinner: sp,
		tester:  pgxTester{},
		keys:    tui.DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

// Result returns the wizard outcome after the program finishes.
func (w SetupWizard) Result() SetupResult {
	return w.result
}

// Init implements tea.Model.
func (w SetupWizard) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (w SetupWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, w.keys.Quit) {
			w.result.Cancelled = true
			return w, tea.Quit
		}
		switch w.step {
		case stepForm:
			return w.updateForm(msg)
		case stepDone:
			return w.updateDone(msg)
		}
		return w, nil

	case testDoneMsg:
		w.step = stepDone
		if msg.err != nil {
			w.testErr = msg.err.Error()
		} else {
			w.testInfo = msg.info
		}
		return w, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd
	}

	return w, nil
}

func (w SetupWizard) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Back):
		w.result.Cancelled = true
		return w, tea.Quit

	case key.Matches(msg, w.keys.Next):
		return w.moveFocus(1), nil

	case key.Matches(msg, w.keys.Prev):
		return w.moveFocus(-1), nil

	case key.Matches(msg, w.keys.Select):
		if w.focus < numFields-1 {
			return w.moveFocus(1), nil
		}
		cfg, err := w.buildConfig()
		if err != nil {
			w.errText = err.Error()
			return w, nil
		}
		w.errText = ""
		w.result.Config = cfg
		w.step = stepTesting
		return w, tea.Batch(w.spinner.Tick, w.testConnection(cfg))
	}

	var cmd tea.Cmd
	w.inputs[w.focus], cmd = w.inputs[w.focus].Update(msg)
	return w, cmd
}

func (w SetupWizard) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Back):
		// Return to the form to fix the settings.
		w.step = stepForm
		w.testInfo = ""
		w.testErr = ""
		return w, nil

	case key.Matches(msg, w.keys.Select):
		w.result.Tested = w.testErr == ""
		w.result.TestInfo = w.testInfo
		return w, tea.Quit
	}
	return w, nil
}

func (w SetupWizard) moveFocus(delta int) SetupWizard {
	w.inputs[w.focus].Blur()
	w.focus = (w.focus + delta + numFields) % numFields
	w.inputs[w.focus].Focus()
	return w
}

func (w SetupWizard) buildConfig() (config.ProjectConfig, error) {
	var cfg config.ProjectConfig

	host := strings.TrimSpace(w.inputs[fieldHost].Value())
	if host == "" {
		return cfg, fmt.Errorf("host cannot be empty")
	}
	port, err := strconv.Atoi(strings.TrimSpace(w.inputs[fieldPort].Value()))
	if err != nil || port < 1 || port > 65535 {
		return cfg, fmt.Errorf("port must be a number between 1 and 65535")
	}
	database := strings.TrimSpace(w.inputs[fieldDatabase].Value())
	if database == "" {
		return cfg, fmt.Errorf("database cannot be empty")
	}
	count, err := strconv.Atoi(strings.TrimSpace(w.inputs[fieldOrderCount].Value()))
	if err != nil || count < 1 {
		return cfg, fmt.Errorf("order count must be a positive number")
	}

	cfg.Connection = config.ConnectionConfig{
		Host:     host,
		Port:     port,
		Username: strings.TrimSpace(w.inputs[fieldUsername].Value()),
		Database: database,
		SSLMode:  strings.TrimSpace(w.inputs[fieldSSLMode].Value()),
	}
	cfg.Generator = config.GeneratorConfig{Count: count}
	cfg.Reports = config.ReportsConfig{OutputDir: strings.TrimSpace(w.inputs[fieldReportDir].Value())}
	return cfg, nil
}

func (w SetupWizard) testConnection(cfg config.ProjectConfig) tea.Cmd {
	tester := w.tester
	return func() tea.Msg {
		connCfg := orderlens.ConnectionConfig{
			Host:     cfg.Connection.Host,
			Port:     cfg.Connection.Port,
			Username: cfg.Connection.Username,
			Database: cfg.Connection.Database,
			SSLMode:  cfg.Connection.SSLMode,
		}
		info, err := tester.TestConnection(context.Background(), connCfg)
		return testDoneMsg{info: info, err: err}
	}
}

// View implements tea.Model.
func (w SetupWizard) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("orderlens setup"))
	b.WriteString("\n")

	switch w.step {
	case stepForm:
		b.WriteString(tui.SubtitleStyle.Render("Project settings written to " + config.ConfigFileName))
		b.WriteString("\n\n")
		for i, in := range w.inputs {
			label := tui.InputLabelStyle
			if i == w.focus {
				label = tui.FocusedLabelStyle
			}
			fmt.Fprintf(&b, "%s %s\n", label.Render(fmt.Sprintf("%-18s", fieldLabels[i])), in.View())
		}
		if w.errText != "" {
			b.WriteString("\n")
			b.WriteString(tui.ErrorStyle.Render(tui.SymbolCross + " " + w.errText))
			b.WriteString("\n")
		}
		b.WriteString(tui.HelpStyle.Render(w.keys.HelpText()))

	case stepTesting:
		fmt.Fprintf(&b, "%s Testing connection to %s...\n",
			w.spinner.View(), w.result.Config.Connection.Host)

	case stepDone:
		if w.testErr != "" {
			b.WriteString(tui.ErrorStyle.Render(tui.SymbolCross + " Connection failed: " + w.testErr))
			b.WriteString("\n\n")
			b.WriteString(tui.HelpStyle.Render("enter save anyway • esc back to settings"))
		} else {
			b.WriteString(tui.SuccessStyle.Render(tui.SymbolCheck + " Connected: " + w.testInfo))
			b.WriteString("\n\n")
			b.WriteString(tui.HelpStyle.Render("enter save • esc back to settings"))
		}
	}

	b.WriteString("\n")
	return b.String()
}

var _ tea.Model = SetupWizard{}
