// Package console provides the interactive remote-control TUI.
//
// The console shows the server's sessions in a list; selecting one opens a
// transcript view with its todo list and a composer. Data arrives through
// the background poller and is read from the shared view store on a short
// UI tick, so the interface never blocks on the network. User actions go
// through the Actions interface and surface their errors in the status bar.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gervaso-assistant/ocremote/internal/auth"
	"github.com/gervaso-assistant/ocremote/internal/client"
	"github.com/gervaso-assistant/ocremote/internal/composer"
	"github.com/gervaso-assistant/ocremote/internal/config"
	clierrors "github.com/gervaso-assistant/ocremote/internal/errors"
	"github.com/gervaso-assistant/ocremote/internal/poller"
	"github.com/gervaso-assistant/ocremote/internal/state"
	"github.com/gervaso-assistant/ocremote/internal/view"
)

const (
	snapshotInterval = 400 * time.Millisecond
	actionTimeout    = 15 * time.Second
	todoPaneMax      = 6
)

// Actions is the slice of the API client the console drives directly.
// Background reads go through the poller instead.
type Actions interface {
	SendPrompt(ctx context.Context, sessionID, text, directory string) error
	SendCommand(ctx context.Context, sessionID, name, arguments, directory string) error
	CreateSession(ctx context.Context, title string) (*client.RawSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Abort(ctx context.Context, sessionID string) error
}

type snapshotTickMsg time.Time

// actionDoneMsg reports a completed user action.
type actionDoneMsg struct {
	notice string
	err    error
}

// sessionCreatedMsg reports a completed create, carrying the new session ID
// so the console can select it.
type sessionCreatedMsg struct {
	id  string
	err error
}

// Model is the root Bubble Tea model for the console.
type Model struct {
	store     *view.Store
	sched     *poller.Scheduler
	actions   Actions
	serverKey string

	mode      composer.Mode
	asCommand bool

	width  int
	height int
	ready  bool

	cursor        int
	creating      bool
	confirmDelete bool

	snap view.Snapshot

	input      textinput.Model
	vp         viewport.Model
	spin       spinner.Model
	autoScroll bool

	notice string
	err    error
}

// New creates a console model. The scheduler must already be polling.
func New(store *view.Store, sched *poller.Scheduler, actions Actions, serverKey string, mode composer.Mode) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))

	return Model{
		store:      store,
		sched:      sched,
		actions:    actions,
		serverKey:  serverKey,
		mode:       mode,
		input:      input,
		vp:         viewport.New(80, 20),
		spin:       sp,
		autoScroll: true,
	}
}

// Init starts the UI tick and cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, snapshotTick(), textinput.Blink)
}

func snapshotTick() tea.Cmd {
	return tea.Tick(snapshotInterval, func(t time.Time) tea.Msg {
		return snapshotTickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = msg.Width - 4
		m.layoutViewport()
		m.refreshTranscript()

		return m, nil

	case snapshotTickMsg:
		m.snap = m.store.Snapshot()
		m.clampCursor()
		m.refreshTranscript()

		return m, snapshotTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.notice = msg.notice
		}

		m.sched.Refresh()

		return m, nil

	case sessionCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.notice = "session created"
		m.sched.Select(msg.id)

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.snap.Selected == "" {
		return m.handleListKey(msg)
	}

	return m.handleFocusKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The composer doubles as the new-session title input.
	if m.creating {
		switch {
		case key.Matches(msg, keys.Escape):
			m.creating = false
			m.input.Reset()

			return m, nil

		case key.Matches(msg, keys.Enter):
			title := strings.TrimSpace(m.input.Value())
			m.creating = false
			m.input.Reset()

			if title == "" {
				return m, nil
			}

			return m, m.createSession(title)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	if m.confirmDelete {
		m.confirmDelete = false

		if msg.String() == "y" {
			if s, ok := m.sessionAtCursor(); ok {
				return m, m.deleteSession(s.ID)
			}
		}

		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.snap.Sessions)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Enter):
		if s, ok := m.sessionAtCursor(); ok {
			m.notice = ""
			m.autoScroll = true
			m.sched.Select(s.ID)
		}

	case key.Matches(msg, keys.New):
		m.creating = true
		m.input.Reset()
		m.input.Placeholder = "session title"

		return m, m.input.Focus()

	case key.Matches(msg, keys.Delete):
		if _, ok := m.sessionAtCursor(); ok {
			m.confirmDelete = true
		}

	case key.Matches(msg, keys.Refresh):
		m.sched.Refresh()
		m.notice = "refreshing"
	}

	return m, nil
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.sched.ClearSelection()
		m.notice = ""
		m.input.Reset()

		return m, nil

	case key.Matches(msg, keys.ToggleCommand):
		if m.mode == composer.ModeToggle {
			m.asCommand = !m.asCommand
		}

		return m, nil

	case key.Matches(msg, keys.SwitchMode):
		if m.mode == composer.ModePrefix {
			m.mode = composer.ModeToggle
		} else {
			m.mode = composer.ModePrefix
			m.asCommand = false
		}

		return m, nil

	case key.Matches(msg, keys.Abort):
		return m, m.abortSession(m.snap.Selected)

	case key.Matches(msg, keys.Enter):
		dispatch := composer.Route(m.input.Value(), m.mode, m.asCommand)
		m.input.Reset()

		return m, m.dispatch(dispatch)

	case key.Matches(msg, keys.PageUp), key.Matches(msg, keys.PageDown):
		var cmd tea.Cmd

		wasAtBottom := m.vp.AtBottom()
		m.vp, cmd = m.vp.Update(msg)

		// Scrolling up pauses auto-scroll until the user returns to the end.
		if wasAtBottom && !m.vp.AtBottom() {
			m.autoScroll = false
		}

		if m.vp.AtBottom() {
			m.autoScroll = true
		}

		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// dispatch turns a routed composer input into the matching API action.
func (m Model) dispatch(d composer.Dispatch) tea.Cmd {
	sessionID := m.snap.Selected
	directory := m.selectedDirectory()

	switch d.Kind {
	case composer.KindPrompt:
		return m.action("prompt sent", func(ctx context.Context) error {
			return m.actions.SendPrompt(ctx, sessionID, d.Text, directory)
		})

	case composer.KindCommand:
		name, args := d.Name, d.Args

		return m.action("/"+name+" sent", func(ctx context.Context) error {
			return m.actions.SendCommand(ctx, sessionID, name, args, directory)
		})

	default:
		return nil
	}
}

// action runs a user action off the UI goroutine and reports the result.
func (m Model) action(notice string, run func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		return actionDoneMsg{notice: notice, err: run(ctx)}
	}
}

func (m Model) createSession(title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		created, err := m.actions.CreateSession(ctx, title)
		if err != nil {
			return sessionCreatedMsg{err: err}
		}

		return sessionCreatedMsg{id: created.ID}
	}
}

func (m Model) deleteSession(sessionID string) tea.Cmd {
	return m.action("session deleted", func(ctx context.Context) error {
		return m.actions.DeleteSession(ctx, sessionID)
	})
}

func (m Model) abortSession(sessionID string) tea.Cmd {
	return m.action("abort requested", func(ctx context.Context) error {
		return m.actions.Abort(ctx, sessionID)
	})
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.snap.Sessions) {
		m.cursor = len(m.snap.Sessions) - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) sessionAtCursor() (view.SessionView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Sessions) {
		return view.SessionView{}, false
	}

	return m.snap.Sessions[m.cursor], true
}

func (m Model) selectedSession() (view.SessionView, bool) {
	for _, s := range m.snap.Sessions {
		if s.ID == m.snap.Selected {
			return s, true
		}
	}

	return view.SessionView{}, false
}

func (m Model) selectedDirectory() string {
	if s, ok := m.selectedSession(); ok {
		return s.Directory
	}

	return ""
}

func (m *Model) layoutViewport() {
	// title(1) + todo header(1) + todos + composer(1) + status(1)
	todoLines := len(m.snap.Todos)
	if todoLines > todoPaneMax {
		todoLines = todoPaneMax
	}

	vpHeight := m.height - 4 - todoLines
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.vp.Width = m.width
	m.vp.Height = vpHeight
}

func (m *Model) refreshTranscript() {
	if m.snap.Selected == "" {
		return
	}

	m.layoutViewport()
	m.vp.SetContent(strings.Join(renderMessageLines(m.snap.Messages, m.width-2), "\n"))

	if m.autoScroll {
		m.vp.GotoBottom()
	}
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  ocremote  " + m.serverKey)

	var body string
	if m.snap.Selected == "" {
		body = m.viewList()
	} else {
		body = m.viewFocus()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.statusBar())
}

func (m Model) viewList() string {
	var sb strings.Builder

	sb.WriteString("\n" + sectionHeader.Render(fmt.Sprintf("  Sessions (%d)", len(m.snap.Sessions))) + "\n\n")

	for _, row := range renderSessionRows(m.snap.Sessions, m.cursor, m.width, time.Now()) {
		sb.WriteString(row + "\n")
	}

	if m.creating {
		sb.WriteString("\n  " + sectionHeader.Render("New session") + "  " + m.input.View() + "\n")
	}

	if m.confirmDelete {
		if s, ok := m.sessionAtCursor(); ok {
			sb.WriteString("\n  " + errorStyle.Render("delete "+displayTitle(s)+"? (y/n)") + "\n")
		}
	}

	// Fill to push the status bar to the bottom row.
	lines := strings.Count(sb.String(), "\n")
	for i := lines; i < m.height-2; i++ {
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) viewFocus() string {
	var sb strings.Builder

	sb.WriteString(m.vp.View() + "\n")

	todos := renderTodoLines(m.snap.Todos)
	if len(todos) > todoPaneMax {
		todos = todos[:todoPaneMax]
	}

	sb.WriteString(sectionHeader.Render("  Todo") + "\n")
	sb.WriteString(strings.Join(todos, "\n") + "\n")

	sb.WriteString(m.composerBadge() + " " + m.input.View())

	return sb.String()
}

func (m Model) composerBadge() string {
	if m.mode == composer.ModeToggle {
		if m.asCommand {
			return commandBadgeStyle.Render("CMD")
		}

		return promptBadgeStyle.Render("PROMPT")
	}

	return promptBadgeStyle.Render("/")
}

func (m Model) statusBar() string {
	var left string

	switch {
	case m.err != nil:
		left = errorStyle.Render(m.err.Error())
	case m.notice != "":
		left = m.notice
	case m.snap.Selected == "":
		left = "↑/↓ move  enter open  n new  d delete  r refresh  q quit"
	default:
		left = "esc back  enter send  ctrl+t cmd  ctrl+p mode  ctrl+x abort"
	}

	right := ""
	if !m.sched.Running() {
		right = m.spin.View() + " idle"
	}

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", pad) + right)
}

// Key bindings
var keys = struct {
	Quit          key.Binding
	ForceQuit     key.Binding
	Escape        key.Binding
	Enter         key.Binding
	Up            key.Binding
	Down          key.Binding
	New           key.Binding
	Delete        key.Binding
	Refresh       key.Binding
	Abort         key.Binding
	ToggleCommand key.Binding
	SwitchMode    key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
}{
	Quit:          key.NewBinding(key.WithKeys("q")),
	ForceQuit:     key.NewBinding(key.WithKeys("ctrl+c")),
	Escape:        key.NewBinding(key.WithKeys("esc")),
	Enter:         key.NewBinding(key.WithKeys("enter")),
	Up:            key.NewBinding(key.WithKeys("up", "k")),
	Down:          key.NewBinding(key.WithKeys("down", "j")),
	New:           key.NewBinding(key.WithKeys("n")),
	Delete:        key.NewBinding(key.WithKeys("d")),
	Refresh:       key.NewBinding(key.WithKeys("r")),
	Abort:         key.NewBinding(key.WithKeys("ctrl+x")),
	ToggleCommand: key.NewBinding(key.WithKeys("ctrl+t")),
	SwitchMode:    key.NewBinding(key.WithKeys("ctrl+p")),
	PageUp:        key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	PageDown:      key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
}

// Run opens the console against the configured server and blocks until the
// user quits. Composer mode and the selected session persist across runs.
func Run(logger *slog.Logger) error {
	cfg := config.Load()

	server := cfg.Server()
	if strings.TrimSpace(server.Host) == "" {
		return clierrors.NotConfigured()
	}

	_, server.Password = auth.GetPassword(server.Key())
	if server.Password == "" {
		return clierrors.NotAuthenticated()
	}

	prefs := state.LoadConsole()

	mode := composer.Mode(cfg.ComposerMode())
	if prefs.ComposerMode == string(composer.ModePrefix) || prefs.ComposerMode == string(composer.ModeToggle) {
		mode = composer.Mode(prefs.ComposerMode)
	}

	store := view.NewStore()
	sched := poller.New(store, cfg.PollInterval(), logger, func(s config.ServerConfig) poller.Fetcher {
		return client.New(s)
	})

	sched.SetServer(server)
	defer sched.Stop()

	if prefs.LastSession != "" && prefs.LastServer == server.Key() {
		sched.Select(prefs.LastSession)
	}

	model := New(store, sched, client.New(server), server.Key(), mode)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run console: %w", err)
	}

	if fm, ok := final.(Model); ok {
		_ = state.SaveConsole(state.Console{
			ComposerMode: string(fm.mode),
			LastSession:  fm.snap.Selected,
			LastServer:   fm.serverKey,
		})
	}

	return nil
}
