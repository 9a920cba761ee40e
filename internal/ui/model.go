package ui

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"github.com/five82/hylauncher/internal/config"
	"github.com/five82/hylauncher/internal/install"
	"github.com/five82/hylauncher/internal/launch"
	"github.com/five82/hylauncher/internal/prefs"
	"github.com/five82/hylauncher/internal/settings"
	"github.com/five82/hylauncher/internal/state"
)

// Screen is the active screen.
type Screen int

const (
	ScreenMain Screen = iota
	ScreenSettings
	ScreenLogs
)

// Launcher is the part of launch.Supervisor the UI drives.
type Launcher interface {
	Launch(ctx context.Context) error
	SaveSettings(settings.Settings) error
	SyncInstallation(installed bool)
}

// SettingsSource provides the settings shown on screen.
type SettingsSource interface {
	Current() settings.Settings
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Launcher  Launcher
	Settings  SettingsSource
	Store     *state.Store
	Layout    config.Layout
	Fs        afero.Fs // used by the log view and preferences
	PollTick  time.Duration
	ThemeName string
	// PrefsPath receives the theme whenever the user cycles it. Empty
	// keeps the choice for the session only.
	PrefsPath string
	Banners   []string
	// OpenFolder shows a directory in the file manager; nil uses
	// install.OpenFolder on Fs.
	OpenFolder func(dir string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	launcher   Launcher
	settings   SettingsSource
	store      *state.Store
	layout     config.Layout
	fs         afero.Fs
	pollTick   time.Duration
	prefsPath  string
	openFolder func(string) error
	pick       func(n int) int

	// UI state
	keys     keyMap
	theme    Theme
	screen   Screen
	showHelp bool
	width    int
	height   int

	// Launch state, driven by the status sink
	progress   bool
	affordance bool
	status     string
	severity   launch.Severity
	launching  bool
	spinner    spinner.Model

	snapshot state.Snapshot
	banner   banner
	notice   string

	form settingsForm

	logView  viewport.Model
	logLines []string
	logErr   error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	openFolder := opts.OpenFolder
	if openFolder == nil {
		openFolder = func(dir string) error { return install.OpenFolder(fs, dir) }
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:        ctx,
		launcher:   opts.Launcher,
		settings:   opts.Settings,
		store:      opts.Store,
		layout:     opts.Layout,
		fs:         fs,
		pollTick:   pollTick,
		prefsPath:  opts.PrefsPath,
		openFolder: openFolder,
		pick:       rand.Intn,
		keys:       DefaultKeyMap(),
		theme:      GetTheme(opts.ThemeName),
		status:     "Checking installation...",
		spinner:    sp,
		banner:     newBanner(opts.Banners),
	}
	m.applyTheme()
	m.initLogViewport()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		bannerRotateCmd(),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		if !m.snapshot.Probed || m.launcher == nil {
			return m, nil
		}
		return m, syncInstallationCmd(m.launcher, m.snapshot.Installed)

	case progressMsg:
		m.progress = bool(msg)
		if m.progress {
			return m, m.spinner.Tick
		}
		return m, nil

	case affordanceMsg:
		m.affordance = bool(msg)
		return m, nil

	case statusMsg:
		m.status = msg.text
		m.severity = msg.sev
		return m, nil

	case spinner.TickMsg:
		if !m.progress {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case launchDoneMsg:
		m.launching = false
		return m, nil

	case saveDoneMsg:
		if msg.err != nil {
			m.form.SetError(msg.err)
			return m, nil
		}
		m.screen = ScreenMain
		m.notice = "Settings saved"
		return m, nil

	case folderMsg:
		if msg.err != nil {
			m.notice = "Could not open " + msg.dir
		} else {
			m.notice = ""
		}
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.notice = "Could not save theme"
		}
		return m, nil

	case logsMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil

	case bannerRotateMsg:
		var cmd tea.Cmd
		m.banner, cmd = m.banner.Rotate()
		return m, cmd

	case bannerFadeMsg:
		var cmd tea.Cmd
		m.banner, cmd = m.banner.Fade(m.pick)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	switch m.screen {
	case ScreenSettings:
		return m.place(m.renderSettings())
	case ScreenLogs:
		return m.renderLogs()
	default:
		return m.place(m.renderMain())
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.screen {
	case ScreenSettings:
		return m.handleSettingsKey(msg)
	case ScreenLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.updateLogViewport()
		if m.prefsPath == "" {
			return m, nil
		}
		return m, savePrefsCmd(m.fs, m.prefsPath, m.theme.Name)

	case key.Matches(msg, m.keys.Launch):
		if !m.affordance || m.launching || m.launcher == nil {
			return m, nil
		}
		m.launching = true
		m.notice = ""
		return m, launchCmd(m.ctx, m.launcher)

	case key.Matches(msg, m.keys.Settings):
		if m.settings == nil || m.launcher == nil || m.launching || m.progress {
			return m, nil
		}
		m.form = newSettingsForm(m.settings.Current())
		m.screen = ScreenSettings
		m.notice = ""
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Logs):
		m.screen = ScreenLogs
		return m, loadLogsCmd(m.fs, m.layout.ErrorLogPath)

	case key.Matches(msg, m.keys.OpenGame):
		return m, openFolderCmd(m.openFolder, m.layout.GameDir)

	case key.Matches(msg, m.keys.OpenGameLogs):
		return m, openFolderCmd(m.openFolder, m.layout.GameLogsDir)

	case key.Matches(msg, m.keys.OpenLauncherLogs):
		return m, openFolderCmd(m.openFolder, m.layout.ErrorLogDir)
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd, action := m.form.Update(msg, m.keys)
	m.form = form
	switch action {
	case formCancel:
		m.screen = ScreenMain
		return m, nil
	case formSave:
		m.form.SetError(nil)
		return m, saveSettingsCmd(m.launcher, m.form.Value())
	}
	return m, cmd
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.screen = ScreenMain
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, loadLogsCmd(m.fs, m.layout.ErrorLogPath)
	}
	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

func (m *Model) applyTheme() {
	m.spinner.Style = m.theme.Styles().AccentText
}

func (m Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderMain() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(renderLogo(styles, m.width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Blend(m.banner.Opacity())).Render(m.banner.Current()))
	b.WriteString("\n\n")

	if m.settings != nil {
		s := m.settings.Current()
		b.WriteString(styles.MutedText.Render("Player "))
		b.WriteString(styles.Text.Bold(true).Render(s.Nickname))
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  ·  %d GB  ·  %s", s.RAMGigabytes, s.SelectedVersion)))
		b.WriteString("\n\n")
	}

	if m.affordance && !m.launching {
		b.WriteString(styles.Button.Render("PLAY"))
	} else {
		b.WriteString(styles.ButtonDisabled.Render("PLAY"))
	}
	b.WriteString("\n\n")

	if m.progress {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(styles.SeverityStyle(m.severity).Render(m.status))
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(m.notice))
	}

	panel := styles.Panel.Render(lipgloss.PlaceHorizontal(48, lipgloss.Center, b.String()))
	return lipgloss.JoinVertical(lipgloss.Center, panel, m.footer(m.keys.ShortHelp()...))
}

func (m Model) renderSettings() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.AccentText.Bold(true).Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View(styles))
	b.WriteString("\n")
	for _, p := range []struct{ label, path string }{
		{"Game data", m.layout.UserDataDir},
		{"Game logs", m.layout.GameLogsDir},
		{"Launcher logs", m.layout.ErrorLogDir},
	} {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-14s", p.label)))
		b.WriteString(styles.FaintText.Render(p.path))
		b.WriteString("\n")
	}

	panel := styles.Panel.Render(b.String())
	return lipgloss.JoinVertical(lipgloss.Center, panel,
		m.footer(m.keys.Next, m.keys.RAMUp, m.keys.NewUUID, m.keys.Save, m.keys.Back))
}

func (m Model) footer(bindings ...key.Binding) string {
	styles := m.theme.Styles()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.KeyHint.Render(h.Key)+" "+styles.MutedText.Render(h.Desc))
	}
	return styles.Footer.Render(strings.Join(parts, "  "))
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type launchDoneMsg struct{ err error }

type saveDoneMsg struct{ err error }

type prefsSavedMsg struct{ err error }

type folderMsg struct {
	dir string
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// syncInstallationCmd runs off the event loop: the supervisor reports back
// through the program, which would deadlock if called from Update.
func syncInstallationCmd(l Launcher, installed bool) tea.Cmd {
	return func() tea.Msg {
		l.SyncInstallation(installed)
		return nil
	}
}

func launchCmd(ctx context.Context, l Launcher) tea.Cmd {
	return func() tea.Msg {
		err := l.Launch(ctx)
		if errors.Is(err, launch.ErrLaunchInProgress) {
			err = nil
		}
		return launchDoneMsg{err: err}
	}
}

func saveSettingsCmd(l Launcher, next settings.Settings) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: l.SaveSettings(next)}
	}
}

func savePrefsCmd(fsys afero.Fs, path, theme string) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(fsys, path, prefs.Prefs{Theme: theme})}
	}
}

func openFolderCmd(open func(string) error, dir string) tea.Cmd {
	return func() tea.Msg {
		return folderMsg{dir: dir, err: open(dir)}
	}
}

// NewProgram builds the Bubble Tea program for opts.
func NewProgram(opts Options) *tea.Program {
	return tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
}
