package ui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/five82/hylauncher/internal/config"
	"github.com/five82/hylauncher/internal/launch"
	"github.com/five82/hylauncher/internal/prefs"
	"github.com/five82/hylauncher/internal/settings"
	"github.com/five82/hylauncher/internal/state"
)

type fakeLauncher struct {
	mu        sync.Mutex
	launches  int
	saved     []settings.Settings
	synced    []bool
	saveErr   error
	launchErr error
}

func (f *fakeLauncher) Launch(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launches++
	return f.launchErr
}

func (f *fakeLauncher) SaveSettings(s settings.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, s)
	return f.saveErr
}

func (f *fakeLauncher) SyncInstallation(installed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.synced = append(f.synced, installed)
}

type fixedSettings settings.Settings

func (f fixedSettings) Current() settings.Settings { return settings.Settings(f) }

var testLayout = config.NewLayout("/app", "", "HytaleClient.exe")

func newTestModel(l *fakeLauncher) Model {
	return New(Options{
		Launcher: l,
		Settings: fixedSettings(settings.Defaults(testLayout, "alex")),
		Store:    &state.Store{},
		Layout:   testLayout,
		Fs:       afero.NewMemMapFs(),
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestLaunchKey_IgnoredWhileAffordanceDisabled(t *testing.T) {
	l := &fakeLauncher{}
	m := newTestModel(l)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("enter with disabled affordance returned a command")
	}
	if m.launching {
		t.Fatalf("launching = true, want false")
	}
}

func TestLaunchKey_RunsSupervisorOnce(t *testing.T) {
	l := &fakeLauncher{}
	m := newTestModel(l)
	m, _ = update(t, m, affordanceMsg(true))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter returned nil command, want launch")
	}
	if !m.launching {
		t.Fatalf("launching = false after enter")
	}

	// A second press before the launch reports back does nothing.
	if _, again := update(t, m, tea.KeyMsg{Type: tea.KeySpace}); again != nil {
		t.Fatalf("second press returned a command")
	}

	msg := cmd()
	if _, ok := msg.(launchDoneMsg); !ok {
		t.Fatalf("launch command returned %T, want launchDoneMsg", msg)
	}
	if l.launches != 1 {
		t.Fatalf("launches = %d, want 1", l.launches)
	}

	m, _ = update(t, m, msg)
	if m.launching {
		t.Fatalf("launching = true after launchDoneMsg")
	}
}

func TestLaunchCmd_SwallowsInProgress(t *testing.T) {
	l := &fakeLauncher{launchErr: launch.ErrLaunchInProgress}
	msg := launchCmd(context.Background(), l)().(launchDoneMsg)
	if msg.err != nil {
		t.Fatalf("err = %v, want nil", msg.err)
	}
}

func TestSnapshot_SyncsInstallation(t *testing.T) {
	l := &fakeLauncher{}
	m := newTestModel(l)

	if _, cmd := update(t, m, snapshotMsg(state.Snapshot{})); cmd != nil {
		t.Fatalf("unprobed snapshot returned a command")
	}

	_, cmd := update(t, m, snapshotMsg(state.Snapshot{Probed: true, Installed: true}))
	if cmd == nil {
		t.Fatalf("probed snapshot returned nil command")
	}
	cmd()
	if len(l.synced) != 1 || !l.synced[0] {
		t.Fatalf("synced = %v, want [true]", l.synced)
	}
}

func TestSinkMessages_DriveMainScreen(t *testing.T) {
	m := newTestModel(&fakeLauncher{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = update(t, m, statusMsg{text: "Launch failed!", sev: launch.SeverityError})
	m, cmd := update(t, m, progressMsg(true))
	if cmd == nil {
		t.Fatalf("progress on returned nil command, want spinner tick")
	}
	if !m.progress {
		t.Fatalf("progress = false, want true")
	}
	if m.severity != launch.SeverityError {
		t.Fatalf("severity = %v, want error", m.severity)
	}

	view := m.View()
	for _, want := range []string{"Launch failed!", "PLAY", "alex"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View missing %q", want)
		}
	}
}

func TestSettingsScreen_SaveAndCancel(t *testing.T) {
	l := &fakeLauncher{}
	m := newTestModel(l)

	m, _ = update(t, m, runes("s"))
	if m.screen != ScreenSettings {
		t.Fatalf("screen = %v, want settings", m.screen)
	}

	oldUUID := m.form.Value().PlayerUUID
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if got := m.form.Value().PlayerUUID; got == oldUUID || got == "" {
		t.Fatalf("PlayerUUID = %q, want a fresh value", got)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatalf("ctrl+s returned nil command")
	}
	msg := cmd()
	if len(l.saved) != 1 || l.saved[0].PlayerUUID == oldUUID {
		t.Fatalf("saved = %#v, want one save with the new uuid", l.saved)
	}
	m, _ = update(t, m, msg)
	if m.screen != ScreenMain {
		t.Fatalf("screen = %v after save, want main", m.screen)
	}

	m, _ = update(t, m, runes("s"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != ScreenMain {
		t.Fatalf("screen = %v after esc, want main", m.screen)
	}
	if len(l.saved) != 1 {
		t.Fatalf("esc saved settings")
	}
}

func TestSettingsScreen_ValidationErrorStays(t *testing.T) {
	l := &fakeLauncher{saveErr: &settings.ValidationError{Fields: []string{"nickname"}}}
	m := newTestModel(l)

	m, _ = update(t, m, runes("s"))
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = update(t, m, cmd())

	if m.screen != ScreenSettings {
		t.Fatalf("screen = %v, want settings after rejected save", m.screen)
	}
	if !strings.Contains(m.form.err, "nickname") {
		t.Fatalf("form error = %q, want it to name nickname", m.form.err)
	}
}

func TestLogsScreen_ShowsTail(t *testing.T) {
	fs := afero.NewMemMapFs()
	line := "2025-01-02 03:04:05,678 - ERROR - failed to launch client"
	if err := afero.WriteFile(fs, testLayout.ErrorLogPath, []byte(line+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m := New(Options{Layout: testLayout, Fs: fs})

	m, cmd := update(t, m, runes("L"))
	if m.screen != ScreenLogs || cmd == nil {
		t.Fatalf("L did not open the log view")
	}
	m, _ = update(t, m, cmd())

	if len(m.logLines) != 1 {
		t.Fatalf("logLines = %v, want 1 line", m.logLines)
	}
	if !strings.Contains(m.renderLogLines(), "failed to launch client") {
		t.Fatalf("rendered log missing message")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != ScreenMain {
		t.Fatalf("esc did not leave the log view")
	}
}

func TestOpenFolderKeys(t *testing.T) {
	var opened []string
	m := New(Options{Layout: testLayout, OpenFolder: func(dir string) error {
		opened = append(opened, dir)
		return nil
	}})

	for _, k := range []string{"g", "u", "o"} {
		_, cmd := update(t, m, runes(k))
		if cmd == nil {
			t.Fatalf("%q returned nil command", k)
		}
		cmd()
	}

	want := []string{testLayout.GameDir, testLayout.GameLogsDir, testLayout.ErrorLogDir}
	if strings.Join(opened, "|") != strings.Join(want, "|") {
		t.Fatalf("opened = %v, want %v", opened, want)
	}
}

func TestHelpAndThemeKeys(t *testing.T) {
	m := newTestModel(&fakeLauncher{})

	m, _ = update(t, m, runes("?"))
	if !m.showHelp {
		t.Fatalf("? did not open help")
	}
	m, _ = update(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("any key should close help")
	}

	before := m.theme.Name
	m, _ = update(t, m, runes("T"))
	if m.theme.Name == before {
		t.Fatalf("T did not change theme from %q", before)
	}
}

func TestThemeCycle_PersistsPreference(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := prefs.Path("/app/launcher")
	m := New(Options{
		Layout:    testLayout,
		Fs:        fs,
		ThemeName: "Dracula",
		PrefsPath: path,
	})

	m, cmd := update(t, m, runes("T"))
	if cmd == nil {
		t.Fatalf("T returned no command with PrefsPath set")
	}
	msg := cmd()
	if saved, ok := msg.(prefsSavedMsg); !ok || saved.err != nil {
		t.Fatalf("cmd() = %#v, want prefsSavedMsg without error", msg)
	}
	if got := prefs.Load(fs, path).Theme; got != m.theme.Name {
		t.Fatalf("saved theme = %q, want %q", got, m.theme.Name)
	}
}
