package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/five82/hylauncher/internal/logtail"
)

// logViewLines is how much of the error log the log view shows.
const logViewLines = 200

type logsMsg struct {
	lines []string
	err   error
}

func loadLogsCmd(fs afero.Fs, path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(fs, path, logViewLines)
		return logsMsg{lines: lines, err: err}
	}
}

func (m *Model) initLogViewport() {
	m.logView = viewport.New(max(m.width-4, 20), max(m.height-6, 5))
}

func (m *Model) updateLogViewport() {
	m.logView.Width = max(m.width-4, 20)
	m.logView.Height = max(m.height-6, 5)
	m.logView.SetContent(m.renderLogLines())
	m.logView.GotoBottom()
}

func (m Model) renderLogLines() string {
	styles := m.theme.Styles()
	if m.logErr != nil {
		return styles.DangerText.Render("Could not read log: " + m.logErr.Error())
	}
	if len(m.logLines) == 0 {
		return styles.MutedText.Render("No launcher errors logged.")
	}

	var b strings.Builder
	for i, line := range m.logLines {
		if i > 0 {
			b.WriteString("\n")
		}
		entry, ok := logtail.Parse(line)
		if !ok {
			b.WriteString(styles.Text.Render(entry.Message))
			continue
		}
		b.WriteString(styles.FaintText.Render(entry.Timestamp))
		b.WriteString(" ")
		b.WriteString(styles.LevelStyle(entry.Level).Render(entry.Level))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(entry.Message))
	}
	return b.String()
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Launcher log"))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(m.layout.ErrorLogPath))
	b.WriteString("\n\n")
	b.WriteString(m.logView.View())
	b.WriteString("\n\n")
	b.WriteString(m.footer(m.keys.Reload, m.keys.Back))
	return b.String()
}
