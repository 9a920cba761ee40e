package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hylauncher/internal/settings"
)

const (
	fieldNickname = iota
	fieldJavaPath
	fieldUUID
	fieldRAM
	fieldCount
)

var fieldLabels = [fieldCount]string{"Nickname", "Java path", "Player UUID", "Memory"}

type formAction int

const (
	formNone formAction = iota
	formSave
	formCancel
)

// settingsForm edits a copy of the settings. Nothing is stored until the
// model saves the value it returns.
type settingsForm struct {
	inputs [fieldRAM]textinput.Model
	ram    int
	focus  int
	base   settings.Settings
	err    string
}

func newSettingsForm(s settings.Settings) settingsForm {
	f := settingsForm{base: s, ram: clampRAM(s.RAMGigabytes)}

	values := [fieldRAM]string{s.Nickname, s.JavaExecutablePath, s.PlayerUUID}
	// Names longer than the input limit may come from an existing file.
	limits := [fieldRAM]int{max(32, len(s.Nickname)), 1024, 64}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = limits[i]
		in.Width = 40
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.setFocus(fieldNickname)
	return f
}

// Value returns the edited settings.
func (f settingsForm) Value() settings.Settings {
	s := f.base
	s.Nickname = f.inputs[fieldNickname].Value()
	s.JavaExecutablePath = f.inputs[fieldJavaPath].Value()
	s.PlayerUUID = f.inputs[fieldUUID].Value()
	s.RAMGigabytes = f.ram
	return s
}

func (f *settingsForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// SetError shows which fields were rejected on save.
func (f *settingsForm) SetError(err error) {
	if err == nil {
		f.err = ""
		return
	}
	var verr *settings.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		f.err = "Invalid: " + strings.Join(verr.Fields, ", ")
		return
	}
	f.err = err.Error()
}

func (f settingsForm) Update(msg tea.KeyMsg, keys keyMap) (settingsForm, tea.Cmd, formAction) {
	switch {
	case key.Matches(msg, keys.Back):
		return f, nil, formCancel
	case key.Matches(msg, keys.Save):
		return f, nil, formSave
	case key.Matches(msg, keys.Confirm):
		if f.focus == fieldCount-1 {
			return f, nil, formSave
		}
		f.setFocus(f.focus + 1)
		return f, nil, formNone
	case key.Matches(msg, keys.Next):
		f.setFocus(f.focus + 1)
		return f, nil, formNone
	case key.Matches(msg, keys.Prev):
		f.setFocus(f.focus - 1)
		return f, nil, formNone
	case key.Matches(msg, keys.NewUUID):
		f.inputs[fieldUUID].SetValue(settings.NewOfflineUUID())
		return f, nil, formNone
	}

	if f.focus == fieldRAM {
		switch {
		case key.Matches(msg, keys.RAMDown):
			f.ram = clampRAM(f.ram - 1)
		case key.Matches(msg, keys.RAMUp):
			f.ram = clampRAM(f.ram + 1)
		}
		return f, nil, formNone
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, formNone
}

func clampRAM(gb int) int {
	return max(settings.MinRAMGigabytes, min(settings.MaxRAMGigabytes, gb))
}

func (f settingsForm) View(styles Styles) string {
	var b strings.Builder
	for i := 0; i < fieldCount; i++ {
		label := styles.MutedText.Render(fmt.Sprintf("%-12s", fieldLabels[i]))
		if i == f.focus {
			label = styles.Focused.Render(fmt.Sprintf("%-12s", fieldLabels[i]))
		}
		b.WriteString(label)
		b.WriteString(" ")
		if i == fieldRAM {
			b.WriteString(ramSlider(f.ram, styles))
		} else {
			b.WriteString(f.inputs[i].View())
		}
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(f.err))
		b.WriteString("\n")
	}
	return b.String()
}

// ramSlider renders e.g. "◀ ■■■□□□□□□□□□□□□ ▶ 4 GB".
func ramSlider(gb int, styles Styles) string {
	gb = clampRAM(gb)
	steps := settings.MaxRAMGigabytes - settings.MinRAMGigabytes + 1
	filled := gb - settings.MinRAMGigabytes + 1
	bar := styles.AccentText.Render(strings.Repeat("■", filled)) +
		styles.FaintText.Render(strings.Repeat("□", steps-filled))
	return fmt.Sprintf("◀ %s ▶ %s", bar, styles.Text.Render(fmt.Sprintf("%d GB", gb)))
}
