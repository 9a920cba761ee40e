package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/hylauncher/internal/launch"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Launcher panel
	SurfaceAlt string // Secondary surfaces (inputs, help)

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 4),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 3),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Padding(0, 3),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		KeyHint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BorderFocus)).
			Bold(true),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Logo           lipgloss.Style
	Panel          lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Footer         lipgloss.Style
	KeyHint        lipgloss.Style
	Focused        lipgloss.Style
}

// SeverityStyle returns the status line style for a severity.
func (s Styles) SeverityStyle(sev launch.Severity) lipgloss.Style {
	switch sev {
	case launch.SeverityError:
		return s.DangerText
	case launch.SeverityWarning:
		return s.WarningText
	default:
		return s.MutedText
	}
}

// LevelStyle returns the style for an error log level such as "ERROR".
func (s Styles) LevelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR", "FATAL", "PANIC":
		return s.DangerText
	case "WARN":
		return s.WarningText
	case "INFO":
		return s.SuccessText
	default:
		return s.InfoText
	}
}

// Blend returns the color a fraction t of the way from the background to
// the text color. It is used to fade the banner in and out.
func (t Theme) Blend(frac float64) lipgloss.Color {
	from, err := colorful.Hex(t.Background)
	if err != nil {
		return lipgloss.Color(t.Text)
	}
	to, err := colorful.Hex(t.Text)
	if err != nil {
		return lipgloss.Color(t.Text)
	}
	switch {
	case frac <= 0:
		return lipgloss.Color(t.Background)
	case frac >= 1:
		return lipgloss.Color(t.Text)
	}
	return lipgloss.Color(from.BlendLab(to, frac).Clamped().Hex())
}

// Theme definitions

var themes = map[string]Theme{
	"Dracula":  draculaTheme(),
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Dracula", "Nightfox", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Background: "#191A21", // BGDarker
		Surface:    "#282A36", // Background
		SurfaceAlt: "#343746", // BGLight

		Border:      "#44475A", // Selection
		BorderFocus: "#BD93F9", // Purple

		Text:    "#F8F8F2", // Foreground
		Muted:   "#6272A4", // Comment
		Faint:   "#44475A", // Selection
		Accent:  "#BD93F9", // Purple
		Success: "#50FA7B", // Green
		Warning: "#FFB86C", // Orange
		Danger:  "#FF5555", // Red
		Info:    "#8BE9FD", // Cyan
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}
