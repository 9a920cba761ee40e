package ui

import "strings"

var logoLines = []string{
	"█ █ █ █ ▀█▀ ▄▀▄ █   █▀▀",
	"█▀█  █   █  █▀█ █   █▀ ",
	"▀ ▀  ▀   ▀  ▀ ▀ ▀▀▀ ▀▀▀",
}

// renderLogo returns the wordmark, or plain text when the terminal is too
// narrow for it.
func renderLogo(styles Styles, width int) string {
	if width > 0 && width < len([]rune(logoLines[0]))+4 {
		return styles.Logo.Render("HYTALE")
	}
	return styles.Logo.Render(strings.Join(logoLines, "\n"))
}
