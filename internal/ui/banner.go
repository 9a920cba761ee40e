package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Banner rotation timing.
const (
	bannerInterval = 8 * time.Second
	bannerFade     = time.Second
	fadeSteps      = 5
)

// Built-in banners used when the installation has no background images.
var defaultBanners = []string{
	"Explore Orbis",
	"Build together",
	"Adventure awaits",
	"Forge your legend",
}

type bannerPhase int

const (
	bannerSteady bannerPhase = iota
	bannerFadingOut
	bannerFadingIn
)

type (
	bannerRotateMsg struct{}
	bannerFadeMsg   struct{}
)

// banner cycles through entries: every interval it fades out, switches to a
// random different entry and fades back in. It is pure UI state.
type banner struct {
	entries []string
	index   int
	phase   bannerPhase
	step    int
}

func newBanner(entries []string) banner {
	if len(entries) == 0 {
		entries = defaultBanners
	}
	return banner{entries: entries}
}

func (b banner) Current() string {
	return b.entries[b.index]
}

// Opacity is 1 when steady and moves linearly to and from 0 while fading.
func (b banner) Opacity() float64 {
	switch b.phase {
	case bannerFadingOut:
		return 1 - float64(b.step)/fadeSteps
	case bannerFadingIn:
		return float64(b.step) / fadeSteps
	default:
		return 1
	}
}

// Rotate starts a fade-out. With a single entry there is nothing to rotate
// and the next interval is simply scheduled.
func (b banner) Rotate() (banner, tea.Cmd) {
	if len(b.entries) < 2 || b.phase != bannerSteady {
		return b, bannerRotateCmd()
	}
	b.phase = bannerFadingOut
	b.step = 0
	return b, bannerFadeCmd()
}

// Fade advances one fade step. pick(n) returns a value in [0, n).
func (b banner) Fade(pick func(n int) int) (banner, tea.Cmd) {
	switch b.phase {
	case bannerFadingOut:
		b.step++
		if b.step >= fadeSteps {
			b.index = nextBanner(pick, b.index, len(b.entries))
			b.phase = bannerFadingIn
			b.step = 0
		}
		return b, bannerFadeCmd()
	case bannerFadingIn:
		b.step++
		if b.step >= fadeSteps {
			b.phase = bannerSteady
			b.step = 0
			return b, bannerRotateCmd()
		}
		return b, bannerFadeCmd()
	default:
		return b, nil
	}
}

// nextBanner picks uniformly among the indexes other than current.
func nextBanner(pick func(n int) int, current, n int) int {
	if n < 2 {
		return current
	}
	i := pick(n - 1)
	if i >= current {
		i++
	}
	return i
}

func bannerRotateCmd() tea.Cmd {
	return tea.Tick(bannerInterval, func(time.Time) tea.Msg {
		return bannerRotateMsg{}
	})
}

func bannerFadeCmd() tea.Cmd {
	return tea.Tick(bannerFade/fadeSteps, func(time.Time) tea.Msg {
		return bannerFadeMsg{}
	})
}
