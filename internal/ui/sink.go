package ui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hylauncher/internal/launch"
)

type (
	progressMsg   bool
	affordanceMsg bool
	statusMsg     struct {
		text string
		sev  launch.Severity
	}
)

// ProgramSink forwards status updates to a running Bubble Tea program. It
// can be handed to the launch supervisor before the program exists; updates
// sent before Attach are dropped.
type ProgramSink struct {
	program atomic.Pointer[tea.Program]
}

// Attach starts forwarding to p.
func (s *ProgramSink) Attach(p *tea.Program) {
	s.program.Store(p)
}

func (s *ProgramSink) send(msg tea.Msg) {
	if p := s.program.Load(); p != nil {
		p.Send(msg)
	}
}

func (s *ProgramSink) SetProgressVisible(visible bool) { s.send(progressMsg(visible)) }

func (s *ProgramSink) SetAffordanceEnabled(enabled bool) { s.send(affordanceMsg(enabled)) }

func (s *ProgramSink) SetStatusMessage(text string, sev launch.Severity) {
	s.send(statusMsg{text: text, sev: sev})
}
