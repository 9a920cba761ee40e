// Package ui provides the terminal user interface of the launcher.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all screen state and never
// calls the launch supervisor from Update: launches, settings saves and
// installation syncs run inside tea.Cmds, and the supervisor reports back
// through ProgramSink, which turns each StatusSink call into a message.
//
// # Package Structure
//
//   - model.go: Model, screens, key handling and the main screen
//   - sink.go: ProgramSink, the StatusSink that feeds the program
//   - settings_form.go: nickname, Java path, UUID inputs and the RAM slider
//   - banner.go: rotating banner with a fade between entries
//   - logs.go: tail of the launcher error log
//   - theme.go, keys.go, help.go, logo.go: presentation helpers
//
// # Screens
//
//   - Main: logo, banner, player summary, PLAY button and status line
//   - Settings: edit and save the launch settings
//   - Logs: the last lines of the error log, coloured by level
//
// # Event Flow
//
//  1. Init schedules the snapshot tick and the banner rotation
//  2. Each tick reads state.Store and forwards the probe result to the
//     supervisor, which updates the PLAY affordance and status text
//  3. enter starts Launcher.Launch in a command; progress arrives as
//     messages from ProgramSink
//  4. On a successful spawn the supervisor quits the program
//
// # Usage Example
//
//	sink := &ui.ProgramSink{}
//	sup := launch.NewSupervisor(launch.Options{Sink: sink, ...})
//	p := ui.NewProgram(ui.Options{Context: ctx, Launcher: sup, ...})
//	sink.Attach(p)
//	_, err := p.Run()
package ui
