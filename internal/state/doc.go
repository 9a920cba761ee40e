// Package state shares the latest installation probe result between the
// background poller and the UI.
//
// # Architecture
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌──────────────────┐
//	│ install.Probe  │            │ tick             │
//	│      ↓         │            │      ↓           │
//	│ store.Update() │───────────→│ store.Snapshot() │
//	│      ↓         │  (mutex)   │      ↓           │
//	│ tick or nudge  │            │ SyncInstallation │
//	└────────────────┘            └──────────────────┘
//
// The poller writes on its own schedule and the UI reads on its own; neither
// waits for the other. Snapshot returns a value copy, so the UI can keep it
// across renders without further locking.
//
// # Zero Value
//
// A zero Store is ready to use. Its snapshot reports Probed == false until
// the first Update, which lets the UI tell "not checked yet" apart from
// "client not found".
package state
