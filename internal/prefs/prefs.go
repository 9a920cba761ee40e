// Package prefs persists UI preferences that the user changes from inside
// the launcher. They live next to the settings in <data dir>/prefs.toml.
package prefs

import (
	"fmt"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// FileName is the preferences file name inside the launcher data dir.
const FileName = "prefs.toml"

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
}

// Path returns the preferences file inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads preferences from path. A missing, unreadable or corrupt file
// yields empty preferences so callers fall back to their own defaults.
func Load(fsys afero.Fs, path string) Prefs {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Prefs{} // Graceful degradation
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}
	}
	p.Theme = strings.TrimSpace(p.Theme)
	return p
}

// Save writes preferences to path, creating directories as needed.
func Save(fsys afero.Fs, path string, p Prefs) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
