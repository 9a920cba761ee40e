package config

import (
	"path/filepath"
	"runtime"
)

// Layout is the fixed directory layout of an installation, rooted at BaseDir.
type Layout struct {
	BaseDir      string
	GameDir      string // <base>/package/game/latest
	ClientPath   string // <game>/Client/<client executable>
	JavaPath     string // bundled runtime, used as the settings default
	UserDataDir  string // <base>/UserData
	GameLogsDir  string // <base>/UserData/Logs
	Backgrounds  string // <base>/backgrounds, banner images
	DataDir      string // launcher private data
	SettingsPath string
	ErrorLogDir  string
	ErrorLogPath string
}

const (
	settingsFileName = "Launcher-settings.json"
	errorLogFileName = "launcher_errors.log"
)

// Layout derives every launcher path from the configuration.
func (c Config) Layout() Layout {
	return NewLayout(c.BaseDir, c.DataDir, c.ClientExecutable)
}

// NewLayout builds a Layout. An empty dataDir derives <baseDir>/launcher and
// an empty clientExe uses the platform default.
func NewLayout(baseDir, dataDir, clientExe string) Layout {
	if clientExe == "" {
		clientExe = defaultClientExecutable()
	}
	if dataDir == "" {
		dataDir = filepath.Join(baseDir, "launcher")
	}
	game := filepath.Join(baseDir, "package", "game", "latest")
	userData := filepath.Join(baseDir, "UserData")
	errorLogDir := filepath.Join(dataDir, "error-logs")

	return Layout{
		BaseDir:      baseDir,
		GameDir:      game,
		ClientPath:   filepath.Join(game, "Client", clientExe),
		JavaPath:     filepath.Join(baseDir, "package", "jre", "latest", "bin", javaExecutable()),
		UserDataDir:  userData,
		GameLogsDir:  filepath.Join(userData, "Logs"),
		Backgrounds:  filepath.Join(baseDir, "backgrounds"),
		DataDir:      dataDir,
		SettingsPath: filepath.Join(dataDir, settingsFileName),
		ErrorLogDir:  errorLogDir,
		ErrorLogPath: filepath.Join(errorLogDir, errorLogFileName),
	}
}

// RequiredDirs lists the directories that must exist before the launcher
// writes anything or starts the client.
func (l Layout) RequiredDirs() []string {
	return []string{l.DataDir, l.ErrorLogDir, l.UserDataDir}
}

func javaExecutable() string {
	if runtime.GOOS == "windows" {
		return "java.exe"
	}
	return "java"
}
