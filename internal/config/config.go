package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the launcher's own settings from launcher.toml.
type Config struct {
	BaseDir          string
	DataDir          string // empty derives <BaseDir>/launcher
	ClientExecutable string
	LaunchDelay      time.Duration
	PollInterval     time.Duration
	Theme            string
	LogLevel         string
}

const (
	appName        = "hylauncher"
	configFileName = "launcher.toml"

	defaultLaunchDelay  = 1500 * time.Millisecond
	maxLaunchDelay      = 10 * time.Second
	defaultPollInterval = 5 * time.Second
	minPollInterval     = time.Second
	defaultTheme        = "Dracula"
	defaultLogLevel     = "error"
)

// executableDir is swapped out in tests.
var executableDir = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// DefaultPath returns the launcher.toml location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// Defaults returns the configuration used when launcher.toml is absent.
func Defaults() Config {
	return Config{
		BaseDir:          defaultBaseDir(),
		ClientExecutable: defaultClientExecutable(),
		LaunchDelay:      defaultLaunchDelay,
		PollInterval:     defaultPollInterval,
		Theme:            defaultTheme,
		LogLevel:         defaultLogLevel,
	}
}

// Load locates and parses launcher.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseDir          string `toml:"base_dir"`
		DataDir          string `toml:"data_dir"`
		ClientExecutable string `toml:"client_executable"`
		LaunchDelay      string `toml:"launch_delay"`
		PollInterval     string `toml:"poll_interval"`
		Theme            string `toml:"theme"`
		LogLevel         string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.BaseDir); dir != "" {
		cfg.BaseDir = mustExpand(dir)
	}
	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	if exe := strings.TrimSpace(raw.ClientExecutable); exe != "" {
		cfg.ClientExecutable = filepath.Base(exe)
	}
	cfg.LaunchDelay = parseDelay(raw.LaunchDelay)
	cfg.PollInterval = parsePollInterval(raw.PollInterval)
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// WithBaseDir returns a copy of c rooted at dir. A blank dir leaves c unchanged.
func (c Config) WithBaseDir(dir string) Config {
	if strings.TrimSpace(dir) == "" {
		return c
	}
	c.BaseDir = mustExpand(dir)
	return c
}

func parseDelay(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultLaunchDelay
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return defaultLaunchDelay
	}
	if d > maxLaunchDelay {
		return maxLaunchDelay
	}
	return d
}

func parsePollInterval(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultPollInterval
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultPollInterval
	}
	if d < minPollInterval {
		return minPollInterval
	}
	return d
}

func defaultBaseDir() string {
	dir, err := executableDir()
	if err == nil && dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func defaultClientExecutable() string {
	if runtime.GOOS == "windows" {
		return "HytaleClient.exe"
	}
	return "HytaleClient"
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
