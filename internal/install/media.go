package install

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// Backgrounds lists the image files in dir, sorted by name. A missing or
// unreadable directory yields nothing.
func Backgrounds(fs afero.Fs, dir string) []string {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// BannerTitle turns an image file name into display text.
func BannerTitle(name string) string {
	title := strings.TrimSuffix(name, filepath.Ext(name))
	title = strings.NewReplacer("_", " ", "-", " ").Replace(title)
	return strings.Join(strings.Fields(title), " ")
}

// OpenFolder creates dir when missing and shows it in the desktop file
// manager without waiting. A directory that cannot be created is returned
// as a *DirectoryError.
func OpenFolder(fs afero.Fs, dir string) error {
	return openFolder(fs, dir, startDetached)
}

func openFolder(fs afero.Fs, dir string, start func(name string, args ...string) error) error {
	if err := EnsureDirs(fs, dir); err != nil {
		return err
	}
	name, args := openerCommand(runtime.GOOS, dir)
	if err := start(name, args...); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("failed to open folder")
		return err
	}
	return nil
}

func startDetached(name string, args ...string) error {
	//nolint:gosec // dir is one of the layout's directories
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func openerCommand(goos, dir string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{dir}
	case "darwin":
		return "open", []string{dir}
	default:
		return "xdg-open", []string{dir}
	}
}
