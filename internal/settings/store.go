package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/five82/hylauncher/internal/syncutil"
)

// Store owns the current settings and their file. It is safe for concurrent use.
type Store struct {
	fs       afero.Fs
	path     string
	defaults Settings

	mu      syncutil.RWMutex
	current Settings
}

// fieldKeys maps on-disk keys to struct fields, in file order.
var fieldKeys = []struct{ key, field string }{
	{"nickname", "Nickname"},
	{"version", "SelectedVersion"},
	{"java_path", "JavaExecutablePath"},
	{"ram_gb", "RAMGigabytes"},
	{"uuid", "PlayerUUID"},
}

// NewStore returns a store whose current settings are the defaults until Load.
func NewStore(fsys afero.Fs, path string, defaults Settings) *Store {
	return &Store{
		fs:       fsys,
		path:     path,
		defaults: defaults,
		current:  defaults,
	}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Defaults returns the built-in settings.
func (s *Store) Defaults() Settings {
	return s.defaults
}

// Current returns a copy of the current settings.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Load reads the settings file and merges it over the defaults key by key.
// It never fails: unreadable or corrupt files are logged and yield the
// defaults, and individual keys with bad values keep their default.
func (s *Store) Load() Settings {
	loaded := s.read()

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	return loaded
}

func (s *Store) read() Settings {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Error().Err(&ReadError{Path: s.path, Err: err}).Msg("failed to load settings, using defaults")
		}
		return s.defaults
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s.defaults
	}

	raw := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		log.Error().Err(&ReadError{Path: s.path, Err: err}).Msg("failed to load settings, using defaults")
		return s.defaults
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		log.Error().Err(&ReadError{Path: s.path, Err: err}).Msg("failed to load settings, using defaults")
		return s.defaults
	}

	return merge(s.defaults, raw)
}

// merge overlays each known key of raw onto defaults. A key whose value does
// not decode or validate keeps the default.
func merge(defaults Settings, raw map[string]any) Settings {
	out := defaults
	for _, fk := range fieldKeys {
		value, ok := raw[fk.key]
		if !ok || value == nil {
			continue
		}

		candidate := out
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           &candidate,
		})
		if err != nil {
			continue
		}
		if err := decoder.Decode(map[string]any{fk.key: value}); err != nil {
			log.Warn().Str("key", fk.key).Err(err).Msg("ignoring settings value of the wrong type")
			continue
		}
		candidate = candidate.Normalize()
		if err := validate.StructPartial(candidate, fk.field); err != nil {
			log.Warn().Str("key", fk.key).Err(err).Msg("ignoring out of range settings value")
			continue
		}
		out = candidate
	}
	return out
}

// Save replaces the current settings and writes the full record to disk.
// Invalid settings are rejected with a ValidationError and nothing changes.
// A write failure is logged and returned as a WriteError; the new settings
// remain current for the session either way.
func (s *Store) Save(next Settings) error {
	next = next.Normalize()
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if err := s.write(next); err != nil {
		werr := &WriteError{Path: s.path, Err: err}
		log.Error().Err(werr).Msg("failed to save settings")
		return werr
	}
	return nil
}

func (s *Store) write(next Settings) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(next); err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = s.fs.Remove(tmpName) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
