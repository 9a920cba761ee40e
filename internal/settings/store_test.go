package settings

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/hylauncher/internal/config"
)

const settingsPath = "/app/launcher/Launcher-settings.json"

func testDefaults() Settings {
	return Defaults(config.NewLayout("/app", "", "HytaleClient.exe"), "alex")
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func logLines(buf *bytes.Buffer) []string {
	trimmed := strings.TrimSpace(buf.String())
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestDefaults(t *testing.T) {
	d := testDefaults()
	assert.Equal(t, "alex", d.Nickname)
	assert.Equal(t, "Latest Release", d.SelectedVersion)
	assert.Equal(t, filepath.Join("/app", "package", "jre", "latest", "bin"), filepath.Dir(d.JavaExecutablePath))
	assert.Equal(t, 4, d.RAMGigabytes)
	assert.Equal(t, "32283228-3228-3228-3228-322832283228", d.PlayerUUID)
	assert.NoError(t, d.Validate())

	blank := Defaults(config.NewLayout("/app", "", ""), "  ")
	assert.Equal(t, "Player", blank.Nickname)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	buf := captureLog(t)
	store := NewStore(afero.NewMemMapFs(), settingsPath, testDefaults())

	got := store.Load()

	assert.Equal(t, testDefaults(), got)
	assert.Equal(t, got, store.Current())
	assert.Empty(t, logLines(buf), "a missing file is not an error")
}

func TestLoad_EmptyFileReturnsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte("  \n"), 0o644))

	got := NewStore(fs, settingsPath, testDefaults()).Load()

	assert.Equal(t, testDefaults(), got)
}

func TestLoad_PartialRecordMergesOverDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(`{"nickname": "Foo"}`), 0o644))

	got := NewStore(fs, settingsPath, testDefaults()).Load()

	want := testDefaults()
	want.Nickname = "Foo"
	assert.Equal(t, want, got)
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	body := `{"uuid": "abc", "theme": "dark", "ram_gb": 8, "extra": {"nested": true}}`
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(body), 0o644))

	got := NewStore(fs, settingsPath, testDefaults()).Load()

	want := testDefaults()
	want.PlayerUUID = "abc"
	want.RAMGigabytes = 8
	assert.Equal(t, want, got)
}

func TestLoad_CorruptFileFallsBackAndLogsOnce(t *testing.T) {
	buf := captureLog(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(`{"nickname": "Fo`), 0o644))

	got := NewStore(fs, settingsPath, testDefaults()).Load()

	assert.Equal(t, testDefaults(), got)
	lines := logLines(buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"level":"error"`)
	assert.Contains(t, lines[0], "failed to load settings")
}

func TestLoad_BadValuesKeepDefaultsPerKey(t *testing.T) {
	captureLog(t)
	cases := []struct {
		name string
		body string
		want func(*Settings)
	}{
		{"ram too high", `{"ram_gb": 64, "nickname": "Sam"}`, func(s *Settings) { s.Nickname = "Sam" }},
		{"ram too low", `{"ram_gb": 1}`, func(*Settings) {}},
		{"ram fractional", `{"ram_gb": 4.5}`, func(*Settings) {}},
		{"ram as string", `{"ram_gb": "12"}`, func(s *Settings) { s.RAMGigabytes = 12 }},
		{"ram garbage string", `{"ram_gb": "lots"}`, func(*Settings) {}},
		{"blank nickname", `{"nickname": "   "}`, func(*Settings) {}},
		{"long nickname kept", `{"nickname": "` + strings.Repeat("N", 40) + `"}`, func(s *Settings) { s.Nickname = strings.Repeat("N", 40) }},
		{"nickname trimmed", `{"nickname": "  Kim "}`, func(s *Settings) { s.Nickname = "Kim" }},
		{"null java", `{"java_path": null, "version": "Pre-release"}`, func(s *Settings) { s.SelectedVersion = "Pre-release" }},
		{"object uuid", `{"uuid": {"a": 1}}`, func(*Settings) {}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(tc.body), 0o644))

			got := NewStore(fs, settingsPath, testDefaults()).Load()

			want := testDefaults()
			tc.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoad_TrailingDataFallsBack(t *testing.T) {
	for _, body := range []string{
		`{"nickname": "Foo"} garbage{{`,
		`{"nickname": "Foo"}{"nickname": "Bar"}`,
	} {
		buf := captureLog(t)
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(body), 0o644))

		got := NewStore(fs, settingsPath, testDefaults()).Load()

		assert.Equal(t, testDefaults(), got, body)
		lines := logLines(buf)
		require.Len(t, lines, 1, body)
		assert.Contains(t, lines[0], "failed to load settings")
	}
}

func TestLoad_TrailingWhitespaceIsFine(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte("{\"nickname\": \"Foo\"}\n\n"), 0o644))

	got := NewStore(fs, settingsPath, testDefaults()).Load()

	assert.Equal(t, "Foo", got.Nickname)
}

func TestLoad_NonObjectJSONFallsBack(t *testing.T) {
	captureLog(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(`["nickname", "Foo"]`), 0o644))

	got := NewStore(fs, settingsPath, testDefaults()).Load()

	assert.Equal(t, testDefaults(), got)
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, settingsPath, testDefaults())

	next := testDefaults()
	next.Nickname = "Alex"
	next.RAMGigabytes = 8
	require.NoError(t, store.Save(next))

	exists, err := afero.Exists(fs, settingsPath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, next, store.Current())

	reloaded := NewStore(fs, settingsPath, testDefaults()).Load()
	assert.Equal(t, next, reloaded)

	entries, err := afero.ReadDir(fs, filepath.Dir(settingsPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestSave_WritesOriginalKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, settingsPath, testDefaults())
	next := testDefaults()
	next.Nickname = "Zoë <3"
	require.NoError(t, store.Save(next))

	data, err := afero.ReadFile(fs, settingsPath)
	require.NoError(t, err)
	for _, key := range []string{`"nickname"`, `"version"`, `"java_path"`, `"ram_gb"`, `"uuid"`} {
		assert.Contains(t, string(data), key)
	}
	assert.Contains(t, string(data), "Zoë <3", "non-ASCII and HTML characters are written verbatim")
}

func TestSave_OverwritesFullRecord(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(`{"nickname": "Old", "legacy": 1}`), 0o644))
	store := NewStore(fs, settingsPath, testDefaults())
	store.Load()

	require.NoError(t, store.Save(store.Current()))

	data, err := afero.ReadFile(fs, settingsPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "legacy")
	assert.Contains(t, string(data), `"Old"`)
}

func TestSave_RejectsInvalidSettings(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, settingsPath, testDefaults())

	bad := testDefaults()
	bad.Nickname = " "
	bad.RAMGigabytes = 17
	err := store.Save(bad)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"nickname", "ram_gb"}, verr.Fields)
	assert.Equal(t, testDefaults(), store.Current())
	exists, _ := afero.Exists(fs, settingsPath)
	assert.False(t, exists)
}

func TestSave_WriteFailureKeepsInMemorySettings(t *testing.T) {
	buf := captureLog(t)
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	store := NewStore(fs, settingsPath, testDefaults())

	next := testDefaults()
	next.Nickname = "Offline"
	err := store.Save(next)

	var werr *WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, settingsPath, werr.Path)
	assert.Equal(t, next, store.Current())
	assert.Contains(t, buf.String(), "failed to save settings")
}

func TestErrorsUnwrap(t *testing.T) {
	inner := errors.New("boom")
	assert.ErrorIs(t, &ReadError{Path: "p", Err: inner}, inner)
	assert.ErrorIs(t, &WriteError{Path: "p", Err: inner}, inner)
	assert.ErrorIs(t, &ValidationError{Fields: []string{"x"}, Err: inner}, inner)
	assert.Equal(t, "invalid settings: a, b", (&ValidationError{Fields: []string{"a", "b"}}).Error())
}

func TestNewOfflineUUID(t *testing.T) {
	a, b := NewOfflineUUID(), NewOfflineUUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
