// Package settings persists the player's launcher settings.
// Settings are stored as JSON in <data dir>/Launcher-settings.json.
package settings

import (
	"errors"
	"os/user"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/five82/hylauncher/internal/config"
)

// Settings holds the user-editable launch settings.
type Settings struct {
	Nickname           string `json:"nickname" validate:"required"`
	SelectedVersion    string `json:"version"`
	JavaExecutablePath string `json:"java_path" validate:"required"`
	RAMGigabytes       int    `json:"ram_gb" validate:"min=2,max=16"`
	PlayerUUID         string `json:"uuid" validate:"required"`
}

// RAM bounds accepted by the settings screen and on load.
const (
	MinRAMGigabytes = 2
	MaxRAMGigabytes = 16

	defaultVersion  = "Latest Release"
	defaultRAM      = 4
	defaultUUID     = "32283228-3228-3228-3228-322832283228"
	defaultNickname = "Player"
)

// Defaults returns the built-in settings for an installation. username is the
// OS login name; a blank one falls back to a generic nickname.
func Defaults(layout config.Layout, username string) Settings {
	nickname := strings.TrimSpace(username)
	if nickname == "" {
		nickname = defaultNickname
	}
	return Settings{
		Nickname:           nickname,
		SelectedVersion:    defaultVersion,
		JavaExecutablePath: layout.JavaPath,
		RAMGigabytes:       defaultRAM,
		PlayerUUID:         defaultUUID,
	}
}

// CurrentUsername returns the OS login name without any domain prefix, or ""
// when it cannot be determined.
func CurrentUsername() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	name := u.Username
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}

// NewOfflineUUID returns a fresh random identity for offline play.
func NewOfflineUUID() string {
	return uuid.NewString()
}

// Normalize trims surrounding whitespace from the string fields.
func (s Settings) Normalize() Settings {
	s.Nickname = strings.TrimSpace(s.Nickname)
	s.SelectedVersion = strings.TrimSpace(s.SelectedVersion)
	s.JavaExecutablePath = strings.TrimSpace(s.JavaExecutablePath)
	s.PlayerUUID = strings.TrimSpace(s.PlayerUUID)
	return s
}

// Validate reports every field outside its allowed range.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fields []string
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}
	return &ValidationError{Fields: fields, Err: err}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
