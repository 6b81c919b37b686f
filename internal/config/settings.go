package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds the user-tunable options of the command-line driver.
type Settings struct {
	BookPath        string `yaml:"book_path" mapstructure:"book_path"`
	Language        string `yaml:"language" mapstructure:"language"`
	ReminderTrigger string `yaml:"reminder_trigger" mapstructure:"reminder_trigger"` // ISO8601 duration, e.g. "-P1D"
	UpcomingDays    int    `yaml:"upcoming_days" mapstructure:"upcoming_days"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		BookPath:     DefaultBookFile,
		Language:     DefaultLanguage,
		UpcomingDays: DefaultUpcomingDays,
	}
}

// LoadSettings reads settings from path, or searches the working directory and the
// user config directory when path is empty. Environment variables prefixed with
// ADDRESSBOOK_ override file values. A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetDefault(KeyBookPath, defaults.BookPath)
	v.SetDefault(KeyLanguage, defaults.Language)
	v.SetDefault(KeyReminderTrigger, defaults.ReminderTrigger)
	v.SetDefault(KeyUpcomingDays, defaults.UpcomingDays)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(SettingsName)
		v.SetConfigType(SettingsType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppID))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	log := slog.With(LogKeyComponent, CompSettings)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
		}
		log.Debug(MsgSettingsNone)
	} else {
		log.Debug(MsgSettings, LogKeyFile, v.ConfigFileUsed())
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsDecode, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings for values the driver cannot work with.
func (s *Settings) Validate() error {
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrLanguage, s.Language)
	}
	if s.UpcomingDays < 0 {
		return errors.New(ErrUpcomingDays)
	}
	if s.BookPath == "" {
		s.BookPath = DefaultBookFile
	}
	return nil
}
