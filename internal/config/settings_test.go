package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/addressbook/internal/config"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "addressbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadSettings_File(t *testing.T) {
	path := writeSettings(t, `
book_path: /tmp/contacts.db
language: pl
reminder_trigger: -P1D
upcoming_days: 7
`)

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/contacts.db", s.BookPath)
	assert.Equal(t, "pl", s.Language)
	assert.Equal(t, "-P1D", s.ReminderTrigger)
	assert.Equal(t, 7, s.UpcomingDays)
}

func TestLoadSettings_DefaultsFillGaps(t *testing.T) {
	path := writeSettings(t, "language: en\n")

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultBookFile, s.BookPath)
	assert.Equal(t, config.DefaultUpcomingDays, s.UpcomingDays)
	assert.Empty(t, s.ReminderTrigger)
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	path := writeSettings(t, "book_path: from-file.db\n")
	t.Setenv("ADDRESSBOOK_BOOK_PATH", "from-env.db")

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", s.BookPath)
}

func TestLoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"Unsupported language", "language: xx\n", config.ErrLanguage},
		{"Negative window", "upcoming_days: -1\n", config.ErrUpcomingDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadSettings(writeSettings(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSettings_ExplicitMissingFile(t *testing.T) {
	_, err := config.LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSettings_Validate_EmptyBookPath(t *testing.T) {
	s := config.DefaultSettings()
	s.BookPath = ""
	require.NoError(t, s.Validate())
	assert.Equal(t, config.DefaultBookFile, s.BookPath)
}
