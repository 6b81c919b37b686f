// Package i18n holds the message catalogs of the command-line driver.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/addressbook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Message IDs.
const (
	KeyRecordAdded    = "record_added"
	KeyRecordUpdated  = "record_updated"
	KeyRecordRemoved  = "record_removed"
	KeyRecordMissing  = "record_missing"
	KeyAllRecords     = "all_records"
	KeySearchResults  = "search_results"
	KeyNoResults      = "no_results"
	KeyUpcoming       = "upcoming_birthdays"
	KeyNoUpcoming     = "no_upcoming_birthdays"
	KeyDaysLeft       = "days_left"
	KeyBirthdayToday  = "birthday_today"
	KeyImported       = "imported"
	KeyExported       = "exported"
	KeyLabelName      = "label_name"
	KeyLabelPhones    = "label_phones"
	KeyLabelEmails    = "label_emails"
	KeyLabelBirthday  = "label_birthday"
	KeyEventSummary   = "event_summary"
	KeyUsage          = "usage"
	KeyErrorPrefix    = "error_prefix"
	KeyEmptyBook      = "empty_book"
	KeyDemoSaved      = "demo_saved"
	KeyNextBirthdayIn = "next_birthday_in"
)

// Translator resolves message IDs for one language.
type Translator struct {
	localizer *i18n.Localizer
	languages []string
}

// New loads the embedded catalogs and selects lang, falling back to English.
func New(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return t
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		t.languages = append(t.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}
	t.localizer = i18n.NewLocalizer(bundle, lang, config.DefaultLanguage)
	return t
}

// Languages returns the language codes found in the embedded catalogs.
func (t *Translator) Languages() []string {
	return t.languages
}

// T translates key, filling the message template with data.
// The key itself is returned when no translation exists.
func (t *Translator) T(key string, data map[string]any) string {
	if t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// N translates a message whose wording depends on count.
func (t *Translator) N(key string, count int, data map[string]any) string {
	if t.localizer == nil {
		return key
	}
	if data == nil {
		data = map[string]any{}
	}
	data["Count"] = count
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
		PluralCount:  count,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
