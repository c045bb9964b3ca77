package render

import (
	"embed"
	"log/slog"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/this-day/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves page labels for the languages found in locales/.
type Translator struct {
	bundle    *i18n.Bundle
	languages []string
	fallback  string
}

// NewTranslator loads every embedded active.<lang>.json. fallback is used
// for unknown languages; it defaults to config.DefaultLanguage.
func NewTranslator(fallback string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return nil, err
	}

	var detected []string
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
		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	if fallback == "" || !slices.Contains(detected, fallback) {
		fallback = config.DefaultLanguage
	}
	return &Translator{bundle: bundle, languages: detected, fallback: fallback}, nil
}

// Languages lists the loaded language codes.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.languages...)
}

// Resolve maps a requested language to a loaded one, or the fallback.
func (t *Translator) Resolve(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if slices.Contains(t.languages, lang) {
		return lang
	}
	return t.fallback
}

// Localizer returns a lookup bound to one language.
func (t *Translator) Localizer(lang string) *Localizer {
	lang = t.Resolve(lang)
	return &Localizer{lang: lang, l: i18n.NewLocalizer(t.bundle, lang, t.fallback)}
}

// Localizer translates keys for one language.
type Localizer struct {
	lang string
	l    *i18n.Localizer
}

// Lang is the resolved language code.
func (l *Localizer) Lang() string {
	return l.lang
}

// Msg translates key. A missing key is logged and returned as-is.
func (l *Localizer) Msg(key string) string {
	return l.MsgData(key, nil)
}

// MsgData translates key with template data.
func (l *Localizer) MsgData(key string, data map[string]any) string {
	if l == nil || l.l == nil {
		return key
	}
	msg, err := l.l.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
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

// List splits a comma-separated translation.
func (l *Localizer) List(key string) []string {
	parts := strings.Split(l.Msg(key), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// EventSummary renders the iCalendar event title for name.
func (l *Localizer) EventSummary(name string) string {
	return l.MsgData(config.TKeyEventSummary, map[string]any{"Name": name})
}
