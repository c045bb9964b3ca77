package render

import (
	"sort"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/this-day/internal/config"
)

var allKeys = []string{
	config.TKeyPickDate, config.TKeyBadgeFamily, config.TKeyDebug,
	config.TKeyCalPrev, config.TKeyCalNext, config.TKeyCalGenerate, config.TKeyCalHint,
	config.TKeyMonths, config.TKeyWeekdays,
	config.TKeyReadyTitle, config.TKeyReadyBody, config.TKeyReadyTip,
	config.TKeyPhonesTitle, config.TKeyPhonesHint, config.TKeyBtnCopy, config.TKeyCopied,
	config.TKeyFamilyTitle, config.TKeyFamilySub, config.TKeyFamilyNone,
	config.TKeyFamousTitle, config.TKeyFamousOutro, config.TKeyFamousNone,
	config.TKeyHistoryTitle, config.TKeyEmptyList,
	config.TKeySportsTitle, config.TKeySportsNone, config.TKeyRockTitle, config.TKeyRockNone,
	config.TKeyFilteredBy, config.TKeyFunFactTitle, config.TKeyBirthsTitle,
	config.TKeySMSTitle, config.TKeySMSHint,
	config.TKeyUpcomingTitle, config.TKeyUpcomingToday, config.TKeyUpcomingInDays,
	config.TKeyFooter, config.TKeyEventSummary,
	config.TKeyCloserOne, config.TKeyCloserTwo, config.TKeyCloserMany,
	config.TKeyCloserInvite, config.TKeyCloserSomeone,
}

func localeKeys(t *testing.T, lang string) []string {
	t.Helper()
	data, err := localeFS.ReadFile("locales/active." + lang + ".json")
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(data, &m))

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TestI18nIntegrity checks that every key used by the code exists in every
// locale and that the locales agree with each other.
func TestI18nIntegrity(t *testing.T) {
	en := localeKeys(t, "en")
	for _, lang := range config.SupportedLanguages {
		keys := localeKeys(t, lang)
		assert.Equal(t, en, keys, "locale %s diverges from en", lang)
		for _, k := range allKeys {
			assert.Contains(t, keys, k, "locale %s misses %s", lang, k)
		}
	}
}

func TestTranslator(t *testing.T) {
	tr, err := NewTranslator("")
	require.NoError(t, err)

	assert.ElementsMatch(t, config.SupportedLanguages, tr.Languages())
	assert.Equal(t, "fr", tr.Resolve(" FR "))
	assert.Equal(t, config.DefaultLanguage, tr.Resolve("klingon"))

	fr := tr.Localizer("fr")
	assert.Equal(t, "Copier", fr.Msg(config.TKeyBtnCopy))
	assert.Equal(t, "🎂 Anniversaire : Patti", fr.EventSummary("Patti"))
	assert.Len(t, fr.List(config.TKeyMonths), 12)
	assert.Len(t, fr.List(config.TKeyWeekdays), 7)

	en := tr.Localizer("")
	assert.Equal(t, "in 3 days", en.MsgData(config.TKeyUpcomingInDays, map[string]any{"Days": 3}))
	assert.Equal(t, "no_such_key", en.Msg("no_such_key"))
}

func TestTranslator_FallbackLanguage(t *testing.T) {
	tr, err := NewTranslator("fr")
	require.NoError(t, err)
	assert.Equal(t, "fr", tr.Resolve("de"))
}
