// Package i18n looks up localized labels for dialog and toolbar controls.
package i18n

import (
	"os"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Catalog resolves label keys for one language. Unknown keys are returned
// unchanged.
type Catalog struct {
	tag      language.Tag
	messages map[string]string
}

var translations = map[language.Tag]map[string]string{
	language.English: {},
	language.German: {
		"Ok":         "Ok",
		"Cancel":     "Abbrechen",
		"Yes":        "Ja",
		"Close":      "Schließen",
		"Fullsize":   "Vollbild",
		"About":      "Über",
		"Rename":     "Umbenennen",
		"New name":   "Neuer Name",
		"Quit":       "Beenden",
		"Quit loft?": "loft beenden?",
		"Command":    "Befehl",
	},
	language.French: {
		"Ok":         "Ok",
		"Cancel":     "Annuler",
		"Yes":        "Oui",
		"Close":      "Fermer",
		"Fullsize":   "Plein écran",
		"About":      "À propos",
		"Rename":     "Renommer",
		"New name":   "Nouveau nom",
		"Quit":       "Quitter",
		"Quit loft?": "Quitter loft ?",
		"Command":    "Commande",
	},
	language.Russian: {
		"Ok":         "Ок",
		"Cancel":     "Отмена",
		"Yes":        "Да",
		"Close":      "Закрыть",
		"Fullsize":   "Во весь экран",
		"About":      "О программе",
		"Rename":     "Переименовать",
		"New name":   "Новое имя",
		"Quit":       "Выход",
		"Quit loft?": "Выйти из loft?",
		"Command":    "Команда",
	},
}

var (
	supported = []language.Tag{
		language.English,
		language.German,
		language.French,
		language.Russian,
	}
	matcher = language.NewMatcher(supported)
)

// New returns the catalog best matching the given language preferences,
// such as "de-CH" or "fr, en;q=0.8". It falls back to English.
func New(preferences ...string) *Catalog {
	tags := parsePreferences(preferences)
	tag := language.English
	if len(tags) > 0 {
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Catalog{tag: tag, messages: translations[tag]}
}

type weighted struct {
	tag language.Tag
	q   float32
}

// parsePreferences parses each accept-language entry on its own so one
// unknown tag does not discard the rest, then orders them by quality.
func parsePreferences(preferences []string) []language.Tag {
	var prefs []weighted
	for _, p := range preferences {
		for entry := range strings.SplitSeq(p, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			tags, qs, err := language.ParseAcceptLanguage(entry)
			if err != nil {
				continue
			}
			for i, tag := range tags {
				prefs = append(prefs, weighted{tag: tag, q: qs[i]})
			}
		}
	}
	slices.SortStableFunc(prefs, func(a, b weighted) int {
		switch {
		case a.q > b.q:
			return -1
		case a.q < b.q:
			return 1
		}
		return 0
	})
	tags := make([]language.Tag, 0, len(prefs))
	for _, p := range prefs {
		tags = append(tags, p.tag)
	}
	return tags
}

// Language returns the matched language.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// T returns the label for key.
func (c *Catalog) T(key string) string {
	if c == nil {
		return key
	}
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	return key
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog for the process locale, read from LC_ALL,
// LC_MESSAGES and LANG in that order.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(localeFromEnv())
	})
	return defaultCatalog
}

func localeFromEnv() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(name)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		// de_DE.UTF-8 -> de-DE
		v, _, _ = strings.Cut(v, ".")
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}
