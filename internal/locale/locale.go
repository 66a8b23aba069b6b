// Package locale holds the static localization tables and the lookup
// fallback chain: exact key in the requested language, then the "not found"
// string in that language, then the "not found" string in English.
package locale

// Default is the language used when a user has no stored preference and as
// the terminal fallback for lookups.
const Default = "en"

var languages = map[string]string{
	"en": "English",
	"it": "Italiano",
}

var tables = map[string]map[string]string{
	"en": en,
	"it": it,
}

// Languages returns the supported language codes mapped to their labels.
func Languages() map[string]string {
	out := make(map[string]string, len(languages))
	for code, label := range languages {
		out[code] = label
	}
	return out
}

// Known reports whether the language code has a table.
func Known(lang string) bool {
	_, ok := tables[lang]
	return ok
}

// Label returns the human readable name of a language code.
func Label(lang string) string {
	return languages[lang]
}

// T resolves a localized string by dotted key.
func T(lang, key string) string {
	if tab, ok := tables[lang]; ok {
		if s, ok := tab[key]; ok {
			return s
		}
		if s, ok := tab["not_found"]; ok {
			return s
		}
	}
	return tables[Default]["not_found"]
}
