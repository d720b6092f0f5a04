package matching

import "strings"

// Locale keys understood by the tokenizer. Anything else falls back to
// English.
const (
	LocaleEN = "en"
	LocaleDE = "de"
	LocaleRU = "ru"
)

// stopwords maps a locale to the words dropped during tokenization.
var stopwords = map[string]map[string]bool{
	LocaleEN: {
		"the": true, "and": true, "for": true, "with": true, "from": true,
		"that": true, "this": true, "you": true, "your": true, "our": true,
		"are": true, "will": true, "can": true, "to": true, "of": true,
		"in": true, "on": true, "a": true, "an": true,
	},
	LocaleDE: {
		"und": true, "der": true, "die": true, "das": true, "mit": true,
		"für": true, "auf": true, "im": true, "in": true, "zu": true,
		"von": true, "ist": true, "sind": true, "wir": true, "sie": true,
		"du": true, "ihr": true,
	},
	LocaleRU: {
		"и": true, "в": true, "на": true, "для": true, "по": true,
		"с": true, "что": true, "это": true, "вы": true, "мы": true,
		"как": true, "или": true, "но": true, "к": true, "из": true,
	},
}

// Suffix groups tried in order during stemming. Latin groups apply to en
// and de, the Cyrillic group to ru. At most one suffix is ever stripped.
var (
	latinSuffixGroups = [][]string{
		{"ing", "ed", "es", "s"},
		{"en", "er", "e", "n"},
	}
	cyrillicSuffixGroups = [][]string{
		{"ов", "ев", "ий", "ая", "ые", "ого", "ыми"},
	}
)

// seniorityHints classifies vacancy titles by keyword. Checked in the
// declared order; the first level with a token hit wins.
var seniorityHints = []struct {
	Level string
	Words map[string]bool
}{
	{"junior", map[string]bool{"junior": true, "entry": true, "trainee": true}},
	{"mid", map[string]bool{"mid": true, "middle": true, "intermediate": true}},
	{"senior", map[string]bool{"senior": true, "lead": true, "principal": true}},
}

// normalizeLocale maps arbitrary input to a supported locale key.
func normalizeLocale(locale string) string {
	key := strings.ToLower(locale)
	switch key {
	case LocaleEN, LocaleDE, LocaleRU:
		return key
	default:
		return LocaleEN
	}
}
