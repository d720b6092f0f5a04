// Package matching implements the candidate-to-vacancy scoring engine:
// locale-aware tokenization, multi-factor scoring with explanations, match
// ranking and skill-gap derivation. Everything here is a pure function of
// its inputs and safe for concurrent use.
package matching

import (
	"strings"
	"unicode"
)

// Tokenize normalizes free text into a filtered, stemmed token sequence.
// The text is lowercased and split into maximal runs of letters, digits,
// underscore, hyphen, plus and hash, which keeps tokens like "c++" and "c#"
// intact while splitting "node.js" into "node" and "js". Tokens shorter
// than two runes and locale stopwords are dropped; the rest are stemmed.
//
// Order is preserved and duplicates are kept; callers build sets on top.
// Empty text and unknown locales are fine: empty text yields nil, unknown
// locales fall back to English.
func Tokenize(text, locale string) []string {
	if text == "" {
		return nil
	}
	stop := stopwords[normalizeLocale(locale)]
	groups := latinSuffixGroups
	if normalizeLocale(locale) == LocaleRU {
		groups = cyrillicSuffixGroups
	}

	var tokens []string
	var word []rune
	flush := func() {
		if len(word) == 0 {
			return
		}
		token := string(word)
		word = word[:0]
		if len([]rune(token)) < 2 || stop[token] {
			return
		}
		tokens = append(tokens, stem(token, groups))
	}

	for _, r := range strings.ToLower(text) {
		if isTokenRune(r) {
			word = append(word, r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '+' || r == '#'
}

// stem strips at most one suffix from the token. A suffix only applies
// when the token is longer than the suffix by more than two runes, which
// keeps short words intact ("bring" stays "bring", "engineering" becomes
// "engineer"). Groups are tried in order and the first hit wins.
func stem(token string, groups [][]string) string {
	tokenLen := len([]rune(token))
	for _, group := range groups {
		for _, suffix := range group {
			if strings.HasSuffix(token, suffix) && tokenLen > len([]rune(suffix))+2 {
				return strings.TrimSuffix(token, suffix)
			}
		}
	}
	return token
}

// TokenSet tokenizes text and collapses the result into a membership set.
func TokenSet(text, locale string) map[string]bool {
	tokens := Tokenize(text, locale)
	if len(tokens) == 0 {
		return map[string]bool{}
	}
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
