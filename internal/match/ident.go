package match

import (
	"strings"
	"unicode"
)

// weakSuffixes are dropped from normalized keys before scoring, longest first.
var weakSuffixes = []string{"timestamp", "ids", "utc", "id", "at"}

// Tokens splits a key on separators and case changes, keeping acronyms
// together: "shipping_addr" is [shipping addr], "orderHTTPId" is [order HTTP Id].
func Tokens(key string) []string {
	runes := []rune(key)

	var (
		tokens []string
		start  = -1
	)

	flush := func(end int) {
		if start >= 0 && end > start {
			tokens = append(tokens, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}

		if start >= 0 && boundary(runes, i) {
			flush(i)
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(runes))

	return tokens
}

// boundary reports whether a token starts at runes[i]: a lower to upper
// transition, or the last capital of an acronym followed by a lowercase rune.
func boundary(runes []rune, i int) bool {
	if i == 0 || !unicode.IsUpper(runes[i]) {
		return false
	}

	prev := runes[i-1]
	if !unicode.IsUpper(prev) {
		return !isSeparator(prev)
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// NormalizeIdent folds a key to lowercase without separators, so "first_name",
// "first-name", "firstName" and "FirstName" compare equal.
func NormalizeIdent(key string) string {
	return strings.ToLower(strings.Join(Tokens(key), ""))
}

// LowerTokens is Tokens in lowercase.
func LowerTokens(key string) []string {
	tokens := Tokens(key)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// trimWeakSuffix normalizes key and drops one weak suffix, unless that would
// leave nothing: "customer_id" becomes "customer", "id" stays "id".
func trimWeakSuffix(key string) string {
	normalized := NormalizeIdent(key)

	for _, suffix := range weakSuffixes {
		if len(normalized) > len(suffix) && strings.HasSuffix(normalized, suffix) {
			return strings.TrimSuffix(normalized, suffix)
		}
	}

	return normalized
}
