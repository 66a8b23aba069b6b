// Package moderation screens display names and sentences against the
// banned-word lists. Candidates are normalized before matching: spaces are
// dropped, letters are case folded, and common leet-speak digits and
// lookalike characters are substituted. Both the normalized form and its
// reversal are checked, so "d3Z" still matches a ban on "zed".
package moderation

import "strings"

// Two substitution sets because some digits are ambiguous: '4' reads as
// either 'r' or 'a' depending on the font trick used.
var substitutions = []map[rune]rune{
	{
		'1': 'i', '3': 'e', '4': 'r', '0': 'o', '7': 'l', '5': 's',
		'$': 'e', '€': 'e', '6': 'g',
		'т': 't', 'п': 'n', 'υ': 'u', 'е': 'e', 'ε': 'e',
	},
	{
		'1': 'i', '3': 'e', '4': 'a', '0': 'o', '7': 'l', '5': 's',
		'$': 'e', '€': 'e', '6': 'g',
		'т': 't', 'п': 'n', 'υ': 'u', 'е': 'e', 'ε': 'e',
	},
}

// Normalizations returns every normalized form of name, one per
// substitution set.
func Normalizations(name string) []string {
	out := make([]string, 0, len(substitutions))
	for _, set := range substitutions {
		var b strings.Builder
		for _, r := range name {
			if sub, ok := set[r]; ok {
				r = sub
			}
			if r == ' ' {
				continue
			}
			b.WriteString(strings.ToLower(string(r)))
		}
		out = append(out, b.String())
	}
	return out
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// IsBanned reports whether name matches the banned lists after
// normalization. Entries in banned match whole names, entries in ultra
// match anywhere within the name; reversals are checked in both categories.
func IsBanned(name string, banned, ultra []string) bool {
	for _, candidate := range Normalizations(name) {
		reversed := reverse(candidate)
		for _, word := range banned {
			if candidate == word || reversed == word {
				return true
			}
		}
		for _, word := range ultra {
			if strings.Contains(candidate, word) || strings.Contains(candidate, reverse(word)) {
				return true
			}
		}
	}
	return false
}
