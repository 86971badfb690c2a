package translation

import (
	"cmp"
	"slices"
	"strings"

	"packetgen/core/apperr"
)

// MatchMode selects how table keys are matched in the schema text.
type MatchMode string

const (
	// MatchLiteral replaces every occurrence of a key as a plain substring.
	MatchLiteral MatchMode = "literal"
	// MatchToken replaces a key only when it forms a whole identifier token.
	MatchToken MatchMode = "token"
)

// ParseMatchMode validates a match mode name. Empty selects MatchLiteral.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case "":
		return MatchLiteral, nil
	case MatchLiteral, MatchToken:
		return MatchMode(s), nil
	default:
		return "", apperr.Configuration("remap.match", "unknown match mode %q (want literal or token)", s)
	}
}

// Substitute applies every translation in t to text.
//
// In MatchLiteral mode the text is scanned once from left to right. At each
// position the longest key that matches is replaced, and scanning resumes after
// the match, so a replacement value is never matched again by another key. A
// match at an earlier position wins over a longer key starting later:
// {"ab": "X", "bcd": "Y"} turns "abcd" into "Xcd".
//
// In MatchToken mode only maximal runs of [A-Za-z0-9_] that equal a key are
// replaced. Keys containing other characters never match in this mode.
func Substitute(text string, t Table, mode MatchMode) string {
	if len(t) == 0 {
		return text
	}
	if mode == MatchToken {
		return substituteTokens(text, t)
	}
	return Replacer(t).Replace(text)
}

// Replacer builds the single-pass literal replacer for t. Keys are ordered
// longest first, ties lexically, which makes strings.Replacer prefer the
// longest match at every position. Empty keys are ignored.
func Replacer(t Table) *strings.Replacer {
	keys := make([]string, 0, len(t))
	for k := range t {
		if k != "" {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, t[k])
	}
	return strings.NewReplacer(pairs...)
}

func substituteTokens(text string, t Table) string {
	var b strings.Builder
	b.Grow(len(text))

	start := -1
	flush := func(end int) {
		tok := text[start:end]
		if v, ok := t[tok]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(tok)
		}
		start = -1
	}

	for i := 0; i < len(text); i++ {
		if isIdentByte(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			flush(i)
		}
		b.WriteByte(text[i])
	}
	if start >= 0 {
		flush(len(text))
	}
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
