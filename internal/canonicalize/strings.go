package canonicalize

import (
	"strings"

	"github.com/aster-lang/aster-core/internal/lexicon"
)

// transformOutsideStrings segments s into alternating string-literal and
// non-string spans (using the locale's configured quote characters) and
// applies fn only to the non-string spans, leaving string-literal content
// untouched (spec.md §4.B: "treat string-literal content as opaque").
func transformOutsideStrings(s string, lex *lexicon.Lexicon, fn func(string) string) string {
	open := lex.Punctuation.StringQuotes.Open
	close_ := lex.Punctuation.StringQuotes.Close
	// English (and any locale using plain ASCII quotes) also recognizes the
	// raw '"' as a literal delimiter for the purposes of opacity, even
	// before quote normalization has run.
	delims := map[string]bool{open: true, close_: true, `"`: true}

	var out strings.Builder
	var buf strings.Builder
	inString := false
	var closing string

	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		if !inString {
			if matched, width := matchAny(runes[i:], delims); matched != "" {
				out.WriteString(fn(buf.String()))
				buf.Reset()
				out.WriteString(matched)
				inString = true
				closing = closingFor(matched, open, close_)
				i += width
				continue
			}
			buf.WriteRune(r)
			i++
			continue
		}

		// Inside a string literal: copy verbatim, honoring backslash escapes.
		if r == '\\' && i+1 < len(runes) {
			out.WriteRune(r)
			out.WriteRune(runes[i+1])
			i += 2
			continue
		}
		if matched, width := matchPrefix(runes[i:], closing); matched {
			out.WriteString(closing)
			i += width
			inString = false
			continue
		}
		out.WriteRune(r)
		i++
	}
	out.WriteString(fn(buf.String()))
	return out.String()
}

func closingFor(opener, open, close_ string) string {
	if opener == open {
		return close_
	}
	return opener // symmetric delimiter (e.g. raw '"')
}

func matchAny(runes []rune, delims map[string]bool) (string, int) {
	for d := range delims {
		if d == "" {
			continue
		}
		if m, w := matchPrefix(runes, d); m {
			return d, w
		}
	}
	return "", 0
}

func matchPrefix(runes []rune, needle string) (bool, int) {
	if needle == "" {
		return false, 0
	}
	nr := []rune(needle)
	if len(runes) < len(nr) {
		return false, 0
	}
	for i, r := range nr {
		if runes[i] != r {
			return false, 0
		}
	}
	return true, len(nr)
}
