// Package canonicalize implements the locale-aware textual normalization
// pipeline (spec.md §4.B) that runs before lexing. Grounded on the rune-by-
// rune scanning style of the teacher's internal/lexer/lexer.go
// (utf8.DecodeRuneInString, explicit cursor) adapted into a set of
// string-transform passes over alternating string/non-string spans.
package canonicalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"

	"github.com/aster-lang/aster-core/internal/lexicon"
)

// Options lets a caller override the lexicon and supply a domain vocabulary
// for identifier translation (spec.md §4.B step 11).
type Options struct {
	Lexicon    *lexicon.Lexicon
	Vocabulary map[string]string // localized identifier -> canonical name
}

// Canonicalize runs the full normalization pipeline and returns the
// canonical source text. Canonicalize is idempotent: calling it twice in a
// row yields the same output as calling it once (spec.md §8 property 1).
func Canonicalize(source string, opts Options) string {
	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Global().GetDefault()
	}

	hadTrailingNewline := strings.HasSuffix(source, "\n")

	s := normalizeNewlines(source)
	s = expandTabs(s)
	s = stripCommentLines(s)
	s = transformOutsideStrings(s, lex, func(span string) string { return normalizeQuotesSpan(span, lex) })
	for _, rule := range lex.Canonicalization.CustomRules {
		s = transformOutsideStrings(s, lex, func(span string) string {
			return rule.Pattern.ReplaceAllString(span, rule.Replacement)
		})
	}
	if lex.Canonicalization.FullWidthToHalf {
		s = transformOutsideStrings(s, lex, foldFullWidth)
	}
	s = transformOutsideStrings(s, lex, func(span string) string { return tightenPunctuation(span, lex) })

	multi := lex.MultiWordKeywords()
	placeholders := map[string]string{}
	s = transformOutsideStrings(s, lex, func(span string) string { return protectMultiWord(span, multi, placeholders) })

	if lex.Canonicalization.RemoveArticles {
		s = transformOutsideStrings(s, lex, func(span string) string { return removeArticles(span, lex.Canonicalization.Articles) })
	}

	s = restorePlaceholders(s, placeholders)

	if len(opts.Vocabulary) > 0 {
		s = transformOutsideStrings(s, lex, func(span string) string { return translateVocabulary(span, opts.Vocabulary) })
	}

	s = transformOutsideStrings(s, lex, func(span string) string { return tightenPunctuation(span, lex) })

	if hadTrailingNewline && !strings.HasSuffix(s, "\n") {
		s += "\n"
	} else if !hadTrailingNewline && strings.HasSuffix(s, "\n") {
		s = strings.TrimSuffix(s, "\n")
	}
	return s
}

// normalizeNewlines folds \r\n and lone \r into \n (step 1).
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

// expandTabs replaces every tab with two spaces (step 2).
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "  ")
}

// stripCommentLines blanks lines whose first non-space rune starts "//" or
// "#", preserving the line count (step 3).
func stripCommentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

// isSmartQuote reports whether r is one of the "smart quote" runes that
// unify to the locale's configured quote pair, and whether it opens.
func isSmartQuote(r rune) (isOpen bool, ok bool) {
	switch r {
	case '“', '‘': // “ ‘
		return true, true
	case '”', '’': // ” ’
		return false, true
	}
	return false, false
}

// normalizeQuotesSpan unifies smart quotes and alternates raw ASCII quotes
// by occurrence (step 4). Operates on a span already known to be outside a
// string literal in the *canonical* sense — this function itself tracks a
// local raw-quote toggle and rewrites straight quotes into locale quotes.
func normalizeQuotesSpan(span string, lex *lexicon.Lexicon) string {
	open := lex.Punctuation.StringQuotes.Open
	close_ := lex.Punctuation.StringQuotes.Close
	var b strings.Builder
	rawOpen := true
	for _, r := range span {
		if isOpen, ok := isSmartQuote(r); ok {
			if isOpen {
				b.WriteString(open)
			} else {
				b.WriteString(close_)
			}
			continue
		}
		if r == '"' {
			if open == `"` && close_ == `"` {
				b.WriteRune('"')
			} else if rawOpen {
				b.WriteString(open)
				rawOpen = false
			} else {
				b.WriteString(close_)
				rawOpen = true
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// foldFullWidth maps full-width ASCII-range characters to their half-width
// equivalents (step 6), using golang.org/x/text/width's Fold. Unlike
// width.Narrow, Fold leaves wide CJK punctuation such as 。、「」 as it is,
// which is the form the lexer recognizes.
func foldFullWidth(s string) string {
	return width.Fold.String(s)
}

var wsBeforeTerminator = regexp.MustCompile(`[ \t]+([.,;:])`)

// tightenPunctuation removes whitespace immediately before statement
// terminators/list separators (step 7 / step 12).
func tightenPunctuation(s string, lex *lexicon.Lexicon) string {
	return wsBeforeTerminator.ReplaceAllString(s, "$1")
}

const placeholderPrefix = "\x00ASTERKW"

// protectMultiWord marks every occurrence of a multi-word keyword with a
// unique sentinel placeholder so article removal and lowercasing downstream
// cannot split it apart (step 8). placeholders is populated with the
// sentinel -> original phrase mapping, scoped to this single call.
func protectMultiWord(s string, phrases []string, placeholders map[string]string) string {
	for i, phrase := range phrases {
		placeholder := placeholderPrefix + itoa(i) + "\x00"
		s = strings.ReplaceAll(s, phrase, placeholder)
		placeholders[placeholder] = phrase
	}
	return s
}

func restorePlaceholders(s string, placeholders map[string]string) string {
	for ph, original := range placeholders {
		s = strings.ReplaceAll(s, ph, strings.ToLower(original))
	}
	return s
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// removeArticles deletes configured articles as whole words (step 9).
func removeArticles(s string, articles []string) string {
	if len(articles) == 0 {
		return s
	}
	for _, a := range articles {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(a) + `\b\s*`)
		s = re.ReplaceAllString(s, "")
	}
	return s
}

// translateVocabulary rewrites localized identifiers outside strings to
// their canonical names (step 11).
func translateVocabulary(s string, vocab map[string]string) string {
	for localized, canonical := range vocab {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(localized) + `\b`)
		s = re.ReplaceAllString(s, canonical)
	}
	return s
}
