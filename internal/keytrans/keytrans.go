// Package keytrans rewrites a localized token stream's IDENT/TYPE_IDENT
// values to the canonical English keyword vocabulary the parser consumes
// (spec.md §4.D, Component D). New package; grounded on the teacher's
// token.LookupIdent single-map keyword lookup generalized to a two-locale
// phrase table, and internal/analyzer/naming.go's ordered-priority-rule
// idiom for the "certain semantic kinds win" tie-break rule (spec.md §4.D
// "Priority rules").
package keytrans

import (
	"strings"
	"sync"

	"github.com/aster-lang/aster-core/internal/lexicon"
	"github.com/aster-lang/aster-core/internal/token"
)

// phraseEntry is one source-phrase -> target-phrase mapping, keyed by its
// lowercased source spelling, split into words for length comparison.
type phraseEntry struct {
	sourceWords []string
	targetWords []string
	kind        lexicon.SemanticKind
}

// Table is a cached (sourceLexicon, targetLexicon) translation index
// (spec.md §9 "build once per pair and cache; the pair identity is the
// registry key").
type Table struct {
	phrases      []phraseEntry        // sorted by descending source word count
	maxPhraseLen int
	markers      map[string][]string // marker inner value -> target words
	source       *lexicon.Lexicon
}

var (
	tableCacheMu sync.Mutex
	tableCache   = map[string]*Table{}
)

// Build returns the cached translation table for (source, target),
// constructing it on first use. Safe to call concurrently from independent
// pipeline instances (spec.md §5: the core relies on no thread-local state,
// so this is the one process-wide cache that must tolerate concurrent
// first-use from multiple documents).
func Build(source, target *lexicon.Lexicon) *Table {
	key := source.ID + "->" + target.ID
	tableCacheMu.Lock()
	defer tableCacheMu.Unlock()
	if t, ok := tableCache[key]; ok {
		return t
	}
	t := build(source, target)
	tableCache[key] = t
	return t
}

func build(source, target *lexicon.Lexicon) *Table {
	t := &Table{markers: map[string][]string{}, source: source}

	for kind, srcPhrase := range source.SourceKeywords {
		tgtPhrase, ok := target.Keywords[kind]
		if !ok {
			continue
		}
		srcWords := strings.Fields(strings.ToLower(srcPhrase))
		tgtWords := strings.Fields(tgtPhrase)
		if len(srcWords) == 0 {
			continue
		}
		t.phrases = append(t.phrases, phraseEntry{sourceWords: srcWords, targetWords: tgtWords, kind: kind})

		// Per-word mapping when word counts match (spec.md §4.D "(b)").
		if len(srcWords) == len(tgtWords) {
			for i := range srcWords {
				t.phrases = append(t.phrases, phraseEntry{
					sourceWords: []string{srcWords[i]},
					targetWords: []string{tgtWords[i]},
					kind:        kind,
				})
			}
		}

		// Canonicalized variants via the source lexicon's customRules
		// (spec.md §4.D "(c)", e.g. zurueck <-> zurück).
		for _, rule := range source.Canonicalization.CustomRules {
			variant := rule.Pattern.ReplaceAllString(srcPhrase, rule.Replacement)
			if variant != srcPhrase {
				vw := strings.Fields(strings.ToLower(variant))
				if len(vw) > 0 {
					t.phrases = append(t.phrases, phraseEntry{sourceWords: vw, targetWords: tgtWords, kind: kind})
				}
			}
		}

		if len(srcWords) > t.maxPhraseLen {
			t.maxPhraseLen = len(srcWords)
		}
	}

	// Marker index: bracket-wrapped keywords like 【定义】.
	if source.Punctuation.MarkersOpen != "" {
		for kind, srcPhrase := range source.SourceKeywords {
			if tgtPhrase, ok := target.Keywords[kind]; ok {
				t.markers[srcPhrase] = strings.Fields(tgtPhrase)
			}
		}
	}

	// Sort longest-phrase-first for greedy matching (spec.md §4.D rule 2).
	sortPhrasesDesc(t.phrases)

	return t
}

func sortPhrasesDesc(phrases []phraseEntry) {
	for i := 1; i < len(phrases); i++ {
		for j := i; j > 0 && len(phrases[j].sourceWords) > len(phrases[j-1].sourceWords); j-- {
			phrases[j], phrases[j-1] = phrases[j-1], phrases[j]
		}
	}
}

// Translate rewrites the IDENT/TYPE_IDENT values of toks to their canonical
// English form using t. Non-identifier tokens, trivia and EOF pass through
// unchanged (spec.md §4.D).
func Translate(toks []token.Token, t *Table) []token.Token {
	out := make([]token.Token, 0, len(toks))
	i := 0
	for i < len(toks) {
		tok := toks[i]

		if tok.Kind != token.IDENT && tok.Kind != token.TYPE_IDENT {
			out = append(out, tok)
			i++
			continue
		}

		// Marker form: LBRACKET IDENT RBRACKET. The LBRACKET at i-1 was
		// already passed through to out, so it is dropped again here.
		if words, ok := matchMarker(toks, i, t); ok {
			out = out[:len(out)-1]
			for _, w := range words {
				out = append(out, token.Token{Kind: tok.Kind, Value: w, Start: tok.Start, End: tok.End, Channel: tok.Channel})
			}
			i += 2 // consumed IDENT RBRACKET (LBRACKET dropped above)
			continue
		}

		if phrase, consumed, ok := matchPhrase(toks, i, t); ok {
			out = append(out, emitPhrase(toks[i:i+consumed], phrase, out)...)
			i += consumed
			continue
		}

		out = append(out, singleFallback(tok, t, out))
		i++
	}
	return out
}

// matchMarker recognizes "LBRACKET IDENT RBRACKET" at i and returns the
// target words if IDENT's value is a known marker (spec.md §4.D rule 1).
func matchMarker(toks []token.Token, i int, t *Table) ([]string, bool) {
	if i == 0 {
		return nil, false
	}
	if toks[i-1].Kind != token.LBRACKET {
		return nil, false
	}
	if i+1 >= len(toks) || toks[i+1].Kind != token.RBRACKET {
		return nil, false
	}
	words, ok := t.markers[toks[i].Value]
	return words, ok
}

// matchPhrase greedily matches the longest registered source phrase
// starting at i against contiguous IDENT/TYPE_IDENT tokens.
func matchPhrase(toks []token.Token, i int, t *Table) (phraseEntry, int, bool) {
	for length := t.maxPhraseLen; length >= 1; length-- {
		if i+length > len(toks) {
			continue
		}
		words := make([]string, length)
		ok := true
		for k := 0; k < length; k++ {
			if toks[i+k].Kind != token.IDENT && toks[i+k].Kind != token.TYPE_IDENT {
				ok = false
				break
			}
			words[k] = strings.ToLower(toks[i+k].Value)
		}
		if !ok {
			continue
		}
		// A single source word registered as an allowedDuplicate (one
		// spelling mapping to multiple distinct-target roles, e.g. zh-CN
		// "为" -> be/to/when) must not be resolved by an arbitrary
		// phrase-table match here: defer to singleFallback's contextual
		// disambiguation (spec.md §4.D rule 3), which only runs on tokens
		// matchPhrase declines to handle.
		if length == 1 {
			if _, dup := t.source.Canonicalization.AllowedDuplicates[toks[i].Value]; dup {
				continue
			}
		}
		if entry, found := lookupPhrase(t, words); found {
			return entry, length, true
		}
	}
	return phraseEntry{}, 0, false
}

func lookupPhrase(t *Table, words []string) (phraseEntry, bool) {
	var best phraseEntry
	found := false
	for _, e := range t.phrases {
		if len(e.sourceWords) != len(words) {
			continue
		}
		if equalWords(e.sourceWords, words) {
			if !found || (!lexicon.IsPriority(best.kind) && lexicon.IsPriority(e.kind)) {
				best = e
				found = true
			}
		}
	}
	return best, found
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// emitPhrase rewrites source tokens src (length P) into the entry's target
// words (length Q), per spec.md §4.D rule 2's P=Q/Q<P/Q>P cases.
func emitPhrase(src []token.Token, e phraseEntry, prevOut []token.Token) []token.Token {
	p := len(src)
	words := e.targetWords
	q := len(words)

	if p == q {
		out := make([]token.Token, q)
		for i := 0; i < q; i++ {
			out[i] = token.Token{Kind: src[i].Kind, Value: words[i], Start: src[i].Start, End: src[i].End, Channel: src[i].Channel}
		}
		return out
	}
	if q < p {
		// Merge into q tokens, distributing source spans proportionally.
		out := make([]token.Token, q)
		chunk := p / q
		if chunk == 0 {
			chunk = 1
		}
		for i := 0; i < q; i++ {
			lo := i * chunk
			hi := lo + chunk
			if i == q-1 || hi > p {
				hi = p
			}
			if lo >= p {
				lo = p - 1
			}
			out[i] = token.Token{Kind: src[0].Kind, Value: words[i], Start: src[lo].Start, End: src[hi-1].End, Channel: src[0].Channel}
		}
		return out
	}
	// q > p: split into q tokens, all sharing the original span.
	out := make([]token.Token, q)
	for i := 0; i < q; i++ {
		out[i] = token.Token{Kind: src[0].Kind, Value: words[i], Start: src[0].Start, End: src[len(src)-1].End, Channel: src[0].Channel}
	}
	return out
}

// singleFallback rewrites a single token's value if present in the phrase
// index, honoring allowedDuplicates, else passes the token through
// unchanged (spec.md §4.D rule 4).
func singleFallback(tok token.Token, t *Table, prevOut []token.Token) token.Token {
	lower := strings.ToLower(tok.Value)

	if dupKinds, ok := t.source.Canonicalization.AllowedDuplicates[tok.Value]; ok {
		chosen := disambiguate(dupKinds, prevOut, t.source)
		if target, ok := t.source.Keywords[chosen]; ok {
			return token.Token{Kind: tok.Kind, Value: target, Start: tok.Start, End: tok.End, Channel: tok.Channel}
		}
	}

	for _, e := range t.phrases {
		if len(e.sourceWords) == 1 && e.sourceWords[0] == lower && len(e.targetWords) == 1 {
			return token.Token{Kind: tok.Kind, Value: e.targetWords[0], Start: tok.Start, End: tok.End, Channel: tok.Channel}
		}
	}
	return tok
}

// disambiguate implements "if the last two emitted tokens form `let NAME`,
// choose `be`; otherwise the default" (spec.md §4.D rule 3), extended with
// the symmetric "Set NAME" -> `to` case the same ambiguous zh-CN spelling
// ("为") also covers, plus a backward scan over the nearest declaration
// opener for ambiguous spellings whose opener can be more than two tokens
// back (zh-CN "包含" after "Rule NAME" vs. after "Define NAME ...").
func disambiguate(candidates []lexicon.SemanticKind, prevOut []token.Token, source *lexicon.Lexicon) lexicon.SemanticKind {
	if len(prevOut) >= 2 {
		prev2, prev1 := prevOut[len(prevOut)-2], prevOut[len(prevOut)-1]
		nameBefore := prev1.Kind == token.IDENT || prev1.Kind == token.TYPE_IDENT
		if nameBefore && strings.EqualFold(prev2.Value, source.Keywords[lexicon.KwLet]) {
			if has(candidates, lexicon.KwBe) {
				return lexicon.KwBe
			}
		}
		if nameBefore && strings.EqualFold(prev2.Value, source.Keywords[lexicon.KwSet]) {
			if has(candidates, lexicon.KwTo2) {
				return lexicon.KwTo2
			}
		}
	}
	if has(candidates, lexicon.KwGiven) {
		if opener := nearestOpener(prevOut, source, lexicon.KwRule, lexicon.KwTo, lexicon.KwDefine); opener == lexicon.KwRule || opener == lexicon.KwTo {
			return lexicon.KwGiven
		}
	}
	if len(candidates) > 0 {
		return candidates[len(candidates)-1]
	}
	return ""
}

// nearestOpener scans prevOut backward for the nearest emitted token whose
// value equals one of anchors' target spellings and returns that anchor's
// kind, or "" if none occurs.
func nearestOpener(prevOut []token.Token, source *lexicon.Lexicon, anchors ...lexicon.SemanticKind) lexicon.SemanticKind {
	for i := len(prevOut) - 1; i >= 0; i-- {
		for _, a := range anchors {
			if target, ok := source.Keywords[a]; ok && strings.EqualFold(prevOut[i].Value, target) {
				return a
			}
		}
	}
	return ""
}

func has(candidates []lexicon.SemanticKind, target lexicon.SemanticKind) bool {
	for _, c := range candidates {
		if c == target {
			return true
		}
	}
	return false
}
