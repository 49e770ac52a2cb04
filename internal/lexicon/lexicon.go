// Package lexicon holds per-locale configuration: keywords, punctuation and
// canonicalization rules (spec.md §4.A, Component A). Grounded on the
// teacher's internal/config/constants.go "named constants + helper funcs"
// idiom and the token.keywords map-literal shape for per-locale tables.
package lexicon

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// SemanticKind names a role a keyword/phrase plays, independent of the
// surface word used to spell it in any given locale (spec.md §4.A).
type SemanticKind string

const (
	KwModuleDecl    SemanticKind = "MODULE_DECL"
	KwUse           SemanticKind = "USE"
	KwAs            SemanticKind = "AS"
	KwDefine        SemanticKind = "DEFINE"
	KwWith          SemanticKind = "WITH"
	KwHas           SemanticKind = "HAS"
	KwAsOneOf       SemanticKind = "AS_ONE_OF"
	KwRule          SemanticKind = "RULE"
	KwTo            SemanticKind = "TO"
	KwGiven         SemanticKind = "GIVEN"
	KwProduce       SemanticKind = "PRODUCE"
	KwOf            SemanticKind = "OF"
	KwAnd           SemanticKind = "AND"
	KwIt            SemanticKind = "IT"
	KwPerforms      SemanticKind = "PERFORMS"
	KwLet           SemanticKind = "LET"
	KwBe            SemanticKind = "BE"
	KwSet           SemanticKind = "SET"
	KwTo2           SemanticKind = "TO2" // "Set x to y"
	KwReturn        SemanticKind = "RETURN"
	KwIf            SemanticKind = "IF"
	KwNot           SemanticKind = "NOT"
	KwOtherwise     SemanticKind = "OTHERWISE"
	KwMatch         SemanticKind = "MATCH" // "If <expr>:" acting as match dispatcher
	KwWhen          SemanticKind = "WHEN"
	KwStart         SemanticKind = "START"
	KwWait          SemanticKind = "WAIT"
	KwWithin        SemanticKind = "WITHIN"
	KwScope         SemanticKind = "SCOPE"
	KwRequired      SemanticKind = "REQUIRED"
	KwBetween       SemanticKind = "BETWEEN"
	KwMatching      SemanticKind = "MATCHING"
	KwFunction      SemanticKind = "FUNCTION"
	KwA             SemanticKind = "A" // article, used in "a function with..."
	KwThe           SemanticKind = "THE"
	KwTypeWith      SemanticKind = "TYPE_WITH" // priority keyword per §4.D
	KwTypeDef       SemanticKind = "TYPE_DEF"
	KwGreaterThan   SemanticKind = "GREATER_THAN"
	KwLessThan      SemanticKind = "LESS_THAN"
	KwNull          SemanticKind = "NULL"
	KwTrue          SemanticKind = "TRUE"
	KwFalse         SemanticKind = "FALSE"
	KwSome          SemanticKind = "SOME"
	KwNone          SemanticKind = "NONE"
	KwOk            SemanticKind = "OK"
	KwErr           SemanticKind = "ERR"
	KwAwait         SemanticKind = "AWAIT"
)

// priorityKinds win over conflicting low-priority phrase mappings during
// keyword translation (spec.md §4.D "Priority rules").
var priorityKinds = map[SemanticKind]bool{
	KwTypeWith:    true,
	KwModuleDecl:  true,
	KwTypeDef:     true,
	KwIf:          true,
	KwReturn:      true,
	KwGreaterThan: true,
	KwLessThan:    true,
}

// IsPriority reports whether kind wins tie-breaks in the keyword translator.
func IsPriority(kind SemanticKind) bool { return priorityKinds[kind] }

// Quotes describes a locale's open/close string delimiters.
type Quotes struct {
	Open  string
	Close string
}

// Punctuation is the locale's punctuation configuration (spec.md §3).
type Punctuation struct {
	StatementEnd   string
	ListSeparator  string
	EnumSeparator  string
	BlockStart     string
	StringQuotes   Quotes
	MarkersOpen    string // optional bracket-wrapped keyword opener, e.g. "【"
	MarkersClose   string // e.g. "】"
}

// WhitespaceMode selects how canonicalization tightens inter-token spacing.
type WhitespaceMode string

const (
	WhitespaceASCII   WhitespaceMode = "ascii"
	WhitespaceChinese WhitespaceMode = "chinese"
)

// CustomRule is a locale-specific regex replacement applied during
// canonicalization step 5 (spec.md §4.B).
type CustomRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// CompoundPattern declares that an opener keyword followed by one of a set
// of contextual keywords should be interpreted as a unit (spec.md §3, §8
// scenario 2, e.g. Chinese 若…为 as match…when).
type CompoundPattern struct {
	Opener  SemanticKind
	Context []SemanticKind
	Meaning string // human-readable description, e.g. "match ... when"
}

// Canonicalization groups the textual-normalization knobs for a locale.
type Canonicalization struct {
	WhitespaceMode    WhitespaceMode
	FullWidthToHalf   bool
	RemoveArticles    bool
	Articles          []string
	CustomRules       []CustomRule
	AllowedDuplicates map[string][]SemanticKind // source word -> candidate roles
	CompoundPatterns  []CompoundPattern
}

// Lexicon is the full per-locale configuration (spec.md §3).
type Lexicon struct {
	ID               string
	Name             string
	Keywords         map[SemanticKind]string // canonical English target keyword/phrase
	SourceKeywords   map[SemanticKind]string // this locale's own spelling
	Punctuation      Punctuation
	Canonicalization Canonicalization
}

// multiWordCache memoizes multiWordKeywords() per lexicon id.
var (
	multiWordCacheMu sync.Mutex
	multiWordCache   = map[string][]string{}
)

// MultiWordKeywords returns all keyword phrases (in this locale's own
// spelling) containing whitespace, sorted descending by length so the
// canonicalizer and keyword translator can greedily match the longest
// phrase first. Safe for concurrent use across independent pipeline
// instances (spec.md §5).
func (l *Lexicon) MultiWordKeywords() []string {
	multiWordCacheMu.Lock()
	defer multiWordCacheMu.Unlock()
	if cached, ok := multiWordCache[l.ID]; ok {
		return cached
	}
	var phrases []string
	for _, phrase := range l.SourceKeywords {
		if strings.ContainsAny(phrase, " \t") {
			phrases = append(phrases, phrase)
		}
	}
	sort.Slice(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })
	multiWordCache[l.ID] = phrases
	return phrases
}

// invalidateMultiWordCache drops a locale's cached phrase list, e.g. when
// Register replaces an existing lexicon under the same ID.
func invalidateMultiWordCache(id string) {
	multiWordCacheMu.Lock()
	defer multiWordCacheMu.Unlock()
	delete(multiWordCache, id)
}
