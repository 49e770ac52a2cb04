package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster-core/internal/token"
)

// kinds returns the Kind sequence of the default-channel tokens, dropping
// trivia (comments, blank-line NEWLINEs) the way the parser does.
func kinds(toks []token.Token) []token.Kind {
	var ks []token.Kind
	for _, t := range toks {
		if t.IsTrivia() {
			continue
		}
		ks = append(ks, t.Kind)
	}
	return ks
}

func values(toks []token.Token) []string {
	var vs []string
	for _, t := range toks {
		if t.IsTrivia() {
			continue
		}
		vs = append(vs, t.Value)
	}
	return vs
}

// scenario 1 ("Greet, English, indentation-sensitive", spec.md §8): exactly
// one INDENT and one DEDENT, no lex diagnostics.
func TestLexGreetScenario(t *testing.T) {
	src := "This module is demo.greet.\n" +
		"Rule greet given name: Text, produce Text:\n" +
		"  Return \"Hi \".\n"
	toks, diags := Lex(src)
	require.Empty(t, diags)

	var indents, dedents int
	for _, tk := range toks {
		switch tk.Kind {
		case token.INDENT:
			indents++
		case token.DEDENT:
			dedents++
		}
	}
	assert.Equal(t, 1, indents)
	assert.Equal(t, 1, dedents)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

// Property 3 (spec.md §8): INDENT/DEDENT counts are equal at EOF, for a
// source with several nested block levels.
func TestIndentationBalance(t *testing.T) {
	src := "Rule f given a: Int, produce Int:\n" +
		"  If a:\n" +
		"    Return a.\n" +
		"  Otherwise:\n" +
		"    Return a.\n"
	toks, diags := Lex(src)
	require.Empty(t, diags)

	var indents, dedents int
	for _, tk := range toks {
		switch tk.Kind {
		case token.INDENT:
			indents++
		case token.DEDENT:
			dedents++
		}
	}
	assert.Equal(t, indents, dedents)
	assert.Greater(t, indents, 0)
}

// Property 2 (spec.md §8): newline independence. LF, CRLF and CR-only
// sources yield identical token kind/value sequences (positions may
// differ, but those aren't compared here).
func TestNewlineIndependence(t *testing.T) {
	lf := "Rule f, produce Int:\n  Return 1.\n"
	crlf := strings.ReplaceAll(lf, "\n", "\r\n")
	cr := strings.ReplaceAll(lf, "\n", "\r")

	lfToks, lfDiags := Lex(lf)
	crlfToks, crlfDiags := Lex(crlf)
	crToks, crDiags := Lex(cr)

	require.Empty(t, lfDiags)
	require.Empty(t, crlfDiags)
	require.Empty(t, crDiags)

	assert.Equal(t, kinds(lfToks), kinds(crlfToks))
	assert.Equal(t, kinds(lfToks), kinds(crToks))
	assert.Equal(t, values(lfToks), values(crlfToks))
	assert.Equal(t, values(lfToks), values(crToks))
}

func TestOddIndentationDiagnostic(t *testing.T) {
	src := "Rule f, produce Int:\n" +
		"   Return 1.\n" // 3 spaces, not a multiple of 2
	_, diags := Lex(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, "LEX_ODD_INDENT", diags[0].Code)
}

func TestUnterminatedStringDiagnostic(t *testing.T) {
	src := `Return "unterminated.` + "\n"
	_, diags := Lex(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, "LEX_UNTERMINATED_STRING", diags[0].Code)
}

func TestMismatchedDedentDiagnostic(t *testing.T) {
	src := "Rule f, produce Int:\n" +
		"  If true:\n" +
		"    Return 1.\n" +
		"   Return 2.\n" // dedents to col 3, matches no open level
	_, diags := Lex(src)
	found := false
	for _, d := range diags {
		if d.Code == "LEX_MISMATCHED_DEDENT" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestIllegalCharacterDiagnostic(t *testing.T) {
	src := "Return 1 ~ 2.\n"
	_, diags := Lex(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, "LEX_ILLEGAL_CHAR", diags[0].Code)
}

func TestNumberSuffixes(t *testing.T) {
	toks, diags := Lex("Return 42, 42L, 3.14.\n")
	require.Empty(t, diags)
	var kindsSeen []token.Kind
	var vals []string
	for _, tk := range toks {
		if tk.Kind == token.INT || tk.Kind == token.LONG || tk.Kind == token.DOUBLE {
			kindsSeen = append(kindsSeen, tk.Kind)
			vals = append(vals, tk.Value)
		}
	}
	assert.Equal(t, []token.Kind{token.INT, token.LONG, token.DOUBLE}, kindsSeen)
	assert.Equal(t, []string{"42", "42", "3.14"}, vals)
}

func TestTypeIdentVsIdent(t *testing.T) {
	toks, _ := Lex("Define User with id: Text.\n")
	var got []string
	for _, tk := range toks {
		if tk.Kind == token.TYPE_IDENT || tk.Kind == token.IDENT {
			got = append(got, string(tk.Kind)+":"+tk.Value)
		}
	}
	assert.Contains(t, got, "TYPE_IDENT:Define")
	assert.Contains(t, got, "TYPE_IDENT:User")
	assert.Contains(t, got, "TYPE_IDENT:Text")
	assert.Contains(t, got, "IDENT:id")
}

func TestBlankLinesProduceNoStructuralTokens(t *testing.T) {
	src := "Rule f, produce Int:\n" +
		"\n" +
		"   \n" +
		"  Return 1.\n"
	toks, diags := Lex(src)
	require.Empty(t, diags)
	var indents int
	for _, tk := range toks {
		if tk.Kind == token.INDENT {
			indents++
		}
	}
	assert.Equal(t, 1, indents)
}

func TestCommentsAreTrivia(t *testing.T) {
	src := "// a comment\nReturn 1.\n"
	toks, _ := Lex(src)
	sawComment := false
	for _, tk := range toks {
		if tk.Kind == token.COMMENT {
			sawComment = true
			assert.Equal(t, token.Trivia, tk.Channel)
		}
	}
	assert.True(t, sawComment)
}
