// Package lexer implements the indentation-sensitive tokenizer (spec.md
// §4.C). Grounded directly on the teacher's internal/lexer/lexer.go scanner
// shape (explicit position/readPosition/ch cursor, readChar/peekChar,
// switch-based NextToken) adapted with an indent-width stack, NEWLINE/
// INDENT/DEDENT emission and a trivia channel for comments.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/span"
	"github.com/aster-lang/aster-core/internal/token"
)

// Lexer is the scanner value: {source, byte_index, line, col, indent_stack}
// per spec.md §9's re-architecture note, threaded through one token at a
// time rather than mutated by a cooperative coroutine.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int

	indentStack []int
	atBOL       bool // true when the next scan must first measure indentation
	pending     []token.Token
	diags       []diagnostics.Diagnostic
}

// Lex tokenizes canonical source text and returns the full token vector
// (always EOF-terminated, INDENT/DEDENT balanced at EOF per spec.md §6),
// plus any lex-stage diagnostics. CRLF and lone CR line endings are folded
// to LF first, so each counts as exactly one line.
func Lex(canonicalSource string) ([]token.Token, []diagnostics.Diagnostic) {
	canonicalSource = strings.ReplaceAll(canonicalSource, "\r\n", "\n")
	canonicalSource = strings.ReplaceAll(canonicalSource, "\r", "\n")
	l := newLexer(canonicalSource)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks, l.diags
}

func newLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0, indentStack: []int{0}, atBOL: true}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column += utf16Width(r)
}

func utf16Width(r rune) int {
	return len(utf16.Encode([]rune{r}))
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) addDiag(code, msg string) {
	sp := span.Span{Start: l.pos(), End: l.pos()}
	l.diags = append(l.diags, diagnostics.New(diagnostics.Error, code, msg, sp, "aster-lexer"))
}

// NextToken returns the next token, handling indentation bookkeeping at the
// start of every logical line before falling through to ordinary scanning.
func (l *Lexer) NextToken() token.Token {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	}

	if l.atBOL {
		if tok, handled := l.handleLineStart(); handled {
			return tok
		}
	}

	return l.scanOne()
}

// handleLineStart measures leading indentation, skips blank lines, and
// queues INDENT/DEDENT tokens. Returns handled=true if it produced (or
// queued) a token the caller should return now.
func (l *Lexer) handleLineStart() (token.Token, bool) {
	start := l.pos()
	width := 0
	for l.ch == ' ' {
		width++
		l.readChar()
	}

	// Blank line (possibly followed by more spaces, a comment, or EOF):
	// no INDENT/DEDENT/NEWLINE.
	if l.ch == '\n' || l.ch == 0 || l.isCommentStart() {
		if l.ch == '\n' {
			tk := token.Token{Kind: token.NEWLINE, Value: "\n", Start: l.pos(), End: l.pos(), Channel: token.Trivia}
			l.readChar()
			l.atBOL = true
			return tk, true
		}
		l.atBOL = false
		return token.Token{}, false
	}

	l.atBOL = false

	if width%2 != 0 {
		l.addDiag(diagnostics.CodeOddIndent, fmt.Sprintf("indentation must be a multiple of 2 spaces, got %d", width))
	}

	top := l.indentStack[len(l.indentStack)-1]
	if width > top {
		l.indentStack = append(l.indentStack, width)
		return token.Token{Kind: token.INDENT, Value: "", Start: start, End: l.pos()}, true
	}
	if width < top {
		for len(l.indentStack) > 1 && l.indentStack[len(l.indentStack)-1] > width {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.pending = append(l.pending, token.Token{Kind: token.DEDENT, Value: "", Start: start, End: l.pos()})
		}
		if l.indentStack[len(l.indentStack)-1] != width {
			l.addDiag(diagnostics.CodeMismatchedDedent, "dedent does not match any enclosing indentation level")
			l.indentStack = append(l.indentStack, width)
		}
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t, true
	}
	return token.Token{}, false
}

func (l *Lexer) isCommentStart() bool {
	return (l.ch == '/' && l.peekChar() == '/') || l.ch == '#'
}

func newTok(kind token.Kind, value string, start, end token.Position) token.Token {
	return token.Token{Kind: kind, Value: value, Start: start, End: end}
}

func (l *Lexer) scanOne() token.Token {
	// Skip inline spaces (not indentation — mid-line whitespace).
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}

	start := l.pos()

	switch {
	case l.ch == 0:
		// Emit any remaining DEDENTs before EOF so the stream stays balanced.
		for len(l.indentStack) > 1 {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.pending = append(l.pending, newTok(token.DEDENT, "", start, start))
		}
		l.pending = append(l.pending, newTok(token.EOF, "", start, start))
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	case l.ch == '\n':
		l.readChar()
		l.atBOL = true
		return newTok(token.NEWLINE, "\n", start, l.pos())
	case l.ch == '/' && l.peekChar() == '/':
		return l.scanLineComment(start)
	case l.ch == '#':
		return l.scanLineComment(start)
	case l.ch == '"' || l.ch == '「' || l.ch == '“':
		return l.scanString(start)
	case l.ch == '.' || l.ch == '。':
		if l.peekChar() == '.' {
			// reserved for future range syntax; treated as two DOTs today.
		}
		l.readChar()
		return newTok(token.DOT, ".", start, l.pos())
	case l.ch == ',' || l.ch == '，' || l.ch == '、':
		l.readChar()
		return newTok(token.COMMA, ",", start, l.pos())
	case l.ch == ':' || l.ch == '：':
		l.readChar()
		return newTok(token.COLON, ":", start, l.pos())
	case l.ch == '(':
		l.readChar()
		return newTok(token.LPAREN, "(", start, l.pos())
	case l.ch == ')':
		l.readChar()
		return newTok(token.RPAREN, ")", start, l.pos())
	case l.ch == '[' || l.ch == '【':
		l.readChar()
		return newTok(token.LBRACKET, "[", start, l.pos())
	case l.ch == ']' || l.ch == '】':
		l.readChar()
		return newTok(token.RBRACKET, "]", start, l.pos())
	case l.ch == '/':
		l.readChar()
		return newTok(token.SLASH, "/", start, l.pos())
	case l.ch == '@':
		l.readChar()
		return newTok(token.AT, "@", start, l.pos())
	case l.ch == '?':
		l.readChar()
		return newTok(token.QUESTION, "?", start, l.pos())
	case l.ch == '=' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		return newTok(token.ARROW, "=>", start, l.pos())
	case l.ch == '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newTok(token.LTE, "<=", start, l.pos())
		}
		l.readChar()
		return newTok(token.LT, "<", start, l.pos())
	case l.ch == '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return newTok(token.GTE, ">=", start, l.pos())
		}
		l.readChar()
		return newTok(token.GT, ">", start, l.pos())
	case isDigit(l.ch):
		return l.scanNumber(start)
	case isIdentStart(l.ch):
		return l.scanIdentifier(start)
	default:
		ch := l.ch
		l.readChar()
		l.addDiag(diagnostics.CodeIllegalChar, fmt.Sprintf("illegal character %q", ch))
		return newTok(token.ILLEGAL, string(ch), start, l.pos())
	}
}

func (l *Lexer) scanLineComment(start token.Position) token.Token {
	var b strings.Builder
	for l.ch != '\n' && l.ch != 0 {
		b.WriteRune(l.ch)
		l.readChar()
	}
	return token.Token{Kind: token.COMMENT, Value: b.String(), Start: start, End: l.pos(), Channel: token.Trivia}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func (l *Lexer) scanIdentifier(start token.Position) token.Token {
	pos := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	value := l.input[pos:l.position]
	kind := token.IDENT
	if r, _ := utf8.DecodeRuneInString(value); r <= unicode.MaxASCII && unicode.IsUpper(r) {
		kind = token.TYPE_IDENT
	}
	return token.Token{Kind: kind, Value: value, Start: start, End: l.pos()}
}

func (l *Lexer) scanNumber(start token.Position) token.Token {
	pos := l.position
	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	isLong := false
	if l.ch == 'l' || l.ch == 'L' {
		isLong = true
		l.readChar()
	}
	lexeme := l.input[pos:l.position]
	value := lexeme
	if isLong {
		value = strings.TrimSuffix(strings.TrimSuffix(lexeme, "l"), "L")
		return token.Token{Kind: token.LONG, Value: value, Start: start, End: l.pos()}
	}
	if isFloat {
		return token.Token{Kind: token.DOUBLE, Value: value, Start: start, End: l.pos()}
	}
	return token.Token{Kind: token.INT, Value: value, Start: start, End: l.pos()}
}

func (l *Lexer) scanString(start token.Position) token.Token {
	open := l.ch
	close_ := open
	switch open {
	case '「':
		close_ = '」'
	case '“':
		close_ = '”'
	}
	l.readChar() // consume opener
	var b strings.Builder
	terminated := false
	for {
		if l.ch == 0 {
			break
		}
		if l.ch == close_ {
			terminated = true
			l.readChar()
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteRune(close_)
				if l.ch != close_ {
					b.WriteRune(l.ch)
				}
			}
			l.readChar()
			continue
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
	if !terminated {
		l.addDiag(diagnostics.CodeUnterminatedStr, "unterminated string literal")
	}
	return token.Token{Kind: token.STRING, Value: b.String(), Start: start, End: l.pos()}
}

// ParseIntLiteral re-parses an INT token's lexeme as an int64. The parser
// calls it to reject INT literals that overflow int64 (PARSE_INT_OVERFLOW).
func ParseIntLiteral(lexeme string) (int64, error) {
	return strconv.ParseInt(lexeme, 10, 64)
}
