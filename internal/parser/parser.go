// Package parser builds a surface AST from a canonical-English token stream
// (spec.md §4.E, Component E). Grounded on the teacher's parser package
// layout: one file per grammar concern (decl.go/expr.go/type.go/pattern.go
// mirror expressions_*.go/statements_*.go) and its error-recovery style
// (synchronize at the next top-level '.' boundary).
package parser

import (
	"fmt"
	"unicode"

	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/keytrans"
	"github.com/aster-lang/aster-core/internal/lexicon"
	"github.com/aster-lang/aster-core/internal/span"
	"github.com/aster-lang/aster-core/internal/token"
)

// parseError is raised internally to unwind to the nearest recovery point;
// it is always converted to a diagnostics.Diagnostic before Parse returns.
type parseError struct {
	diag diagnostics.Diagnostic
}

func (e *parseError) Error() string { return e.diag.Message }

// Parser consumes a translated token stream and emits a Module AST.
type Parser struct {
	toks        []token.Token
	pos         int
	diags       []diagnostics.Diagnostic
	currentFunc *ast.Func // the Func whose body is being parsed, for trailing-effect absorption
}

// Parse builds a Module AST from an already-English token stream (spec.md
// §6 "parse(tokens) -> Module"). Trivia tokens are skipped transparently.
func Parse(toks []token.Token) (*ast.Module, []diagnostics.Diagnostic) {
	p := &Parser{toks: filterTrivia(toks)}
	return p.parseModule()
}

// ParseWithLexicon translates toks from source's own spelling to canonical
// English before parsing (spec.md §6 "parseWithLexicon").
func ParseWithLexicon(toks []token.Token, source *lexicon.Lexicon) (*ast.Module, []diagnostics.Diagnostic) {
	target := lexicon.Global().GetDefault()
	table := keytrans.Build(source, target)
	translated := keytrans.Translate(toks, table)
	return Parse(translated)
}

func filterTrivia(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.IsTrivia() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// --- token navigation -------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peek(ahead int) token.Token {
	idx := p.pos + ahead
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) atKeyword(word string) bool {
	t := p.cur()
	return (t.Kind == token.IDENT || t.Kind == token.TYPE_IDENT) && eqFold(t.Value, word)
}

func (p *Parser) atAnyKeyword(words ...string) bool {
	for _, w := range words {
		if p.atKeyword(w) {
			return true
		}
	}
	return false
}

func eqFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// expect consumes kind or raises a fatal parseError.
func (p *Parser) expect(kind token.Kind) token.Token {
	if !p.at(kind) {
		p.fail(diagnostics.CodeExpectedPunct, fmt.Sprintf("expected %s, found %q", kind, p.cur().Value))
	}
	return p.advance()
}

// isTypeNameToken reports whether t can stand as a type/constructor/variant
// name: either TYPE_IDENT (ASCII scripts, first letter uppercase per
// spec.md §3) or an IDENT token whose value contains no ASCII letters at
// all. Scripts without case (e.g. Chinese) never produce TYPE_IDENT — the
// lexer always emits IDENT for them (spec.md §3 "for scripts without case,
// emit IDENT") — so a type name written in such a script would otherwise
// never satisfy a bare TYPE_IDENT check anywhere a type/variant/constructor
// name is expected.
func isTypeNameToken(t token.Token) bool {
	if t.Kind == token.TYPE_IDENT {
		return true
	}
	if t.Kind != token.IDENT {
		return false
	}
	for _, r := range t.Value {
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// expectTypeName consumes a token satisfying isTypeNameToken, or raises a
// fatal parseError.
func (p *Parser) expectTypeName() token.Token {
	if !isTypeNameToken(p.cur()) {
		p.fail(diagnostics.CodeExpectedPunct, fmt.Sprintf("expected a type name, found %q", p.cur().Value))
	}
	return p.advance()
}

// expectKeyword consumes an IDENT/TYPE_IDENT whose value matches word.
func (p *Parser) expectKeyword(word string) token.Token {
	if !p.atKeyword(word) {
		p.fail(diagnostics.CodeUnexpectedKeyword, fmt.Sprintf("expected %q, found %q", word, p.cur().Value))
	}
	return p.advance()
}

func (p *Parser) span(start token.Position) span.Span {
	idx := p.pos - 1
	if idx < 0 {
		idx = 0
	}
	return span.Span{Start: start, End: p.toks[idx].End}
}

func (p *Parser) fail(code, msg string) {
	sp := span.FromToken(p.cur())
	panic(&parseError{diag: diagnostics.New(diagnostics.Error, code, msg, sp, "aster-parser")})
}

func (p *Parser) addDiag(code, msg string, sp span.Span) {
	p.diags = append(p.diags, diagnostics.New(diagnostics.Error, code, msg, sp, "aster-parser"))
}

// synchronize skips to just after the next top-level '.' (column-1 token
// stream position is not tracked here; instead we resync at DOT tokens not
// nested inside any block), per spec.md §4.E "Error recovery".
func (p *Parser) synchronize() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.INDENT:
			depth++
		case token.DEDENT:
			if depth > 0 {
				depth--
			}
		case token.DOT:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// --- module entry point -------------------------------------------------

func (p *Parser) parseModule() (mod *ast.Module, diags []diagnostics.Diagnostic) {
	start := p.cur().Start
	mod = &ast.Module{}

	if p.atKeyword("This") {
		mod.Name = p.parseModuleHeader()
	}

	for !p.at(token.EOF) {
		p.skipNewlines()
		if p.at(token.EOF) {
			break
		}
		decl, ok := p.parseTopLevelDecl()
		if ok {
			mod.Decls = append(mod.Decls, decl)
		}
	}

	mod.Span = span.Span{Start: start, End: p.cur().End}
	return mod, p.diags
}

func (p *Parser) skipNewlines() {
	for p.at(token.NEWLINE) {
		p.advance()
	}
}

// parseModuleHeader parses "This module is <QualifiedName>.".
func (p *Parser) parseModuleHeader() (name string) {
	defer p.recoverInto(&name)
	p.expectKeyword("This")
	p.expectKeyword("module")
	p.expectKeyword("is")
	name = p.parseQualifiedName()
	p.expect(token.DOT)
	return name
}

func (p *Parser) recoverInto(_ *string) {
	if r := recover(); r != nil {
		if pe, ok := r.(*parseError); ok {
			p.diags = append(p.diags, pe.diag)
			p.synchronize()
			return
		}
		panic(r)
	}
}

func (p *Parser) parseQualifiedName() string {
	name := p.advance().Value
	for p.at(token.DOT) && (p.peek(1).Kind == token.IDENT || p.peek(1).Kind == token.TYPE_IDENT) {
		p.advance()
		name += "." + p.advance().Value
	}
	return name
}

// parseTopLevelDecl parses one Declaration, recovering to the next
// top-level '.' boundary on error (spec.md §4.E "Error recovery: errors
// are fatal per top-level decl boundary").
func (p *Parser) parseTopLevelDecl() (decl ast.Declaration, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if pe, isPE := r.(*parseError); isPE {
				p.diags = append(p.diags, pe.diag)
				p.synchronize()
				decl, ok = nil, false
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.atKeyword("Use"):
		return p.parseImport(), true
	case p.atKeyword("Define"):
		return p.parseDataOrEnum(), true
	case p.atAnyKeyword("Rule", "To"):
		return p.parseFunc(), true
	default:
		p.fail(diagnostics.CodeUnexpectedKeyword, fmt.Sprintf("unexpected token %q at top level", p.cur().Value))
		return nil, false
	}
}
