package parser

import (
	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/token"
)

// parsePattern parses one Match-arm pattern (spec.md §4.E "Match": "null",
// integer literal, identifier (binds), "TypeName(args...)" or "TypeName").
func (p *Parser) parsePattern() ast.Pattern {
	start := p.cur().Start
	tok := p.cur()

	switch {
	case p.atKeyword("null"):
		p.advance()
		return &ast.PatternNull{Span: p.span(start)}
	case tok.Kind == token.INT:
		p.advance()
		return &ast.PatternInt{Value: tok.Value, Span: p.span(start)}
	case isTypeNameToken(tok):
		p.advance()
		name := tok.Value
		if !p.at(token.LPAREN) {
			return &ast.PatternCtor{TypeName: name, Span: p.span(start)}
		}
		p.advance()
		var args []ast.Pattern
		var names []string
		if !p.at(token.RPAREN) {
			for {
				if p.cur().Kind == token.IDENT && (p.peek(1).Kind == token.COMMA || p.peek(1).Kind == token.RPAREN) {
					names = append(names, p.advance().Value)
				} else {
					args = append(args, p.parsePattern())
				}
				if p.at(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
		}
		p.expect(token.RPAREN)
		return &ast.PatternCtor{TypeName: name, Names: names, Args: args, Span: p.span(start)}
	default:
		p.advance()
		return &ast.PatternName{Name: tok.Value, Span: p.span(start)}
	}
}
