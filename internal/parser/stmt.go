package parser

import (
	"fmt"

	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/token"
)

// parseBlock parses "INDENT Statement+ DEDENT" (spec.md §4.E "Block").
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur().Start
	p.skipNewlines()
	p.expect(token.INDENT)
	blk := &ast.Block{}
	p.skipNewlines()
	for !p.at(token.DEDENT) && !p.at(token.EOF) {
		if stmt, ok := p.parseStatement(); ok {
			blk.Statements = append(blk.Statements, stmt)
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	blk.Span = p.span(start)
	return blk
}

// parseStatement parses one Statement, or returns ok=false when the line
// was a trailing effect clause absorbed into the enclosing function
// (spec.md §4.E "Return-trailing effects").
func (p *Parser) parseStatement() (stmt ast.Statement, ok bool) {
	if p.atKeyword("It") && p.peek(1).Kind == token.IDENT && eqFold(p.peek(1).Value, "performs") {
		p.absorbTrailingEffectClause()
		return nil, false
	}

	switch {
	case p.atKeyword("Let"):
		return p.parseLet(), true
	case p.atKeyword("Set"):
		return p.parseSet(), true
	case p.atKeyword("Return"):
		return p.parseReturn(), true
	case p.atKeyword("If"):
		return p.parseIfOrMatch(), true
	case p.atKeyword("Start"):
		return p.parseStart(), true
	case p.atKeyword("Wait"):
		return p.parseWait(), true
	case p.atKeyword("Within"):
		return p.parseWithin(), true
	default:
		return p.parseCallStmt(), true
	}
}

// absorbTrailingEffectClause merges "It performs ... ." into p.currentFunc,
// never lowering EffectCapsExplicit back to false once set (spec.md §4.E).
func (p *Parser) absorbTrailingEffectClause() {
	fn := p.currentFunc
	dummy := &ast.Func{}
	p.parseEffectClause(dummy)
	p.expect(token.DOT)
	if fn == nil {
		return
	}
	fn.Effects = append(fn.Effects, dummy.Effects...)
	if dummy.EffectCapsExplicit {
		fn.EffectCaps = append(fn.EffectCaps, dummy.EffectCaps...)
		fn.EffectCapsExplicit = true
	}
}

func (p *Parser) parseLet() *ast.Let {
	start := p.cur().Start
	p.advance()
	name := p.advance().Value
	p.expectKeyword("be")
	expr := p.parseExpression()
	p.expect(token.DOT)
	return &ast.Let{Name: name, Expr: expr, Span: p.span(start)}
}

func (p *Parser) parseSet() *ast.Set {
	start := p.cur().Start
	p.advance()
	name := p.advance().Value
	p.expectKeyword("to")
	expr := p.parseExpression()
	p.expect(token.DOT)
	return &ast.Set{Name: name, Expr: expr, Span: p.span(start)}
}

func (p *Parser) parseReturn() *ast.Return {
	start := p.cur().Start
	p.advance()
	var expr ast.Expression
	if !p.at(token.DOT) {
		expr = p.parseExpression()
	}
	p.expect(token.DOT)
	return &ast.Return{Expr: expr, Span: p.span(start)}
}

// parseIfOrMatch parses "If not(...)" sugar, a plain If/Otherwise, or a
// Match dispatch ("If <expr>: When ... "), per spec.md §4.E.
func (p *Parser) parseIfOrMatch() ast.Statement {
	start := p.cur().Start
	p.advance() // "If"

	negate := false
	if p.atKeyword("not") {
		negate = true
		p.advance()
	}

	cond := p.parseExpression()
	if negate {
		cond = &ast.Call{Target: &ast.Name{Value: "not", Span: cond.GetSpan()}, Args: []ast.Expression{cond}, Span: cond.GetSpan()}
	}

	p.expect(token.COLON)
	p.skipNewlines()

	if p.at(token.INDENT) && p.peek(1).Kind == token.IDENT && eqFold(p.peek(1).Value, "When") {
		return p.parseMatchBody(start, cond)
	}

	thenBlk := p.parseBlock()
	var elseBlk *ast.Block
	p.skipNewlines()
	if p.atKeyword("Otherwise") {
		p.advance()
		p.expect(token.COLON)
		elseBlk = p.parseBlock()
	}
	return &ast.If{Cond: cond, Then: thenBlk, Else: elseBlk, Span: p.span(start)}
}

// parseMatchBody parses the "When <pattern>, <tail>" arms of a Match
// (spec.md §4.E "Match").
func (p *Parser) parseMatchBody(start token.Position, scrutinee ast.Expression) *ast.Match {
	p.expect(token.INDENT)
	m := &ast.Match{Expr: scrutinee}
	p.skipNewlines()
	for p.atKeyword("When") {
		m.Cases = append(m.Cases, p.parseMatchCase())
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	m.Span = p.span(start)
	return m
}

func (p *Parser) parseMatchCase() ast.MatchCase {
	start := p.cur().Start
	p.advance() // "When"
	pat := p.parsePattern()
	p.expect(token.COMMA)

	var body *ast.Block
	if p.at(token.COLON) {
		p.advance()
		body = p.parseBlock()
	} else {
		stmt, ok := p.parseStatement()
		body = &ast.Block{Span: p.span(start)}
		if ok {
			body.Statements = append(body.Statements, stmt)
		}
	}
	return ast.MatchCase{Pattern: pat, Body: body, Span: p.span(start)}
}

func (p *Parser) parseStart() *ast.Start {
	start := p.cur().Start
	p.advance()
	name := p.advance().Value
	p.expectKeyword("be")
	expr := p.parseExpression()
	p.expect(token.DOT)
	return &ast.Start{Name: name, Expr: expr, Span: p.span(start)}
}

// parseWait parses "A, B and C" / "A and B" / a single name, after "Wait".
func (p *Parser) parseWait() *ast.Wait {
	start := p.cur().Start
	p.advance()
	var names []string
	names = append(names, p.advance().Value)
	for p.at(token.COMMA) || p.atKeyword("and") {
		p.advance()
		names = append(names, p.advance().Value)
	}
	p.expect(token.DOT)
	return &ast.Wait{Names: names, Span: p.span(start)}
}

// parseWithin parses "Within scope { ... }", lowered to Core IR Scope.
func (p *Parser) parseWithin() *ast.Within {
	start := p.cur().Start
	p.advance()
	p.expectKeyword("scope")
	p.expect(token.COLON)
	body := p.parseBlock()
	return &ast.Within{Body: body, Span: p.span(start)}
}

// parseCallStmt parses a bare call used for its side effect, terminated
// by '.'.
func (p *Parser) parseCallStmt() *ast.CallStmt {
	start := p.cur().Start
	expr := p.parseExpression()
	if !p.at(token.DOT) {
		p.fail(diagnostics.CodeExpectedPunct, fmt.Sprintf("expected '.' to end statement, found %q", p.cur().Value))
	}
	p.advance()
	return &ast.CallStmt{Expr: expr, Span: p.span(start)}
}
