package parser

import (
	"fmt"

	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/lexer"
	"github.com/aster-lang/aster-core/internal/token"
)

// comparisonOps maps a comparison token to the builtin function name its
// Call lowers to.
var comparisonOps = map[token.Kind]string{
	token.LT:  "lessThan",
	token.LTE: "lessThanOrEqual",
	token.GT:  "greaterThan",
	token.GTE: "greaterThanOrEqual",
}

// parseExpression parses a primary expression followed by an optional
// trailing comparison operator.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parsePostfix(p.parsePrimary())
	if name, ok := comparisonOps[p.cur().Kind]; ok {
		start := left.GetSpan().Start
		p.advance()
		right := p.parsePostfix(p.parsePrimary())
		return &ast.Call{
			Target: &ast.Name{Value: name, Span: left.GetSpan()},
			Args:   []ast.Expression{left, right},
			Span:   p.span(start),
		}
	}
	return left
}

// parsePostfix consumes trailing "(args)" call applications on expr, left
// to right, so "f(a)(b)" and method-style chains both parse.
func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for p.at(token.LPAREN) {
		start := expr.GetSpan().Start
		p.advance()
		var args []ast.Expression
		if !p.at(token.RPAREN) {
			args = append(args, p.parseExpression())
			for p.at(token.COMMA) {
				p.advance()
				args = append(args, p.parseExpression())
			}
		}
		p.expect(token.RPAREN)
		expr = &ast.Call{Target: expr, Args: args, Span: p.span(start)}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	start := p.cur().Start
	tok := p.cur()

	switch tok.Kind {
	case token.INT:
		p.advance()
		// Unlike LONG (arbitrary-precision, string-preserved per spec.md §3),
		// INT is a machine int; a literal that doesn't fit is a parse error
		// rather than silently truncating.
		if _, err := lexer.ParseIntLiteral(tok.Value); err != nil {
			p.addDiag(diagnostics.CodeIntOverflow,
				fmt.Sprintf("integer literal %q overflows Int; add an L suffix for Long", tok.Value), p.span(start))
		}
		return &ast.IntLit{Value: tok.Value, Span: p.span(start)}
	case token.LONG:
		p.advance()
		return &ast.LongLit{Value: tok.Value, Span: p.span(start)}
	case token.DOUBLE:
		p.advance()
		return &ast.DoubleLit{Value: tok.Value, Span: p.span(start)}
	case token.STRING:
		p.advance()
		return &ast.StringLit{Value: tok.Value, Span: p.span(start)}
	case token.LPAREN:
		return p.parseParenOrLambda(start)
	}

	switch {
	case p.atKeyword("true"):
		p.advance()
		return &ast.BoolLit{Value: true, Span: p.span(start)}
	case p.atKeyword("false"):
		p.advance()
		return &ast.BoolLit{Value: false, Span: p.span(start)}
	case p.atKeyword("null"):
		p.advance()
		return &ast.NullLit{Span: p.span(start)}
	case p.atKeyword("None"):
		p.advance()
		return &ast.NoneLit{Span: p.span(start)}
	case p.atKeyword("Some"):
		p.advance()
		p.expect(token.LPAREN)
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.SomeExpr{Expr: inner, Span: p.span(start)}
	case p.atKeyword("Ok"):
		p.advance()
		p.expect(token.LPAREN)
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.OkExpr{Expr: inner, Span: p.span(start)}
	case p.atKeyword("Err"):
		p.advance()
		p.expect(token.LPAREN)
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.ErrExpr{Expr: inner, Span: p.span(start)}
	case p.atKeyword("await"):
		p.advance()
		inner := p.parseExpression()
		return &ast.Await{Expr: inner, Span: p.span(start)}
	case p.atKeyword("a") && p.atAnyKeywordAt(1, "function"):
		p.advance() // article
		return p.parseLambdaKeywordForm(start)
	case p.atKeyword("function"):
		return p.parseLambdaKeywordForm(start)
	case isTypeNameToken(tok) && p.atAnyKeywordAt(1, "with"):
		return p.parseConstruct(start)
	case tok.Kind == token.IDENT || tok.Kind == token.TYPE_IDENT:
		p.advance()
		name := tok.Value
		for p.at(token.DOT) && (p.peek(1).Kind == token.IDENT || p.peek(1).Kind == token.TYPE_IDENT) {
			p.advance()
			name += "." + p.advance().Value
		}
		return &ast.Name{Value: name, Span: p.span(start)}
	}

	p.fail(diagnostics.CodeUnexpectedKeyword, fmt.Sprintf("unexpected token %q in expression", tok.Value))
	return nil
}

func (p *Parser) atAnyKeywordAt(ahead int, words ...string) bool {
	t := p.peek(ahead)
	for _, w := range words {
		if (t.Kind == token.IDENT || t.Kind == token.TYPE_IDENT) && eqFold(t.Value, w) {
			return true
		}
	}
	return false
}

// parseParenOrLambda disambiguates "(expr)" from the arrow-form lambda
// "(p as T) => expr" (spec.md §4.E "Lambda forms").
func (p *Parser) parseParenOrLambda(start token.Position) ast.Expression {
	save := p.pos
	p.advance() // '('

	// Try arrow-lambda form: zero or more "name as Type" separated by ','.
	var params []ast.Field
	ok := true
	if !p.at(token.RPAREN) {
		for {
			if p.cur().Kind != token.IDENT {
				ok = false
				break
			}
			pstart := p.cur().Start
			pname := p.advance().Value
			if !p.atKeyword("as") {
				ok = false
				break
			}
			p.advance()
			ptyp := p.parseType()
			params = append(params, ast.Field{Name: pname, Type: ptyp, Span: p.span(pstart)})
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if ok && p.at(token.RPAREN) {
		p.advance()
		if p.at(token.ARROW) {
			p.advance()
			body := p.parseExpression()
			blk := &ast.Block{Statements: []ast.Statement{&ast.Return{Expr: body, Span: body.GetSpan()}}, Span: body.GetSpan()}
			return &ast.Lambda{Params: params, Body: blk, Span: p.span(start)}
		}
	}

	// Not a lambda: rewind and parse a parenthesized expression.
	p.pos = save
	p.advance()
	expr := p.parseExpression()
	p.expect(token.RPAREN)
	return expr
}

// parseLambdaKeywordForm parses "function with P1: T1 and P2: T2, produce T: Block".
func (p *Parser) parseLambdaKeywordForm(start token.Position) ast.Expression {
	p.advance() // "function"
	var params []ast.Field
	if p.atKeyword("with") {
		p.advance()
		params = append(params, p.parseLambdaParam())
		for p.atKeyword("and") || p.at(token.COMMA) {
			p.advance()
			if p.atKeyword("produce") {
				break
			}
			params = append(params, p.parseLambdaParam())
		}
	}
	if p.at(token.COMMA) {
		p.advance()
	}
	var retType ast.Type
	if p.atKeyword("produce") {
		p.advance()
		retType = p.parseType()
	}
	p.expect(token.COLON)
	body := p.parseBlock()
	return &ast.Lambda{Params: params, RetType: retType, Body: body, Span: p.span(start)}
}

func (p *Parser) parseLambdaParam() ast.Field {
	start := p.cur().Start
	name := p.advance().Value
	p.expect(token.COLON)
	typ := p.parseType()
	return ast.Field{Name: name, Type: typ, Span: p.span(start)}
}

// parseConstruct parses "TypeName with a: 1, b: 2" value construction.
func (p *Parser) parseConstruct(start token.Position) ast.Expression {
	name := p.expectTypeName().Value
	p.expectKeyword("with")
	var fields []ast.ConstructField
	fields = append(fields, p.parseConstructField())
	for p.at(token.COMMA) {
		p.advance()
		fields = append(fields, p.parseConstructField())
	}
	return &ast.Construct{TypeName: name, Fields: fields, Span: p.span(start)}
}

func (p *Parser) parseConstructField() ast.ConstructField {
	name := p.advance().Value
	p.expect(token.COLON)
	value := p.parseExpression()
	return ast.ConstructField{Name: name, Value: value}
}
