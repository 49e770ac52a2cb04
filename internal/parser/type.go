package parser

import (
	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/inference"
	"github.com/aster-lang/aster-core/internal/token"
)

// parseType parses a Type expression (spec.md §4.E "Types").
func (p *Parser) parseType() ast.Type {
	start := p.cur().Start
	var base ast.Type

	switch {
	case p.at(token.AT):
		base = p.parsePiiType(start)
	case p.atKeyword("Option"):
		p.advance()
		p.expectKeyword("of")
		base = &ast.OptionType{Elem: p.parseType(), Span: p.span(start)}
	case p.atKeyword("Result"):
		p.advance()
		p.expectKeyword("of")
		ok := p.parseType()
		p.expectKeyword("or")
		errT := p.parseType()
		base = &ast.ResultType{Ok: ok, Err: errT, Span: p.span(start)}
	case p.atKeyword("List"):
		p.advance()
		p.expectKeyword("of")
		base = &ast.ListType{Elem: p.parseType(), Span: p.span(start)}
	case p.atKeyword("Map"):
		p.advance()
		key := p.parseType()
		p.expectKeyword("to")
		val := p.parseType()
		base = &ast.MapType{Key: key, Value: val, Span: p.span(start)}
	case p.atKeyword("function"):
		base = p.parseFuncType(start)
	default:
		name := p.expectTypeName().Value
		if p.atKeyword("of") {
			p.advance()
			var args []ast.Type
			args = append(args, p.parseType())
			for p.at(token.COMMA) || p.atKeyword("and") {
				p.advance()
				args = append(args, p.parseType())
			}
			base = &ast.TypeApp{Base: name, Args: args, Span: p.span(start)}
		} else {
			base = &ast.TypeName{Name: name, Span: p.span(start)}
		}
	}

	for p.at(token.QUESTION) {
		p.advance()
		base = &ast.Maybe{Elem: base, Span: p.span(start)}
	}

	return base
}

// parsePiiType parses "@pii(Level, category) T" (spec.md §4.E "PII
// annotation syntax").
func (p *Parser) parsePiiType(start token.Position) ast.Type {
	p.advance() // '@'
	p.expectKeyword("pii")
	p.expect(token.LPAREN)
	level := p.advance().Value
	p.expect(token.COMMA)
	category := p.advance().Value
	p.expect(token.RPAREN)
	base := p.parseType()
	return &ast.PiiType{Base: base, Sensitivity: ast.PiiSensitivity(level), Category: category, Span: p.span(start)}
}

// parseFuncType parses a lambda-literal type: "function with P1: T1 and
// P2: T2, produce T".
func (p *Parser) parseFuncType(start token.Position) ast.Type {
	p.advance() // "function"
	var params []ast.Type
	if p.atKeyword("with") {
		p.advance()
		params = append(params, p.parseLambdaParamType())
		for p.atKeyword("and") || p.at(token.COMMA) {
			p.advance()
			if p.atKeyword("produce") {
				break
			}
			params = append(params, p.parseLambdaParamType())
		}
	}
	p.expectKeyword("produce")
	ret := p.parseType()
	return &ast.FuncType{Params: params, Ret: ret, Span: p.span(start)}
}

func (p *Parser) parseLambdaParamType() ast.Type {
	p.advance() // param name
	p.expect(token.COLON)
	return p.parseType()
}

// inferFieldType wraps the internal/inference heuristic into an ast.Type
// for a field/param whose source omitted an explicit type annotation.
func (p *Parser) inferFieldType(name string, constraints []ast.Constraint, start token.Position) ast.Type {
	prim := inference.Infer(name, constraints, nil)
	return &ast.TypeName{Name: inference.ToTypeName(prim), Span: p.span(start)}
}

// resolveTypeVars rewrites every TypeName in t matching a declared type
// parameter (or, absent an explicit list, a best-effort single-letter
// heuristic) into a TypeVar (spec.md §4.E "Generic types").
func resolveTypeVars(t ast.Type, declared map[string]bool) ast.Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *ast.TypeName:
		if declared[v.Name] || (len(declared) == 0 && inference.LooksLikeTypeParam(v.Name, nil)) {
			return &ast.TypeVar{Name: v.Name, Span: v.Span}
		}
		return v
	case *ast.TypeApp:
		args := make([]ast.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = resolveTypeVars(a, declared)
		}
		return &ast.TypeApp{Base: v.Base, Args: args, Span: v.Span}
	case *ast.Maybe:
		return &ast.Maybe{Elem: resolveTypeVars(v.Elem, declared), Span: v.Span}
	case *ast.OptionType:
		return &ast.OptionType{Elem: resolveTypeVars(v.Elem, declared), Span: v.Span}
	case *ast.ResultType:
		return &ast.ResultType{Ok: resolveTypeVars(v.Ok, declared), Err: resolveTypeVars(v.Err, declared), Span: v.Span}
	case *ast.ListType:
		return &ast.ListType{Elem: resolveTypeVars(v.Elem, declared), Span: v.Span}
	case *ast.MapType:
		return &ast.MapType{Key: resolveTypeVars(v.Key, declared), Value: resolveTypeVars(v.Value, declared), Span: v.Span}
	case *ast.FuncType:
		params := make([]ast.Type, len(v.Params))
		for i, a := range v.Params {
			params[i] = resolveTypeVars(a, declared)
		}
		return &ast.FuncType{Params: params, Ret: resolveTypeVars(v.Ret, declared), Span: v.Span}
	case *ast.PiiType:
		return &ast.PiiType{Base: resolveTypeVars(v.Base, declared), Sensitivity: v.Sensitivity, Category: v.Category, Span: v.Span}
	default:
		return t
	}
}
