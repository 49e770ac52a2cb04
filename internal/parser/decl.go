package parser

import (
	"fmt"
	"strings"

	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/span"
	"github.com/aster-lang/aster-core/internal/token"
)

// parseImport is "Use <QualifiedName> (as <Ident>)? .".
func (p *Parser) parseImport() *ast.Import {
	start := p.cur().Start
	p.expectKeyword("Use")
	name := p.parseQualifiedName()
	var as string
	if p.atKeyword("as") {
		p.advance()
		as = p.advance().Value
	}
	p.expect(token.DOT)
	return &ast.Import{Name: name, AsName: as, Span: p.span(start)}
}

// parseDataOrEnum dispatches "Define TypeIdent ..." between Data and Enum
// (spec.md §4.E grammar: Data vs Enum share the "Define" opener).
func (p *Parser) parseDataOrEnum() ast.Declaration {
	start := p.cur().Start
	p.expectKeyword("Define")
	name := p.expectTypeName().Value

	if p.atKeyword("as") {
		p.advance()
		p.expectKeyword("one")
		p.expectKeyword("of")
		variants := p.parseVariantList()
		p.expect(token.DOT)
		return &ast.Enum{Name: name, Variants: variants, Span: p.span(start)}
	}

	var fields []ast.Field
	if p.atAnyKeyword("with", "has") {
		p.advance()
		fields = p.parseFieldList()
	}
	p.expect(token.DOT)
	return &ast.Data{Name: name, Fields: fields, Span: p.span(start)}
}

func (p *Parser) parseVariantList() []string {
	var variants []string
	variants = append(variants, p.expectTypeName().Value)
	for p.at(token.COMMA) || p.atKeyword("and") {
		p.advance()
		variants = append(variants, p.expectTypeName().Value)
	}
	return variants
}

func (p *Parser) parseFieldList() []ast.Field {
	var fields []ast.Field
	fields = append(fields, p.parseField())
	for p.at(token.COMMA) {
		p.advance()
		fields = append(fields, p.parseField())
	}
	return fields
}

// parseField parses "name as Type constraint*" (spec.md §4.E "Param") or
// "name: Type" Data-field shorthand; infers the type when omitted (§4.F).
func (p *Parser) parseField() ast.Field {
	start := p.cur().Start
	name := p.advance().Value

	var typ ast.Type
	hasExplicitType := false
	if p.atKeyword("as") || p.at(token.COLON) {
		p.advance()
		typ = p.parseType()
		hasExplicitType = true
	}

	var constraints []ast.Constraint
	for {
		switch {
		case p.atKeyword("required"):
			p.advance()
			constraints = append(constraints, ast.Required{})
		case p.atKeyword("between"):
			p.advance()
			constraints = append(constraints, p.parseRangeConstraint())
		case p.atKeyword("matching"):
			p.advance()
			re := p.expect(token.STRING).Value
			constraints = append(constraints, ast.PatternConstraint{Regexp: re})
		default:
			goto done
		}
	}
done:

	if !hasExplicitType {
		typ = p.inferFieldType(name, constraints, start)
	}

	return ast.Field{Name: name, Type: typ, Constraints: constraints, Span: p.span(start)}
}

// parseRangeConstraint parses "between N and M" with optional endpoints.
func (p *Parser) parseRangeConstraint() ast.Range {
	var r ast.Range
	if !p.atKeyword("and") {
		r.Min = p.advance().Value
		r.HasMin = true
	}
	if p.atKeyword("and") {
		p.advance()
		r.Max = p.advance().Value
		r.HasMax = true
	}
	return r
}

// parseFunc parses a Rule/To declaration (spec.md §4.E "Func").
func (p *Parser) parseFunc() *ast.Func {
	start := p.cur().Start
	p.advance() // "Rule" | "To"
	name := p.advance().Value

	fn := &ast.Func{Name: name}

	if p.atKeyword("of") {
		p.advance()
		fn.TypeParams = append(fn.TypeParams, p.expectTypeName().Value)
		for p.at(token.COMMA) || p.atKeyword("and") {
			p.advance()
			fn.TypeParams = append(fn.TypeParams, p.expectTypeName().Value)
		}
	}

	if p.atKeyword("given") {
		p.advance()
		fn.Params = append(fn.Params, p.parseField())
		for p.at(token.COMMA) {
			p.advance()
			// "," before "produce" ends the param list rather than
			// introducing a new param.
			if p.atKeyword("produce") {
				break
			}
			fn.Params = append(fn.Params, p.parseField())
		}
	}

	if p.at(token.COMMA) {
		p.advance()
	}
	p.expectKeyword("produce")
	fn.RetType = p.parseType()

	if p.atKeyword("It") {
		p.parseEffectClause(fn)
	}

	switch {
	case p.at(token.COLON):
		p.advance()
		prevFunc := p.currentFunc
		p.currentFunc = fn
		fn.Body = p.parseBlock()
		p.currentFunc = prevFunc
	case p.at(token.DOT):
		p.advance()
	default:
		p.fail(diagnostics.CodeExpectedPunct, fmt.Sprintf("expected '.' or ':' to end function signature, found %q", p.cur().Value))
	}

	declared := make(map[string]bool, len(fn.TypeParams))
	for _, tp := range fn.TypeParams {
		declared[tp] = true
	}
	for i := range fn.Params {
		fn.Params[i].Type = resolveTypeVars(fn.Params[i].Type, declared)
	}
	fn.RetType = resolveTypeVars(fn.RetType, declared)

	fn.Span = p.span(start)
	return fn
}

// parseEffectClause parses "It performs <EffectList> ([cap,...])?" and
// merges it into fn (spec.md §4.E "EffClause").
func (p *Parser) parseEffectClause(fn *ast.Func) {
	p.expectKeyword("It")
	p.expectKeyword("performs")

	for !p.at(token.LBRACKET) && !p.at(token.DOT) && !p.at(token.COLON) {
		if eqFold(p.cur().Value, "and") {
			p.advance()
			continue
		}
		// A PascalCase word inline (token.TYPE_IDENT, e.g. "Http") names a
		// capability, not an effect identifier like "io"/"cpu" (spec.md §8
		// scenario 3 case 2): route it into EffectCaps instead of Effects.
		if p.at(token.TYPE_IDENT) {
			fn.EffectCaps = append(fn.EffectCaps, p.parseCapability())
			fn.EffectCapsExplicit = true
			continue
		}
		fn.Effects = append(fn.Effects, strings.ToLower(p.advance().Value))
	}

	if p.at(token.LBRACKET) {
		p.advance()
		if !p.at(token.RBRACKET) {
			fn.EffectCaps = append(fn.EffectCaps, p.parseCapability())
			fn.EffectCapsExplicit = true
			for p.at(token.COMMA) {
				p.advance()
				fn.EffectCaps = append(fn.EffectCaps, p.parseCapability())
			}
		}
		p.expect(token.RBRACKET)
	}
}

var knownCapabilities = map[string]bool{
	"HTTP": true, "SQL": true, "TIME": true, "FILES": true,
	"SECRETS": true, "AI_MODEL": true, "CPU": true,
}

func (p *Parser) parseCapability() string {
	tok := p.advance()
	name := strings.ToUpper(tok.Value)
	if !knownCapabilities[name] {
		p.addDiag(diagnostics.CodeUnknownCapability, fmt.Sprintf("unknown capability %q", tok.Value), span.FromToken(tok))
	}
	return name
}
