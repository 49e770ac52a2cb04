package ast

import "github.com/aster-lang/aster-core/internal/span"

// Pattern is the sum type of Match-arm patterns (spec.md §3).
type Pattern interface {
	patNode()
	GetSpan() span.Span
}

// PatternNull matches the null literal.
type PatternNull struct{ Span span.Span }

func (*PatternNull) patNode()            {}
func (p *PatternNull) GetSpan() span.Span { return p.Span }

// PatternInt matches an exact integer literal.
type PatternInt struct {
	Value string
	Span  span.Span
}

func (*PatternInt) patNode()            {}
func (p *PatternInt) GetSpan() span.Span { return p.Span }

// PatternName binds the scrutinee to Name unconditionally.
type PatternName struct {
	Name string
	Span span.Span
}

func (*PatternName) patNode()            {}
func (p *PatternName) GetSpan() span.Span { return p.Span }

// PatternCtor matches a constructor/enum variant, optionally destructuring
// its fields positionally (Args) or into named bindings (Names).
type PatternCtor struct {
	TypeName string
	Names    []string
	Args     []Pattern
	Span     span.Span
}

func (*PatternCtor) patNode()            {}
func (p *PatternCtor) GetSpan() span.Span { return p.Span }
