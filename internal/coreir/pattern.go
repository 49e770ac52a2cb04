package coreir

import "github.com/aster-lang/aster-core/internal/span"

// Pattern is the sum type of lowered Match-arm patterns (spec.md §3:
// "Patterns become PatNull | PatInt | PatName | PatCtor").
type Pattern interface {
	corePatNode()
	GetSpan() span.Span
}

type PatNull struct{ Span span.Span }

func (*PatNull) corePatNode()         {}
func (p *PatNull) GetSpan() span.Span { return p.Span }

type PatInt struct {
	Value string
	Span  span.Span
}

func (*PatInt) corePatNode()         {}
func (p *PatInt) GetSpan() span.Span { return p.Span }

type PatName struct {
	Name string
	Span span.Span
}

func (*PatName) corePatNode()         {}
func (p *PatName) GetSpan() span.Span { return p.Span }

type PatCtor struct {
	TypeName string
	Names    []string
	Args     []Pattern
	Span     span.Span
}

func (*PatCtor) corePatNode()         {}
func (p *PatCtor) GetSpan() span.Span { return p.Span }
