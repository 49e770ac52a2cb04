package coreir

import "github.com/aster-lang/aster-core/internal/span"

// Module is the Lowerer's output (spec.md §3 "Core IR").
type Module struct {
	Name  string
	Decls []Decl
	Span  span.Span
}

// Origin identifies where a Core IR node came from, for diagnostics
// (spec.md §3 "Position / Span / Origin").
type Origin struct {
	File string
	Span span.Span
}

// Decl is the sum type of top-level Core IR declarations.
type Decl interface {
	coreDeclNode()
	GetOrigin() Origin
}

type Import struct {
	Name   string
	AsName string
	Origin Origin
}

func (*Import) coreDeclNode()          {}
func (d *Import) GetOrigin() Origin { return d.Origin }

type Field struct {
	Name        string
	Type        Type
	Constraints []Constraint
	Span        span.Span
}

type Data struct {
	Name   string
	Fields []Field
	Origin Origin
}

func (*Data) coreDeclNode()          {}
func (d *Data) GetOrigin() Origin { return d.Origin }

type Enum struct {
	Name     string
	Variants []string
	Origin   Origin
}

func (*Enum) coreDeclNode()          {}
func (d *Enum) GetOrigin() Origin { return d.Origin }

// Func is a lowered Rule/To declaration with effect caps, PII aggregation
// resolved (spec.md §3 "Core IR" invariants, §4.G).
type Func struct {
	Name               string
	TypeParams         []string
	Params             []Field
	RetType            Type
	Effects            []string
	EffectCaps         []string // canonical order: HTTP,SQL,TIME,FILES,SECRETS,AI_MODEL,CPU
	EffectCapsExplicit bool
	PiiLevel           PiiSensitivity // "" when no PII reachable
	PiiCategories      []string       // ordered union, insertion order
	Body               *Scope
	Origin             Origin
}

func (*Func) coreDeclNode()          {}
func (d *Func) GetOrigin() Origin { return d.Origin }

// Constraint mirrors ast.Constraint (spec.md §3 "Constraint"); carried
// through unchanged by the Lowerer.
type Constraint interface{ coreConstraintNode() }

type Required struct{}

func (Required) coreConstraintNode() {}

type Range struct {
	Min, Max       string
	HasMin, HasMax bool
}

func (Range) coreConstraintNode() {}

type PatternConstraint struct{ Regexp string }

func (PatternConstraint) coreConstraintNode() {}
