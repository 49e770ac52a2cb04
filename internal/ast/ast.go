// Package ast defines the surface AST produced by the parser (spec.md §3,
// §4.E). Grounded on internal/ast/ast_core.go's node shape from the teacher
// (every node exposes its span for error reporting) generalized to Aster's
// own grammar: Module/Declaration/Field/Type/Statement/Expression/Pattern/
// Constraint in place of Funxy's expression-oriented functional-language
// AST. A plain type-switch over these sum-type interfaces stands in for the
// teacher's double-dispatch Visitor: Go's switch already gives exhaustive
// case-handling in one place, and the pipeline never needs multiple
// independent dispatch strategies over the same node set.
package ast

import "github.com/aster-lang/aster-core/internal/span"

// Module is the root of a parsed program (spec.md §3 "Module").
type Module struct {
	Name  string // dotted identifier path; "" when the source omits it
	Decls []Declaration
	Span  span.Span
}

// Declaration is the sum type of top-level declarations.
type Declaration interface {
	declNode()
	GetSpan() span.Span
}

// Import is "Use <QualifiedName> (as <Ident>)? ."
type Import struct {
	Name   string
	AsName string // "" when absent
	Span   span.Span
}

func (*Import) declNode()            {}
func (d *Import) GetSpan() span.Span { return d.Span }

// Data is "Define <TypeIdent> (with|has <Field>,...)? ."
type Data struct {
	Name   string
	Fields []Field
	Span   span.Span
}

func (*Data) declNode()            {}
func (d *Data) GetSpan() span.Span { return d.Span }

// Enum is "Define <TypeIdent> as one of <variant>, ...".
type Enum struct {
	Name     string
	Variants []string
	Span     span.Span
}

func (*Enum) declNode()            {}
func (d *Enum) GetSpan() span.Span { return d.Span }

// Func is a Rule/To declaration.
type Func struct {
	Name               string
	TypeParams         []string
	Params             []Field
	RetType            Type
	Effects            []string // "io", "cpu" as written
	EffectCaps         []string // explicit "[cap, ...]" list, verbatim as written
	EffectCapsExplicit bool
	Body               *Block // nil for a declaration with no body (bodiless signature)
	Span               span.Span
}

func (*Func) declNode()            {}
func (d *Func) GetSpan() span.Span { return d.Span }

// Field is a Data field or Func parameter (spec.md §3 "Field/Parameter").
type Field struct {
	Name        string
	Type        Type
	Constraints []Constraint
	Span        span.Span
}

// Parameter is an alias for Field: spec.md §3 merges the two shapes.
type Parameter = Field
