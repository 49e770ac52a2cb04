package ast

import "github.com/aster-lang/aster-core/internal/span"

// Type is the sum type of surface type expressions (spec.md §3 "Type").
type Type interface {
	typeNode()
	GetSpan() span.Span
}

// TypeName is a bare reference to a declared type, builtin or type variable
// candidate ("Text", "Int", "User").
type TypeName struct {
	Name string
	Span span.Span
}

func (*TypeName) typeNode()            {}
func (t *TypeName) GetSpan() span.Span { return t.Span }

// TypeVar is a TypeName resolved (by the parser or the lowerer) to a
// function type parameter in scope (spec.md §4.E "Generic types").
type TypeVar struct {
	Name string
	Span span.Span
}

func (*TypeVar) typeNode()            {}
func (t *TypeVar) GetSpan() span.Span { return t.Span }

// TypeApp is "Base of A, B, ..." / "Base of A and B".
type TypeApp struct {
	Base string
	Args []Type
	Span span.Span
}

func (*TypeApp) typeNode()            {}
func (t *TypeApp) GetSpan() span.Span { return t.Span }

// Maybe is the "T?" suffix form.
type Maybe struct {
	Elem Type
	Span span.Span
}

func (*Maybe) typeNode()            {}
func (t *Maybe) GetSpan() span.Span { return t.Span }

// OptionType is "Option of T".
type OptionType struct {
	Elem Type
	Span span.Span
}

func (*OptionType) typeNode()            {}
func (t *OptionType) GetSpan() span.Span { return t.Span }

// ResultType is "Result of Ok or Err".
type ResultType struct {
	Ok   Type
	Err  Type
	Span span.Span
}

func (*ResultType) typeNode()            {}
func (t *ResultType) GetSpan() span.Span { return t.Span }

// ListType is "List of T".
type ListType struct {
	Elem Type
	Span span.Span
}

func (*ListType) typeNode()            {}
func (t *ListType) GetSpan() span.Span { return t.Span }

// MapType is "Map K to V".
type MapType struct {
	Key   Type
	Value Type
	Span  span.Span
}

func (*MapType) typeNode()            {}
func (t *MapType) GetSpan() span.Span { return t.Span }

// FuncType is a lambda/function-value type ("function with ... produce ...").
type FuncType struct {
	Params []Type
	Ret    Type
	Span   span.Span
}

func (*FuncType) typeNode()            {}
func (t *FuncType) GetSpan() span.Span { return t.Span }

// PiiSensitivity is one of the three PII tiers (spec.md §3 "TypePii").
type PiiSensitivity string

const (
	PiiL1 PiiSensitivity = "L1"
	PiiL2 PiiSensitivity = "L2"
	PiiL3 PiiSensitivity = "L3"
)

// PiiType is "@pii(Level, category) T".
type PiiType struct {
	Base        Type
	Sensitivity PiiSensitivity
	Category    string
	Span        span.Span
}

func (*PiiType) typeNode()            {}
func (t *PiiType) GetSpan() span.Span { return t.Span }
