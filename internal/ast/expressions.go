package ast

import "github.com/aster-lang/aster-core/internal/span"

// Expression is the sum type of value-producing expressions (spec.md §3).
type Expression interface {
	exprNode()
	GetSpan() span.Span
}

// Name is a bare identifier reference.
type Name struct {
	Value string
	Span  span.Span
}

func (*Name) exprNode()            {}
func (e *Name) GetSpan() span.Span { return e.Span }

// BoolLit is "true"/"false".
type BoolLit struct {
	Value bool
	Span  span.Span
}

func (*BoolLit) exprNode()            {}
func (e *BoolLit) GetSpan() span.Span { return e.Span }

// NullLit is the "null" literal.
type NullLit struct{ Span span.Span }

func (*NullLit) exprNode()            {}
func (e *NullLit) GetSpan() span.Span { return e.Span }

// IntLit is an INT-token literal.
type IntLit struct {
	Value string
	Span  span.Span
}

func (*IntLit) exprNode()            {}
func (e *IntLit) GetSpan() span.Span { return e.Span }

// LongLit is a LONG-token literal; Value is the decimal string without the
// l/L suffix, preserved for arbitrary precision (spec.md §3 Token).
type LongLit struct {
	Value string
	Span  span.Span
}

func (*LongLit) exprNode()            {}
func (e *LongLit) GetSpan() span.Span { return e.Span }

// FloatLit is a surface "float" literal. The lexer never actually
// distinguishes Float from Double (spec.md §9 Open Question): every decimal
// literal lexes as DOUBLE, so the parser never constructs a FloatLit. The
// Lowerer folds both into one Core IR Double variant.
type FloatLit struct {
	Value string
	Span  span.Span
}

func (*FloatLit) exprNode()            {}
func (e *FloatLit) GetSpan() span.Span { return e.Span }

// DoubleLit is a surface "double" literal; see FloatLit.
type DoubleLit struct {
	Value string
	Span  span.Span
}

func (*DoubleLit) exprNode()            {}
func (e *DoubleLit) GetSpan() span.Span { return e.Span }

// StringLit is a STRING-token literal, already escape-decoded by the lexer.
type StringLit struct {
	Value string
	Span  span.Span
}

func (*StringLit) exprNode()            {}
func (e *StringLit) GetSpan() span.Span { return e.Span }

// NoneLit is the "None" Option constructor with no payload.
type NoneLit struct{ Span span.Span }

func (*NoneLit) exprNode()            {}
func (e *NoneLit) GetSpan() span.Span { return e.Span }

// SomeExpr wraps a value in "Some(...)".
type SomeExpr struct {
	Expr Expression
	Span span.Span
}

func (*SomeExpr) exprNode()            {}
func (e *SomeExpr) GetSpan() span.Span { return e.Span }

// OkExpr wraps a value in "Ok(...)".
type OkExpr struct {
	Expr Expression
	Span span.Span
}

func (*OkExpr) exprNode()            {}
func (e *OkExpr) GetSpan() span.Span { return e.Span }

// ErrExpr wraps a value in "Err(...)".
type ErrExpr struct {
	Expr Expression
	Span span.Span
}

func (*ErrExpr) exprNode()            {}
func (e *ErrExpr) GetSpan() span.Span { return e.Span }

// ConstructField is one "name: value" pair inside a Construct expression.
type ConstructField struct {
	Name  string
	Value Expression
}

// Construct builds a value of a declared Data type: "TypeName with a: 1, b: 2".
type Construct struct {
	TypeName string
	Fields   []ConstructField
	Span     span.Span
}

func (*Construct) exprNode()            {}
func (e *Construct) GetSpan() span.Span { return e.Span }

// Call applies Target to Args.
type Call struct {
	Target Expression
	Args   []Expression
	Span   span.Span
}

func (*Call) exprNode()            {}
func (e *Call) GetSpan() span.Span { return e.Span }

// Lambda is an inline function value (spec.md §4.E "Lambda forms").
type Lambda struct {
	Params  []Field
	RetType Type // nil when the lambda's arrow form omits it
	Body    *Block
	Span    span.Span
}

func (*Lambda) exprNode()            {}
func (e *Lambda) GetSpan() span.Span { return e.Span }

// Await suspends on an asynchronous value.
type Await struct {
	Expr Expression
	Span span.Span
}

func (*Await) exprNode()            {}
func (e *Await) GetSpan() span.Span { return e.Span }
