package coreir

import "github.com/aster-lang/aster-core/internal/span"

// Expr is the sum type of Core IR expressions. Float and Double surface
// literals unify into one Double variant per the Open Question resolution
// recorded in DESIGN.md (spec.md §9).
type Expr interface {
	coreExprNode()
	GetSpan() span.Span
}

type Name struct {
	Value string
	Span  span.Span
}

func (*Name) coreExprNode()         {}
func (e *Name) GetSpan() span.Span { return e.Span }

type BoolLit struct {
	Value bool
	Span  span.Span
}

func (*BoolLit) coreExprNode()         {}
func (e *BoolLit) GetSpan() span.Span { return e.Span }

type NullLit struct{ Span span.Span }

func (*NullLit) coreExprNode()         {}
func (e *NullLit) GetSpan() span.Span { return e.Span }

type IntLit struct {
	Value string
	Span  span.Span
}

func (*IntLit) coreExprNode()         {}
func (e *IntLit) GetSpan() span.Span { return e.Span }

type LongLit struct {
	Value string
	Span  span.Span
}

func (*LongLit) coreExprNode()         {}
func (e *LongLit) GetSpan() span.Span { return e.Span }

// DoubleLit is the one Core IR variant both FloatLit and DoubleLit AST
// nodes lower to (spec.md §9 Open Question).
type DoubleLit struct {
	Value float64
	Span  span.Span
}

func (*DoubleLit) coreExprNode()         {}
func (e *DoubleLit) GetSpan() span.Span { return e.Span }

type StringLit struct {
	Value string
	Span  span.Span
}

func (*StringLit) coreExprNode()         {}
func (e *StringLit) GetSpan() span.Span { return e.Span }

type NoneLit struct{ Span span.Span }

func (*NoneLit) coreExprNode()         {}
func (e *NoneLit) GetSpan() span.Span { return e.Span }

type SomeExpr struct {
	Expr Expr
	Span span.Span
}

func (*SomeExpr) coreExprNode()         {}
func (e *SomeExpr) GetSpan() span.Span { return e.Span }

type OkExpr struct {
	Expr Expr
	Span span.Span
}

func (*OkExpr) coreExprNode()         {}
func (e *OkExpr) GetSpan() span.Span { return e.Span }

type ErrExpr struct {
	Expr Expr
	Span span.Span
}

func (*ErrExpr) coreExprNode()         {}
func (e *ErrExpr) GetSpan() span.Span { return e.Span }

type ConstructField struct {
	Name  string
	Value Expr
}

type Construct struct {
	TypeName string
	Fields   []ConstructField
	Span     span.Span
}

func (*Construct) coreExprNode()         {}
func (e *Construct) GetSpan() span.Span { return e.Span }

type Call struct {
	Target Expr
	Args   []Expr
	Span   span.Span
}

func (*Call) coreExprNode()         {}
func (e *Call) GetSpan() span.Span { return e.Span }

// Lambda carries its resolved captures: identifiers free in the body, not
// bound as its own parameters and not module-level names (spec.md §3, §4.G).
type Lambda struct {
	Params   []Field
	RetType  Type
	Body     *Scope
	Captures []string
	Span     span.Span
}

func (*Lambda) coreExprNode()         {}
func (e *Lambda) GetSpan() span.Span { return e.Span }

type Await struct {
	Expr Expr
	Span span.Span
}

func (*Await) coreExprNode()         {}
func (e *Await) GetSpan() span.Span { return e.Span }
