package coreir

import "github.com/aster-lang/aster-core/internal/span"

// Stmt is the sum type of Core IR statements. The AST's CallStmt becomes
// Let{"_", call} and Within becomes Scope at lowering time (spec.md §3
// "Core IR" transformations), so neither appears here.
type Stmt interface {
	coreStmtNode()
	GetSpan() span.Span
}

type Let struct {
	Name string
	Expr Expr
	Span span.Span
}

func (*Let) coreStmtNode()          {}
func (s *Let) GetSpan() span.Span { return s.Span }

type Set struct {
	Name string
	Expr Expr
	Span span.Span
}

func (*Set) coreStmtNode()          {}
func (s *Set) GetSpan() span.Span { return s.Span }

type Return struct {
	Expr Expr // nil for a bare "Return."
	Span span.Span
}

func (*Return) coreStmtNode()          {}
func (s *Return) GetSpan() span.Span { return s.Span }

type If struct {
	Cond Expr
	Then *Scope
	Else *Scope // nil when no Otherwise clause
	Span span.Span
}

func (*If) coreStmtNode()          {}
func (s *If) GetSpan() span.Span { return s.Span }

type MatchCase struct {
	Pattern Pattern
	Body    *Scope
	Span    span.Span
}

type Match struct {
	Expr  Expr
	Cases []MatchCase
	Span  span.Span
}

func (*Match) coreStmtNode()          {}
func (s *Match) GetSpan() span.Span { return s.Span }

// Scope is the lowered form of both an ast.Block and an ast.Within
// (spec.md §3: "`Within scope { ... }` becomes `Scope { statements[] }`").
type Scope struct {
	Statements []Stmt
	Span       span.Span
}

func (*Scope) coreStmtNode()          {}
func (s *Scope) GetSpan() span.Span { return s.Span }

type Start struct {
	Name string
	Expr Expr
	Span span.Span
}

func (*Start) coreStmtNode()          {}
func (s *Start) GetSpan() span.Span { return s.Span }

type Wait struct {
	Names []string
	Span  span.Span
}

func (*Wait) coreStmtNode()          {}
func (s *Wait) GetSpan() span.Span { return s.Span }
