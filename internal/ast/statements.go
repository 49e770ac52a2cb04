package ast

import "github.com/aster-lang/aster-core/internal/span"

// Statement is the sum type of statements inside a Block (spec.md §3).
type Statement interface {
	stmtNode()
	GetSpan() span.Span
}

// Block is an INDENT...DEDENT delimited statement sequence (spec.md §4.E).
type Block struct {
	Statements []Statement
	Span       span.Span
}

func (*Block) stmtNode()            {}
func (b *Block) GetSpan() span.Span { return b.Span }

// Let binds a name to an expression's value.
type Let struct {
	Name string
	Expr Expression
	Span span.Span
}

func (*Let) stmtNode()            {}
func (s *Let) GetSpan() span.Span { return s.Span }

// Set reassigns an already-bound name.
type Set struct {
	Name string
	Expr Expression
	Span span.Span
}

func (*Set) stmtNode()            {}
func (s *Set) GetSpan() span.Span { return s.Span }

// Return produces a function's result.
type Return struct {
	Expr Expression
	Span span.Span
}

func (*Return) stmtNode()            {}
func (s *Return) GetSpan() span.Span { return s.Span }

// If is a conditional, with an optional Otherwise block.
type If struct {
	Cond Expression
	Then *Block
	Else *Block // nil when no Otherwise clause
	Span span.Span
}

func (*If) stmtNode()            {}
func (s *If) GetSpan() span.Span { return s.Span }

// MatchCase is one "When <pattern>, <tail>" arm.
type MatchCase struct {
	Pattern Pattern
	Body    *Block
	Span    span.Span
}

// Match dispatches over Expr via a list of pattern arms.
type Match struct {
	Expr  Expression
	Cases []MatchCase
	Span  span.Span
}

func (*Match) stmtNode()            {}
func (s *Match) GetSpan() span.Span { return s.Span }

// Start launches a concurrent task bound to Name (spec.md §3).
type Start struct {
	Name string
	Expr Expression
	Span span.Span
}

func (*Start) stmtNode()            {}
func (s *Start) GetSpan() span.Span { return s.Span }

// Wait blocks on a list of previously Start-ed names.
type Wait struct {
	Names []string
	Span  span.Span
}

func (*Wait) stmtNode()            {}
func (s *Wait) GetSpan() span.Span { return s.Span }

// Within is "Within scope { ... }", lowered to Core IR Scope (spec.md §3
// lowering transformations). Not separately enumerated in spec.md §3's
// Statement list but required by its Core IR transformation note.
type Within struct {
	Body *Block
	Span span.Span
}

func (*Within) stmtNode()            {}
func (s *Within) GetSpan() span.Span { return s.Span }

// CallStmt is a standalone call used for its side effect.
type CallStmt struct {
	Expr Expression
	Span span.Span
}

func (*CallStmt) stmtNode()            {}
func (s *CallStmt) GetSpan() span.Span { return s.Span }
