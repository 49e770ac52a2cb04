// Package span carries position/range/origin information across every
// pipeline stage. Spans are copied by value, never aliased (spec.md §3
// Lifecycles).
package span

import "github.com/aster-lang/aster-core/internal/token"

// Span is a half-open [Start, End) range in the source.
type Span struct {
	Start token.Position
	End   token.Position
}

// FromToken returns the span covered by a single token.
func FromToken(t token.Token) Span {
	return Span{Start: t.Start, End: t.End}
}

// Cover returns the smallest span containing both a and b.
func Cover(a, b Span) Span {
	start := a.Start
	if b.Start.Line < start.Line || (b.Start.Line == start.Line && b.Start.Column < start.Column) {
		start = b.Start
	}
	end := a.End
	if b.End.Line > end.Line || (b.End.Line == end.Line && b.End.Column > end.Column) {
		end = b.End
	}
	return Span{Start: start, End: end}
}

// Origin identifies where a Core IR node came from, for diagnostics.
type Origin struct {
	File string
	Span Span
}
