package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster-core/internal/span"
	"github.com/aster-lang/aster-core/internal/token"
)

func at(line, col int) span.Span {
	return span.Span{Start: token.Position{Line: line, Column: col}, End: token.Position{Line: line, Column: col}}
}

func TestNewStampsUniqueDiagnosticID(t *testing.T) {
	a := New(Error, CodeIllegalChar, "bad", at(1, 1), "aster-lexer")
	b := New(Error, CodeIllegalChar, "bad", at(1, 1), "aster-lexer")
	require.NotEmpty(t, a.Data["diagnosticId"])
	assert.NotEqual(t, a.Data["diagnosticId"], b.Data["diagnosticId"])
}

func TestWithDataCopiesRatherThanMutates(t *testing.T) {
	base := New(Error, CodeUnknownEffect, "msg", at(1, 1), "aster-lower")
	withFunc := base.WithData("function", "greet")

	assert.Empty(t, base.Data["function"])
	assert.Equal(t, "greet", withFunc.Data["function"])
	assert.NotEqual(t, base.Data["diagnosticId"], "")
	assert.Equal(t, base.Data["diagnosticId"], withFunc.Data["diagnosticId"])
}

func TestSortOrdersByPositionThenCode(t *testing.T) {
	diags := []Diagnostic{
		{Code: "B", Span: at(2, 1)},
		{Code: "A", Span: at(1, 5)},
		{Code: "Z", Span: at(1, 1)},
		{Code: "A", Span: at(1, 1)},
	}
	Sort(diags)
	assert.Equal(t, []Diagnostic{
		{Code: "A", Span: at(1, 1)},
		{Code: "Z", Span: at(1, 1)},
		{Code: "A", Span: at(1, 5)},
		{Code: "B", Span: at(2, 1)},
	}, diags)
}

func TestDedupeKeepsFirstOccurrencePerPositionAndCode(t *testing.T) {
	diags := []Diagnostic{
		{Code: "LEX_ODD_INDENT", Message: "first", Span: at(1, 1)},
		{Code: "LEX_ODD_INDENT", Message: "duplicate", Span: at(1, 1)},
		{Code: "LEX_ODD_INDENT", Message: "different line", Span: at(2, 1)},
	}
	out := Dedupe(diags)
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Message)
	assert.Equal(t, "different line", out[1].Message)
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors([]Diagnostic{{Severity: Warning}, {Severity: Info}}))
	assert.True(t, HasErrors([]Diagnostic{{Severity: Warning}, {Severity: Error}}))
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "info", Info.String())
}
