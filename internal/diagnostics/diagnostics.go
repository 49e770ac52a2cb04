// Package diagnostics defines the diagnostic record shared by every stage of
// the pipeline, and the dedupe+sort helper used by the analyzers.
//
// Grounded on cmd/lsp/protocol.go's Diagnostic/DiagnosticSeverity shape and
// internal/analyzer/analyzer.go's walker.addError/getErrors dedupe-by-
// "line:col:code" + sort.Slice idiom from the teacher repo.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/aster-lang/aster-core/internal/span"
)

// Severity mirrors spec.md §4.K / §7.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Stable machine-readable diagnostic codes (spec.md §7, §4.J).
const (
	// Lex errors
	CodeIllegalChar       = "LEX_ILLEGAL_CHAR"
	CodeOddIndent         = "LEX_ODD_INDENT"
	CodeUnterminatedStr   = "LEX_UNTERMINATED_STRING"
	CodeMismatchedDedent  = "LEX_MISMATCHED_DEDENT"

	// Parse errors
	CodeExpectedPunct     = "PARSE_EXPECTED_PUNCT"
	CodeUnexpectedKeyword = "PARSE_UNEXPECTED_KEYWORD"
	CodeMalformedConstraint = "PARSE_MALFORMED_CONSTRAINT"
	CodeUnknownCapability = "PARSE_UNKNOWN_CAPABILITY"
	CodeUnbalancedParens  = "PARSE_UNBALANCED_PARENS"
	CodeIntOverflow       = "PARSE_INT_OVERFLOW"

	// Lower errors
	CodeUnknownEffect = "LOWER_UNKNOWN_EFFECT"
	CodeInternal      = "LOWER_INTERNAL"

	// Effect/capability semantic diagnostics
	CodeEffMissingPrefix    = "EFF_MISSING_"
	CodeEffSuperfluousPrefix = "EFF_SUPERFLUOUS_"
	CodeCapabilityNotAllowed = "CAPABILITY_NOT_ALLOWED"
	CodeManifestViolation    = "CAPABILITY_MANIFEST_VIOLATION"
	CodeExhaustiveness       = "MATCH_NOT_EXHAUSTIVE"
	CodeNullability          = "NULLABILITY_HINT"
	CodeAmbiguousOverload    = "AMBIGUOUS_OVERLOAD"

	// PII diagnostics
	CodePIIHTTPLeak        = "PII_HTTP_TRANSMISSION"
	CodePIIMissingConsent  = "PII_MISSING_CONSENT"

	// Manifest diagnostics
	CodeM001JSONParse       = "M001"
	CodeM002FileNotFound    = "M002"
	CodeM003BadPackageName  = "M003"
	CodeM004BadVersion      = "M004"
	CodeM005BadConstraint   = "M005"
	CodeM006BadEffectName   = "M006"
	CodeM007UnknownField    = "M007"
	CodeM008BadCapability   = "M008"
)

// RelatedInfo is a secondary location attached to a Diagnostic.
type RelatedInfo struct {
	Message string
	Span    span.Span
}

// Diagnostic is the shared record produced by every pipeline stage
// (spec.md §4.K, §7).
type Diagnostic struct {
	Severity          Severity
	Code              string
	Message           string
	Span              span.Span
	Source            string
	RelatedInformation []RelatedInfo
	Data              map[string]string
}

// New builds a Diagnostic and stamps it with a fresh UUID under
// Data["diagnosticId"], so downstream code-action tooling (the LSP
// collaborator, out of scope here) can reference individual diagnostics
// across incremental runs.
func New(sev Severity, code, message string, sp span.Span, source string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Span:     sp,
		Source:   source,
		Data:     map[string]string{"diagnosticId": uuid.NewString()},
	}
}

// WithData returns a copy of d with an additional data key set (function
// name, capability name, module name, per spec.md §7).
func (d Diagnostic) WithData(key, value string) Diagnostic {
	out := d
	out.Data = make(map[string]string, len(d.Data)+1)
	for k, v := range d.Data {
		out.Data[k] = v
	}
	out.Data[key] = value
	return out
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s [%s] at %s", d.Severity, d.Message, d.Code, d.Span.Start)
}

// Sort orders diagnostics by ascending source position, then by code, for a
// deterministic overall ordering (spec.md §5, §8 property 5). Generalized
// from the teacher's per-package sort.Slice dedupe block into one reusable
// helper shared by every analyzer.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Span.Start.Line != b.Span.Start.Line {
			return a.Span.Start.Line < b.Span.Start.Line
		}
		if a.Span.Start.Column != b.Span.Start.Column {
			return a.Span.Start.Column < b.Span.Start.Column
		}
		return a.Code < b.Code
	})
}

// Dedupe removes diagnostics that share the same (line, column, code),
// keeping the first occurrence. Mirrors the teacher's
// walker.addError/getErrors map-keyed-by-"line:col:code" pattern.
func Dedupe(diags []Diagnostic) []Diagnostic {
	seen := make(map[string]bool, len(diags))
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		key := fmt.Sprintf("%d:%d:%s", d.Span.Start.Line, d.Span.Start.Column, d.Code)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}

// HasErrors reports whether any diagnostic in the slice is Severity Error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
