// Package inference implements the name+constraint -> primitive type
// heuristic the parser consults when a field or parameter lacks an explicit
// type annotation (spec.md §4.F, Component F). Grounded on the teacher's
// internal/analyzer/naming.go ordered (pattern, result, priority) rule-list
// shape, reused here as a plain regex-driven data table instead of the
// teacher's full Hindley-Milner machinery (not needed: §4.F is a pure
// naming heuristic, not unification).
package inference

import (
	"regexp"
	"strings"

	"github.com/aster-lang/aster-core/internal/ast"
)

// Primitive is one of the five base types the heuristic can infer.
type Primitive string

const (
	Text     Primitive = "Text"
	Int      Primitive = "Int"
	FloatP   Primitive = "Float"
	Bool     Primitive = "Bool"
	DateTime Primitive = "DateTime"
)

// NamingRule is one entry in the ordered rule table (spec.md §4.F).
type NamingRule struct {
	Pattern  *regexp.Regexp
	Type     Primitive
	Priority int
}

func suffixRule(suffix string, t Primitive, priority int) NamingRule {
	return NamingRule{Pattern: regexp.MustCompile("(?i)" + regexp.QuoteMeta(suffix) + "$"), Type: t, Priority: priority}
}

func prefixRule(prefix string, t Primitive, priority int) NamingRule {
	return NamingRule{Pattern: regexp.MustCompile("(?i)^" + regexp.QuoteMeta(prefix)), Type: t, Priority: priority}
}

// BaseRules are the locale-independent naming rules (spec.md §4.F).
var BaseRules = buildBaseRules()

func buildBaseRules() []NamingRule {
	var rules []NamingRule
	for _, s := range []string{"Id", "ID", "Identifier", "Code", "Key", "Token"} {
		rules = append(rules, suffixRule(s, Text, 10))
	}
	for _, s := range []string{"Amount", "Price", "Cost", "Fee", "Balance", "Salary", "Income", "Rate", "Percentage"} {
		rules = append(rules, suffixRule(s, FloatP, 10))
	}
	for _, s := range []string{"Count", "Number", "Qty", "Age", "Score", "Level", "Months", "Days", "Years", "Minutes", "Size", "Length", "Index"} {
		rules = append(rules, suffixRule(s, Int, 10))
	}
	return rules
}

// BooleanPrefixes and DateTimeSuffixes are overlay rules a lexicon may
// enable (spec.md §4.F: "overlay rules from lexicon supply booleans...and
// datetimes...when configured").
var BooleanPrefixes = []string{"is", "has", "can", "should", "allow"}
var BooleanSuffixes = []string{"Flag", "Enabled", "Active"}
var DateTimeSuffixes = []string{"Date", "Time", "At", "Timestamp", "Created", "Updated", "Modified"}

// OverlayRules builds the boolean/datetime naming rules at a lower priority
// than the base rules, per lexicon configuration.
func OverlayRules(enableBooleans, enableDateTimes bool) []NamingRule {
	var rules []NamingRule
	if enableBooleans {
		for _, p := range BooleanPrefixes {
			rules = append(rules, prefixRule(p, Bool, 5))
		}
		for _, s := range BooleanSuffixes {
			rules = append(rules, suffixRule(s, Bool, 5))
		}
	}
	if enableDateTimes {
		for _, s := range DateTimeSuffixes {
			rules = append(rules, suffixRule(s, DateTime, 5))
		}
	}
	return rules
}

// InferFromName applies the ordered rule set to a field/param name and
// returns the highest-priority matching Primitive, or "" if none match.
func InferFromName(name string, extra []NamingRule) Primitive {
	all := append(append([]NamingRule{}, BaseRules...), extra...)
	best := Primitive("")
	bestPriority := -1
	for _, r := range all {
		if r.Pattern.MatchString(name) && r.Priority > bestPriority {
			best = r.Type
			bestPriority = r.Priority
		}
	}
	return best
}

// InferFromConstraints implements constraint-based refinement (spec.md
// §4.F "Constraint-based refinement"): a Range with both endpoints integral
// infers Int; any fractional endpoint infers Float; a Pattern infers Text.
// Multiple constraints unify with numeric promotion (Int+Float -> Float).
func InferFromConstraints(constraints []ast.Constraint) Primitive {
	result := Primitive("")
	for _, c := range constraints {
		var t Primitive
		switch v := c.(type) {
		case ast.Range:
			if v.IsFractional() {
				t = FloatP
			} else {
				t = Int
			}
		case ast.PatternConstraint:
			t = Text
		default:
			continue
		}
		result = unify(result, t)
	}
	return result
}

func unify(a, b Primitive) Primitive {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if a == b {
		return a
	}
	if (a == Int && b == FloatP) || (a == FloatP && b == Int) {
		return FloatP
	}
	return b
}

// Infer resolves a field/param's type when no explicit annotation was
// written: explicit constraints override naming; otherwise naming applies;
// refinement may promote Int -> Float on a fractional Range. Falls back to
// Text (spec.md §4.F "Combination"/"Default fallback").
func Infer(name string, constraints []ast.Constraint, extraNaming []NamingRule) Primitive {
	fromConstraints := InferFromConstraints(constraints)
	if fromConstraints != "" {
		return fromConstraints
	}
	if fromName := InferFromName(name, extraNaming); fromName != "" {
		return fromName
	}
	return Text
}

// ToTypeName converts an inferred Primitive into the ast.TypeName node the
// parser installs on a field lacking an explicit annotation.
func ToTypeName(p Primitive) string {
	return string(p)
}

// LooksLikeTypeParam is a best-effort heuristic for implicit generic
// parameters (spec.md §4.E "Generic types"): it reports true only for a
// single uppercase letter that is not in declaredTypeNames. Longer
// capitalized names are never treated as type parameters.
func LooksLikeTypeParam(name string, declaredTypeNames map[string]bool) bool {
	if declaredTypeNames[name] {
		return false
	}
	if len(name) == 1 && strings.ToUpper(name) == name {
		return true
	}
	return false
}
