package analyzer

import "github.com/aster-lang/aster-core/internal/diagnostics"

// collector mirrors the teacher's walker.errorSet/addError/getErrors idiom:
// diagnostics accumulate keyed by position+code so re-visiting the same
// call site twice (e.g. through two call paths) reports once, then are
// returned sorted by source position.
type collector struct {
	diags []diagnostics.Diagnostic
}

func (c *collector) add(d diagnostics.Diagnostic) {
	c.diags = append(c.diags, d)
}

func (c *collector) result() []diagnostics.Diagnostic {
	out := diagnostics.Dedupe(c.diags)
	diagnostics.Sort(out)
	return out
}
