package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aster-lang/aster-core/internal/coreir"
	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/manifest"
)

func manifestMatches(m *manifest.CapabilityManifest, patterns []string, moduleName, funcName string) bool {
	qualified := moduleName + "." + funcName
	for _, p := range patterns {
		if p == qualified {
			return true
		}
		if strings.HasSuffix(p, ".*") && strings.TrimSuffix(p, "*") == moduleName+"." {
			return true
		}
	}
	return false
}

// AnalyzeEffects is Component H: validates each function's declared effects
// against what its body actually requires, and enforces capability/manifest
// policy (spec.md §4.H). Severity is always Error; analysis never stops
// early — every function in the module is checked.
func AnalyzeEffects(mod *coreir.Module, man *manifest.CapabilityManifest, cfg *EffectConfig) []diagnostics.Diagnostic {
	if cfg == nil {
		cfg = DefaultEffectConfig()
	}
	funcs := map[string]*coreir.Func{}
	for _, d := range mod.Decls {
		if f, ok := d.(*coreir.Func); ok {
			funcs[f.Name] = f
		}
	}

	c := &collector{}
	memo := map[string]map[string]bool{}
	for _, d := range mod.Decls {
		f, ok := d.(*coreir.Func)
		if !ok {
			continue
		}
		required := requiredEffects(f, funcs, cfg, memo, map[string]bool{})
		declared := map[string]bool{}
		for _, e := range f.Effects {
			declared[e] = true
		}

		missing := stringsDiff(required, declared)
		sort.Strings(missing)
		for _, eff := range missing {
			c.add(diagnostics.New(diagnostics.Error, diagnostics.CodeEffMissingPrefix+strings.ToUpper(eff),
				fmt.Sprintf("function %q uses effect %q but does not declare it", f.Name, eff), f.Origin.Span, "aster-effects").
				WithData("function", f.Name).WithData("effect", eff))
		}

		superfluous := stringsDiff(declared, required)
		sort.Strings(superfluous)
		for _, eff := range superfluous {
			c.add(diagnostics.New(diagnostics.Error, diagnostics.CodeEffSuperfluousPrefix+strings.ToUpper(eff),
				fmt.Sprintf("function %q declares effect %q but never uses it", f.Name, eff), f.Origin.Span, "aster-effects").
				WithData("function", f.Name).WithData("effect", eff))
		}

		requiredCaps := requiredCapabilities(f, funcs, cfg, map[string]bool{})
		have := map[string]bool{}
		for _, cap := range f.EffectCaps {
			have[cap] = true
		}
		var missingCaps []string
		for cap := range requiredCaps {
			if !have[cap] {
				missingCaps = append(missingCaps, cap)
			}
		}
		sort.Strings(missingCaps)
		for _, cap := range missingCaps {
			c.add(diagnostics.New(diagnostics.Error, diagnostics.CodeCapabilityNotAllowed,
				fmt.Sprintf("function %q requires capability %q which is not in its effectCaps", f.Name, cap),
				f.Origin.Span, "aster-effects").WithData("function", f.Name).WithData("capability", cap))
		}

		for _, cap := range f.EffectCaps {
			if man == nil {
				continue
			}
			denied := manifestMatches(man, man.Deny, mod.Name, f.Name)
			allowedEmpty := len(man.Allow) == 0
			allowed := allowedEmpty || manifestMatches(man, man.Allow, mod.Name, f.Name)
			if denied || !allowed {
				c.add(diagnostics.New(diagnostics.Error, diagnostics.CodeManifestViolation,
					fmt.Sprintf("capability manifest forbids %s.%s using %q", mod.Name, f.Name, cap),
					f.Origin.Span, "aster-effects").WithData("function", mod.Name+"."+f.Name).WithData("capability", cap))
				break
			}
		}
	}
	return c.result()
}

func stringsDiff(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	return out
}

// requiredEffects computes the transitive set of effects f's body actually
// exercises: builtin capability calls resolved via cfg, plus the declared
// effects of any locally defined callee (spec.md §4.H "call graph lookup
// across the module; transitive"). memo caches by function name; visiting
// guards against call cycles.
func requiredEffects(f *coreir.Func, funcs map[string]*coreir.Func, cfg *EffectConfig, memo map[string]map[string]bool, visiting map[string]bool) map[string]bool {
	if cached, ok := memo[f.Name]; ok {
		return cached
	}
	if visiting[f.Name] {
		return map[string]bool{}
	}
	visiting[f.Name] = true

	out := map[string]bool{}
	for _, name := range calleeNames(f.Body) {
		if _, eff, ok := cfg.RequiredCapability(name); ok {
			out[eff] = true
			continue
		}
		if callee, ok := funcs[name]; ok {
			for eff := range requiredEffects(callee, funcs, cfg, memo, visiting) {
				out[eff] = true
			}
			for _, eff := range callee.Effects {
				out[eff] = true
			}
		}
	}

	delete(visiting, f.Name)
	memo[f.Name] = out
	return out
}

// requiredCapabilities computes the transitive set of capabilities f's body
// actually exercises: the specific capability resolved per call site (spec.md
// §4.H "ensure every required call's capabilities are included"), not the
// full implicit io-family expansion used when a function merely *declares*
// "io" with no explicit caps (that expansion is the Lowerer's concern when
// resolving a function's own effectCaps, not the analyzer's when checking
// what a body's calls actually need).
func requiredCapabilities(f *coreir.Func, funcs map[string]*coreir.Func, cfg *EffectConfig, visiting map[string]bool) map[string]bool {
	if visiting[f.Name] {
		return map[string]bool{}
	}
	visiting[f.Name] = true
	defer delete(visiting, f.Name)

	out := map[string]bool{}
	for _, name := range calleeNames(f.Body) {
		if cap, _, ok := cfg.RequiredCapability(name); ok {
			out[cap] = true
			continue
		}
		if callee, ok := funcs[name]; ok {
			for _, cap := range callee.EffectCaps {
				out[cap] = true
			}
			for cap := range requiredCapabilities(callee, funcs, cfg, visiting) {
				out[cap] = true
			}
		}
	}
	return out
}

// calleeNames collects every direct-name call target reachable in body, in
// encounter order with duplicates allowed (the caller only cares about set
// membership).
func calleeNames(s *coreir.Scope) []string {
	var out []string
	if s == nil {
		return out
	}
	var visitStmt func(coreir.Stmt)
	var visitExpr func(coreir.Expr)

	visitExpr = func(e coreir.Expr) {
		switch v := e.(type) {
		case nil:
			return
		case *coreir.Call:
			if n, ok := v.Target.(*coreir.Name); ok {
				out = append(out, n.Value)
			}
			visitExpr(v.Target)
			for _, a := range v.Args {
				visitExpr(a)
			}
		case *coreir.SomeExpr:
			visitExpr(v.Expr)
		case *coreir.OkExpr:
			visitExpr(v.Expr)
		case *coreir.ErrExpr:
			visitExpr(v.Expr)
		case *coreir.Construct:
			for _, fld := range v.Fields {
				visitExpr(fld.Value)
			}
		case *coreir.Lambda:
			visitStmt(v.Body)
		case *coreir.Await:
			visitExpr(v.Expr)
		}
	}

	visitStmt = func(st coreir.Stmt) {
		switch v := st.(type) {
		case nil:
			return
		case *coreir.Let:
			visitExpr(v.Expr)
		case *coreir.Set:
			visitExpr(v.Expr)
		case *coreir.Return:
			visitExpr(v.Expr)
		case *coreir.If:
			visitExpr(v.Cond)
			visitStmt(v.Then)
			if v.Else != nil {
				visitStmt(v.Else)
			}
		case *coreir.Match:
			visitExpr(v.Expr)
			for _, cs := range v.Cases {
				visitStmt(cs.Body)
			}
		case *coreir.Scope:
			for _, inner := range v.Statements {
				visitStmt(inner)
			}
		case *coreir.Start:
			visitExpr(v.Expr)
		}
	}

	visitStmt(s)
	return out
}
