package analyzer

import (
	"fmt"
	"strings"

	"github.com/aster-lang/aster-core/internal/coreir"
	"github.com/aster-lang/aster-core/internal/diagnostics"
)

// taint is the PII tag carried on a value (spec.md §4.I "taint domain").
type taint struct {
	sensitivity coreir.PiiSensitivity
	category    string
}

func maxTaint(a, b taint) taint {
	if b.sensitivity.Rank() > a.sensitivity.Rank() {
		return b
	}
	return a
}

// httpSinks are the default HTTP-transmission sink targets (spec.md §4.I).
var httpSinks = map[string]bool{
	"Http.post": true,
	"Http.put":  true,
	"Http.get":  true,
}

// sanitizerNames are callees treated as "explicit sanitizers": a tainted
// argument passed through one of these does not taint the result (spec.md
// §4.I "if ... the callee is not an explicit sanitizer"). Spec leaves the
// sanitizer set unspecified beyond this phrase; resolved here as any callee
// whose name contains "sanitize", "redact" or "anonymize".
func isSanitizer(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "sanitize") || strings.Contains(lower, "redact") || strings.Contains(lower, "anonymize")
}

// AnalyzePiiFlow is Component I: propagates PII taint through each
// function's body and flags HTTP sinks (spec.md §4.I). strict escalates
// severity from Warning to Error.
func AnalyzePiiFlow(mod *coreir.Module, sinks map[string]bool, strict bool) []diagnostics.Diagnostic {
	if sinks == nil {
		sinks = httpSinks
	}
	c := &collector{}
	sev := diagnostics.Warning
	if strict {
		sev = diagnostics.Error
	}

	for _, d := range mod.Decls {
		f, ok := d.(*coreir.Func)
		if !ok || f.Body == nil {
			continue
		}
		env := map[string]taint{}
		for _, p := range f.Params {
			if t, ok := paramTaint(p.Type); ok {
				env[p.Name] = t
			}
		}
		walkPiiScope(f.Body, env, sinks, sev, c)
	}
	return c.result()
}

func paramTaint(t coreir.Type) (taint, bool) {
	if p, ok := t.(*coreir.PiiType); ok {
		return taint{sensitivity: p.Sensitivity, category: p.Category}, true
	}
	return taint{}, false
}

func walkPiiScope(s *coreir.Scope, env map[string]taint, sinks map[string]bool, sev diagnostics.Severity, c *collector) {
	if s == nil {
		return
	}
	for _, st := range s.Statements {
		walkPiiStmt(st, env, sinks, sev, c)
	}
}

func walkPiiStmt(st coreir.Stmt, env map[string]taint, sinks map[string]bool, sev diagnostics.Severity, c *collector) {
	switch v := st.(type) {
	case *coreir.Let:
		if t, ok := exprTaint(v.Expr, env, sinks, sev, c); ok {
			env[v.Name] = t
		} else {
			delete(env, v.Name)
		}
	case *coreir.Set:
		if t, ok := exprTaint(v.Expr, env, sinks, sev, c); ok {
			env[v.Name] = t
		} else {
			delete(env, v.Name)
		}
	case *coreir.Return:
		exprTaint(v.Expr, env, sinks, sev, c)
	case *coreir.If:
		exprTaint(v.Cond, env, sinks, sev, c)
		walkPiiScope(v.Then, cloneTaintEnv(env), sinks, sev, c)
		if v.Else != nil {
			walkPiiScope(v.Else, cloneTaintEnv(env), sinks, sev, c)
		}
	case *coreir.Match:
		scrutineeTaint, _ := exprTaint(v.Expr, env, sinks, sev, c)
		for _, cs := range v.Cases {
			caseEnv := cloneTaintEnv(env)
			bindPatternTaint(cs.Pattern, scrutineeTaint, caseEnv)
			walkPiiScope(cs.Body, caseEnv, sinks, sev, c)
		}
	case *coreir.Scope:
		walkPiiScope(v, cloneTaintEnv(env), sinks, sev, c)
	case *coreir.Start:
		if t, ok := exprTaint(v.Expr, env, sinks, sev, c); ok {
			env[v.Name] = t
		}
	}
}

func cloneTaintEnv(env map[string]taint) map[string]taint {
	out := make(map[string]taint, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

// bindPatternTaint propagates the scrutinee's taint to every name a pattern
// binds (spec.md §4.I "pattern bindings inherit taint").
func bindPatternTaint(p coreir.Pattern, t taint, env map[string]taint) {
	if t.sensitivity == "" {
		return
	}
	switch v := p.(type) {
	case *coreir.PatName:
		env[v.Name] = t
	case *coreir.PatCtor:
		for _, n := range v.Names {
			env[n] = t
		}
		for _, a := range v.Args {
			bindPatternTaint(a, t, env)
		}
	}
}

// exprTaint evaluates the taint of e, flagging HTTP sinks along the way.
func exprTaint(e coreir.Expr, env map[string]taint, sinks map[string]bool, sev diagnostics.Severity, c *collector) (taint, bool) {
	switch v := e.(type) {
	case nil:
		return taint{}, false
	case *coreir.Name:
		t, ok := env[v.Value]
		return t, ok
	case *coreir.SomeExpr:
		return exprTaint(v.Expr, env, sinks, sev, c)
	case *coreir.OkExpr:
		return exprTaint(v.Expr, env, sinks, sev, c)
	case *coreir.ErrExpr:
		return exprTaint(v.Expr, env, sinks, sev, c)
	case *coreir.Construct:
		var acc taint
		var any bool
		for _, f := range v.Fields {
			if t, ok := exprTaint(f.Value, env, sinks, sev, c); ok {
				if any {
					acc = maxTaint(acc, t)
				} else {
					acc, any = t, true
				}
			}
		}
		return acc, any
	case *coreir.Lambda:
		walkPiiScope(v.Body, cloneTaintEnv(env), sinks, sev, c)
		return taint{}, false
	case *coreir.Await:
		return exprTaint(v.Expr, env, sinks, sev, c)
	case *coreir.Call:
		name := ""
		if n, ok := v.Target.(*coreir.Name); ok {
			name = n.Value
		}
		var acc taint
		var anyTainted bool
		for _, a := range v.Args {
			if t, ok := exprTaint(a, env, sinks, sev, c); ok {
				if anyTainted {
					acc = maxTaint(acc, t)
				} else {
					acc, anyTainted = t, true
				}
			}
		}
		if anyTainted && sinks[name] {
			c.add(diagnostics.New(sev, diagnostics.CodePIIHTTPLeak,
				fmt.Sprintf("PII data transmitted over HTTP via %s", name), v.Span, "aster-pii").
				WithData("function", name).WithData("category", acc.category))
			c.add(diagnostics.New(sev, diagnostics.CodePIIMissingConsent,
				fmt.Sprintf("no consent check before transmitting PII via %s", name), v.Span, "aster-pii").
				WithData("function", name).WithData("category", acc.category))
		}
		if anyTainted && !isSanitizer(name) {
			return acc, true
		}
		return taint{}, false
	default:
		return taint{}, false
	}
}
