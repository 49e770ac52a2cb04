// Lowerer: AST -> Core IR (spec.md §4.G, Component G). Grounded on the
// teacher's internal/ast Visitor/node shape for the IR node set; reused
// here as a plain recursive function-per-node-kind pass since Core IR has
// no type unification step (unlike the teacher's full Hindley-Milner
// lowering).
package coreir

import (
	"fmt"

	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/config"
	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/span"
)

// builtinNames are intrinsic call targets that are never lambda captures
// and never trigger "unknown identifier" bookkeeping.
var builtinNames = map[string]bool{
	"not": true, "lessThan": true, "lessThanOrEqual": true,
	"greaterThan": true, "greaterThanOrEqual": true,
	"Http.get": true, "Http.post": true, "Http.put": true,
}

type lowerer struct {
	moduleNames map[string]bool
	diags       []diagnostics.Diagnostic
	file        string
}

// Lower translates a parsed Module into Core IR (spec.md §6 "lowerModule").
func Lower(mod *ast.Module, file string) (*Module, []diagnostics.Diagnostic) {
	l := &lowerer{moduleNames: map[string]bool{}, file: file}
	for _, d := range mod.Decls {
		switch v := d.(type) {
		case *ast.Func:
			l.moduleNames[v.Name] = true
		case *ast.Data:
			l.moduleNames[v.Name] = true
		case *ast.Enum:
			l.moduleNames[v.Name] = true
		case *ast.Import:
			name := v.AsName
			if name == "" {
				name = v.Name
			}
			l.moduleNames[name] = true
		}
	}

	core := &Module{Name: mod.Name, Span: mod.Span}
	for _, d := range mod.Decls {
		core.Decls = append(core.Decls, l.lowerDecl(d))
	}
	return core, l.diags
}

func (l *lowerer) origin(sp span.Span) Origin {
	return Origin{File: l.file, Span: sp}
}

func (l *lowerer) addDiag(code, msg string, sp span.Span) {
	l.diags = append(l.diags, diagnostics.New(diagnostics.Error, code, msg, sp, "aster-lower"))
}

func (l *lowerer) lowerDecl(d ast.Declaration) Decl {
	switch v := d.(type) {
	case *ast.Import:
		return &Import{Name: v.Name, AsName: v.AsName, Origin: l.origin(v.Span)}
	case *ast.Data:
		return &Data{Name: v.Name, Fields: l.lowerFields(v.Fields), Origin: l.origin(v.Span)}
	case *ast.Enum:
		return &Enum{Name: v.Name, Variants: v.Variants, Origin: l.origin(v.Span)}
	case *ast.Func:
		return l.lowerFunc(v)
	default:
		panic(fmt.Sprintf("coreir: unknown declaration %T", d))
	}
}

func (l *lowerer) lowerFields(fields []ast.Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{
			Name:        f.Name,
			Type:        l.lowerType(f.Type),
			Constraints: l.lowerConstraints(f.Constraints),
			Span:        f.Span,
		}
	}
	return out
}

func (l *lowerer) lowerConstraints(cs []ast.Constraint) []Constraint {
	out := make([]Constraint, len(cs))
	for i, c := range cs {
		switch v := c.(type) {
		case ast.Required:
			out[i] = Required{}
		case ast.Range:
			out[i] = Range{Min: v.Min, Max: v.Max, HasMin: v.HasMin, HasMax: v.HasMax}
		case ast.PatternConstraint:
			out[i] = PatternConstraint{Regexp: v.Regexp}
		}
	}
	return out
}

var validEffects = map[string]bool{"io": true, "cpu": true}

// lowerFunc resolves effectCaps (spec.md §3 invariants), aggregates PII
// (§4.G) and lowers the body.
func (l *lowerer) lowerFunc(f *ast.Func) *Func {
	for _, e := range f.Effects {
		if !validEffects[e] {
			l.addDiag(diagnostics.CodeUnknownEffect, fmt.Sprintf("unknown effect %q", e), f.Span)
		}
	}

	var caps []string
	if f.EffectCapsExplicit {
		caps = canonicalOrder(dedupeStrings(f.EffectCaps))
	} else {
		caps = deriveCaps(f.Effects)
	}

	params := l.lowerFields(f.Params)
	retType := l.lowerType(f.RetType)

	piiLevel, piiCats := aggregatePii(params, retType)

	var body *Scope
	if f.Body != nil {
		bound := map[string]bool{}
		for _, p := range f.Params {
			bound[p.Name] = true
		}
		body = l.lowerBlockAsScope(f.Body, bound)
	}

	return &Func{
		Name:               f.Name,
		TypeParams:         f.TypeParams,
		Params:             params,
		RetType:            retType,
		Effects:            f.Effects,
		EffectCaps:         caps,
		EffectCapsExplicit: f.EffectCapsExplicit,
		PiiLevel:           piiLevel,
		PiiCategories:      piiCats,
		Body:               body,
		Origin:             l.origin(f.Span),
	}
}

// deriveCaps implements spec.md §3's implicit capability expansion: "io"
// implies the full IO-capability family (CPU excluded, handled separately).
func deriveCaps(effects []string) []string {
	set := map[string]bool{}
	for _, e := range effects {
		switch e {
		case "io":
			for _, c := range config.IOCapabilityFamily {
				set[c] = true
			}
		case "cpu":
			set["CPU"] = true
		}
	}
	var out []string
	for _, c := range config.CanonicalCapabilityOrder {
		if set[c] {
			out = append(out, c)
		}
	}
	return out
}

func canonicalOrder(caps []string) []string {
	set := map[string]bool{}
	for _, c := range caps {
		set[c] = true
	}
	var out []string
	for _, c := range config.CanonicalCapabilityOrder {
		if set[c] {
			out = append(out, c)
		}
	}
	return out
}

func dedupeStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// aggregatePii walks param and return types for TypePii leaves, tracking
// max sensitivity lexicographically and an insertion-ordered category list
// (spec.md §4.G).
func aggregatePii(params []Field, ret Type) (PiiSensitivity, []string) {
	var level PiiSensitivity
	var cats []string
	seen := map[string]bool{}

	visit := func(t Type) {
		walkPiiLeaves(t, func(sens PiiSensitivity, cat string) {
			if sens.Rank() > level.Rank() {
				level = sens
			}
			if !seen[cat] {
				seen[cat] = true
				cats = append(cats, cat)
			}
		})
	}
	for _, p := range params {
		visit(p.Type)
	}
	visit(ret)
	return level, cats
}

func walkPiiLeaves(t Type, fn func(PiiSensitivity, string)) {
	switch v := t.(type) {
	case nil:
		return
	case *PiiType:
		fn(v.Sensitivity, v.Category)
		walkPiiLeaves(v.Base, fn)
	case *Maybe:
		walkPiiLeaves(v.Elem, fn)
	case *OptionType:
		walkPiiLeaves(v.Elem, fn)
	case *ResultType:
		walkPiiLeaves(v.Ok, fn)
		walkPiiLeaves(v.Err, fn)
	case *ListType:
		walkPiiLeaves(v.Elem, fn)
	case *MapType:
		walkPiiLeaves(v.Key, fn)
		walkPiiLeaves(v.Value, fn)
	case *TypeApp:
		for _, a := range v.Args {
			walkPiiLeaves(a, fn)
		}
	case *FuncType:
		for _, p := range v.Params {
			walkPiiLeaves(p, fn)
		}
		walkPiiLeaves(v.Ret, fn)
	}
}

func (l *lowerer) lowerType(t ast.Type) Type {
	switch v := t.(type) {
	case nil:
		return nil
	case *ast.TypeName:
		return &TypeName{Name: v.Name, Span: v.Span}
	case *ast.TypeVar:
		return &TypeVar{Name: v.Name, Span: v.Span}
	case *ast.TypeApp:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = l.lowerType(a)
		}
		return &TypeApp{Base: v.Base, Args: args, Span: v.Span}
	case *ast.Maybe:
		return &Maybe{Elem: l.lowerType(v.Elem), Span: v.Span}
	case *ast.OptionType:
		return &OptionType{Elem: l.lowerType(v.Elem), Span: v.Span}
	case *ast.ResultType:
		return &ResultType{Ok: l.lowerType(v.Ok), Err: l.lowerType(v.Err), Span: v.Span}
	case *ast.ListType:
		return &ListType{Elem: l.lowerType(v.Elem), Span: v.Span}
	case *ast.MapType:
		return &MapType{Key: l.lowerType(v.Key), Value: l.lowerType(v.Value), Span: v.Span}
	case *ast.FuncType:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = l.lowerType(p)
		}
		return &FuncType{Params: params, Ret: l.lowerType(v.Ret), Span: v.Span}
	case *ast.PiiType:
		return &PiiType{Base: l.lowerType(v.Base), Sensitivity: PiiSensitivity(v.Sensitivity), Category: v.Category, Span: v.Span}
	default:
		panic(fmt.Sprintf("coreir: unknown type %T", t))
	}
}

// --- statements ---------------------------------------------------------

func (l *lowerer) lowerBlockAsScope(b *ast.Block, bound map[string]bool) *Scope {
	scope := &Scope{Span: b.Span}
	local := cloneBoundSet(bound)
	for _, s := range b.Statements {
		scope.Statements = append(scope.Statements, l.lowerStmt(s, local))
	}
	return scope
}

func cloneBoundSet(bound map[string]bool) map[string]bool {
	out := make(map[string]bool, len(bound))
	for k, v := range bound {
		out[k] = v
	}
	return out
}

func (l *lowerer) lowerStmt(s ast.Statement, bound map[string]bool) Stmt {
	switch v := s.(type) {
	case *ast.Let:
		expr := l.lowerExpr(v.Expr, bound)
		bound[v.Name] = true
		return &Let{Name: v.Name, Expr: expr, Span: v.Span}
	case *ast.Set:
		return &Set{Name: v.Name, Expr: l.lowerExpr(v.Expr, bound), Span: v.Span}
	case *ast.Return:
		var e Expr
		if v.Expr != nil {
			e = l.lowerExpr(v.Expr, bound)
		}
		return &Return{Expr: e, Span: v.Span}
	case *ast.If:
		var elseScope *Scope
		if v.Else != nil {
			elseScope = l.lowerBlockAsScope(v.Else, bound)
		}
		return &If{
			Cond: l.lowerExpr(v.Cond, bound),
			Then: l.lowerBlockAsScope(v.Then, bound),
			Else: elseScope,
			Span: v.Span,
		}
	case *ast.Match:
		m := &Match{Expr: l.lowerExpr(v.Expr, bound), Span: v.Span}
		for _, c := range v.Cases {
			caseBound := cloneBoundSet(bound)
			bindPatternNames(c.Pattern, caseBound)
			m.Cases = append(m.Cases, MatchCase{
				Pattern: l.lowerPattern(c.Pattern),
				Body:    l.lowerBlockAsScope(c.Body, caseBound),
				Span:    c.Span,
			})
		}
		return m
	case *ast.Start:
		expr := l.lowerExpr(v.Expr, bound)
		bound[v.Name] = true
		return &Start{Name: v.Name, Expr: expr, Span: v.Span}
	case *ast.Wait:
		return &Wait{Names: v.Names, Span: v.Span}
	case *ast.Within:
		return l.lowerBlockAsScope(v.Body, bound)
	case *ast.Block:
		return l.lowerBlockAsScope(v, bound)
	case *ast.CallStmt:
		return &Let{Name: "_", Expr: l.lowerExpr(v.Expr, bound), Span: v.Span}
	default:
		panic(fmt.Sprintf("coreir: unknown statement %T", s))
	}
}

func bindPatternNames(p ast.Pattern, bound map[string]bool) {
	switch v := p.(type) {
	case *ast.PatternName:
		bound[v.Name] = true
	case *ast.PatternCtor:
		for _, n := range v.Names {
			bound[n] = true
		}
		for _, a := range v.Args {
			bindPatternNames(a, bound)
		}
	}
}

func (l *lowerer) lowerPattern(p ast.Pattern) Pattern {
	switch v := p.(type) {
	case *ast.PatternNull:
		return &PatNull{Span: v.Span}
	case *ast.PatternInt:
		return &PatInt{Value: v.Value, Span: v.Span}
	case *ast.PatternName:
		return &PatName{Name: v.Name, Span: v.Span}
	case *ast.PatternCtor:
		args := make([]Pattern, len(v.Args))
		for i, a := range v.Args {
			args[i] = l.lowerPattern(a)
		}
		return &PatCtor{TypeName: v.TypeName, Names: v.Names, Args: args, Span: v.Span}
	default:
		panic(fmt.Sprintf("coreir: unknown pattern %T", p))
	}
}

// --- expressions ---------------------------------------------------------

func (l *lowerer) lowerExpr(e ast.Expression, bound map[string]bool) Expr {
	switch v := e.(type) {
	case nil:
		return nil
	case *ast.Name:
		return &Name{Value: v.Value, Span: v.Span}
	case *ast.BoolLit:
		return &BoolLit{Value: v.Value, Span: v.Span}
	case *ast.NullLit:
		return &NullLit{Span: v.Span}
	case *ast.IntLit:
		return &IntLit{Value: v.Value, Span: v.Span}
	case *ast.LongLit:
		return &LongLit{Value: v.Value, Span: v.Span}
	case *ast.FloatLit:
		return &DoubleLit{Value: parseFloat(v.Value), Span: v.Span}
	case *ast.DoubleLit:
		return &DoubleLit{Value: parseFloat(v.Value), Span: v.Span}
	case *ast.StringLit:
		return &StringLit{Value: v.Value, Span: v.Span}
	case *ast.NoneLit:
		return &NoneLit{Span: v.Span}
	case *ast.SomeExpr:
		return &SomeExpr{Expr: l.lowerExpr(v.Expr, bound), Span: v.Span}
	case *ast.OkExpr:
		return &OkExpr{Expr: l.lowerExpr(v.Expr, bound), Span: v.Span}
	case *ast.ErrExpr:
		return &ErrExpr{Expr: l.lowerExpr(v.Expr, bound), Span: v.Span}
	case *ast.Construct:
		fields := make([]ConstructField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = ConstructField{Name: f.Name, Value: l.lowerExpr(f.Value, bound)}
		}
		return &Construct{TypeName: v.TypeName, Fields: fields, Span: v.Span}
	case *ast.Call:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = l.lowerExpr(a, bound)
		}
		return &Call{Target: l.lowerExpr(v.Target, bound), Args: args, Span: v.Span}
	case *ast.Lambda:
		return l.lowerLambda(v, bound)
	case *ast.Await:
		return &Await{Expr: l.lowerExpr(v.Expr, bound), Span: v.Span}
	default:
		panic(fmt.Sprintf("coreir: unknown expression %T", e))
	}
}

func parseFloat(s string) float64 {
	var f float64
	_, err := fmt.Sscanf(s, "%g", &f)
	if err != nil {
		return 0
	}
	return f
}

// lowerLambda computes captures = free identifiers(body) - params -
// module-level names - builtin intrinsics (spec.md §3, §4.G, §9).
func (l *lowerer) lowerLambda(lam *ast.Lambda, outerBound map[string]bool) *Lambda {
	params := l.lowerFields(lam.Params)
	lambdaBound := map[string]bool{}
	for _, p := range lam.Params {
		lambdaBound[p.Name] = true
	}
	body := l.lowerBlockAsScope(lam.Body, lambdaBound)

	free := map[string]bool{}
	var order []string
	collectFreeScope(body, cloneBoundSet(lambdaBound), func(name string) {
		if free[name] || l.moduleNames[name] || builtinNames[name] {
			return
		}
		free[name] = true
		order = append(order, name)
	})

	return &Lambda{
		Params:   params,
		RetType:  l.lowerType(lam.RetType),
		Body:     body,
		Captures: order,
		Span:     lam.Span,
	}
}

func collectFreeScope(s *Scope, bound map[string]bool, emit func(string)) {
	for _, stmt := range s.Statements {
		collectFreeStmt(stmt, bound, emit)
	}
}

func collectFreeStmt(s Stmt, bound map[string]bool, emit func(string)) {
	switch v := s.(type) {
	case *Let:
		collectFreeExpr(v.Expr, bound, emit)
		bound[v.Name] = true
	case *Set:
		collectFreeExpr(v.Expr, bound, emit)
	case *Return:
		collectFreeExpr(v.Expr, bound, emit)
	case *If:
		collectFreeExpr(v.Cond, bound, emit)
		collectFreeScope(v.Then, cloneBoundSet(bound), emit)
		if v.Else != nil {
			collectFreeScope(v.Else, cloneBoundSet(bound), emit)
		}
	case *Match:
		collectFreeExpr(v.Expr, bound, emit)
		for _, c := range v.Cases {
			caseBound := cloneBoundSet(bound)
			bindCorePatternNames(c.Pattern, caseBound)
			collectFreeScope(c.Body, caseBound, emit)
		}
	case *Scope:
		collectFreeScope(v, cloneBoundSet(bound), emit)
	case *Start:
		collectFreeExpr(v.Expr, bound, emit)
		bound[v.Name] = true
	case *Wait:
		for _, n := range v.Names {
			if !bound[n] {
				emit(n)
			}
		}
	}
}

func bindCorePatternNames(p Pattern, bound map[string]bool) {
	switch v := p.(type) {
	case *PatName:
		bound[v.Name] = true
	case *PatCtor:
		for _, n := range v.Names {
			bound[n] = true
		}
		for _, a := range v.Args {
			bindCorePatternNames(a, bound)
		}
	}
}

func collectFreeExpr(e Expr, bound map[string]bool, emit func(string)) {
	switch v := e.(type) {
	case nil:
		return
	case *Name:
		if builtinNames[v.Value] {
			return
		}
		head := v.Value
		for i, c := range v.Value {
			if c == '.' {
				head = v.Value[:i]
				break
			}
		}
		if !bound[head] {
			emit(head)
		}
	case *SomeExpr:
		collectFreeExpr(v.Expr, bound, emit)
	case *OkExpr:
		collectFreeExpr(v.Expr, bound, emit)
	case *ErrExpr:
		collectFreeExpr(v.Expr, bound, emit)
	case *Construct:
		for _, f := range v.Fields {
			collectFreeExpr(f.Value, bound, emit)
		}
	case *Call:
		collectFreeExpr(v.Target, bound, emit)
		for _, a := range v.Args {
			collectFreeExpr(a, bound, emit)
		}
	case *Lambda:
		inner := cloneBoundSet(bound)
		for _, p := range v.Params {
			inner[p.Name] = true
		}
		collectFreeScope(v.Body, inner, emit)
	case *Await:
		collectFreeExpr(v.Expr, bound, emit)
	}
}
