package coreir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster-core/internal/ast"
	"github.com/aster-lang/aster-core/internal/diagnostics"
)

func TestLower_PlainFunc(t *testing.T) {
	mod := &ast.Module{
		Name: "demo",
		Decls: []ast.Declaration{
			&ast.Func{
				Name:    "greet",
				Params:  []ast.Field{{Name: "name", Type: &ast.TypeName{Name: "Text"}}},
				RetType: &ast.TypeName{Name: "Text"},
				Body: &ast.Block{Statements: []ast.Statement{
					&ast.Return{Expr: &ast.Name{Value: "name"}},
				}},
			},
		},
	}

	core, diags := Lower(mod, "demo.aster")
	require.Empty(t, diags)
	require.Len(t, core.Decls, 1)

	f, ok := core.Decls[0].(*Func)
	require.True(t, ok)
	assert.Equal(t, "greet", f.Name)
	assert.Empty(t, f.EffectCaps)
	assert.Equal(t, "demo.aster", f.Origin.File)
	require.Len(t, f.Body.Statements, 1)
	ret, ok := f.Body.Statements[0].(*Return)
	require.True(t, ok)
	name, ok := ret.Expr.(*Name)
	require.True(t, ok)
	assert.Equal(t, "name", name.Value)
}

func TestLower_UnknownEffectDiagnostic(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Func{Name: "odd", Effects: []string{"network"}, Body: &ast.Block{}},
	}}

	_, diags := Lower(mod, "f.aster")
	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostics.CodeUnknownEffect, diags[0].Code)
}

func TestLower_ImplicitIoCapsExpandToFullFamily(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Func{Name: "fetch", Effects: []string{"io"}, Body: &ast.Block{}},
	}}

	core, diags := Lower(mod, "f.aster")
	require.Empty(t, diags)
	f := core.Decls[0].(*Func)
	assert.False(t, f.EffectCapsExplicit)
	assert.Equal(t, []string{"HTTP", "SQL", "TIME", "FILES", "SECRETS", "AI_MODEL"}, f.EffectCaps)
}

func TestLower_ExplicitEffectCapsPreservedInCanonicalOrder(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Func{
			Name: "writeFile", Effects: []string{"io"},
			EffectCaps: []string{"FILES", "HTTP", "FILES"}, EffectCapsExplicit: true,
			Body: &ast.Block{},
		},
	}}

	core, _ := Lower(mod, "f.aster")
	f := core.Decls[0].(*Func)
	assert.True(t, f.EffectCapsExplicit)
	assert.Equal(t, []string{"HTTP", "FILES"}, f.EffectCaps)
}

func TestLower_CpuEffectDerivesCpuCap(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Func{Name: "crunch", Effects: []string{"cpu"}, Body: &ast.Block{}},
	}}

	core, _ := Lower(mod, "f.aster")
	f := core.Decls[0].(*Func)
	assert.Equal(t, []string{"CPU"}, f.EffectCaps)
}

func piiAstType(sensitivity ast.PiiSensitivity, category string) ast.Type {
	return &ast.PiiType{Base: &ast.TypeName{Name: "Text"}, Sensitivity: sensitivity, Category: category}
}

func TestLower_PiiAggregationAcrossParamsAndReturn(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Func{
			Name: "process",
			Params: []ast.Field{
				{Name: "ssn", Type: piiAstType(ast.PiiL3, "identity")},
				{Name: "email", Type: piiAstType(ast.PiiL1, "contact")},
			},
			RetType: &ast.ListType{Elem: piiAstType(ast.PiiL2, "contact")},
			Body:    &ast.Block{},
		},
	}}

	core, _ := Lower(mod, "f.aster")
	f := core.Decls[0].(*Func)
	assert.Equal(t, PiiL3, f.PiiLevel)
	assert.Equal(t, []string{"identity", "contact"}, f.PiiCategories)
}

func TestLower_NoPiiLeavesLevelEmpty(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Func{Name: "plain", RetType: &ast.TypeName{Name: "Int"}, Body: &ast.Block{}},
	}}

	core, _ := Lower(mod, "f.aster")
	f := core.Decls[0].(*Func)
	assert.Equal(t, PiiSensitivity(""), f.PiiLevel)
	assert.Nil(t, f.PiiCategories)
}

func TestLower_WithinAndBlockFlattenToScope(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Func{
			Name: "wrapped",
			Body: &ast.Block{Statements: []ast.Statement{
				&ast.Within{Body: &ast.Block{Statements: []ast.Statement{
					&ast.Let{Name: "x", Expr: &ast.IntLit{Value: "1"}},
				}}},
			}},
		},
	}}

	core, _ := Lower(mod, "f.aster")
	f := core.Decls[0].(*Func)
	require.Len(t, f.Body.Statements, 1)
	inner, ok := f.Body.Statements[0].(*Scope)
	require.True(t, ok, "Within lowers directly to a Scope, not wrapped in another statement kind")
	require.Len(t, inner.Statements, 1)
	_, ok = inner.Statements[0].(*Let)
	assert.True(t, ok)
}

func TestLower_CallStmtBecomesUnderscoreLet(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Func{
			Name: "sideEffect",
			Body: &ast.Block{Statements: []ast.Statement{
				&ast.CallStmt{Expr: &ast.Call{Target: &ast.Name{Value: "Http.get"}, Args: []ast.Expression{&ast.StringLit{Value: "x"}}}},
			}},
		},
	}}

	core, _ := Lower(mod, "f.aster")
	f := core.Decls[0].(*Func)
	require.Len(t, f.Body.Statements, 1)
	let, ok := f.Body.Statements[0].(*Let)
	require.True(t, ok)
	assert.Equal(t, "_", let.Name)
	_, ok = let.Expr.(*Call)
	assert.True(t, ok)
}

func TestLower_LambdaCapturesFreeNamesExcludingParamsAndBuiltins(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Data{Name: "Widget", Fields: []ast.Field{{Name: "id", Type: &ast.TypeName{Name: "Int"}}}},
		&ast.Func{
			Name: "makeAdder",
			Params: []ast.Field{
				{Name: "base", Type: &ast.TypeName{Name: "Int"}},
			},
			Body: &ast.Block{Statements: []ast.Statement{
				&ast.Let{Name: "threshold", Expr: &ast.IntLit{Value: "10"}},
				&ast.Return{Expr: &ast.Lambda{
					Params: []ast.Field{{Name: "n", Type: &ast.TypeName{Name: "Int"}}},
					Body: &ast.Block{Statements: []ast.Statement{
						&ast.Return{Expr: &ast.Call{
							Target: &ast.Name{Value: "not"},
							Args: []ast.Expression{
								&ast.Call{Target: &ast.Name{Value: "lessThan"}, Args: []ast.Expression{
									&ast.Name{Value: "n"},
									&ast.Name{Value: "base"},
								}},
							},
						}},
					}},
				}},
			}},
		},
	}}

	core, diags := Lower(mod, "f.aster")
	require.Empty(t, diags)

	var fn *Func
	for _, d := range core.Decls {
		if f, ok := d.(*Func); ok && f.Name == "makeAdder" {
			fn = f
		}
	}
	require.NotNil(t, fn)

	ret := fn.Body.Statements[1].(*Return)
	lam, ok := ret.Expr.(*Lambda)
	require.True(t, ok)

	assert.Contains(t, lam.Captures, "base")
	assert.NotContains(t, lam.Captures, "n", "lambda's own parameter is never a capture")
	assert.NotContains(t, lam.Captures, "not", "builtin intrinsics are never captures")
	assert.NotContains(t, lam.Captures, "lessThan", "builtin intrinsics are never captures")
	assert.NotContains(t, lam.Captures, "Widget", "module-level declarations are never captures")
}

func TestLower_MatchPatternBindingsExcludedFromCaptures(t *testing.T) {
	mod := &ast.Module{Decls: []ast.Declaration{
		&ast.Func{
			Name: "describe",
			Params: []ast.Field{
				{Name: "opt", Type: &ast.OptionType{Elem: &ast.TypeName{Name: "Int"}}},
			},
			Body: &ast.Block{Statements: []ast.Statement{
				&ast.Return{Expr: &ast.Lambda{
					Body: &ast.Block{Statements: []ast.Statement{
						&ast.Match{
							Expr: &ast.Name{Value: "opt"},
							Cases: []ast.MatchCase{
								{
									Pattern: &ast.PatternCtor{TypeName: "Some", Names: []string{"value"}},
									Body: &ast.Block{Statements: []ast.Statement{
										&ast.Return{Expr: &ast.Name{Value: "value"}},
									}},
								},
								{
									Pattern: &ast.PatternNull{},
									Body:    &ast.Block{Statements: []ast.Statement{&ast.Return{Expr: &ast.IntLit{Value: "0"}}}},
								},
							},
						},
					}},
				}},
			}},
		},
	}}

	core, diags := Lower(mod, "f.aster")
	require.Empty(t, diags)
	f := core.Decls[0].(*Func)
	ret := f.Body.Statements[0].(*Return)
	lam := ret.Expr.(*Lambda)

	assert.Contains(t, lam.Captures, "opt")
	assert.NotContains(t, lam.Captures, "value", "pattern-bound names are never free")
}
