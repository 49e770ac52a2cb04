package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster-core/internal/coreir"
	"github.com/aster-lang/aster-core/internal/diagnostics"
)

func piiParam(name string, sensitivity coreir.PiiSensitivity, category string) coreir.Field {
	return coreir.Field{
		Name: name,
		Type: &coreir.PiiType{Base: &coreir.TypeName{Name: "Text"}, Sensitivity: sensitivity, Category: category},
	}
}

func TestAnalyzePiiFlow_HttpLeak(t *testing.T) {
	f := &coreir.Func{
		Name:   "submit",
		Params: []coreir.Field{piiParam("email", coreir.PiiL2, "contact")},
		Body: &coreir.Scope{Statements: []coreir.Stmt{
			&coreir.Let{Name: "_", Expr: &coreir.Call{
				Target: &coreir.Name{Value: "Http.post"},
				Args:   []coreir.Expr{&coreir.Name{Value: "email"}},
			}},
		}},
	}
	mod := &coreir.Module{Name: "demo", Decls: []coreir.Decl{f}}

	diags := AnalyzePiiFlow(mod, nil, false)
	require.NotEmpty(t, diags)
	assert.True(t, hasCode(diags, diagnostics.CodePIIHTTPLeak))
	assert.True(t, hasCode(diags, diagnostics.CodePIIMissingConsent))
	assert.Equal(t, diagnostics.Warning, diags[0].Severity)
}

func TestAnalyzePiiFlow_Strict(t *testing.T) {
	f := &coreir.Func{
		Name:   "submit",
		Params: []coreir.Field{piiParam("email", coreir.PiiL2, "contact")},
		Body: &coreir.Scope{Statements: []coreir.Stmt{
			&coreir.Let{Name: "_", Expr: &coreir.Call{
				Target: &coreir.Name{Value: "Http.post"},
				Args:   []coreir.Expr{&coreir.Name{Value: "email"}},
			}},
		}},
	}
	mod := &coreir.Module{Name: "demo", Decls: []coreir.Decl{f}}

	diags := AnalyzePiiFlow(mod, nil, true)
	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostics.Error, diags[0].Severity)
}

func TestAnalyzePiiFlow_SanitizedNoLeak(t *testing.T) {
	f := &coreir.Func{
		Name:   "submit",
		Params: []coreir.Field{piiParam("email", coreir.PiiL2, "contact")},
		Body: &coreir.Scope{Statements: []coreir.Stmt{
			&coreir.Let{Name: "clean", Expr: &coreir.Call{
				Target: &coreir.Name{Value: "sanitizeEmail"},
				Args:   []coreir.Expr{&coreir.Name{Value: "email"}},
			}},
			&coreir.Let{Name: "_", Expr: &coreir.Call{
				Target: &coreir.Name{Value: "Http.post"},
				Args:   []coreir.Expr{&coreir.Name{Value: "clean"}},
			}},
		}},
	}
	mod := &coreir.Module{Name: "demo", Decls: []coreir.Decl{f}}

	diags := AnalyzePiiFlow(mod, nil, false)
	assert.Empty(t, diags)
}

func TestAnalyzePiiFlow_NoPiiNoDiagnostics(t *testing.T) {
	f := &coreir.Func{
		Name: "greet",
		Body: &coreir.Scope{Statements: []coreir.Stmt{
			&coreir.Let{Name: "_", Expr: &coreir.Call{
				Target: &coreir.Name{Value: "Http.get"},
				Args:   []coreir.Expr{&coreir.StringLit{Value: "https://example.com"}},
			}},
		}},
	}
	mod := &coreir.Module{Name: "demo", Decls: []coreir.Decl{f}}

	diags := AnalyzePiiFlow(mod, nil, false)
	assert.Empty(t, diags)
}
