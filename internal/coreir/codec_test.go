package coreir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster-core/internal/span"
	"github.com/aster-lang/aster-core/internal/token"
)

func sampleModule() *Module {
	return &Module{
		Name: "billing",
		Span: span.Span{},
		Decls: []Decl{
			&Import{Name: "http", Origin: Origin{File: "billing.aster"}},
			&Data{
				Name:   "Invoice",
				Fields: []Field{{Name: "total", Type: &TypeName{Name: "Int"}}},
				Origin: Origin{File: "billing.aster"},
			},
			&Func{
				Name:       "charge",
				Params:     []Field{{Name: "amount", Type: &TypeName{Name: "Int"}}},
				RetType:    &ResultType{Ok: &TypeName{Name: "Invoice"}, Err: &TypeName{Name: "Text"}},
				Effects:    []string{"io"},
				EffectCaps: []string{"HTTP"},
				Body: &Scope{Statements: []Stmt{
					&Let{Name: "_", Expr: &Call{Target: &Name{Value: "Http.post"}, Args: []Expr{&Name{Value: "amount"}}}},
					&Return{Expr: &OkExpr{Expr: &Name{Value: "amount"}}},
				}},
				Origin: Origin{File: "billing.aster", Span: span.Span{Start: token.Position{Line: 4}}},
			},
		},
	}
}

func TestEncode_ProducesVersionedEnvelope(t *testing.T) {
	data, err := Encode(sampleModule(), map[string]string{"file": "billing.aster"})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, "1.0", env.Version)
	assert.Equal(t, "billing.aster", env.Metadata["file"])

	var tree map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Module, &tree))
	assert.Equal(t, "billing", tree["name"])
}

func TestEncode_PrunesSpanAndOriginFields(t *testing.T) {
	a, err := Encode(sampleModule(), nil)
	require.NoError(t, err)

	modCopy := sampleModule()
	modCopy.Decls[2].(*Func).Origin.Span = span.Span{Start: token.Position{Line: 999}}
	b, err := Encode(modCopy, nil)
	require.NoError(t, err)

	assert.JSONEq(t, string(a), string(b), "spans must be pruned so two modules differing only in source position compare equal")
}

func TestDecode_RoundTripsModuleShape(t *testing.T) {
	data, err := Encode(sampleModule(), nil)
	require.NoError(t, err)

	tree, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "billing", tree["name"])

	decls, ok := tree["decls"].([]interface{})
	require.True(t, ok)
	require.Len(t, decls, 3)

	funcDecl, ok := decls[2].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Func", funcDecl["kind"])
	assert.Equal(t, "charge", funcDecl["name"])
	assert.Equal(t, []interface{}{"HTTP"}, funcDecl["effectCaps"])
}

func TestDecode_RejectsUnsupportedVersion(t *testing.T) {
	env := Envelope{Version: "2.0", Module: json.RawMessage(`{"name":"x","decls":[]}`)}
	data, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = Decode(data)
	assert.Error(t, err)
}

func TestDecode_RejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestIsValidCoreIRJson(t *testing.T) {
	data, err := Encode(sampleModule(), nil)
	require.NoError(t, err)

	assert.True(t, IsValidCoreIRJson(data))
	assert.False(t, IsValidCoreIRJson([]byte(`{"version":"9.9","module":{}}`)))
	assert.False(t, IsValidCoreIRJson([]byte("garbage")))
}

func TestEncode_OmitsEmptyOptionalFields(t *testing.T) {
	mod := &Module{Name: "bare", Decls: []Decl{
		&Func{Name: "noop", Body: &Scope{}},
	}}

	data, err := Encode(mod, nil)
	require.NoError(t, err)
	tree, err := Decode(data)
	require.NoError(t, err)

	decls := tree["decls"].([]interface{})
	f := decls[0].(map[string]interface{})
	_, hasEffects := f["effects"]
	_, hasCaps := f["effectCaps"]
	_, hasPii := f["piiLevel"]
	assert.False(t, hasEffects)
	assert.False(t, hasCaps)
	assert.False(t, hasPii)
}
